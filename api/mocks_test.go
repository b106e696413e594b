package api

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/Domenick1991/weddingvenue/internal/service/availability"
	"github.com/Domenick1991/weddingvenue/internal/service/dashboard"
	"github.com/Domenick1991/weddingvenue/internal/service/rsvp"
	"github.com/Domenick1991/weddingvenue/internal/wizard"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Complete(ctx context.Context, form wizard.Form) (*domain.Booking, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockRSVPUseCase struct {
	mock.Mock
}

func (m *MockRSVPUseCase) Submit(ctx context.Context, input rsvp.Input) (*domain.RSVP, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RSVP), args.Error(1)
}

func (m *MockRSVPUseCase) List(ctx context.Context) ([]domain.RSVP, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RSVP), args.Error(1)
}

func (m *MockRSVPUseCase) Summary(ctx context.Context) (rsvp.Summary, error) {
	args := m.Called(ctx)
	return args.Get(0).(rsvp.Summary), args.Error(1)
}

type MockAvailabilityUseCase struct {
	mock.Mock
}

func (m *MockAvailabilityUseCase) Calendar(ctx context.Context) ([]domain.DateAvailability, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.DateAvailability), args.Error(1)
}

func (m *MockAvailabilityUseCase) Availability(ctx context.Context, date string) (*domain.DateAvailability, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DateAvailability), args.Error(1)
}

func (m *MockAvailabilityUseCase) BookableHalls(ctx context.Context, date string) ([]domain.Hall, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.Hall), args.Error(1)
}

func (m *MockAvailabilityUseCase) Month(ctx context.Context, year int, month time.Month) (*availability.MonthView, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.MonthView), args.Error(1)
}

type MockDashboardUseCase struct {
	mock.Mock
}

func (m *MockDashboardUseCase) View(ctx context.Context, tab dashboard.Tab) (*dashboard.Dashboard, error) {
	args := m.Called(ctx, tab)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Dashboard), args.Error(1)
}
