package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/weddingvenue/internal/catalog"
	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/Domenick1991/weddingvenue/internal/kafka"
	"github.com/Domenick1991/weddingvenue/internal/wizard"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) AppendBooking(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

type fixedIDs struct{ id string }

func (f fixedIDs) NewID(prefix string) string { return prefix + f.id }

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func completeForm() wizard.Form {
	return wizard.Form{
		BrideName:     "Nimali",
		GroomName:     "Kasun",
		Email:         "couple@example.com",
		Phone:         "0771234567",
		WeddingDate:   "2025-06-14",
		PackageID:     1,
		HallID:        1,
		GuestCount:    120,
		PaymentMethod: "credit-card",
		CardNumber:    "4111 1111 1111 1234",
		ExpiryDate:    "12/27",
		CVV:           "123",
		CardName:      "N Perera",
		AgreeTerms:    true,
	}
}

func newService(repo *MockBookingRepository, opts ...BookingServiceOption) *BookingService {
	opts = append([]BookingServiceOption{
		WithIDGenerator(fixedIDs{id: "1"}),
		WithClock(func() time.Time { return testNow }),
	}, opts...)
	return NewBookingService(repo, catalog.New(), opts...)
}

func TestBookingService_Complete_Success(t *testing.T) {
	repo := &MockBookingRepository{}
	repo.On("AppendBooking", mock.Anything, mock.AnythingOfType("domain.Booking")).Return(nil)
	service := newService(repo)

	booking, err := service.Complete(context.Background(), completeForm())

	require.NoError(t, err)
	assert.Equal(t, "WED1", booking.ID)
	assert.Equal(t, int64(2000000), booking.TotalAmount)
	assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, testNow, booking.CreatedAt)
	assert.Equal(t, domain.PaymentDetails{Method: "credit-card", CardName: "N Perera", CardLastFour: "1234"}, booking.Payment)
	repo.AssertExpectations(t)
}

func TestBookingService_Complete_PersistsSameRecord(t *testing.T) {
	repo := &MockBookingRepository{}
	var stored domain.Booking
	repo.On("AppendBooking", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.Booking) }).
		Return(nil)
	service := newService(repo)

	booking, err := service.Complete(context.Background(), completeForm())

	require.NoError(t, err)
	assert.Equal(t, *booking, stored)
}

func TestBookingService_Complete_DefaultsPaymentMethod(t *testing.T) {
	repo := &MockBookingRepository{}
	repo.On("AppendBooking", mock.Anything, mock.Anything).Return(nil)
	service := newService(repo)
	form := completeForm()
	form.PaymentMethod = ""

	booking, err := service.Complete(context.Background(), form)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPaymentMethod, booking.Payment.Method)
}

func TestBookingService_Complete_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*wizard.Form)
		err    error
	}{
		{"missing bride", func(f *wizard.Form) { f.BrideName = "" }, ErrIncompleteDetails},
		{"blank email", func(f *wizard.Form) { f.Email = "   " }, ErrIncompleteDetails},
		{"missing date", func(f *wizard.Form) { f.WeddingDate = "" }, ErrIncompleteDetails},
		{"unknown package", func(f *wizard.Form) { f.PackageID = 42 }, ErrUnknownPackage},
		{"unknown hall", func(f *wizard.Form) { f.HallID = 0 }, ErrUnknownHall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockBookingRepository{}
			service := newService(repo)
			form := completeForm()
			tt.mutate(&form)

			booking, err := service.Complete(context.Background(), form)

			assert.Nil(t, booking)
			assert.ErrorIs(t, err, tt.err)
			repo.AssertNotCalled(t, "AppendBooking", mock.Anything, mock.Anything)
		})
	}
}

func TestBookingService_Complete_RepositoryError(t *testing.T) {
	repo := &MockBookingRepository{}
	producer := &MockProducer{}
	repo.On("AppendBooking", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	service := newService(repo, WithProducer(producer, "bookings"))

	booking, err := service.Complete(context.Background(), completeForm())

	assert.Nil(t, booking)
	assert.EqualError(t, err, "disk full")
	producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Complete_PublishesEvents(t *testing.T) {
	repo := &MockBookingRepository{}
	producer := &MockProducer{}
	repo.On("AppendBooking", mock.Anything, mock.Anything).Return(nil)
	isConfirmed := mock.MatchedBy(func(e kafka.Event) bool {
		return e.Type == kafka.EventBookingConfirmed && e.ID == "WED1" &&
			e.PackageName == "Silver Package" && e.TotalAmount == 2000000
	})
	producer.On("Publish", mock.Anything, "bookings", "WED1", isConfirmed).Return(nil)
	producer.On("Publish", mock.Anything, "notifications", "WED1", isConfirmed).Return(nil)
	service := newService(repo, WithProducer(producer, "bookings"), WithNotificationsTopic("notifications"))

	_, err := service.Complete(context.Background(), completeForm())

	require.NoError(t, err)
	producer.AssertExpectations(t)
}

func TestBookingService_Complete_PublishFailureIsNotFatal(t *testing.T) {
	repo := &MockBookingRepository{}
	producer := &MockProducer{}
	repo.On("AppendBooking", mock.Anything, mock.Anything).Return(nil)
	producer.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))
	service := newService(repo, WithProducer(producer, "bookings"))

	booking, err := service.Complete(context.Background(), completeForm())

	require.NoError(t, err)
	assert.NotNil(t, booking)
}

func TestBookingService_List(t *testing.T) {
	repo := &MockBookingRepository{}
	stored := []domain.Booking{{ID: "WED1"}, {ID: "WED2"}}
	repo.On("ListBookings", mock.Anything).Return(stored, nil)
	service := newService(repo)

	bookings, err := service.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, stored, bookings)
}
