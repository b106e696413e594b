package api

import (
	"context"
	"time"

	"github.com/Domenick1991/weddingvenue/internal/catalog"
	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/Domenick1991/weddingvenue/internal/money"
	"github.com/Domenick1991/weddingvenue/internal/service/availability"
	"github.com/Domenick1991/weddingvenue/internal/service/dashboard"
	"github.com/Domenick1991/weddingvenue/internal/service/pricing"
	"github.com/Domenick1991/weddingvenue/internal/service/rsvp"
	"github.com/Domenick1991/weddingvenue/internal/session"
	"github.com/Domenick1991/weddingvenue/internal/wizard"
)

// ViewBuilder renders the model of a session's current view.
type ViewBuilder struct {
	catalog      *catalog.Catalog
	availability availability.AvailabilityUseCase
	pricing      pricing.PricingUseCase
	rsvps        rsvp.RSVPUseCase
	dashboard    dashboard.DashboardUseCase
	now          func() time.Time
}

func NewViewBuilder(
	c *catalog.Catalog,
	availability availability.AvailabilityUseCase,
	pricing pricing.PricingUseCase,
	rsvps rsvp.RSVPUseCase,
	dashboard dashboard.DashboardUseCase,
) *ViewBuilder {
	return &ViewBuilder{
		catalog:      c,
		availability: availability,
		pricing:      pricing,
		rsvps:        rsvps,
		dashboard:    dashboard,
		now:          time.Now,
	}
}

type homeModel struct {
	Packages []domain.Package `json:"packages"`
	Halls    []domain.Hall    `json:"halls"`
}

type availabilityModel struct {
	Month *availability.MonthView `json:"month"`
	Halls []domain.Hall           `json:"halls"`
}

type packagesModel struct {
	Packages   []domain.Package        `json:"packages"`
	Comparison []catalog.ComparisonRow `json:"comparison"`
}

type bookingModel struct {
	Step         string           `json:"step"`
	StepNumber   int              `json:"step_number"`
	Form         wizard.Form      `json:"form"`
	Submitting   bool             `json:"submitting"`
	CanAdvance   bool             `json:"can_advance"`
	CanGoBack    bool             `json:"can_go_back"`
	CanSubmit    bool             `json:"can_submit"`
	BookingError string           `json:"booking_error,omitempty"`
	Packages     []domain.Package `json:"packages"`
	Halls        []domain.Hall    `json:"halls"`
	Quote        *pricing.Quote   `json:"quote,omitempty"`
	Confirmation *bookingResponse `json:"confirmation,omitempty"`
}

type rsvpModel struct {
	Meals     []domain.MealOption `json:"meals"`
	Summary   rsvp.Summary        `json:"summary"`
	Submitted *domain.RSVP        `json:"submitted,omitempty"`
}

func (b *ViewBuilder) Build(ctx context.Context, s session.Session) (interface{}, error) {
	switch s.View {
	case domain.ViewAvailability:
		now := b.now()
		month, err := b.availability.Month(ctx, now.Year(), now.Month())
		if err != nil {
			return nil, err
		}
		return availabilityModel{Month: month, Halls: b.catalog.Halls()}, nil
	case domain.ViewPackages:
		return packagesModel{Packages: b.catalog.Packages(), Comparison: b.catalog.Comparison()}, nil
	case domain.ViewBooking:
		return b.booking(s), nil
	case domain.ViewRSVP:
		summary, err := b.rsvps.Summary(ctx)
		if err != nil {
			return nil, err
		}
		return rsvpModel{Meals: b.catalog.Meals(), Summary: summary, Submitted: s.RSVP}, nil
	case domain.ViewDashboard:
		return b.dashboard.View(ctx, dashboard.TabOverview)
	default:
		return homeModel{Packages: b.catalog.Packages(), Halls: b.catalog.Halls()}, nil
	}
}

func (b *ViewBuilder) booking(s session.Session) bookingModel {
	st := s.Wizard
	m := bookingModel{
		Step:         st.Step.String(),
		StepNumber:   int(st.Step),
		Form:         st.Form,
		Submitting:   st.Submitting,
		CanAdvance:   s.CanAdvance(),
		CanGoBack:    s.CanGoBack(),
		CanSubmit:    s.CanSubmit(),
		BookingError: s.BookingError,
		Packages:     b.catalog.Packages(),
		Halls:        b.catalog.Halls(),
	}
	if st.Form.PackageID > 0 {
		q := b.pricing.Quote(st.Form.PackageID, st.Form.HallID, st.Form.GuestCount)
		m.Quote = &q
	}
	if st.Booking != nil {
		m.Confirmation = &bookingResponse{
			Booking:        *st.Booking,
			PackageName:    b.catalog.PackageName(st.Booking.PackageID),
			HallName:       b.catalog.HallName(st.Booking.HallID),
			FormattedTotal: money.Format(st.Booking.TotalAmount),
		}
	}
	return m
}
