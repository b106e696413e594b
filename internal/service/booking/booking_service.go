package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Domenick1991/weddingvenue/internal/catalog"
	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/Domenick1991/weddingvenue/internal/idgen"
	"github.com/Domenick1991/weddingvenue/internal/kafka"
	"github.com/Domenick1991/weddingvenue/internal/repository"
	"github.com/Domenick1991/weddingvenue/internal/service/pricing"
	"github.com/Domenick1991/weddingvenue/internal/wizard"
)

var (
	ErrIncompleteDetails = errors.New("bride name, groom name, email and wedding date are required")
	ErrUnknownPackage    = errors.New("unknown package")
	ErrUnknownHall       = errors.New("unknown hall")
)

type BookingUseCase interface {
	Complete(ctx context.Context, form wizard.Form) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	catalog            *catalog.Catalog
	ids                idgen.Generator
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	now                func() time.Time
	log                zerolog.Logger
}

type BookingServiceOption func(*BookingService)

func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithIDGenerator(ids idgen.Generator) BookingServiceOption {
	return func(s *BookingService) {
		s.ids = ids
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithLogger(log zerolog.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func NewBookingService(bookings repository.BookingRepository, c *catalog.Catalog, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings: bookings,
		catalog:  c,
		ids:      idgen.NewMonotonic(),
		now:      time.Now,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Complete turns a submitted wizard form into a confirmed, priced booking
// and appends it to the store. Only the payment method, cardholder name
// and last four card digits are kept.
func (s *BookingService) Complete(ctx context.Context, form wizard.Form) (*domain.Booking, error) {
	for _, v := range []string{form.BrideName, form.GroomName, form.Email, form.WeddingDate} {
		if strings.TrimSpace(v) == "" {
			return nil, ErrIncompleteDetails
		}
	}
	pkg, ok := s.catalog.Package(form.PackageID)
	if !ok {
		return nil, ErrUnknownPackage
	}
	hall, ok := s.catalog.Hall(form.HallID)
	if !ok {
		return nil, ErrUnknownHall
	}

	method := form.PaymentMethod
	if method == "" {
		method = domain.DefaultPaymentMethod
	}

	booking := &domain.Booking{
		ID:              s.ids.NewID(idgen.BookingPrefix),
		BrideName:       form.BrideName,
		GroomName:       form.GroomName,
		Email:           form.Email,
		Phone:           form.Phone,
		WeddingDate:     form.WeddingDate,
		PackageID:       pkg.ID,
		HallID:          hall.ID,
		GuestCount:      form.GuestCount,
		SpecialRequests: form.SpecialRequests,
		Payment: domain.PaymentDetails{
			Method:       method,
			CardName:     form.CardName,
			CardLastFour: form.CardLastFour(),
		},
		TotalAmount: pricing.ComputeTotal(pkg, hall, form.GuestCount),
		CreatedAt:   s.now().UTC(),
		Status:      domain.BookingStatusConfirmed,
	}

	if err := s.bookings.AppendBooking(ctx, *booking); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("booking_id", booking.ID).
		Str("wedding_date", booking.WeddingDate).
		Int64("total_amount", booking.TotalAmount).
		Msg("booking confirmed")

	if err := s.publish(ctx, kafka.EventBookingConfirmed, booking); err != nil {
		s.log.Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking_confirmed event")
	}
	return booking, nil
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListBookings(ctx)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.Event{
		Type:        eventType,
		ID:          booking.ID,
		Name:        booking.BrideName + " & " + booking.GroomName,
		Email:       booking.Email,
		WeddingDate: booking.WeddingDate,
		PackageName: s.catalog.PackageName(booking.PackageID),
		HallName:    s.catalog.HallName(booking.HallID),
		TotalAmount: booking.TotalAmount,
		OccurredAt:  booking.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
