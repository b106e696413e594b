package repository

import (
	"context"

	"github.com/Domenick1991/weddingvenue/internal/domain"
)

// Records are append-only: there is no update or delete.

type BookingRepository interface {
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	AppendBooking(ctx context.Context, booking domain.Booking) error
}

type RSVPRepository interface {
	ListRSVPs(ctx context.Context) ([]domain.RSVP, error)
	AppendRSVP(ctx context.Context, rsvp domain.RSVP) error
}

// Store is the persisted store shared by every session. Lists come back in
// insertion order.
type Store interface {
	BookingRepository
	RSVPRepository
}
