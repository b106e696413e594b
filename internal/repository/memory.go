package repository

import (
	"context"
	"sync"

	"github.com/Domenick1991/weddingvenue/internal/domain"
)

type MemoryStore struct {
	mu       sync.RWMutex
	bookings []domain.Booking
	rsvps    []domain.RSVP
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ListBookings(_ context.Context) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out, nil
}

func (s *MemoryStore) AppendBooking(_ context.Context, booking domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = append(s.bookings, booking)
	return nil
}

func (s *MemoryStore) ListRSVPs(_ context.Context) ([]domain.RSVP, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.RSVP, len(s.rsvps))
	copy(out, s.rsvps)
	return out, nil
}

func (s *MemoryStore) AppendRSVP(_ context.Context, rsvp domain.RSVP) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rsvps = append(s.rsvps, rsvp)
	return nil
}

var _ Store = (*MemoryStore)(nil)
