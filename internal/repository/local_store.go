package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/rs/zerolog"
)

// Fixed keys the two record lists live under.
const (
	BookingsKey = "weddingBookings"
	RSVPsKey    = "weddingRsvps"
)

// KeyValue is a string key-value store in the shape of browser local storage.
type KeyValue interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
}

// LocalStore keeps each record list as one JSON array blob in a KeyValue.
// A missing or malformed blob reads as an empty list.
type LocalStore struct {
	mu  sync.Mutex
	kv  KeyValue
	log zerolog.Logger
}

func NewLocalStore(kv KeyValue, log zerolog.Logger) *LocalStore {
	return &LocalStore{
		kv:  kv,
		log: log.With().Str("component", "local_store").Logger(),
	}
}

func (s *LocalStore) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return readList[domain.Booking](ctx, s, BookingsKey)
}

func (s *LocalStore) AppendBooking(ctx context.Context, booking domain.Booking) error {
	return appendItem(ctx, s, BookingsKey, booking)
}

func (s *LocalStore) ListRSVPs(ctx context.Context) ([]domain.RSVP, error) {
	return readList[domain.RSVP](ctx, s, RSVPsKey)
}

func (s *LocalStore) AppendRSVP(ctx context.Context, rsvp domain.RSVP) error {
	return appendItem(ctx, s, RSVPsKey, rsvp)
}

func readList[T any](ctx context.Context, s *LocalStore, key string) ([]T, error) {
	raw, ok, err := s.kv.GetItem(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("malformed list, reading as empty")
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func appendItem[T any](ctx context.Context, s *LocalStore, key string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := readList[T](ctx, s, key)
	if err != nil {
		return err
	}
	items = append(items, item)

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.kv.SetItem(ctx, key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

var _ Store = (*LocalStore)(nil)
