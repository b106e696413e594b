// Package session keeps the per-tab state of the site: the current view, the
// booking wizard and the RSVP confirmation. Leaving a view unmounts it and
// drops its state.
package session

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Domenick1991/weddingvenue/internal/catalog"
	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/Domenick1991/weddingvenue/internal/service/booking"
	"github.com/Domenick1991/weddingvenue/internal/service/rsvp"
	"github.com/Domenick1991/weddingvenue/internal/wizard"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrNotOnBookingView = errors.New("booking form is not open")
	ErrNotOnRSVPView    = errors.New("rsvp form is not open")
	ErrStepIncomplete   = errors.New("current step is incomplete")
	ErrUnknownField     = errors.New("unknown booking form field")
	ErrUnknownSelection = errors.New("unknown package or hall")
)

const (
	DefaultPaymentDelay = 2 * time.Second
	DefaultTTL          = 2 * time.Hour
	completeTimeout     = 10 * time.Second
)

type Session struct {
	ID           string       `json:"id"`
	View         domain.View  `json:"view"`
	Wizard       wizard.State `json:"wizard"`
	BookingError string       `json:"booking_error,omitempty"`
	RSVP         *domain.RSVP `json:"rsvp,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	LastSeen     time.Time    `json:"last_seen"`

	// mount changes whenever the booking view is left, so a payment timer
	// started under an older mount can tell it must not write.
	mount uint64
}

// CanAdvance, CanGoBack and CanSubmit expose the wizard button states.
func (s Session) CanAdvance() bool { return wizard.CanAdvance(s.Wizard) }
func (s Session) CanGoBack() bool  { return wizard.CanGoBack(s.Wizard) }
func (s Session) CanSubmit() bool  { return wizard.CanSubmit(s.Wizard) }

type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	pending  sync.WaitGroup

	bookings booking.BookingUseCase
	rsvps    rsvp.RSVPUseCase
	catalog  *catalog.Catalog

	paymentDelay time.Duration
	ttl          time.Duration
	now          func() time.Time
	afterFunc    func(time.Duration, func())
	log          zerolog.Logger
}

type Option func(*Manager)

func WithPaymentDelay(d time.Duration) Option {
	return func(m *Manager) {
		m.paymentDelay = d
	}
}

// WithTTL sets how long an idle session survives. Zero disables expiry.
func WithTTL(d time.Duration) Option {
	return func(m *Manager) {
		m.ttl = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithTimer replaces time.AfterFunc for the payment delay.
func WithTimer(fn func(time.Duration, func())) Option {
	return func(m *Manager) {
		m.afterFunc = fn
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

func NewManager(bookings booking.BookingUseCase, rsvps rsvp.RSVPUseCase, c *catalog.Catalog, opts ...Option) *Manager {
	m := &Manager{
		sessions:     make(map[string]*Session),
		bookings:     bookings,
		rsvps:        rsvps,
		catalog:      c,
		paymentDelay: DefaultPaymentDelay,
		ttl:          DefaultTTL,
		now:          time.Now,
		afterFunc:    afterFunc,
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func afterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

func (m *Manager) Create() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()

	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		View:      domain.ViewHome,
		Wizard:    wizard.Initial(),
		CreatedAt: now,
		LastSeen:  now,
	}
	m.sessions[s.ID] = s
	m.log.Debug().Str("session_id", s.ID).Msg("session created")
	return *s
}

func (m *Manager) Get(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.lookupLocked(id)
	if err != nil {
		return Session{}, err
	}
	return *s, nil
}

// Close drops a session. A payment timer still pending for it completes the
// booking but has nowhere to report.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.lookupLocked(id); err != nil {
		return err
	}
	delete(m.sessions, id)
	return nil
}

func (m *Manager) Navigate(id string, view domain.View) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.lookupLocked(id)
	if err != nil {
		return Session{}, err
	}
	if view == s.View {
		return *s, nil
	}

	switch s.View {
	case domain.ViewBooking:
		s.Wizard = wizard.Initial()
		s.BookingError = ""
		s.mount++
	case domain.ViewRSVP:
		s.RSVP = nil
	}
	s.View = view
	return *s, nil
}

// UpdateBooking sets wizard form fields by their form names. Either every
// field is applied or none is.
func (m *Manager) UpdateBooking(id string, fields map[string]string) (Session, error) {
	for name, value := range fields {
		if !wizard.IsField(name) {
			return Session{}, ErrUnknownField
		}
		if err := m.checkSelection(name, value); err != nil {
			return Session{}, err
		}
	}

	return m.onBooking(id, func(s *Session) error {
		for _, name := range slices.Sorted(maps.Keys(fields)) {
			s.Wizard = wizard.Reduce(s.Wizard, wizard.SetField(name, fields[name]))
		}
		return nil
	})
}

func (m *Manager) Next(id string) (Session, error) {
	return m.onBooking(id, func(s *Session) error {
		if !wizard.CanAdvance(s.Wizard) {
			return ErrStepIncomplete
		}
		s.Wizard = wizard.Reduce(s.Wizard, wizard.Action{Type: wizard.ActionNext})
		return nil
	})
}

func (m *Manager) Previous(id string) (Session, error) {
	return m.onBooking(id, func(s *Session) error {
		if !wizard.CanGoBack(s.Wizard) {
			return ErrStepIncomplete
		}
		s.Wizard = wizard.Reduce(s.Wizard, wizard.Action{Type: wizard.ActionPrevious})
		return nil
	})
}

// SubmitBooking moves the wizard to submitting and starts the simulated
// payment delay. The booking is created when the delay elapses.
func (m *Manager) SubmitBooking(id string) (Session, error) {
	var (
		form  wizard.Form
		mount uint64
	)
	snapshot, err := m.onBooking(id, func(s *Session) error {
		if !wizard.CanSubmit(s.Wizard) {
			return ErrStepIncomplete
		}
		s.Wizard = wizard.Reduce(s.Wizard, wizard.Action{Type: wizard.ActionSubmit})
		s.BookingError = ""
		form, mount = s.Wizard.Form, s.mount
		return nil
	})
	if err != nil {
		return snapshot, err
	}

	m.pending.Add(1)
	m.afterFunc(m.paymentDelay, func() {
		defer m.pending.Done()
		m.finishBooking(id, mount, form)
	})
	return snapshot, nil
}

func (m *Manager) finishBooking(id string, mount uint64, form wizard.Form) {
	ctx, cancel := context.WithTimeout(context.Background(), completeTimeout)
	defer cancel()

	created, err := m.bookings.Complete(ctx, form)

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.mount != mount {
		m.log.Info().Str("session_id", id).Msg("booking view left before payment finished, state not updated")
		return
	}
	if err != nil {
		m.log.Error().Err(err).Str("session_id", id).Msg("failed to complete booking")
		s.Wizard.Submitting = false
		s.BookingError = err.Error()
		return
	}
	s.Wizard = wizard.Reduce(s.Wizard, wizard.Action{Type: wizard.ActionComplete, Booking: created})
}

// SubmitRSVP records an RSVP from the session's RSVP view.
func (m *Manager) SubmitRSVP(ctx context.Context, id string, input rsvp.Input) (Session, error) {
	m.mu.Lock()
	s, err := m.lookupLocked(id)
	if err == nil && s.View != domain.ViewRSVP {
		err = ErrNotOnRSVPView
	}
	m.mu.Unlock()
	if err != nil {
		return Session{}, err
	}

	created, err := m.rsvps.Submit(ctx, input)
	if err != nil {
		return Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, err = m.lookupLocked(id)
	if err != nil {
		return Session{}, err
	}
	if s.View == domain.ViewRSVP {
		s.RSVP = created
	}
	return *s, nil
}

// Wait blocks until every started payment timer has finished.
func (m *Manager) Wait() {
	m.pending.Wait()
}

func (m *Manager) onBooking(id string, fn func(*Session) error) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.lookupLocked(id)
	if err != nil {
		return Session{}, err
	}
	if s.View != domain.ViewBooking {
		return *s, ErrNotOnBookingView
	}
	if err := fn(s); err != nil {
		return *s, err
	}
	return *s, nil
}

func (m *Manager) checkSelection(name, value string) error {
	id := wizard.ParseID(value)
	if id == 0 {
		return nil
	}
	switch name {
	case wizard.FieldPackage:
		if _, ok := m.catalog.Package(id); !ok {
			return ErrUnknownSelection
		}
	case wizard.FieldHall:
		if _, ok := m.catalog.Hall(id); !ok {
			return ErrUnknownSelection
		}
	}
	return nil
}

func (m *Manager) lookupLocked(id string) (*Session, error) {
	m.sweepLocked()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.LastSeen = m.now()
	return s, nil
}

func (m *Manager) sweepLocked() {
	if m.ttl <= 0 {
		return
	}
	cutoff := m.now().Add(-m.ttl)
	for id, s := range m.sessions {
		if s.LastSeen.Before(cutoff) {
			delete(m.sessions, id)
			m.log.Debug().Str("session_id", id).Msg("session expired")
		}
	}
}
