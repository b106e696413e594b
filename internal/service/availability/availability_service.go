package availability

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Domenick1991/weddingvenue/internal/catalog"
	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidDate    = errors.New("date must be formatted as YYYY-MM-DD")
	ErrDateOutOfRange = errors.New("date is outside the booking horizon")
)

type AvailabilityUseCase interface {
	Calendar(ctx context.Context) ([]domain.DateAvailability, error)
	Availability(ctx context.Context, date string) (*domain.DateAvailability, error)
	BookableHalls(ctx context.Context, date string) ([]domain.Hall, error)
	Month(ctx context.Context, year int, month time.Month) (*MonthView, error)
}

// CalendarCache stores calendars by the UTC day they were generated on, so a
// calendar from an earlier day never serves a later horizon.
type CalendarCache interface {
	GetCalendar(ctx context.Context, day string) ([]domain.DateAvailability, error)
	SetCalendar(ctx context.Context, day string, dates []domain.DateAvailability) error
}

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	Day       int    `json:"day"`
	Date      string `json:"date"`
	Available bool   `json:"available"`
	Past      bool   `json:"past"`
}

// MonthView is a Sunday-first month grid; nil entries are the blank cells
// before the first day.
type MonthView struct {
	Year  int            `json:"year"`
	Month time.Month     `json:"month"`
	Label string         `json:"label"`
	Days  []*CalendarDay `json:"days"`
}

type AvailabilityService struct {
	catalog *catalog.Catalog
	cache   CalendarCache
	booked  []string
	rnd     catalog.RandomSource
	now     func() time.Time
	log     zerolog.Logger

	mu     sync.Mutex
	dates  []domain.DateAvailability
	byDate map[string]int
}

type Option func(*AvailabilityService)

func WithCache(cache CalendarCache) Option {
	return func(s *AvailabilityService) {
		s.cache = cache
	}
}

func WithBookedDates(dates []string) Option {
	return func(s *AvailabilityService) {
		s.booked = dates
	}
}

func WithRandomSource(rnd catalog.RandomSource) Option {
	return func(s *AvailabilityService) {
		s.rnd = rnd
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *AvailabilityService) {
		s.now = now
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *AvailabilityService) {
		s.log = log
	}
}

func NewAvailabilityService(c *catalog.Catalog, opts ...Option) *AvailabilityService {
	s := &AvailabilityService{
		catalog: c,
		booked:  catalog.DefaultBookedDates,
		now:     time.Now,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = catalog.NewRandomSource(0)
	}
	return s
}

// Calendar returns the availability table. It is generated (or taken from
// the cache) on first use and never changes afterwards; bookings do not
// feed back into it.
func (s *AvailabilityService) Calendar(ctx context.Context) ([]domain.DateAvailability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dates != nil {
		return s.snapshot(), nil
	}

	now := s.now()
	day := catalog.Day(now).Format(catalog.DateLayout)
	if s.cache != nil {
		if cached, err := s.cache.GetCalendar(ctx, day); err != nil {
			s.log.Warn().Err(err).Msg("calendar cache read failed")
		} else if cached != nil {
			s.setDates(cached)
			return s.snapshot(), nil
		}
	}

	dates := catalog.GenerateCalendar(now, s.booked, s.catalog.Halls(), s.rnd)
	if s.cache != nil {
		if err := s.cache.SetCalendar(ctx, day, dates); err != nil {
			s.log.Warn().Err(err).Msg("calendar cache write failed")
		}
	}
	s.setDates(dates)
	s.log.Info().Int("days", len(dates)).Msg("availability calendar generated")
	return s.snapshot(), nil
}

func (s *AvailabilityService) snapshot() []domain.DateAvailability {
	out := make([]domain.DateAvailability, len(s.dates))
	copy(out, s.dates)
	return out
}

func (s *AvailabilityService) setDates(dates []domain.DateAvailability) {
	s.dates = dates
	s.byDate = make(map[string]int, len(dates))
	for i, d := range dates {
		s.byDate[d.Date] = i
	}
}

func (s *AvailabilityService) Availability(ctx context.Context, date string) (*domain.DateAvailability, error) {
	if _, err := time.Parse(catalog.DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	dates, err := s.Calendar(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	idx, ok := s.byDate[date]
	s.mu.Unlock()
	if !ok {
		return nil, ErrDateOutOfRange
	}

	d := dates[idx]
	return &d, nil
}

// BookableHalls lists the halls flagged available on date, whatever the
// date-level flag says.
func (s *AvailabilityService) BookableHalls(ctx context.Context, date string) ([]domain.Hall, error) {
	d, err := s.Availability(ctx, date)
	if err != nil {
		return nil, err
	}

	halls := make([]domain.Hall, 0, len(d.Halls))
	for _, h := range d.Halls {
		if h.Available {
			halls = append(halls, h.Hall)
		}
	}
	return halls, nil
}

func (s *AvailabilityService) Month(ctx context.Context, year int, month time.Month) (*MonthView, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidDate
	}
	if _, err := s.Calendar(ctx); err != nil {
		return nil, err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	today := catalog.Day(s.now())

	view := &MonthView{
		Year:  year,
		Month: month,
		Label: first.Format("January 2006"),
		Days:  make([]*CalendarDay, int(first.Weekday()), int(first.Weekday())+daysInMonth),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for day := 1; day <= daysInMonth; day++ {
		date := first.AddDate(0, 0, day-1)
		dateString := date.Format(catalog.DateLayout)
		past := !date.After(today)

		available := false
		if idx, ok := s.byDate[dateString]; ok {
			available = s.dates[idx].Available
		}

		view.Days = append(view.Days, &CalendarDay{
			Day:       day,
			Date:      dateString,
			Available: available && !past,
			Past:      past,
		})
	}
	return view, nil
}

var _ AvailabilityUseCase = (*AvailabilityService)(nil)
