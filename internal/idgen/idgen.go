package idgen

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	BookingPrefix = "WED"
	RSVPPrefix    = "RSVP"

	StrategyMonotonic = "monotonic"
	StrategyUUID      = "uuid"
)

type Generator interface {
	NewID(prefix string) string
}

// Monotonic issues prefix+millisecond tokens. Tokens are strictly increasing
// per generator, so two calls inside the same millisecond still differ.
type Monotonic struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewMonotonic() *Monotonic {
	return &Monotonic{now: time.Now}
}

// NewMonotonicWithClock is used by tests to pin the clock.
func NewMonotonicWithClock(now func() time.Time) *Monotonic {
	return &Monotonic{now: now}
}

func (g *Monotonic) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	token := g.now().UnixMilli()
	if token <= g.last {
		token = g.last + 1
	}
	g.last = token
	return prefix + strconv.FormatInt(token, 10)
}

type UUID struct{}

func (UUID) NewID(prefix string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// New picks a generator by strategy name; anything unknown is monotonic.
func New(strategy string) Generator {
	if strategy == StrategyUUID {
		return UUID{}
	}
	return NewMonotonic()
}

var (
	_ Generator = (*Monotonic)(nil)
	_ Generator = UUID{}
)
