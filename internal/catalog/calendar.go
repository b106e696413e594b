package catalog

import (
	"math/rand/v2"
	"time"

	"github.com/Domenick1991/weddingvenue/internal/domain"
)

const (
	DateLayout = "2006-01-02"

	// The calendar covers days [HorizonStartDays, HorizonEndDays) after generation.
	HorizonStartDays = 7
	HorizonEndDays   = 180

	// A hall on a booked date stays bookable when a draw exceeds this.
	hallOverrideThreshold = 0.3
)

// RandomSource yields floats in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a seeded source; seed 0 picks a time-based seed.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// Day truncates t to its UTC calendar date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GenerateCalendar builds the date -> hall availability table once.
// A date on the booked list is unavailable, but each hall on it is still
// flagged available when its draw exceeds the threshold. Draws happen only
// for booked dates, in hall order.
func GenerateCalendar(today time.Time, booked []string, halls []domain.Hall, rnd RandomSource) []domain.DateAvailability {
	denied := make(map[string]struct{}, len(booked))
	for _, d := range booked {
		denied[d] = struct{}{}
	}

	start := Day(today)
	dates := make([]domain.DateAvailability, 0, HorizonEndDays-HorizonStartDays)
	for i := HorizonStartDays; i < HorizonEndDays; i++ {
		date := start.AddDate(0, 0, i).Format(DateLayout)
		_, isBooked := denied[date]
		dateAvailable := !isBooked

		entries := make([]domain.HallAvailability, 0, len(halls))
		for _, h := range halls {
			entries = append(entries, domain.HallAvailability{
				Hall:      h,
				Available: dateAvailable || rnd.Float64() > hallOverrideThreshold,
			})
		}

		dates = append(dates, domain.DateAvailability{
			Date:      date,
			Available: dateAvailable,
			Halls:     entries,
		})
	}
	return dates
}
