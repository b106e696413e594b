// Package dashboard recomputes the admin dashboard from the full booking and
// RSVP lists on every request.
package dashboard

import (
	"context"
	"strings"

	"github.com/Domenick1991/weddingvenue/internal/catalog"
	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/Domenick1991/weddingvenue/internal/money"
	"github.com/Domenick1991/weddingvenue/internal/repository"
)

type Tab string

const (
	TabOverview Tab = "overview"
	TabBookings Tab = "bookings"
	TabRSVPs    Tab = "rsvps"
	TabMeals    Tab = "meals"
)

// ParseTab falls back to the overview for unknown names.
func ParseTab(name string) Tab {
	switch t := Tab(strings.ToLower(strings.TrimSpace(name))); t {
	case TabBookings, TabRSVPs, TabMeals:
		return t
	default:
		return TabOverview
	}
}

type Stats struct {
	TotalBookings    int    `json:"total_bookings"`
	TotalRSVPs       int    `json:"total_rsvps"`
	TotalRevenue     int64  `json:"total_revenue"`
	FormattedRevenue string `json:"formatted_revenue"`
	Attending        int    `json:"attending"`
	NotAttending     int    `json:"not_attending"`
	TotalGuests      int    `json:"total_guests"`
}

type MealCount struct {
	MealID int    `json:"meal_id"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

type DietaryNote struct {
	Name         string `json:"name"`
	Restrictions string `json:"restrictions"`
}

type BookingRow struct {
	domain.Booking
	PackageName    string `json:"package_name"`
	HallName       string `json:"hall_name"`
	FormattedTotal string `json:"formatted_total"`
}

type RSVPRow struct {
	domain.RSVP
	MealName        string `json:"meal_name,omitempty"`
	PlusOneMealName string `json:"plus_one_meal_name,omitempty"`
}

// Dashboard is one rendered tab. Only the sections of the selected tab are
// populated besides Stats.
type Dashboard struct {
	Tab      Tab           `json:"tab"`
	Stats    Stats         `json:"stats"`
	Bookings []BookingRow  `json:"bookings,omitempty"`
	RSVPs    []RSVPRow     `json:"rsvps,omitempty"`
	Meals    []MealCount   `json:"meals,omitempty"`
	Dietary  []DietaryNote `json:"dietary,omitempty"`
}

func Aggregate(bookings []domain.Booking, rsvps []domain.RSVP) Stats {
	stats := Stats{
		TotalBookings: len(bookings),
		TotalRSVPs:    len(rsvps),
	}
	for _, b := range bookings {
		stats.TotalRevenue += b.TotalAmount
	}
	stats.FormattedRevenue = money.Format(stats.TotalRevenue)

	for _, r := range rsvps {
		switch {
		case r.IsAttending():
			stats.Attending++
			stats.TotalGuests++
			if r.PlusOne {
				stats.TotalGuests++
			}
		case r.Attending == domain.AttendanceNo:
			stats.NotAttending++
		}
	}
	return stats
}

// MealTally counts attending guests and their plus-ones per meal option, in
// catalog order.
func MealTally(meals []domain.MealOption, rsvps []domain.RSVP) []MealCount {
	tally := make([]MealCount, 0, len(meals))
	for _, meal := range meals {
		count := 0
		for _, r := range rsvps {
			if !r.IsAttending() {
				continue
			}
			if r.MealPreference == meal.ID {
				count++
			}
			if r.PlusOne && r.PlusOneMeal == meal.ID {
				count++
			}
		}
		tally = append(tally, MealCount{MealID: meal.ID, Name: meal.Name, Count: count})
	}
	return tally
}

func DietaryList(rsvps []domain.RSVP) []DietaryNote {
	var notes []DietaryNote
	for _, r := range rsvps {
		if r.IsAttending() && r.DietaryRestrictions != "" {
			notes = append(notes, DietaryNote{Name: r.Name, Restrictions: r.DietaryRestrictions})
		}
	}
	return notes
}

type DashboardUseCase interface {
	View(ctx context.Context, tab Tab) (*Dashboard, error)
}

type DashboardService struct {
	store   repository.Store
	catalog *catalog.Catalog
}

func NewDashboardService(store repository.Store, c *catalog.Catalog) *DashboardService {
	return &DashboardService{store: store, catalog: c}
}

func (s *DashboardService) View(ctx context.Context, tab Tab) (*Dashboard, error) {
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	rsvps, err := s.store.ListRSVPs(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Tab:   tab,
		Stats: Aggregate(bookings, rsvps),
	}
	switch tab {
	case TabBookings:
		d.Bookings = make([]BookingRow, 0, len(bookings))
		for _, b := range bookings {
			d.Bookings = append(d.Bookings, BookingRow{
				Booking:        b,
				PackageName:    s.catalog.PackageName(b.PackageID),
				HallName:       s.catalog.HallName(b.HallID),
				FormattedTotal: money.Format(b.TotalAmount),
			})
		}
	case TabRSVPs:
		d.RSVPs = make([]RSVPRow, 0, len(rsvps))
		for _, r := range rsvps {
			row := RSVPRow{RSVP: r}
			if r.IsAttending() {
				row.MealName = s.catalog.MealName(r.MealPreference)
				if r.PlusOne {
					row.PlusOneMealName = s.catalog.MealName(r.PlusOneMeal)
				}
			}
			d.RSVPs = append(d.RSVPs, row)
		}
	case TabMeals:
		d.Meals = MealTally(s.catalog.Meals(), rsvps)
		d.Dietary = DietaryList(rsvps)
	}
	return d, nil
}

var _ DashboardUseCase = (*DashboardService)(nil)
