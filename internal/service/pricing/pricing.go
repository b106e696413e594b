package pricing

import (
	"github.com/Domenick1991/weddingvenue/internal/catalog"
	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/Domenick1991/weddingvenue/internal/money"
)

// DefaultOverageRate applies to any package without its own tier.
const DefaultOverageRate int64 = 10000

// Higher-capacity packages charge less per extra guest.
var overageRates = map[int]int64{
	1: 15000,
	2: 12000,
	3: 10000,
}

type PricingUseCase interface {
	Quote(packageID, hallID, guestCount int) Quote
}

// Quote is the price breakdown shown before payment.
type Quote struct {
	PackageID      int    `json:"package_id"`
	PackageName    string `json:"package_name"`
	HallID         int    `json:"hall_id"`
	HallName       string `json:"hall_name"`
	GuestCount     int    `json:"guest_count"`
	PackagePrice   int64  `json:"package_price"`
	HallPrice      int64  `json:"hall_price"`
	ExtraGuests    int    `json:"extra_guests"`
	RatePerGuest   int64  `json:"rate_per_guest"`
	Overage        int64  `json:"overage"`
	Total          int64  `json:"total"`
	FormattedTotal string `json:"formatted_total"`
}

func Rate(packageID int) int64 {
	if rate, ok := overageRates[packageID]; ok {
		return rate
	}
	return DefaultOverageRate
}

// ExtraGuests is never negative.
func ExtraGuests(guestCount int, pkg domain.Package) int {
	return max(0, guestCount-pkg.Capacity)
}

func Overage(guestCount int, pkg domain.Package) int64 {
	return int64(ExtraGuests(guestCount, pkg)) * Rate(pkg.ID)
}

func ComputeTotal(pkg domain.Package, hall domain.Hall, guestCount int) int64 {
	return pkg.Price + hall.PricePerDay + Overage(guestCount, pkg)
}

type Calculator struct {
	catalog *catalog.Catalog
}

func NewCalculator(c *catalog.Catalog) *Calculator {
	return &Calculator{catalog: c}
}

// Quote prices a selection by id. An unselected or unknown package or hall
// contributes nothing, matching a half-filled booking form.
func (c *Calculator) Quote(packageID, hallID, guestCount int) Quote {
	q := Quote{
		PackageID:   packageID,
		PackageName: c.catalog.PackageName(packageID),
		HallID:      hallID,
		HallName:    c.catalog.HallName(hallID),
		GuestCount:  guestCount,
	}

	pkg, hasPackage := c.catalog.Package(packageID)
	hall, _ := c.catalog.Hall(hallID)

	q.HallPrice = hall.PricePerDay
	if hasPackage {
		q.PackagePrice = pkg.Price
		q.ExtraGuests = ExtraGuests(guestCount, pkg)
		q.RatePerGuest = Rate(pkg.ID)
		q.Overage = Overage(guestCount, pkg)
	}
	q.Total = q.PackagePrice + q.HallPrice + q.Overage
	q.FormattedTotal = money.Format(q.Total)
	return q
}

var _ PricingUseCase = (*Calculator)(nil)
