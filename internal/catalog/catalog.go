package catalog

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/Domenick1991/weddingvenue/internal/money"
)

const (
	UnknownPackage = "Unknown Package"
	UnknownHall    = "Unknown Hall"
	UnknownMeal    = "Unknown Meal"
)

// Catalog holds the immutable packages, halls and meals offered by the venue.
type Catalog struct {
	packages []domain.Package
	halls    []domain.Hall
	meals    []domain.MealOption
}

// ComparisonRow is one line of the package comparison table, one value per package.
type ComparisonRow struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

func New() *Catalog {
	return NewWith(defaultPackages, defaultHalls, defaultMeals)
}

func NewWith(packages []domain.Package, halls []domain.Hall, meals []domain.MealOption) *Catalog {
	return &Catalog{packages: packages, halls: halls, meals: meals}
}

func (c *Catalog) Packages() []domain.Package {
	out := make([]domain.Package, len(c.packages))
	copy(out, c.packages)
	return out
}

func (c *Catalog) Halls() []domain.Hall {
	out := make([]domain.Hall, len(c.halls))
	copy(out, c.halls)
	return out
}

func (c *Catalog) Meals() []domain.MealOption {
	out := make([]domain.MealOption, len(c.meals))
	copy(out, c.meals)
	return out
}

func (c *Catalog) Package(id int) (domain.Package, bool) {
	for _, p := range c.packages {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Package{}, false
}

func (c *Catalog) Hall(id int) (domain.Hall, bool) {
	for _, h := range c.halls {
		if h.ID == id {
			return h, true
		}
	}
	return domain.Hall{}, false
}

func (c *Catalog) Meal(id int) (domain.MealOption, bool) {
	for _, m := range c.meals {
		if m.ID == id {
			return m, true
		}
	}
	return domain.MealOption{}, false
}

func (c *Catalog) PackageName(id int) string {
	if p, ok := c.Package(id); ok {
		return p.Name
	}
	return UnknownPackage
}

func (c *Catalog) HallName(id int) string {
	if h, ok := c.Hall(id); ok {
		return h.Name
	}
	return UnknownHall
}

func (c *Catalog) MealName(id int) string {
	if m, ok := c.Meal(id); ok {
		return m.Name
	}
	return UnknownMeal
}

// Comparison builds the side-by-side package table shown on the packages page.
func (c *Catalog) Comparison() []ComparisonRow {
	rows := []ComparisonRow{
		{Label: "Price"},
		{Label: "Guest Capacity"},
		{Label: "Photography"},
		{Label: "Entertainment"},
	}
	for _, p := range c.packages {
		rows[0].Values = append(rows[0].Values, money.Format(p.Price))
		rows[1].Values = append(rows[1].Values, fmt.Sprintf("%d guests", p.Capacity))
		rows[2].Values = append(rows[2].Values, checkMark(hasService(p, "photography")))
		rows[3].Values = append(rows[3].Values, entertainmentLabel(p.ID))
	}
	return rows
}

func hasService(p domain.Package, keyword string) bool {
	for _, s := range p.Services {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

func checkMark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func entertainmentLabel(packageID int) string {
	if label, ok := entertainment[packageID]; ok {
		return label
	}
	return entertainment[3]
}
