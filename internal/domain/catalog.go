package domain

type Package struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Price      int64    `json:"price"`
	Capacity   int      `json:"capacity"`
	Highlights []string `json:"highlights"`
	Services   []string `json:"services"`
	AddOns     []string `json:"add_ons"`
}

type Hall struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	Features    []string `json:"features"`
	PricePerDay int64    `json:"price_per_day"`
}

type MealOption struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HallAvailability is a hall as offered on one calendar date.
type HallAvailability struct {
	Hall
	Available bool `json:"available"`
}

type DateAvailability struct {
	Date      string             `json:"date"`
	Available bool               `json:"available"`
	Halls     []HallAvailability `json:"halls"`
}
