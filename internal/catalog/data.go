package catalog

import "github.com/Domenick1991/weddingvenue/internal/domain"

var defaultPackages = []domain.Package{
	{
		ID:         1,
		Name:       "Silver Package",
		Price:      1500000,
		Capacity:   100,
		Highlights: []string{"Budget-friendly option", "Perfect for intimate celebrations"},
		Services: []string{
			"Buffet dinner for 100 guests",
			"Basic floral decorations",
			"DJ and sound system",
			"Professional photography (4 hours)",
			"Wedding cake",
			"Bridal suite for one night",
		},
		AddOns: []string{
			"Additional guests: LKR 15,000 per person",
			"Extended photography: LKR 50,000",
			"Live band: LKR 100,000",
		},
	},
	{
		ID:         2,
		Name:       "Gold Package",
		Price:      3000000,
		Capacity:   200,
		Highlights: []string{"Most popular choice", "Enhanced decorations & entertainment"},
		Services: []string{
			"Premium buffet for 200 guests",
			"Enhanced floral & lighting decorations",
			"DJ with premium sound system",
			"Professional photography & videography (6 hours)",
			"Traditional Kandyan drummers",
			"Multi-tier wedding cake",
			"Bridal suite for two nights",
			"Welcome drinks for guests",
		},
		AddOns: []string{
			"Additional guests: LKR 12,000 per person",
			"Drone videography: LKR 75,000",
			"Photo booth: LKR 50,000",
		},
	},
	{
		ID:         3,
		Name:       "Platinum Package",
		Price:      5000000,
		Capacity:   300,
		Highlights: []string{"Luxury experience", "Premium venue & services"},
		Services: []string{
			"Luxury buffet & live cooking stations for 300 guests",
			"Premium venue with scenic garden view",
			"Live band & premium entertainment",
			"Professional photography & videography (8 hours)",
			"Drone videography included",
			"Luxury floral arrangements & lighting",
			"Designer wedding cake",
			"Honeymoon suite for three nights",
			"Champagne toast for all guests",
			"Dedicated wedding coordinator",
		},
		AddOns: []string{
			"Additional guests: LKR 10,000 per person",
			"Celebrity performer: LKR 200,000",
			"Fireworks display: LKR 150,000",
		},
	},
}

var entertainment = map[int]string{
	1: "DJ",
	2: "DJ + Drummers",
	3: "Live Band",
}

var defaultHalls = []domain.Hall{
	{
		ID:          1,
		Name:        "Grand Ballroom",
		Capacity:    300,
		Features:    []string{"Air-conditioned", "Stage", "Premium lighting", "Sound system"},
		PricePerDay: 200000,
	},
	{
		ID:          2,
		Name:        "Garden Pavilion",
		Capacity:    200,
		Features:    []string{"Open-air", "Garden view", "Natural lighting", "Scenic backdrop"},
		PricePerDay: 150000,
	},
	{
		ID:          3,
		Name:        "Rooftop Terrace",
		Capacity:    150,
		Features:    []string{"City view", "Sunset backdrop", "Intimate setting", "Modern design"},
		PricePerDay: 180000,
	},
}

var defaultMeals = []domain.MealOption{
	{ID: 1, Name: "Vegetarian", Description: "Fresh vegetables, rice, lentils, and traditional Sri Lankan vegetarian dishes"},
	{ID: 2, Name: "Non-Vegetarian", Description: "Chicken, beef, fish curry with rice and traditional accompaniments"},
	{ID: 3, Name: "Vegan", Description: "Plant-based dishes with coconut milk curries and fresh vegetables"},
	{ID: 4, Name: "Seafood Special", Description: "Fresh fish, prawns, and crab preparations with traditional spices"},
}

// DefaultBookedDates are the dates already taken before the catalog is generated.
var DefaultBookedDates = []string{
	"2025-01-15", "2025-01-22", "2025-02-14", "2025-02-28",
	"2025-03-08", "2025-03-15", "2025-04-12", "2025-04-26",
}
