package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
)

const DefaultPaymentMethod = "credit-card"

// PaymentDetails is the payment metadata kept with a booking. It is never
// validated and never charged.
type PaymentDetails struct {
	Method       string `json:"payment_method"`
	CardName     string `json:"card_name,omitempty"`
	CardLastFour string `json:"card_last_four,omitempty"`
}

type Booking struct {
	ID              string         `json:"booking_id"`
	BrideName       string         `json:"bride_name"`
	GroomName       string         `json:"groom_name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	WeddingDate     string         `json:"wedding_date"`
	PackageID       int            `json:"package_id"`
	HallID          int            `json:"hall_id"`
	GuestCount      int            `json:"guest_count"`
	SpecialRequests string         `json:"special_requests,omitempty"`
	Payment         PaymentDetails `json:"payment"`
	TotalAmount     int64          `json:"total_amount"`
	CreatedAt       time.Time      `json:"booking_date"`
	Status          BookingStatus  `json:"status"`
}
