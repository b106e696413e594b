package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/weddingvenue/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type bookingRecord struct {
	Seq             uint           `gorm:"primaryKey;autoIncrement;column:seq"`
	BookingID       string         `gorm:"column:booking_id;uniqueIndex;size:64"`
	BrideName       string         `gorm:"column:bride_name;size:255"`
	GroomName       string         `gorm:"column:groom_name;size:255"`
	Email           string         `gorm:"column:email;size:255"`
	Phone           string         `gorm:"column:phone;size:64"`
	WeddingDate     string         `gorm:"column:wedding_date;size:10"`
	PackageID       int            `gorm:"column:package_id"`
	HallID          int            `gorm:"column:hall_id"`
	GuestCount      int            `gorm:"column:guest_count"`
	SpecialRequests string         `gorm:"column:special_requests;type:text"`
	Payment         datatypes.JSON `gorm:"column:payment"`
	TotalAmount     int64          `gorm:"column:total_amount"`
	Status          string         `gorm:"column:status;size:32"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
}

func (bookingRecord) TableName() string { return "bookings" }

type rsvpRecord struct {
	Seq                 uint      `gorm:"primaryKey;autoIncrement;column:seq"`
	RSVPID              string    `gorm:"column:rsvp_id;uniqueIndex;size:64"`
	Name                string    `gorm:"column:name;size:255"`
	Email               string    `gorm:"column:email;size:255"`
	Phone               string    `gorm:"column:phone;size:64"`
	Attending           string    `gorm:"column:attending;size:8"`
	MealPreference      int       `gorm:"column:meal_preference"`
	PlusOne             bool      `gorm:"column:plus_one"`
	PlusOneName         string    `gorm:"column:plus_one_name;size:255"`
	PlusOneMeal         int       `gorm:"column:plus_one_meal"`
	DietaryRestrictions string    `gorm:"column:dietary_restrictions;type:text"`
	Message             string    `gorm:"column:message;type:text"`
	SubmittedAt         time.Time `gorm:"column:submitted_at"`
}

func (rsvpRecord) TableName() string { return "rsvps" }

// GormStore persists records through gorm (MySQL in production).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Migrate() error {
	if err := s.db.AutoMigrate(&bookingRecord{}, &rsvpRecord{}); err != nil {
		return fmt.Errorf("migrate gorm: %w", err)
	}
	return nil
}

func (s *GormStore) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var records []bookingRecord
	if err := s.db.WithContext(ctx).Order("seq").Find(&records).Error; err != nil {
		return nil, err
	}

	bookings := make([]domain.Booking, 0, len(records))
	for _, rec := range records {
		b, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (s *GormStore) AppendBooking(ctx context.Context, b domain.Booking) error {
	rec, err := bookingRecordFrom(b)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(&rec).Error
}

func (s *GormStore) ListRSVPs(ctx context.Context) ([]domain.RSVP, error) {
	var records []rsvpRecord
	if err := s.db.WithContext(ctx).Order("seq").Find(&records).Error; err != nil {
		return nil, err
	}

	rsvps := make([]domain.RSVP, 0, len(records))
	for _, rec := range records {
		rsvps = append(rsvps, rec.toDomain())
	}
	return rsvps, nil
}

func (s *GormStore) AppendRSVP(ctx context.Context, v domain.RSVP) error {
	rec := rsvpRecordFrom(v)
	return s.db.WithContext(ctx).Create(&rec).Error
}

func bookingRecordFrom(b domain.Booking) (bookingRecord, error) {
	payment, err := json.Marshal(b.Payment)
	if err != nil {
		return bookingRecord{}, fmt.Errorf("failed to marshal payment: %w", err)
	}
	return bookingRecord{
		BookingID:       b.ID,
		BrideName:       b.BrideName,
		GroomName:       b.GroomName,
		Email:           b.Email,
		Phone:           b.Phone,
		WeddingDate:     b.WeddingDate,
		PackageID:       b.PackageID,
		HallID:          b.HallID,
		GuestCount:      b.GuestCount,
		SpecialRequests: b.SpecialRequests,
		Payment:         datatypes.JSON(payment),
		TotalAmount:     b.TotalAmount,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
	}, nil
}

func (r bookingRecord) toDomain() (domain.Booking, error) {
	b := domain.Booking{
		ID:              r.BookingID,
		BrideName:       r.BrideName,
		GroomName:       r.GroomName,
		Email:           r.Email,
		Phone:           r.Phone,
		WeddingDate:     r.WeddingDate,
		PackageID:       r.PackageID,
		HallID:          r.HallID,
		GuestCount:      r.GuestCount,
		SpecialRequests: r.SpecialRequests,
		TotalAmount:     r.TotalAmount,
		Status:          domain.BookingStatus(r.Status),
		CreatedAt:       r.CreatedAt,
	}
	if len(r.Payment) > 0 {
		if err := json.Unmarshal(r.Payment, &b.Payment); err != nil {
			return domain.Booking{}, fmt.Errorf("decode payment of %s: %w", r.BookingID, err)
		}
	}
	return b, nil
}

func rsvpRecordFrom(v domain.RSVP) rsvpRecord {
	return rsvpRecord{
		RSVPID:              v.ID,
		Name:                v.Name,
		Email:               v.Email,
		Phone:               v.Phone,
		Attending:           string(v.Attending),
		MealPreference:      v.MealPreference,
		PlusOne:             v.PlusOne,
		PlusOneName:         v.PlusOneName,
		PlusOneMeal:         v.PlusOneMeal,
		DietaryRestrictions: v.DietaryRestrictions,
		Message:             v.Message,
		SubmittedAt:         v.SubmittedAt,
	}
}

func (r rsvpRecord) toDomain() domain.RSVP {
	return domain.RSVP{
		ID:                  r.RSVPID,
		Name:                r.Name,
		Email:               r.Email,
		Phone:               r.Phone,
		Attending:           domain.Attendance(r.Attending),
		MealPreference:      r.MealPreference,
		PlusOne:             r.PlusOne,
		PlusOneName:         r.PlusOneName,
		PlusOneMeal:         r.PlusOneMeal,
		DietaryRestrictions: r.DietaryRestrictions,
		Message:             r.Message,
		SubmittedAt:         r.SubmittedAt,
	}
}

var _ Store = (*GormStore)(nil)
