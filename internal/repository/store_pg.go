package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS bookings (
	seq              BIGSERIAL PRIMARY KEY,
	booking_id       TEXT NOT NULL UNIQUE,
	bride_name       TEXT NOT NULL,
	groom_name       TEXT NOT NULL,
	email            TEXT NOT NULL,
	phone            TEXT NOT NULL DEFAULT '',
	wedding_date     TEXT NOT NULL,
	package_id       INT NOT NULL,
	hall_id          INT NOT NULL,
	guest_count      INT NOT NULL,
	special_requests TEXT NOT NULL DEFAULT '',
	payment          JSONB NOT NULL,
	total_amount     BIGINT NOT NULL,
	status           TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS rsvps (
	seq                  BIGSERIAL PRIMARY KEY,
	rsvp_id              TEXT NOT NULL UNIQUE,
	name                 TEXT NOT NULL,
	email                TEXT NOT NULL,
	phone                TEXT NOT NULL DEFAULT '',
	attending            TEXT NOT NULL,
	meal_preference      INT NOT NULL DEFAULT 0,
	plus_one             BOOLEAN NOT NULL DEFAULT FALSE,
	plus_one_name        TEXT NOT NULL DEFAULT '',
	plus_one_meal        INT NOT NULL DEFAULT 0,
	dietary_restrictions TEXT NOT NULL DEFAULT '',
	message              TEXT NOT NULL DEFAULT '',
	submitted_at         TIMESTAMPTZ NOT NULL
);`

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// Migrate creates the tables when missing.
func (r *PGStore) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, pgSchema); err != nil {
		return fmt.Errorf("migrate postgres: %w", err)
	}
	return nil
}

func (r *PGStore) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT booking_id, bride_name, groom_name, email, phone, wedding_date, package_id, hall_id, guest_count, special_requests, payment, total_amount, status, created_at FROM bookings ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var (
			b       domain.Booking
			payment []byte
		)
		if err := rows.Scan(&b.ID, &b.BrideName, &b.GroomName, &b.Email, &b.Phone, &b.WeddingDate, &b.PackageID, &b.HallID, &b.GuestCount, &b.SpecialRequests, &payment, &b.TotalAmount, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payment, &b.Payment); err != nil {
			return nil, fmt.Errorf("decode payment of %s: %w", b.ID, err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGStore) AppendBooking(ctx context.Context, b domain.Booking) error {
	payment, err := json.Marshal(b.Payment)
	if err != nil {
		return fmt.Errorf("failed to marshal payment: %w", err)
	}

	_, err = r.db.Exec(ctx, `INSERT INTO bookings (booking_id, bride_name, groom_name, email, phone, wedding_date, package_id, hall_id, guest_count, special_requests, payment, total_amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		b.ID, b.BrideName, b.GroomName, b.Email, b.Phone, b.WeddingDate, b.PackageID, b.HallID, b.GuestCount, b.SpecialRequests, payment, b.TotalAmount, b.Status, b.CreatedAt)
	return err
}

func (r *PGStore) ListRSVPs(ctx context.Context) ([]domain.RSVP, error) {
	rows, err := r.db.Query(ctx, `SELECT rsvp_id, name, email, phone, attending, meal_preference, plus_one, plus_one_name, plus_one_meal, dietary_restrictions, message, submitted_at FROM rsvps ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rsvps := make([]domain.RSVP, 0)
	for rows.Next() {
		var v domain.RSVP
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Attending, &v.MealPreference, &v.PlusOne, &v.PlusOneName, &v.PlusOneMeal, &v.DietaryRestrictions, &v.Message, &v.SubmittedAt); err != nil {
			return nil, err
		}
		rsvps = append(rsvps, v)
	}
	return rsvps, rows.Err()
}

func (r *PGStore) AppendRSVP(ctx context.Context, v domain.RSVP) error {
	_, err := r.db.Exec(ctx, `INSERT INTO rsvps (rsvp_id, name, email, phone, attending, meal_preference, plus_one, plus_one_name, plus_one_meal, dietary_restrictions, message, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		v.ID, v.Name, v.Email, v.Phone, v.Attending, v.MealPreference, v.PlusOne, v.PlusOneName, v.PlusOneMeal, v.DietaryRestrictions, v.Message, v.SubmittedAt)
	return err
}

var _ Store = (*PGStore)(nil)
