package domain

import "time"

type Attendance string

const (
	AttendanceYes Attendance = "yes"
	AttendanceNo  Attendance = "no"
)

type RSVP struct {
	ID                  string     `json:"rsvp_id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone,omitempty"`
	Attending           Attendance `json:"attending"`
	MealPreference      int        `json:"meal_preference,omitempty"`
	PlusOne             bool       `json:"plus_one"`
	PlusOneName         string     `json:"plus_one_name,omitempty"`
	PlusOneMeal         int        `json:"plus_one_meal,omitempty"`
	DietaryRestrictions string     `json:"dietary_restrictions,omitempty"`
	Message             string     `json:"message,omitempty"`
	SubmittedAt         time.Time  `json:"submitted_at"`
}

// IsAttending reports whether the guest accepted.
func (r RSVP) IsAttending() bool {
	return r.Attending == AttendanceYes
}

// BringsPlusOne is only true for attending guests.
func (r RSVP) BringsPlusOne() bool {
	return r.IsAttending() && r.PlusOne
}
