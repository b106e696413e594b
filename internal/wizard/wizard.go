// Package wizard models the three-step booking form as an immutable state
// value advanced by Reduce.
package wizard

import (
	"strconv"
	"strings"

	"github.com/Domenick1991/weddingvenue/internal/domain"
)

type Step int

const (
	StepWeddingDetails Step = iota + 1
	StepPackageAndHall
	StepPayment
	StepCompleted
)

func (s Step) String() string {
	switch s {
	case StepWeddingDetails:
		return "wedding_details"
	case StepPackageAndHall:
		return "package_and_hall"
	case StepPayment:
		return "payment"
	case StepCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Form field names accepted by ActionSetField.
const (
	FieldBrideName       = "brideName"
	FieldGroomName       = "groomName"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldWeddingDate     = "weddingDate"
	FieldPackage         = "selectedPackage"
	FieldHall            = "selectedHall"
	FieldGuestCount      = "guestCount"
	FieldSpecialRequests = "specialRequests"
	FieldPaymentMethod   = "paymentMethod"
	FieldCardNumber      = "cardNumber"
	FieldExpiryDate      = "expiryDate"
	FieldCVV             = "cvv"
	FieldCardName        = "cardName"
	FieldAgreeTerms      = "agreeTerms"
)

var fields = map[string]bool{
	FieldBrideName: true, FieldGroomName: true, FieldEmail: true, FieldPhone: true,
	FieldWeddingDate: true, FieldPackage: true, FieldHall: true, FieldGuestCount: true,
	FieldSpecialRequests: true, FieldPaymentMethod: true, FieldCardNumber: true,
	FieldExpiryDate: true, FieldCVV: true, FieldCardName: true, FieldAgreeTerms: true,
}

// IsField reports whether name is a form field accepted by SetField.
func IsField(name string) bool {
	return fields[name]
}

// ParseID parses a package or hall selection. Blank means no selection.
func ParseID(v string) int {
	return atoi(v)
}

type Form struct {
	BrideName       string `json:"bride_name"`
	GroomName       string `json:"groom_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	WeddingDate     string `json:"wedding_date"`
	PackageID       int    `json:"selected_package"`
	HallID          int    `json:"selected_hall"`
	GuestCount      int    `json:"guest_count"`
	SpecialRequests string `json:"special_requests"`
	PaymentMethod   string `json:"payment_method"`
	CardNumber      string `json:"-"`
	ExpiryDate      string `json:"expiry_date"`
	CVV             string `json:"-"`
	CardName        string `json:"card_name"`
	AgreeTerms      bool   `json:"agree_terms"`
}

// CardLastFour returns the last four digits of the card number, if any.
func (f Form) CardLastFour() string {
	var digits []rune
	for _, r := range f.CardNumber {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return string(digits)
}

type State struct {
	Step       Step            `json:"step"`
	Form       Form            `json:"form"`
	Submitting bool            `json:"submitting"`
	Booking    *domain.Booking `json:"booking,omitempty"`
}

type ActionType string

const (
	ActionSetField ActionType = "set_field"
	ActionNext     ActionType = "next"
	ActionPrevious ActionType = "previous"
	ActionSubmit   ActionType = "submit"
	ActionComplete ActionType = "complete"
	ActionReset    ActionType = "reset"
)

type Action struct {
	Type    ActionType
	Field   string
	Value   string
	Booking *domain.Booking
}

func SetField(field, value string) Action {
	return Action{Type: ActionSetField, Field: field, Value: value}
}

func Initial() State {
	return State{
		Step: StepWeddingDetails,
		Form: Form{PaymentMethod: domain.DefaultPaymentMethod},
	}
}

// Reduce returns the state after a. Actions whose guard fails leave the
// state unchanged.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionSetField:
		if s.Submitting || s.Step == StepCompleted {
			return s
		}
		s.Form = setField(s.Form, a.Field, a.Value)
	case ActionNext:
		if CanAdvance(s) {
			s.Step++
		}
	case ActionPrevious:
		if CanGoBack(s) {
			s.Step--
		}
	case ActionSubmit:
		if CanSubmit(s) {
			s.Submitting = true
		}
	case ActionComplete:
		if s.Submitting && a.Booking != nil {
			s.Step = StepCompleted
			s.Submitting = false
			s.Booking = a.Booking
		}
	case ActionReset:
		return Initial()
	}
	return s
}

// CanAdvance is the enabled state of the Next button.
func CanAdvance(s State) bool {
	if s.Submitting {
		return false
	}
	switch s.Step {
	case StepWeddingDetails:
		return filled(s.Form.BrideName, s.Form.GroomName, s.Form.Email, s.Form.WeddingDate)
	case StepPackageAndHall:
		return s.Form.PackageID > 0 && s.Form.HallID > 0
	default:
		return false
	}
}

// CanGoBack is the enabled state of the Previous button.
func CanGoBack(s State) bool {
	return !s.Submitting && (s.Step == StepPackageAndHall || s.Step == StepPayment)
}

// CanSubmit is the enabled state of the Complete Booking button.
func CanSubmit(s State) bool {
	if s.Submitting || s.Step != StepPayment {
		return false
	}
	f := s.Form
	return f.AgreeTerms && filled(f.PaymentMethod, f.CardName, f.CardNumber, f.ExpiryDate, f.CVV)
}

func filled(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func setField(f Form, field, value string) Form {
	switch field {
	case FieldBrideName:
		f.BrideName = value
	case FieldGroomName:
		f.GroomName = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldWeddingDate:
		f.WeddingDate = value
	case FieldPackage:
		f.PackageID = atoi(value)
	case FieldHall:
		f.HallID = atoi(value)
	case FieldGuestCount:
		f.GuestCount = atoi(value)
	case FieldSpecialRequests:
		f.SpecialRequests = value
	case FieldPaymentMethod:
		f.PaymentMethod = value
	case FieldCardNumber:
		f.CardNumber = value
	case FieldExpiryDate:
		f.ExpiryDate = value
	case FieldCVV:
		f.CVV = value
	case FieldCardName:
		f.CardName = value
	case FieldAgreeTerms:
		f.AgreeTerms = parseBool(value)
	}
	return f
}

func atoi(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}
