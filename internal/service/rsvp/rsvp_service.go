package rsvp

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Domenick1991/weddingvenue/internal/catalog"
	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/Domenick1991/weddingvenue/internal/idgen"
	"github.com/Domenick1991/weddingvenue/internal/kafka"
	"github.com/Domenick1991/weddingvenue/internal/repository"
)

// ErrIncomplete is returned when name, email or the attendance choice is
// missing. It mirrors the disabled submit button.
var ErrIncomplete = errors.New("name, email and attendance are required")

type RSVPUseCase interface {
	Submit(ctx context.Context, input Input) (*domain.RSVP, error)
	List(ctx context.Context) ([]domain.RSVP, error)
	Summary(ctx context.Context) (Summary, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Input is the RSVP form. Meal and plus-one fields only apply to guests
// who accept.
type Input struct {
	Name                string            `json:"name"`
	Email               string            `json:"email" validate:"omitempty,email"`
	Phone               string            `json:"phone"`
	Attending           domain.Attendance `json:"attending" validate:"omitempty,oneof=yes no"`
	MealPreference      int               `json:"meal_preference" validate:"required_if=Attending yes,meal"`
	PlusOne             bool              `json:"plus_one"`
	PlusOneName         string            `json:"plus_one_name" validate:"required_if=Attending yes PlusOne true"`
	PlusOneMeal         int               `json:"plus_one_meal" validate:"required_if=Attending yes PlusOne true,meal"`
	DietaryRestrictions string            `json:"dietary_restrictions"`
	Message             string            `json:"message"`
}

// Ready reports whether the submit guard passes.
func (in Input) Ready() bool {
	return strings.TrimSpace(in.Name) != "" &&
		strings.TrimSpace(in.Email) != "" &&
		in.Attending != ""
}

// normalized drops fields that do not apply to the attendance choice.
func (in Input) normalized() Input {
	if in.Attending != domain.AttendanceYes {
		in.MealPreference = 0
		in.PlusOne = false
	}
	if !in.PlusOne {
		in.PlusOneName = ""
		in.PlusOneMeal = 0
	}
	return in
}

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError lists the form fields that failed their rules.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field+" ("+f.Rule+")")
	}
	return "invalid rsvp: " + strings.Join(names, ", ")
}

// Summary is the side panel of the RSVP page.
type Summary struct {
	Attending    int `json:"attending"`
	NotAttending int `json:"not_attending"`
	PlusOnes     int `json:"plus_ones"`
}

func Summarize(rsvps []domain.RSVP) Summary {
	var s Summary
	for _, r := range rsvps {
		if r.IsAttending() {
			s.Attending++
		} else if r.Attending == domain.AttendanceNo {
			s.NotAttending++
		}
		if r.BringsPlusOne() {
			s.PlusOnes++
		}
	}
	return s
}

type RSVPService struct {
	rsvps              repository.RSVPRepository
	validate           *validator.Validate
	ids                idgen.Generator
	producer           Producer
	notificationsTopic string
	now                func() time.Time
	log                zerolog.Logger
}

type RSVPServiceOption func(*RSVPService)

func WithProducer(producer Producer, notificationsTopic string) RSVPServiceOption {
	return func(s *RSVPService) {
		s.producer = producer
		s.notificationsTopic = notificationsTopic
	}
}

func WithIDGenerator(ids idgen.Generator) RSVPServiceOption {
	return func(s *RSVPService) {
		s.ids = ids
	}
}

func WithClock(now func() time.Time) RSVPServiceOption {
	return func(s *RSVPService) {
		s.now = now
	}
}

func WithLogger(log zerolog.Logger) RSVPServiceOption {
	return func(s *RSVPService) {
		s.log = log
	}
}

func NewRSVPService(rsvps repository.RSVPRepository, c *catalog.Catalog, opts ...RSVPServiceOption) *RSVPService {
	service := &RSVPService{
		rsvps:    rsvps,
		validate: newValidator(c),
		ids:      idgen.NewMonotonic(),
		now:      time.Now,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func newValidator(c *catalog.Catalog) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Zero means "not chosen"; required_if covers that case.
	_ = v.RegisterValidation("meal", func(fl validator.FieldLevel) bool {
		id := int(fl.Field().Int())
		if id == 0 {
			return true
		}
		_, ok := c.Meal(id)
		return ok
	})
	return v
}

func (s *RSVPService) Submit(ctx context.Context, input Input) (*domain.RSVP, error) {
	if !input.Ready() {
		return nil, ErrIncomplete
	}
	input = input.normalized()

	if err := s.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("validate rsvp: %w", err)
		}
		out := &ValidationError{}
		for _, fe := range verrs {
			out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		return nil, out
	}

	rsvp := &domain.RSVP{
		ID:                  s.ids.NewID(idgen.RSVPPrefix),
		Name:                input.Name,
		Email:               input.Email,
		Phone:               input.Phone,
		Attending:           input.Attending,
		MealPreference:      input.MealPreference,
		PlusOne:             input.PlusOne,
		PlusOneName:         input.PlusOneName,
		PlusOneMeal:         input.PlusOneMeal,
		DietaryRestrictions: input.DietaryRestrictions,
		Message:             input.Message,
		SubmittedAt:         s.now().UTC(),
	}

	if err := s.rsvps.AppendRSVP(ctx, *rsvp); err != nil {
		return nil, err
	}
	s.log.Info().Str("rsvp_id", rsvp.ID).Str("attending", string(rsvp.Attending)).Msg("rsvp submitted")

	if err := s.publish(ctx, rsvp); err != nil {
		s.log.Warn().Err(err).Str("rsvp_id", rsvp.ID).Msg("failed to publish rsvp_submitted event")
	}
	return rsvp, nil
}

func (s *RSVPService) List(ctx context.Context) ([]domain.RSVP, error) {
	return s.rsvps.ListRSVPs(ctx)
}

func (s *RSVPService) Summary(ctx context.Context) (Summary, error) {
	rsvps, err := s.rsvps.ListRSVPs(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(rsvps), nil
}

func (s *RSVPService) publish(ctx context.Context, rsvp *domain.RSVP) error {
	if s.producer == nil || s.notificationsTopic == "" {
		return nil
	}
	event := kafka.Event{
		Type:       kafka.EventRSVPSubmitted,
		ID:         rsvp.ID,
		Name:       rsvp.Name,
		Email:      rsvp.Email,
		Attending:  string(rsvp.Attending),
		PlusOne:    rsvp.PlusOne,
		OccurredAt: rsvp.SubmittedAt,
	}
	return s.producer.Publish(ctx, s.notificationsTopic, rsvp.ID, event)
}

var _ RSVPUseCase = (*RSVPService)(nil)
