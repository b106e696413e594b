package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Domenick1991/weddingvenue/internal/kafka"
	"github.com/Domenick1991/weddingvenue/internal/money"
)

// Sender renders confirmation messages for published events. Delivery is
// simulated by logging the rendered message.
type Sender struct {
	log zerolog.Logger
}

func NewSender(log zerolog.Logger) *Sender {
	return &Sender{log: log.With().Str("component", "email").Logger()}
}

type Message struct {
	To      string
	Subject string
	Body    string
}

func (s *Sender) Send(ctx context.Context, event kafka.Event) error {
	msg, ok := Render(event)
	if !ok {
		s.log.Debug().Str("type", event.Type).Str("id", event.ID).Msg("no template for event, skipping")
		return nil
	}
	if msg.To == "" {
		s.log.Warn().Str("id", event.ID).Msg("event has no recipient, skipping")
		return nil
	}

	s.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("email sent")
	return nil
}

// Render builds the message for an event. ok is false for event types
// without a template.
func Render(event kafka.Event) (Message, bool) {
	switch event.Type {
	case kafka.EventBookingConfirmed:
		var b strings.Builder
		fmt.Fprintf(&b, "Congratulations %s! Your wedding booking has been confirmed.\n", event.Name)
		fmt.Fprintf(&b, "Booking ID: %s\n", event.ID)
		fmt.Fprintf(&b, "Wedding Date: %s\n", event.WeddingDate)
		if event.PackageName != "" {
			fmt.Fprintf(&b, "Package: %s\n", event.PackageName)
		}
		if event.HallName != "" {
			fmt.Fprintf(&b, "Hall: %s\n", event.HallName)
		}
		fmt.Fprintf(&b, "Total Amount: %s\n", money.Format(event.TotalAmount))
		return Message{
			To:      event.Email,
			Subject: "Booking Confirmed " + event.ID,
			Body:    b.String(),
		}, true
	case kafka.EventRSVPSubmitted:
		body := fmt.Sprintf("Dear %s, thank you for your RSVP. We're sorry you can't make it.\n", event.Name)
		if event.Attending == "yes" {
			body = fmt.Sprintf("Dear %s, thank you for your RSVP. We look forward to celebrating with you!\n", event.Name)
		}
		return Message{
			To:      event.Email,
			Subject: "RSVP received",
			Body:    body,
		}, true
	default:
		return Message{}, false
	}
}
