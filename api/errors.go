package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/weddingvenue/internal/service/availability"
	"github.com/Domenick1991/weddingvenue/internal/service/booking"
	"github.com/Domenick1991/weddingvenue/internal/service/rsvp"
	"github.com/Domenick1991/weddingvenue/internal/session"
)

func statusFor(err error) int {
	var verr *rsvp.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, availability.ErrDateOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, session.ErrStepIncomplete),
		errors.Is(err, session.ErrNotOnBookingView),
		errors.Is(err, session.ErrNotOnRSVPView):
		return http.StatusConflict
	case errors.Is(err, session.ErrUnknownField),
		errors.Is(err, session.ErrUnknownSelection),
		errors.Is(err, availability.ErrInvalidDate),
		errors.Is(err, booking.ErrIncompleteDetails),
		errors.Is(err, booking.ErrUnknownPackage),
		errors.Is(err, booking.ErrUnknownHall),
		errors.Is(err, rsvp.ErrIncomplete):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}

	body := gin.H{"error": err.Error()}
	var verr *rsvp.ValidationError
	if errors.As(err, &verr) {
		body["fields"] = verr.Fields
	}
	c.JSON(status, body)
}
