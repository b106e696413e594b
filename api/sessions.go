package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/Domenick1991/weddingvenue/internal/service/rsvp"
	"github.com/Domenick1991/weddingvenue/internal/session"
	"github.com/Domenick1991/weddingvenue/internal/wizard"
)

type SessionService interface {
	Create() session.Session
	Get(id string) (session.Session, error)
	Close(id string) error
	Navigate(id string, view domain.View) (session.Session, error)
	UpdateBooking(id string, fields map[string]string) (session.Session, error)
	Next(id string) (session.Session, error)
	Previous(id string) (session.Session, error)
	SubmitBooking(id string) (session.Session, error)
	SubmitRSVP(ctx context.Context, id string, input rsvp.Input) (session.Session, error)
}

var _ SessionService = (*session.Manager)(nil)

type SessionHandler struct {
	sessions SessionService
	views    *ViewBuilder
}

type sessionResponse struct {
	Session session.Session `json:"session"`
	Model   interface{}     `json:"model"`
}

type navigateRequest struct {
	View string `json:"view" binding:"required"`
}

// wizardResponse is returned by every booking action, refused ones included.
type wizardResponse struct {
	SessionID    string       `json:"session_id"`
	Step         string       `json:"step"`
	Wizard       wizard.State `json:"wizard"`
	CanAdvance   bool         `json:"can_advance"`
	CanGoBack    bool         `json:"can_go_back"`
	CanSubmit    bool         `json:"can_submit"`
	BookingError string       `json:"booking_error,omitempty"`
	Error        string       `json:"error,omitempty"`
}

func NewSessionHandler(sessions SessionService, views *ViewBuilder) *SessionHandler {
	return &SessionHandler{sessions: sessions, views: views}
}

func (h *SessionHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.close)
	router.POST("/:id/navigate", h.navigate)
	router.PATCH("/:id/booking", h.updateBooking)
	router.POST("/:id/booking/next", h.next)
	router.POST("/:id/booking/previous", h.previous)
	router.POST("/:id/booking/submit", h.submitBooking)
	router.POST("/:id/rsvp", h.submitRSVP)
}

func (h *SessionHandler) create(c *gin.Context) {
	h.render(c, http.StatusCreated, h.sessions.Create())
}

func (h *SessionHandler) get(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.render(c, http.StatusOK, s)
}

func (h *SessionHandler) close(c *gin.Context) {
	if err := h.sessions.Close(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) navigate(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := h.sessions.Navigate(c.Param("id"), domain.ParseView(req.View))
	if err != nil {
		writeError(c, err)
		return
	}
	h.render(c, http.StatusOK, s)
}

// updateBooking accepts a flat object of form field names. Values may be
// strings, numbers or booleans.
func (h *SessionHandler) updateBooking(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields := make(map[string]string, len(raw))
	for name, v := range raw {
		fields[name] = formValue(v)
	}

	s, err := h.sessions.UpdateBooking(c.Param("id"), fields)
	h.renderWizard(c, http.StatusOK, s, err)
}

// formValue renders a decoded JSON value as form text. Numbers keep their
// plain decimal form so large guest counts survive.
func formValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func (h *SessionHandler) next(c *gin.Context) {
	s, err := h.sessions.Next(c.Param("id"))
	h.renderWizard(c, http.StatusOK, s, err)
}

func (h *SessionHandler) previous(c *gin.Context) {
	s, err := h.sessions.Previous(c.Param("id"))
	h.renderWizard(c, http.StatusOK, s, err)
}

// submitBooking answers before the booking exists; poll the session for
// the confirmation.
func (h *SessionHandler) submitBooking(c *gin.Context) {
	s, err := h.sessions.SubmitBooking(c.Param("id"))
	h.renderWizard(c, http.StatusAccepted, s, err)
}

func (h *SessionHandler) submitRSVP(c *gin.Context) {
	var input rsvp.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := h.sessions.SubmitRSVP(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		writeError(c, err)
		return
	}
	h.render(c, http.StatusCreated, s)
}

func (h *SessionHandler) render(c *gin.Context, status int, s session.Session) {
	model, err := h.views.Build(c.Request.Context(), s)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, sessionResponse{Session: s, Model: model})
}

func (h *SessionHandler) renderWizard(c *gin.Context, status int, s session.Session, err error) {
	if err != nil && (s.ID == "" || !errors.Is(err, session.ErrStepIncomplete)) {
		writeError(c, err)
		return
	}

	resp := wizardResponse{
		SessionID:    s.ID,
		Step:         s.Wizard.Step.String(),
		Wizard:       s.Wizard,
		CanAdvance:   s.CanAdvance(),
		CanGoBack:    s.CanGoBack(),
		CanSubmit:    s.CanSubmit(),
		BookingError: s.BookingError,
	}
	if err != nil {
		resp.Error = err.Error()
		status = statusFor(err)
	}
	c.JSON(status, resp)
}
