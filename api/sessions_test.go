package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/weddingvenue/internal/catalog"
	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/Domenick1991/weddingvenue/internal/service/availability"
	"github.com/Domenick1991/weddingvenue/internal/service/dashboard"
	"github.com/Domenick1991/weddingvenue/internal/service/pricing"
	"github.com/Domenick1991/weddingvenue/internal/service/rsvp"
	"github.com/Domenick1991/weddingvenue/internal/session"
)

type queuedTimer struct {
	mu  sync.Mutex
	fns []func()
}

func (q *queuedTimer) after(_ time.Duration, fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.fns = append(q.fns, fn)
}

func (q *queuedTimer) fire() {
	q.mu.Lock()
	fns := q.fns
	q.fns = nil
	q.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

type sessionFixture struct {
	router    *gin.Engine
	manager   *session.Manager
	bookings  *MockBookingUseCase
	rsvps     *MockRSVPUseCase
	dashboard *MockDashboardUseCase
	timer     *queuedTimer
}

func newSessionFixture() *sessionFixture {
	gin.SetMode(gin.TestMode)
	f := &sessionFixture{
		bookings:  &MockBookingUseCase{},
		rsvps:     &MockRSVPUseCase{},
		dashboard: &MockDashboardUseCase{},
		timer:     &queuedTimer{},
	}
	c := catalog.New()
	f.manager = session.NewManager(f.bookings, f.rsvps, c, session.WithTimer(f.timer.after))
	views := NewViewBuilder(
		c,
		availability.NewAvailabilityService(c, availability.WithRandomSource(catalog.NewRandomSource(1))),
		pricing.NewCalculator(c),
		f.rsvps,
		f.dashboard,
	)

	f.router = gin.New()
	NewSessionHandler(f.manager, views).Register(f.router.Group("/sessions"))
	return f
}

func (f *sessionFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *sessionFixture) create(t *testing.T) string {
	t.Helper()
	w := f.do(t, "POST", "/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Session session.Session `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Session.ID
}

func decodeWizard(t *testing.T, w *httptest.ResponseRecorder) wizardResponse {
	t.Helper()
	var resp wizardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSessionHandler_create(t *testing.T) {
	f := newSessionFixture()

	w := f.do(t, "POST", "/sessions", nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Session session.Session `json:"session"`
		Model   homeModel       `json:"model"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.ViewHome, resp.Session.View)
	assert.Len(t, resp.Model.Packages, 3)
}

func TestSessionHandler_unknownSession(t *testing.T) {
	f := newSessionFixture()

	w := f.do(t, "GET", "/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, "POST", "/sessions/nope/booking/next", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, "DELETE", "/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionHandler_navigate(t *testing.T) {
	f := newSessionFixture()
	id := f.create(t)

	w := f.do(t, "POST", "/sessions/"+id+"/navigate", navigateRequest{View: "packages"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Session session.Session `json:"session"`
		Model   packagesModel   `json:"model"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.ViewPackages, resp.Session.View)
	assert.NotEmpty(t, resp.Model.Comparison)

	w = f.do(t, "POST", "/sessions/"+id+"/navigate", navigateRequest{View: "ballroom"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.ViewHome, resp.Session.View)

	w = f.do(t, "POST", "/sessions/"+id+"/navigate", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionHandler_bookingRequiresBookingView(t *testing.T) {
	f := newSessionFixture()
	id := f.create(t)

	w := f.do(t, "PATCH", "/sessions/"+id+"/booking", map[string]string{"brideName": "Nimali"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSessionHandler_bookingFlow(t *testing.T) {
	f := newSessionFixture()
	id := f.create(t)
	base := "/sessions/" + id

	w := f.do(t, "POST", base+"/navigate", navigateRequest{View: "booking"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, "POST", base+"/booking/next", nil)
	require.Equal(t, http.StatusConflict, w.Code)
	refused := decodeWizard(t, w)
	assert.Equal(t, "wedding_details", refused.Step)
	assert.False(t, refused.CanAdvance)
	assert.NotEmpty(t, refused.Error)

	w = f.do(t, "PATCH", base+"/booking", map[string]interface{}{
		"brideName":   "Nimali",
		"groomName":   "Kasun",
		"email":       "couple@example.com",
		"weddingDate": "2025-06-14",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeWizard(t, w).CanAdvance)

	w = f.do(t, "POST", base+"/booking/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "package_and_hall", decodeWizard(t, w).Step)

	w = f.do(t, "PATCH", base+"/booking", map[string]interface{}{"selectedPackage": 9})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, "PATCH", base+"/booking", map[string]interface{}{
		"selectedPackage": 1,
		"selectedHall":    "1",
		"guestCount":      120,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, "GET", base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Model bookingModel `json:"model"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.NotNil(t, view.Model.Quote)
	assert.Equal(t, int64(2000000), view.Model.Quote.Total)

	w = f.do(t, "POST", base+"/booking/next", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, "PATCH", base+"/booking", map[string]interface{}{
		"cardName":   "N Perera",
		"cardNumber": "4111111111111234",
		"expiryDate": "12/27",
		"cvv":        "123",
		"agreeTerms": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "4111111111111234")
	assert.True(t, decodeWizard(t, w).CanSubmit)

	created := &domain.Booking{ID: "WED1", PackageID: 1, HallID: 1, TotalAmount: 2000000}
	f.bookings.On("Complete", mock.Anything, mock.Anything).Return(created, nil).Once()

	w = f.do(t, "POST", base+"/booking/submit", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, decodeWizard(t, w).Wizard.Submitting)

	f.timer.fire()
	f.manager.Wait()

	w = f.do(t, "GET", base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "completed", view.Model.Step)
	require.NotNil(t, view.Model.Confirmation)
	assert.Equal(t, "WED1", view.Model.Confirmation.ID)
	assert.Equal(t, "LKR 2,000,000", view.Model.Confirmation.FormattedTotal)
	f.bookings.AssertExpectations(t)
}

func TestSessionHandler_unknownField(t *testing.T) {
	f := newSessionFixture()
	id := f.create(t)
	f.do(t, "POST", "/sessions/"+id+"/navigate", navigateRequest{View: "booking"})

	w := f.do(t, "PATCH", "/sessions/"+id+"/booking", map[string]string{"bride_name": "Nimali"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionHandler_largeNumbers(t *testing.T) {
	f := newSessionFixture()
	id := f.create(t)
	f.do(t, "POST", "/sessions/"+id+"/navigate", navigateRequest{View: "booking"})

	w := f.do(t, "PATCH", "/sessions/"+id+"/booking", map[string]interface{}{
		"guestCount":      1000000,
		"selectedPackage": 2,
	})

	require.Equal(t, http.StatusOK, w.Code)
	form := decodeWizard(t, w).Wizard.Form
	assert.Equal(t, 1000000, form.GuestCount)
	assert.Equal(t, 2, form.PackageID)
}

func TestFormValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{"Nimali", "Nimali"},
		{float64(1000000), "1000000"},
		{float64(120), "120"},
		{true, "true"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formValue(tt.in))
	}
}

func TestSessionHandler_rsvp(t *testing.T) {
	f := newSessionFixture()
	id := f.create(t)
	input := rsvp.Input{Name: "Amaya", Email: "amaya@example.com", Attending: domain.AttendanceNo}
	f.rsvps.On("Summary", mock.Anything).Return(rsvp.Summary{NotAttending: 1}, nil)
	f.rsvps.On("Submit", mock.Anything, input).Return(&domain.RSVP{ID: "RSVP1", Name: "Amaya"}, nil)

	w := f.do(t, "POST", "/sessions/"+id+"/rsvp", input)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(t, "POST", "/sessions/"+id+"/navigate", navigateRequest{View: "rsvp"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, "POST", "/sessions/"+id+"/rsvp", input)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Model rsvpModel `json:"model"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Model.Submitted)
	assert.Equal(t, "RSVP1", resp.Model.Submitted.ID)
	assert.Equal(t, 1, resp.Model.Summary.NotAttending)
	assert.Len(t, resp.Model.Meals, 4)
}

func TestSessionHandler_dashboardView(t *testing.T) {
	f := newSessionFixture()
	id := f.create(t)
	f.dashboard.On("View", mock.Anything, dashboard.TabOverview).Return(&dashboard.Dashboard{
		Tab:   dashboard.TabOverview,
		Stats: dashboard.Stats{TotalBookings: 2},
	}, nil)

	w := f.do(t, "POST", "/sessions/"+id+"/navigate", navigateRequest{View: "dashboard"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Model dashboard.Dashboard `json:"model"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Model.Stats.TotalBookings)
}

func TestSessionHandler_close(t *testing.T) {
	f := newSessionFixture()
	id := f.create(t)

	w := f.do(t, "DELETE", "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, "GET", "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
