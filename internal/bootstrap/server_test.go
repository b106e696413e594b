package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/weddingvenue/api"
	"github.com/Domenick1991/weddingvenue/config"
	"github.com/Domenick1991/weddingvenue/internal/catalog"
	"github.com/Domenick1991/weddingvenue/internal/repository"
	"github.com/Domenick1991/weddingvenue/internal/service/availability"
	"github.com/Domenick1991/weddingvenue/internal/service/booking"
	"github.com/Domenick1991/weddingvenue/internal/service/dashboard"
	"github.com/Domenick1991/weddingvenue/internal/service/pricing"
	"github.com/Domenick1991/weddingvenue/internal/service/rsvp"
	"github.com/Domenick1991/weddingvenue/internal/session"
)

func testHandlers() Handlers {
	c := catalog.New()
	store := repository.NewMemoryStore()
	bookings := booking.NewBookingService(store, c)
	rsvps := rsvp.NewRSVPService(store, c)
	avail := availability.NewAvailabilityService(c, availability.WithRandomSource(catalog.NewRandomSource(7)))
	calc := pricing.NewCalculator(c)
	dash := dashboard.NewDashboardService(store, c)
	manager := session.NewManager(bookings, rsvps, c)

	return Handlers{
		Catalog:      api.NewCatalogHandler(c, calc),
		Availability: api.NewAvailabilityHandler(avail),
		Sessions:     api.NewSessionHandler(manager, api.NewViewBuilder(c, avail, calc, rsvps, dash)),
		Bookings:     api.NewBookingHandler(bookings, c),
		RSVPs:        api.NewRSVPHandler(rsvps),
		Dashboard:    api.NewDashboardHandler(dash),
	}
}

func TestNewRouter_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(config.HTTPConfig{CORSOrigins: []string{"*"}}, zerolog.Nop(), testHandlers())

	for _, path := range []string{"/health", "/api/packages", "/api/halls", "/api/bookings", "/api/rsvps/summary", "/api/dashboard?tab=meals"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs/index.html", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewRouter_CORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(config.HTTPConfig{CORSOrigins: []string{"http://localhost:5173"}}, zerolog.Nop(), testHandlers())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestNewRouter_Swagger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, swaggerSpec), []byte(`{"swagger":"2.0"}`), 0o644))
	router := NewRouter(config.HTTPConfig{SwaggerDir: dir}, zerolog.Nop(), testHandlers())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/"+swaggerSpec, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCorsConfig(t *testing.T) {
	assert.False(t, corsConfig(nil).AllowCredentials)
	assert.Equal(t, []string{"*"}, corsConfig(nil).AllowOrigins)
	assert.True(t, corsConfig([]string{"https://venue.example"}).AllowCredentials)
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, config.HTTPConfig{Address: "127.0.0.1:0"}, zerolog.Nop(), http.NotFoundHandler())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
