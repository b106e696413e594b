package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/weddingvenue/internal/catalog"
	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/Domenick1991/weddingvenue/internal/service/pricing"
)

func newCatalogRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	c := catalog.New()
	router := gin.New()
	NewCatalogHandler(c, pricing.NewCalculator(c)).Register(router.Group(""))
	return router
}

func TestCatalogHandler_packages(t *testing.T) {
	router := newCatalogRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/packages", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var packages []domain.Package
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &packages))
	assert.Len(t, packages, 3)
}

func TestCatalogHandler_getPackage(t *testing.T) {
	router := newCatalogRouter()

	tests := []struct {
		path string
		code int
	}{
		{"/packages/2", http.StatusOK},
		{"/packages/9", http.StatusNotFound},
		{"/packages/gold", http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))
		assert.Equal(t, tt.code, w.Code, tt.path)
	}
}

func TestCatalogHandler_comparison(t *testing.T) {
	router := newCatalogRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/packages/comparison", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var rows []catalog.ComparisonRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.NotEmpty(t, rows)
	assert.Equal(t, "Price", rows[0].Label)
}

func TestCatalogHandler_quote(t *testing.T) {
	router := newCatalogRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/quote?package=1&hall=1&guests=120", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var quote pricing.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Equal(t, int64(2000000), quote.Total)
	assert.Equal(t, 20, quote.ExtraGuests)
	assert.Equal(t, "LKR 2,000,000", quote.FormattedTotal)
}

func TestCatalogHandler_quote_BadQuery(t *testing.T) {
	router := newCatalogRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/quote?package=one", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandler_hallsAndMeals(t *testing.T) {
	router := newCatalogRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/halls", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/meals", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var meals []domain.MealOption
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meals))
	assert.Len(t, meals, 4)
}
