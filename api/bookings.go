package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/weddingvenue/internal/catalog"
	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/Domenick1991/weddingvenue/internal/money"
	"github.com/Domenick1991/weddingvenue/internal/service/booking"
)

// Bookings are only created through a session's wizard; this handler is
// read-only.
type BookingHandler struct {
	service booking.BookingUseCase
	catalog *catalog.Catalog
}

type bookingResponse struct {
	domain.Booking
	PackageName    string `json:"package_name"`
	HallName       string `json:"hall_name"`
	FormattedTotal string `json:"formatted_total"`
}

func NewBookingHandler(service booking.BookingUseCase, c *catalog.Catalog) *BookingHandler {
	return &BookingHandler{service: service, catalog: c}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, h.toResponse(b))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) toResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		Booking:        b,
		PackageName:    h.catalog.PackageName(b.PackageID),
		HallName:       h.catalog.HallName(b.HallID),
		FormattedTotal: money.Format(b.TotalAmount),
	}
}
