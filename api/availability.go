package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/weddingvenue/internal/service/availability"
)

type AvailabilityHandler struct {
	service availability.AvailabilityUseCase
	now     func() time.Time
}

func NewAvailabilityHandler(service availability.AvailabilityUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{service: service, now: time.Now}
}

func (h *AvailabilityHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.calendar)
	router.GET("/month", h.month)
	router.GET("/:date", h.date)
	router.GET("/:date/halls", h.bookableHalls)
}

func (h *AvailabilityHandler) calendar(c *gin.Context) {
	dates, err := h.service.Calendar(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dates)
}

type monthQuery struct {
	Year  int `form:"year"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

// month defaults to the current month for missing parameters.
func (h *AvailabilityHandler) month(c *gin.Context) {
	var q monthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	now := h.now()
	if q.Year == 0 {
		q.Year = now.Year()
	}
	if q.Month == 0 {
		q.Month = int(now.Month())
	}

	view, err := h.service.Month(c.Request.Context(), q.Year, time.Month(q.Month))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AvailabilityHandler) date(c *gin.Context) {
	d, err := h.service.Availability(c.Request.Context(), c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *AvailabilityHandler) bookableHalls(c *gin.Context) {
	halls, err := h.service.BookableHalls(c.Request.Context(), c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, halls)
}
