package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/weddingvenue/internal/service/dashboard"
)

type DashboardHandler struct {
	service dashboard.DashboardUseCase
}

func NewDashboardHandler(service dashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.view)
}

func (h *DashboardHandler) view(c *gin.Context) {
	d, err := h.service.View(c.Request.Context(), dashboard.ParseTab(c.Query("tab")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
