package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/weddingvenue/internal/service/rsvp"
)

type RSVPHandler struct {
	service rsvp.RSVPUseCase
}

func NewRSVPHandler(service rsvp.RSVPUseCase) *RSVPHandler {
	return &RSVPHandler{service: service}
}

func (h *RSVPHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.submit)
	router.GET("/summary", h.summary)
}

func (h *RSVPHandler) list(c *gin.Context) {
	rsvps, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rsvps)
}

func (h *RSVPHandler) submit(c *gin.Context) {
	var input rsvp.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Submit(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RSVPHandler) summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
