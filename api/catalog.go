package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/weddingvenue/internal/catalog"
	"github.com/Domenick1991/weddingvenue/internal/service/pricing"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
	pricing pricing.PricingUseCase
}

func NewCatalogHandler(c *catalog.Catalog, pricing pricing.PricingUseCase) *CatalogHandler {
	return &CatalogHandler{catalog: c, pricing: pricing}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.GET("/packages", h.listPackages)
	router.GET("/packages/comparison", h.comparison)
	router.GET("/packages/:id", h.getPackage)
	router.GET("/halls", h.listHalls)
	router.GET("/meals", h.listMeals)
	router.GET("/quote", h.quote)
}

func (h *CatalogHandler) listPackages(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Packages())
}

func (h *CatalogHandler) comparison(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Comparison())
}

func (h *CatalogHandler) getPackage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	pkg, ok := h.catalog.Package(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
		return
	}
	c.JSON(http.StatusOK, pkg)
}

func (h *CatalogHandler) listHalls(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Halls())
}

func (h *CatalogHandler) listMeals(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Meals())
}

type quoteQuery struct {
	PackageID  int `form:"package"`
	HallID     int `form:"hall"`
	GuestCount int `form:"guests" binding:"min=0"`
}

func (h *CatalogHandler) quote(c *gin.Context) {
	var q quoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.pricing.Quote(q.PackageID, q.HallID, q.GuestCount))
}
