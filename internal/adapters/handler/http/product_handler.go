package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
	"github.com/comitanigiacomo/kanso-food-diary/internal/core/services"
)

type ProductHandler struct {
	svc   *services.ProductService
	today func() string
}

func NewProductHandler(svc *services.ProductService, today func() string) *ProductHandler {
	return &ProductHandler{svc: svc, today: today}
}

type logProductRequest struct {
	Servings float64 `json:"servings" binding:"required"`
	Meal     string  `json:"meal" binding:"required"`
	Date     string  `json:"date"`
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", h.Search)
		products.GET("/:barcode", h.Lookup)
		products.POST("/:barcode/log", h.Log)
	}
}

func (h *ProductHandler) Lookup(c *gin.Context) {
	product, err := h.svc.LookupBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Search(c *gin.Context) {
	products, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    c.Query("q"),
		"count":    len(products),
		"products": products,
	})
}

func (h *ProductHandler) Log(c *gin.Context) {
	var req logProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	meal, err := domain.ParseMeal(req.Meal)
	if err != nil {
		handleError(c, err)
		return
	}

	entry, err := h.svc.LogProduct(c.Request.Context(), services.LogProductInput{
		Barcode:  c.Param("barcode"),
		Servings: req.Servings,
		Meal:     meal,
		Date:     resolveDate(req.Date, h.today),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}
