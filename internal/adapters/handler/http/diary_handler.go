package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
	"github.com/comitanigiacomo/kanso-food-diary/internal/core/services"
)

type DiaryHandler struct {
	svc *services.DiaryService
}

func NewDiaryHandler(svc *services.DiaryService) *DiaryHandler {
	return &DiaryHandler{svc: svc}
}

type addFoodRequest struct {
	Barcode     string           `json:"barcode"`
	Name        string           `json:"name" binding:"required"`
	Brand       string           `json:"brand"`
	ServingSize string           `json:"servingSize"`
	ImageURL    string           `json:"imageUrl"`
	Nutrition   domain.Nutrition `json:"nutrition"`
	Servings    float64          `json:"servings" binding:"required"`
	Meal        string           `json:"meal" binding:"required"`
}

type waterRequest struct {
	Delta int `json:"delta"`
}

type weightRequest struct {
	Weight float64 `json:"weight" binding:"required"`
	Unit   string  `json:"unit"`
}

func (h *DiaryHandler) RegisterRoutes(router *gin.RouterGroup) {
	diary := router.Group("/diary/:date")
	{
		diary.GET("", h.GetLedger)
		diary.POST("/foods", h.AddFood)
		diary.DELETE("/foods/:id", h.RemoveFood)
		diary.POST("/water", h.AddWater)
		diary.PUT("/weight", h.SetWeight)
	}
}

// date resolves the :date path parameter; "today" means the current day in
// the diary's time zone.
func (h *DiaryHandler) date(c *gin.Context) string {
	return resolveDate(c.Param("date"), h.svc.Today)
}

func resolveDate(raw string, today func() string) string {
	if raw == "" || raw == "today" {
		return today()
	}
	return raw
}

func (h *DiaryHandler) GetLedger(c *gin.Context) {
	ledger, err := h.svc.GetLedger(c.Request.Context(), h.date(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ledger)
}

func (h *DiaryHandler) AddFood(c *gin.Context) {
	var req addFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	meal, err := domain.ParseMeal(req.Meal)
	if err != nil {
		handleError(c, err)
		return
	}

	entry, err := h.svc.LogFood(c.Request.Context(), domain.FoodEntryInput{
		Barcode:     req.Barcode,
		Name:        req.Name,
		Brand:       req.Brand,
		ServingSize: req.ServingSize,
		ImageURL:    req.ImageURL,
		Nutrition:   req.Nutrition,
		Servings:    req.Servings,
		Date:        h.date(c),
		Meal:        meal,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *DiaryHandler) RemoveFood(c *gin.Context) {
	removed, err := h.svc.RemoveFood(c.Request.Context(), h.date(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, removed)
}

func (h *DiaryHandler) AddWater(c *gin.Context) {
	var req waterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	date := h.date(c)
	glasses, err := h.svc.AddWater(c.Request.Context(), date, req.Delta)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         date,
		"waterGlasses": glasses,
	})
}

func (h *DiaryHandler) SetWeight(c *gin.Context) {
	var req weightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	date := h.date(c)
	unit := domain.WeightUnit(req.Unit)
	if err := h.svc.SetWeight(c.Request.Context(), date, req.Weight, unit); err != nil {
		handleError(c, err)
		return
	}

	if unit == "" {
		unit = domain.WeightUnitKg
	}
	c.JSON(http.StatusOK, gin.H{
		"date":   date,
		"weight": req.Weight,
		"unit":   unit,
	})
}
