package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
	"github.com/comitanigiacomo/kanso-food-diary/internal/core/services"
)

type SummaryHandler struct {
	svc   *services.SummaryService
	today func() string
}

func NewSummaryHandler(svc *services.SummaryService, today func() string) *SummaryHandler {
	return &SummaryHandler{svc: svc, today: today}
}

func (h *SummaryHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/diary/:date/summary", h.GetDaily)
	r.GET("/progress", h.GetWeekly)
}

func (h *SummaryHandler) GetDaily(c *gin.Context) {
	summary, err := h.svc.Daily(c.Request.Context(), resolveDate(c.Param("date"), h.today))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetWeekly serves the progress chart. Defaults: the 7 days ending today,
// charting calories.
func (h *SummaryHandler) GetWeekly(c *gin.Context) {
	end := resolveDate(c.Query("end"), h.today)

	days := 7
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			handleError(c, domain.ErrInvalidWindow)
			return
		}
		days = n
	}

	stat := domain.StatCalories
	if raw := c.Query("stat"); raw != "" {
		parsed, err := domain.ParseStat(raw)
		if err != nil {
			handleError(c, err)
			return
		}
		stat = parsed
	}

	summary, err := h.svc.Weekly(c.Request.Context(), end, days, stat)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
