package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/internal/service"
	"github.com/xperienceoutdoors/Resav2/pkg/middleware"
	"github.com/xperienceoutdoors/Resav2/pkg/response"
)

// StatsHandler handles dashboard statistics requests
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Today handles GET /stats/today
func (h *StatsHandler) Today(c *gin.Context) {
	resp, err := h.statsService.Today(c.Request.Context(), middleware.GetCompanyID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// Weekly handles GET /stats/weekly
func (h *StatsHandler) Weekly(c *gin.Context) {
	resp, err := h.statsService.Weekly(c.Request.Context(), middleware.GetCompanyID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// Monthly handles GET /stats/monthly
func (h *StatsHandler) Monthly(c *gin.Context) {
	resp, err := h.statsService.Monthly(c.Request.Context(), middleware.GetCompanyID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// Range handles GET /stats?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *StatsHandler) Range(c *gin.Context) {
	from, err := domain.ParseDate(c.Query("from"))
	if err != nil {
		handleError(c, err)
		return
	}
	to, err := domain.ParseDate(c.Query("to"))
	if err != nil {
		handleError(c, err)
		return
	}

	resp, err := h.statsService.Range(c.Request.Context(), middleware.GetCompanyID(c), from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}
