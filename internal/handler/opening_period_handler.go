package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"github.com/xperienceoutdoors/Resav2/internal/service"
	"github.com/xperienceoutdoors/Resav2/pkg/middleware"
	"github.com/xperienceoutdoors/Resav2/pkg/response"
)

// OpeningPeriodHandler handles opening period HTTP requests
type OpeningPeriodHandler struct {
	periodService service.OpeningPeriodService
}

// NewOpeningPeriodHandler creates a new OpeningPeriodHandler
func NewOpeningPeriodHandler(periodService service.OpeningPeriodService) *OpeningPeriodHandler {
	return &OpeningPeriodHandler{periodService: periodService}
}

// Create handles POST /opening-periods
func (h *OpeningPeriodHandler) Create(c *gin.Context) {
	var req dto.CreateOpeningPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.periodService.Create(c.Request.Context(), middleware.GetCompanyID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, resp)
}

// List handles GET /opening-periods
func (h *OpeningPeriodHandler) List(c *gin.Context) {
	resp, err := h.periodService.List(c.Request.Context(), middleware.GetCompanyID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// Get handles GET /opening-periods/:id
func (h *OpeningPeriodHandler) Get(c *gin.Context) {
	resp, err := h.periodService.Get(c.Request.Context(), middleware.GetCompanyID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// Update handles PUT /opening-periods/:id
func (h *OpeningPeriodHandler) Update(c *gin.Context) {
	var req dto.UpdateOpeningPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.periodService.Update(c.Request.Context(), middleware.GetCompanyID(c), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// Delete handles DELETE /opening-periods/:id
func (h *OpeningPeriodHandler) Delete(c *gin.Context) {
	if err := h.periodService.Delete(c.Request.Context(), middleware.GetCompanyID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}
