package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"github.com/xperienceoutdoors/Resav2/internal/service"
	"github.com/xperienceoutdoors/Resav2/pkg/middleware"
	"github.com/xperienceoutdoors/Resav2/pkg/response"
)

// ActivityHandler handles activity HTTP requests
type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// Create handles POST /activities
func (h *ActivityHandler) Create(c *gin.Context) {
	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.activityService.Create(c.Request.Context(), middleware.GetCompanyID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, resp)
}

// List handles GET /activities
func (h *ActivityHandler) List(c *gin.Context) {
	resp, err := h.activityService.List(c.Request.Context(), middleware.GetCompanyID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// Get handles GET /activities/:id
func (h *ActivityHandler) Get(c *gin.Context) {
	resp, err := h.activityService.Get(c.Request.Context(), middleware.GetCompanyID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// Update handles PUT /activities/:id
func (h *ActivityHandler) Update(c *gin.Context) {
	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.activityService.Update(c.Request.Context(), middleware.GetCompanyID(c), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// Delete handles DELETE /activities/:id
func (h *ActivityHandler) Delete(c *gin.Context) {
	if err := h.activityService.Delete(c.Request.Context(), middleware.GetCompanyID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}
