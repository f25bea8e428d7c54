package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"github.com/xperienceoutdoors/Resav2/internal/service"
	"github.com/xperienceoutdoors/Resav2/pkg/middleware"
	"github.com/xperienceoutdoors/Resav2/pkg/response"
)

// CompanyHandler handles company profile HTTP requests
type CompanyHandler struct {
	companyService service.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Get handles GET /company
func (h *CompanyHandler) Get(c *gin.Context) {
	resp, err := h.companyService.Get(c.Request.Context(), middleware.GetCompanyID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// Update handles PUT /company
func (h *CompanyHandler) Update(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.companyService.Update(c.Request.Context(), middleware.GetCompanyID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}
