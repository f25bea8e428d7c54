package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"github.com/xperienceoutdoors/Resav2/internal/service"
	"github.com/xperienceoutdoors/Resav2/pkg/middleware"
	"github.com/xperienceoutdoors/Resav2/pkg/response"
)

// CatalogHandler handles catalog HTTP requests for categories, resources
// and packages
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateCategory handles POST /categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.catalogService.CreateCategory(c.Request.Context(), middleware.GetCompanyID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, resp)
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	resp, err := h.catalogService.ListCategories(c.Request.Context(), middleware.GetCompanyID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// UpdateCategory handles PUT /categories/:id
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.catalogService.UpdateCategory(c.Request.Context(), middleware.GetCompanyID(c), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// DeleteCategory handles DELETE /categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalogService.DeleteCategory(c.Request.Context(), middleware.GetCompanyID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}

// CreateResource handles POST /resources
func (h *CatalogHandler) CreateResource(c *gin.Context) {
	var req dto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.catalogService.CreateResource(c.Request.Context(), middleware.GetCompanyID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, resp)
}

// ListResources handles GET /resources
func (h *CatalogHandler) ListResources(c *gin.Context) {
	resp, err := h.catalogService.ListResources(c.Request.Context(), middleware.GetCompanyID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// DeleteResource handles DELETE /resources/:id
func (h *CatalogHandler) DeleteResource(c *gin.Context) {
	if err := h.catalogService.DeleteResource(c.Request.Context(), middleware.GetCompanyID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}

// CreatePackage handles POST /packages
func (h *CatalogHandler) CreatePackage(c *gin.Context) {
	var req dto.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.catalogService.CreatePackage(c.Request.Context(), middleware.GetCompanyID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, resp)
}

// ListPackages handles GET /packages?activity_id=
func (h *CatalogHandler) ListPackages(c *gin.Context) {
	resp, err := h.catalogService.ListPackages(c.Request.Context(), middleware.GetCompanyID(c), c.Query("activity_id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// DeletePackage handles DELETE /packages/:id
func (h *CatalogHandler) DeletePackage(c *gin.Context) {
	if err := h.catalogService.DeletePackage(c.Request.Context(), middleware.GetCompanyID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}
