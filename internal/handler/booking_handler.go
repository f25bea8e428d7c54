package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"github.com/xperienceoutdoors/Resav2/internal/service"
	"github.com/xperienceoutdoors/Resav2/pkg/middleware"
	"github.com/xperienceoutdoors/Resav2/pkg/response"
)

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create handles POST /bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.bookingService.Create(c.Request.Context(), middleware.GetCompanyID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, resp)
}

// List handles GET /bookings
func (h *BookingHandler) List(c *gin.Context) {
	var query dto.ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	resp, err := h.bookingService.List(c.Request.Context(), middleware.GetCompanyID(c), &query)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, resp, gin.H{
		"page":      query.Page,
		"page_size": query.PageSize,
	})
}

// Get handles GET /bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	resp, err := h.bookingService.Get(c.Request.Context(), middleware.GetCompanyID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// Update handles PUT /bookings/:id
func (h *BookingHandler) Update(c *gin.Context) {
	var req dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.bookingService.Update(c.Request.Context(), middleware.GetCompanyID(c), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// UpdateStatus handles PATCH /bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.bookingService.UpdateStatus(c.Request.Context(), middleware.GetCompanyID(c), c.Param("id"), domain.BookingStatus(req.Status))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// Delete handles DELETE /bookings/:id
func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.bookingService.Delete(c.Request.Context(), middleware.GetCompanyID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}
