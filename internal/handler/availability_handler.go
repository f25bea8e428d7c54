package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/internal/service"
	"github.com/xperienceoutdoors/Resav2/pkg/middleware"
	"github.com/xperienceoutdoors/Resav2/pkg/response"
)

// AvailabilityHandler answers opening hour questions for the booking
// calendar
type AvailabilityHandler struct {
	scheduleService service.ScheduleService
}

// NewAvailabilityHandler creates a new AvailabilityHandler
func NewAvailabilityHandler(scheduleService service.ScheduleService) *AvailabilityHandler {
	return &AvailabilityHandler{scheduleService: scheduleService}
}

// Get handles GET /availability/:date. With a ?time=HH:MM query it also
// answers whether the company is open at that exact moment.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		handleError(c, err)
		return
	}

	companyID := middleware.GetCompanyID(c)

	if at := c.Query("time"); at != "" {
		tod, err := domain.ParseTimeOfDay(at)
		if err != nil {
			handleError(c, err)
			return
		}
		open, err := h.scheduleService.IsOpenAt(c.Request.Context(), companyID, date, tod)
		if err != nil {
			handleError(c, err)
			return
		}
		response.Success(c, gin.H{"date": date.String(), "time": string(tod), "is_open": open})
		return
	}

	resp, err := h.scheduleService.Availability(c.Request.Context(), companyID, date)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}
