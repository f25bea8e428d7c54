package dto

import "github.com/xperienceoutdoors/Resav2/internal/domain"

// CreateOpeningPeriodRequest creates a new opening period
type CreateOpeningPeriodRequest struct {
	Name        string              `json:"name" binding:"required"`
	StartDate   string              `json:"start_date" binding:"required"`
	EndDate     string              `json:"end_date" binding:"required"`
	Schedule    domain.WeekSchedule `json:"schedule" binding:"required"`
	ActivityIDs []string            `json:"activity_ids"`
	Color       string              `json:"color"`
}

// UpdateOpeningPeriodRequest updates an existing opening period
type UpdateOpeningPeriodRequest struct {
	Name        string              `json:"name" binding:"required"`
	StartDate   string              `json:"start_date" binding:"required"`
	EndDate     string              `json:"end_date" binding:"required"`
	Schedule    domain.WeekSchedule `json:"schedule" binding:"required"`
	ActivityIDs []string            `json:"activity_ids"`
	Color       string              `json:"color"`
}

// OpeningPeriodResponse is the public view of an opening period
type OpeningPeriodResponse struct {
	ID          string              `json:"id"`
	CompanyID   string              `json:"company_id"`
	Name        string              `json:"name"`
	StartDate   string              `json:"start_date"`
	EndDate     string              `json:"end_date"`
	Schedule    domain.WeekSchedule `json:"schedule"`
	ActivityIDs []string            `json:"activity_ids,omitempty"`
	Color       string              `json:"color,omitempty"`
}

// ToOpeningPeriodResponse converts a domain period
func ToOpeningPeriodResponse(p *domain.OpeningPeriod) OpeningPeriodResponse {
	return OpeningPeriodResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Name:        p.Name,
		StartDate:   p.StartDate.String(),
		EndDate:     p.EndDate.String(),
		Schedule:    p.Schedule,
		ActivityIDs: p.ActivityIDs,
		Color:       p.Color,
	}
}

// ToOpeningPeriodResponses converts a list of domain periods
func ToOpeningPeriodResponses(periods []*domain.OpeningPeriod) []OpeningPeriodResponse {
	out := make([]OpeningPeriodResponse, 0, len(periods))
	for _, p := range periods {
		out = append(out, ToOpeningPeriodResponse(p))
	}
	return out
}
