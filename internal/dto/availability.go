package dto

import "github.com/xperienceoutdoors/Resav2/internal/domain"

// SlotResponse is one open time slot
type SlotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityResponse describes whether a company is open on a date
type AvailabilityResponse struct {
	Date     string         `json:"date"`
	IsOpen   bool           `json:"is_open"`
	PeriodID string         `json:"period_id,omitempty"`
	Slots    []SlotResponse `json:"slots"`
}

// ToSlotResponses converts domain slots
func ToSlotResponses(slots []domain.TimeSlot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{Start: string(s.Start), End: string(s.End)})
	}
	return out
}
