package domain

import (
	"strings"
	"time"
)

// OpeningPeriod is a named date range during which a company operates on a
// weekly schedule. Periods of the same company must never overlap, so any
// calendar date resolves to at most one period.
type OpeningPeriod struct {
	ID          string       `json:"id"`
	CompanyID   string       `json:"company_id"`
	Name        string       `json:"name"`
	StartDate   Date         `json:"start_date"`
	EndDate     Date         `json:"end_date"`
	Schedule    WeekSchedule `json:"schedule"`
	ActivityIDs []string     `json:"activity_ids,omitempty"`
	Color       string       `json:"color,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Validate validates all opening period fields
func (p *OpeningPeriod) Validate() error {
	if strings.TrimSpace(p.CompanyID) == "" {
		return ErrInvalidCompanyID
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidPeriodName
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return ErrInvalidDate
	}
	if p.StartDate.After(p.EndDate) {
		return ErrInvalidDateRange
	}
	return p.Schedule.Validate()
}

// Overlaps reports whether two periods share at least one calendar date.
// Both intervals are closed, so touching boundaries count as overlap.
func (p *OpeningPeriod) Overlaps(other *OpeningPeriod) bool {
	return !p.StartDate.After(other.EndDate) && !other.StartDate.After(p.EndDate)
}

// ContainsDate reports whether the date falls within the period, boundaries
// included.
func (p *OpeningPeriod) ContainsDate(d Date) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// IsOpenAt reports whether the period covers the date and its weekly
// schedule is open at the given wall-clock time.
func (p *OpeningPeriod) IsOpenAt(d Date, t TimeOfDay) bool {
	if !p.ContainsDate(d) {
		return false
	}
	return p.Schedule.IsOpenAt(d.Weekday(), t)
}

// OpenSlotsOn returns the open slots for the date, or nil when the date is
// outside the period or its weekday is closed.
func (p *OpeningPeriod) OpenSlotsOn(d Date) []TimeSlot {
	if !p.ContainsDate(d) {
		return nil
	}
	return p.Schedule.OpenSlotsOn(d.Weekday())
}

// AppliesToActivity reports whether the period applies to an activity.
// An empty activity list means the period applies to every activity.
func (p *OpeningPeriod) AppliesToActivity(activityID string) bool {
	if len(p.ActivityIDs) == 0 {
		return true
	}
	for _, id := range p.ActivityIDs {
		if id == activityID {
			return true
		}
	}
	return false
}
