package domain

import (
	"strings"
	"time"
)

// Activity is something a company sells bookings for, such as a canyoning
// trip or a climbing session.
type Activity struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	CategoryID  string    `json:"category_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Capacity    int       `json:"capacity"`
	ResourceIDs []string  `json:"resource_ids,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate validates activity fields
func (a *Activity) Validate() error {
	if strings.TrimSpace(a.CompanyID) == "" {
		return ErrInvalidCompanyID
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrInvalidActivityID
	}
	if a.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}
