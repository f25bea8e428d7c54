package domain

import "time"

// Category groups activities for display
type Category struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Resource is bookable inventory an activity consumes, such as a kayak
// or a guide.
type Resource struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate validates resource fields
func (r *Resource) Validate() error {
	if r.Quantity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}

// Package is a sellable formula for an activity with its own price and
// duration.
type Package struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"company_id"`
	ActivityID      string    `json:"activity_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	MaxParticipants int       `json:"max_participants"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Validate validates package fields
func (p *Package) Validate() error {
	if p.ActivityID == "" {
		return ErrInvalidActivityID
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if p.MaxParticipants <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}
