package domain

import (
	"strings"
	"time"
)

// Company is a tenant. Every catalog record, opening period, booking and
// realtime subscription is scoped to exactly one company.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Timezone  string    `json:"timezone"`
	Currency  string    `json:"currency"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate validates required company fields
func (c *Company) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidCompanyID
	}
	return nil
}

// Location resolves the company timezone, falling back to UTC
func (c *Company) Location() *time.Location {
	if c.Timezone != "" {
		if loc, err := time.LoadLocation(c.Timezone); err == nil {
			return loc
		}
	}
	return time.UTC
}
