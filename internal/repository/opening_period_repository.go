package repository

import (
	"context"

	"github.com/xperienceoutdoors/Resav2/internal/domain"
)

// OpeningPeriodRepository defines the interface for opening period data access.
// Writes validate the no-overlap rule and the write atomically, so two
// concurrent writers can never both succeed with overlapping ranges.
type OpeningPeriodRepository interface {
	// CreateValidated inserts a period after checking it overlaps no other
	// period of the same company. Returns *domain.PeriodOverlapError on
	// conflict.
	CreateValidated(ctx context.Context, period *domain.OpeningPeriod) error

	// UpdateValidated updates a period after checking the new range against
	// every other period of the company, excluding the period itself.
	UpdateValidated(ctx context.Context, period *domain.OpeningPeriod) error

	// GetByID retrieves a period scoped to a company
	GetByID(ctx context.Context, companyID, id string) (*domain.OpeningPeriod, error)

	// ListByCompany retrieves all periods of a company ordered by start date
	ListByCompany(ctx context.Context, companyID string) ([]*domain.OpeningPeriod, error)

	// FindForDate retrieves the period covering a calendar date, if any
	FindForDate(ctx context.Context, companyID string, date domain.Date) (*domain.OpeningPeriod, error)

	// Delete removes a period scoped to a company
	Delete(ctx context.Context, companyID, id string) error
}
