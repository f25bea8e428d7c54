package repository

import (
	"context"

	"github.com/xperienceoutdoors/Resav2/internal/domain"
)

// BookingFilter narrows booking listings
type BookingFilter struct {
	From       *domain.Date
	To         *domain.Date
	Status     domain.BookingStatus
	ActivityID string
	Limit      int
	Offset     int
}

// BookingRepository defines the interface for booking data access. Every
// read and write is scoped to a company.
type BookingRepository interface {
	// Create creates a new booking record in the database
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking scoped to a company
	GetByID(ctx context.Context, companyID, id string) (*domain.Booking, error)

	// ListByCompany retrieves bookings of a company matching the filter
	ListByCompany(ctx context.Context, companyID string, filter BookingFilter) ([]*domain.Booking, error)

	// ListOnDate retrieves all bookings of a company on a calendar date
	ListOnDate(ctx context.Context, companyID string, date domain.Date) ([]*domain.Booking, error)

	// Update updates an existing booking
	Update(ctx context.Context, booking *domain.Booking) error

	// UpdateStatus updates only the status of a booking
	UpdateStatus(ctx context.Context, companyID, id string, status domain.BookingStatus) error

	// Delete deletes a booking scoped to a company
	Delete(ctx context.Context, companyID, id string) error

	// AggregateRange aggregates counts, revenue and participants over a
	// closed date range
	AggregateRange(ctx context.Context, companyID string, from, to domain.Date) (*domain.BookingStats, error)

	// BookingNumberExists checks whether a booking number is already used
	// by a company
	BookingNumberExists(ctx context.Context, companyID, number string) (bool, error)
}
