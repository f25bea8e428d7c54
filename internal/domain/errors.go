package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Not found errors
	ErrUserNotFound     = errors.New("user not found")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrResourceNotFound = errors.New("resource not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrPackageNotFound  = errors.New("package not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrPeriodNotFound   = errors.New("opening period not found")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailAlreadyTaken  = errors.New("email is already registered")
	ErrUserInactive       = errors.New("user account is inactive")

	// Validation errors
	ErrInvalidCompanyID        = errors.New("invalid company id")
	ErrInvalidActivityID       = errors.New("invalid activity id")
	ErrInvalidPeriodName       = errors.New("period name is required")
	ErrInvalidDateRange        = errors.New("start date must not be after end date")
	ErrInvalidDate             = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTimeOfDay        = errors.New("invalid time, expected HH:MM")
	ErrInvalidTimeSlot         = errors.New("slot start must be before slot end")
	ErrInvalidBookingStatus    = errors.New("invalid booking status")
	ErrInvalidRole             = errors.New("invalid user role")
	ErrInvalidParticipants     = errors.New("participants must be greater than zero")
	ErrInvalidPrice            = errors.New("price cannot be negative")
	ErrInvalidCapacity         = errors.New("capacity must be greater than zero")
	ErrCompanyClosed           = errors.New("company is closed at the requested time")

	// Conflict errors
	ErrInvalidStatusTransition = errors.New("booking status transition not allowed")
	ErrBookingNumberTaken      = errors.New("booking number already exists")
)

// PeriodOverlapError is returned when a new or updated opening period would
// overlap an existing period of the same company.
type PeriodOverlapError struct {
	ConflictingID   string
	ConflictingName string
}

func (e *PeriodOverlapError) Error() string {
	if e.ConflictingName != "" {
		return fmt.Sprintf("period overlaps existing period %q (%s)", e.ConflictingName, e.ConflictingID)
	}
	return fmt.Sprintf("period overlaps existing period %s", e.ConflictingID)
}

// IsOverlapError checks if the error is a period overlap conflict
func IsOverlapError(err error) bool {
	var overlap *PeriodOverlapError
	return errors.As(err, &overlap)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCompanyNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrResourceNotFound) ||
		errors.Is(err, ErrActivityNotFound) ||
		errors.Is(err, ErrPackageNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrPeriodNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidCompanyID) ||
		errors.Is(err, ErrInvalidActivityID) ||
		errors.Is(err, ErrInvalidPeriodName) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidTimeOfDay) ||
		errors.Is(err, ErrInvalidTimeSlot) ||
		errors.Is(err, ErrInvalidBookingStatus) ||
		errors.Is(err, ErrInvalidRole) ||
		errors.Is(err, ErrInvalidParticipants) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidCapacity) ||
		errors.Is(err, ErrCompanyClosed)
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return IsOverlapError(err) ||
		errors.Is(err, ErrInvalidStatusTransition) ||
		errors.Is(err, ErrEmailAlreadyTaken) ||
		errors.Is(err, ErrBookingNumberTaken)
}

// IsAuthError checks if the error is an authentication error
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrUserInactive)
}
