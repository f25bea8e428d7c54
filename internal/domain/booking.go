package domain

import (
	"strings"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValid checks if the status is a valid BookingStatus
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusPaid,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of BookingStatus
func (s BookingStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is allowed from s
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransitionTo reports whether a booking may move from s to next.
// The lifecycle only moves forward, and cancellation is allowed from any
// non-terminal status.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if !next.IsValid() || s.IsTerminal() {
		return false
	}
	if next == BookingStatusCancelled {
		return true
	}
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed
	case BookingStatusConfirmed:
		return next == BookingStatusPaid
	case BookingStatusPaid:
		return next == BookingStatusCompleted
	}
	return false
}

// Booking represents a customer reservation for an activity on a date
type Booking struct {
	ID            string        `json:"id"`
	CompanyID     string        `json:"company_id"`
	ActivityID    string        `json:"activity_id"`
	PackageID     string        `json:"package_id,omitempty"`
	BookingNumber string        `json:"booking_number"`
	Date          Date          `json:"date"`
	StartTime     TimeOfDay     `json:"start_time"`
	EndTime       TimeOfDay     `json:"end_time"`
	Participants  int           `json:"participants"`
	TotalPrice    float64       `json:"total_price"`
	Status        BookingStatus `json:"status"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	CustomerPhone string        `json:"customer_phone,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Validate validates all booking fields
func (b *Booking) Validate() error {
	if strings.TrimSpace(b.CompanyID) == "" {
		return ErrInvalidCompanyID
	}
	if strings.TrimSpace(b.ActivityID) == "" {
		return ErrInvalidActivityID
	}
	if b.Date.IsZero() {
		return ErrInvalidDate
	}
	if b.StartTime != "" || b.EndTime != "" {
		slot := TimeSlot{Start: b.StartTime, End: b.EndTime}
		if err := slot.Validate(); err != nil {
			return err
		}
	}
	if b.Participants <= 0 {
		return ErrInvalidParticipants
	}
	if b.TotalPrice < 0 {
		return ErrInvalidPrice
	}
	if !b.Status.IsValid() {
		return ErrInvalidBookingStatus
	}
	return nil
}

// Transition moves the booking to the next status, stamping timestamps
func (b *Booking) Transition(next BookingStatus) error {
	if !b.Status.CanTransitionTo(next) {
		return ErrInvalidStatusTransition
	}
	now := time.Now()
	b.Status = next
	if next == BookingStatusCancelled {
		b.CancelledAt = &now
	}
	b.UpdatedAt = now
	return nil
}

// IsCancelled checks if the booking is cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// BelongsToCompany checks if the booking belongs to the given company
func (b *Booking) BelongsToCompany(companyID string) bool {
	return b.CompanyID == companyID
}
