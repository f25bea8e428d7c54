package domain

import "time"

// BookingEventType identifies a booking lifecycle event
type BookingEventType string

const (
	BookingEventCreated   BookingEventType = "booking.created"
	BookingEventUpdated   BookingEventType = "booking.updated"
	BookingEventCancelled BookingEventType = "booking.cancelled"
)

// BookingEvent is the payload published to the event stream for every
// committed booking change
type BookingEvent struct {
	EventID    string           `json:"event_id"`
	EventType  BookingEventType `json:"event_type"`
	OccurredAt time.Time        `json:"occurred_at"`
	Booking    *Booking         `json:"booking"`
}

// NewBookingEvent creates an event for a booking
func NewBookingEvent(eventType BookingEventType, booking *Booking, eventID string) *BookingEvent {
	return &BookingEvent{
		EventID:    eventID,
		EventType:  eventType,
		OccurredAt: time.Now(),
		Booking:    booking,
	}
}

// Key returns the partition key. Events of one company stay ordered.
func (e *BookingEvent) Key() string {
	if e.Booking != nil {
		return e.Booking.CompanyID
	}
	return e.EventID
}
