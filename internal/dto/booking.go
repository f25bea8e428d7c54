package dto

import "github.com/xperienceoutdoors/Resav2/internal/domain"

// CreateBookingRequest creates a new booking
type CreateBookingRequest struct {
	ActivityID    string  `json:"activity_id" binding:"required"`
	PackageID     string  `json:"package_id"`
	Date          string  `json:"date" binding:"required"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Participants  int     `json:"participants" binding:"required,gt=0"`
	TotalPrice    float64 `json:"total_price" binding:"gte=0"`
	CustomerName  string  `json:"customer_name" binding:"required"`
	CustomerEmail string  `json:"customer_email" binding:"required,email"`
	CustomerPhone string  `json:"customer_phone"`
	Notes         string  `json:"notes"`
}

// UpdateBookingRequest updates booking details
type UpdateBookingRequest struct {
	Date          string  `json:"date" binding:"required"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Participants  int     `json:"participants" binding:"required,gt=0"`
	TotalPrice    float64 `json:"total_price" binding:"gte=0"`
	CustomerName  string  `json:"customer_name" binding:"required"`
	CustomerEmail string  `json:"customer_email" binding:"required,email"`
	CustomerPhone string  `json:"customer_phone"`
	Notes         string  `json:"notes"`
}

// UpdateBookingStatusRequest moves a booking through its lifecycle
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed paid completed cancelled"`
}

// ListBookingsQuery narrows booking listings
type ListBookingsQuery struct {
	From       string `form:"from"`
	To         string `form:"to"`
	Status     string `form:"status"`
	ActivityID string `form:"activity_id"`
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"page_size,default=50"`
}

// BookingResponse is the public view of a booking
type BookingResponse struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"company_id"`
	ActivityID    string  `json:"activity_id"`
	PackageID     string  `json:"package_id,omitempty"`
	BookingNumber string  `json:"booking_number"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time,omitempty"`
	EndTime       string  `json:"end_time,omitempty"`
	Participants  int     `json:"participants"`
	TotalPrice    float64 `json:"total_price"`
	Status        string  `json:"status"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone string  `json:"customer_phone,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// ToBookingResponse converts a domain booking
func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		CompanyID:     b.CompanyID,
		ActivityID:    b.ActivityID,
		PackageID:     b.PackageID,
		BookingNumber: b.BookingNumber,
		Date:          b.Date.String(),
		StartTime:     string(b.StartTime),
		EndTime:       string(b.EndTime),
		Participants:  b.Participants,
		TotalPrice:    b.TotalPrice,
		Status:        b.Status.String(),
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Notes:         b.Notes,
	}
}

// BookingBroadcast is the projection pushed to dashboards over the
// websocket. It carries only what the calendar renders and never the
// customer contact details.
type BookingBroadcast struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time,omitempty"`
	EndTime      string `json:"end_time,omitempty"`
	Activity     string `json:"activity"`
	Participants int    `json:"participants"`
	Status       string `json:"status"`
}

// BookingCancellationBroadcast identifies a cancelled booking by id only
type BookingCancellationBroadcast struct {
	ID string `json:"id"`
}

// ToBookingBroadcast converts a domain booking for the dashboard feed
func ToBookingBroadcast(b *domain.Booking, activityName string) BookingBroadcast {
	return BookingBroadcast{
		ID:           b.ID,
		Date:         b.Date.String(),
		StartTime:    string(b.StartTime),
		EndTime:      string(b.EndTime),
		Activity:     activityName,
		Participants: b.Participants,
		Status:       b.Status.String(),
	}
}

// ToBookingResponses converts a list of domain bookings
func ToBookingResponses(bookings []*domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, ToBookingResponse(b))
	}
	return out
}
