package domain

import "testing"

func TestBookingStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{name: "pending to confirmed", from: BookingStatusPending, to: BookingStatusConfirmed, want: true},
		{name: "pending to cancelled", from: BookingStatusPending, to: BookingStatusCancelled, want: true},
		{name: "pending to paid skips confirmation", from: BookingStatusPending, to: BookingStatusPaid, want: false},
		{name: "confirmed to paid", from: BookingStatusConfirmed, to: BookingStatusPaid, want: true},
		{name: "confirmed to cancelled", from: BookingStatusConfirmed, to: BookingStatusCancelled, want: true},
		{name: "confirmed back to pending", from: BookingStatusConfirmed, to: BookingStatusPending, want: false},
		{name: "paid to completed", from: BookingStatusPaid, to: BookingStatusCompleted, want: true},
		{name: "paid to cancelled", from: BookingStatusPaid, to: BookingStatusCancelled, want: true},
		{name: "completed is terminal", from: BookingStatusCompleted, to: BookingStatusCancelled, want: false},
		{name: "cancelled is terminal", from: BookingStatusCancelled, to: BookingStatusPending, want: false},
		{name: "unknown target", from: BookingStatusPending, to: BookingStatus("archived"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestBookingTransition(t *testing.T) {
	b := &Booking{Status: BookingStatusPending}

	if err := b.Transition(BookingStatusConfirmed); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if b.Status != BookingStatusConfirmed {
		t.Errorf("Expected confirmed, got %s", b.Status)
	}
	if b.CancelledAt != nil {
		t.Error("CancelledAt should not be set on confirmation")
	}

	if err := b.Transition(BookingStatusCancelled); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if b.CancelledAt == nil {
		t.Error("CancelledAt should be stamped on cancellation")
	}

	if err := b.Transition(BookingStatusConfirmed); err != ErrInvalidStatusTransition {
		t.Errorf("Expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestBookingValidate(t *testing.T) {
	valid := func() *Booking {
		return &Booking{
			CompanyID:     "company-1",
			ActivityID:    "activity-1",
			Date:          Date{Year: 2025, Month: 7, Day: 14},
			StartTime:     "09:00",
			EndTime:       "11:00",
			Participants:  4,
			TotalPrice:    180,
			Status:        BookingStatusPending,
			CustomerName:  "Jean Dupont",
			CustomerEmail: "jean@example.com",
		}
	}

	tests := []struct {
		name    string
		mutate  func(b *Booking)
		wantErr error
	}{
		{name: "valid", mutate: func(b *Booking) {}, wantErr: nil},
		{name: "no times is allowed", mutate: func(b *Booking) { b.StartTime, b.EndTime = "", "" }, wantErr: nil},
		{name: "missing company", mutate: func(b *Booking) { b.CompanyID = "" }, wantErr: ErrInvalidCompanyID},
		{name: "missing activity", mutate: func(b *Booking) { b.ActivityID = "" }, wantErr: ErrInvalidActivityID},
		{name: "zero date", mutate: func(b *Booking) { b.Date = Date{} }, wantErr: ErrInvalidDate},
		{name: "inverted times", mutate: func(b *Booking) { b.StartTime, b.EndTime = "11:00", "09:00" }, wantErr: ErrInvalidTimeSlot},
		{name: "zero participants", mutate: func(b *Booking) { b.Participants = 0 }, wantErr: ErrInvalidParticipants},
		{name: "negative price", mutate: func(b *Booking) { b.TotalPrice = -1 }, wantErr: ErrInvalidPrice},
		{name: "unknown status", mutate: func(b *Booking) { b.Status = "held" }, wantErr: ErrInvalidBookingStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid()
			tt.mutate(b)
			err := b.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if tt.wantErr != nil && err != tt.wantErr {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
