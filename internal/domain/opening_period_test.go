package domain

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func period(t *testing.T, start, end string) *OpeningPeriod {
	t.Helper()
	return &OpeningPeriod{
		ID:        "period-1",
		CompanyID: "company-1",
		Name:      "Season",
		StartDate: mustDate(t, start),
		EndDate:   mustDate(t, end),
	}
}

func TestOpeningPeriodOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart string
		aEnd   string
		bStart string
		bEnd   string
		want   bool
	}{
		{name: "disjoint before", aStart: "2025-07-01", aEnd: "2025-08-31", bStart: "2025-09-01", bEnd: "2025-10-31", want: false},
		{name: "disjoint after", aStart: "2025-09-01", aEnd: "2025-10-31", bStart: "2025-07-01", bEnd: "2025-08-31", want: false},
		{name: "shared boundary day", aStart: "2025-07-01", aEnd: "2025-08-31", bStart: "2025-08-31", bEnd: "2025-10-31", want: true},
		{name: "partial overlap", aStart: "2025-07-01", aEnd: "2025-08-31", bStart: "2025-08-15", bEnd: "2025-09-15", want: true},
		{name: "new strictly contains existing", aStart: "2025-06-01", aEnd: "2025-12-31", bStart: "2025-07-01", bEnd: "2025-08-31", want: true},
		{name: "new strictly inside existing", aStart: "2025-07-10", aEnd: "2025-07-20", bStart: "2025-07-01", bEnd: "2025-08-31", want: true},
		{name: "identical range", aStart: "2025-07-01", aEnd: "2025-08-31", bStart: "2025-07-01", bEnd: "2025-08-31", want: true},
		{name: "single day ranges touching", aStart: "2025-07-01", aEnd: "2025-07-01", bStart: "2025-07-01", bEnd: "2025-07-01", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := period(t, tt.aStart, tt.aEnd)
			b := period(t, tt.bStart, tt.bEnd)
			if got := a.Overlaps(b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric
			if got := b.Overlaps(a); got != tt.want {
				t.Errorf("Overlaps (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpeningPeriodValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *OpeningPeriod)
		wantErr error
	}{
		{name: "valid", mutate: func(p *OpeningPeriod) {}, wantErr: nil},
		{name: "missing company", mutate: func(p *OpeningPeriod) { p.CompanyID = "" }, wantErr: ErrInvalidCompanyID},
		{name: "missing name", mutate: func(p *OpeningPeriod) { p.Name = "  " }, wantErr: ErrInvalidPeriodName},
		{name: "inverted range", mutate: func(p *OpeningPeriod) { p.StartDate, p.EndDate = p.EndDate, p.StartDate }, wantErr: ErrInvalidDateRange},
		{name: "zero start date", mutate: func(p *OpeningPeriod) { p.StartDate = Date{} }, wantErr: ErrInvalidDate},
		{
			name: "bad schedule slot",
			mutate: func(p *OpeningPeriod) {
				p.Schedule = WeekSchedule{"monday": {IsOpen: true, Slots: []TimeSlot{{Start: "12:00", End: "12:00"}}}}
			},
			wantErr: ErrInvalidTimeSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := period(t, "2025-07-01", "2025-08-31")
			tt.mutate(p)
			err := p.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if tt.wantErr != nil && err != tt.wantErr {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestOpeningPeriodIsOpenAt(t *testing.T) {
	p := period(t, "2025-07-01", "2025-08-31")
	p.Schedule = WeekSchedule{
		"monday": {IsOpen: true, Slots: []TimeSlot{{Start: "09:00", End: "17:00"}}},
	}

	// 2025-07-07 is a Monday
	monday := mustDate(t, "2025-07-07")
	if !p.IsOpenAt(monday, "10:00") {
		t.Error("Expected open on a Monday inside the period")
	}
	if p.IsOpenAt(monday, "08:00") {
		t.Error("Expected closed before the slot starts")
	}

	// 2025-07-08 is a Tuesday, absent from the schedule
	tuesday := mustDate(t, "2025-07-08")
	if p.IsOpenAt(tuesday, "10:00") {
		t.Error("Expected missing weekday to read as closed")
	}

	// 2025-09-01 is a Monday outside the period
	outside := mustDate(t, "2025-09-01")
	if p.IsOpenAt(outside, "10:00") {
		t.Error("Expected closed outside the date range")
	}
	if slots := p.OpenSlotsOn(outside); slots != nil {
		t.Errorf("Expected nil slots outside the date range, got %+v", slots)
	}
}

func TestOpeningPeriodAppliesToActivity(t *testing.T) {
	p := period(t, "2025-07-01", "2025-08-31")

	if !p.AppliesToActivity("activity-1") {
		t.Error("Empty activity list should apply to every activity")
	}

	p.ActivityIDs = []string{"activity-1", "activity-2"}
	if !p.AppliesToActivity("activity-2") {
		t.Error("Expected listed activity to match")
	}
	if p.AppliesToActivity("activity-3") {
		t.Error("Expected unlisted activity not to match")
	}
}

func TestDateWeekday(t *testing.T) {
	// Known anchor: 2025-07-01 was a Tuesday
	d := mustDate(t, "2025-07-01")
	if d.Weekday() != time.Tuesday {
		t.Errorf("Expected Tuesday, got %v", d.Weekday())
	}
	if d.AddDays(6).Weekday() != time.Monday {
		t.Errorf("Expected Monday six days later, got %v", d.AddDays(6).Weekday())
	}
}
