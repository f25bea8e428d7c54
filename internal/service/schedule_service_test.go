package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
)

func TestScheduleServiceNoPeriodMeansClosed(t *testing.T) {
	svc := NewScheduleService(&MockOpeningPeriodRepository{})

	date := domain.Date{Year: 2025, Month: 7, Day: 14}
	resp, err := svc.Availability(context.Background(), "company-1", date)
	require.NoError(t, err, "a date with no period is closed, not an error")
	assert.False(t, resp.IsOpen)
	assert.Empty(t, resp.Slots)

	open, err := svc.IsOpenAt(context.Background(), "company-1", date, "10:00")
	require.NoError(t, err)
	assert.False(t, open)
}

func TestScheduleServiceAvailability(t *testing.T) {
	period := &domain.OpeningPeriod{
		ID:        "period-1",
		CompanyID: "company-1",
		Name:      "Summer",
		StartDate: domain.Date{Year: 2025, Month: 7, Day: 1},
		EndDate:   domain.Date{Year: 2025, Month: 8, Day: 31},
		Schedule: domain.WeekSchedule{
			"monday": {IsOpen: true, Slots: []domain.TimeSlot{
				{Start: "09:00", End: "12:00"},
				{Start: "14:00", End: "18:00"},
			}},
		},
	}
	repo := &MockOpeningPeriodRepository{
		FindForDateFunc: func(ctx context.Context, companyID string, date domain.Date) (*domain.OpeningPeriod, error) {
			return period, nil
		},
	}
	svc := NewScheduleService(repo)

	// 2025-07-14 is a Monday
	monday := domain.Date{Year: 2025, Month: 7, Day: 14}
	resp, err := svc.Availability(context.Background(), "company-1", monday)
	require.NoError(t, err)
	assert.True(t, resp.IsOpen)
	assert.Equal(t, "period-1", resp.PeriodID)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:00", resp.Slots[0].Start)
	assert.Equal(t, "18:00", resp.Slots[1].End)

	open, err := svc.IsOpenAt(context.Background(), "company-1", monday, "10:30")
	require.NoError(t, err)
	assert.True(t, open)

	closed, err := svc.IsOpenAt(context.Background(), "company-1", monday, "13:00")
	require.NoError(t, err)
	assert.False(t, closed, "gap between slots reads as closed")

	// 2025-07-15 is a Tuesday, missing from the schedule
	tuesday := domain.Date{Year: 2025, Month: 7, Day: 15}
	resp, err = svc.Availability(context.Background(), "company-1", tuesday)
	require.NoError(t, err)
	assert.False(t, resp.IsOpen)
	assert.Empty(t, resp.Slots)
}
