package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
)

func openSchedule() domain.WeekSchedule {
	return domain.WeekSchedule{
		"monday": {IsOpen: true, Slots: []domain.TimeSlot{{Start: "09:00", End: "17:00"}}},
	}
}

func TestOpeningPeriodServiceCreate(t *testing.T) {
	var stored *domain.OpeningPeriod
	repo := &MockOpeningPeriodRepository{
		CreateValidatedFunc: func(ctx context.Context, p *domain.OpeningPeriod) error {
			stored = p
			return nil
		},
	}
	svc := NewOpeningPeriodService(repo)

	resp, err := svc.Create(context.Background(), "company-1", &dto.CreateOpeningPeriodRequest{
		Name:      "Summer season",
		StartDate: "2025-07-01",
		EndDate:   "2025-08-31",
		Schedule:  openSchedule(),
		Color:     "#2d8a4e",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, "company-1", stored.CompanyID)
	assert.Equal(t, "2025-07-01", resp.StartDate)
	assert.Equal(t, "2025-08-31", resp.EndDate)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestOpeningPeriodServiceCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateOpeningPeriodRequest
		wantErr error
	}{
		{
			name: "inverted range",
			req: dto.CreateOpeningPeriodRequest{
				Name:      "Bad",
				StartDate: "2025-08-31",
				EndDate:   "2025-07-01",
				Schedule:  openSchedule(),
			},
			wantErr: domain.ErrInvalidDateRange,
		},
		{
			name: "malformed date",
			req: dto.CreateOpeningPeriodRequest{
				Name:      "Bad",
				StartDate: "01/07/2025",
				EndDate:   "2025-08-31",
				Schedule:  openSchedule(),
			},
			wantErr: domain.ErrInvalidDate,
		},
		{
			name: "bad slot",
			req: dto.CreateOpeningPeriodRequest{
				Name:      "Bad",
				StartDate: "2025-07-01",
				EndDate:   "2025-08-31",
				Schedule: domain.WeekSchedule{
					"monday": {IsOpen: true, Slots: []domain.TimeSlot{{Start: "17:00", End: "09:00"}}},
				},
			},
			wantErr: domain.ErrInvalidTimeSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			repo := &MockOpeningPeriodRepository{
				CreateValidatedFunc: func(ctx context.Context, p *domain.OpeningPeriod) error {
					called = true
					return nil
				},
			}
			svc := NewOpeningPeriodService(repo)

			_, err := svc.Create(context.Background(), "company-1", &tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.False(t, called, "invalid input must never reach the store")
		})
	}
}

func TestOpeningPeriodServiceCreateOverlapConflict(t *testing.T) {
	repo := &MockOpeningPeriodRepository{
		CreateValidatedFunc: func(ctx context.Context, p *domain.OpeningPeriod) error {
			return &domain.PeriodOverlapError{ConflictingID: "period-7", ConflictingName: "High season"}
		},
	}
	svc := NewOpeningPeriodService(repo)

	_, err := svc.Create(context.Background(), "company-1", &dto.CreateOpeningPeriodRequest{
		Name:      "Summer",
		StartDate: "2025-07-01",
		EndDate:   "2025-08-31",
		Schedule:  openSchedule(),
	})
	require.Error(t, err)

	var overlap *domain.PeriodOverlapError
	require.ErrorAs(t, err, &overlap)
	assert.Equal(t, "period-7", overlap.ConflictingID)
	assert.True(t, domain.IsConflictError(err))
}

func TestOpeningPeriodServiceUpdateKeepsIdentity(t *testing.T) {
	existing := &domain.OpeningPeriod{
		ID:        "period-1",
		CompanyID: "company-1",
		Name:      "Old name",
		StartDate: domain.Date{Year: 2025, Month: 7, Day: 1},
		EndDate:   domain.Date{Year: 2025, Month: 8, Day: 31},
		Schedule:  openSchedule(),
	}

	var updated *domain.OpeningPeriod
	repo := &MockOpeningPeriodRepository{
		GetByIDFunc: func(ctx context.Context, companyID, id string) (*domain.OpeningPeriod, error) {
			return existing, nil
		},
		UpdateValidatedFunc: func(ctx context.Context, p *domain.OpeningPeriod) error {
			updated = p
			return nil
		},
	}
	svc := NewOpeningPeriodService(repo)

	// Same date range as the period itself: must be accepted, a period
	// never conflicts with itself
	resp, err := svc.Update(context.Background(), "company-1", "period-1", &dto.UpdateOpeningPeriodRequest{
		Name:      "New name",
		StartDate: "2025-07-01",
		EndDate:   "2025-08-31",
		Schedule:  openSchedule(),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "period-1", updated.ID)
	assert.Equal(t, "New name", resp.Name)
}

func TestOpeningPeriodServiceUpdateMissing(t *testing.T) {
	repo := &MockOpeningPeriodRepository{}
	svc := NewOpeningPeriodService(repo)

	_, err := svc.Update(context.Background(), "company-1", "nope", &dto.UpdateOpeningPeriodRequest{
		Name:      "X",
		StartDate: "2025-07-01",
		EndDate:   "2025-08-31",
		Schedule:  openSchedule(),
	})
	require.ErrorIs(t, err, domain.ErrPeriodNotFound)
}

// TestOpeningPeriodServiceSequentialNoOverlap drives the service against an
// in-memory store that enforces the same overlap rule as the real one, and
// checks that whatever sequence of random requests is accepted, the stored
// periods stay pairwise disjoint.
func TestOpeningPeriodServiceSequentialNoOverlap(t *testing.T) {
	stored := []*domain.OpeningPeriod{}
	repo := &MockOpeningPeriodRepository{
		CreateValidatedFunc: func(ctx context.Context, p *domain.OpeningPeriod) error {
			for _, existing := range stored {
				if existing.Overlaps(p) {
					return &domain.PeriodOverlapError{ConflictingID: existing.ID}
				}
			}
			stored = append(stored, p)
			return nil
		},
	}
	svc := NewOpeningPeriodService(repo)

	rng := rand.New(rand.NewSource(42))
	base := domain.Date{Year: 2025, Month: 1, Day: 1}

	accepted := 0
	for i := 0; i < 200; i++ {
		start := base.AddDays(rng.Intn(360))
		end := start.AddDays(rng.Intn(30))
		_, err := svc.Create(context.Background(), "company-1", &dto.CreateOpeningPeriodRequest{
			Name:      "Period",
			StartDate: start.String(),
			EndDate:   end.String(),
			Schedule:  openSchedule(),
		})
		if err == nil {
			accepted++
		} else {
			require.True(t, domain.IsConflictError(err), "unexpected error kind: %v", err)
		}
	}

	require.Greater(t, accepted, 0)
	require.Equal(t, accepted, len(stored))
	for i := 0; i < len(stored); i++ {
		for j := i + 1; j < len(stored); j++ {
			assert.False(t, stored[i].Overlaps(stored[j]),
				"stored periods %s and %s overlap", stored[i].ID, stored[j].ID)
		}
	}
}
