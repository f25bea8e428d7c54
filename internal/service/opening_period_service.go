package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"github.com/xperienceoutdoors/Resav2/internal/repository"
	"github.com/xperienceoutdoors/Resav2/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// OpeningPeriodService defines the interface for opening period business
// logic
type OpeningPeriodService interface {
	// Create validates and stores a new period. Overlap with any existing
	// period of the company rejects the whole request.
	Create(ctx context.Context, companyID string, req *dto.CreateOpeningPeriodRequest) (*dto.OpeningPeriodResponse, error)

	// Update validates and stores changed period fields. The period itself
	// is excluded from the overlap check, so keeping or shrinking its own
	// range always passes.
	Update(ctx context.Context, companyID, id string, req *dto.UpdateOpeningPeriodRequest) (*dto.OpeningPeriodResponse, error)

	// Get retrieves one period
	Get(ctx context.Context, companyID, id string) (*dto.OpeningPeriodResponse, error)

	// List retrieves all periods of a company
	List(ctx context.Context, companyID string) ([]dto.OpeningPeriodResponse, error)

	// Delete removes a period
	Delete(ctx context.Context, companyID, id string) error
}

type openingPeriodService struct {
	periodRepo repository.OpeningPeriodRepository
}

// NewOpeningPeriodService creates a new opening period service
func NewOpeningPeriodService(periodRepo repository.OpeningPeriodRepository) OpeningPeriodService {
	return &openingPeriodService{periodRepo: periodRepo}
}

// Create validates and stores a new period
func (s *openingPeriodService) Create(ctx context.Context, companyID string, req *dto.CreateOpeningPeriodRequest) (*dto.OpeningPeriodResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.opening_period.create")
	defer span.End()

	span.SetAttributes(attribute.String("company_id", companyID))

	period, err := buildPeriod(companyID, req.Name, req.StartDate, req.EndDate, req.Schedule, req.ActivityIDs, req.Color)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	period.ID = uuid.New().String()
	now := time.Now()
	period.CreatedAt = now
	period.UpdatedAt = now

	if err := s.periodRepo.CreateValidated(ctx, period); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp := dto.ToOpeningPeriodResponse(period)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}

// Update validates and stores changed period fields
func (s *openingPeriodService) Update(ctx context.Context, companyID, id string, req *dto.UpdateOpeningPeriodRequest) (*dto.OpeningPeriodResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.opening_period.update")
	defer span.End()

	span.SetAttributes(
		attribute.String("company_id", companyID),
		attribute.String("period_id", id),
	)

	existing, err := s.periodRepo.GetByID(ctx, companyID, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	period, err := buildPeriod(companyID, req.Name, req.StartDate, req.EndDate, req.Schedule, req.ActivityIDs, req.Color)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	period.ID = existing.ID
	period.CreatedAt = existing.CreatedAt
	period.UpdatedAt = time.Now()

	if err := s.periodRepo.UpdateValidated(ctx, period); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp := dto.ToOpeningPeriodResponse(period)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}

// Get retrieves one period
func (s *openingPeriodService) Get(ctx context.Context, companyID, id string) (*dto.OpeningPeriodResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.opening_period.get")
	defer span.End()

	period, err := s.periodRepo.GetByID(ctx, companyID, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp := dto.ToOpeningPeriodResponse(period)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}

// List retrieves all periods of a company
func (s *openingPeriodService) List(ctx context.Context, companyID string) ([]dto.OpeningPeriodResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.opening_period.list")
	defer span.End()

	periods, err := s.periodRepo.ListByCompany(ctx, companyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.ToOpeningPeriodResponses(periods), nil
}

// Delete removes a period
func (s *openingPeriodService) Delete(ctx context.Context, companyID, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.opening_period.delete")
	defer span.End()

	if err := s.periodRepo.Delete(ctx, companyID, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

func buildPeriod(companyID, name, startDate, endDate string, schedule domain.WeekSchedule, activityIDs []string, color string) (*domain.OpeningPeriod, error) {
	start, err := domain.ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDate(endDate)
	if err != nil {
		return nil, err
	}

	period := &domain.OpeningPeriod{
		CompanyID:   companyID,
		Name:        name,
		StartDate:   start,
		EndDate:     end,
		Schedule:    schedule,
		ActivityIDs: activityIDs,
		Color:       color,
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	return period, nil
}
