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

// ActivityService defines the interface for activity business logic
type ActivityService interface {
	Create(ctx context.Context, companyID string, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error)
	Get(ctx context.Context, companyID, id string) (*dto.ActivityResponse, error)
	List(ctx context.Context, companyID string) ([]dto.ActivityResponse, error)
	Update(ctx context.Context, companyID, id string, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type activityService struct {
	activityRepo repository.ActivityRepository
}

// NewActivityService creates a new activity service
func NewActivityService(activityRepo repository.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

func (s *activityService) Create(ctx context.Context, companyID string, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.activity.create")
	defer span.End()

	span.SetAttributes(attribute.String("company_id", companyID))

	now := time.Now()
	activity := &domain.Activity{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
		ResourceIDs: req.ResourceIDs,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := activity.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp := dto.ToActivityResponse(activity)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}

func (s *activityService) Get(ctx context.Context, companyID, id string) (*dto.ActivityResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.activity.get")
	defer span.End()

	activity, err := s.activityRepo.GetByID(ctx, companyID, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp := dto.ToActivityResponse(activity)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}

func (s *activityService) List(ctx context.Context, companyID string) ([]dto.ActivityResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.activity.list")
	defer span.End()

	activities, err := s.activityRepo.ListByCompany(ctx, companyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]dto.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, dto.ToActivityResponse(a))
	}
	span.SetStatus(codes.Ok, "")
	return out, nil
}

func (s *activityService) Update(ctx context.Context, companyID, id string, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.activity.update")
	defer span.End()

	activity, err := s.activityRepo.GetByID(ctx, companyID, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	activity.CategoryID = req.CategoryID
	activity.Name = req.Name
	activity.Description = req.Description
	activity.Capacity = req.Capacity
	activity.ResourceIDs = req.ResourceIDs
	activity.UpdatedAt = time.Now()

	if err := activity.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.activityRepo.Update(ctx, activity); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp := dto.ToActivityResponse(activity)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}

func (s *activityService) Delete(ctx context.Context, companyID, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.activity.delete")
	defer span.End()

	if err := s.activityRepo.Delete(ctx, companyID, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}
