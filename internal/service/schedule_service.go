package service

import (
	"context"
	"errors"

	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"github.com/xperienceoutdoors/Resav2/internal/repository"
	"github.com/xperienceoutdoors/Resav2/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ScheduleService answers availability questions by resolving the opening
// period covering a date and evaluating its weekly schedule. A date with no
// period, or a weekday the schedule omits, reads as closed rather than an
// error.
type ScheduleService interface {
	// Availability returns the open slots of a company on a date
	Availability(ctx context.Context, companyID string, date domain.Date) (*dto.AvailabilityResponse, error)

	// IsOpenAt reports whether a company is open on a date at a time
	IsOpenAt(ctx context.Context, companyID string, date domain.Date, at domain.TimeOfDay) (bool, error)
}

type scheduleService struct {
	periodRepo repository.OpeningPeriodRepository
}

// NewScheduleService creates a new schedule service
func NewScheduleService(periodRepo repository.OpeningPeriodRepository) ScheduleService {
	return &scheduleService{periodRepo: periodRepo}
}

// Availability returns the open slots of a company on a date
func (s *scheduleService) Availability(ctx context.Context, companyID string, date domain.Date) (*dto.AvailabilityResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.schedule.availability")
	defer span.End()

	span.SetAttributes(
		attribute.String("company_id", companyID),
		attribute.String("date", date.String()),
	)

	period, err := s.periodRepo.FindForDate(ctx, companyID, date)
	if err != nil {
		if errors.Is(err, domain.ErrPeriodNotFound) {
			span.SetStatus(codes.Ok, "")
			return &dto.AvailabilityResponse{Date: date.String(), IsOpen: false, Slots: []dto.SlotResponse{}}, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	slots := period.OpenSlotsOn(date)
	span.SetStatus(codes.Ok, "")
	return &dto.AvailabilityResponse{
		Date:     date.String(),
		IsOpen:   len(slots) > 0,
		PeriodID: period.ID,
		Slots:    dto.ToSlotResponses(slots),
	}, nil
}

// IsOpenAt reports whether a company is open on a date at a time
func (s *scheduleService) IsOpenAt(ctx context.Context, companyID string, date domain.Date, at domain.TimeOfDay) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.schedule.is_open_at")
	defer span.End()

	period, err := s.periodRepo.FindForDate(ctx, companyID, date)
	if err != nil {
		if errors.Is(err, domain.ErrPeriodNotFound) {
			span.SetStatus(codes.Ok, "")
			return false, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	span.SetStatus(codes.Ok, "")
	return period.IsOpenAt(date, at), nil
}
