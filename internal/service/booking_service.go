package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"github.com/xperienceoutdoors/Resav2/internal/repository"
	"github.com/xperienceoutdoors/Resav2/internal/ws"
	"github.com/xperienceoutdoors/Resav2/pkg/logger"
	"github.com/xperienceoutdoors/Resav2/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// RealtimeNotifier fans committed booking changes out to connected
// dashboards
type RealtimeNotifier interface {
	Broadcast(companyID string, msg ws.Message)
}

// BookingService defines the interface for booking business logic
type BookingService interface {
	// Create validates and stores a new booking, then announces it
	Create(ctx context.Context, companyID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)

	// Get retrieves a booking
	Get(ctx context.Context, companyID, id string) (*dto.BookingResponse, error)

	// List retrieves bookings matching the query
	List(ctx context.Context, companyID string, query *dto.ListBookingsQuery) ([]dto.BookingResponse, error)

	// ListOnDate retrieves all bookings on a calendar date in the dashboard
	// projection. The websocket handshake uses it for the initial snapshot.
	ListOnDate(ctx context.Context, companyID string, date domain.Date) ([]dto.BookingBroadcast, error)

	// Update modifies booking details, then announces the change
	Update(ctx context.Context, companyID, id string, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error)

	// UpdateStatus moves a booking through its lifecycle, then announces
	// the change
	UpdateStatus(ctx context.Context, companyID, id string, status domain.BookingStatus) (*dto.BookingResponse, error)

	// Delete removes a booking
	Delete(ctx context.Context, companyID, id string) error
}

type bookingService struct {
	bookingRepo    repository.BookingRepository
	activityRepo   repository.ActivityRepository
	schedule       ScheduleService
	eventPublisher EventPublisher
	notifier       RealtimeNotifier
	log            *logger.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repository.BookingRepository,
	activityRepo repository.ActivityRepository,
	schedule ScheduleService,
	eventPublisher EventPublisher,
	notifier RealtimeNotifier,
	log *logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		activityRepo:   activityRepo,
		schedule:       schedule,
		eventPublisher: eventPublisher,
		notifier:       notifier,
		log:            log,
	}
}

// Create validates and stores a new booking, then announces it
func (s *bookingService) Create(ctx context.Context, companyID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("company_id", companyID),
		attribute.String("activity_id", req.ActivityID),
	)

	if _, err := s.activityRepo.GetByID(ctx, companyID, req.ActivityID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if req.StartTime != "" {
		open, err := s.schedule.IsOpenAt(ctx, companyID, date, domain.TimeOfDay(req.StartTime))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		if !open {
			span.SetStatus(codes.Error, domain.ErrCompanyClosed.Error())
			return nil, domain.ErrCompanyClosed
		}
	}

	number, err := s.generateBookingNumber(ctx, companyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	now := time.Now()
	booking := &domain.Booking{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		ActivityID:    req.ActivityID,
		PackageID:     req.PackageID,
		BookingNumber: number,
		Date:          date,
		StartTime:     domain.TimeOfDay(req.StartTime),
		EndTime:       domain.TimeOfDay(req.EndTime),
		Participants:  req.Participants,
		TotalPrice:    req.TotalPrice,
		Status:        domain.BookingStatusPending,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := booking.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.announce(ctx, booking, ws.MessageTypeNewBooking, domain.BookingEventCreated)

	resp := dto.ToBookingResponse(booking)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}

// Get retrieves a booking
func (s *bookingService) Get(ctx context.Context, companyID, id string) (*dto.BookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.get")
	defer span.End()

	booking, err := s.bookingRepo.GetByID(ctx, companyID, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp := dto.ToBookingResponse(booking)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}

// List retrieves bookings matching the query
func (s *bookingService) List(ctx context.Context, companyID string, query *dto.ListBookingsQuery) ([]dto.BookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.list")
	defer span.End()

	filter := repository.BookingFilter{
		Status:     domain.BookingStatus(query.Status),
		ActivityID: query.ActivityID,
	}
	if query.From != "" {
		from, err := domain.ParseDate(query.From)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		filter.From = &from
	}
	if query.To != "" {
		to, err := domain.ParseDate(query.To)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		filter.To = &to
	}

	pageSize := query.PageSize
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}
	page := query.Page
	if page <= 0 {
		page = 1
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	bookings, err := s.bookingRepo.ListByCompany(ctx, companyID, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.ToBookingResponses(bookings), nil
}

// ListOnDate retrieves all bookings on a calendar date in the dashboard
// projection
func (s *bookingService) ListOnDate(ctx context.Context, companyID string, date domain.Date) ([]dto.BookingBroadcast, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.list_on_date")
	defer span.End()

	bookings, err := s.bookingRepo.ListOnDate(ctx, companyID, date)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	names := make(map[string]string)
	out := make([]dto.BookingBroadcast, 0, len(bookings))
	for _, b := range bookings {
		name, ok := names[b.ActivityID]
		if !ok {
			name = s.activityName(ctx, b)
			names[b.ActivityID] = name
		}
		out = append(out, dto.ToBookingBroadcast(b, name))
	}

	span.SetStatus(codes.Ok, "")
	return out, nil
}

// Update modifies booking details, then announces the change
func (s *bookingService) Update(ctx context.Context, companyID, id string, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.update")
	defer span.End()

	span.SetAttributes(attribute.String("booking_id", id))

	booking, err := s.bookingRepo.GetByID(ctx, companyID, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	booking.Date = date
	booking.StartTime = domain.TimeOfDay(req.StartTime)
	booking.EndTime = domain.TimeOfDay(req.EndTime)
	booking.Participants = req.Participants
	booking.TotalPrice = req.TotalPrice
	booking.CustomerName = req.CustomerName
	booking.CustomerEmail = req.CustomerEmail
	booking.CustomerPhone = req.CustomerPhone
	booking.Notes = req.Notes
	booking.UpdatedAt = time.Now()

	if err := booking.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.announce(ctx, booking, ws.MessageTypeBookingUpdate, domain.BookingEventUpdated)

	resp := dto.ToBookingResponse(booking)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}

// UpdateStatus moves a booking through its lifecycle, then announces the
// change
func (s *bookingService) UpdateStatus(ctx context.Context, companyID, id string, status domain.BookingStatus) (*dto.BookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.update_status")
	defer span.End()

	span.SetAttributes(
		attribute.String("booking_id", id),
		attribute.String("status", status.String()),
	)

	booking, err := s.bookingRepo.GetByID(ctx, companyID, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := booking.Transition(status); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, companyID, id, status); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if status == domain.BookingStatusCancelled {
		s.announce(ctx, booking, ws.MessageTypeBookingCancellation, domain.BookingEventCancelled)
	} else {
		s.announce(ctx, booking, ws.MessageTypeBookingUpdate, domain.BookingEventUpdated)
	}

	resp := dto.ToBookingResponse(booking)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}

// Delete removes a booking
func (s *bookingService) Delete(ctx context.Context, companyID, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.delete")
	defer span.End()

	if err := s.bookingRepo.Delete(ctx, companyID, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// announce emits exactly one dashboard frame and one stream event for a
// committed change. Both are best effort, the write has already succeeded.
// Dashboard frames carry the trimmed projection, never the customer
// contact details; cancellations carry the booking id alone.
func (s *bookingService) announce(ctx context.Context, booking *domain.Booking, msgType ws.MessageType, eventType domain.BookingEventType) {
	if s.notifier != nil {
		var data interface{}
		if msgType == ws.MessageTypeBookingCancellation {
			data = dto.BookingCancellationBroadcast{ID: booking.ID}
		} else {
			data = dto.ToBookingBroadcast(booking, s.activityName(ctx, booking))
		}
		s.notifier.Broadcast(booking.CompanyID, ws.Message{
			Type: msgType,
			Data: data,
		})
	}

	if s.eventPublisher == nil {
		return
	}
	var err error
	switch eventType {
	case domain.BookingEventCreated:
		err = s.eventPublisher.PublishBookingCreated(ctx, booking)
	case domain.BookingEventCancelled:
		err = s.eventPublisher.PublishBookingCancelled(ctx, booking)
	default:
		err = s.eventPublisher.PublishBookingUpdated(ctx, booking)
	}
	if err != nil {
		s.log.Warn("failed to publish booking event",
			zap.String("booking_id", booking.ID),
			zap.String("event_type", string(eventType)),
			zap.Error(err),
		)
	}
}

// activityName resolves the activity label shown on the dashboard. A
// lookup failure degrades to an empty label rather than suppressing the
// frame.
func (s *bookingService) activityName(ctx context.Context, booking *domain.Booking) string {
	activity, err := s.activityRepo.GetByID(ctx, booking.CompanyID, booking.ActivityID)
	if err != nil {
		s.log.Warn("failed to resolve activity name for broadcast",
			zap.String("booking_id", booking.ID),
			zap.String("activity_id", booking.ActivityID),
			zap.Error(err),
		)
		return ""
	}
	return activity.Name
}

const bookingNumberAttempts = 5

// generateBookingNumber derives a short human readable reference and
// retries on the rare collision
func (s *bookingService) generateBookingNumber(ctx context.Context, companyID string) (string, error) {
	for i := 0; i < bookingNumberAttempts; i++ {
		raw := strings.ReplaceAll(uuid.New().String(), "-", "")
		number := "RV-" + strings.ToUpper(raw[:8])

		exists, err := s.bookingRepo.BookingNumberExists(ctx, companyID, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", domain.ErrBookingNumberTaken
}
