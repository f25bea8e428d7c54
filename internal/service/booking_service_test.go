package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"github.com/xperienceoutdoors/Resav2/internal/ws"
	"github.com/xperienceoutdoors/Resav2/pkg/logger"
)

func newBookingFixture(bookingRepo *MockBookingRepository) (BookingService, *RecordingNotifier, *RecordingPublisher) {
	_ = logger.Init(&logger.Config{Level: "error", ServiceName: "test"})
	notifier := &RecordingNotifier{}
	publisher := &RecordingPublisher{}
	svc := NewBookingService(bookingRepo, &MockActivityRepository{}, &MockScheduleService{}, publisher, notifier, logger.Get())
	return svc, notifier, publisher
}

func validCreateRequest() *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		ActivityID:    "activity-1",
		Date:          "2025-07-14",
		StartTime:     "09:00",
		EndTime:       "11:00",
		Participants:  4,
		TotalPrice:    180,
		CustomerName:  "Jean Dupont",
		CustomerEmail: "jean@example.com",
	}
}

func TestBookingServiceCreate(t *testing.T) {
	var stored *domain.Booking
	repo := &MockBookingRepository{
		CreateFunc: func(ctx context.Context, b *domain.Booking) error {
			stored = b
			return nil
		},
	}
	svc, notifier, publisher := newBookingFixture(repo)

	resp, err := svc.Create(context.Background(), "company-1", validCreateRequest())
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, domain.BookingStatusPending, stored.Status)
	assert.True(t, strings.HasPrefix(resp.BookingNumber, "RV-"), "booking number %q should carry the RV prefix", resp.BookingNumber)
	assert.Equal(t, "2025-07-14", resp.Date)

	// Exactly one dashboard frame and one stream event
	require.Len(t, notifier.Messages, 1)
	assert.Equal(t, ws.MessageTypeNewBooking, notifier.Messages[0].Message.Type)
	assert.Equal(t, "company-1", notifier.Messages[0].CompanyID)

	// The frame carries the calendar projection, not the full booking
	frame, ok := notifier.Messages[0].Message.Data.(dto.BookingBroadcast)
	require.True(t, ok, "dashboard frame should carry the trimmed projection, got %T", notifier.Messages[0].Message.Data)
	assert.Equal(t, stored.ID, frame.ID)
	assert.Equal(t, "Test Activity", frame.Activity)
	assert.Equal(t, 4, frame.Participants)
	assert.Equal(t, "pending", frame.Status)

	raw, err := json.Marshal(notifier.Messages[0].Message)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "customer_name")
	assert.NotContains(t, string(raw), "jean@example.com")

	assert.Len(t, publisher.Created, 1)
	assert.Empty(t, publisher.Updated)
	assert.Empty(t, publisher.Cancelled)
}

func TestBookingServiceCreateUnknownActivity(t *testing.T) {
	repo := &MockBookingRepository{}
	_ = logger.Init(&logger.Config{Level: "error", ServiceName: "test"})
	notifier := &RecordingNotifier{}
	publisher := &RecordingPublisher{}
	activityRepo := &MockActivityRepository{
		GetByIDFunc: func(ctx context.Context, companyID, id string) (*domain.Activity, error) {
			return nil, domain.ErrActivityNotFound
		},
	}
	svc := NewBookingService(repo, activityRepo, &MockScheduleService{}, publisher, notifier, logger.Get())

	_, err := svc.Create(context.Background(), "company-1", validCreateRequest())
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
	assert.Empty(t, notifier.Messages)
	assert.Empty(t, publisher.Created)
}

func TestBookingServiceCreateWhenClosed(t *testing.T) {
	_ = logger.Init(&logger.Config{Level: "error", ServiceName: "test"})
	notifier := &RecordingNotifier{}
	publisher := &RecordingPublisher{}
	schedule := &MockScheduleService{
		IsOpenAtFunc: func(ctx context.Context, companyID string, date domain.Date, at domain.TimeOfDay) (bool, error) {
			return false, nil
		},
	}
	svc := NewBookingService(&MockBookingRepository{}, &MockActivityRepository{}, schedule, publisher, notifier, logger.Get())

	_, err := svc.Create(context.Background(), "company-1", validCreateRequest())
	require.ErrorIs(t, err, domain.ErrCompanyClosed)
	assert.True(t, domain.IsValidationError(err))
	assert.Empty(t, notifier.Messages)
	assert.Empty(t, publisher.Created)
}

func TestBookingServiceCreateRepoErrorSuppressesAnnounce(t *testing.T) {
	repoErr := errors.New("connection reset")
	repo := &MockBookingRepository{
		CreateFunc: func(ctx context.Context, b *domain.Booking) error {
			return repoErr
		},
	}
	svc, notifier, publisher := newBookingFixture(repo)

	_, err := svc.Create(context.Background(), "company-1", validCreateRequest())
	require.ErrorIs(t, err, repoErr)
	assert.Empty(t, notifier.Messages, "a failed write must not be announced")
	assert.Empty(t, publisher.Created)
}

func TestBookingServiceUpdateStatus(t *testing.T) {
	tests := []struct {
		name        string
		current     domain.BookingStatus
		next        domain.BookingStatus
		wantErr     error
		wantMsgType ws.MessageType
	}{
		{
			name:        "pending to confirmed",
			current:     domain.BookingStatusPending,
			next:        domain.BookingStatusConfirmed,
			wantMsgType: ws.MessageTypeBookingUpdate,
		},
		{
			name:        "paid to cancelled",
			current:     domain.BookingStatusPaid,
			next:        domain.BookingStatusCancelled,
			wantMsgType: ws.MessageTypeBookingCancellation,
		},
		{
			name:    "completed is terminal",
			current: domain.BookingStatusCompleted,
			next:    domain.BookingStatusPaid,
			wantErr: domain.ErrInvalidStatusTransition,
		},
		{
			name:    "pending cannot skip to paid",
			current: domain.BookingStatusPending,
			next:    domain.BookingStatusPaid,
			wantErr: domain.ErrInvalidStatusTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockBookingRepository{
				GetByIDFunc: func(ctx context.Context, companyID, id string) (*domain.Booking, error) {
					return &domain.Booking{
						ID:        id,
						CompanyID: companyID,
						Status:    tt.current,
					}, nil
				},
			}
			svc, notifier, publisher := newBookingFixture(repo)

			resp, err := svc.UpdateStatus(context.Background(), "company-1", "booking-1", tt.next)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, notifier.Messages, "rejected transition must not be announced")
				assert.Empty(t, publisher.Updated)
				assert.Empty(t, publisher.Cancelled)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.next.String(), resp.Status)
			require.Len(t, notifier.Messages, 1, "exactly one frame per committed transition")
			assert.Equal(t, tt.wantMsgType, notifier.Messages[0].Message.Type)

			if tt.next == domain.BookingStatusCancelled {
				// Cancellations carry the booking id and nothing else
				assert.Equal(t, dto.BookingCancellationBroadcast{ID: "booking-1"}, notifier.Messages[0].Message.Data)
				raw, mErr := json.Marshal(notifier.Messages[0].Message.Data)
				require.NoError(t, mErr)
				assert.JSONEq(t, `{"id":"booking-1"}`, string(raw))
				assert.Len(t, publisher.Cancelled, 1)
			} else {
				frame, ok := notifier.Messages[0].Message.Data.(dto.BookingBroadcast)
				require.True(t, ok, "dashboard frame should carry the trimmed projection, got %T", notifier.Messages[0].Message.Data)
				assert.Equal(t, "booking-1", frame.ID)
				assert.Equal(t, tt.next.String(), frame.Status)
				assert.Equal(t, "Test Activity", frame.Activity)
				assert.Len(t, publisher.Updated, 1)
			}
		})
	}
}

func TestBookingServiceBookingNumberRetriesOnCollision(t *testing.T) {
	seen := 0
	repo := &MockBookingRepository{
		BookingNumberExistsFunc: func(ctx context.Context, companyID, number string) (bool, error) {
			seen++
			// First candidate collides, second is free
			return seen == 1, nil
		},
	}
	svc, _, _ := newBookingFixture(repo)

	resp, err := svc.Create(context.Background(), "company-1", validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
	assert.True(t, strings.HasPrefix(resp.BookingNumber, "RV-"))
}

func TestBookingServiceListOnDate(t *testing.T) {
	date := domain.Date{Year: 2025, Month: 7, Day: 14}
	repo := &MockBookingRepository{
		ListOnDateFunc: func(ctx context.Context, companyID string, d domain.Date) ([]*domain.Booking, error) {
			assert.Equal(t, date, d)
			return []*domain.Booking{
				{ID: "b-1", CompanyID: companyID, ActivityID: "activity-1", Date: d, Status: domain.BookingStatusConfirmed, Participants: 3},
				{ID: "b-2", CompanyID: companyID, ActivityID: "activity-1", Date: d, Status: domain.BookingStatusPending, Participants: 2},
			}, nil
		},
	}
	svc, _, _ := newBookingFixture(repo)

	out, err := svc.ListOnDate(context.Background(), "company-1", date)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "b-1", out[0].ID)
	assert.Equal(t, "Test Activity", out[0].Activity, "snapshot entries should carry the activity name")
	assert.Equal(t, "confirmed", out[0].Status)
	assert.Equal(t, 3, out[0].Participants)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "customer")
}
