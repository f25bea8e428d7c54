package service

import (
	"context"
	"sync"

	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"github.com/xperienceoutdoors/Resav2/internal/repository"
	"github.com/xperienceoutdoors/Resav2/internal/ws"
)

// MockScheduleService is a mock implementation of ScheduleService. The
// defaults report the company as open.
type MockScheduleService struct {
	AvailabilityFunc func(ctx context.Context, companyID string, date domain.Date) (*dto.AvailabilityResponse, error)
	IsOpenAtFunc     func(ctx context.Context, companyID string, date domain.Date, at domain.TimeOfDay) (bool, error)
}

func (m *MockScheduleService) Availability(ctx context.Context, companyID string, date domain.Date) (*dto.AvailabilityResponse, error) {
	if m.AvailabilityFunc != nil {
		return m.AvailabilityFunc(ctx, companyID, date)
	}
	return &dto.AvailabilityResponse{Date: date.String(), IsOpen: true}, nil
}

func (m *MockScheduleService) IsOpenAt(ctx context.Context, companyID string, date domain.Date, at domain.TimeOfDay) (bool, error) {
	if m.IsOpenAtFunc != nil {
		return m.IsOpenAtFunc(ctx, companyID, date, at)
	}
	return true, nil
}

// MockBookingRepository is a mock implementation of BookingRepository
type MockBookingRepository struct {
	CreateFunc              func(ctx context.Context, booking *domain.Booking) error
	GetByIDFunc             func(ctx context.Context, companyID, id string) (*domain.Booking, error)
	ListByCompanyFunc       func(ctx context.Context, companyID string, filter repository.BookingFilter) ([]*domain.Booking, error)
	ListOnDateFunc          func(ctx context.Context, companyID string, date domain.Date) ([]*domain.Booking, error)
	UpdateFunc              func(ctx context.Context, booking *domain.Booking) error
	UpdateStatusFunc        func(ctx context.Context, companyID, id string, status domain.BookingStatus) error
	DeleteFunc              func(ctx context.Context, companyID, id string) error
	AggregateRangeFunc      func(ctx context.Context, companyID string, from, to domain.Date) (*domain.BookingStats, error)
	BookingNumberExistsFunc func(ctx context.Context, companyID, number string) (bool, error)
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, booking)
	}
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Booking, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, companyID, id)
	}
	return nil, domain.ErrBookingNotFound
}

func (m *MockBookingRepository) ListByCompany(ctx context.Context, companyID string, filter repository.BookingFilter) ([]*domain.Booking, error) {
	if m.ListByCompanyFunc != nil {
		return m.ListByCompanyFunc(ctx, companyID, filter)
	}
	return []*domain.Booking{}, nil
}

func (m *MockBookingRepository) ListOnDate(ctx context.Context, companyID string, date domain.Date) ([]*domain.Booking, error) {
	if m.ListOnDateFunc != nil {
		return m.ListOnDateFunc(ctx, companyID, date)
	}
	return []*domain.Booking{}, nil
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, booking)
	}
	return nil
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, companyID, id string, status domain.BookingStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, companyID, id, status)
	}
	return nil
}

func (m *MockBookingRepository) Delete(ctx context.Context, companyID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, companyID, id)
	}
	return nil
}

func (m *MockBookingRepository) AggregateRange(ctx context.Context, companyID string, from, to domain.Date) (*domain.BookingStats, error) {
	if m.AggregateRangeFunc != nil {
		return m.AggregateRangeFunc(ctx, companyID, from, to)
	}
	return domain.NewBookingStats(from, to), nil
}

func (m *MockBookingRepository) BookingNumberExists(ctx context.Context, companyID, number string) (bool, error) {
	if m.BookingNumberExistsFunc != nil {
		return m.BookingNumberExistsFunc(ctx, companyID, number)
	}
	return false, nil
}

// MockOpeningPeriodRepository is a mock implementation of
// OpeningPeriodRepository
type MockOpeningPeriodRepository struct {
	CreateValidatedFunc func(ctx context.Context, period *domain.OpeningPeriod) error
	UpdateValidatedFunc func(ctx context.Context, period *domain.OpeningPeriod) error
	GetByIDFunc         func(ctx context.Context, companyID, id string) (*domain.OpeningPeriod, error)
	ListByCompanyFunc   func(ctx context.Context, companyID string) ([]*domain.OpeningPeriod, error)
	FindForDateFunc     func(ctx context.Context, companyID string, date domain.Date) (*domain.OpeningPeriod, error)
	DeleteFunc          func(ctx context.Context, companyID, id string) error
}

func (m *MockOpeningPeriodRepository) CreateValidated(ctx context.Context, period *domain.OpeningPeriod) error {
	if m.CreateValidatedFunc != nil {
		return m.CreateValidatedFunc(ctx, period)
	}
	return nil
}

func (m *MockOpeningPeriodRepository) UpdateValidated(ctx context.Context, period *domain.OpeningPeriod) error {
	if m.UpdateValidatedFunc != nil {
		return m.UpdateValidatedFunc(ctx, period)
	}
	return nil
}

func (m *MockOpeningPeriodRepository) GetByID(ctx context.Context, companyID, id string) (*domain.OpeningPeriod, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, companyID, id)
	}
	return nil, domain.ErrPeriodNotFound
}

func (m *MockOpeningPeriodRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.OpeningPeriod, error) {
	if m.ListByCompanyFunc != nil {
		return m.ListByCompanyFunc(ctx, companyID)
	}
	return []*domain.OpeningPeriod{}, nil
}

func (m *MockOpeningPeriodRepository) FindForDate(ctx context.Context, companyID string, date domain.Date) (*domain.OpeningPeriod, error) {
	if m.FindForDateFunc != nil {
		return m.FindForDateFunc(ctx, companyID, date)
	}
	return nil, domain.ErrPeriodNotFound
}

func (m *MockOpeningPeriodRepository) Delete(ctx context.Context, companyID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, companyID, id)
	}
	return nil
}

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	CreateFunc        func(ctx context.Context, activity *domain.Activity) error
	GetByIDFunc       func(ctx context.Context, companyID, id string) (*domain.Activity, error)
	ListByCompanyFunc func(ctx context.Context, companyID string) ([]*domain.Activity, error)
	UpdateFunc        func(ctx context.Context, activity *domain.Activity) error
	DeleteFunc        func(ctx context.Context, companyID, id string) error
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, activity)
	}
	return nil
}

func (m *MockActivityRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Activity, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, companyID, id)
	}
	return &domain.Activity{ID: id, CompanyID: companyID, Name: "Test Activity", Capacity: 10, IsActive: true}, nil
}

func (m *MockActivityRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.Activity, error) {
	if m.ListByCompanyFunc != nil {
		return m.ListByCompanyFunc(ctx, companyID)
	}
	return []*domain.Activity{}, nil
}

func (m *MockActivityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, activity)
	}
	return nil
}

func (m *MockActivityRepository) Delete(ctx context.Context, companyID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, companyID, id)
	}
	return nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc        func(ctx context.Context, user *domain.User) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	ListByCompanyFunc func(ctx context.Context, companyID string) ([]*domain.User, error)
	UpdateFunc        func(ctx context.Context, user *domain.User) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.User, error) {
	if m.ListByCompanyFunc != nil {
		return m.ListByCompanyFunc(ctx, companyID)
	}
	return []*domain.User{}, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

// RecordingPublisher counts published events per type
type RecordingPublisher struct {
	mu        sync.Mutex
	Created   []*domain.Booking
	Updated   []*domain.Booking
	Cancelled []*domain.Booking
}

func (p *RecordingPublisher) PublishBookingCreated(ctx context.Context, booking *domain.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Created = append(p.Created, booking)
	return nil
}

func (p *RecordingPublisher) PublishBookingUpdated(ctx context.Context, booking *domain.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Updated = append(p.Updated, booking)
	return nil
}

func (p *RecordingPublisher) PublishBookingCancelled(ctx context.Context, booking *domain.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Cancelled = append(p.Cancelled, booking)
	return nil
}

func (p *RecordingPublisher) Close() error { return nil }

// RecordingNotifier captures broadcast frames
type RecordingNotifier struct {
	mu       sync.Mutex
	Messages []recordedBroadcast
}

type recordedBroadcast struct {
	CompanyID string
	Message   ws.Message
}

func (n *RecordingNotifier) Broadcast(companyID string, msg ws.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, recordedBroadcast{CompanyID: companyID, Message: msg})
}

func (n *RecordingNotifier) OfType(t ws.MessageType) []recordedBroadcast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := []recordedBroadcast{}
	for _, m := range n.Messages {
		if m.Message.Type == t {
			out = append(out, m)
		}
	}
	return out
}
