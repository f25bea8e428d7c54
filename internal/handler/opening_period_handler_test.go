package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"github.com/xperienceoutdoors/Resav2/pkg/middleware"
)

// MockOpeningPeriodService is a mock implementation of OpeningPeriodService
type MockOpeningPeriodService struct {
	periods map[string]*dto.OpeningPeriodResponse

	// CreateErr forces Create to fail with the given error
	CreateErr error
}

func NewMockOpeningPeriodService() *MockOpeningPeriodService {
	return &MockOpeningPeriodService{
		periods: make(map[string]*dto.OpeningPeriodResponse),
	}
}

func (m *MockOpeningPeriodService) Create(ctx context.Context, companyID string, req *dto.CreateOpeningPeriodRequest) (*dto.OpeningPeriodResponse, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	if _, err := domain.ParseDate(req.StartDate); err != nil {
		return nil, err
	}
	resp := &dto.OpeningPeriodResponse{
		ID:        "period-123",
		CompanyID: companyID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Schedule:  req.Schedule,
	}
	m.periods[resp.ID] = resp
	return resp, nil
}

func (m *MockOpeningPeriodService) Update(ctx context.Context, companyID, id string, req *dto.UpdateOpeningPeriodRequest) (*dto.OpeningPeriodResponse, error) {
	p, ok := m.periods[id]
	if !ok {
		return nil, domain.ErrPeriodNotFound
	}
	p.Name = req.Name
	p.StartDate = req.StartDate
	p.EndDate = req.EndDate
	return p, nil
}

func (m *MockOpeningPeriodService) Get(ctx context.Context, companyID, id string) (*dto.OpeningPeriodResponse, error) {
	p, ok := m.periods[id]
	if !ok {
		return nil, domain.ErrPeriodNotFound
	}
	return p, nil
}

func (m *MockOpeningPeriodService) List(ctx context.Context, companyID string) ([]dto.OpeningPeriodResponse, error) {
	out := []dto.OpeningPeriodResponse{}
	for _, p := range m.periods {
		out = append(out, *p)
	}
	return out, nil
}

func (m *MockOpeningPeriodService) Delete(ctx context.Context, companyID, id string) error {
	if _, ok := m.periods[id]; !ok {
		return domain.ErrPeriodNotFound
	}
	delete(m.periods, id)
	return nil
}

func setupPeriodRouter(svc *MockOpeningPeriodService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Simulate the auth layer
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CompanyIDKey, "company-1")
	})

	h := NewOpeningPeriodHandler(svc)
	r.POST("/opening-periods", h.Create)
	r.GET("/opening-periods/:id", h.Get)
	r.PUT("/opening-periods/:id", h.Update)
	return r
}

func periodBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	payload, err := json.Marshal(dto.CreateOpeningPeriodRequest{
		Name:      "Summer",
		StartDate: "2025-07-01",
		EndDate:   "2025-08-31",
		Schedule: domain.WeekSchedule{
			"monday": {IsOpen: true, Slots: []domain.TimeSlot{{Start: "09:00", End: "17:00"}}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewBuffer(payload)
}

func TestOpeningPeriodHandlerCreate(t *testing.T) {
	router := setupPeriodRouter(NewMockOpeningPeriodService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/opening-periods", periodBody(t))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestOpeningPeriodHandlerCreateOverlapReturns409(t *testing.T) {
	svc := NewMockOpeningPeriodService()
	svc.CreateErr = &domain.PeriodOverlapError{ConflictingID: "period-7", ConflictingName: "High season"}
	router := setupPeriodRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/opening-periods", periodBody(t))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Details string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Code != "PERIOD_OVERLAP" {
		t.Errorf("expected PERIOD_OVERLAP code, got %q", body.Error.Code)
	}
	if body.Error.Details != "period-7" {
		t.Errorf("expected the conflicting period id in details, got %q", body.Error.Details)
	}
}

func TestOpeningPeriodHandlerCreateInvalidDateReturns400(t *testing.T) {
	router := setupPeriodRouter(NewMockOpeningPeriodService())

	payload, _ := json.Marshal(dto.CreateOpeningPeriodRequest{
		Name:      "Bad",
		StartDate: "01/07/2025",
		EndDate:   "2025-08-31",
		Schedule:  domain.WeekSchedule{},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/opening-periods", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestOpeningPeriodHandlerGetMissingReturns404(t *testing.T) {
	router := setupPeriodRouter(NewMockOpeningPeriodService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/opening-periods/nope", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
