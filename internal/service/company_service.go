package service

import (
	"context"
	"time"

	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"github.com/xperienceoutdoors/Resav2/internal/repository"
	"github.com/xperienceoutdoors/Resav2/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// CompanyService defines the interface for company business logic
type CompanyService interface {
	// Get retrieves the company profile
	Get(ctx context.Context, id string) (*dto.CompanyResponse, error)

	// Update modifies the company profile
	Update(ctx context.Context, id string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
}

type companyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repository.CompanyRepository) CompanyService {
	return &companyService{companyRepo: companyRepo}
}

// Get retrieves the company profile
func (s *companyService) Get(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.company.get")
	defer span.End()

	span.SetAttributes(attribute.String("company_id", id))

	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp := dto.ToCompanyResponse(company)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}

// Update modifies the company profile
func (s *companyService) Update(ctx context.Context, id string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.company.update")
	defer span.End()

	span.SetAttributes(attribute.String("company_id", id))

	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	company.Name = req.Name
	company.Email = req.Email
	company.Phone = req.Phone
	company.Address = req.Address
	if req.Timezone != "" {
		company.Timezone = req.Timezone
	}
	if req.Currency != "" {
		company.Currency = req.Currency
	}
	company.UpdatedAt = time.Now()

	if err := s.companyRepo.Update(ctx, company); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp := dto.ToCompanyResponse(company)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}
