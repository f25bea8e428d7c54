package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"github.com/xperienceoutdoors/Resav2/internal/repository"
	"github.com/xperienceoutdoors/Resav2/pkg/telemetry"
	"go.opentelemetry.io/otel/codes"
)

// CatalogService manages the sellable catalog of a company: categories,
// resources and packages
type CatalogService interface {
	CreateCategory(ctx context.Context, companyID string, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context, companyID string) ([]dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, companyID, id string, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, companyID, id string) error

	CreateResource(ctx context.Context, companyID string, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error)
	ListResources(ctx context.Context, companyID string) ([]dto.ResourceResponse, error)
	DeleteResource(ctx context.Context, companyID, id string) error

	CreatePackage(ctx context.Context, companyID string, req *dto.CreatePackageRequest) (*dto.PackageResponse, error)
	ListPackages(ctx context.Context, companyID, activityID string) ([]dto.PackageResponse, error)
	DeletePackage(ctx context.Context, companyID, id string) error
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	resourceRepo repository.ResourceRepository
	packageRepo  repository.PackageRepository
	activityRepo repository.ActivityRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	resourceRepo repository.ResourceRepository,
	packageRepo repository.PackageRepository,
	activityRepo repository.ActivityRepository,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		resourceRepo: resourceRepo,
		packageRepo:  packageRepo,
		activityRepo: activityRepo,
	}
}

func (s *catalogService) CreateCategory(ctx context.Context, companyID string, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.create_category")
	defer span.End()

	now := time.Now()
	category := &domain.Category{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
		Position:    req.Position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp := dto.ToCategoryResponse(category)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}

func (s *catalogService) ListCategories(ctx context.Context, companyID string) ([]dto.CategoryResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.list_categories")
	defer span.End()

	categories, err := s.categoryRepo.ListByCompany(ctx, companyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.ToCategoryResponse(c))
	}
	span.SetStatus(codes.Ok, "")
	return out, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, companyID, id string, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.update_category")
	defer span.End()

	category, err := s.categoryRepo.GetByID(ctx, companyID, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	category.Name = req.Name
	category.Description = req.Description
	category.Position = req.Position
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp := dto.ToCategoryResponse(category)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, companyID, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.delete_category")
	defer span.End()

	if err := s.categoryRepo.Delete(ctx, companyID, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func (s *catalogService) CreateResource(ctx context.Context, companyID string, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.create_resource")
	defer span.End()

	now := time.Now()
	resource := &domain.Resource{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      req.Name,
		Quantity:  req.Quantity,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := resource.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp := dto.ToResourceResponse(resource)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}

func (s *catalogService) ListResources(ctx context.Context, companyID string) ([]dto.ResourceResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.list_resources")
	defer span.End()

	resources, err := s.resourceRepo.ListByCompany(ctx, companyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]dto.ResourceResponse, 0, len(resources))
	for _, r := range resources {
		out = append(out, dto.ToResourceResponse(r))
	}
	span.SetStatus(codes.Ok, "")
	return out, nil
}

func (s *catalogService) DeleteResource(ctx context.Context, companyID, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.delete_resource")
	defer span.End()

	if err := s.resourceRepo.Delete(ctx, companyID, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func (s *catalogService) CreatePackage(ctx context.Context, companyID string, req *dto.CreatePackageRequest) (*dto.PackageResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.create_package")
	defer span.End()

	// The package must point at an activity of the same company
	if _, err := s.activityRepo.GetByID(ctx, companyID, req.ActivityID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	now := time.Now()
	pkg := &domain.Package{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		ActivityID:      req.ActivityID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		MaxParticipants: req.MaxParticipants,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := pkg.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp := dto.ToPackageResponse(pkg)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}

func (s *catalogService) ListPackages(ctx context.Context, companyID, activityID string) ([]dto.PackageResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.list_packages")
	defer span.End()

	packages, err := s.packageRepo.ListByActivity(ctx, companyID, activityID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]dto.PackageResponse, 0, len(packages))
	for _, p := range packages {
		out = append(out, dto.ToPackageResponse(p))
	}
	span.SetStatus(codes.Ok, "")
	return out, nil
}

func (s *catalogService) DeletePackage(ctx context.Context, companyID, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.delete_package")
	defer span.End()

	if err := s.packageRepo.Delete(ctx, companyID, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}
