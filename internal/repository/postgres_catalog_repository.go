package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/pkg/telemetry"
	"go.opentelemetry.io/otel/codes"
)

// PostgresCategoryRepository implements CategoryRepository
type PostgresCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository
func NewPostgresCategoryRepository(pool *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{pool: pool}
}

var _ CategoryRepository = (*PostgresCategoryRepository)(nil)

const categorySelect = `
	SELECT id, company_id, name, description, position, created_at, updated_at
	FROM categories`

func (r *PostgresCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.category.create")
	defer span.End()

	query := `
		INSERT INTO categories (id, company_id, name, description, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		category.ID,
		category.CompanyID,
		category.Name,
		nullString(category.Description),
		category.Position,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create category: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Category, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.category.get_by_id")
	defer span.End()

	category, err := scanCategory(r.pool.QueryRow(ctx, categorySelect+` WHERE id = $1 AND company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return category, nil
}

func (r *PostgresCategoryRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.Category, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.category.list_by_company")
	defer span.End()

	rows, err := r.pool.Query(ctx, categorySelect+` WHERE company_id = $1 ORDER BY position, name`, companyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return categories, nil
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.category.update")
	defer span.End()

	query := `
		UPDATE categories
		SET name = $3, description = $4, position = $5, updated_at = $6
		WHERE id = $1 AND company_id = $2
	`
	tag, err := r.pool.Exec(ctx, query,
		category.ID,
		category.CompanyID,
		category.Name,
		nullString(category.Description),
		category.Position,
		category.UpdatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, companyID, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.category.delete")
	defer span.End()

	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	category := &domain.Category{}
	var description *string
	err := row.Scan(
		&category.ID,
		&category.CompanyID,
		&category.Name,
		&description,
		&category.Position,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		category.Description = *description
	}
	return category, nil
}

// PostgresResourceRepository implements ResourceRepository
type PostgresResourceRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresResourceRepository creates a new PostgresResourceRepository
func NewPostgresResourceRepository(pool *pgxpool.Pool) *PostgresResourceRepository {
	return &PostgresResourceRepository{pool: pool}
}

var _ ResourceRepository = (*PostgresResourceRepository)(nil)

const resourceSelect = `
	SELECT id, company_id, name, quantity, is_active, created_at, updated_at
	FROM resources`

func (r *PostgresResourceRepository) Create(ctx context.Context, resource *domain.Resource) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.resource.create")
	defer span.End()

	query := `
		INSERT INTO resources (id, company_id, name, quantity, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		resource.ID,
		resource.CompanyID,
		resource.Name,
		resource.Quantity,
		resource.IsActive,
		resource.CreatedAt,
		resource.UpdatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create resource: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func (r *PostgresResourceRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Resource, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.resource.get_by_id")
	defer span.End()

	resource := &domain.Resource{}
	err := r.pool.QueryRow(ctx, resourceSelect+` WHERE id = $1 AND company_id = $2`, id, companyID).Scan(
		&resource.ID,
		&resource.CompanyID,
		&resource.Name,
		&resource.Quantity,
		&resource.IsActive,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResourceNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return resource, nil
}

func (r *PostgresResourceRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.Resource, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.resource.list_by_company")
	defer span.End()

	rows, err := r.pool.Query(ctx, resourceSelect+` WHERE company_id = $1 ORDER BY name`, companyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	resources := make([]*domain.Resource, 0)
	for rows.Next() {
		resource := &domain.Resource{}
		err := rows.Scan(
			&resource.ID,
			&resource.CompanyID,
			&resource.Name,
			&resource.Quantity,
			&resource.IsActive,
			&resource.CreatedAt,
			&resource.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		resources = append(resources, resource)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resources: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return resources, nil
}

func (r *PostgresResourceRepository) Update(ctx context.Context, resource *domain.Resource) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.resource.update")
	defer span.End()

	query := `
		UPDATE resources
		SET name = $3, quantity = $4, is_active = $5, updated_at = $6
		WHERE id = $1 AND company_id = $2
	`
	tag, err := r.pool.Exec(ctx, query,
		resource.ID,
		resource.CompanyID,
		resource.Name,
		resource.Quantity,
		resource.IsActive,
		resource.UpdatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to update resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrResourceNotFound
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func (r *PostgresResourceRepository) Delete(ctx context.Context, companyID, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.resource.delete")
	defer span.End()

	tag, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrResourceNotFound
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// PostgresPackageRepository implements PackageRepository
type PostgresPackageRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPackageRepository creates a new PostgresPackageRepository
func NewPostgresPackageRepository(pool *pgxpool.Pool) *PostgresPackageRepository {
	return &PostgresPackageRepository{pool: pool}
}

var _ PackageRepository = (*PostgresPackageRepository)(nil)

const packageSelect = `
	SELECT id, company_id, activity_id, name, description, price,
	       duration_minutes, max_participants, is_active, created_at, updated_at
	FROM packages`

func (r *PostgresPackageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.package.create")
	defer span.End()

	query := `
		INSERT INTO packages (
			id, company_id, activity_id, name, description, price,
			duration_minutes, max_participants, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		pkg.ID,
		pkg.CompanyID,
		pkg.ActivityID,
		pkg.Name,
		nullString(pkg.Description),
		pkg.Price,
		pkg.DurationMinutes,
		pkg.MaxParticipants,
		pkg.IsActive,
		pkg.CreatedAt,
		pkg.UpdatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create package: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func (r *PostgresPackageRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Package, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.package.get_by_id")
	defer span.End()

	pkg, err := scanPackage(r.pool.QueryRow(ctx, packageSelect+` WHERE id = $1 AND company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPackageNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return pkg, nil
}

func (r *PostgresPackageRepository) ListByActivity(ctx context.Context, companyID, activityID string) ([]*domain.Package, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.package.list_by_activity")
	defer span.End()

	rows, err := r.pool.Query(ctx, packageSelect+` WHERE company_id = $1 AND activity_id = $2 ORDER BY price`, companyID, activityID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	packages := make([]*domain.Package, 0)
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		packages = append(packages, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate packages: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return packages, nil
}

func (r *PostgresPackageRepository) Update(ctx context.Context, pkg *domain.Package) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.package.update")
	defer span.End()

	query := `
		UPDATE packages
		SET name = $3, description = $4, price = $5, duration_minutes = $6,
		    max_participants = $7, is_active = $8, updated_at = $9
		WHERE id = $1 AND company_id = $2
	`
	tag, err := r.pool.Exec(ctx, query,
		pkg.ID,
		pkg.CompanyID,
		pkg.Name,
		nullString(pkg.Description),
		pkg.Price,
		pkg.DurationMinutes,
		pkg.MaxParticipants,
		pkg.IsActive,
		pkg.UpdatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to update package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPackageNotFound
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func (r *PostgresPackageRepository) Delete(ctx context.Context, companyID, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.package.delete")
	defer span.End()

	tag, err := r.pool.Exec(ctx, `DELETE FROM packages WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPackageNotFound
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func scanPackage(row pgx.Row) (*domain.Package, error) {
	pkg := &domain.Package{}
	var description *string
	err := row.Scan(
		&pkg.ID,
		&pkg.CompanyID,
		&pkg.ActivityID,
		&pkg.Name,
		&description,
		&pkg.Price,
		&pkg.DurationMinutes,
		&pkg.MaxParticipants,
		&pkg.IsActive,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		pkg.Description = *description
	}
	return pkg, nil
}
