package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// PostgresCompanyRepository implements CompanyRepository using PostgreSQL
// with pgxpool
type PostgresCompanyRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCompanyRepository creates a new PostgresCompanyRepository
func NewPostgresCompanyRepository(pool *pgxpool.Pool) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{pool: pool}
}

var _ CompanyRepository = (*PostgresCompanyRepository)(nil)

const companySelect = `
	SELECT id, name, slug, email, phone, address, timezone, currency,
	       is_active, created_at, updated_at
	FROM companies`

// Create creates a new company
func (r *PostgresCompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.company.create")
	defer span.End()

	span.SetAttributes(attribute.String("company_id", company.ID))

	query := `
		INSERT INTO companies (
			id, name, slug, email, phone, address, timezone, currency,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		company.ID,
		company.Name,
		company.Slug,
		company.Email,
		nullString(company.Phone),
		nullString(company.Address),
		company.Timezone,
		company.Currency,
		company.IsActive,
		company.CreatedAt,
		company.UpdatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create company: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetByID retrieves a company by ID
func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.company.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.String("company_id", id))

	company := &domain.Company{}
	var phone, address *string
	err := r.pool.QueryRow(ctx, companySelect+` WHERE id = $1`, id).Scan(
		&company.ID,
		&company.Name,
		&company.Slug,
		&company.Email,
		&phone,
		&address,
		&company.Timezone,
		&company.Currency,
		&company.IsActive,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrCompanyNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	if phone != nil {
		company.Phone = *phone
	}
	if address != nil {
		company.Address = *address
	}

	span.SetStatus(codes.Ok, "")
	return company, nil
}

// Update updates an existing company
func (r *PostgresCompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.company.update")
	defer span.End()

	span.SetAttributes(attribute.String("company_id", company.ID))

	query := `
		UPDATE companies
		SET name = $2, slug = $3, email = $4, phone = $5, address = $6,
		    timezone = $7, currency = $8, is_active = $9, updated_at = $10
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		company.ID,
		company.Name,
		company.Slug,
		company.Email,
		nullString(company.Phone),
		nullString(company.Address),
		company.Timezone,
		company.Currency,
		company.IsActive,
		company.UpdatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrCompanyNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}
