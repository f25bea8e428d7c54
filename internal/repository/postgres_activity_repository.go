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

// PostgresActivityRepository implements ActivityRepository using PostgreSQL
// with pgxpool
type PostgresActivityRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresActivityRepository creates a new PostgresActivityRepository
func NewPostgresActivityRepository(pool *pgxpool.Pool) *PostgresActivityRepository {
	return &PostgresActivityRepository{pool: pool}
}

var _ ActivityRepository = (*PostgresActivityRepository)(nil)

const activitySelect = `
	SELECT id, company_id, category_id, name, description, capacity,
	       resource_ids, is_active, created_at, updated_at
	FROM activities`

// Create creates a new activity
func (r *PostgresActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.activity.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("activity_id", activity.ID),
		attribute.String("company_id", activity.CompanyID),
	)

	query := `
		INSERT INTO activities (
			id, company_id, category_id, name, description, capacity,
			resource_ids, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		activity.ID,
		activity.CompanyID,
		nullString(activity.CategoryID),
		activity.Name,
		nullString(activity.Description),
		activity.Capacity,
		activity.ResourceIDs,
		activity.IsActive,
		activity.CreatedAt,
		activity.UpdatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create activity: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetByID retrieves an activity scoped to a company
func (r *PostgresActivityRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Activity, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.activity.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.String("activity_id", id))

	activity, err := scanActivity(r.pool.QueryRow(ctx, activitySelect+` WHERE id = $1 AND company_id = $2`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrActivityNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return activity, nil
}

// ListByCompany retrieves all activities of a company
func (r *PostgresActivityRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.Activity, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.activity.list_by_company")
	defer span.End()

	span.SetAttributes(attribute.String("company_id", companyID))

	rows, err := r.pool.Query(ctx, activitySelect+` WHERE company_id = $1 ORDER BY name`, companyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return activities, nil
}

// Update updates an existing activity
func (r *PostgresActivityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.activity.update")
	defer span.End()

	span.SetAttributes(attribute.String("activity_id", activity.ID))

	query := `
		UPDATE activities
		SET category_id = $3, name = $4, description = $5, capacity = $6,
		    resource_ids = $7, is_active = $8, updated_at = $9
		WHERE id = $1 AND company_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		activity.ID,
		activity.CompanyID,
		nullString(activity.CategoryID),
		activity.Name,
		nullString(activity.Description),
		activity.Capacity,
		activity.ResourceIDs,
		activity.IsActive,
		activity.UpdatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrActivityNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Delete removes an activity scoped to a company
func (r *PostgresActivityRepository) Delete(ctx context.Context, companyID, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.activity.delete")
	defer span.End()

	span.SetAttributes(attribute.String("activity_id", id))

	tag, err := r.pool.Exec(ctx, `DELETE FROM activities WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrActivityNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

func scanActivity(row pgx.Row) (*domain.Activity, error) {
	activity := &domain.Activity{}
	var categoryID, description *string
	err := row.Scan(
		&activity.ID,
		&activity.CompanyID,
		&categoryID,
		&activity.Name,
		&description,
		&activity.Capacity,
		&activity.ResourceIDs,
		&activity.IsActive,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		activity.CategoryID = *categoryID
	}
	if description != nil {
		activity.Description = *description
	}
	return activity, nil
}
