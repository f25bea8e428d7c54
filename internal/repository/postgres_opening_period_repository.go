package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// PostgresOpeningPeriodRepository implements OpeningPeriodRepository using
// PostgreSQL with pgxpool
type PostgresOpeningPeriodRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresOpeningPeriodRepository creates a new PostgresOpeningPeriodRepository
func NewPostgresOpeningPeriodRepository(pool *pgxpool.Pool) *PostgresOpeningPeriodRepository {
	return &PostgresOpeningPeriodRepository{pool: pool}
}

var _ OpeningPeriodRepository = (*PostgresOpeningPeriodRepository)(nil)

// CreateValidated inserts a period after checking for overlaps inside one
// transaction
func (r *PostgresOpeningPeriodRepository) CreateValidated(ctx context.Context, period *domain.OpeningPeriod) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.opening_period.create_validated")
	defer span.End()

	span.SetAttributes(
		attribute.String("period_id", period.ID),
		attribute.String("company_id", period.CompanyID),
	)

	err := r.withCompanyLock(ctx, period.CompanyID, func(tx pgx.Tx) error {
		if err := r.checkOverlap(ctx, tx, period, ""); err != nil {
			return err
		}

		schedule, err := json.Marshal(period.Schedule)
		if err != nil {
			return fmt.Errorf("failed to encode schedule: %w", err)
		}

		query := `
			INSERT INTO opening_periods (
				id, company_id, name, start_date, end_date,
				schedule, activity_ids, color, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		_, err = tx.Exec(ctx, query,
			period.ID,
			period.CompanyID,
			period.Name,
			period.StartDate.Time(),
			period.EndDate.Time(),
			schedule,
			period.ActivityIDs,
			nullString(period.Color),
			period.CreatedAt,
			period.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create opening period: %w", err)
		}
		return nil
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// UpdateValidated updates a period, checking the new range against every
// other period of the company
func (r *PostgresOpeningPeriodRepository) UpdateValidated(ctx context.Context, period *domain.OpeningPeriod) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.opening_period.update_validated")
	defer span.End()

	span.SetAttributes(
		attribute.String("period_id", period.ID),
		attribute.String("company_id", period.CompanyID),
	)

	err := r.withCompanyLock(ctx, period.CompanyID, func(tx pgx.Tx) error {
		if err := r.checkOverlap(ctx, tx, period, period.ID); err != nil {
			return err
		}

		schedule, err := json.Marshal(period.Schedule)
		if err != nil {
			return fmt.Errorf("failed to encode schedule: %w", err)
		}

		query := `
			UPDATE opening_periods
			SET name = $3, start_date = $4, end_date = $5,
			    schedule = $6, activity_ids = $7, color = $8, updated_at = $9
			WHERE id = $1 AND company_id = $2
		`
		tag, err := tx.Exec(ctx, query,
			period.ID,
			period.CompanyID,
			period.Name,
			period.StartDate.Time(),
			period.EndDate.Time(),
			schedule,
			period.ActivityIDs,
			nullString(period.Color),
			period.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update opening period: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrPeriodNotFound
		}
		return nil
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// withCompanyLock runs fn inside a transaction holding the company row lock.
// All period writes of one company serialize on that lock, which is what
// makes the overlap check race free.
func (r *PostgresOpeningPeriodRepository) withCompanyLock(ctx context.Context, companyID string, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var locked string
	err = tx.QueryRow(ctx, `SELECT id FROM companies WHERE id = $1 FOR UPDATE`, companyID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to lock company: %w", err)
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// checkOverlap looks for any period of the company sharing at least one
// date with the candidate. Both intervals are closed, so the two-sided test
// catches partial overlaps, containment and shared boundary days alike.
func (r *PostgresOpeningPeriodRepository) checkOverlap(ctx context.Context, tx pgx.Tx, period *domain.OpeningPeriod, excludeID string) error {
	query := `
		SELECT id, name
		FROM opening_periods
		WHERE company_id = $1
		  AND start_date <= $3
		  AND end_date >= $2
		  AND ($4 = '' OR id <> $4)
		ORDER BY start_date
		LIMIT 1
	`

	var conflictID, conflictName string
	err := tx.QueryRow(ctx, query,
		period.CompanyID,
		period.StartDate.Time(),
		period.EndDate.Time(),
		excludeID,
	).Scan(&conflictID, &conflictName)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check period overlap: %w", err)
	}
	return &domain.PeriodOverlapError{ConflictingID: conflictID, ConflictingName: conflictName}
}

// GetByID retrieves a period scoped to a company
func (r *PostgresOpeningPeriodRepository) GetByID(ctx context.Context, companyID, id string) (*domain.OpeningPeriod, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.opening_period.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.String("period_id", id))

	query := periodSelect + ` WHERE id = $1 AND company_id = $2`

	period, err := scanPeriod(r.pool.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrPeriodNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get opening period: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return period, nil
}

// ListByCompany retrieves all periods of a company ordered by start date
func (r *PostgresOpeningPeriodRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.OpeningPeriod, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.opening_period.list_by_company")
	defer span.End()

	span.SetAttributes(attribute.String("company_id", companyID))

	query := periodSelect + ` WHERE company_id = $1 ORDER BY start_date`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list opening periods: %w", err)
	}
	defer rows.Close()

	periods := make([]*domain.OpeningPeriod, 0)
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan opening period: %w", err)
		}
		periods = append(periods, period)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate opening periods: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return periods, nil
}

// FindForDate retrieves the period covering a calendar date. The no-overlap
// invariant guarantees at most one match.
func (r *PostgresOpeningPeriodRepository) FindForDate(ctx context.Context, companyID string, date domain.Date) (*domain.OpeningPeriod, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.opening_period.find_for_date")
	defer span.End()

	span.SetAttributes(
		attribute.String("company_id", companyID),
		attribute.String("date", date.String()),
	)

	query := periodSelect + ` WHERE company_id = $1 AND start_date <= $2 AND end_date >= $2`

	period, err := scanPeriod(r.pool.QueryRow(ctx, query, companyID, date.Time()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrPeriodNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to find opening period: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return period, nil
}

// Delete removes a period scoped to a company
func (r *PostgresOpeningPeriodRepository) Delete(ctx context.Context, companyID, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.opening_period.delete")
	defer span.End()

	span.SetAttributes(attribute.String("period_id", id))

	tag, err := r.pool.Exec(ctx, `DELETE FROM opening_periods WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete opening period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrPeriodNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

const periodSelect = `
	SELECT id, company_id, name, start_date, end_date,
	       schedule, activity_ids, color, created_at, updated_at
	FROM opening_periods`

func scanPeriod(row pgx.Row) (*domain.OpeningPeriod, error) {
	period := &domain.OpeningPeriod{}
	var (
		startDate time.Time
		endDate   time.Time
		schedule  []byte
		color     *string
	)

	err := row.Scan(
		&period.ID,
		&period.CompanyID,
		&period.Name,
		&startDate,
		&endDate,
		&schedule,
		&period.ActivityIDs,
		&color,
		&period.CreatedAt,
		&period.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	period.StartDate = domain.DateOf(startDate)
	period.EndDate = domain.DateOf(endDate)
	if len(schedule) > 0 {
		if err := json.Unmarshal(schedule, &period.Schedule); err != nil {
			return nil, fmt.Errorf("failed to decode schedule: %w", err)
		}
	}
	if color != nil {
		period.Color = *color
	}
	return period, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
