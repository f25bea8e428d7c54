package repository

import (
	"context"
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

// PostgresBookingRepository implements BookingRepository using PostgreSQL
// with pgxpool
type PostgresBookingRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBookingRepository creates a new PostgresBookingRepository
func NewPostgresBookingRepository(pool *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{pool: pool}
}

var _ BookingRepository = (*PostgresBookingRepository)(nil)

// Create creates a new booking record in the database
func (r *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("booking_id", booking.ID),
		attribute.String("company_id", booking.CompanyID),
		attribute.String("activity_id", booking.ActivityID),
	)

	query := `
		INSERT INTO bookings (
			id, company_id, activity_id, package_id, booking_number,
			booking_date, start_time, end_time, participants, total_price,
			status, customer_name, customer_email, customer_phone, notes,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15,
			$16, $17
		)
	`

	_, err := r.pool.Exec(ctx, query,
		booking.ID,
		booking.CompanyID,
		booking.ActivityID,
		nullString(booking.PackageID),
		booking.BookingNumber,
		booking.Date.Time(),
		nullString(string(booking.StartTime)),
		nullString(string(booking.EndTime)),
		booking.Participants,
		booking.TotalPrice,
		booking.Status.String(),
		booking.CustomerName,
		booking.CustomerEmail,
		nullString(booking.CustomerPhone),
		nullString(booking.Notes),
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			span.SetStatus(codes.Error, "booking number taken")
			return domain.ErrBookingNumberTaken
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create booking: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetByID retrieves a booking scoped to a company
func (r *PostgresBookingRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.String("booking_id", id))

	query := bookingSelect + ` WHERE id = $1 AND company_id = $2`

	booking, err := scanBooking(r.pool.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrBookingNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return booking, nil
}

// ListByCompany retrieves bookings of a company matching the filter
func (r *PostgresBookingRepository) ListByCompany(ctx context.Context, companyID string, filter BookingFilter) ([]*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.list_by_company")
	defer span.End()

	span.SetAttributes(attribute.String("company_id", companyID))

	query := bookingSelect + ` WHERE company_id = $1`
	args := []interface{}{companyID}

	if filter.From != nil {
		args = append(args, filter.From.Time())
		query += fmt.Sprintf(" AND booking_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, filter.To.Time())
		query += fmt.Sprintf(" AND booking_date <= $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status.String())
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ActivityID != "" {
		args = append(args, filter.ActivityID)
		query += fmt.Sprintf(" AND activity_id = $%d", len(args))
	}

	query += " ORDER BY booking_date DESC, created_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return bookings, nil
}

// ListOnDate retrieves all bookings of a company on a calendar date
func (r *PostgresBookingRepository) ListOnDate(ctx context.Context, companyID string, date domain.Date) ([]*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.list_on_date")
	defer span.End()

	span.SetAttributes(
		attribute.String("company_id", companyID),
		attribute.String("date", date.String()),
	)

	query := bookingSelect + ` WHERE company_id = $1 AND booking_date = $2 ORDER BY start_time NULLS LAST, created_at`

	rows, err := r.pool.Query(ctx, query, companyID, date.Time())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list bookings on date: %w", err)
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return bookings, nil
}

// Update updates an existing booking
func (r *PostgresBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.update")
	defer span.End()

	span.SetAttributes(attribute.String("booking_id", booking.ID))

	query := `
		UPDATE bookings
		SET activity_id = $3, package_id = $4, booking_date = $5,
		    start_time = $6, end_time = $7, participants = $8,
		    total_price = $9, status = $10, customer_name = $11,
		    customer_email = $12, customer_phone = $13, notes = $14,
		    cancelled_at = $15, updated_at = $16
		WHERE id = $1 AND company_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		booking.ID,
		booking.CompanyID,
		booking.ActivityID,
		nullString(booking.PackageID),
		booking.Date.Time(),
		nullString(string(booking.StartTime)),
		nullString(string(booking.EndTime)),
		booking.Participants,
		booking.TotalPrice,
		booking.Status.String(),
		booking.CustomerName,
		booking.CustomerEmail,
		nullString(booking.CustomerPhone),
		nullString(booking.Notes),
		booking.CancelledAt,
		booking.UpdatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrBookingNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// UpdateStatus updates only the status of a booking
func (r *PostgresBookingRepository) UpdateStatus(ctx context.Context, companyID, id string, status domain.BookingStatus) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.update_status")
	defer span.End()

	span.SetAttributes(
		attribute.String("booking_id", id),
		attribute.String("status", status.String()),
	)

	query := `
		UPDATE bookings
		SET status = $3,
		    cancelled_at = CASE WHEN $3 = 'cancelled' THEN NOW() ELSE cancelled_at END,
		    updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, id, companyID, status.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrBookingNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Delete deletes a booking scoped to a company
func (r *PostgresBookingRepository) Delete(ctx context.Context, companyID, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.delete")
	defer span.End()

	span.SetAttributes(attribute.String("booking_id", id))

	tag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrBookingNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// AggregateRange aggregates counts, revenue and participants over a closed
// date range. Revenue only counts paid and completed bookings.
func (r *PostgresBookingRepository) AggregateRange(ctx context.Context, companyID string, from, to domain.Date) (*domain.BookingStats, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.aggregate_range")
	defer span.End()

	span.SetAttributes(
		attribute.String("company_id", companyID),
		attribute.String("from", from.String()),
		attribute.String("to", to.String()),
	)

	query := `
		SELECT status, COUNT(*), COALESCE(SUM(total_price), 0), COALESCE(SUM(participants), 0)
		FROM bookings
		WHERE company_id = $1 AND booking_date >= $2 AND booking_date <= $3
		GROUP BY status
	`

	rows, err := r.pool.Query(ctx, query, companyID, from.Time(), to.Time())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to aggregate bookings: %w", err)
	}
	defer rows.Close()

	stats := domain.NewBookingStats(from, to)
	for rows.Next() {
		var (
			status       string
			count        int
			revenue      float64
			participants int
		)
		if err := rows.Scan(&status, &count, &revenue, &participants); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan booking aggregate: %w", err)
		}

		bookingStatus := domain.BookingStatus(status)
		stats.ByStatus[bookingStatus] = count
		stats.Total += count
		if bookingStatus != domain.BookingStatusCancelled {
			stats.Participants += participants
		}
		if bookingStatus == domain.BookingStatusPaid || bookingStatus == domain.BookingStatusCompleted {
			stats.Revenue += revenue
		}
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate booking aggregates: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return stats, nil
}

// BookingNumberExists checks whether a booking number is already used by a
// company
func (r *PostgresBookingRepository) BookingNumberExists(ctx context.Context, companyID, number string) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.number_exists")
	defer span.End()

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE company_id = $1 AND booking_number = $2)`,
		companyID, number,
	).Scan(&exists)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, fmt.Errorf("failed to check booking number: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return exists, nil
}

const bookingSelect = `
	SELECT id, company_id, activity_id, package_id, booking_number,
	       booking_date, start_time, end_time, participants, total_price,
	       status, customer_name, customer_email, customer_phone, notes,
	       cancelled_at, created_at, updated_at
	FROM bookings`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	booking := &domain.Booking{}
	var (
		packageID     *string
		bookingDate   time.Time
		startTime     *string
		endTime       *string
		status        string
		customerPhone *string
		notes         *string
		cancelledAt   *time.Time
	)

	err := row.Scan(
		&booking.ID,
		&booking.CompanyID,
		&booking.ActivityID,
		&packageID,
		&booking.BookingNumber,
		&bookingDate,
		&startTime,
		&endTime,
		&booking.Participants,
		&booking.TotalPrice,
		&status,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&customerPhone,
		&notes,
		&cancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date = domain.DateOf(bookingDate)
	booking.Status = domain.BookingStatus(status)
	if packageID != nil {
		booking.PackageID = *packageID
	}
	if startTime != nil {
		booking.StartTime = domain.TimeOfDay(*startTime)
	}
	if endTime != nil {
		booking.EndTime = domain.TimeOfDay(*endTime)
	}
	if customerPhone != nil {
		booking.CustomerPhone = *customerPhone
	}
	if notes != nil {
		booking.Notes = *notes
	}
	booking.CancelledAt = cancelledAt

	return booking, nil
}

func collectBookings(rows pgx.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return bookings, nil
}
