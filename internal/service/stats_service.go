package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/internal/repository"
	"github.com/xperienceoutdoors/Resav2/pkg/logger"
	"github.com/xperienceoutdoors/Resav2/pkg/redis"
	"github.com/xperienceoutdoors/Resav2/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const todayStatsCacheTTL = time.Minute

// StatsService aggregates booking activity for the dashboard
type StatsService interface {
	// Today returns stats for the current day
	Today(ctx context.Context, companyID string) (*domain.BookingStats, error)

	// Weekly returns stats for the last 7 days including today
	Weekly(ctx context.Context, companyID string) (*domain.BookingStats, error)

	// Monthly returns stats for the last 30 days including today
	Monthly(ctx context.Context, companyID string) (*domain.BookingStats, error)

	// Range returns stats for an arbitrary closed date range
	Range(ctx context.Context, companyID string, from, to domain.Date) (*domain.BookingStats, error)
}

type statsService struct {
	bookingRepo repository.BookingRepository
	cache       *redis.Client
	log         *logger.Logger
	now         func() time.Time
}

// NewStatsService creates a new stats service. The cache client may be nil,
// stats then always hit the database.
func NewStatsService(bookingRepo repository.BookingRepository, cache *redis.Client, log *logger.Logger) StatsService {
	return &statsService{
		bookingRepo: bookingRepo,
		cache:       cache,
		log:         log,
		now:         time.Now,
	}
}

// Today returns stats for the current day. Today is the hottest query on
// the dashboard, so it is served from a short lived cache.
func (s *statsService) Today(ctx context.Context, companyID string) (*domain.BookingStats, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.stats.today")
	defer span.End()

	span.SetAttributes(attribute.String("company_id", companyID))

	today := domain.DateOf(s.now())
	cacheKey := fmt.Sprintf("stats:today:%s:%s", companyID, today)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			stats := &domain.BookingStats{}
			if json.Unmarshal([]byte(cached), stats) == nil {
				span.SetAttributes(attribute.Bool("cache_hit", true))
				span.SetStatus(codes.Ok, "")
				return stats, nil
			}
		}
	}

	stats, err := s.Range(ctx, companyID, today, today)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, todayStatsCacheTTL).Err(); err != nil {
				s.log.Warn("failed to cache today stats", zap.Error(err))
			}
		}
	}

	span.SetStatus(codes.Ok, "")
	return stats, nil
}

// Weekly returns stats for the last 7 days including today
func (s *statsService) Weekly(ctx context.Context, companyID string) (*domain.BookingStats, error) {
	today := domain.DateOf(s.now())
	return s.Range(ctx, companyID, today.AddDays(-6), today)
}

// Monthly returns stats for the last 30 days including today
func (s *statsService) Monthly(ctx context.Context, companyID string) (*domain.BookingStats, error) {
	today := domain.DateOf(s.now())
	return s.Range(ctx, companyID, today.AddDays(-29), today)
}

// Range returns stats for an arbitrary closed date range
func (s *statsService) Range(ctx context.Context, companyID string, from, to domain.Date) (*domain.BookingStats, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.stats.range")
	defer span.End()

	if from.After(to) {
		span.SetStatus(codes.Error, "inverted range")
		return nil, domain.ErrInvalidDateRange
	}

	stats, err := s.bookingRepo.AggregateRange(ctx, companyID, from, to)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return stats, nil
}
