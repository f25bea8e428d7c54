package di

import (
	"time"

	"github.com/xperienceoutdoors/Resav2/internal/handler"
	"github.com/xperienceoutdoors/Resav2/internal/repository"
	"github.com/xperienceoutdoors/Resav2/internal/service"
	"github.com/xperienceoutdoors/Resav2/internal/ws"
	"github.com/xperienceoutdoors/Resav2/pkg/database"
	"github.com/xperienceoutdoors/Resav2/pkg/logger"
	"github.com/xperienceoutdoors/Resav2/pkg/redis"
)

// Container holds all dependencies for the server
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client
	Hub   *ws.Hub

	// Repositories
	UserRepo     repository.UserRepository
	CompanyRepo  repository.CompanyRepository
	CategoryRepo repository.CategoryRepository
	ResourceRepo repository.ResourceRepository
	PackageRepo  repository.PackageRepository
	ActivityRepo repository.ActivityRepository
	PeriodRepo   repository.OpeningPeriodRepository
	BookingRepo  repository.BookingRepository

	// Publishers
	EventPublisher service.EventPublisher

	// Services
	AuthService     service.AuthService
	CompanyService  service.CompanyService
	CatalogService  service.CatalogService
	ActivityService service.ActivityService
	PeriodService   service.OpeningPeriodService
	ScheduleService service.ScheduleService
	BookingService  service.BookingService
	StatsService    service.StatsService

	// Handlers
	HealthHandler       *handler.HealthHandler
	AuthHandler         *handler.AuthHandler
	CompanyHandler      *handler.CompanyHandler
	CatalogHandler      *handler.CatalogHandler
	ActivityHandler     *handler.ActivityHandler
	PeriodHandler       *handler.OpeningPeriodHandler
	AvailabilityHandler *handler.AvailabilityHandler
	BookingHandler      *handler.BookingHandler
	StatsHandler        *handler.StatsHandler
	WSHandler           *handler.WSHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB             *database.PostgresDB
	Redis          *redis.Client
	EventPublisher service.EventPublisher
	Logger         *logger.Logger

	JWTSecret         string
	TokenTTL          time.Duration
	HeartbeatInterval time.Duration
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:             cfg.DB,
		Redis:          cfg.Redis,
		EventPublisher: cfg.EventPublisher,
	}

	pool := cfg.DB.Pool()

	// Repositories
	c.UserRepo = repository.NewPostgresUserRepository(pool)
	c.CompanyRepo = repository.NewPostgresCompanyRepository(pool)
	c.CategoryRepo = repository.NewPostgresCategoryRepository(pool)
	c.ResourceRepo = repository.NewPostgresResourceRepository(pool)
	c.PackageRepo = repository.NewPostgresPackageRepository(pool)
	c.ActivityRepo = repository.NewPostgresActivityRepository(pool)
	c.PeriodRepo = repository.NewPostgresOpeningPeriodRepository(pool)
	c.BookingRepo = repository.NewPostgresBookingRepository(pool)

	// Realtime hub
	c.Hub = ws.NewHub(cfg.Logger, cfg.HeartbeatInterval)

	// Services
	c.AuthService = service.NewAuthService(c.UserRepo, cfg.JWTSecret, cfg.TokenTTL)
	c.CompanyService = service.NewCompanyService(c.CompanyRepo)
	c.CatalogService = service.NewCatalogService(c.CategoryRepo, c.ResourceRepo, c.PackageRepo, c.ActivityRepo)
	c.ActivityService = service.NewActivityService(c.ActivityRepo)
	c.PeriodService = service.NewOpeningPeriodService(c.PeriodRepo)
	c.ScheduleService = service.NewScheduleService(c.PeriodRepo)
	c.BookingService = service.NewBookingService(c.BookingRepo, c.ActivityRepo, c.ScheduleService, c.EventPublisher, c.Hub, cfg.Logger)
	c.StatsService = service.NewStatsService(c.BookingRepo, c.Redis, cfg.Logger)

	// Handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.CompanyHandler = handler.NewCompanyHandler(c.CompanyService)
	c.CatalogHandler = handler.NewCatalogHandler(c.CatalogService)
	c.ActivityHandler = handler.NewActivityHandler(c.ActivityService)
	c.PeriodHandler = handler.NewOpeningPeriodHandler(c.PeriodService)
	c.AvailabilityHandler = handler.NewAvailabilityHandler(c.ScheduleService)
	c.BookingHandler = handler.NewBookingHandler(c.BookingService)
	c.StatsHandler = handler.NewStatsHandler(c.StatsService)
	c.WSHandler = handler.NewWSHandler(c.Hub, c.AuthService, c.BookingService, c.CompanyService, cfg.Logger)

	return c
}
