package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xperienceoutdoors/Resav2/internal/di"
	"github.com/xperienceoutdoors/Resav2/internal/service"
	"github.com/xperienceoutdoors/Resav2/pkg/config"
	"github.com/xperienceoutdoors/Resav2/pkg/database"
	"github.com/xperienceoutdoors/Resav2/pkg/logger"
	"github.com/xperienceoutdoors/Resav2/pkg/middleware"
	pkgredis "github.com/xperienceoutdoors/Resav2/pkg/redis"
	"github.com/xperienceoutdoors/Resav2/pkg/telemetry"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logLevel := "info"
	if cfg.App.Debug {
		logLevel = "debug"
	}
	if err := logger.Init(&logger.Config{
		Level:       logLevel,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("starting server",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx := context.Background()

	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		appLog.Fatal("failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = telemetry.Shutdown(shutdownCtx)
	}()

	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  10 * time.Second,
		MaxRetries:      3,
		RetryInterval:   2 * time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	})
	if err != nil {
		appLog.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()
	appLog.Info("database connected")

	redisClient, err := pkgredis.NewClient(ctx, &pkgredis.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		DialTimeout:   cfg.Redis.DialTimeout,
		ReadTimeout:   cfg.Redis.ReadTimeout,
		WriteTimeout:  cfg.Redis.WriteTimeout,
		MaxRetries:    3,
		RetryInterval: time.Second,
	})
	if err != nil {
		appLog.Fatal("redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()
	appLog.Info("redis connected")

	var eventPublisher service.EventPublisher
	eventPublisher, err = service.NewKafkaEventPublisher(ctx, &service.EventPublisherConfig{
		Brokers:     cfg.Kafka.Brokers,
		Topic:       cfg.Kafka.Topic,
		ServiceName: cfg.App.Name,
		ClientID:    cfg.Kafka.ClientID,
	})
	if err != nil {
		appLog.Warn("kafka unreachable, booking events disabled", zap.Error(err))
		eventPublisher = service.NewNoOpEventPublisher()
	} else {
		appLog.Info("kafka event publisher connected")
	}
	defer eventPublisher.Close()

	container := di.NewContainer(&di.ContainerConfig{
		DB:                db,
		Redis:             redisClient,
		EventPublisher:    eventPublisher,
		Logger:            appLog,
		JWTSecret:         cfg.JWT.Secret,
		TokenTTL:          cfg.JWT.AccessTokenTTL,
		HeartbeatInterval: cfg.WebSocket.HeartbeatInterval,
	})

	// Heartbeat sweeps run until shutdown
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go container.Hub.Run(hubCtx)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(appLog))
	router.Use(middleware.CORS(nil))

	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	// The browser WebSocket API cannot send headers, auth happens inside
	// the handshake
	router.GET("/ws", container.WSHandler.Serve)

	v1 := router.Group("/api/v1")
	v1.POST("/auth/login", container.AuthHandler.Login)

	authed := v1.Group("")
	authed.Use(middleware.Auth(cfg.JWT.Secret))
	{
		authed.POST("/auth/register", middleware.RequireRole("admin"), container.AuthHandler.Register)

		authed.GET("/company", container.CompanyHandler.Get)
		authed.PUT("/company", container.CompanyHandler.Update)

		authed.POST("/categories", container.CatalogHandler.CreateCategory)
		authed.GET("/categories", container.CatalogHandler.ListCategories)
		authed.PUT("/categories/:id", container.CatalogHandler.UpdateCategory)
		authed.DELETE("/categories/:id", container.CatalogHandler.DeleteCategory)

		authed.POST("/resources", container.CatalogHandler.CreateResource)
		authed.GET("/resources", container.CatalogHandler.ListResources)
		authed.DELETE("/resources/:id", container.CatalogHandler.DeleteResource)

		authed.POST("/packages", container.CatalogHandler.CreatePackage)
		authed.GET("/packages", container.CatalogHandler.ListPackages)
		authed.DELETE("/packages/:id", container.CatalogHandler.DeletePackage)

		authed.POST("/activities", container.ActivityHandler.Create)
		authed.GET("/activities", container.ActivityHandler.List)
		authed.GET("/activities/:id", container.ActivityHandler.Get)
		authed.PUT("/activities/:id", container.ActivityHandler.Update)
		authed.DELETE("/activities/:id", container.ActivityHandler.Delete)

		authed.POST("/opening-periods", container.PeriodHandler.Create)
		authed.GET("/opening-periods", container.PeriodHandler.List)
		authed.GET("/opening-periods/:id", container.PeriodHandler.Get)
		authed.PUT("/opening-periods/:id", container.PeriodHandler.Update)
		authed.DELETE("/opening-periods/:id", container.PeriodHandler.Delete)

		authed.GET("/availability/:date", container.AvailabilityHandler.Get)

		idempotent := middleware.Idempotency(redisClient)
		authed.POST("/bookings", idempotent, container.BookingHandler.Create)
		authed.GET("/bookings", container.BookingHandler.List)
		authed.GET("/bookings/:id", container.BookingHandler.Get)
		authed.PUT("/bookings/:id", idempotent, container.BookingHandler.Update)
		authed.PATCH("/bookings/:id/status", idempotent, container.BookingHandler.UpdateStatus)
		authed.DELETE("/bookings/:id", container.BookingHandler.Delete)

		authed.GET("/stats", container.StatsHandler.Range)
		authed.GET("/stats/today", container.StatsHandler.Today)
		authed.GET("/stats/weekly", container.StatsHandler.Weekly)
		authed.GET("/stats/monthly", container.StatsHandler.Monthly)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLog.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server")

	// Stop heartbeat sweeps and close every websocket session
	stopHub()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal("server forced to shutdown", zap.Error(err))
	}

	appLog.Info("server exited gracefully")
}
