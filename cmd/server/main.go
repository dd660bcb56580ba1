package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	activityapp "github.com/jobseeker/backend/internal/application/activity"
	"github.com/jobseeker/backend/internal/application/attachment"
	identityapp "github.com/jobseeker/backend/internal/application/identity"
	listingapp "github.com/jobseeker/backend/internal/application/listing"
	"github.com/jobseeker/backend/internal/infrastructure/auth"
	"github.com/jobseeker/backend/internal/infrastructure/cache"
	"github.com/jobseeker/backend/internal/infrastructure/config"
	"github.com/jobseeker/backend/internal/infrastructure/event"
	"github.com/jobseeker/backend/internal/infrastructure/logger"
	"github.com/jobseeker/backend/internal/infrastructure/persistence"
	"github.com/jobseeker/backend/internal/infrastructure/storage"
	"github.com/jobseeker/backend/internal/infrastructure/telemetry"
	"github.com/jobseeker/backend/internal/interfaces/http/handler"
	"github.com/jobseeker/backend/internal/interfaces/http/middleware"
	"github.com/jobseeker/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Job Board Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize metrics
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Initialize log export and bridge zap into it
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		if err := loggerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()

	if loggerProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          zapcore.InfoLevel,
		})
		log = telemetry.NewBridgedLogger(log.Core(), otelCore, zap.AddCaller())
	}

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Register database tracing
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:          cfg.Telemetry.Enabled,
		SlowQueryThresh:  200 * time.Millisecond,
		DBSystem:         "postgresql",
		WithoutVariables: true,
	}, log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	// Collect connection pool metrics
	dbMetrics, err := telemetry.NewDBMetrics(meterProvider.Meter("db"), telemetry.DefaultDBMetricsConfig(), log)
	if err != nil {
		log.Warn("Failed to initialize database metrics", zap.Error(err))
	} else {
		if sqlDB, err := db.DB.DB(); err == nil {
			dbMetrics.SetSQLDB(sqlDB)
			dbMetrics.StartPoolStatsCollection(ctx)
			defer dbMetrics.Stop()
		}
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	jobRepo := persistence.NewGormJobRepository(db.DB)
	applicationRepo := persistence.NewGormApplicationRepository(db.DB)
	savedJobRepo := persistence.NewGormSavedJobRepository(db.DB)

	// In-process domain event bus
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Cache-backed stores, Redis with in-memory fallback
	cacheFactory := cache.NewFactory(cfg.Redis, cache.WithLogger(log))
	listingCache, err := cacheFactory.CreateListingCache()
	if err != nil {
		log.Fatal("Failed to create listing cache", zap.Error(err))
	}
	preferenceStore, err := cacheFactory.CreatePreferenceStore()
	if err != nil {
		log.Fatal("Failed to create preference store", zap.Error(err))
	}

	// Token issuing and revocation
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis); err == nil {
		blacklist = redisBlacklist
	} else {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist. "+
			"Revocations will not survive restarts.",
			zap.Error(err),
		)
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Object storage for resumes and profile pictures
	var objectStorage attachment.ObjectStorageService
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
	} else {
		log.Warn("No storage bucket configured, using stub object storage")
		objectStorage = storage.NewStubObjectStorage()
	}

	// Initialize application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	authService.SetEventPublisher(eventBus)
	userService := identityapp.NewUserService(userRepo, log)
	preferenceService := identityapp.NewPreferenceService(preferenceStore, log)
	listingService := listingapp.NewListingService(jobRepo, listingCache, log)
	listingService.SetEventPublisher(eventBus)
	insightService := listingapp.NewSalaryInsightService(jobRepo, log)
	applicationService := activityapp.NewApplicationService(applicationRepo, jobRepo, log)
	savedJobService := activityapp.NewSavedJobService(savedJobRepo, jobRepo, log)
	attachmentService := attachment.NewService(userRepo, objectStorage)

	// Business metrics
	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:           meterProvider.Meter("business"),
		Logger:          log,
		CatalogProvider: &catalogMetricsProvider{jobRepo: jobRepo, userRepo: userRepo},
	})
	if err != nil {
		log.Warn("Failed to initialize business metrics", zap.Error(err))
	} else {
		businessMetrics.StartPeriodicCollection(ctx, 5*time.Minute)
		defer businessMetrics.Stop()

		listingService.SetMetrics(businessMetrics)
		applicationService.SetMetrics(businessMetrics)
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, jwtService)
	jobHandler := handler.NewJobHandler(listingService, insightService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	savedJobHandler := handler.NewSavedJobHandler(savedJobService)
	userHandler := handler.NewUserHandler(userService, preferenceService)
	uploadHandler := handler.NewUploadHandler(attachmentService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - Attach spans and mark errored ones
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Only account bootstrap endpoints are public
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}))

	r.Register(
		authHandler,
		jobHandler,
		applicationHandler,
		savedJobHandler,
		userHandler,
		uploadHandler,
	)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// catalogMetricsProvider adapts the repositories to the telemetry gauge collector.
type catalogMetricsProvider struct {
	jobRepo  *persistence.GormJobRepository
	userRepo *persistence.GormUserRepository
}

func (p *catalogMetricsProvider) GetJobCount(ctx context.Context) (int64, error) {
	return p.jobRepo.Count(ctx)
}

func (p *catalogMetricsProvider) GetUserCount(ctx context.Context) (int64, error) {
	return p.userRepo.Count(ctx)
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			log.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
