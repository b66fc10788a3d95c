package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fintrackr/personal_finance_app/internal/core/services"
	"github.com/fintrackr/personal_finance_app/internal/handlers"
	"github.com/fintrackr/personal_finance_app/internal/middleware"
	"github.com/fintrackr/personal_finance_app/internal/platform/config"
	"github.com/fintrackr/personal_finance_app/internal/platform/events"
	"github.com/fintrackr/personal_finance_app/internal/repositories/database/pgsql"
	"github.com/fintrackr/personal_finance_app/internal/utils"
	"github.com/fintrackr/personal_finance_app/internal/utils/crypto"
	"github.com/fintrackr/personal_finance_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"golang.org/x/sync/errgroup"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Personal Finance API
// @version 1.0
// @description Backend for personal finance tracking: accounts, transactions, budgets and statistics.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Field-level encryption for account numbers
	var encryptor services.FieldEncryptor
	if cfg.EncryptionKey != "" {
		enc, err := crypto.NewEncryptor(cfg.EncryptionKey)
		if err != nil {
			logger.Error("Failed to initialize encryptor", slog.String("error", err.Error()))
			os.Exit(1)
		}
		encryptor = enc
	} else {
		logger.Warn("ENCRYPTION_KEY not set, account endpoints will reject requests.")
	}

	// Budget alert events over AMQP; disabled when no broker is configured
	var publisher services.AlertEventPublisher
	if cfg.AMQPURL != "" {
		alertPublisher, err := events.NewAlertPublisher(cfg.AMQPURL)
		if err != nil {
			logger.Error("Failed to connect to message broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer alertPublisher.Close()
		publisher = alertPublisher
		logger.Info("Budget alert publisher connected.")
	} else {
		logger.Warn("AMQP_URL not set, budget alert events are disabled.")
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos, encryptor, publisher)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	rate := limiter.Rate{Period: time.Minute, Limit: int64(cfg.RateLimitRPM)}
	globalLimiter := limiter.New(memory.NewStore(), rate)

	// Global middleware (logging, recovery, cors, rate limiting, analytics)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.Default(),
		middleware.RateLimit(globalLimiter),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped.")
}

// runMigrations applies pending schema migrations using a temporary
// database/sql connection via the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
