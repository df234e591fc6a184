package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/nvcfn/swiftgate/internal/core/services"
	"github.com/nvcfn/swiftgate/internal/gateways/identity"
	"github.com/nvcfn/swiftgate/internal/gateways/marketdata"
	"github.com/nvcfn/swiftgate/internal/handlers"
	"github.com/nvcfn/swiftgate/internal/middleware"
	"github.com/nvcfn/swiftgate/internal/platform/config"
	"github.com/nvcfn/swiftgate/internal/repositories/database/pgsql"
	"github.com/nvcfn/swiftgate/internal/swift"
	"github.com/nvcfn/swiftgate/pkg/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Transport selection: live HTTP gateway when configured, sandbox
	// otherwise.
	transportCfg := swift.HTTPTransportConfig{
		BaseURL:   cfg.SwiftAPIURL,
		APIKey:    cfg.SwiftAPIKey,
		SenderBIC: cfg.SwiftSenderBIC,
		Timeout:   cfg.SwiftHTTPTimeout,
	}
	var transport swift.Transport
	if transportCfg.Configured() {
		transport = swift.NewHTTPTransport(transportCfg)
		logger.Info("Using live SWIFT transport", slog.String("base_url", cfg.SwiftAPIURL))
	} else {
		transport = swift.NewSandboxTransport()
		logger.Warn("SWIFT gateway not configured, using sandbox transport")
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	goldFeed := marketdata.NewStaticGoldFeed(cfg.GoldPriceUSD)
	identitySvc := identity.NewStaticIdentityService(cfg.SwiftInstitutionName)
	container := services.NewServiceContainer(cfg, repos, transport, goldFeed, identitySvc)

	// Install the well-known rate pairs so resolution works out of the box.
	if err := container.ExchangeRate.SeedDefaultRates(context.Background()); err != nil {
		logger.Error("Failed to seed default exchange rates", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Default exchange rates seeded.")

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT value", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)
	r.Use(middleware.RateLimit(ipLimiter))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending schema migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
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
