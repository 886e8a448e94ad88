package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	gocache "github.com/patrickmn/go-cache"
	"github.com/openhorizon/seed-backend/internal/api"
	elaborationapi "github.com/openhorizon/seed-backend/internal/api/elaboration"
	seedapi "github.com/openhorizon/seed-backend/internal/api/seed"
	"github.com/openhorizon/seed-backend/internal/config"
	core "github.com/openhorizon/seed-backend/internal/elaboration"
	"github.com/openhorizon/seed-backend/internal/elaboration/extract"
	"github.com/openhorizon/seed-backend/internal/integration/textgen"
	"github.com/openhorizon/seed-backend/internal/pkg/formatter"
	"github.com/openhorizon/seed-backend/internal/pkg/validator"
	"github.com/openhorizon/seed-backend/internal/repository"
	"github.com/openhorizon/seed-backend/internal/telegram"
	"github.com/openhorizon/seed-backend/internal/telegram/state"
	elaborationuc "github.com/openhorizon/seed-backend/internal/usecase/elaboration"
	seeduc "github.com/openhorizon/seed-backend/internal/usecase/seed"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	seedUC, elaborationUC := buildUsecases(cfg, db, logger)

	// Setup API handlers
	v := validator.NewValidator()
	seedHandler := seedapi.NewHandler(seedUC, v)
	elaborationHandler := elaborationapi.NewHandler(elaborationUC, v)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(seedHandler, elaborationHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	seedUC, elaborationUC := buildUsecases(cfg, db, logger)

	// Chat state lives in-process; the elaboration itself is in postgres
	chatStorage := state.NewCacheStorage(cfg.CacheTTL, cfg.CacheCleanupInterval)

	// Initialize Telegram bot
	bot, err := telegram.NewBot(&cfg.TelegramCfg, chatStorage, seedUC, elaborationUC, logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

// buildUsecases wires repositories, the engine and connectors into the two
// usecases shared by the HTTP server and the bot
func buildUsecases(cfg *config.Config, db *pgxpool.Pool, logger *zap.Logger) (*seeduc.Usecase, *elaborationuc.Usecase) {
	// Initialize repositories
	seedRepo := repository.NewSeedPostgres(db)
	elaborationRepo := repository.NewElaborationPostgres(db)
	logger.Info("Repositories initialized")

	// Initialize the extraction engine with the configured vocabulary
	engine := core.NewEngine(extract.Options{
		CountryAliases:     cfg.Vocabulary.CountryAliases,
		ActivityIndicators: cfg.Vocabulary.ActivityIndicators,
		PriorityKeywords:   cfg.Vocabulary.PriorityKeywords,
	})

	// Initialize external service connectors (with mock support)
	var textgenConnector elaborationuc.TextGenConnector
	if cfg.EnableMocks {
		logger.Info("Using mock connector for text generation")
		textgenConnector = textgen.NewMockConnector(logger)
	} else {
		logger.Info("Using real connector for text generation")
		textgenConnector = textgen.NewConnector(cfg.TextGenConnectorCfg, logger)
	}

	cache := gocache.New(cfg.CacheTTL, cfg.CacheCleanupInterval)

	// Initialize use cases
	elaborationUC := elaborationuc.NewUsecase(
		seedRepo,
		elaborationRepo,
		engine,
		textgenConnector,
		cache,
		logger,
	)

	seedUC := seeduc.NewUsecase(
		seedRepo,
		elaborationRepo,
		validator.NewValidator(),
		elaborationUC,
		formatter.NewFactory(),
		logger,
	)
	logger.Info("Use cases initialized")

	return seedUC, elaborationUC
}
