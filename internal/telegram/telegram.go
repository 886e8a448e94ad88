package telegram

import (
	"context"
	"fmt"

	"github.com/openhorizon/seed-backend/internal/config"
	"github.com/openhorizon/seed-backend/internal/telegram/bot"
	"github.com/openhorizon/seed-backend/internal/telegram/handlers"
	"github.com/openhorizon/seed-backend/internal/telegram/state"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	storage state.Storage,
	seedUC handlers.SeedUsecase,
	elaborationUC handlers.ElaborationUsecase,
	logger *zap.Logger,
) (Bot, error) {
	stateManager := state.NewManager(storage)

	b, err := bot.New(cfg, stateManager, seedUC, elaborationUC, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	registerHandlers(b, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

// registerHandlers registers all handlers with the bot
func registerHandlers(b *bot.Bot, logger *zap.Logger) {
	api := b.GetAPI()
	stateManager := b.GetStateManager()
	seedUC := b.GetSeedUsecase()
	elaborationUC := b.GetElaborationUsecase()
	kb := b.GetKeyboard()

	// Callback handler (all button clicks)
	callbackHandler := handlers.NewCallbackHandler(api, stateManager, seedUC, elaborationUC, kb, logger)
	b.RegisterHandler(callbackHandler)

	// Answer handler (free-text answers during a session)
	answerHandler := handlers.NewAnswerHandler(api, stateManager, elaborationUC, kb, logger)
	b.RegisterHandler(answerHandler)

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", 2),
	)
}
