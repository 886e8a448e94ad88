package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/openhorizon/seed-backend/internal/config"
	"github.com/openhorizon/seed-backend/internal/telegram/handlers"
	"github.com/openhorizon/seed-backend/internal/telegram/keyboard"
	"github.com/openhorizon/seed-backend/internal/telegram/middleware"
	"github.com/openhorizon/seed-backend/internal/telegram/render"
	"github.com/openhorizon/seed-backend/internal/telegram/state"
	"go.uber.org/zap"
)

// Bot represents the Telegram bot
type Bot struct {
	api           *tgbotapi.BotAPI
	cfg           *config.TelegramConfig
	stateManager  *state.Manager
	handlers      map[string]handlers.Handler
	seedUC        handlers.SeedUsecase
	elaborationUC handlers.ElaborationUsecase
	keyboard      *keyboard.Builder
	logger        *zap.Logger
	loggingMW     *middleware.LoggingMiddleware
	recoveryMW    *middleware.RecoveryMiddleware
	rateLimitMW   *middleware.RateLimiterMiddleware
	updatesChan   tgbotapi.UpdatesChannel
	workers       chan struct{}
	stopChan      chan struct{}
	wg            sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	stateManager *state.Manager,
	seedUC handlers.SeedUsecase,
	elaborationUC handlers.ElaborationUsecase,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	bot := &Bot{
		api:           api,
		cfg:           cfg,
		stateManager:  stateManager,
		seedUC:        seedUC,
		elaborationUC: elaborationUC,
		keyboard:      keyboard.NewBuilder(),
		logger:        logger,
		handlers:      make(map[string]handlers.Handler),
		workers:       make(chan struct{}, cfg.MaxConcurrentUsers),
		stopChan:      make(chan struct{}),
	}

	// Initialize middleware
	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(u)
	b.updatesChan = updates

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates, capped by the worker limit
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			b.workers <- struct{}{}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer func() {
					<-b.workers
					b.wg.Done()
				}()
				b.handleUpdateWithMiddleware(u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through the middleware chain
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

// handleUpdate routes update to the appropriate handler
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger)

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
		return
	}
}

// handleMessage handles incoming text messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	userID := message.From.ID
	chatID := message.Chat.ID

	st, err := b.stateManager.Get(ctx, userID, chatID)
	if err != nil {
		ctxzap.Error(ctx, "failed to get chat state",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		b.sendError(chatID, render.ErrGeneric)
		return
	}

	if st.Phase != state.PhaseElaborating {
		ctxzap.Warn(ctx, "message outside an elaboration session",
			zap.Int64("user_id", userID),
			zap.String("phase", string(st.Phase)),
		)
		b.sendError(chatID, render.ErrNoSession)
		return
	}

	handler, exists := b.handlers[handlers.HandlerStateElaborating]
	if !exists {
		ctxzap.Warn(ctx, "answer handler not registered")
		b.sendError(chatID, render.ErrGeneric)
		return
	}

	msg := &handlers.Message{
		ChatID:    chatID,
		UserID:    userID,
		MessageID: message.MessageID,
		Text:      message.Text,
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		b.sendError(chatID, render.ErrGeneric)
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	switch command {
	case "start":
		b.handleStartCommand(ctx, message)
	case "help":
		b.handleHelpCommand(ctx, message)
	case "progress":
		b.handleProgressCommand(ctx, message)
	case "cancel":
		b.handleCancelCommand(ctx, message)
	default:
		b.sendError(message.Chat.ID, "❌ Unknown command. Try /start")
	}
}

// handleStartCommand handles /start
func (b *Bot) handleStartCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if _, err := b.sendMessage(chatID, render.MsgWelcome, b.keyboard.StartKeyboard()); err != nil {
		ctxzap.Error(ctx, "failed to send welcome message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// handleHelpCommand handles /help
func (b *Bot) handleHelpCommand(ctx context.Context, message *tgbotapi.Message) {
	if _, err := b.sendMessage(message.Chat.ID, render.MsgHelp, nil); err != nil {
		ctxzap.Error(ctx, "failed to send help message",
			zap.Error(err),
		)
	}
}

// handleProgressCommand handles /progress
func (b *Bot) handleProgressCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	st, err := b.stateManager.Get(ctx, userID, chatID)
	if err != nil || st.SeedID == "" {
		b.sendError(chatID, render.ErrNoSession)
		return
	}

	dto, err := b.elaborationUC.GetElaboration(ctx, st.SeedID)
	if err != nil {
		ctxzap.Error(ctx, "failed to load elaboration",
			zap.Error(err),
			zap.String("seed_id", st.SeedID),
		)
		b.sendError(chatID, render.ClassifyError(err))
		return
	}

	b.sendMessage(chatID, render.RenderProgress(dto.Completeness, dto.MissingFields), nil)
}

// handleCancelCommand handles /cancel
func (b *Bot) handleCancelCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	st, err := b.stateManager.Get(ctx, userID, chatID)
	if err != nil || st.SeedID == "" {
		b.sendMessage(chatID, render.ErrNoSession, nil)
		return
	}

	if st.PendingConfirmation != "cancel" {
		st.PendingConfirmation = "cancel"
		if err := b.stateManager.Save(ctx, st); err != nil {
			ctxzap.Error(ctx, "failed to save chat state", zap.Error(err))
		}
		b.sendMessage(chatID, render.MsgConfirmCancel, b.keyboard.ConfirmCancelKeyboard())
		return
	}

	if err := b.stateManager.Reset(ctx, userID); err != nil {
		ctxzap.Error(ctx, "failed to reset chat state",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
	}

	b.sendMessage(chatID, render.MsgSessionStopped, b.keyboard.RemoveKeyboard())
}

// handleCallbackQuery handles callback button clicks
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	callbackData, err := keyboard.ParseCallback(query.Data)
	if err != nil {
		ctxzap.Error(ctx, "invalid callback data",
			zap.Error(err),
			zap.String("data", query.Data),
		)
		b.answerCallback(query.ID, "❌ Invalid request")
		return
	}

	ctxzap.Info(ctx, "callback query received",
		zap.String("action", callbackData.Action),
		zap.String("value", callbackData.Value),
		zap.Int64("user_id", query.From.ID),
	)

	userID := query.From.ID
	chatID := query.Message.Chat.ID

	msg := &handlers.Message{
		ChatID:       chatID,
		UserID:       userID,
		MessageID:    query.Message.MessageID,
		CallbackData: query.Data,
		CallbackID:   query.ID,
	}

	handler, exists := b.handlers[handlers.HandlerStateCallback]
	if !exists {
		ctxzap.Warn(ctx, "callback handler not registered")
		b.answerCallback(query.ID, "❌ No handler")
		return
	}

	// Answer right away so Telegram does not consider the query stale;
	// the actual work runs async and reports into the chat.
	b.answerCallback(query.ID, "⏳ Working on it...")

	go func(ctx context.Context, m *handlers.Message, uid, cid int64) {
		if err := handler.Handle(ctx, m); err != nil {
			ctxzap.Error(ctx, "callback handler error",
				zap.Error(err),
				zap.Int64("user_id", uid),
			)
			b.sendError(cid, render.ErrGeneric)
		}
	}(ctx, msg, userID, chatID)
}

// sendMessage sends a message to chat
func (b *Bot) sendMessage(chatID int64, text string, replyMarkup interface{}) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if replyMarkup != nil {
		msg.ReplyMarkup = replyMarkup
	}
	return b.api.Send(msg)
}

// sendError sends an error message
func (b *Bot) sendError(chatID int64, text string) {
	if _, err := b.sendMessage(chatID, text, nil); err != nil {
		b.logger.Error("failed to send error message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// answerCallback answers a callback query
func (b *Bot) answerCallback(callbackID string, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}

// RegisterHandler registers a handler for a state
func (b *Bot) RegisterHandler(handler handlers.Handler) {
	st := handler.GetState()

	if !handlers.IsValidState(st) {
		b.logger.Fatal("invalid handler state",
			zap.String("state", st),
		)
	}

	b.handlers[st] = handler
	b.logger.Info("handler registered",
		zap.String("state", st),
	)
}

// GetAPI returns the bot API instance (for handlers)
func (b *Bot) GetAPI() *tgbotapi.BotAPI {
	return b.api
}

// GetStateManager returns the state manager (for handlers)
func (b *Bot) GetStateManager() *state.Manager {
	return b.stateManager
}

// GetKeyboard returns the keyboard builder (for handlers)
func (b *Bot) GetKeyboard() *keyboard.Builder {
	return b.keyboard
}

// GetSeedUsecase returns the seed usecase (for handlers)
func (b *Bot) GetSeedUsecase() handlers.SeedUsecase {
	return b.seedUC
}

// GetElaborationUsecase returns the elaboration usecase (for handlers)
func (b *Bot) GetElaborationUsecase() handlers.ElaborationUsecase {
	return b.elaborationUC
}

// GetConfig returns the bot config (for handlers)
func (b *Bot) GetConfig() *config.TelegramConfig {
	return b.cfg
}
