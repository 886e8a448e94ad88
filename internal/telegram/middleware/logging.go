package middleware

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// LoggingMiddleware logs every incoming update and how long it took
type LoggingMiddleware struct {
	logger *zap.Logger
}

func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

func (m *LoggingMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	start := time.Now()
	userID, chatID, kind := describeUpdate(update)

	m.logger.Info("update received",
		zap.Int("update_id", update.UpdateID),
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.String("type", kind),
	)

	next(update)

	m.logger.Info("update processed",
		zap.Int("update_id", update.UpdateID),
		zap.Int64("user_id", userID),
		zap.Duration("duration", time.Since(start)),
	)
}

func describeUpdate(update tgbotapi.Update) (userID, chatID int64, kind string) {
	switch {
	case update.Message != nil:
		userID = update.Message.From.ID
		chatID = update.Message.Chat.ID
		switch {
		case update.Message.IsCommand():
			kind = "command"
		case update.Message.Text != "":
			kind = "text"
		default:
			kind = "other"
		}
	case update.CallbackQuery != nil:
		userID = update.CallbackQuery.From.ID
		if update.CallbackQuery.Message != nil {
			chatID = update.CallbackQuery.Message.Chat.ID
		}
		kind = "callback"
	}
	return userID, chatID, kind
}
