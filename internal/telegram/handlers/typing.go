package handlers

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Telegram typing actions expire after 5 seconds
const typingInterval = 4 * time.Second

// TypingNotifier keeps the "typing..." indicator alive while a turn is
// being processed.
type TypingNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
	cancel context.CancelFunc
}

func NewTypingNotifier(bot *tgbotapi.BotAPI, chatID int64, logger *zap.Logger) *TypingNotifier {
	return &TypingNotifier{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}
}

// Start sends a typing action now and refreshes it until Stop or ctx done
func (t *TypingNotifier) Start(ctx context.Context) {
	if t.cancel != nil {
		return
	}
	ctx, t.cancel = context.WithCancel(ctx)

	t.sendAction()

	go func() {
		ticker := time.NewTicker(typingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.sendAction()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (t *TypingNotifier) Stop() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *TypingNotifier) sendAction() {
	action := tgbotapi.NewChatAction(t.chatID, tgbotapi.ChatTyping)
	if _, err := t.bot.Request(action); err != nil {
		t.logger.Warn("failed to send typing action",
			zap.Error(err),
			zap.Int64("chat_id", t.chatID),
		)
	}
}
