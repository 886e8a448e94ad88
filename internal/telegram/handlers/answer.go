package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/openhorizon/seed-backend/internal/entity"
	"github.com/openhorizon/seed-backend/internal/telegram/keyboard"
	"github.com/openhorizon/seed-backend/internal/telegram/render"
	"github.com/openhorizon/seed-backend/internal/telegram/state"
	"go.uber.org/zap"
)

// AnswerHandler feeds free-text messages into the elaboration session
type AnswerHandler struct {
	api           *tgbotapi.BotAPI
	stateManager  *state.Manager
	elaborationUC ElaborationUsecase
	keyboard      *keyboard.Builder
	sender        *MessageSender
	logger        *zap.Logger
}

var _ Handler = &AnswerHandler{}

// NewAnswerHandler creates the handler for the elaborating phase
func NewAnswerHandler(
	api *tgbotapi.BotAPI,
	stateManager *state.Manager,
	elaborationUC ElaborationUsecase,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *AnswerHandler {
	return &AnswerHandler{
		api:           api,
		stateManager:  stateManager,
		elaborationUC: elaborationUC,
		keyboard:      kb,
		sender:        NewMessageSender(api, logger),
		logger:        logger,
	}
}

// GetState implements Handler
func (h *AnswerHandler) GetState() string {
	return HandlerStateElaborating
}

// Handle processes one answer of the conversation
func (h *AnswerHandler) Handle(ctx context.Context, msg *Message) error {
	st, err := h.stateManager.Get(ctx, msg.UserID, msg.ChatID)
	if err != nil {
		return err
	}

	if st.SeedID == "" {
		h.sender.Send(msg.ChatID, render.ErrNoSession, nil)
		return nil
	}

	typing := NewTypingNotifier(h.api, msg.ChatID, h.logger)
	typing.Start(ctx)
	defer typing.Stop()

	resp, err := h.elaborationUC.ProcessAnswer(ctx, st.SeedID, &entity.ProcessAnswerRequest{
		Message: msg.Text,
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to process answer",
			zap.Error(err),
			zap.String("seed_id", st.SeedID),
		)
		h.sender.Send(msg.ChatID, render.ClassifyError(err), nil)
		return nil
	}

	ctxzap.Info(ctx, "answer processed",
		zap.String("seed_id", st.SeedID),
		zap.String("stage", string(resp.Stage)),
		zap.Int("completeness", resp.Metadata.Completeness),
	)

	var markup interface{}
	if len(resp.Suggestions) > 0 {
		markup = h.keyboard.QuickReplyKeyboard(resp.Suggestions)
	} else {
		markup = h.keyboard.RemoveKeyboard()
	}

	if err := h.sender.Send(msg.ChatID, render.RenderTurn(resp), markup); err != nil {
		return err
	}

	if resp.Complete {
		return h.sender.Send(msg.ChatID, render.MsgSessionDone, h.keyboard.ProposalKeyboard())
	}

	return nil
}
