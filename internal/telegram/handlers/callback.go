package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/openhorizon/seed-backend/internal/entity"
	"github.com/openhorizon/seed-backend/internal/telegram/keyboard"
	"github.com/openhorizon/seed-backend/internal/telegram/render"
	"github.com/openhorizon/seed-backend/internal/telegram/state"
	"go.uber.org/zap"
)

// botTenant scopes seed listings; the bot serves a single tenant
const botTenant = "default"

// CallbackHandler handles all inline button clicks
type CallbackHandler struct {
	api           *tgbotapi.BotAPI
	stateManager  *state.Manager
	seedUC        SeedUsecase
	elaborationUC ElaborationUsecase
	keyboard      *keyboard.Builder
	sender        *MessageSender
	logger        *zap.Logger
}

var _ Handler = &CallbackHandler{}

// NewCallbackHandler creates the callback handler
func NewCallbackHandler(
	api *tgbotapi.BotAPI,
	stateManager *state.Manager,
	seedUC SeedUsecase,
	elaborationUC ElaborationUsecase,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *CallbackHandler {
	return &CallbackHandler{
		api:           api,
		stateManager:  stateManager,
		seedUC:        seedUC,
		elaborationUC: elaborationUC,
		keyboard:      kb,
		sender:        NewMessageSender(api, logger),
		logger:        logger,
	}
}

// GetState implements Handler
func (h *CallbackHandler) GetState() string {
	return HandlerStateCallback
}

// Handle routes the callback by its action prefix
func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		return fmt.Errorf("parse callback: %w", err)
	}

	switch data.Action {
	case "action":
		return h.handleAction(ctx, msg, data.Value)
	case "seed":
		return h.handleSeedSelected(ctx, msg, data.Value)
	case "export":
		return h.handleExport(ctx, msg, data.Value)
	case "confirm":
		return h.handleConfirm(ctx, msg, data.Value)
	default:
		ctxzap.Warn(ctx, "unknown callback action",
			zap.String("action", data.Action),
			zap.Int64("user_id", msg.UserID),
		)
		return h.sender.Send(msg.ChatID, render.ErrGeneric, nil)
	}
}

func (h *CallbackHandler) handleAction(ctx context.Context, msg *Message, value string) error {
	switch value {
	case "list":
		return h.listSeeds(ctx, msg)
	case "save":
		return h.markSeed(ctx, msg, true)
	case "dismiss":
		return h.markSeed(ctx, msg, false)
	case "export":
		return h.sender.Send(msg.ChatID, render.MsgChooseFormat, h.keyboard.ExportKeyboard())
	default:
		return h.sender.Send(msg.ChatID, render.ErrGeneric, nil)
	}
}

func (h *CallbackHandler) listSeeds(ctx context.Context, msg *Message) error {
	seeds, err := h.seedUC.ListSeeds(ctx, botTenant, false)
	if err != nil {
		ctxzap.Error(ctx, "failed to list seeds", zap.Error(err))
		return h.sender.Send(msg.ChatID, render.ClassifyError(err), nil)
	}

	if len(seeds) == 0 {
		return h.sender.Send(msg.ChatID, render.MsgNoSeeds, nil)
	}

	options := make([]keyboard.Seed, 0, len(seeds))
	for _, s := range seeds {
		options = append(options, keyboard.Seed{ID: s.ID, Title: s.Title})
	}

	st, err := h.stateManager.Get(ctx, msg.UserID, msg.ChatID)
	if err != nil {
		return err
	}
	st.Phase = state.PhaseChoosingSeed
	if err := h.stateManager.Save(ctx, st); err != nil {
		return err
	}

	return h.sender.Send(msg.ChatID, render.MsgSelectSeed, h.keyboard.SeedSelectionKeyboard(options))
}

func (h *CallbackHandler) handleSeedSelected(ctx context.Context, msg *Message, seedID string) error {
	typing := NewTypingNotifier(h.api, msg.ChatID, h.logger)
	typing.Start(ctx)
	defer typing.Stop()

	resp, err := h.elaborationUC.StartElaboration(ctx, seedID, &entity.StartElaborationRequest{})
	if err != nil {
		ctxzap.Error(ctx, "failed to start elaboration",
			zap.Error(err),
			zap.String("seed_id", seedID),
		)
		return h.sender.Send(msg.ChatID, render.ClassifyError(err), nil)
	}

	st, err := h.stateManager.Get(ctx, msg.UserID, msg.ChatID)
	if err != nil {
		return err
	}
	st.SeedID = seedID
	st.SessionID = resp.SessionID
	st.Phase = state.PhaseElaborating
	if err := h.stateManager.Save(ctx, st); err != nil {
		return err
	}

	ctxzap.Info(ctx, "elaboration session started",
		zap.String("seed_id", seedID),
		zap.String("session_id", resp.SessionID),
		zap.Int64("user_id", msg.UserID),
	)

	var markup interface{}
	if len(resp.Suggestions) > 0 {
		markup = h.keyboard.QuickReplyKeyboard(resp.Suggestions)
	}

	return h.sender.Send(msg.ChatID, resp.Question, markup)
}

func (h *CallbackHandler) markSeed(ctx context.Context, msg *Message, save bool) error {
	st, err := h.stateManager.Get(ctx, msg.UserID, msg.ChatID)
	if err != nil {
		return err
	}
	if st.SeedID == "" {
		return h.sender.Send(msg.ChatID, render.ErrNoSession, nil)
	}

	if save {
		if _, err := h.seedUC.SaveSeed(ctx, st.SeedID); err != nil {
			return h.sender.Send(msg.ChatID, render.ClassifyError(err), nil)
		}
		return h.sender.Send(msg.ChatID, render.MsgSaved, nil)
	}

	if _, err := h.seedUC.DismissSeed(ctx, st.SeedID); err != nil {
		return h.sender.Send(msg.ChatID, render.ClassifyError(err), nil)
	}

	if err := h.stateManager.Reset(ctx, msg.UserID); err != nil {
		ctxzap.Error(ctx, "failed to reset chat state", zap.Error(err))
	}

	return h.sender.Send(msg.ChatID, render.MsgDismissed, nil)
}

func (h *CallbackHandler) handleExport(ctx context.Context, msg *Message, format string) error {
	st, err := h.stateManager.Get(ctx, msg.UserID, msg.ChatID)
	if err != nil {
		return err
	}
	if st.SeedID == "" {
		return h.sender.Send(msg.ChatID, render.ErrNoSession, nil)
	}

	typing := NewTypingNotifier(h.api, msg.ChatID, h.logger)
	typing.Start(ctx)
	defer typing.Stop()

	result, err := h.seedUC.ExportProposal(ctx, st.SeedID, format)
	if err != nil {
		ctxzap.Error(ctx, "failed to export proposal",
			zap.Error(err),
			zap.String("seed_id", st.SeedID),
			zap.String("format", format),
		)
		return h.sender.Send(msg.ChatID, render.ClassifyError(err), nil)
	}

	return h.sender.SendDocument(msg.ChatID, result.Filename, result.Data)
}

func (h *CallbackHandler) handleConfirm(ctx context.Context, msg *Message, value string) error {
	st, err := h.stateManager.Get(ctx, msg.UserID, msg.ChatID)
	if err != nil {
		return err
	}

	switch value {
	case "cancel":
		if err := h.stateManager.Reset(ctx, msg.UserID); err != nil {
			ctxzap.Error(ctx, "failed to reset chat state", zap.Error(err))
		}
		return h.sender.Send(msg.ChatID, render.MsgSessionStopped, h.keyboard.RemoveKeyboard())
	case "continue":
		st.PendingConfirmation = ""
		if err := h.stateManager.Save(ctx, st); err != nil {
			return err
		}
		return h.sender.Send(msg.ChatID, "👍 Carrying on.", nil)
	default:
		return h.sender.Send(msg.ChatID, render.ErrGeneric, nil)
	}
}
