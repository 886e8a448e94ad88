package elaboration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/openhorizon/seed-backend/internal/entity"
	"github.com/openhorizon/seed-backend/internal/pkg/logger"
	"github.com/openhorizon/seed-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   ElaborationUsecase
	validator *validator.Validator
}

func NewHandler(usecase ElaborationUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// StartElaboration handles POST /seeds/{id}/elaboration - Start or resume a session
func (h *Handler) StartElaboration(w http.ResponseWriter, r *http.Request) {
	ctx, seedID := h.seedContext(r, "StartElaboration")

	var req entity.StartElaborationRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
			h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
			return
		}
	}

	ctxzap.Info(ctx, "starting elaboration session",
		zap.Bool("resume", req.ResumeMetadata != nil),
	)

	resp, err := h.usecase.StartElaboration(ctx, seedID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// ProcessAnswer handles POST /seeds/{id}/elaboration/answer - Run one turn
func (h *Handler) ProcessAnswer(w http.ResponseWriter, r *http.Request) {
	ctx, seedID := h.seedContext(r, "ProcessAnswer")

	var req entity.ProcessAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateProcessAnswer(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	resp, err := h.usecase.ProcessAnswer(ctx, seedID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "answer processed",
		zap.String("stage", string(resp.Stage)),
		zap.Int("completeness", resp.Metadata.Completeness),
	)

	h.respondJSON(w, http.StatusOK, resp)
}

// EditMessage handles PUT /seeds/{id}/elaboration/messages/{index} - Rewrite a turn
func (h *Handler) EditMessage(w http.ResponseWriter, r *http.Request) {
	ctx, seedID := h.seedContext(r, "EditMessage")

	index, err := h.validator.ValidateTurnIndex(chi.URLParam(r, "index"))
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid turn index", err)
		return
	}

	var req entity.EditMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateEditMessage(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	ctxzap.Info(ctx, "editing turn", zap.Int("index", index))

	resp, err := h.usecase.EditMessage(ctx, seedID, index, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// GetElaboration handles GET /seeds/{id}/elaboration - Fetch session state
func (h *Handler) GetElaboration(w http.ResponseWriter, r *http.Request) {
	ctx, seedID := h.seedContext(r, "GetElaboration")

	ctxzap.Debug(ctx, "fetching elaboration")

	dto, err := h.usecase.GetElaboration(ctx, seedID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto)
}

func (h *Handler) seedContext(r *http.Request, action string) (context.Context, string) {
	seedID := chi.URLParam(r, "id")
	ctx := logger.WithSeed(logger.WithAction(r.Context(), action), seedID)
	return ctx, seedID
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	h.respondJSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrSeedNotFound) || errors.Is(err, entity.ErrElaborationNotFound) || errors.Is(err, entity.ErrTurnNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	} else if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrInvalidFormat) || errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else if errors.Is(err, entity.ErrSeedDismissed) || errors.Is(err, entity.ErrTurnNotEditable) || errors.Is(err, entity.ErrNoSummary) {
		h.respondError(ctx, w, http.StatusConflict, "invalid session state", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
