package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/openhorizon/seed-backend/internal/entity"
	"github.com/openhorizon/seed-backend/internal/pkg/logger"
	"github.com/openhorizon/seed-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

const defaultTenant = "default"

type Handler struct {
	usecase   SeedUsecase
	validator *validator.Validator
}

func NewHandler(usecase SeedUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// CreateSeed handles POST /seeds - Register a new seed idea
func (h *Handler) CreateSeed(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateSeed")

	var req entity.CreateSeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateCreateSeed(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	ctxzap.Info(ctx, "creating seed", zap.String("title", req.Title))

	created, err := h.usecase.CreateSeed(ctx, tenantFrom(r), &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toSeedDTO(created))
}

// ListSeeds handles GET /seeds?saved=true - List seeds for a tenant
func (h *Handler) ListSeeds(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListSeeds")

	savedOnly, _ := strconv.ParseBool(r.URL.Query().Get("saved"))

	seeds, err := h.usecase.ListSeeds(ctx, tenantFrom(r), savedOnly)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"seeds": seeds})
}

// GetSeed handles GET /seeds/{id} - Fetch a single seed
func (h *Handler) GetSeed(w http.ResponseWriter, r *http.Request) {
	ctx, seedID := h.seedContext(r, "GetSeed")

	ctxzap.Debug(ctx, "fetching seed")

	s, err := h.usecase.GetSeed(ctx, seedID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSeedDTO(s))
}

// SaveSeed handles POST /seeds/{id}/save - Mark a seed as saved
func (h *Handler) SaveSeed(w http.ResponseWriter, r *http.Request) {
	ctx, seedID := h.seedContext(r, "SaveSeed")

	s, err := h.usecase.SaveSeed(ctx, seedID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "seed saved")

	h.respondJSON(w, http.StatusOK, toSeedDTO(s))
}

// DismissSeed handles POST /seeds/{id}/dismiss - Mark a seed as dismissed
func (h *Handler) DismissSeed(w http.ResponseWriter, r *http.Request) {
	ctx, seedID := h.seedContext(r, "DismissSeed")

	s, err := h.usecase.DismissSeed(ctx, seedID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "seed dismissed")

	h.respondJSON(w, http.StatusOK, toSeedDTO(s))
}

// DeleteSeed handles DELETE /seeds/{id} - Remove a seed and its session
func (h *Handler) DeleteSeed(w http.ResponseWriter, r *http.Request) {
	ctx, seedID := h.seedContext(r, "DeleteSeed")

	if err := h.usecase.DeleteSeed(ctx, seedID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "seed deleted")

	w.WriteHeader(http.StatusNoContent)
}

// ExportProposal handles GET /seeds/{id}/export?format=md|pdf|docx
func (h *Handler) ExportProposal(w http.ResponseWriter, r *http.Request) {
	ctx, seedID := h.seedContext(r, "ExportProposal")

	format := r.URL.Query().Get("format")

	ctxzap.Info(ctx, "exporting proposal", zap.String("format", format))

	result, err := h.usecase.ExportProposal(ctx, seedID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

func (h *Handler) seedContext(r *http.Request, action string) (context.Context, string) {
	seedID := chi.URLParam(r, "id")
	ctx := logger.WithSeed(logger.WithAction(r.Context(), action), seedID)
	return ctx, seedID
}

func tenantFrom(r *http.Request) string {
	if t := r.Header.Get("X-Tenant-ID"); t != "" {
		return t
	}
	return defaultTenant
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
	if errors.Is(err, entity.ErrSeedNotFound) || errors.Is(err, entity.ErrElaborationNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	} else if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrInvalidFormat) || errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else if errors.Is(err, entity.ErrSeedDismissed) || errors.Is(err, entity.ErrNoSummary) {
		h.respondError(ctx, w, http.StatusConflict, "invalid seed state", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
