package elaboration

import (
	"context"
	"errors"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	core "github.com/openhorizon/seed-backend/internal/elaboration"
	"github.com/openhorizon/seed-backend/internal/entity"
	"github.com/openhorizon/seed-backend/internal/repository"
)

// Usecase orchestrates one conversation turn: load state, run the engine,
// ask the text-generation collaborator for the conversational reply, persist
// and respond. Hot sessions are kept in an in-process cache so consecutive
// turns skip the database read.
type Usecase struct {
	seedRepo repository.SeedRepository
	elabRepo repository.ElaborationRepository
	engine   *core.Engine
	textgen  TextGenConnector
	cache    *gocache.Cache
	logger   *zap.Logger
}

func NewUsecase(
	seedRepo repository.SeedRepository,
	elabRepo repository.ElaborationRepository,
	engine *core.Engine,
	textgen TextGenConnector,
	cache *gocache.Cache,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		seedRepo: seedRepo,
		elabRepo: elabRepo,
		engine:   engine,
		textgen:  textgen,
		cache:    cache,
		logger:   logger,
	}
}

// StartElaboration opens (or resumes) the session for a seed. A stored
// session resumes from its first unanswered slot; explicit resume metadata
// in the request takes precedence over the stored state.
func (uc *Usecase) StartElaboration(ctx context.Context, seedID string, req *entity.StartElaborationRequest) (
	*entity.StartElaborationResponse, error,
) {
	seed, err := uc.seedRepo.GetSeedByID(ctx, seedID)
	if err != nil {
		return nil, fmt.Errorf("get seed: %w", err)
	}
	if seed.IsDismissed {
		return nil, entity.ErrSeedDismissed
	}

	resume := req.ResumeMetadata
	if resume == nil {
		stored, err := uc.elabRepo.GetElaborationBySeedID(ctx, seedID)
		switch {
		case err == nil:
			resume = &stored.Metadata
		case errors.Is(err, entity.ErrElaborationNotFound):
		default:
			return nil, fmt.Errorf("load stored session: %w", err)
		}
	}

	res := uc.engine.Start(*seed, resume)

	elab, err := uc.elabRepo.UpsertElaboration(ctx, entity.Elaboration{
		SeedID:     seedID,
		Transcript: res.Transcript,
		Metadata:   res.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	uc.cache.Set(cacheKey(seedID), elab, gocache.DefaultExpiration)

	ctxzap.Info(ctx, "elaboration session started",
		zap.String("seed_id", seedID),
		zap.String("session_id", res.Metadata.SessionID),
		zap.Int("completeness", res.Metadata.Completeness),
	)

	resp := &entity.StartElaborationResponse{
		SessionID: res.Metadata.SessionID,
		Metadata:  res.Metadata,
	}
	if res.Question != nil {
		resp.Question = res.Question.Text
		resp.Suggestions = res.Question.QuickReplies
	}
	return resp, nil
}

// ProcessAnswer runs one turn of the conversation.
func (uc *Usecase) ProcessAnswer(ctx context.Context, seedID string, req *entity.ProcessAnswerRequest) (
	*entity.ProcessAnswerResponse, error,
) {
	seed, err := uc.seedRepo.GetSeedByID(ctx, seedID)
	if err != nil {
		return nil, fmt.Errorf("get seed: %w", err)
	}

	elab, err := uc.loadElaboration(ctx, seedID)
	if err != nil {
		return nil, err
	}

	res := uc.engine.ProcessAnswer(elab.Metadata, req.Message)

	reply := uc.conversationalReply(ctx, seed, elab, req.Message, res)
	transcript := core.AppendTurn(elab.Transcript, req.Message, res, reply)

	updated, err := uc.elabRepo.UpsertElaboration(ctx, entity.Elaboration{
		ID:         elab.ID,
		SeedID:     seedID,
		Transcript: transcript,
		Metadata:   res.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	uc.cache.Set(cacheKey(seedID), updated, gocache.DefaultExpiration)

	ctxzap.Info(ctx, "answer processed",
		zap.String("seed_id", seedID),
		zap.String("stage", string(res.Stage)),
		zap.Int("completeness", res.Metadata.Completeness),
		zap.Int("validation_errors", len(res.ValidationErrors)),
	)

	return toProcessAnswerResponse(reply, res), nil
}

// EditMessage rewrites a prior user turn and discards everything the session
// derived after it.
func (uc *Usecase) EditMessage(ctx context.Context, seedID string, index int, req *entity.EditMessageRequest) (
	*entity.ProcessAnswerResponse, error,
) {
	elab, err := uc.loadElaboration(ctx, seedID)
	if err != nil {
		return nil, err
	}

	transcript, res, err := uc.engine.EditMessage(elab.Transcript, index, req.Content)
	if err != nil {
		return nil, fmt.Errorf("edit message: %w", err)
	}

	updated, err := uc.elabRepo.UpsertElaboration(ctx, entity.Elaboration{
		ID:         elab.ID,
		SeedID:     seedID,
		Transcript: transcript,
		Metadata:   res.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	uc.cache.Set(cacheKey(seedID), updated, gocache.DefaultExpiration)

	ctxzap.Info(ctx, "message edited",
		zap.String("seed_id", seedID),
		zap.Int("turn_index", index),
		zap.Int("completeness", res.Metadata.Completeness),
	)

	return toProcessAnswerResponse(core.PromptFor(res), res), nil
}

// GetElaboration returns the stored session state with derived fields.
func (uc *Usecase) GetElaboration(ctx context.Context, seedID string) (*entity.ElaborationDTO, error) {
	elab, err := uc.loadElaboration(ctx, seedID)
	if err != nil {
		return nil, err
	}

	return &entity.ElaborationDTO{
		ID:            elab.ID,
		SeedID:        elab.SeedID,
		Stage:         core.StageFor(elab.Metadata),
		Completeness:  core.CalculateCompleteness(elab.Metadata),
		MissingFields: core.IdentifyMissingFields(elab.Metadata),
		Metadata:      elab.Metadata,
		Transcript:    elab.Transcript,
	}, nil
}

// GenerateProposal renders the final proposal text once every gating slot is
// answered.
func (uc *Usecase) GenerateProposal(ctx context.Context, seedID string) (string, error) {
	seed, err := uc.seedRepo.GetSeedByID(ctx, seedID)
	if err != nil {
		return "", fmt.Errorf("get seed: %w", err)
	}

	elab, err := uc.loadElaboration(ctx, seedID)
	if err != nil {
		return "", err
	}
	if !core.RequiredComplete(elab.Metadata) {
		return "", entity.ErrNoSummary
	}

	summary, err := uc.textgen.GenerateSummary(ctx, &entity.TextGenSummaryRequest{
		SeedTitle:       seed.Title,
		SeedDescription: seed.Description,
		Metadata:        elab.Metadata,
	})
	if err != nil {
		return "", fmt.Errorf("generate proposal: %w", err)
	}
	return summary, nil
}

func (uc *Usecase) loadElaboration(ctx context.Context, seedID string) (*entity.Elaboration, error) {
	if cached, ok := uc.cache.Get(cacheKey(seedID)); ok {
		if elab, ok := cached.(*entity.Elaboration); ok {
			return elab, nil
		}
	}

	elab, err := uc.elabRepo.GetElaborationBySeedID(ctx, seedID)
	if err != nil {
		return nil, fmt.Errorf("get elaboration: %w", err)
	}
	uc.cache.Set(cacheKey(seedID), elab, gocache.DefaultExpiration)
	return elab, nil
}

// conversationalReply asks the collaborator for the turn's prose. The
// structured result never depends on it, so a collaborator failure degrades
// to the engine's own prompt instead of failing the turn.
func (uc *Usecase) conversationalReply(
	ctx context.Context, seed *entity.Seed, elab *entity.Elaboration, message string, res core.Result,
) string {
	var currentQuestion *string
	if res.NextQuestion != nil {
		currentQuestion = &res.NextQuestion.Text
	}

	resp, err := uc.textgen.Elaborate(ctx, &entity.TextGenElaborateRequest{
		SeedTitle:       seed.Title,
		SeedDescription: seed.Description,
		History:         elab.Transcript,
		UserMessage:     message,
		CurrentQuestion: currentQuestion,
		Metadata:        res.Metadata,
	})
	if err != nil {
		ctxzap.Warn(ctx, "textgen reply failed, falling back to engine prompt", zap.Error(err))
		return core.PromptFor(res)
	}

	if resp.UpdatedSeed != nil {
		if _, err := uc.seedRepo.UpdateSeedNarrative(ctx, seed.ID, *resp.UpdatedSeed); err != nil {
			ctxzap.Warn(ctx, "seed narrative update failed", zap.Error(err))
		}
	}
	return resp.Message
}

func toProcessAnswerResponse(reply string, res core.Result) *entity.ProcessAnswerResponse {
	out := &entity.ProcessAnswerResponse{
		Message:          reply,
		Metadata:         res.Metadata,
		Stage:            res.Stage,
		ValidationErrors: res.ValidationErrors,
		Suggestions:      res.Suggestions,
		Complete:         res.Complete,
	}
	if res.NextQuestion != nil {
		out.NextQuestion = &res.NextQuestion.Text
	}
	return out
}

func cacheKey(seedID string) string {
	return "elaboration:" + seedID
}
