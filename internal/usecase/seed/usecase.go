package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	core "github.com/openhorizon/seed-backend/internal/elaboration"
	"github.com/openhorizon/seed-backend/internal/entity"
	"github.com/openhorizon/seed-backend/internal/pkg/formatter"
	"github.com/openhorizon/seed-backend/internal/pkg/validator"
	"github.com/openhorizon/seed-backend/internal/repository"
)

// ProposalSource renders the final proposal text for a fully elaborated seed
type ProposalSource interface {
	GenerateProposal(ctx context.Context, seedID string) (string, error)
}

// Usecase implements seed bookkeeping and proposal export
type Usecase struct {
	seedRepo  repository.SeedRepository
	elabRepo  repository.ElaborationRepository
	validator *validator.Validator
	proposals ProposalSource
	formats   *formatter.Factory
	logger    *zap.Logger
}

func NewUsecase(
	seedRepo repository.SeedRepository,
	elabRepo repository.ElaborationRepository,
	validator *validator.Validator,
	proposals ProposalSource,
	formats *formatter.Factory,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		seedRepo:  seedRepo,
		elabRepo:  elabRepo,
		validator: validator,
		proposals: proposals,
		formats:   formats,
		logger:    logger,
	}
}

func (uc *Usecase) CreateSeed(ctx context.Context, tenantID string, req *entity.CreateSeedRequest) (*entity.Seed, error) {
	if err := uc.validator.ValidateCreateSeed(req); err != nil {
		return nil, err
	}

	seed, err := uc.seedRepo.CreateSeed(ctx, entity.Seed{
		TenantID:              tenantID,
		Title:                 req.Title,
		Description:           req.Description,
		ApprovalLikelihood:    req.ApprovalLikelihood,
		Tags:                  req.Tags,
		EstimatedDuration:     req.EstimatedDuration,
		EstimatedParticipants: req.EstimatedParticipants,
	})
	if err != nil {
		return nil, fmt.Errorf("create seed: %w", err)
	}

	ctxzap.Info(ctx, "seed created",
		zap.String("seed_id", seed.ID),
		zap.String("title", seed.Title),
	)
	return seed, nil
}

func (uc *Usecase) GetSeed(ctx context.Context, id string) (*entity.Seed, error) {
	seed, err := uc.seedRepo.GetSeedByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get seed: %w", err)
	}
	return seed, nil
}

func (uc *Usecase) ListSeeds(ctx context.Context, tenantID string, savedOnly bool) ([]entity.SeedDTO, error) {
	seeds, err := uc.seedRepo.ListSeeds(ctx, tenantID, savedOnly)
	if err != nil {
		return nil, fmt.Errorf("list seeds: %w", err)
	}

	dtos := make([]entity.SeedDTO, 0, len(seeds))
	for _, s := range seeds {
		dto := toSeedDTO(&s)
		if elab, err := uc.elabRepo.GetElaborationBySeedID(ctx, s.ID); err == nil {
			dto.Completeness = core.CalculateCompleteness(elab.Metadata)
		} else if !errors.Is(err, entity.ErrElaborationNotFound) {
			return nil, fmt.Errorf("load elaboration for seed %s: %w", s.ID, err)
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

func (uc *Usecase) SaveSeed(ctx context.Context, id string) (*entity.Seed, error) {
	seed, err := uc.seedRepo.SetSeedSaved(ctx, id, true)
	if err != nil {
		return nil, fmt.Errorf("save seed: %w", err)
	}
	ctxzap.Info(ctx, "seed saved", zap.String("seed_id", id))
	return seed, nil
}

func (uc *Usecase) DismissSeed(ctx context.Context, id string) (*entity.Seed, error) {
	seed, err := uc.seedRepo.SetSeedDismissed(ctx, id, true)
	if err != nil {
		return nil, fmt.Errorf("dismiss seed: %w", err)
	}
	ctxzap.Info(ctx, "seed dismissed", zap.String("seed_id", id))
	return seed, nil
}

func (uc *Usecase) DeleteSeed(ctx context.Context, id string) error {
	if err := uc.seedRepo.DeleteSeed(ctx, id); err != nil {
		return fmt.Errorf("delete seed: %w", err)
	}
	ctxzap.Info(ctx, "seed deleted", zap.String("seed_id", id))
	return nil
}

// ExportResult is a rendered proposal document
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportProposal renders the elaborated proposal in the requested format.
func (uc *Usecase) ExportProposal(ctx context.Context, id, format string) (*ExportResult, error) {
	f, err := uc.validator.ValidateExportFormat(format)
	if err != nil {
		return nil, err
	}

	text, err := uc.proposals.GenerateProposal(ctx, id)
	if err != nil {
		return nil, err
	}

	fm, err := uc.formats.Create(f)
	if err != nil {
		return nil, fmt.Errorf("create formatter: %w", err)
	}

	data, err := fm.Format(text)
	if err != nil {
		return nil, fmt.Errorf("format proposal: %w", err)
	}

	ctxzap.Info(ctx, "proposal exported",
		zap.String("seed_id", id),
		zap.String("format", string(f)),
		zap.Int("size_bytes", len(data)),
	)

	return &ExportResult{
		Data:        data,
		ContentType: fm.ContentType(),
		Filename:    "proposal" + fm.FileExtension(),
	}, nil
}

func toSeedDTO(seed *entity.Seed) entity.SeedDTO {
	return entity.SeedDTO{
		ID:                 seed.ID,
		Title:              seed.Title,
		Description:        seed.Description,
		ApprovalLikelihood: seed.ApprovalLikelihood,
		Tags:               seed.Tags,
		IsSaved:            seed.IsSaved,
	}
}
