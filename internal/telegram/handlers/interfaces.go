package handlers

import (
	"context"

	"github.com/openhorizon/seed-backend/internal/entity"
	seeduc "github.com/openhorizon/seed-backend/internal/usecase/seed"
)

// SeedUsecase covers the seed bookkeeping the bot needs
type SeedUsecase interface {
	ListSeeds(ctx context.Context, tenantID string, savedOnly bool) ([]entity.SeedDTO, error)
	GetSeed(ctx context.Context, id string) (*entity.Seed, error)
	SaveSeed(ctx context.Context, id string) (*entity.Seed, error)
	DismissSeed(ctx context.Context, id string) (*entity.Seed, error)
	ExportProposal(ctx context.Context, id, format string) (*seeduc.ExportResult, error)
}

// ElaborationUsecase covers the conversational flow
type ElaborationUsecase interface {
	StartElaboration(ctx context.Context, seedID string, req *entity.StartElaborationRequest) (*entity.StartElaborationResponse, error)
	ProcessAnswer(ctx context.Context, seedID string, req *entity.ProcessAnswerRequest) (*entity.ProcessAnswerResponse, error)
	GetElaboration(ctx context.Context, seedID string) (*entity.ElaborationDTO, error)
}
