package seed

import (
	"context"

	"github.com/openhorizon/seed-backend/internal/entity"
	seeduc "github.com/openhorizon/seed-backend/internal/usecase/seed"
)

type SeedUsecase interface {
	CreateSeed(ctx context.Context, tenantID string, req *entity.CreateSeedRequest) (*entity.Seed, error)
	GetSeed(ctx context.Context, id string) (*entity.Seed, error)
	ListSeeds(ctx context.Context, tenantID string, savedOnly bool) ([]entity.SeedDTO, error)
	SaveSeed(ctx context.Context, id string) (*entity.Seed, error)
	DismissSeed(ctx context.Context, id string) (*entity.Seed, error)
	DeleteSeed(ctx context.Context, id string) error
	ExportProposal(ctx context.Context, id, format string) (*seeduc.ExportResult, error)
}
