package elaboration

import (
	"context"

	"github.com/openhorizon/seed-backend/internal/entity"
)

type TextGenConnector interface {
	Elaborate(ctx context.Context, req *entity.TextGenElaborateRequest) (*entity.TextGenElaborateResponse, error)
	GenerateSummary(ctx context.Context, req *entity.TextGenSummaryRequest) (string, error)
}
