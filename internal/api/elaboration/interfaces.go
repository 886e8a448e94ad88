package elaboration

import (
	"context"

	"github.com/openhorizon/seed-backend/internal/entity"
)

type ElaborationUsecase interface {
	StartElaboration(ctx context.Context, seedID string, req *entity.StartElaborationRequest) (*entity.StartElaborationResponse, error)
	ProcessAnswer(ctx context.Context, seedID string, req *entity.ProcessAnswerRequest) (*entity.ProcessAnswerResponse, error)
	EditMessage(ctx context.Context, seedID string, index int, req *entity.EditMessageRequest) (*entity.ProcessAnswerResponse, error)
	GetElaboration(ctx context.Context, seedID string) (*entity.ElaborationDTO, error)
}
