package seed

import "github.com/openhorizon/seed-backend/internal/entity"

// toSeedDTO converts a Seed entity to its API representation
func toSeedDTO(s *entity.Seed) entity.SeedDTO {
	return entity.SeedDTO{
		ID:                 s.ID,
		Title:              s.Title,
		Description:        s.Description,
		ApprovalLikelihood: s.ApprovalLikelihood,
		Tags:               s.Tags,
		IsSaved:            s.IsSaved,
	}
}
