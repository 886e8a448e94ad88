package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/openhorizon/seed-backend/internal/entity"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSeed(row rowScanner) (*entity.Seed, error) {
	var (
		seed      entity.Seed
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(
		&seed.ID, &seed.TenantID, &seed.Title, &seed.Description, &seed.ApprovalLikelihood,
		&seed.TitleFormal, &seed.DescriptionFormal, &seed.ApprovalLikelihoodFormal,
		&seed.Tags, &seed.EstimatedDuration, &seed.EstimatedParticipants,
		&seed.IsSaved, &seed.IsDismissed, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	seed.CreatedAt = createdAt
	seed.UpdatedAt = updatedAt
	return &seed, nil
}

func scanElaboration(row rowScanner) (*entity.Elaboration, error) {
	var (
		elab       entity.Elaboration
		transcript []byte
		metadata   []byte
	)
	err := row.Scan(&elab.ID, &elab.SeedID, &transcript, &metadata, &elab.CreatedAt, &elab.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(transcript) > 0 {
		if err := json.Unmarshal(transcript, &elab.Transcript); err != nil {
			return nil, fmt.Errorf("unmarshal transcript: %w", err)
		}
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &elab.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	return &elab, nil
}
