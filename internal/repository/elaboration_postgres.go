package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openhorizon/seed-backend/internal/entity"
)

// ElaborationRepository defines the interface for elaboration persistence.
// One elaboration exists per seed; transcript and metadata are stored as
// JSONB documents and written back whole after every turn.
type ElaborationRepository interface {
	UpsertElaboration(ctx context.Context, elab entity.Elaboration) (*entity.Elaboration, error)
	GetElaborationBySeedID(ctx context.Context, seedID string) (*entity.Elaboration, error)
	DeleteElaboration(ctx context.Context, seedID string) error
}

var _ ElaborationRepository = &ElaborationPostgres{}

// ElaborationPostgres implements ElaborationRepository using PostgreSQL
type ElaborationPostgres struct {
	db *pgxpool.Pool
}

func NewElaborationPostgres(db *pgxpool.Pool) *ElaborationPostgres {
	return &ElaborationPostgres{db: db}
}

func (r *ElaborationPostgres) UpsertElaboration(ctx context.Context, elab entity.Elaboration) (*entity.Elaboration, error) {
	if _, err := uuid.Parse(elab.SeedID); err != nil {
		return nil, fmt.Errorf("invalid seed ID: %w", err)
	}
	id := elab.ID
	if id == "" {
		id = uuid.NewString()
	}

	transcript, err := json.Marshal(elab.Transcript)
	if err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}
	metadata, err := json.Marshal(elab.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO elaborations (id, seed_id, transcript, metadata)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (seed_id) DO UPDATE SET
			transcript = EXCLUDED.transcript,
			metadata = EXCLUDED.metadata,
			updated_at = NOW()
		RETURNING id, seed_id, transcript, metadata, created_at, updated_at`,
		id, elab.SeedID, transcript, metadata,
	)

	stored, err := scanElaboration(row)
	if err != nil {
		return nil, fmt.Errorf("upsert elaboration: %w", err)
	}
	return stored, nil
}

func (r *ElaborationPostgres) GetElaborationBySeedID(ctx context.Context, seedID string) (*entity.Elaboration, error) {
	if _, err := uuid.Parse(seedID); err != nil {
		return nil, fmt.Errorf("invalid seed ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		SELECT id, seed_id, transcript, metadata, created_at, updated_at
		FROM elaborations WHERE seed_id = $1`, seedID)

	elab, err := scanElaboration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrElaborationNotFound
		}
		return nil, fmt.Errorf("get elaboration: %w", err)
	}
	return elab, nil
}

func (r *ElaborationPostgres) DeleteElaboration(ctx context.Context, seedID string) error {
	if _, err := uuid.Parse(seedID); err != nil {
		return fmt.Errorf("invalid seed ID: %w", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM elaborations WHERE seed_id = $1`, seedID)
	if err != nil {
		return fmt.Errorf("delete elaboration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrElaborationNotFound
	}
	return nil
}
