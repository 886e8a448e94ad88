package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openhorizon/seed-backend/internal/entity"
)

// SeedRepository defines the interface for seed persistence
type SeedRepository interface {
	CreateSeed(ctx context.Context, seed entity.Seed) (*entity.Seed, error)
	GetSeedByID(ctx context.Context, id string) (*entity.Seed, error)
	ListSeeds(ctx context.Context, tenantID string, savedOnly bool) ([]entity.Seed, error)
	UpdateSeedNarrative(ctx context.Context, id string, upd entity.TextGenSeedUpdate) (*entity.Seed, error)
	SetSeedSaved(ctx context.Context, id string, saved bool) (*entity.Seed, error)
	SetSeedDismissed(ctx context.Context, id string, dismissed bool) (*entity.Seed, error)
	DeleteSeed(ctx context.Context, id string) error
}

var _ SeedRepository = &SeedPostgres{}

// SeedPostgres implements SeedRepository using PostgreSQL
type SeedPostgres struct {
	db *pgxpool.Pool
}

func NewSeedPostgres(db *pgxpool.Pool) *SeedPostgres {
	return &SeedPostgres{db: db}
}

const seedColumns = `id, tenant_id, title, description, approval_likelihood,
	title_formal, description_formal, approval_likelihood_formal,
	tags, estimated_duration, estimated_participants,
	is_saved, is_dismissed, created_at, updated_at`

func (r *SeedPostgres) CreateSeed(ctx context.Context, seed entity.Seed) (*entity.Seed, error) {
	id := seed.ID
	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid seed ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO seeds (
			id, tenant_id, title, description, approval_likelihood,
			title_formal, description_formal, approval_likelihood_formal,
			tags, estimated_duration, estimated_participants
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+seedColumns,
		id, seed.TenantID, seed.Title, seed.Description, seed.ApprovalLikelihood,
		seed.TitleFormal, seed.DescriptionFormal, seed.ApprovalLikelihoodFormal,
		seed.Tags, seed.EstimatedDuration, seed.EstimatedParticipants,
	)

	created, err := scanSeed(row)
	if err != nil {
		return nil, fmt.Errorf("create seed: %w", err)
	}
	return created, nil
}

func (r *SeedPostgres) GetSeedByID(ctx context.Context, id string) (*entity.Seed, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid seed ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `SELECT `+seedColumns+` FROM seeds WHERE id = $1`, id)
	seed, err := scanSeed(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSeedNotFound
		}
		return nil, fmt.Errorf("get seed: %w", err)
	}
	return seed, nil
}

func (r *SeedPostgres) ListSeeds(ctx context.Context, tenantID string, savedOnly bool) ([]entity.Seed, error) {
	query := `SELECT ` + seedColumns + ` FROM seeds WHERE tenant_id = $1 AND NOT is_dismissed`
	if savedOnly {
		query += ` AND is_saved`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list seeds: %w", err)
	}
	defer rows.Close()

	var seeds []entity.Seed
	for rows.Next() {
		seed, err := scanSeed(rows)
		if err != nil {
			return nil, fmt.Errorf("scan seed: %w", err)
		}
		seeds = append(seeds, *seed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list seeds: %w", err)
	}
	return seeds, nil
}

func (r *SeedPostgres) UpdateSeedNarrative(ctx context.Context, id string, upd entity.TextGenSeedUpdate) (*entity.Seed, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid seed ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		UPDATE seeds SET
			title = $2,
			description = $3,
			approval_likelihood = $4,
			title_formal = COALESCE(NULLIF($5, ''), title_formal),
			description_formal = COALESCE(NULLIF($6, ''), description_formal),
			approval_likelihood_formal = CASE WHEN $7 > 0 THEN $7 ELSE approval_likelihood_formal END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+seedColumns,
		id, upd.Title, upd.Description, upd.ApprovalLikelihood,
		upd.TitleFormal, upd.DescriptionFormal, upd.ApprovalLikelihoodFormal,
	)

	seed, err := scanSeed(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSeedNotFound
		}
		return nil, fmt.Errorf("update seed narrative: %w", err)
	}
	return seed, nil
}

func (r *SeedPostgres) SetSeedSaved(ctx context.Context, id string, saved bool) (*entity.Seed, error) {
	return r.setFlag(ctx, id, "is_saved", saved)
}

func (r *SeedPostgres) SetSeedDismissed(ctx context.Context, id string, dismissed bool) (*entity.Seed, error) {
	return r.setFlag(ctx, id, "is_dismissed", dismissed)
}

func (r *SeedPostgres) setFlag(ctx context.Context, id, column string, value bool) (*entity.Seed, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid seed ID: %w", err)
	}

	row := r.db.QueryRow(ctx,
		`UPDATE seeds SET `+column+` = $2, updated_at = NOW() WHERE id = $1 RETURNING `+seedColumns,
		id, value,
	)
	seed, err := scanSeed(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSeedNotFound
		}
		return nil, fmt.Errorf("update seed %s: %w", column, err)
	}
	return seed, nil
}

func (r *SeedPostgres) DeleteSeed(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid seed ID: %w", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM seeds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete seed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrSeedNotFound
	}
	return nil
}
