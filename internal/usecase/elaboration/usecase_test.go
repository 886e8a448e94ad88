package elaboration

import (
	"context"
	"errors"
	"testing"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	core "github.com/openhorizon/seed-backend/internal/elaboration"
	"github.com/openhorizon/seed-backend/internal/elaboration/extract"
	"github.com/openhorizon/seed-backend/internal/entity"
)

type fakeSeedRepo struct {
	seeds            map[string]*entity.Seed
	narrativeUpdates int
}

func newFakeSeedRepo(seeds ...*entity.Seed) *fakeSeedRepo {
	r := &fakeSeedRepo{seeds: make(map[string]*entity.Seed)}
	for _, s := range seeds {
		r.seeds[s.ID] = s
	}
	return r
}

func (r *fakeSeedRepo) CreateSeed(_ context.Context, seed entity.Seed) (*entity.Seed, error) {
	r.seeds[seed.ID] = &seed
	return &seed, nil
}

func (r *fakeSeedRepo) GetSeedByID(_ context.Context, id string) (*entity.Seed, error) {
	s, ok := r.seeds[id]
	if !ok {
		return nil, entity.ErrSeedNotFound
	}
	return s, nil
}

func (r *fakeSeedRepo) ListSeeds(_ context.Context, tenantID string, savedOnly bool) ([]entity.Seed, error) {
	var out []entity.Seed
	for _, s := range r.seeds {
		if s.TenantID != tenantID {
			continue
		}
		if savedOnly && !s.IsSaved {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSeedRepo) UpdateSeedNarrative(_ context.Context, id string, upd entity.TextGenSeedUpdate) (*entity.Seed, error) {
	s, ok := r.seeds[id]
	if !ok {
		return nil, entity.ErrSeedNotFound
	}
	r.narrativeUpdates++
	if upd.Title != "" {
		s.Title = upd.Title
	}
	if upd.Description != "" {
		s.Description = upd.Description
	}
	return s, nil
}

func (r *fakeSeedRepo) SetSeedSaved(_ context.Context, id string, saved bool) (*entity.Seed, error) {
	s, ok := r.seeds[id]
	if !ok {
		return nil, entity.ErrSeedNotFound
	}
	s.IsSaved = saved
	return s, nil
}

func (r *fakeSeedRepo) SetSeedDismissed(_ context.Context, id string, dismissed bool) (*entity.Seed, error) {
	s, ok := r.seeds[id]
	if !ok {
		return nil, entity.ErrSeedNotFound
	}
	s.IsDismissed = dismissed
	return s, nil
}

func (r *fakeSeedRepo) DeleteSeed(_ context.Context, id string) error {
	delete(r.seeds, id)
	return nil
}

type fakeElabRepo struct {
	stored map[string]*entity.Elaboration
	gets   int
}

func newFakeElabRepo() *fakeElabRepo {
	return &fakeElabRepo{stored: make(map[string]*entity.Elaboration)}
}

func (r *fakeElabRepo) UpsertElaboration(_ context.Context, elab entity.Elaboration) (*entity.Elaboration, error) {
	if elab.ID == "" {
		elab.ID = "elab-" + elab.SeedID
	}
	elab.UpdatedAt = time.Now().UTC()
	r.stored[elab.SeedID] = &elab
	return &elab, nil
}

func (r *fakeElabRepo) GetElaborationBySeedID(_ context.Context, seedID string) (*entity.Elaboration, error) {
	r.gets++
	e, ok := r.stored[seedID]
	if !ok {
		return nil, entity.ErrElaborationNotFound
	}
	return e, nil
}

func (r *fakeElabRepo) DeleteElaboration(_ context.Context, seedID string) error {
	delete(r.stored, seedID)
	return nil
}

type fakeTextGen struct {
	reply       string
	updatedSeed *entity.TextGenSeedUpdate
	summary     string
	fail        bool
}

func (f *fakeTextGen) Elaborate(_ context.Context, _ *entity.TextGenElaborateRequest) (*entity.TextGenElaborateResponse, error) {
	if f.fail {
		return nil, errors.New("service down")
	}
	return &entity.TextGenElaborateResponse{Message: f.reply, UpdatedSeed: f.updatedSeed}, nil
}

func (f *fakeTextGen) GenerateSummary(_ context.Context, _ *entity.TextGenSummaryRequest) (string, error) {
	if f.fail {
		return "", errors.New("service down")
	}
	return f.summary, nil
}

func testSeed() *entity.Seed {
	return &entity.Seed{
		ID:          "seed-1",
		TenantID:    "default",
		Title:       "Youth for climate",
		Description: "An exchange around climate activism",
	}
}

func newTestUsecase(t *testing.T, seedRepo *fakeSeedRepo, elabRepo *fakeElabRepo, tg TextGenConnector) *Usecase {
	t.Helper()
	engine := core.NewEngine(extract.Options{})
	cache := gocache.New(time.Minute, time.Minute)
	return NewUsecase(seedRepo, elabRepo, engine, tg, cache, zap.NewNop())
}

func TestStartElaboration_NewSession(t *testing.T) {
	seedRepo := newFakeSeedRepo(testSeed())
	elabRepo := newFakeElabRepo()
	uc := newTestUsecase(t, seedRepo, elabRepo, &fakeTextGen{reply: "ok"})

	resp, err := uc.StartElaboration(context.Background(), "seed-1", &entity.StartElaborationRequest{})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SessionID)
	assert.Contains(t, resp.Question, "How many participants")
	assert.NotEmpty(t, resp.Suggestions)

	stored, ok := elabRepo.stored["seed-1"]
	require.True(t, ok, "session must be persisted")
	assert.Len(t, stored.Transcript, 1)
	assert.Equal(t, entity.TurnRoleAssistant, stored.Transcript[0].Role)
}

func TestStartElaboration_UnknownSeed(t *testing.T) {
	uc := newTestUsecase(t, newFakeSeedRepo(), newFakeElabRepo(), &fakeTextGen{})

	_, err := uc.StartElaboration(context.Background(), "missing", &entity.StartElaborationRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrSeedNotFound)
}

func TestStartElaboration_DismissedSeed(t *testing.T) {
	seed := testSeed()
	seed.IsDismissed = true
	uc := newTestUsecase(t, newFakeSeedRepo(seed), newFakeElabRepo(), &fakeTextGen{})

	_, err := uc.StartElaboration(context.Background(), "seed-1", &entity.StartElaborationRequest{})
	assert.ErrorIs(t, err, entity.ErrSeedDismissed)
}

func TestStartElaboration_ResumesStoredSession(t *testing.T) {
	seedRepo := newFakeSeedRepo(testSeed())
	elabRepo := newFakeElabRepo()
	uc := newTestUsecase(t, seedRepo, elabRepo, &fakeTextGen{reply: "ok"})

	ctx := context.Background()
	_, err := uc.StartElaboration(ctx, "seed-1", &entity.StartElaborationRequest{})
	require.NoError(t, err)

	_, err = uc.ProcessAnswer(ctx, "seed-1", &entity.ProcessAnswerRequest{Message: "30 participants"})
	require.NoError(t, err)

	resp, err := uc.StartElaboration(ctx, "seed-1", &entity.StartElaborationRequest{})
	require.NoError(t, err)

	require.NotNil(t, resp.Metadata.ParticipantCount)
	assert.Equal(t, 30, *resp.Metadata.ParticipantCount)
	assert.NotContains(t, resp.Question, "How many participants")
}

func TestProcessAnswer_PersistsTurnAndMetadata(t *testing.T) {
	seedRepo := newFakeSeedRepo(testSeed())
	elabRepo := newFakeElabRepo()
	uc := newTestUsecase(t, seedRepo, elabRepo, &fakeTextGen{reply: "Great, noted!"})

	ctx := context.Background()
	_, err := uc.StartElaboration(ctx, "seed-1", &entity.StartElaborationRequest{})
	require.NoError(t, err)

	resp, err := uc.ProcessAnswer(ctx, "seed-1", &entity.ProcessAnswerRequest{Message: "30 participants"})
	require.NoError(t, err)

	assert.Equal(t, "Great, noted!", resp.Message)
	require.NotNil(t, resp.Metadata.ParticipantCount)
	assert.Equal(t, 30, *resp.Metadata.ParticipantCount)
	assert.Equal(t, entity.StageInProgress, resp.Stage)

	stored := elabRepo.stored["seed-1"]
	require.Len(t, stored.Transcript, 3) // opening, user, assistant
	assert.Equal(t, entity.TurnRoleUser, stored.Transcript[1].Role)
	assert.Equal(t, "30 participants", stored.Transcript[1].Content)
}

func TestProcessAnswer_TextGenFailureFallsBackToPrompt(t *testing.T) {
	seedRepo := newFakeSeedRepo(testSeed())
	elabRepo := newFakeElabRepo()
	uc := newTestUsecase(t, seedRepo, elabRepo, &fakeTextGen{fail: true})

	ctx := context.Background()
	_, err := uc.StartElaboration(ctx, "seed-1", &entity.StartElaborationRequest{})
	require.NoError(t, err)

	resp, err := uc.ProcessAnswer(ctx, "seed-1", &entity.ProcessAnswerRequest{Message: "30 participants"})
	require.NoError(t, err, "a collaborator failure must not fail the turn")
	assert.NotEmpty(t, resp.Message)
	require.NotNil(t, resp.Metadata.ParticipantCount)
	assert.Equal(t, 30, *resp.Metadata.ParticipantCount)
}

func TestProcessAnswer_AppliesNarrativeUpdate(t *testing.T) {
	seedRepo := newFakeSeedRepo(testSeed())
	elabRepo := newFakeElabRepo()
	tg := &fakeTextGen{
		reply: "ok",
		updatedSeed: &entity.TextGenSeedUpdate{
			Title: "Youth for climate action",
		},
	}
	uc := newTestUsecase(t, seedRepo, elabRepo, tg)

	ctx := context.Background()
	_, err := uc.StartElaboration(ctx, "seed-1", &entity.StartElaborationRequest{})
	require.NoError(t, err)

	_, err = uc.ProcessAnswer(ctx, "seed-1", &entity.ProcessAnswerRequest{Message: "30 participants"})
	require.NoError(t, err)

	assert.Equal(t, 1, seedRepo.narrativeUpdates)
	assert.Equal(t, "Youth for climate action", seedRepo.seeds["seed-1"].Title)
}

func TestEditMessage_ReplaysSession(t *testing.T) {
	seedRepo := newFakeSeedRepo(testSeed())
	elabRepo := newFakeElabRepo()
	uc := newTestUsecase(t, seedRepo, elabRepo, &fakeTextGen{reply: "ok"})

	ctx := context.Background()
	_, err := uc.StartElaboration(ctx, "seed-1", &entity.StartElaborationRequest{})
	require.NoError(t, err)

	_, err = uc.ProcessAnswer(ctx, "seed-1", &entity.ProcessAnswerRequest{Message: "30 participants"})
	require.NoError(t, err)

	resp, err := uc.EditMessage(ctx, "seed-1", 1, &entity.EditMessageRequest{Content: "40 participants"})
	require.NoError(t, err)

	require.NotNil(t, resp.Metadata.ParticipantCount)
	assert.Equal(t, 40, *resp.Metadata.ParticipantCount)

	stored := elabRepo.stored["seed-1"]
	assert.Equal(t, "40 participants", stored.Transcript[1].Content)
}

func TestEditMessage_RejectsAssistantTurn(t *testing.T) {
	seedRepo := newFakeSeedRepo(testSeed())
	elabRepo := newFakeElabRepo()
	uc := newTestUsecase(t, seedRepo, elabRepo, &fakeTextGen{reply: "ok"})

	ctx := context.Background()
	_, err := uc.StartElaboration(ctx, "seed-1", &entity.StartElaborationRequest{})
	require.NoError(t, err)

	_, err = uc.EditMessage(ctx, "seed-1", 0, &entity.EditMessageRequest{Content: "different"})
	assert.ErrorIs(t, err, entity.ErrTurnNotEditable)
}

func TestGetElaboration_DerivesStateFields(t *testing.T) {
	seedRepo := newFakeSeedRepo(testSeed())
	elabRepo := newFakeElabRepo()
	uc := newTestUsecase(t, seedRepo, elabRepo, &fakeTextGen{reply: "ok"})

	ctx := context.Background()
	_, err := uc.StartElaboration(ctx, "seed-1", &entity.StartElaborationRequest{})
	require.NoError(t, err)

	_, err = uc.ProcessAnswer(ctx, "seed-1", &entity.ProcessAnswerRequest{Message: "30 participants"})
	require.NoError(t, err)

	dto, err := uc.GetElaboration(ctx, "seed-1")
	require.NoError(t, err)

	assert.Equal(t, "seed-1", dto.SeedID)
	assert.Equal(t, entity.StageInProgress, dto.Stage)
	assert.Equal(t, 12, dto.Completeness)
	assert.Contains(t, dto.MissingFields, "budget")
	assert.NotContains(t, dto.MissingFields, "participantCount")
}

func TestGetElaboration_NotFound(t *testing.T) {
	uc := newTestUsecase(t, newFakeSeedRepo(testSeed()), newFakeElabRepo(), &fakeTextGen{})

	_, err := uc.GetElaboration(context.Background(), "seed-1")
	assert.ErrorIs(t, err, entity.ErrElaborationNotFound)
}

func TestGenerateProposal_RequiresCompleteMandatorySlots(t *testing.T) {
	seedRepo := newFakeSeedRepo(testSeed())
	elabRepo := newFakeElabRepo()
	uc := newTestUsecase(t, seedRepo, elabRepo, &fakeTextGen{reply: "ok", summary: "# Proposal"})

	ctx := context.Background()
	_, err := uc.StartElaboration(ctx, "seed-1", &entity.StartElaborationRequest{})
	require.NoError(t, err)

	_, err = uc.GenerateProposal(ctx, "seed-1")
	assert.ErrorIs(t, err, entity.ErrNoSummary)

	answers := []string{
		"30 participants",
		"400 euros per participant",
		"7 days",
		"We will meet in Barcelona, Spain",
		"Participants come from Germany, France and Italy",
	}
	for _, a := range answers {
		_, err = uc.ProcessAnswer(ctx, "seed-1", &entity.ProcessAnswerRequest{Message: a})
		require.NoError(t, err)
	}

	text, err := uc.GenerateProposal(ctx, "seed-1")
	require.NoError(t, err)
	assert.Equal(t, "# Proposal", text)
}

func TestLoadElaboration_UsesCache(t *testing.T) {
	seedRepo := newFakeSeedRepo(testSeed())
	elabRepo := newFakeElabRepo()
	uc := newTestUsecase(t, seedRepo, elabRepo, &fakeTextGen{reply: "ok"})

	ctx := context.Background()
	_, err := uc.StartElaboration(ctx, "seed-1", &entity.StartElaborationRequest{})
	require.NoError(t, err)

	_, err = uc.GetElaboration(ctx, "seed-1")
	require.NoError(t, err)
	_, err = uc.GetElaboration(ctx, "seed-1")
	require.NoError(t, err)

	assert.Zero(t, elabRepo.gets, "reads after the initial upsert must hit the cache")
}
