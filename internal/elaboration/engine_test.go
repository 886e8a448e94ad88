package elaboration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhorizon/seed-backend/internal/elaboration/extract"
	"github.com/openhorizon/seed-backend/internal/entity"
)

func extractOptions() extract.Options { return extract.Options{} }

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func testSeed() entity.Seed {
	return entity.Seed{ID: "seed-1", Title: "Digital skills exchange"}
}

func requiredOnlyMetadata() entity.SeedMetadata {
	return entity.SeedMetadata{
		ParticipantCount:     intPtr(30),
		BudgetPerParticipant: floatPtr(400),
		TotalBudget:          floatPtr(12000),
		Duration:             intPtr(7),
		Destination:          &entity.Destination{Country: "ES", City: "Barcelona"},
		ParticipantCountries: []string{"DE", "FR"},
	}
}

func fullyFilledMetadata() entity.SeedMetadata {
	m := requiredOnlyMetadata()
	m.Activities = []entity.Activity{{Name: "media workshops"}}
	m.ErasmusPriorities = []string{"Digital transformation"}
	return m
}

func TestCompletenessEmptyIsZero(t *testing.T) {
	assert.Equal(t, 0, CalculateCompleteness(entity.SeedMetadata{}))
}

func TestCompletenessRequiredOnly(t *testing.T) {
	got := CalculateCompleteness(requiredOnlyMetadata())
	assert.GreaterOrEqual(t, got, 60)
}

func TestCompletenessFullyFilled(t *testing.T) {
	got := CalculateCompleteness(fullyFilledMetadata())
	assert.GreaterOrEqual(t, got, 90)
}

func TestCompletenessRequiredBeatsOptional(t *testing.T) {
	optionalOnly := entity.SeedMetadata{
		Activities:        []entity.Activity{{Name: "hiking"}},
		ErasmusPriorities: []string{"Inclusion and diversity"},
	}
	assert.Less(t, CalculateCompleteness(optionalOnly), CalculateCompleteness(requiredOnlyMetadata()))
}

func TestCompletenessBudgetIsOneFact(t *testing.T) {
	perOnly := entity.SeedMetadata{BudgetPerParticipant: floatPtr(400)}
	bothForms := entity.SeedMetadata{BudgetPerParticipant: floatPtr(400), TotalBudget: floatPtr(12000)}
	assert.Equal(t, CalculateCompleteness(perOnly), CalculateCompleteness(bothForms))
}

func TestStageDerivation(t *testing.T) {
	assert.Equal(t, entity.StageNotStarted, StageFor(entity.SeedMetadata{}))
	assert.Equal(t, entity.StageInProgress, StageFor(entity.SeedMetadata{ParticipantCount: intPtr(30)}))
	assert.Equal(t, entity.StageReadyForOptional, StageFor(requiredOnlyMetadata()))
	assert.Equal(t, entity.StageComplete, StageFor(fullyFilledMetadata()))
}

func TestIdentifyMissingFieldsOrder(t *testing.T) {
	missing := IdentifyMissingFields(entity.SeedMetadata{ParticipantCount: intPtr(30)})
	assert.Equal(t, []string{"budget", "duration", "destination", "participantCountries", "activities", "erasmusPriorities"}, missing)

	assert.Empty(t, IdentifyMissingFields(fullyFilledMetadata()))
}

func TestStartEmptySessionAsksParticipants(t *testing.T) {
	e := NewEngine(extractOptions())

	res := e.Start(testSeed(), nil)
	require.NotNil(t, res.Question)
	assert.Equal(t, SlotParticipantCount, res.Question.Slot)
	assert.NotEmpty(t, res.Metadata.SessionID)
	assert.Equal(t, 0, res.Metadata.Completeness)
	require.Len(t, res.Transcript, 1)
	assert.Equal(t, entity.TurnRoleAssistant, res.Transcript[0].Role)
	assert.Contains(t, res.Transcript[0].Content, "Digital skills exchange")
}

func TestStartResumeNeverReasksFilledSlots(t *testing.T) {
	e := NewEngine(extractOptions())

	resume := entity.SeedMetadata{
		ParticipantCount:     intPtr(30),
		BudgetPerParticipant: floatPtr(400),
		Duration:             intPtr(7),
		SessionID:            "prior-session",
	}
	res := e.Start(testSeed(), &resume)
	require.NotNil(t, res.Question)
	assert.Equal(t, SlotDestination, res.Question.Slot)
	assert.Equal(t, "prior-session", res.Metadata.SessionID)
	// the resumed state is snapshotted for transcript replay
	require.NotNil(t, res.Transcript[0].AppliedChanges)
	assert.Equal(t, 30, *res.Transcript[0].AppliedChanges.ParticipantCount)
}

func TestProcessAnswerMultiSlotMessage(t *testing.T) {
	e := NewEngine(extractOptions())

	res := e.ProcessAnswer(entity.SeedMetadata{}, "30 participants from Germany, France, and Spain")
	require.NotNil(t, res.Metadata.ParticipantCount)
	assert.Equal(t, 30, *res.Metadata.ParticipantCount)
	assert.Equal(t, []string{"DE", "FR", "ES"}, res.Metadata.ParticipantCountries)
	require.NotNil(t, res.NextQuestion)
	assert.Contains(t, res.NextQuestion.Text, "budget")
	assert.Empty(t, res.ValidationErrors)
	assert.Equal(t, entity.StageInProgress, res.Stage)
}

func TestProcessAnswerRejectsOutOfBoundsCount(t *testing.T) {
	e := NewEngine(extractOptions())

	res := e.ProcessAnswer(entity.SeedMetadata{}, "10 participants")
	assert.Nil(t, res.Metadata.ParticipantCount)
	require.NotEmpty(t, res.ValidationErrors)
	assert.Contains(t, res.ValidationErrors[0], "16")
	// rejecting a value does not advance the flow
	require.NotNil(t, res.NextQuestion)
	assert.Equal(t, SlotParticipantCount, res.NextQuestion.Slot)
}

func TestProcessAnswerDerivesTotalBudget(t *testing.T) {
	e := NewEngine(extractOptions())

	meta := entity.SeedMetadata{ParticipantCount: intPtr(20)}
	res := e.ProcessAnswer(meta, "€400 per participant")
	require.NotNil(t, res.Metadata.BudgetPerParticipant)
	assert.InDelta(t, 400, *res.Metadata.BudgetPerParticipant, 0.01)
	require.NotNil(t, res.Metadata.TotalBudget)
	assert.InDelta(t, 8000, *res.Metadata.TotalBudget, 0.01)
	assert.Empty(t, res.ValidationErrors)
}

func TestProcessAnswerRejectsSubFloorBudget(t *testing.T) {
	e := NewEngine(extractOptions())

	meta := entity.SeedMetadata{ParticipantCount: intPtr(20)}
	res := e.ProcessAnswer(meta, "€100 per participant")
	assert.Nil(t, res.Metadata.BudgetPerParticipant)
	assert.Nil(t, res.Metadata.TotalBudget)
	require.NotEmpty(t, res.ValidationErrors)
	assert.Contains(t, res.ValidationErrors[0], "5000")
}

func TestProcessAnswerCorrectionOverwrites(t *testing.T) {
	e := NewEngine(extractOptions())

	first := e.ProcessAnswer(entity.SeedMetadata{}, "25 participants")
	require.NotNil(t, first.Metadata.ParticipantCount)
	assert.Equal(t, 25, *first.Metadata.ParticipantCount)

	second := e.ProcessAnswer(first.Metadata, "Actually, make that 30 participants")
	require.NotNil(t, second.Metadata.ParticipantCount)
	assert.Equal(t, 30, *second.Metadata.ParticipantCount)
}

func TestProcessAnswerDestination(t *testing.T) {
	e := NewEngine(extractOptions())

	res := e.ProcessAnswer(entity.SeedMetadata{}, "Barcelona, Spain")
	require.NotNil(t, res.Metadata.Destination)
	assert.Equal(t, "ES", res.Metadata.Destination.Country)
	assert.Contains(t, res.Metadata.Destination.City, "Barcelona")
}

func TestProcessAnswerIdempotent(t *testing.T) {
	e := NewEngine(extractOptions())

	meta := entity.SeedMetadata{ParticipantCount: intPtr(20)}
	a := e.ProcessAnswer(meta, "€400 per participant")
	b := e.ProcessAnswer(meta, "€400 per participant")
	assert.Equal(t, a.Metadata, b.Metadata)
	assert.Equal(t, a.ValidationErrors, b.ValidationErrors)
	assert.Equal(t, a.Applied, b.Applied)
}

func TestProcessAnswerAmbiguousYieldsSuggestions(t *testing.T) {
	e := NewEngine(extractOptions())

	res := e.ProcessAnswer(entity.SeedMetadata{}, "I'm not sure yet")
	assert.Nil(t, res.Applied)
	assert.Empty(t, res.ValidationErrors)
	assert.NotEmpty(t, res.Suggestions)
	assert.Equal(t, entity.SeedMetadata{}.ParticipantCount, res.Metadata.ParticipantCount)
}

func TestProcessAnswerCountryOnlyAnswerForCountriesQuestion(t *testing.T) {
	e := NewEngine(extractOptions())

	meta := requiredOnlyMetadata()
	meta.ParticipantCountries = nil
	// the pending question is the participant-countries slot, so a lone
	// country name is read as an origin country
	res := e.ProcessAnswer(meta, "Poland")
	assert.Equal(t, []string{"PL"}, res.Metadata.ParticipantCountries)
}

func TestProcessAnswerCountryOnlyAnswerForDestinationQuestion(t *testing.T) {
	e := NewEngine(extractOptions())

	meta := requiredOnlyMetadata()
	meta.Destination = nil
	res := e.ProcessAnswer(meta, "Portugal")
	require.NotNil(t, res.Metadata.Destination)
	assert.Equal(t, "PT", res.Metadata.Destination.Country)
}

func TestProcessAnswerAccumulatesCountries(t *testing.T) {
	e := NewEngine(extractOptions())

	meta := entity.SeedMetadata{ParticipantCountries: []string{"DE"}}
	res := e.ProcessAnswer(meta, "also participants from France and Italy")
	assert.Equal(t, []string{"DE", "FR", "IT"}, res.Metadata.ParticipantCountries)
}

func TestVisaRequirementsDerived(t *testing.T) {
	e := NewEngine(extractOptions())

	meta := entity.SeedMetadata{
		Destination:          &entity.Destination{Country: "ES", City: "Barcelona"},
		ParticipantCountries: []string{"DE"},
	}
	res := e.ProcessAnswer(meta, "participants also come from Turkey")
	require.NotNil(t, res.Metadata.Requirements)
	require.Len(t, res.Metadata.Requirements.Visas, 2)

	byCountry := map[string]entity.VisaRequirement{}
	for _, v := range res.Metadata.Requirements.Visas {
		byCountry[v.Country] = v
	}
	assert.False(t, byCountry["DE"].Needed)
	require.True(t, byCountry["TR"].Needed)
	require.NotNil(t, byCountry["TR"].EstimatedCost)
	assert.InDelta(t, 80, *byCountry["TR"].EstimatedCost, 0.01)
}

func TestCompletenessAlwaysDerived(t *testing.T) {
	e := NewEngine(extractOptions())

	meta := entity.SeedMetadata{Completeness: 95}
	res := e.ProcessAnswer(meta, "30 participants")
	assert.Equal(t, CalculateCompleteness(res.Metadata), res.Metadata.Completeness)
	assert.Equal(t, 12, res.Metadata.Completeness)
}

func TestEditMessageReplaysFromEditPoint(t *testing.T) {
	e := NewEngine(extractOptions())

	start := e.Start(testSeed(), nil)
	transcript := start.Transcript
	meta := start.Metadata

	first := e.ProcessAnswer(meta, "25 participants")
	transcript = AppendTurn(transcript, "25 participants", first, "")
	second := e.ProcessAnswer(first.Metadata, "€400 per participant")
	transcript = AppendTurn(transcript, "€400 per participant", second, "")

	// the user turn with the participant count sits at index 1
	rebuilt, res, err := e.EditMessage(transcript, 1, "Actually 40 participants")
	require.NoError(t, err)
	require.NotNil(t, res.Metadata.ParticipantCount)
	assert.Equal(t, 40, *res.Metadata.ParticipantCount)
	// the superseded budget turn is discarded
	assert.Nil(t, res.Metadata.BudgetPerParticipant)
	assert.Len(t, rebuilt, 3)
	assert.Equal(t, "Actually 40 participants", rebuilt[1].Content)
}

func TestEditMessageRejectsAssistantTurn(t *testing.T) {
	e := NewEngine(extractOptions())

	start := e.Start(testSeed(), nil)
	_, _, err := e.EditMessage(start.Transcript, 0, "new text")
	assert.ErrorIs(t, err, entity.ErrTurnNotEditable)

	_, _, err = e.EditMessage(start.Transcript, 5, "new text")
	assert.ErrorIs(t, err, entity.ErrTurnNotFound)
}

func TestPromptForCompleteSession(t *testing.T) {
	prompt := PromptFor(Result{Complete: true})
	assert.Contains(t, prompt, "ready")
}

func TestProcessAnswerActivitiesKeepExchangeDuration(t *testing.T) {
	e := NewEngine(extractOptions())

	meta := entity.SeedMetadata{Duration: intPtr(7)}
	res := e.ProcessAnswer(meta, "We will include media workshops (2 days) and city tours")

	require.NotNil(t, res.Metadata.Duration)
	assert.Equal(t, 7, *res.Metadata.Duration)
	require.NotEmpty(t, res.Metadata.Activities)
	assert.Equal(t, "media workshops", res.Metadata.Activities[0].Name)
	assert.Equal(t, "2 days", res.Metadata.Activities[0].Duration)
	assert.Empty(t, res.ValidationErrors)
}

func TestProcessAnswerAcceptsOwnQuickReplies(t *testing.T) {
	e := NewEngine(extractOptions())

	// walk the flow in order so each question's replies arrive while that
	// question is the pending one, exactly as a tapped button would
	meta := entity.SeedMetadata{}
	for _, q := range Questions() {
		for _, reply := range q.QuickReplies {
			res := e.ProcessAnswer(meta, reply)
			assert.Empty(t, res.ValidationErrors, "%s: %q", q.Slot, reply)
			assert.True(t, slotFilled(q.Slot, res.Metadata), "%s: %q", q.Slot, reply)
		}
		if len(q.QuickReplies) > 0 {
			meta = e.ProcessAnswer(meta, q.QuickReplies[0]).Metadata
		}
	}
}
