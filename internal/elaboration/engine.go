// Package elaboration implements the guided conversation that turns a vague
// project seed into a fully specified proposal. The engine is pure: every
// call computes its result from the message and metadata it is given, holds
// no durable state and performs no I/O, so callers own persistence and may
// replay any turn deterministically.
package elaboration

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openhorizon/seed-backend/internal/elaboration/countries"
	"github.com/openhorizon/seed-backend/internal/elaboration/extract"
	"github.com/openhorizon/seed-backend/internal/entity"
)

const visaEstimatedCost = 80.0

// Engine runs the elaboration pipeline. Safe for concurrent use; sessions
// share no state.
type Engine struct {
	extractor *extract.Extractor
}

func NewEngine(opts extract.Options) *Engine {
	return &Engine{extractor: extract.New(opts)}
}

// StartResult is the initial state of a session.
type StartResult struct {
	Metadata   entity.SeedMetadata
	Question   *Question
	Transcript []entity.ElaborationTurn
}

// Result is the outcome of one processed answer.
type Result struct {
	Metadata entity.SeedMetadata
	// Applied holds the post-merge values of the slots this turn changed,
	// nil when nothing was accepted. Recorded on the transcript turn so an
	// edit can replay the session without re-parsing.
	Applied          *entity.SeedMetadata
	NextQuestion     *Question
	ValidationErrors []string
	Suggestions      []string
	Stage            entity.ElaborationStage
	Complete         bool
}

// Start opens a session. A resume metadata, when given, is adopted verbatim
// and the first question targets the first slot it leaves unfilled, so a
// resumed session never re-asks what it already knows.
func (e *Engine) Start(seed entity.Seed, resume *entity.SeedMetadata) StartResult {
	var meta entity.SeedMetadata
	if resume != nil {
		meta = *resume
	}
	if meta.SessionID == "" {
		meta.SessionID = uuid.NewString()
	}
	e.finalize(&meta)

	question := NextQuestion(meta)
	turn := entity.ElaborationTurn{
		Role:      entity.TurnRoleAssistant,
		Content:   openingMessage(seed, question),
		Timestamp: time.Now().UTC(),
	}
	// snapshot the adopted state so transcript replay starts from it
	snapshot := meta
	turn.AppliedChanges = &snapshot

	return StartResult{
		Metadata:   meta,
		Question:   question,
		Transcript: []entity.ElaborationTurn{turn},
	}
}

// ProcessAnswer runs extraction, validation and merge over one user message.
// Unparseable input is not an error: the metadata is returned unchanged with
// example answers for the pending question.
func (e *Engine) ProcessAnswer(meta entity.SeedMetadata, message string) Result {
	pending := NextQuestion(meta)

	cand := e.extractor.Extract(message, meta)
	e.applyQuestionHint(&cand, pending, message)

	cand, validationErrs := validateCandidates(cand, meta)
	merged, applied := mergeCandidates(meta, cand)
	e.finalize(&merged)

	next := NextQuestion(merged)

	var suggestions []string
	if applied == nil && len(validationErrs) == 0 && pending != nil {
		suggestions = exampleAnswers(*pending)
	}

	return Result{
		Metadata:         merged,
		Applied:          applied,
		NextQuestion:     next,
		ValidationErrors: validationErrs,
		Suggestions:      suggestions,
		Stage:            StageFor(merged),
		Complete:         RequiredComplete(merged),
	}
}

// EditMessage truncates the transcript at a previously submitted user turn,
// replays the accepted events before it and processes the new content as if
// it had been submitted originally. Everything after the edited turn is
// discarded.
func (e *Engine) EditMessage(transcript []entity.ElaborationTurn, index int, content string) ([]entity.ElaborationTurn, Result, error) {
	if index < 0 || index >= len(transcript) {
		return nil, Result{}, entity.ErrTurnNotFound
	}
	if transcript[index].Role != entity.TurnRoleUser {
		return nil, Result{}, entity.ErrTurnNotEditable
	}

	var meta entity.SeedMetadata
	for _, turn := range transcript[:index] {
		applyEvent(&meta, turn.AppliedChanges)
	}
	e.finalize(&meta)

	res := e.ProcessAnswer(meta, content)

	rebuilt := make([]entity.ElaborationTurn, index, index+2)
	copy(rebuilt, transcript[:index])
	now := time.Now().UTC()
	rebuilt = append(rebuilt, entity.ElaborationTurn{
		Role:           entity.TurnRoleUser,
		Content:        content,
		Timestamp:      now,
		AppliedChanges: res.Applied,
	})
	rebuilt = append(rebuilt, entity.ElaborationTurn{
		Role:      entity.TurnRoleAssistant,
		Content:   PromptFor(res),
		Timestamp: now,
	})

	return rebuilt, res, nil
}

// AppendTurn records a processed answer on the transcript together with the
// assistant's follow-up prompt.
func AppendTurn(transcript []entity.ElaborationTurn, message string, res Result, reply string) []entity.ElaborationTurn {
	now := time.Now().UTC()
	transcript = append(transcript, entity.ElaborationTurn{
		Role:           entity.TurnRoleUser,
		Content:        message,
		Timestamp:      now,
		AppliedChanges: res.Applied,
	})
	if reply == "" {
		reply = PromptFor(res)
	}
	return append(transcript, entity.ElaborationTurn{
		Role:      entity.TurnRoleAssistant,
		Content:   reply,
		Timestamp: now,
	})
}

// PromptFor renders the assistant's default next message for a result.
func PromptFor(res Result) string {
	var b strings.Builder
	for _, verr := range res.ValidationErrors {
		b.WriteString(verr)
		b.WriteString(" ")
	}
	switch {
	case res.NextQuestion != nil:
		b.WriteString(res.NextQuestion.Text)
	case res.Complete:
		b.WriteString("That covers everything. Your project proposal is ready to review.")
	}
	return strings.TrimSpace(b.String())
}

// applyQuestionHint resolves answers that only make sense in the context of
// the pending question, like a bare country name answering the destination
// or participant-countries prompt.
func (e *Engine) applyQuestionHint(cand *extract.Candidates, pending *Question, message string) {
	if pending == nil {
		return
	}
	lookup := e.extractor.Countries()

	switch pending.Slot {
	case SlotCountries:
		if len(cand.ParticipantCountries) == 0 && cand.Destination == nil {
			cand.ParticipantCountries = lookup.ScanList(message)
		}
	case SlotDestination:
		if cand.Destination == nil {
			if code, ok := lookup.Resolve(strings.TrimSpace(message)); ok {
				cand.Destination = &entity.Destination{Country: code}
			}
		}
	}
}

// mergeCandidates folds validated candidates into the metadata. Scalars
// overwrite; list slots accumulate unless the message was a correction, in
// which case they are replaced. The returned event holds the post-merge
// values of every touched slot.
func mergeCandidates(meta entity.SeedMetadata, c extract.Candidates) (entity.SeedMetadata, *entity.SeedMetadata) {
	applied := &entity.SeedMetadata{}
	touched := false

	if c.ParticipantCount != nil {
		meta.ParticipantCount = c.ParticipantCount
		applied.ParticipantCount = c.ParticipantCount
		touched = true
	}

	budgetTouched := false
	if c.BudgetPerParticipant != nil {
		meta.BudgetPerParticipant = c.BudgetPerParticipant
		budgetTouched = true
	}
	if c.TotalBudget != nil {
		meta.TotalBudget = c.TotalBudget
		budgetTouched = true
	}
	countArrived := c.ParticipantCount != nil && (meta.BudgetPerParticipant != nil || meta.TotalBudget != nil)
	if budgetTouched || countArrived {
		reconcileBudget(&meta, c.TotalBudget != nil && c.BudgetPerParticipant == nil)
		applied.BudgetPerParticipant = meta.BudgetPerParticipant
		applied.TotalBudget = meta.TotalBudget
		touched = true
	}

	if c.Duration != nil {
		meta.Duration = c.Duration
		applied.Duration = c.Duration
		touched = true
	}
	if c.StartDate != nil {
		meta.StartDate = c.StartDate
		applied.StartDate = c.StartDate
		touched = true
	}
	if c.EndDate != nil {
		meta.EndDate = c.EndDate
		applied.EndDate = c.EndDate
		touched = true
	}

	if c.Destination != nil {
		meta.Destination = c.Destination
		applied.Destination = c.Destination
		touched = true
	}

	if len(c.ParticipantCountries) > 0 {
		if c.Correction {
			meta.ParticipantCountries = c.ParticipantCountries
		} else {
			meta.ParticipantCountries = unionStrings(meta.ParticipantCountries, c.ParticipantCountries)
		}
		applied.ParticipantCountries = meta.ParticipantCountries
		touched = true
	}

	if len(c.Activities) > 0 {
		if c.Correction {
			meta.Activities = c.Activities
		} else {
			meta.Activities = unionActivities(meta.Activities, c.Activities)
		}
		applied.Activities = meta.Activities
		touched = true
	}

	if len(c.Priorities) > 0 {
		if c.Correction {
			meta.ErasmusPriorities = c.Priorities
		} else {
			meta.ErasmusPriorities = unionStrings(meta.ErasmusPriorities, c.Priorities)
		}
		applied.ErasmusPriorities = meta.ErasmusPriorities
		touched = true
	}

	if !touched {
		return meta, nil
	}
	return meta, applied
}

// reconcileBudget keeps totalBudget equal to count x per-participant. When
// the turn stated an explicit total the total is authoritative and the
// per-participant amount is derived instead.
func reconcileBudget(meta *entity.SeedMetadata, totalAuthoritative bool) {
	count := meta.ParticipantCount
	if count == nil || *count == 0 {
		return
	}
	switch {
	case totalAuthoritative && meta.TotalBudget != nil:
		per := math.Round(*meta.TotalBudget / float64(*count))
		meta.BudgetPerParticipant = &per
	case meta.BudgetPerParticipant != nil:
		total := *meta.BudgetPerParticipant * float64(*count)
		meta.TotalBudget = &total
	case meta.TotalBudget != nil:
		per := math.Round(*meta.TotalBudget / float64(*count))
		meta.BudgetPerParticipant = &per
	}
}

// applyEvent replays one recorded turn event onto the metadata. Events carry
// post-merge slot values, so replay is plain assignment.
func applyEvent(meta *entity.SeedMetadata, ev *entity.SeedMetadata) {
	if ev == nil {
		return
	}
	if ev.SessionID != "" {
		meta.SessionID = ev.SessionID
	}
	if ev.ParticipantCount != nil {
		meta.ParticipantCount = ev.ParticipantCount
	}
	if ev.BudgetPerParticipant != nil {
		meta.BudgetPerParticipant = ev.BudgetPerParticipant
	}
	if ev.TotalBudget != nil {
		meta.TotalBudget = ev.TotalBudget
	}
	if ev.Duration != nil {
		meta.Duration = ev.Duration
	}
	if ev.StartDate != nil {
		meta.StartDate = ev.StartDate
	}
	if ev.EndDate != nil {
		meta.EndDate = ev.EndDate
	}
	if ev.Destination != nil {
		meta.Destination = ev.Destination
	}
	if ev.AgeRange != nil {
		meta.AgeRange = ev.AgeRange
	}
	if len(ev.ParticipantCountries) > 0 {
		meta.ParticipantCountries = ev.ParticipantCountries
	}
	if len(ev.Activities) > 0 {
		meta.Activities = ev.Activities
	}
	if len(ev.ErasmusPriorities) > 0 {
		meta.ErasmusPriorities = ev.ErasmusPriorities
	}
}

// finalize recomputes every derived field: visa requirements, completeness,
// the outstanding slot list and the resume index.
func (e *Engine) finalize(meta *entity.SeedMetadata) {
	deriveRequirements(meta)
	meta.Completeness = CalculateCompleteness(*meta)
	meta.MissingFields = IdentifyMissingFields(*meta)
	meta.CurrentQuestionIndex = nextQuestionIndex(*meta)
}

func nextQuestionIndex(meta entity.SeedMetadata) int {
	for i, q := range questionFlow {
		if !slotFilled(q.Slot, meta) {
			return i
		}
	}
	return len(questionFlow)
}

// deriveRequirements fills visa needs once destination and participant
// countries are both known. Travel inside the EU needs no visa; everything
// else gets a rough per-country estimate.
func deriveRequirements(meta *entity.SeedMetadata) {
	if meta.Destination == nil || len(meta.ParticipantCountries) == 0 {
		return
	}

	req := meta.Requirements
	if req == nil {
		req = &entity.Requirements{Insurance: true, Permits: []string{}}
	}

	destEU := countries.IsEU(meta.Destination.Country)
	visas := make([]entity.VisaRequirement, 0, len(meta.ParticipantCountries))
	for _, code := range meta.ParticipantCountries {
		needed := !(destEU && countries.IsEU(code))
		visa := entity.VisaRequirement{Country: code, Needed: needed}
		if needed {
			cost := visaEstimatedCost
			visa.EstimatedCost = &cost
		}
		visas = append(visas, visa)
	}
	req.Visas = visas
	meta.Requirements = req
}

func exampleAnswers(q Question) []string {
	if len(q.QuickReplies) > 0 {
		return q.QuickReplies
	}
	if q.FollowUp != "" {
		return []string{q.FollowUp}
	}
	return nil
}

func openingMessage(seed entity.Seed, q *Question) string {
	var b strings.Builder
	b.WriteString("Let's turn \"")
	b.WriteString(seed.Title)
	b.WriteString("\" into a full proposal. ")
	if q != nil {
		b.WriteString(q.Text)
	} else {
		b.WriteString("Everything is already filled in.")
	}
	return b.String()
}

func unionStrings(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing))
	out := append([]string{}, existing...)
	for _, s := range existing {
		seen[strings.ToLower(s)] = true
	}
	for _, s := range incoming {
		if !seen[strings.ToLower(s)] {
			seen[strings.ToLower(s)] = true
			out = append(out, s)
		}
	}
	return out
}

func unionActivities(existing, incoming []entity.Activity) []entity.Activity {
	seen := make(map[string]bool, len(existing))
	out := append([]entity.Activity{}, existing...)
	for _, a := range existing {
		seen[strings.ToLower(a.Name)] = true
	}
	for _, a := range incoming {
		if !seen[strings.ToLower(a.Name)] {
			seen[strings.ToLower(a.Name)] = true
			out = append(out, a)
		}
	}
	return out
}
