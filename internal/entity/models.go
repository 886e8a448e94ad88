package entity

import (
	"time"
)

// ElaborationStage represents the derived state of an elaboration session.
// It is never stored: it is always recomputed from which metadata slots are
// filled, so a persisted flag can not drift out of sync with the data.
type ElaborationStage string

const (
	StageNotStarted       ElaborationStage = "NOT_STARTED"
	StageInProgress       ElaborationStage = "IN_PROGRESS"
	StageReadyForOptional ElaborationStage = "READY_FOR_OPTIONAL"
	StageComplete         ElaborationStage = "COMPLETE"
)

// TurnRole identifies who produced a transcript turn
type TurnRole string

const (
	TurnRoleUser      TurnRole = "user"
	TurnRoleAssistant TurnRole = "assistant"
)

// Seed is an early-stage project idea prior to full elaboration.
type Seed struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// ApprovalLikelihood is the generator's 0..1 estimate of funding approval
	ApprovalLikelihood float64 `json:"approval_likelihood"`

	// Formal variants are the application-ready renderings of the same idea
	TitleFormal              string  `json:"title_formal,omitempty"`
	DescriptionFormal        string  `json:"description_formal,omitempty"`
	ApprovalLikelihoodFormal float64 `json:"approval_likelihood_formal,omitempty"`

	Tags                  []string `json:"tags,omitempty"`
	EstimatedDuration     *int     `json:"estimated_duration,omitempty"` // days
	EstimatedParticipants *int     `json:"estimated_participants,omitempty"`

	IsSaved     bool      `json:"is_saved"`
	IsDismissed bool      `json:"is_dismissed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Destination describes where the exchange takes place
type Destination struct {
	Country       string `json:"country"` // ISO 3166-1 alpha-2
	City          string `json:"city"`
	Venue         string `json:"venue,omitempty"`
	Accessibility string `json:"accessibility,omitempty"`
}

// Activity is one planned activity or workshop
type Activity struct {
	Name             string   `json:"name"`
	Duration         string   `json:"duration,omitempty"` // e.g. "2 days", "4 hours"
	Budget           *float64 `json:"budget,omitempty"`
	LearningOutcomes []string `json:"learning_outcomes,omitempty"`
}

// AgeRange bounds the participant ages
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// VisaRequirement is the derived visa need for one participant country
type VisaRequirement struct {
	Country       string   `json:"country"`
	Needed        bool     `json:"needed"`
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
}

// Requirements groups logistics derived from destination and countries
type Requirements struct {
	Visas     []VisaRequirement `json:"visas"`
	Insurance bool              `json:"insurance"`
	Permits   []string          `json:"permits"`
}

// SeedMetadata is the accumulating structured record for one elaboration
// session. All slots are optional until filled; Completeness is always a
// derived value.
type SeedMetadata struct {
	ParticipantCount     *int          `json:"participant_count,omitempty"` // 16-60
	ParticipantCountries []string      `json:"participant_countries,omitempty"`
	AgeRange             *AgeRange     `json:"age_range,omitempty"`
	Duration             *int          `json:"duration,omitempty"` // days
	StartDate            *time.Time    `json:"start_date,omitempty"`
	EndDate              *time.Time    `json:"end_date,omitempty"`
	TotalBudget          *float64      `json:"total_budget,omitempty"`           // EUR
	BudgetPerParticipant *float64      `json:"budget_per_participant,omitempty"` // EUR
	Destination          *Destination  `json:"destination,omitempty"`
	Requirements         *Requirements `json:"requirements,omitempty"`
	Activities           []Activity    `json:"activities,omitempty"`
	ErasmusPriorities    []string      `json:"erasmus_priorities,omitempty"`

	Completeness  int      `json:"completeness"` // 0-100, derived
	MissingFields []string `json:"missing_fields,omitempty"`

	SessionID            string `json:"session_id,omitempty"`
	CurrentQuestionIndex int    `json:"current_question_index,omitempty"`
}

// ElaborationTurn is one exchange in the conversation transcript
type ElaborationTurn struct {
	Role      TurnRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	// AppliedChanges records the slot values accepted from this turn,
	// allowing replay when an earlier turn is edited
	AppliedChanges *SeedMetadata `json:"applied_changes,omitempty"`
}

// Elaboration couples a seed with its conversation transcript and metadata
type Elaboration struct {
	ID         string            `json:"id"`
	SeedID     string            `json:"seed_id"`
	Transcript []ElaborationTurn `json:"transcript"`
	Metadata   SeedMetadata      `json:"metadata"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// ExportFormat selects the proposal export rendering
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "md"
	FormatPDF      ExportFormat = "pdf"
	FormatDOCX     ExportFormat = "docx"
)

func (f ExportFormat) Validate() error {
	switch f {
	case FormatMarkdown, FormatPDF, FormatDOCX:
		return nil
	default:
		return ErrInvalidParameter
	}
}
