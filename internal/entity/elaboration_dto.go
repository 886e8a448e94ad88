package entity

// StartElaborationRequest starts (or resumes) an elaboration session for a seed
type StartElaborationRequest struct {
	// ResumeMetadata, when present, is adopted verbatim so that a previously
	// interrupted session continues from its first unanswered slot
	ResumeMetadata *SeedMetadata `json:"resume_metadata,omitempty"`
}

// StartElaborationResponse carries the opening question of a session
type StartElaborationResponse struct {
	SessionID   string       `json:"session_id"`
	Question    string       `json:"question"`
	Suggestions []string     `json:"suggestions,omitempty"`
	Metadata    SeedMetadata `json:"metadata"`
}

// ProcessAnswerRequest submits one user message to the session
type ProcessAnswerRequest struct {
	Message string `json:"message"`
}

// ProcessAnswerResponse is the result of one conversation turn
type ProcessAnswerResponse struct {
	// Message is the conversational reply produced by the text-generation
	// collaborator; the structured fields below come from the engine alone
	Message          string           `json:"message"`
	Metadata         SeedMetadata     `json:"metadata"`
	Stage            ElaborationStage `json:"stage"`
	NextQuestion     *string          `json:"next_question,omitempty"`
	ValidationErrors []string         `json:"validation_errors,omitempty"`
	Suggestions      []string         `json:"suggestions,omitempty"`
	Complete         bool             `json:"complete"`
}

// EditMessageRequest replaces the content of a prior user turn
type EditMessageRequest struct {
	Content string `json:"content"`
}

// ElaborationDTO is the API view of a stored elaboration session
type ElaborationDTO struct {
	ID            string            `json:"id"`
	SeedID        string            `json:"seed_id"`
	Stage         ElaborationStage  `json:"stage"`
	Completeness  int               `json:"completeness"`
	MissingFields []string          `json:"missing_fields"`
	Metadata      SeedMetadata      `json:"metadata"`
	Transcript    []ElaborationTurn `json:"transcript"`
}

// SeedDTO is the API view of a seed
type SeedDTO struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	ApprovalLikelihood float64  `json:"approval_likelihood"`
	Tags               []string `json:"tags,omitempty"`
	IsSaved            bool     `json:"is_saved"`
	Completeness       int      `json:"completeness"`
}

// CreateSeedRequest registers a new seed idea
type CreateSeedRequest struct {
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	ApprovalLikelihood    float64  `json:"approval_likelihood"`
	Tags                  []string `json:"tags,omitempty"`
	EstimatedDuration     *int     `json:"estimated_duration,omitempty"`
	EstimatedParticipants *int     `json:"estimated_participants,omitempty"`
}

// ErrorResponse is the transport error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
