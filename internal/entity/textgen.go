package entity

// TextGenElaborateRequest asks the text-generation service for a
// conversational reply to the user's latest message. The engine never parses
// the reply; it extracts its own structured slots from the raw user message.
type TextGenElaborateRequest struct {
	SeedTitle       string            `json:"seed_title"`
	SeedDescription string            `json:"seed_description"`
	History         []ElaborationTurn `json:"history"`
	UserMessage     string            `json:"user_message"`
	CurrentQuestion *string           `json:"current_question,omitempty"`
	Metadata        SeedMetadata      `json:"metadata"`
}

// TextGenSeedUpdate is an optional holistic update to the narrative seed
// fields proposed by the service
type TextGenSeedUpdate struct {
	Title                    string  `json:"title"`
	Description              string  `json:"description"`
	ApprovalLikelihood       float64 `json:"approval_likelihood"`
	TitleFormal              string  `json:"title_formal,omitempty"`
	DescriptionFormal        string  `json:"description_formal,omitempty"`
	ApprovalLikelihoodFormal float64 `json:"approval_likelihood_formal,omitempty"`
}

// TextGenElaborateResponse is the service reply
type TextGenElaborateResponse struct {
	Message     string             `json:"message"`
	UpdatedSeed *TextGenSeedUpdate `json:"updated_seed,omitempty"`
}

// TextGenSummaryRequest asks for a proposal summary of a fully elaborated seed
type TextGenSummaryRequest struct {
	SeedTitle       string       `json:"seed_title"`
	SeedDescription string       `json:"seed_description"`
	Metadata        SeedMetadata `json:"metadata"`
}

// TextGenSummaryResponse carries the generated proposal text
type TextGenSummaryResponse struct {
	Result string `json:"result"`
}
