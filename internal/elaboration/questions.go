package elaboration

import (
	"github.com/openhorizon/seed-backend/internal/entity"
)

// Slot names one metadata field the conversation fills. The names double as
// the field identifiers reported in missing-fields lists.
type Slot string

const (
	SlotParticipantCount Slot = "participantCount"
	SlotBudget           Slot = "budget"
	SlotDuration         Slot = "duration"
	SlotDestination      Slot = "destination"
	SlotCountries        Slot = "participantCountries"
	SlotActivities       Slot = "activities"
	SlotPriorities       Slot = "erasmusPriorities"
)

// Question is one step of the guided flow.
type Question struct {
	Slot         Slot
	Text         string
	FollowUp     string
	QuickReplies []string
	HelpText     string
	Required     bool
}

// questionFlow is the fixed priority order of the conversation. The first
// five slots gate completion; the last two only add polish.
var questionFlow = []Question{
	{
		Slot:         SlotParticipantCount,
		Text:         "How many participants will be involved in your project? (Erasmus+ typically supports 16-60 participants)",
		FollowUp:     "A number or a range like \"between 20 and 30\" both work.",
		QuickReplies: []string{"16-20", "21-30", "31-40", "41-60"},
		HelpText:     "For first-time exchanges, 20-30 participants is manageable",
		Required:     true,
	},
	{
		Slot:         SlotBudget,
		Text:         "What's your estimated total budget? (Typical range: €300-500 per participant)",
		FollowUp:     "You can give a total or a per-participant amount, e.g. \"€400 per participant\".",
		QuickReplies: []string{"€10,000-€20,000", "€20,000-€40,000", "€40,000+"},
		HelpText:     "We'll help you allocate this across travel, accommodation, food, and activities",
		Required:     true,
	},
	{
		Slot:         SlotDuration,
		Text:         "How long will the exchange last? (Typical exchanges run 5-21 days)",
		FollowUp:     "Days, weeks or a date range all work, e.g. \"7 days\" or \"July 1 to July 10\".",
		QuickReplies: []string{"5-7 days", "8-14 days", "15-21 days"},
		HelpText:     "5-7 days is common for first exchanges",
		Required:     true,
	},
	{
		Slot:     SlotDestination,
		Text:     "Where will the exchange take place? Please specify the city and country.",
		FollowUp: "Please mention the country and city. You can also add venue details if known.",
		HelpText: "This helps us calculate travel costs and visa requirements",
		Required: true,
	},
	{
		Slot:     SlotCountries,
		Text:     "Which countries will participants come from? List the participating countries.",
		FollowUp: "List the countries whose young people will participate. This helps us calculate visa requirements.",
		HelpText: "This helps identify visa requirements and language support needs",
		Required: true,
	},
	{
		Slot:     SlotActivities,
		Text:     "What activities and workshops will you include in the exchange?",
		FollowUp: "Describe the main learning activities, workshops, or experiences participants will have.",
		HelpText: "Describe the main learning activities, workshops, or experiences participants will have",
	},
	{
		Slot:     SlotPriorities,
		Text:     "What's the main learning theme or focus of your exchange? (e.g., digital skills, sustainability, cultural exchange)",
		FollowUp: "This should align with EU priorities: digital, green, inclusion, or participation.",
		HelpText: "This should align with EU priorities: digital, green, inclusion, health, or participation",
	},
}

// Questions returns the flow in priority order.
func Questions() []Question {
	return questionFlow
}

// slotFilled reports whether the metadata already answers the slot. Budget
// counts as answered when either the per-participant or the total amount is
// known.
func slotFilled(slot Slot, meta entity.SeedMetadata) bool {
	switch slot {
	case SlotParticipantCount:
		return meta.ParticipantCount != nil
	case SlotBudget:
		return meta.BudgetPerParticipant != nil || meta.TotalBudget != nil
	case SlotDuration:
		return meta.Duration != nil
	case SlotDestination:
		return meta.Destination != nil && meta.Destination.Country != ""
	case SlotCountries:
		return len(meta.ParticipantCountries) > 0
	case SlotActivities:
		return len(meta.Activities) > 0
	case SlotPriorities:
		return len(meta.ErasmusPriorities) > 0
	}
	return false
}

// NextQuestion returns the prompt for the first unfilled slot in priority
// order, or nil when every slot including the optional ones is answered.
func NextQuestion(meta entity.SeedMetadata) *Question {
	for i := range questionFlow {
		if !slotFilled(questionFlow[i].Slot, meta) {
			q := questionFlow[i]
			return &q
		}
	}
	return nil
}

// RequiredComplete reports whether every gating slot is filled.
func RequiredComplete(meta entity.SeedMetadata) bool {
	for _, q := range questionFlow {
		if q.Required && !slotFilled(q.Slot, meta) {
			return false
		}
	}
	return true
}

// IdentifyMissingFields lists unfilled slot names, required slots first,
// in flow order.
func IdentifyMissingFields(meta entity.SeedMetadata) []string {
	var required, optional []string
	for _, q := range questionFlow {
		if slotFilled(q.Slot, meta) {
			continue
		}
		if q.Required {
			required = append(required, string(q.Slot))
		} else {
			optional = append(optional, string(q.Slot))
		}
	}
	return append(required, optional...)
}

// StageFor derives the session stage from which slots are filled. The stage
// is never stored, so it can not drift from the metadata.
func StageFor(meta entity.SeedMetadata) entity.ElaborationStage {
	anyFilled := false
	for _, q := range questionFlow {
		if slotFilled(q.Slot, meta) {
			anyFilled = true
			break
		}
	}
	if !anyFilled {
		return entity.StageNotStarted
	}
	if !RequiredComplete(meta) {
		return entity.StageInProgress
	}
	if NextQuestion(meta) != nil {
		return entity.StageReadyForOptional
	}
	return entity.StageComplete
}
