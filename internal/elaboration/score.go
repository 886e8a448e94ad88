package elaboration

import (
	"github.com/openhorizon/seed-backend/internal/entity"
)

// Five required facts carry 12 points each for a 60-point base; the two
// optional facts carry 20 each for the remaining 40.
const (
	requiredFactWeight = 12
	optionalFactWeight = 20
)

var (
	requiredSlots = []Slot{SlotParticipantCount, SlotBudget, SlotDuration, SlotDestination, SlotCountries}
	optionalSlots = []Slot{SlotActivities, SlotPriorities}
)

// CalculateCompleteness scores the metadata 0..100. Budget counts as a single
// fact whether stated per participant or in total. The score is a pure
// function of the slots present; nothing else may write it.
func CalculateCompleteness(meta entity.SeedMetadata) int {
	score := 0
	for _, s := range requiredSlots {
		if slotFilled(s, meta) {
			score += requiredFactWeight
		}
	}
	for _, s := range optionalSlots {
		if slotFilled(s, meta) {
			score += optionalFactWeight
		}
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
