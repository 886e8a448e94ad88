package extract

import (
	"math"
	"regexp"

	"github.com/openhorizon/seed-backend/internal/entity"
)

var (
	participantNouns = `(?:participants?|people|persons?|students?|young\s+people|youngsters?|youths?|attendees?)`

	participantRange   = regexp.MustCompile(`(?i)\bbetween\s+(\d+)\s+and\s+(\d+)\s+` + participantNouns + `|\b(\d+)\s*(?:-|–|\bto\b)\s*(\d+)\s+` + participantNouns)
	bareBetween        = regexp.MustCompile(`(?i)\bbetween\s+(\d+)\s+and\s+(\d+)\b`)
	bareRange          = regexp.MustCompile(`(?i)\b(\d+)\s*(?:-|–|\bto\b)\s*(\d+)\b`)
	participantNumber  = regexp.MustCompile(`(?i)\b(\d+)\s+` + participantNouns)
	participantReverse = regexp.MustCompile(`(?i)(?:group\s+of|planning\s+for|expecting)\s+(\d+)\b`)
	participantWords   = regexp.MustCompile(`(?i)\b(` + numberWordPattern + `(?:[ -]` + numberWordPattern + `)*)\s+` + participantNouns)

	// numbers that clearly belong to another slot must not fall through to
	// the bare-number heuristic
	nonParticipantContext = regexp.MustCompile(`(?i)(€|euros?\b|eur\b|days?\b|weeks?\b|hours?\b|years?\b|%)`)
)

// participants extracts a candidate participant count. Ranges resolve to the
// rounded-up midpoint. A bare number with no surrounding context counts only
// when it is the sole numeric token of the message and the slot is still
// unanswered.
func (e *Extractor) participants(message string, meta entity.SeedMetadata) *int {
	if m := participantRange.FindStringSubmatch(message); m != nil {
		lo, hi := pickRange(m)
		if lo > 0 && hi >= lo {
			mid := int(math.Ceil(float64(lo+hi) / 2))
			return &mid
		}
	}

	if m := participantNumber.FindStringSubmatch(message); m != nil {
		if v, ok := parseAmount(m[1]); ok {
			n := int(v)
			return &n
		}
	}

	if m := participantWords.FindStringSubmatch(message); m != nil {
		if n, ok := wordsToNumber(m[1]); ok {
			return &n
		}
	}

	if m := participantReverse.FindStringSubmatch(message); m != nil {
		if v, ok := parseAmount(m[1]); ok {
			n := int(v)
			return &n
		}
	}

	if meta.ParticipantCount == nil && !nonParticipantContext.MatchString(message) {
		// a bare range is how the question's own quick replies read ("16-20")
		for _, pat := range []*regexp.Regexp{bareBetween, bareRange} {
			m := pat.FindStringSubmatch(message)
			if m == nil {
				continue
			}
			lo, lok := parseAmount(m[1])
			hi, hok := parseAmount(m[2])
			if lok && hok && hi >= lo && lo > 0 {
				mid := int(math.Ceil((lo + hi) / 2))
				return &mid
			}
		}
		if n, ok := soleNumber(message); ok {
			return &n
		}
	}

	return nil
}

func pickRange(m []string) (int, int) {
	var lo, hi float64
	var okLo, okHi bool
	if m[1] != "" {
		lo, okLo = parseAmount(m[1])
		hi, okHi = parseAmount(m[2])
	} else {
		lo, okLo = parseAmount(m[3])
		hi, okHi = parseAmount(m[4])
	}
	if !okLo || !okHi {
		return 0, 0
	}
	return int(lo), int(hi)
}
