package extract

import (
	"math"
	"regexp"

	"github.com/openhorizon/seed-backend/internal/entity"
)

var (
	currencyAmount = regexp.MustCompile(`(?i)(?:€|eur\s)\s*(\d+(?:[.,]\d+)*)|(\d+(?:[.,]\d+)*)\s*(?:euros?|eur)\b`)
	currencyWords  = regexp.MustCompile(`(?i)\b(` + numberWordPattern + `(?:[ -]` + numberWordPattern + `)*)\s+euros?\b`)

	perParticipantQualifier = regexp.MustCompile(`(?i)\b(per\s+(?:participant|person|head|student)|each|a\s+head|pp)\b`)
	totalQualifier          = regexp.MustCompile(`(?i)\b(total|overall|altogether|in\s+total|whole\s+budget|entire\s+budget)\b`)
	forCountQualifier       = regexp.MustCompile(`(?i)\bfor\s+(\d+)\s+(?:participants?|people|persons?|students?)\b`)

	// with no qualifier, amounts below this are read as per-participant
	unqualifiedTotalFloor = 2000.0
)

// budget extracts budget candidates. Qualifier words decide whether an amount
// is per-participant or total; a total stated "for N people" also yields the
// count so both facts land in one turn.
func (e *Extractor) budget(message string, meta entity.SeedMetadata, countCandidate *int) (per, total *float64, count *int) {
	amount, ok := currencyValue(message)
	if !ok {
		return nil, nil, nil
	}

	knownCount := countCandidate
	if knownCount == nil {
		knownCount = meta.ParticipantCount
	}

	switch {
	case perParticipantQualifier.MatchString(message):
		per = &amount

	case forCountQualifier.MatchString(message):
		m := forCountQualifier.FindStringSubmatch(message)
		if v, pok := parseAmount(m[1]); pok && v > 0 {
			n := int(v)
			count = &n
			total = &amount
			p := math.Round(amount / v)
			per = &p
		}

	case totalQualifier.MatchString(message):
		total = &amount
		if knownCount != nil && *knownCount > 0 {
			p := math.Round(amount / float64(*knownCount))
			per = &p
		}

	case amount >= unqualifiedTotalFloor:
		total = &amount
		if knownCount != nil && *knownCount > 0 {
			p := math.Round(amount / float64(*knownCount))
			per = &p
		}

	default:
		per = &amount
	}

	return per, total, count
}

func currencyValue(message string) (float64, bool) {
	if m := currencyAmount.FindStringSubmatch(message); m != nil {
		token := m[1]
		if token == "" {
			token = m[2]
		}
		return parseAmount(token)
	}
	if m := currencyWords.FindStringSubmatch(message); m != nil {
		if n, ok := wordsToNumber(m[1]); ok {
			return float64(n), true
		}
	}
	return 0, false
}
