package extract

import (
	"regexp"
	"strings"

	"github.com/openhorizon/seed-backend/internal/elaboration/countries"
	"github.com/openhorizon/seed-backend/internal/entity"
)

var (
	// the city is the run of capitalized words directly before the comma,
	// so a sentence lead-in ("We want to host it in ...") stays out
	cityCountryPattern = regexp.MustCompile(`\b([A-Z][a-zA-Z']*(?:[ -][A-Z][a-zA-Z']*)*),\s+([A-Za-z ]+?)(?:[.!?,;]|$|\s+(?:with|where|which|and\s+the))`)
	inCountryPattern   = regexp.MustCompile(`(?i)\b(?:in|to|at|hosted\s+in|take\s+place\s+in|held\s+in)\s+([A-Z][a-zA-Z ]*?)(?:[.!?,;]|$)`)

	venueClause         = regexp.MustCompile(`(?i)(?:venue(?:\s+is|:)?|at\s+the)\s+([^.!?,;]+)`)
	accessibilityClause = regexp.MustCompile(`(?i)([^.!?;]*(?:wheelchair|accessib)[a-z]*[^.!?;]*)`)
)

// destination extracts the event location. A "City, Country" pattern wins;
// otherwise a lone country name after a locational preposition is accepted
// with an empty city. Venue and accessibility hints nearby are captured too.
func (e *Extractor) destination(message string) *entity.Destination {
	var dest *entity.Destination

	for _, m := range cityCountryPattern.FindAllStringSubmatch(message, -1) {
		code, ok := e.countries.Resolve(m[2])
		if !ok {
			continue
		}
		// "Germany, France" is a country list, not a city
		if _, isCountry := e.countries.Resolve(m[1]); isCountry {
			continue
		}
		dest = &entity.Destination{
			Country: code,
			City:    strings.TrimSpace(m[1]),
		}
		break
	}

	if dest == nil {
		for _, m := range inCountryPattern.FindAllStringSubmatch(message, -1) {
			if code, ok := e.countries.Resolve(m[1]); ok {
				dest = &entity.Destination{Country: code, City: ""}
				break
			}
		}
	}

	if dest == nil {
		return nil
	}

	if m := venueClause.FindStringSubmatch(message); m != nil {
		venue := strings.TrimSpace(m[1])
		if !strings.EqualFold(venue, dest.City) {
			if _, isCountry := e.countries.Resolve(venue); !isCountry {
				dest.Venue = venue
			}
		}
	}
	if m := accessibilityClause.FindStringSubmatch(message); m != nil {
		dest.Accessibility = strings.TrimSpace(m[1])
	}

	return dest
}

// participantCountries scans for a list of country names. A single resolved
// country only counts when the message signals origin ("from ..."); the
// destination country is kept in the list only when named separately from the
// destination phrase.
func (e *Extractor) participantCountries(message string, dest *entity.Destination) []string {
	codes := e.countries.ScanList(message)
	if len(codes) == 0 {
		return nil
	}

	fromContext := containsFold(message, "from ") ||
		containsFold(message, "participants") ||
		containsFold(message, "countries")

	if dest != nil {
		// a lone country naming the destination is a restatement, not an
		// origin list
		codes = without(codes, dest.Country)
		if len(codes) == 0 {
			return nil
		}
		if len(codes) == 1 && !fromContext {
			return nil
		}
		return codes
	}

	if len(codes) == 1 && !fromContext {
		return nil
	}
	return codes
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func without(codes []string, drop string) []string {
	out := codes[:0:0]
	for _, c := range codes {
		if c != drop {
			out = append(out, c)
		}
	}
	return out
}

// Name re-exported for prompt rendering without importing the subpackage.
func CountryName(code string) string {
	return countries.Name(code)
}
