package extract

import (
	"regexp"
	"strings"

	"github.com/openhorizon/seed-backend/internal/entity"
)

var defaultActivityIndicators = []string{
	"workshops", "workshop", "activities", "sessions", "tours", "visits",
	"excursions", "debates", "games", "trainings", "seminars", "hikes",
}

var (
	activitySplit    = regexp.MustCompile(`\s*(?:,|;|\band\b)\s*`)
	activityDuration = regexp.MustCompile(`(?i)\(?\b(\d+(?:\.\d+)?)[ -](hours?|days?|half[ -]days?)\b\)?`)
	leadInPattern    = regexp.MustCompile(`(?i)^.*?(?:include|including|plan(?:ned|ning)?|organi[sz]e|run|have|are|:)\s+`)

	// parenthesized or hyphenated spans are qualifiers bound to one
	// activity, never the length of the whole exchange
	activityQualifier = regexp.MustCompile(`(?i)\(\s*\d+(?:\.\d+)?[ -](?:hours?|days?|half[ -]days?)\s*\)|\b\d+(?:\.\d+)?-(?:hours?|days?|half[ -]days?)\b`)
)

// activities splits a message into planned activities once an indicator noun
// ("workshops", "tours", ...) signals the message describes the programme.
// Each list item becomes an activity; an attached duration qualifier like
// "(2 days)" or "3-hour" is captured, otherwise the duration stays empty.
func (e *Extractor) activities(message string) []entity.Activity {
	if !e.mentionsActivities(message) {
		return nil
	}

	body := leadInPattern.ReplaceAllString(message, "")
	if strings.TrimSpace(body) == "" {
		body = message
	}

	var out []entity.Activity
	for _, item := range activitySplit.Split(body, -1) {
		name := strings.Trim(strings.TrimSpace(item), ".!?")
		if name == "" || len(name) < 3 {
			continue
		}
		// drop bare indicator tokens left over from the lead-in
		if isIndicatorOnly(name) {
			continue
		}

		activity := entity.Activity{Name: name}
		if m := activityDuration.FindStringSubmatch(name); m != nil {
			activity.Duration = strings.ToLower(m[1] + " " + normalizeUnit(m[2]))
			activity.Name = strings.Trim(strings.TrimSpace(activityDuration.ReplaceAllString(name, "")), "() ")
		}
		if activity.Name == "" {
			continue
		}
		out = append(out, activity)
	}
	return out
}

// maskActivityQualifiers blanks activity-bound duration qualifiers like
// "(2 days)" or "3-hour" so the exchange duration extractor cannot read
// them as the overall length.
func (e *Extractor) maskActivityQualifiers(message string) string {
	if !e.mentionsActivities(message) {
		return message
	}
	return activityQualifier.ReplaceAllStringFunc(message, func(s string) string {
		return strings.Repeat(" ", len(s))
	})
}

func (e *Extractor) mentionsActivities(message string) bool {
	lowered := strings.ToLower(message)
	for _, indicator := range e.activityIndicators {
		if strings.Contains(lowered, indicator) {
			return true
		}
	}
	return false
}

func isIndicatorOnly(name string) bool {
	lowered := strings.ToLower(name)
	switch lowered {
	case "activities", "workshops", "sessions", "we", "we will", "the main activities":
		return true
	}
	return false
}

func normalizeUnit(unit string) string {
	unit = strings.ToLower(unit)
	if !strings.HasSuffix(unit, "s") {
		unit += "s"
	}
	return unit
}
