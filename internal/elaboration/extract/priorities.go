package extract

import (
	"regexp"
	"strings"
)

// Official programme priority labels keyed by the keywords participants use
// when naming them informally.
var defaultPriorityKeywords = map[string]string{
	"inclusion":      "Inclusion and diversity",
	"diversity":      "Inclusion and diversity",
	"environment":    "Environment and fight against climate change",
	"climate":        "Environment and fight against climate change",
	"sustainability": "Environment and fight against climate change",
	"green":          "Environment and fight against climate change",
	"digital":        "Digital transformation",
	"technology":     "Digital transformation",
	"participation":  "Participation in democratic life",
	"democracy":      "Participation in democratic life",
	"democratic":     "Participation in democratic life",
	"civic":          "Common values, civic engagement and participation",
	"values":         "Common values, civic engagement and participation",
	"engagement":     "Common values, civic engagement and participation",
}

var (
	themeLeadIn = regexp.MustCompile(`(?i)\b(?:themes?|priorit(?:y|ies)|focus(?:ed|ing)?\s+on|topics?)\b[: ]*(?:(?:is|are|will\s+be|include|on)\s+)?`)
	themeSplit  = regexp.MustCompile(`\s*(?:,|;|\band\b|&)\s*`)
)

// priorities maps keyword mentions to official priority labels and, when the
// message names its themes explicitly, keeps free-form themes as given.
func (e *Extractor) priorities(message string) []string {
	lowered := strings.ToLower(message)

	var out []string
	seen := make(map[string]bool)
	add := func(label string) {
		if label == "" || seen[strings.ToLower(label)] {
			return
		}
		seen[strings.ToLower(label)] = true
		out = append(out, label)
	}

	for _, keyword := range e.priorityOrder {
		if strings.Contains(lowered, keyword) {
			add(e.priorityKeywords[keyword])
		}
	}

	// free-form themes after an explicit lead-in, e.g. "our themes are
	// media literacy and outdoor education"
	if loc := themeLeadIn.FindStringIndex(message); loc != nil {
		rest := message[loc[1]:]
		if end := strings.IndexAny(rest, ".!?"); end >= 0 {
			rest = rest[:end]
		}
		for _, item := range themeSplit.Split(rest, -1) {
			theme := strings.TrimSpace(item)
			if theme == "" || len(theme) < 3 {
				continue
			}
			if label, ok := e.keywordLabel(theme); ok {
				add(label)
				continue
			}
			add(theme)
		}
	}

	return out
}

func (e *Extractor) keywordLabel(theme string) (string, bool) {
	lowered := strings.ToLower(theme)
	for keyword, label := range e.priorityKeywords {
		if strings.Contains(lowered, keyword) {
			return label, true
		}
	}
	return "", false
}
