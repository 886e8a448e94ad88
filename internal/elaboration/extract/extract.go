// Package extract turns free-text conversation messages into structured
// metadata slot candidates. Every extractor is a pure deterministic function
// of the message and the metadata accumulated so far; a message that matches
// nothing simply yields no candidate.
package extract

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/openhorizon/seed-backend/internal/elaboration/countries"
	"github.com/openhorizon/seed-backend/internal/entity"
)

var correctionPattern = regexp.MustCompile(`(?i)^\s*(actually|make that|i meant|no[,.]|correction[:,]?|sorry[,.]|change that|scratch that)`)

// Options extends the built-in keyword vocabularies. All fields are optional.
type Options struct {
	// CountryAliases adds lowercase name -> alpha-2 rows to the lookup table
	CountryAliases map[string]string
	// ActivityIndicators adds nouns that introduce an activity list
	ActivityIndicators []string
	// PriorityKeywords adds keyword -> official priority label rows
	PriorityKeywords map[string]string
}

// Candidates holds everything one message yielded. Nil/empty fields mean the
// message said nothing about that slot.
type Candidates struct {
	ParticipantCount     *int
	BudgetPerParticipant *float64
	TotalBudget          *float64
	Duration             *int
	StartDate            *time.Time
	EndDate              *time.Time
	Destination          *entity.Destination
	ParticipantCountries []string
	Activities           []entity.Activity
	Priorities           []string

	// Correction marks a message that should overwrite, not merge,
	// previously stored values for the slots it touches
	Correction bool
}

// Empty reports whether no slot yielded a candidate.
func (c Candidates) Empty() bool {
	return c.ParticipantCount == nil &&
		c.BudgetPerParticipant == nil &&
		c.TotalBudget == nil &&
		c.Duration == nil &&
		c.StartDate == nil &&
		c.EndDate == nil &&
		c.Destination == nil &&
		len(c.ParticipantCountries) == 0 &&
		len(c.Activities) == 0 &&
		len(c.Priorities) == 0
}

// Extractor runs the per-slot heuristics. Safe for concurrent use.
type Extractor struct {
	countries          *countries.Lookup
	activityIndicators []string
	priorityKeywords   map[string]string
	priorityOrder      []string
}

// New builds an Extractor with the built-in vocabularies extended by opts.
func New(opts Options) *Extractor {
	indicators := append([]string{}, defaultActivityIndicators...)
	indicators = append(indicators, opts.ActivityIndicators...)

	keywords := make(map[string]string, len(defaultPriorityKeywords)+len(opts.PriorityKeywords))
	for k, v := range defaultPriorityKeywords {
		keywords[k] = v
	}
	for k, v := range opts.PriorityKeywords {
		keywords[strings.ToLower(k)] = v
	}

	order := make([]string, 0, len(keywords))
	for k := range keywords {
		order = append(order, k)
	}
	sort.Strings(order)

	return &Extractor{
		countries:          countries.NewLookup(opts.CountryAliases),
		activityIndicators: indicators,
		priorityKeywords:   keywords,
		priorityOrder:      order,
	}
}

// Countries exposes the lookup for callers that need standalone resolution.
func (e *Extractor) Countries() *countries.Lookup {
	return e.countries
}

// Extract runs all slot extractors over one message in slot order. A single
// message may populate several slots at once.
func (e *Extractor) Extract(message string, meta entity.SeedMetadata) Candidates {
	c := Candidates{Correction: IsCorrection(message)}

	c.ParticipantCount = e.participants(message, meta)

	per, total, countFromBudget := e.budget(message, meta, c.ParticipantCount)
	c.BudgetPerParticipant = per
	c.TotalBudget = total

	// "€15000 total for 30 people" carries the count inside the budget clause
	if c.ParticipantCount == nil && countFromBudget != nil {
		c.ParticipantCount = countFromBudget
	}

	days, start, end := e.duration(e.maskActivityQualifiers(message))
	c.Duration = days
	c.StartDate = start
	c.EndDate = end

	c.Destination = e.destination(message)
	c.ParticipantCountries = e.participantCountries(message, c.Destination)
	c.Activities = e.activities(message)
	c.Priorities = e.priorities(message)

	return c
}

// IsCorrection reports whether the message starts with a correction marker.
func IsCorrection(message string) bool {
	return correctionPattern.MatchString(message)
}
