package extract

import (
	"regexp"
	"strings"
	"time"
)

var (
	dayCount  = regexp.MustCompile(`(?i)\b(\d+)\s*days?\b`)
	weekCount = regexp.MustCompile(`(?i)\b(\d+)\s*weeks?\b`)
	wordSpan  = regexp.MustCompile(`(?i)\b(` + numberWordPattern + `(?:[ -]` + numberWordPattern + `)*)\s+(days?|weeks?)\b`)

	isoDate     = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	textualDate = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?\b`)
	dayFirst    = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(january|february|march|april|may|june|july|august|september|october|november|december)(?:,?\s+(\d{4}))?\b`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// duration extracts a day count. Explicit day/week counts win over date
// ranges; when the message carries two parseable dates the duration is the
// inclusive span and the dates themselves are kept for validation.
func (e *Extractor) duration(message string) (days *int, start, end *time.Time) {
	if m := dayCount.FindStringSubmatch(message); m != nil {
		if v, ok := parseAmount(m[1]); ok {
			d := int(v)
			days = &d
		}
	}
	if days == nil {
		if m := weekCount.FindStringSubmatch(message); m != nil {
			if v, ok := parseAmount(m[1]); ok {
				d := int(v) * 7
				days = &d
			}
		}
	}
	if days == nil {
		if m := wordSpan.FindStringSubmatch(message); m != nil {
			if n, ok := wordsToNumber(m[1]); ok {
				d := n
				if strings.HasPrefix(strings.ToLower(m[2]), "week") {
					d = n * 7
				}
				days = &d
			}
		}
	}

	dates := parseDates(message)
	if len(dates) >= 2 {
		s, en := dates[0], dates[1]
		start, end = &s, &en
		if days == nil && !en.Before(s) {
			span := int(en.Sub(s).Hours()/24) + 1
			days = &span
		}
	}

	return days, start, end
}

// parseDates returns up to two dates found in the message, in order of
// appearance. Textual dates without a year use the year of the first dated
// match, or the current year.
func parseDates(message string) []time.Time {
	type found struct {
		pos  int
		t    time.Time
		year bool
	}
	var hits []found

	for _, m := range isoDate.FindAllStringSubmatchIndex(message, 2) {
		t, err := time.Parse("2006-01-02", message[m[0]:m[1]])
		if err != nil {
			continue
		}
		hits = append(hits, found{pos: m[0], t: t, year: true})
	}

	collect := func(re *regexp.Regexp, monthIdx, dayIdx, yearIdx int) {
		for _, m := range re.FindAllStringSubmatchIndex(message, 2) {
			month, ok := monthsByName[strings.ToLower(message[m[2*monthIdx]:m[2*monthIdx+1]])]
			if !ok {
				continue
			}
			day, dok := parseAmount(message[m[2*dayIdx] : m[2*dayIdx+1]])
			if !dok || day < 1 || day > 31 {
				continue
			}
			year, hasYear := 0, false
			if m[2*yearIdx] >= 0 {
				if y, yok := parseAmount(message[m[2*yearIdx] : m[2*yearIdx+1]]); yok {
					year, hasYear = int(y), true
				}
			}
			hits = append(hits, found{
				pos:  m[0],
				t:    time.Date(year, month, int(day), 0, 0, 0, 0, time.UTC),
				year: hasYear,
			})
		}
	}
	collect(textualDate, 1, 2, 3)
	collect(dayFirst, 2, 1, 3)

	if len(hits) == 0 {
		return nil
	}

	// order by position in the message
	for i := 0; i < len(hits); i++ {
		for j := i + 1; j < len(hits); j++ {
			if hits[j].pos < hits[i].pos {
				hits[i], hits[j] = hits[j], hits[i]
			}
		}
	}

	defaultYear := time.Now().UTC().Year()
	for _, h := range hits {
		if h.year {
			defaultYear = h.t.Year()
			break
		}
	}

	var dates []time.Time
	for _, h := range hits {
		t := h.t
		if !h.year {
			t = time.Date(defaultYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		dates = append(dates, t)
		if len(dates) == 2 {
			break
		}
	}
	return dates
}
