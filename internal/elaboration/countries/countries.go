// Package countries provides a static bidirectional mapping between country
// names (plus common aliases and demonyms) and ISO 3166-1 alpha-2 codes.
//
// The table covers the Erasmus+ programme countries and frequent partner
// countries; it is deliberately not exhaustive and can be extended through
// NewLookup.
package countries

import (
	"regexp"
	"strings"
)

// euMembers is used to derive visa requirements: travel between two EU
// countries needs no visa.
var euMembers = map[string]bool{
	"AT": true, "BE": true, "BG": true, "HR": true, "CY": true, "CZ": true,
	"DK": true, "EE": true, "FI": true, "FR": true, "DE": true, "GR": true,
	"HU": true, "IE": true, "IT": true, "LV": true, "LT": true, "LU": true,
	"MT": true, "NL": true, "PL": true, "PT": true, "RO": true, "SK": true,
	"SI": true, "ES": true, "SE": true,
}

// table maps lowercase country names, aliases and demonyms to alpha-2 codes.
var table = map[string]string{
	"austria": "AT", "austrian": "AT",
	"belgium": "BE", "belgian": "BE",
	"bulgaria": "BG", "bulgarian": "BG",
	"croatia": "HR", "croatian": "HR",
	"cyprus": "CY", "cypriot": "CY",
	"czech republic": "CZ", "czechia": "CZ", "czech": "CZ",
	"denmark": "DK", "danish": "DK",
	"estonia": "EE", "estonian": "EE",
	"finland": "FI", "finnish": "FI",
	"france": "FR", "french": "FR",
	"germany": "DE", "german": "DE",
	"greece": "GR", "greek": "GR",
	"hungary": "HU", "hungarian": "HU",
	"iceland": "IS", "icelandic": "IS",
	"ireland": "IE", "irish": "IE",
	"italy": "IT", "italian": "IT",
	"latvia": "LV", "latvian": "LV",
	"liechtenstein": "LI",
	"lithuania":     "LT", "lithuanian": "LT",
	"luxembourg": "LU",
	"malta":      "MT", "maltese": "MT",
	"netherlands": "NL", "the netherlands": "NL", "holland": "NL", "dutch": "NL",
	"north macedonia": "MK", "macedonia": "MK", "macedonian": "MK",
	"norway": "NO", "norwegian": "NO",
	"poland": "PL", "polish": "PL",
	"portugal": "PT", "portuguese": "PT",
	"romania": "RO", "romanian": "RO",
	"serbia": "RS", "serbian": "RS",
	"slovakia": "SK", "slovak": "SK",
	"slovenia": "SI", "slovenian": "SI",
	"spain": "ES", "spanish": "ES",
	"sweden": "SE", "swedish": "SE",
	"turkey": "TR", "turkiye": "TR", "turkish": "TR",
	"ukraine": "UA", "ukrainian": "UA",
	"united kingdom": "GB", "uk": "GB", "great britain": "GB", "britain": "GB", "british": "GB",
}

// names maps codes back to a display name, preferring the full country name.
var names = map[string]string{
	"AT": "Austria", "BE": "Belgium", "BG": "Bulgaria", "HR": "Croatia",
	"CY": "Cyprus", "CZ": "Czech Republic", "DK": "Denmark", "EE": "Estonia",
	"FI": "Finland", "FR": "France", "DE": "Germany", "GR": "Greece",
	"HU": "Hungary", "IS": "Iceland", "IE": "Ireland", "IT": "Italy",
	"LV": "Latvia", "LI": "Liechtenstein", "LT": "Lithuania",
	"LU": "Luxembourg", "MT": "Malta", "NL": "Netherlands",
	"MK": "North Macedonia", "NO": "Norway", "PL": "Poland", "PT": "Portugal",
	"RO": "Romania", "RS": "Serbia", "SK": "Slovakia", "SI": "Slovenia",
	"ES": "Spain", "SE": "Sweden", "TR": "Turkey", "UA": "Ukraine",
	"GB": "United Kingdom",
}

var listSeparator = regexp.MustCompile(`\s*(?:,|;|\band\b|&)\s*`)

// Lookup resolves country names to alpha-2 codes. The zero value is not
// usable; construct with NewLookup.
type Lookup struct {
	byName map[string]string
}

// NewLookup builds a lookup over the built-in table. Extra aliases (lowercase
// name -> alpha-2 code) override and extend the built-ins.
func NewLookup(extraAliases map[string]string) *Lookup {
	byName := make(map[string]string, len(table)+len(extraAliases))
	for name, code := range table {
		byName[name] = code
	}
	for name, code := range extraAliases {
		byName[strings.ToLower(name)] = strings.ToUpper(code)
	}
	return &Lookup{byName: byName}
}

// Resolve matches a single country name or alias, case-insensitively.
func (l *Lookup) Resolve(text string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(text))
	key = strings.Trim(key, ".!?")
	code, ok := l.byName[key]
	return code, ok
}

// ScanList scans a comma/and-separated list of country names inside a single
// sentence and returns the resolved codes in order of appearance.
// Unresolvable tokens are dropped silently; duplicates collapse to the first
// occurrence.
func (l *Lookup) ScanList(text string) []string {
	var codes []string
	seen := make(map[string]bool)
	for _, token := range listSeparator.Split(text, -1) {
		code, ok := l.resolveToken(token)
		if !ok || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}

// resolveToken tries the whole token first, then trailing word suffixes so
// that "participants from Germany" resolves via its last words.
func (l *Lookup) resolveToken(token string) (string, bool) {
	if code, ok := l.Resolve(token); ok {
		return code, true
	}
	words := strings.Fields(token)
	// Longest suffix first: "the netherlands" before "netherlands".
	for i := 0; i < len(words); i++ {
		if code, ok := l.Resolve(strings.Join(words[i:], " ")); ok {
			return code, true
		}
	}
	return "", false
}

// Name returns the display name for a code.
func Name(code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return code
}

// IsEU reports whether the code belongs to an EU member state.
func IsEU(code string) bool {
	return euMembers[code]
}
