package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	digitPattern      = regexp.MustCompile(`\d+(?:[.,]\d+)*`)
	groupedIntPattern = regexp.MustCompile(`^(\d{1,3})(?:[.,]\d{3})+$`)
)

// numberWordPattern matches a single spelled-out number word, reused by the
// slot extractors to build phrase patterns.
const numberWordPattern = `(?:one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen|twenty|thirty|forty|fifty|sixty|seventy|eighty|ninety|hundred|thousand|a|an)`

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20, "thirty": 30, "forty": 40,
	"fifty": 50, "sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

// parseAmount parses a digit token that may carry thousands separators
// ("15,000", "1.500") or a decimal part ("399.50").
func parseAmount(token string) (float64, bool) {
	s := token
	// "15,000" and "1.500" are thousands-separated integers; "399.50" is a
	// decimal. A separator followed by exactly three digits is a grouping.
	if groupedIntPattern.MatchString(s) {
		s = strings.NewReplacer(",", "", ".", "").Replace(s)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// wordsToNumber parses small spelled-out numbers: "thirty", "twenty-five",
// "four hundred", "one thousand five hundred". Returns false when the phrase
// is not a number.
func wordsToNumber(phrase string) (int, bool) {
	fields := strings.FieldsFunc(strings.ToLower(phrase), func(r rune) bool {
		return r == ' ' || r == '-'
	})
	if len(fields) == 0 {
		return 0, false
	}

	total, current := 0, 0
	matched := false
	for _, w := range fields {
		switch w {
		case "a", "an":
			current = 1
		case "hundred":
			if current == 0 {
				current = 1
			}
			current *= 100
			matched = true
		case "thousand":
			if current == 0 {
				current = 1
			}
			total += current * 1000
			current = 0
			matched = true
		default:
			n, ok := numberWords[w]
			if !ok {
				return 0, false
			}
			current += n
			matched = true
		}
	}
	if !matched {
		return 0, false
	}
	return total + current, true
}

// soleNumber returns the only numeric token of the message, or false when the
// message carries zero or more than one.
func soleNumber(message string) (int, bool) {
	tokens := digitPattern.FindAllString(message, 2)
	if len(tokens) != 1 {
		return 0, false
	}
	v, ok := parseAmount(tokens[0])
	if !ok || v != float64(int(v)) {
		return 0, false
	}
	return int(v), true
}
