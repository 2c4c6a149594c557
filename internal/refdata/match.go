package refdata

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// MatchManufacturer resolves free text to a catalogue manufacturer.
// Exact or prefix (case-insensitive) matches win; otherwise the closest name is
// accepted when its edit distance is at most a third of its length.
func MatchManufacturer(input string) (string, bool) {
	return closest(input, manufacturers)
}

// MatchModel resolves free text to one of the manufacturer's models.
func MatchModel(manufacturer, input string) (string, bool) {
	return closest(input, models[manufacturer])
}

func closest(input string, candidates []string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" || len(candidates) == 0 {
		return "", false
	}
	best, bestDist := "", -1
	for _, c := range candidates {
		lc := strings.ToLower(c)
		if lc == needle || (len(needle) >= 4 && strings.HasPrefix(lc, needle)) {
			return c, true
		}
		d := levenshtein.ComputeDistance(needle, lc)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist*3 <= len([]rune(best)) {
		return best, true
	}
	return "", false
}

// FindManufacturer scans free text (a chat message, say) for the first word
// that resolves to a manufacturer, returning the manufacturer and the words
// that follow it.
func FindManufacturer(text string) (string, []string, bool) {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ',' || r == '?' || r == '!' || r == '.' || r == '\n'
	})
	for i, w := range words {
		if len([]rune(w)) < 3 {
			continue
		}
		if m, ok := MatchManufacturer(w); ok {
			return m, words[i+1:], true
		}
	}
	return "", nil, false
}
