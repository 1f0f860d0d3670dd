package console

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// match resolves free-form input against a set of words. Exact matches win,
// then unique prefixes, then the closest word within an edit budget that
// scales with its length.
func match(input string, words []string) (string, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", false
	}
	for _, w := range words {
		if input == w {
			return w, true
		}
	}

	var prefixed []string
	for _, w := range words {
		if strings.HasPrefix(w, input) {
			prefixed = append(prefixed, w)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], true
	}

	if len(input) < 3 {
		return "", false
	}
	best, bestDist := "", -1
	for _, w := range words {
		dist := levenshtein.ComputeDistance(input, w)
		if dist > levenshteinLimit(len(w)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = w, dist
		}
	}
	return best, bestDist >= 0
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

var (
	yesWords     = []string{"yes", "y", "confirm", "ok"}
	noWords      = []string{"no", "n", "back"}
	storeWords   = []string{"store", "keep", "save"}
	discardWords = []string{"discard", "drop", "toss"}
	cancelWords  = []string{"cancel", "skip", "none"}
)

// classify returns the index of the word list input belongs to, or -1.
func classify(input string, lists ...[]string) int {
	owner := make(map[string]int)
	var all []string
	for i, words := range lists {
		for _, w := range words {
			owner[w] = i
			all = append(all, w)
		}
	}
	w, ok := match(input, all)
	if !ok {
		return -1
	}
	return owner[w]
}
