// Package fuzzy ranks step patterns against a free-text query. Substring
// hits outrank subsequence hits; within each tier, lower scores are better
// and ties keep catalog insertion order.
package fuzzy

import (
	"sort"
	"strings"
)

// MaxSuggestions caps the ranked list handed to the completion UI.
const MaxSuggestions = 50

// subsequence matches start above any plausible substring index so the
// two tiers never interleave.
const subsequenceBase = 100

// Score rates candidate against query. It returns (score, true) on a
// match, lower being better, and (0, false) when the candidate does not
// match at all.
//
// An empty query matches everything at score 0. A contiguous substring
// match scores its first index in the lowercased candidate. Otherwise a
// left-to-right subsequence scan is attempted; if the whole query is
// consumed, the score is subsequenceBase plus the number of candidate
// characters skipped between query characters.
func Score(query, candidate string) (int, bool) {
	q := strings.ToLower(query)
	c := strings.ToLower(candidate)

	if q == "" {
		return 0, true
	}
	if idx := strings.Index(c, q); idx >= 0 {
		return idx, true
	}

	gaps := 0
	qi := 0
	for ci := 0; ci < len(c) && qi < len(q); ci++ {
		if c[ci] == q[qi] {
			qi++
		} else {
			gaps++
		}
	}
	if qi < len(q) {
		return 0, false
	}
	return subsequenceBase + gaps, true
}

// Rank filters candidates to those matching query and returns them sorted
// ascending by score, stably, truncated to MaxSuggestions.
func Rank(query string, candidates []string) []string {
	type ranked struct {
		text  string
		score int
	}
	var matches []ranked
	for _, c := range candidates {
		if s, ok := Score(query, c); ok {
			matches = append(matches, ranked{text: c, score: s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})
	if len(matches) > MaxSuggestions {
		matches = matches[:MaxSuggestions]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.text
	}
	return out
}
