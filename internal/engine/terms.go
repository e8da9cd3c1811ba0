package engine

import (
	"strings"

	"github.com/bnema/activity-feed-filter/internal/models"
)

// MatchTerms reports whether any term group is fully contained in text.
// Matching is case-insensitive unless caseSensitive is set. A rule without
// terms never matches.
func MatchTerms(groups models.TermGroups, text string, caseSensitive bool) bool {
	if groups.IsEmpty() {
		return false
	}

	haystack := text
	if !caseSensitive {
		haystack = strings.ToLower(text)
	}

	contains := func(term string) bool {
		if !caseSensitive {
			term = strings.ToLower(term)
		}
		return strings.Contains(haystack, term)
	}

	return anyGroupSatisfied(groups, every[string], contains)
}
