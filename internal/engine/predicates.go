package engine

import "github.com/bnema/activity-feed-filter/internal/models"

// predicate reports whether a condition's removal criterion is met, in its
// natural (unreversed) meaning
type predicate func(s *models.Signals, cfg *models.Config) bool

// predicates is the closed dispatch table. Every models.Condition has exactly one entry.
var predicates = map[models.Condition]predicate{
	models.ConditionUncommented: func(s *models.Signals, _ *models.Config) bool {
		return !s.HasComments
	},
	models.ConditionUnliked: func(s *models.Signals, _ *models.Config) bool {
		return !s.HasLikes
	},
	models.ConditionText: func(s *models.Signals, _ *models.Config) bool {
		return s.IsTextOnly
	},
	models.ConditionImages: func(s *models.Signals, _ *models.Config) bool {
		return s.HasImage && !s.IsGif
	},
	models.ConditionGifs: func(s *models.Signals, _ *models.Config) bool {
		return s.IsGif
	},
	models.ConditionVideos: func(s *models.Signals, _ *models.Config) bool {
		return s.HasVideo
	},
	models.ConditionContainsStrings: func(s *models.Signals, cfg *models.Config) bool {
		return MatchTerms(cfg.Remove.ContainsStrings, s.Text, cfg.Options.CaseSensitive)
	},
}

// violated applies the global reversal uniformly on top of the natural predicate.
// A containsStrings rule without terms never counts, in either mode.
func violated(c models.Condition, s *models.Signals, cfg *models.Config) bool {
	met := predicates[c](s, cfg)
	if !cfg.Options.ReverseConditions {
		return met
	}
	if c == models.ConditionContainsStrings && cfg.Remove.ContainsStrings.IsEmpty() {
		return false
	}
	return !met
}
