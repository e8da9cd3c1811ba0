package engine

import "github.com/bnema/activity-feed-filter/internal/models"

// LinkedResult is the outcome of evaluating the linked condition groups
type LinkedResult int

const (
	LinkedNone    LinkedResult = iota // no groups configured
	LinkedMatch                       // at least one group satisfied
	LinkedNoMatch                     // groups configured, none satisfied
)

func (r LinkedResult) String() string {
	switch r {
	case LinkedMatch:
		return "match"
	case LinkedNoMatch:
		return "no-match"
	}
	return "none"
}

// EvaluateLinked checks the configured linked groups against one entry.
//
// In normal mode a group is satisfied when all of its conditions are met. In
// reversed mode a group is satisfied as soon as one member is violated, the
// dual of "keep only if every member holds". Groups are ORed in both modes.
func EvaluateLinked(s *models.Signals, cfg *models.Config) LinkedResult {
	groups := cfg.Options.LinkedConditions
	if groups.IsEmpty() {
		return LinkedNone
	}

	within := every[models.Condition]
	if cfg.Options.ReverseConditions {
		within = some[models.Condition]
	}

	test := func(c models.Condition) bool {
		return violated(c, s, cfg)
	}

	if anyGroupSatisfied(groups, within, test) {
		return LinkedMatch
	}
	return LinkedNoMatch
}
