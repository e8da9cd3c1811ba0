// Package engine decides whether a feed entry is kept or removed.
//
// Every function here is pure: the signals and the configuration are only read,
// so a single *models.Config may be shared by any number of goroutines.
package engine

import "github.com/bnema/activity-feed-filter/internal/models"

// ReasonLinked is reported when a linked group triggered the removal
const ReasonLinked = "linked"

// Decision is the outcome of one evaluation
type Decision struct {
	Remove  bool         `json:"remove" yaml:"remove"`
	Linked  LinkedResult `json:"-" yaml:"-"`
	Reasons []string     `json:"reasons,omitempty" yaml:"reasons,omitempty"`
}

// Decide returns true when the entry should be removed from the feed
func Decide(s models.Signals, cfg *models.Config) bool {
	return Explain(s, cfg).Remove
}

// Explain evaluates an entry and records which checks caused a removal.
//
// Conditions referenced by a linked group are only evaluated as part of that
// group. The entry is removed when a linked group is satisfied or when any
// remaining enabled condition is violated; with reverse_conditions set this
// keeps only entries that pass every configured check. When nothing is
// configured nothing is removed.
func Explain(s models.Signals, cfg *models.Config) Decision {
	d := Decision{Linked: EvaluateLinked(&s, cfg)}
	if d.Linked == LinkedMatch {
		d.Reasons = append(d.Reasons, ReasonLinked)
	}

	for _, c := range ActiveConditions(cfg) {
		if violated(c, &s, cfg) {
			d.Reasons = append(d.Reasons, c.String())
		}
	}

	d.Remove = len(d.Reasons) > 0
	return d
}

// ActiveConditions returns the enabled conditions that are not part of any linked group
func ActiveConditions(cfg *models.Config) []models.Condition {
	var active []models.Condition
	for _, c := range models.AllConditions() {
		if cfg.Remove.Enabled(c) && !cfg.Options.LinkedConditions.Contains(c) {
			active = append(active, c)
		}
	}
	return active
}
