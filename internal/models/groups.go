package models

import "fmt"

// TermGroups is a containsStrings rule. Terms inside a group are ANDed,
// groups are ORed against each other.
type TermGroups [][]string

// IsEmpty returns true if the rule carries no terms at all
func (g TermGroups) IsEmpty() bool {
	for _, group := range g {
		if len(group) > 0 {
			return false
		}
	}
	return true
}

// LinkedGroups lists groups of conditions that are evaluated together
// instead of independently
type LinkedGroups [][]Condition

// IsEmpty returns true if no group carries a condition
func (g LinkedGroups) IsEmpty() bool {
	for _, group := range g {
		if len(group) > 0 {
			return false
		}
	}
	return true
}

// Contains reports whether c is referenced by any group
func (g LinkedGroups) Contains(c Condition) bool {
	for _, group := range g {
		for _, name := range group {
			if name == c {
				return true
			}
		}
	}
	return false
}

// Flatten returns every referenced condition in order of appearance
func (g LinkedGroups) Flatten() []Condition {
	var flat []Condition
	for _, group := range g {
		flat = append(flat, group...)
	}
	return flat
}

// NormalizeTermGroups converts a decoded containsStrings value into TermGroups.
// A flat list yields one single-term group per entry; nested lists are kept as
// groups and a bare string next to them becomes a singleton group.
func NormalizeTermGroups(raw any) (TermGroups, error) {
	items, err := asList(raw)
	if err != nil {
		return nil, err
	}

	groups := make(TermGroups, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			groups = append(groups, []string{s})
			continue
		}
		terms, err := asStrings(item)
		if err != nil {
			return nil, err
		}
		if len(terms) > 0 {
			groups = append(groups, terms)
		}
	}
	return groups, nil
}

// NormalizeLinkedGroups converts a decoded linkedConditions value into LinkedGroups.
// A flat list of names is one implicit group; once any nested list is present
// every bare name becomes its own group. Empty groups are dropped.
func NormalizeLinkedGroups(raw any) (LinkedGroups, error) {
	items, err := asList(raw)
	if err != nil {
		return nil, err
	}

	flat := true
	for _, item := range items {
		if _, ok := item.(string); !ok {
			flat = false
			break
		}
	}

	if flat {
		group, err := asConditions(items)
		if err != nil {
			return nil, err
		}
		if len(group) == 0 {
			return LinkedGroups{}, nil
		}
		return LinkedGroups{group}, nil
	}

	groups := make(LinkedGroups, 0, len(items))
	for _, item := range items {
		var names []any
		if s, ok := item.(string); ok {
			names = []any{s}
		} else if names, err = asList(item); err != nil {
			return nil, err
		}
		group, err := asConditions(names)
		if err != nil {
			return nil, err
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups, nil
}

func asList(raw any) ([]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, nil
	case [][]string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a list, got %T", raw)
}

func asStrings(raw any) ([]string, error) {
	items, err := asList(raw)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string, got %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}

func asConditions(items []any) ([]Condition, error) {
	out := make([]Condition, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected a condition name, got %T", item)
		}
		c, ok := ParseCondition(s)
		if !ok {
			return nil, fmt.Errorf("unknown condition %q", s)
		}
		out = append(out, c)
	}
	return out, nil
}
