package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTermGroups(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected TermGroups
	}{
		{
			name:     "nil",
			input:    nil,
			expected: TermGroups{},
		},
		{
			name:     "flat list is ORed",
			input:    []any{"foo", "bar"},
			expected: TermGroups{{"foo"}, {"bar"}},
		},
		{
			name:     "nested lists are kept",
			input:    []any{[]any{"foo", "bar"}, []any{"baz"}},
			expected: TermGroups{{"foo", "bar"}, {"baz"}},
		},
		{
			name:     "bare string next to lists",
			input:    []any{"foo", []any{"bar", "baz"}},
			expected: TermGroups{{"foo"}, {"bar", "baz"}},
		},
		{
			name:     "empty inner group dropped",
			input:    []any{[]any{}},
			expected: TermGroups{},
		},
		{
			name:     "typed string slice",
			input:    []string{"a"},
			expected: TermGroups{{"a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := NormalizeTermGroups(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, groups)
		})
	}
}

func TestNormalizeTermGroupsRejectsNonStrings(t *testing.T) {
	_, err := NormalizeTermGroups([]any{[]any{"a", 3}})
	assert.Error(t, err)

	_, err = NormalizeTermGroups("not a list")
	assert.Error(t, err)
}

func TestNormalizeLinkedGroups(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected LinkedGroups
	}{
		{
			name:     "empty",
			input:    []any{},
			expected: LinkedGroups{},
		},
		{
			name:     "empty nested group",
			input:    []any{[]any{}},
			expected: LinkedGroups{},
		},
		{
			name:     "flat list is one group",
			input:    []any{"images", "unliked"},
			expected: LinkedGroups{{ConditionImages, ConditionUnliked}},
		},
		{
			name:  "multiple groups",
			input: []any{[]any{"videos", "uncommented"}, []any{"images", "unliked"}},
			expected: LinkedGroups{
				{ConditionVideos, ConditionUncommented},
				{ConditionImages, ConditionUnliked},
			},
		},
		{
			name:  "bare name alongside groups",
			input: []any{"videos", []any{"images", "unliked"}},
			expected: LinkedGroups{
				{ConditionVideos},
				{ConditionImages, ConditionUnliked},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := NormalizeLinkedGroups(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, groups)
		})
	}
}

func TestNormalizeLinkedGroupsRejectsUnknownName(t *testing.T) {
	_, err := NormalizeLinkedGroups([]any{"images", "pictures"})
	assert.ErrorContains(t, err, `unknown condition "pictures"`)
}

func TestLinkedGroupsContains(t *testing.T) {
	groups := LinkedGroups{{ConditionImages}, {ConditionVideos, ConditionUnliked}}

	assert.True(t, groups.Contains(ConditionUnliked))
	assert.False(t, groups.Contains(ConditionText))
	assert.Equal(t, []Condition{ConditionImages, ConditionVideos, ConditionUnliked}, groups.Flatten())
}

func TestRemoveConfigEnabled(t *testing.T) {
	r := RemoveConfig{Images: true, ContainsStrings: TermGroups{{}}}

	assert.True(t, r.Enabled(ConditionImages))
	assert.False(t, r.Enabled(ConditionVideos))
	assert.False(t, r.Enabled(ConditionContainsStrings), "a rule without terms is not enabled")

	r.ContainsStrings = TermGroups{{"spoiler"}}
	assert.True(t, r.Enabled(ConditionContainsStrings))
}

func TestParseCondition(t *testing.T) {
	for _, c := range AllConditions() {
		parsed, ok := ParseCondition(c.String())
		assert.True(t, ok)
		assert.Equal(t, c, parsed)
	}

	_, ok := ParseCondition("Images")
	assert.False(t, ok)
}
