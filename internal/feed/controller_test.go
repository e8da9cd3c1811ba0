package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/activity-feed-filter/internal/models"
)

func entries(signals ...models.Signals) []models.Entry {
	out := make([]models.Entry, len(signals))
	for i, s := range signals {
		out[i] = models.Entry{Index: i, Signals: s}
	}
	return out
}

var (
	commented   = models.Signals{HasComments: true, HasLikes: true}
	uncommented = models.Signals{HasLikes: true}
)

func uncommentedConfig(target int) *models.Config {
	return &models.Config{
		Remove:  models.RemoveConfig{Uncommented: true},
		Options: models.OptionsConfig{TargetLoadCount: target},
	}
}

func TestProcessCountsKeptEntries(t *testing.T) {
	c := NewController(uncommentedConfig(2))

	results := c.Process(context.Background(), entries(commented, uncommented, commented))
	require.Len(t, results, 3)
	assert.False(t, results[0].Decision.Remove)
	assert.True(t, results[1].Decision.Remove)
	assert.Equal(t, []string{"uncommented"}, results[1].Decision.Reasons)

	assert.Equal(t, 2, c.LoadCount())
	stats := c.Stats()
	assert.Equal(t, 3, stats.Processed)
	assert.Equal(t, 2, stats.Kept)
	assert.Equal(t, 1, stats.Removed)
	assert.Equal(t, map[string]int{"uncommented": 1}, stats.RemoveReasons)

	c.Reset()
	assert.Equal(t, 0, c.LoadCount())
	assert.Equal(t, 2, c.Stats().Kept)
}

func TestRunLoadsUntilTargetReached(t *testing.T) {
	feed := entries(uncommented, uncommented, commented, uncommented, commented, commented, commented)
	pager := NewStaticPager(feed, 2)
	c := NewController(uncommentedConfig(2))

	results, err := c.Run(context.Background(), pager)
	require.NoError(t, err)

	// pages: [u u] [c u] [c c] [c]; the target is passed on the third page
	assert.Len(t, results, 6)
	assert.Equal(t, 3, c.Stats().Loads)
	assert.Equal(t, 3, c.LoadCount())
	assert.Equal(t, 1, pager.Remaining())
}

func TestRunStopsWhenFeedExhausted(t *testing.T) {
	pager := NewStaticPager(entries(uncommented, commented, uncommented), 2)
	c := NewController(uncommentedConfig(5))

	results, err := c.Run(context.Background(), pager)
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, 1, c.LoadCount())
	assert.Equal(t, 0, pager.Remaining())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewController(uncommentedConfig(1))
	results, err := c.Run(ctx, NewStaticPager(entries(commented), 1))
	assert.Empty(t, results)
	assert.True(t, errors.Is(err, context.Canceled))
}

type failingPager struct{}

func (failingPager) LoadMore(context.Context) ([]models.Entry, error) {
	return nil, errors.New("boom")
}

func TestRunPropagatesPagerError(t *testing.T) {
	c := NewController(uncommentedConfig(1))
	_, err := c.Run(context.Background(), failingPager{})
	assert.ErrorContains(t, err, "load more: boom")
}

func TestSetConfigAppliesToLaterBatches(t *testing.T) {
	c := NewController(uncommentedConfig(1))
	first := c.Process(context.Background(), entries(uncommented))
	assert.True(t, first[0].Decision.Remove)

	c.SetConfig(&models.Config{Options: models.OptionsConfig{TargetLoadCount: 1}})
	second := c.Process(context.Background(), entries(uncommented))
	assert.False(t, second[0].Decision.Remove)
	assert.Equal(t, 1, c.Config().Options.TargetLoadCount)
}

func TestPages(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		size     int
		expected []int
	}{
		{name: "empty", count: 0, size: 3, expected: nil},
		{name: "single page", count: 3, size: 3, expected: []int{3}},
		{name: "remainder", count: 7, size: 3, expected: []int{3, 3, 1}},
		{name: "default size", count: 30, size: 0, expected: []int{25, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := make([]models.Entry, tt.count)
			var sizes []int
			for _, page := range Pages(feed, tt.size) {
				sizes = append(sizes, len(page))
			}
			assert.Equal(t, tt.expected, sizes)
		})
	}
}
