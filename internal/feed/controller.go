// Package feed drives the filtering of a feed: it decides every new entry,
// counts the ones that survive and keeps loading until enough are shown.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bnema/activity-feed-filter/internal/engine"
	"github.com/bnema/activity-feed-filter/internal/models"
)

// Result is the decision taken for one entry
type Result struct {
	Entry    models.Entry
	Decision engine.Decision
}

// Stats tracks filtering statistics
type Stats struct {
	Processed     int
	Kept          int
	Removed       int
	Loads         int
	RemoveReasons map[string]int
}

// Controller applies the condition engine to incoming feed entries
type Controller struct {
	cfg atomic.Pointer[models.Config]

	mu        sync.Mutex
	stats     Stats
	loadCount int // entries kept in the current load cycle
}

// NewController creates a controller using cfg, which must already be validated
func NewController(cfg *models.Config) *Controller {
	c := &Controller{
		stats: Stats{
			RemoveReasons: make(map[string]int),
		},
	}
	c.cfg.Store(cfg)
	return c
}

// SetConfig replaces the configuration snapshot used for later decisions.
// Decisions already running finish with the snapshot they started with.
func (c *Controller) SetConfig(cfg *models.Config) {
	c.cfg.Store(cfg)
}

// Config returns the current configuration snapshot
func (c *Controller) Config() *models.Config {
	return c.cfg.Load()
}

// Stats returns a copy of the filtering statistics
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.RemoveReasons = make(map[string]int, len(c.stats.RemoveReasons))
	for reason, count := range c.stats.RemoveReasons {
		s.RemoveReasons[reason] = count
	}
	return s
}

// LoadCount returns how many entries were kept since the last Reset
func (c *Controller) LoadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadCount
}

// Reset starts a new load cycle
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadCount = 0
}

// Process decides a batch of entries with one configuration snapshot
func (c *Controller) Process(ctx context.Context, entries []models.Entry) []Result {
	logger := LoggerFromContext(ctx)
	cfg := c.cfg.Load()

	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		d := engine.Explain(entry.Signals, cfg)
		results = append(results, Result{Entry: entry, Decision: d})

		c.mu.Lock()
		c.stats.Processed++
		if d.Remove {
			c.stats.Removed++
			for _, reason := range d.Reasons {
				c.stats.RemoveReasons[reason]++
			}
		} else {
			c.stats.Kept++
			c.loadCount++
		}
		c.mu.Unlock()

		if d.Remove {
			logger.Debug("activity removed", "index", entry.Index, "kind", entry.Kind, "reasons", d.Reasons)
		}
	}

	return results
}

// Run keeps loading batches from pager until the configured target of kept
// entries is reached or the feed runs out. Cancelling ctx stops the loop and
// returns what was decided so far together with the context error.
func (c *Controller) Run(ctx context.Context, pager Pager) ([]Result, error) {
	logger := LoggerFromContext(ctx)
	c.Reset()

	var results []Result
	for {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		target := c.cfg.Load().Options.TargetLoadCount
		if c.LoadCount() >= target {
			logger.Debug("target reached", "kept", c.LoadCount(), "target", target)
			return results, nil
		}

		batch, err := pager.LoadMore(ctx)
		if errors.Is(err, ErrNoMoreEntries) {
			logger.Debug("feed exhausted", "kept", c.LoadCount(), "target", target)
			return results, nil
		}
		if err != nil {
			return results, fmt.Errorf("load more: %w", err)
		}

		c.mu.Lock()
		c.stats.Loads++
		c.mu.Unlock()

		results = append(results, c.Process(ctx, batch)...)
	}
}
