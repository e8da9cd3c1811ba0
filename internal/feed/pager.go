package feed

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/activity-feed-filter/internal/models"
)

// DefaultPageSize is how many activities one "Load More" click brings in
const DefaultPageSize = 25

// ErrNoMoreEntries is returned by a Pager once the feed is exhausted
var ErrNoMoreEntries = errors.New("no more entries")

// Pager delivers the next batch of feed entries, one batch per "Load More"
type Pager interface {
	LoadMore(ctx context.Context) ([]models.Entry, error)
}

// Pages divides entries into load batches of at most size entries
func Pages(entries []models.Entry, size int) [][]models.Entry {
	if size <= 0 {
		size = DefaultPageSize
	}
	if len(entries) == 0 {
		return nil
	}

	numPages := (len(entries) + size - 1) / size
	pages := make([][]models.Entry, 0, numPages)

	for i := 0; i < numPages; i++ {
		start := i * size
		end := start + size
		if end > len(entries) {
			end = len(entries)
		}
		pages = append(pages, entries[start:end])
	}

	return pages
}

// StaticPager serves an already parsed feed page by page
type StaticPager struct {
	mu    sync.Mutex
	pages [][]models.Entry
	next  int
}

// NewStaticPager splits entries into pages of pageSize
func NewStaticPager(entries []models.Entry, pageSize int) *StaticPager {
	return &StaticPager{pages: Pages(entries, pageSize)}
}

// LoadMore returns the next page or ErrNoMoreEntries
func (p *StaticPager) LoadMore(ctx context.Context) ([]models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.next >= len(p.pages) {
		return nil, ErrNoMoreEntries
	}
	page := p.pages[p.next]
	p.next++
	return page, nil
}

// Remaining returns the number of pages not yet loaded
func (p *StaticPager) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pages) - p.next
}
