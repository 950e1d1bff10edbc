// Package cache holds the client-side view state for the comment
// feed: a short-TTL cache of fetched pages and the reconciler that
// merges live-pushed comments into an already-rendered first page.
package cache

import (
	"sync"
	"time"

	"quill/app/models"
	"quill/app/pagination"
)

// DefaultTTL is how long a fetched page stays servable.
const DefaultTTL = 5 * time.Minute

// CachedPage is one fetched page of comments with its metadata.
type CachedPage struct {
	Comments  []*models.Comment
	Meta      pagination.Meta
	FetchedAt time.Time
}

type pageKey struct {
	articleID int
	page      int
}

// PageCache caches fetched comment pages per (article, page). Entries
// expire after the TTL or when the article is invalidated by a live
// comment event. The clock is injectable so expiry is testable.
type PageCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	pages map[pageKey]CachedPage
}

// NewPageCache creates a PageCache with the given TTL. A zero ttl
// means DefaultTTL.
func NewPageCache(ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PageCache{
		ttl:   ttl,
		now:   time.Now,
		pages: make(map[pageKey]CachedPage),
	}
}

// SetClock replaces the cache's time source.
func (c *PageCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get returns the cached page and whether it is still fresh.
func (c *PageCache) Get(articleID, page int) (CachedPage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.pages[pageKey{articleID, page}]
	if !ok {
		return CachedPage{}, false
	}
	if c.now().Sub(entry.FetchedAt) >= c.ttl {
		delete(c.pages, pageKey{articleID, page})
		return CachedPage{}, false
	}
	return entry, true
}

// Put stores a fetched page, stamping it with the current time.
func (c *PageCache) Put(articleID, page int, comments []*models.Comment, meta pagination.Meta) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pages[pageKey{articleID, page}] = CachedPage{
		Comments:  comments,
		Meta:      meta,
		FetchedAt: c.now(),
	}
}

// InvalidateArticle evicts every cached page for an article. Called on
// every comment_added event for that article, whatever page the viewer
// is on, so a later paginate never serves stale counts.
func (c *PageCache) InvalidateArticle(articleID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.pages {
		if key.articleID == articleID {
			delete(c.pages, key)
		}
	}
}

// Len reports the number of cached pages.
func (c *PageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pages)
}
