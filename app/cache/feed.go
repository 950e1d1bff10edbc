package cache

import (
	"sync"

	"quill/app/models"
)

// FeedView reconciles the currently rendered comment list with live
// comment_added events. It decides, per event, between splicing the
// comment into a rendered first page and surfacing a "new comments"
// notice that prompts a refetch.
type FeedView struct {
	mu sync.Mutex

	cache *PageCache

	articleID int
	page      int
	rendered  []*models.Comment
	seen      map[int]bool

	commentCount int
	pending      int
}

// NewFeedView creates a FeedView backed by the given page cache.
func NewFeedView(cache *PageCache) *FeedView {
	return &FeedView{cache: cache, seen: make(map[int]bool)}
}

// Show replaces the rendered list with a freshly fetched page.
func (v *FeedView) Show(articleID, page int, comments []*models.Comment, total int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.articleID = articleID
	v.page = page
	v.rendered = append([]*models.Comment(nil), comments...)
	v.seen = make(map[int]bool, len(comments))
	for _, c := range comments {
		v.seen[c.ID] = true
	}
	v.commentCount = total
	v.pending = 0
}

// ApplyCommentAdded handles one live event. Cached pages for the
// event's article are always invalidated, even when the viewer is
// elsewhere. If the viewer is on page 1 of that article the comment is
// spliced at the top without a refetch; page 1 sorted newest-first is
// exactly the most recent N comments, so the splice preserves order.
// Duplicate deliveries of the same comment are suppressed by ID.
func (v *FeedView) ApplyCommentAdded(comment *models.Comment, commentCount int) {
	v.cache.InvalidateArticle(comment.ArticleID)

	v.mu.Lock()
	defer v.mu.Unlock()

	if comment.ArticleID != v.articleID {
		return
	}

	if v.seen[comment.ID] {
		return
	}

	v.commentCount = commentCount

	if v.page != 1 {
		v.pending++
		return
	}

	v.seen[comment.ID] = true
	v.rendered = append([]*models.Comment{comment}, v.rendered...)
}

// Rendered returns the comments currently on screen.
func (v *FeedView) Rendered() []*models.Comment {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]*models.Comment(nil), v.rendered...)
}

// CommentCount returns the viewer's latest known total for the
// article.
func (v *FeedView) CommentCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.commentCount
}

// Pending reports how many comments arrived while the viewer was off
// page 1; a non-zero value backs the "new comments available"
// affordance. It resets on the next Show.
func (v *FeedView) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending
}
