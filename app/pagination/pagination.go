// Package pagination computes deterministic page slicing metadata for
// the comment and article feeds.
package pagination

// DefaultPageSize is used when a request does not specify a limit.
const DefaultPageSize = 10

// WindowWidth is the most page links rendered around the current page.
const WindowWidth = 5

// Meta describes one page of a paginated listing.
type Meta struct {
	Page     int  `json:"page"`
	PageSize int  `json:"limit"`
	Total    int  `json:"total"`
	Pages    int  `json:"pages"`
	HasNext  bool `json:"hasNext"`
	HasPrev  bool `json:"hasPrev"`
}

// Paginate computes page metadata for a listing of total items. The
// requested page is clamped into [1, pages]; out-of-range requests
// resolve to the nearest valid page instead of erroring. Pages is at
// least 1 even when total is 0.
func Paginate(total, page, pageSize int) Meta {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}

	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	return Meta{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Pages:    pages,
		HasNext:  page < pages,
		HasPrev:  page > 1,
	}
}

// Offset returns the index of the first item on the page.
func (m Meta) Offset() int {
	return (m.Page - 1) * m.PageSize
}

// Slice returns the [start, end) bounds of the page within a listing
// of m.Total items.
func (m Meta) Slice() (int, int) {
	start := m.Offset()
	if start > m.Total {
		start = m.Total
	}
	end := start + m.PageSize
	if end > m.Total {
		end = m.Total
	}
	return start, end
}

// Window is the set of page links to render around the current page.
// A display concern only; it never affects which items a page holds.
type Window struct {
	Pages       []int `json:"pages"`
	LeadingGap  bool  `json:"leadingGap"`
	TrailingGap bool  `json:"trailingGap"`
}

// PageWindow returns at most WindowWidth page links centered on the
// current page, with gap markers where pages are elided.
func (m Meta) PageWindow() Window {
	start := m.Page - WindowWidth/2
	if start < 1 {
		start = 1
	}
	end := start + WindowWidth - 1
	if end > m.Pages {
		end = m.Pages
		start = end - WindowWidth + 1
		if start < 1 {
			start = 1
		}
	}

	w := Window{
		LeadingGap:  start > 1,
		TrailingGap: end < m.Pages,
	}
	for p := start; p <= end; p++ {
		w.Pages = append(w.Pages, p)
	}
	return w
}
