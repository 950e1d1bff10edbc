package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	t.Run("twelve items across two pages", func(t *testing.T) {
		page1 := Paginate(12, 1, 10)
		assert.Equal(t, 1, page1.Page)
		assert.Equal(t, 2, page1.Pages)
		assert.Equal(t, 12, page1.Total)
		assert.True(t, page1.HasNext)
		assert.False(t, page1.HasPrev)

		start, end := page1.Slice()
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)

		page2 := Paginate(12, 2, 10)
		assert.False(t, page2.HasNext)
		assert.True(t, page2.HasPrev)

		start, end = page2.Slice()
		assert.Equal(t, 10, start)
		assert.Equal(t, 12, end)
	})

	t.Run("zero total still has one page", func(t *testing.T) {
		m := Paginate(0, 1, 10)
		assert.Equal(t, 1, m.Page)
		assert.Equal(t, 1, m.Pages)
		assert.False(t, m.HasNext)
		assert.False(t, m.HasPrev)

		start, end := m.Slice()
		assert.Equal(t, 0, start)
		assert.Equal(t, 0, end)
	})

	t.Run("out of range page clamps to last", func(t *testing.T) {
		m := Paginate(5, 99, 10)
		assert.Equal(t, 1, m.Page)

		m = Paginate(25, 99, 10)
		assert.Equal(t, 3, m.Page)
		assert.False(t, m.HasNext)
		assert.True(t, m.HasPrev)
	})

	t.Run("page zero and negatives clamp to first", func(t *testing.T) {
		m := Paginate(25, 0, 10)
		assert.Equal(t, 1, m.Page)

		m = Paginate(25, -3, 10)
		assert.Equal(t, 1, m.Page)
	})

	t.Run("invalid page size falls back to default", func(t *testing.T) {
		m := Paginate(30, 1, 0)
		assert.Equal(t, DefaultPageSize, m.PageSize)
		assert.Equal(t, 3, m.Pages)
	})

	t.Run("exact multiple of page size", func(t *testing.T) {
		m := Paginate(20, 2, 10)
		assert.Equal(t, 2, m.Pages)
		assert.False(t, m.HasNext)
	})
}

func TestPageWindow(t *testing.T) {
	t.Run("centered on current page", func(t *testing.T) {
		m := Paginate(200, 10, 10)
		w := m.PageWindow()
		assert.Equal(t, []int{8, 9, 10, 11, 12}, w.Pages)
		assert.True(t, w.LeadingGap)
		assert.True(t, w.TrailingGap)
	})

	t.Run("clipped at the start", func(t *testing.T) {
		m := Paginate(200, 1, 10)
		w := m.PageWindow()
		assert.Equal(t, []int{1, 2, 3, 4, 5}, w.Pages)
		assert.False(t, w.LeadingGap)
		assert.True(t, w.TrailingGap)
	})

	t.Run("clipped at the end", func(t *testing.T) {
		m := Paginate(200, 20, 10)
		w := m.PageWindow()
		assert.Equal(t, []int{16, 17, 18, 19, 20}, w.Pages)
		assert.True(t, w.LeadingGap)
		assert.False(t, w.TrailingGap)
	})

	t.Run("fewer pages than the window", func(t *testing.T) {
		m := Paginate(25, 2, 10)
		w := m.PageWindow()
		assert.Equal(t, []int{1, 2, 3}, w.Pages)
		assert.False(t, w.LeadingGap)
		assert.False(t, w.TrailingGap)
	})
}
