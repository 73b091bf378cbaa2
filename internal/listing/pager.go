package listing

// PageSizes are the sizes an operator can cycle through.
var PageSizes = []int{10, 20, 50}

// DefaultPageSize is the first entry of PageSizes.
const DefaultPageSize = 10

// Pager is a 1-based page cursor over an in-memory sequence.
type Pager struct {
	Page int
	Size int
}

// NewPager returns a pager on page 1. Sizes that are not positive fall back
// to DefaultPageSize.
func NewPager(size int) Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Pager{Page: 1, Size: size}
}

func (p Pager) normalized() Pager {
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

// Bounds returns the half-open range [start, end) of the current page over n
// items, clipped to n.
func (p Pager) Bounds(n int) (start, end int) {
	p = p.normalized()
	start = (p.Page - 1) * p.Size
	if start > n {
		start = n
	}
	end = start + p.Size
	if end > n {
		end = n
	}
	return start, end
}

// PageCount is the number of pages needed for n items. An empty sequence
// still has one (empty) page.
func (p Pager) PageCount(n int) int {
	p = p.normalized()
	if n <= 0 {
		return 1
	}
	return (n + p.Size - 1) / p.Size
}

// SetSize changes the page size and returns to page 1.
func (p Pager) SetSize(size int) Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Pager{Page: 1, Size: size}
}

// SetPage moves to page, clamped to [1, PageCount(n)].
func (p Pager) SetPage(page, n int) Pager {
	p = p.normalized()
	last := p.PageCount(n)
	switch {
	case page < 1:
		page = 1
	case page > last:
		page = last
	}
	p.Page = page
	return p
}

// Next and Prev step one page, staying within bounds.
func (p Pager) Next(n int) Pager { return p.SetPage(p.normalized().Page+1, n) }

func (p Pager) Prev(n int) Pager { return p.SetPage(p.normalized().Page-1, n) }

// CycleSize moves to the next entry of PageSizes and resets to page 1.
func (p Pager) CycleSize() Pager {
	return p.SetSize(NextPageSize(p.Size))
}

// NextPageSize returns the entry after size in PageSizes, wrapping around.
// Unknown sizes restart the cycle.
func NextPageSize(size int) int {
	for i, s := range PageSizes {
		if s == size {
			return PageSizes[(i+1)%len(PageSizes)]
		}
	}
	return PageSizes[0]
}

// Slice returns the items on the pager's current page.
func Slice[T any](items []T, p Pager) []T {
	start, end := p.Bounds(len(items))
	return items[start:end]
}
