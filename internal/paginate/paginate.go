// Package paginate provides fixed-page windowing over an ordered result
// list, for carousel-style browsing. Pagination is data-driven: page size and
// item count are the only inputs, and scroll offsets are derived from the
// page index, never measured back from rendered output.
package paginate

// Carousel tracks the current page over itemCount items shown pageSize at a
// time. Each carousel owns its page index; sections that happen to show the
// same result set still page independently.
type Carousel struct {
	pageSize  int
	itemCount int
	page      int
}

func New(itemCount, pageSize int) Carousel {
	if pageSize < 1 {
		pageSize = 1
	}
	if itemCount < 0 {
		itemCount = 0
	}
	return Carousel{pageSize: pageSize, itemCount: itemCount}
}

// PageCount is ceil(itemCount / pageSize).
func (c Carousel) PageCount() int {
	return (c.itemCount + c.pageSize - 1) / c.pageSize
}

func (c Carousel) Page() int {
	return c.page
}

func (c Carousel) PageSize() int {
	return c.pageSize
}

func (c Carousel) ItemCount() int {
	return c.itemCount
}

// ScrollTo jumps to page p, clamped to [0, PageCount-1].
func (c *Carousel) ScrollTo(p int) {
	c.page = c.clamp(p)
}

// Scroll moves exactly one page in the direction of delta and clamps at the
// boundary rather than wrapping.
func (c *Carousel) Scroll(delta int) {
	switch {
	case delta > 0:
		c.page = c.clamp(c.page + 1)
	case delta < 0:
		c.page = c.clamp(c.page - 1)
	}
}

// Resize updates the item count after the underlying filtered set changed,
// re-clamping the current page.
func (c *Carousel) Resize(itemCount int) {
	if itemCount < 0 {
		itemCount = 0
	}
	c.itemCount = itemCount
	c.page = c.clamp(c.page)
}

// Window returns the half-open index range [start, end) of the current page.
func (c Carousel) Window() (start, end int) {
	start = c.page * c.pageSize
	if start > c.itemCount {
		start = c.itemCount
	}
	end = start + c.pageSize
	if end > c.itemCount {
		end = c.itemCount
	}
	return start, end
}

// Offset derives the scroll offset of the current page from item geometry:
// each page spans pageSize items of itemWidth plus a fixed gap.
func (c Carousel) Offset(itemWidth, gap int) int {
	return c.page * (itemWidth*c.pageSize + gap)
}

func (c Carousel) AtStart() bool {
	return c.page == 0
}

func (c Carousel) AtEnd() bool {
	return c.page >= c.PageCount()-1
}

func (c Carousel) clamp(p int) int {
	last := c.PageCount() - 1
	if last < 0 {
		last = 0
	}
	if p > last {
		p = last
	}
	if p < 0 {
		p = 0
	}
	return p
}
