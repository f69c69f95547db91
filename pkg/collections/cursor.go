package collections

// Cursor iterates a HugeArray's elements in index order, handing the caller contiguous
// borrowed page slices instead of copying (spec.md §4.1). The borrow is tied to the
// cursor's lifetime: callers must not retain Page() past the next Next() call.
type Cursor[T Numeric] struct {
	arr   *HugeArray[T]
	start int64
	end   int64 // exclusive
	pos   int64 // next index to hand out

	page   []T
	offset int
	limit  int
}

// NewCursor creates a cursor with no bound range; call InitRange before Next.
func (a *HugeArray[T]) NewCursor() *Cursor[T] {
	return &Cursor[T]{arr: a}
}

// InitRange binds the cursor to [start, endExclusive).
func (c *Cursor[T]) InitRange(start, endExclusive int64) {
	c.start = start
	c.end = endExclusive
	c.pos = start
	c.page = nil
	c.offset = 0
	c.limit = 0
}

// Next advances the cursor to the next page-contiguous run and returns true if one is
// available. After Next returns true, Page()/Offset()/Limit() describe a valid
// [offset, limit) window into Page().
func (c *Cursor[T]) Next() bool {
	if c.pos >= c.end {
		return false
	}
	if !c.arr.paged() {
		c.page = c.arr.single
		c.offset = int(c.pos)
		if c.end < int64(len(c.page)) {
			c.limit = int(c.end)
		} else {
			c.limit = len(c.page)
		}
		c.pos = c.end
		return true
	}
	p, o := pageIndex(c.pos)
	page := c.arr.pages[p]
	remainingInPage := int64(len(page) - o)
	remainingInRange := c.end - c.pos
	n := remainingInPage
	if remainingInRange < n {
		n = remainingInRange
	}
	c.page = page
	c.offset = o
	c.limit = o + int(n)
	c.pos += n
	return true
}

func (c *Cursor[T]) Page() []T  { return c.page }
func (c *Cursor[T]) Offset() int { return c.offset }
func (c *Cursor[T]) Limit() int  { return c.limit }

// Each is a convenience helper that visits every element index and value in [start, end)
// via the cursor contract, used by test helpers that verify "linear iteration equals
// get(i)" (spec.md §8 invariant 3).
func (a *HugeArray[T]) Each(start, end int64, fn func(i int64, v T)) {
	cur := a.NewCursor()
	cur.InitRange(start, end)
	idx := start
	for cur.Next() {
		page := cur.Page()
		for o := cur.Offset(); o < cur.Limit(); o++ {
			fn(idx, page[o])
			idx++
		}
	}
}
