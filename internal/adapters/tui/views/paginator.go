package views

// Paginator tracks a cursor over a list and the page that contains it
type Paginator struct {
	pageSize int
	cursor   int
	total    int
}

// NewPaginator creates a new paginator with the given page size
func NewPaginator(pageSize int) *Paginator {
	p := &Paginator{}
	p.SetPageSize(pageSize)
	return p
}

// SetPageSize changes the number of rows per page
func (p *Paginator) SetPageSize(n int) {
	if n <= 0 {
		n = 10
	}
	p.pageSize = n
}

// SetTotal sets the number of items, clamping the cursor
func (p *Paginator) SetTotal(total int) {
	p.total = max(total, 0)
	p.SetCursor(p.cursor)
}

// Total returns the number of items
func (p *Paginator) Total() int {
	return p.total
}

// Cursor returns the absolute cursor index
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor to pos, clamped to the list
func (p *Paginator) SetCursor(pos int) {
	p.cursor = max(min(pos, p.total-1), 0)
}

// CursorUp moves the cursor up by one
func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.cursor--
	return true
}

// CursorDown moves the cursor down by one
func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.total-1 {
		return false
	}
	p.cursor++
	return true
}

// VisibleRange returns the half-open index range of the cursor's page
func (p *Paginator) VisibleRange() (start, end int) {
	start = (p.cursor / p.pageSize) * p.pageSize
	end = min(start+p.pageSize, p.total)
	return start, end
}

// CurrentPage returns the 1-based page of the cursor
func (p *Paginator) CurrentPage() int {
	return p.cursor/p.pageSize + 1
}

// TotalPages returns the number of pages, at least 1
func (p *Paginator) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.pageSize - 1) / p.pageSize
}
