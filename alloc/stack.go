package alloc

// Stack is a pair of LIFO arena allocators selected by parity, used for
// short-lived contribution blocks that are produced by one node's
// factorization and consumed by its parent's assembly step in strict
// last-in-first-out order relative to other blocks on the same side.
//
// There is no teacher analogue for a stack arena specifically (RuiCat-
// circuit never pools matrix buffers), so the page-list growth here
// follows the same "grow by adding a page, never copy" shape as Buddy's
// table of pages: once a page is handed out, live blocks carved from it
// keep valid addresses for as long as they're outstanding, which a
// copying grow (as a plain append-growing slice would do) cannot
// guarantee when siblings at the same parity hold contributions alive
// simultaneously.
type Stack struct {
	sides [2]*stackSide
}

type stackPage struct {
	buf  []float64
	used int
}

type liveMark struct {
	page   int
	offset int
	length int
}

type stackSide struct {
	pages   []*stackPage
	pageCap int
	marks   []liveMark
}

// NewStack creates a Stack with each side's pages sized to hold at least
// pageCap float64s before a new page is needed.
func NewStack(pageCap int) *Stack {
	if pageCap < 1 {
		pageCap = 1
	}
	return &Stack{
		sides: [2]*stackSide{
			{pageCap: pageCap},
			{pageCap: pageCap},
		},
	}
}

// Alloc reserves n float64s on the side selected by parity (0 or 1) and
// returns a zero-initialized view onto them. The returned slice's address
// is stable until it is freed: later allocations never invalidate it.
func (s *Stack) Alloc(parity int, n int) []float64 {
	side := s.sides[parity&1]
	if len(side.pages) == 0 || cap(side.pages[len(side.pages)-1].buf)-side.pages[len(side.pages)-1].used < n {
		sz := side.pageCap
		if n > sz {
			sz = n
		}
		side.pages = append(side.pages, &stackPage{buf: make([]float64, sz)})
	}
	page := side.pages[len(side.pages)-1]
	pageIdx := len(side.pages) - 1
	offset := page.used
	block := page.buf[offset : offset+n]
	for i := range block {
		block[i] = 0
	}
	page.used += n
	side.marks = append(side.marks, liveMark{page: pageIdx, offset: offset, length: n})
	return block
}

// Free releases the block most recently allocated (and not yet freed) on
// the given parity side. blk must be the slice returned by the matching
// Alloc call; passing anything else is a LIFO violation.
func (s *Stack) Free(parity int, blk []float64) {
	side := s.sides[parity&1]
	if len(side.marks) == 0 {
		panic(ErrLIFOViolation)
	}
	top := side.marks[len(side.marks)-1]
	if top.length != len(blk) {
		panic(ErrLIFOViolation)
	}
	page := side.pages[top.page]
	if top.length > 0 && &page.buf[top.offset] != &blk[0] {
		panic(ErrLIFOViolation)
	}
	page.used -= top.length
	side.marks = side.marks[:len(side.marks)-1]
}

// LiveFloats reports the number of float64s currently outstanding on the
// given parity side, for diagnostics and tests that verify a sweep leaves
// the stack empty.
func (s *Stack) LiveFloats(parity int) int {
	side := s.sides[parity&1]
	total := 0
	for _, p := range side.pages {
		total += p.used
	}
	return total
}
