package shingles

type cursorKind uint8

const (
	// cursorUnset is the state before the first window is produced
	cursorUnset cursorKind = iota
	// cursorOffset holds one column offset shared by every row. Rows of
	// fixed-size elements all advance in lockstep
	cursorOffset
	// cursorOffsets holds one byte offset per active row. Text rows
	// advance independently because the same number of characters may
	// span a different number of bytes in each row
	cursorOffsets
)

func (k cursorKind) String() string {
	switch k {
	case cursorUnset:
		return "unset"
	case cursorOffset:
		return "offset"
	case cursorOffsets:
		return "offsets"
	}
	return "unknown"
}

// cursor is the column position of a 2D windower
type cursor struct {
	kind    cursorKind
	offset  int
	offsets []int
}

// column returns the shared column offset. It panics if the cursor
// holds per-row offsets.
func (c *cursor) column() int {
	switch c.kind {
	case cursorUnset:
		return 0
	case cursorOffset:
		return c.offset
	}
	panic("shingles: column offset requested from " + c.kind.String() + " cursor")
}

func (c *cursor) setColumn(v int) {
	c.kind = cursorOffset
	c.offset = v
	c.offsets = nil
}

// rowOffsets returns the per-row offsets, allocating n zeroed offsets
// the first time. It panics if the cursor holds a shared column offset.
func (c *cursor) rowOffsets(n int) []int {
	switch c.kind {
	case cursorUnset:
		c.kind = cursorOffsets
		c.offsets = make([]int, n)
		return c.offsets
	case cursorOffsets:
		return c.offsets
	}
	panic("shingles: row offsets requested from " + c.kind.String() + " cursor")
}

func resetOffsets(offsets []int) {
	for i := range offsets {
		offsets[i] = 0
	}
}
