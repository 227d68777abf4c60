package shingles

import (
	"iter"

	"github.com/lestrrat-go/pdebug"
)

// GridShingles produces two dimensional windows over rows of fixed-size
// elements. Rows may differ in length.
//
// A window is accepted when it spans height rows and at least one of
// those rows holds the full width at the current column. Shorter rows
// contribute a truncated, possibly empty, slice. When no window can be
// built at the current column, the windower drops stepY rows and starts
// again from column 0.
type GridShingles[T any] struct {
	rows   [][]T
	pos    cursor
	width  int
	height int
	stepX  int
	stepY  int
	// number of rows dropped so far, only used for tracing
	dropped int
}

// NewGrid creates a 2D windower over rows. size is [width, height],
// and both steps are 1.
func NewGrid[T any](rows [][]T, size [2]int) (*GridShingles[T], error) {
	return NewGridWithStep(rows, size, [2]int{1, 1})
}

// NewGridWithStep creates a 2D windower over rows. size is
// [width, height] and step is [stepX, stepY].
func NewGridWithStep[T any](rows [][]T, size, step [2]int) (*GridShingles[T], error) {
	if err := validate2D(size, step); err != nil {
		return nil, err
	}
	return &GridShingles[T]{
		rows:   rows,
		width:  size[0],
		height: size[1],
		stepX:  step[0],
		stepY:  step[1],
	}, nil
}

// Next returns the next window: one slice per row, all starting at the
// same column. The outer slice is newly allocated for every window;
// the row slices share memory with the input rows.
func (g *GridShingles[T]) Next() ([][]T, bool) {
	pos := g.pos.column()
	if len(g.rows) < g.height {
		return nil, false
	}

	ret := make([][]T, 0, g.height)
	for len(g.rows) >= g.height {
		sufficientWidth := false
		longest := 0
		for _, row := range g.rows[:g.height] {
			longest = max(longest, len(row))
			if pos <= len(row)-g.width {
				sufficientWidth = true
			}
			from := min(pos, len(row))
			to := from + min(g.width, len(row)-from)
			ret = append(ret, row[from:to:to])
		}

		if sufficientWidth {
			// saturate at the longest row
			next := longest
			if g.stepX <= longest-pos {
				next = pos + g.stepX
			}
			g.pos.setColumn(next)
			return ret, true
		}

		step := min(g.stepY, len(g.rows))
		if pdebug.Enabled {
			pdebug.Printf("GridShingles: no window at row %d column %d, dropping %d rows", g.dropped, pos, step)
		}
		g.rows = g.rows[step:]
		g.dropped += step
		pos = 0
		ret = ret[:0]
	}

	g.pos.setColumn(pos)
	return nil, false
}

// All returns the remaining windows as a sequence.
func (g *GridShingles[T]) All() iter.Seq[[][]T] {
	return Seq[[][]T](g)
}

// Hashes returns an iterator over the hashes of the remaining windows.
func (g *GridShingles[T]) Hashes(options ...HashOption) *ShingleHasher[[][]T] {
	return NewShingleHasher[[][]T](g, EncodeRows[T], options...)
}
