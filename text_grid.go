package shingles

import (
	"iter"

	"github.com/lestrrat-go/pdebug"
)

// TextGridShingles produces two dimensional windows over rows of UTF-8
// text, such as the lines of a document. Width and stepX are counted
// in characters, height and stepY in rows.
//
// Each active row keeps its own byte offset, since rows with the same
// number of characters may differ in byte length. Acceptance follows
// the same rule as GridShingles: at least one row must hold the full
// width.
type TextGridShingles struct {
	rows    []string
	pos     cursor
	width   int
	height  int
	stepX   int
	stepY   int
	dropped int
}

// NewTextGrid creates a 2D windower over rows. size is [width, height],
// and both steps are 1.
func NewTextGrid(rows []string, size [2]int) (*TextGridShingles, error) {
	return NewTextGridWithStep(rows, size, [2]int{1, 1})
}

// NewTextGridWithStep creates a 2D windower over rows. size is
// [width, height] and step is [stepX, stepY].
func NewTextGridWithStep(rows []string, size, step [2]int) (*TextGridShingles, error) {
	if err := validate2D(size, step); err != nil {
		return nil, err
	}
	return &TextGridShingles{
		rows:   rows,
		width:  size[0],
		height: size[1],
		stepX:  step[0],
		stepY:  step[1],
	}, nil
}

// Next returns the next window: one substring per row. The outer slice
// is newly allocated for every window.
func (g *TextGridShingles) Next() ([]string, bool) {
	if len(g.rows) < g.height {
		return nil, false
	}

	offsets := g.pos.rowOffsets(g.height)
	ret := make([]string, 0, g.height)
	for len(g.rows) >= g.height {
		sufficientWidth := false
		for y, row := range g.rows[:g.height] {
			pos := offsets[y]
			r := scanBoundaries(row, pos, g.width, g.stepX)
			if r.fullWidth(g.width) {
				sufficientWidth = true
			}

			end := len(row)
			if r.hasEnd {
				end = r.end
			}
			ret = append(ret, row[pos:end])

			// a row that cannot step any further is exhausted for the
			// rest of this block of rows
			if r.hasNext {
				offsets[y] = r.next
			} else {
				offsets[y] = len(row)
			}
		}

		if sufficientWidth {
			return ret, true
		}

		step := min(g.stepY, len(g.rows))
		if pdebug.Enabled {
			pdebug.Printf("TextGridShingles: no window at row %d, dropping %d rows", g.dropped, step)
		}
		g.rows = g.rows[step:]
		g.dropped += step
		resetOffsets(offsets)
		ret = ret[:0]
	}

	return nil, false
}

// All returns the remaining windows as a sequence.
func (g *TextGridShingles) All() iter.Seq[[]string] {
	return Seq[[]string](g)
}

// Hashes returns an iterator over the hashes of the remaining windows.
func (g *TextGridShingles) Hashes(options ...HashOption) *ShingleHasher[[]string] {
	return NewShingleHasher[[]string](g, EncodeTextRows, options...)
}
