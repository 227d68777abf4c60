package shingles

import "unicode/utf8"

// boundaryScan is the result of scanning a UTF-8 buffer for the
// character boundaries that delimit a window.
type boundaryScan struct {
	// chars is the number of characters counted before the scan stopped
	chars int
	// end is the byte offset of character #size, the exclusive end
	// of the window. Only meaningful if hasEnd is true
	end    int
	hasEnd bool
	// next is the byte offset of character #step, where the following
	// window starts. Only meaningful if hasNext is true
	next    int
	hasNext bool
}

// isCharBoundary reports whether b starts a character: an ASCII byte or
// a UTF-8 leading byte (b < 0x80 || b >= 0xC0). Continuation bytes are
// never boundaries.
func isCharBoundary(b byte) bool {
	return utf8.RuneStart(b)
}

// scanBoundaries walks s forward from byte offset from, counting
// characters, until it has located both the start of character #step
// and the start of character #size (counted from from), or until it
// runs out of bytes. Offsets in the result are absolute offsets into s.
//
// size and step must both be at least 1, so neither offset can ever
// be found at from itself.
func scanBoundaries(s string, from, size, step int) boundaryScan {
	var r boundaryScan
	for i := from; i < len(s); i++ {
		if !isCharBoundary(s[i]) {
			continue
		}

		if r.chars == step {
			r.next = i
			r.hasNext = true
		}
		if r.chars == size {
			r.end = i
			r.hasEnd = true
		}
		if r.hasNext && r.hasEnd {
			break
		}
		r.chars++
	}
	return r
}

// fullWidth reports whether the scanned span holds a complete window:
// either the end of the window was located, or the span ended exactly
// after size characters.
func (r boundaryScan) fullWidth(size int) bool {
	return r.hasEnd || r.chars == size
}
