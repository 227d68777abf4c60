package shingles

import "iter"

// TextShingles produces windows over UTF-8 text. Size and step are
// counted in characters (code points), and every window starts and
// ends on a character boundary.
type TextShingles struct {
	data string
	size int
	step int
}

// NewText creates a windower over s with the given window size in
// characters and a step of 1.
func NewText(s string, size int) (*TextShingles, error) {
	return NewTextWithStep(s, size, 1)
}

// NewTextWithStep creates a windower over s. Consecutive windows start
// step characters apart.
func NewTextWithStep(s string, size, step int) (*TextShingles, error) {
	if err := validate(size, step); err != nil {
		return nil, err
	}
	return &TextShingles{
		data: s,
		size: size,
		step: step,
	}, nil
}

// Next returns the next window as a substring of the input text.
func (t *TextShingles) Next() (string, bool) {
	if len(t.data) == 0 {
		return "", false
	}

	// a single scan finds both where this window ends and where the
	// next one starts
	r := scanBoundaries(t.data, 0, t.size, t.step)

	var ret string
	var ok bool
	switch {
	case r.hasEnd:
		ret, ok = t.data[:r.end], true
	case r.chars == t.size:
		// the window covers exactly what is left
		ret, ok = t.data, true
	}

	if r.hasNext {
		t.data = t.data[r.next:]
	} else {
		t.data = t.data[len(t.data):]
	}

	return ret, ok
}

// All returns the remaining windows as a sequence.
func (t *TextShingles) All() iter.Seq[string] {
	return Seq[string](t)
}

// Hashes returns an iterator over the hashes of the remaining windows.
func (t *TextShingles) Hashes(options ...HashOption) *ShingleHasher[string] {
	return NewShingleHasher[string](t, EncodeText, options...)
}
