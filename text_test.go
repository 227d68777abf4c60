package shingles

import (
	"fmt"
	"slices"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func collectText(t *testing.T, s string, size, step int) []string {
	t.Helper()
	ts, err := NewTextWithStep(s, size, step)
	require.NoError(t, err, "NewTextWithStep should succeed")
	return slices.Collect(ts.All())
}

// naiveTextWindows windows the decoded runes, then re-encodes them
func naiveTextWindows(s string, size, step int) []string {
	var ret []string
	for _, w := range naiveWindows([]rune(s), size, step) {
		ret = append(ret, string(w))
	}
	return ret
}

func TestText(t *testing.T) {
	t.Parallel()

	testValues := []struct {
		input    string
		size     int
		step     int
		expected []string
	}{
		{"Привет!", 4, 1, []string{"Прив", "риве", "ивет", "вет!"}},
		{"hello!", 4, 2, []string{"hell", "llo!"}},
		{"привет!", 4, 2, []string{"прив", "ивет"}},
		{"hello", 5, 1, []string{"hello"}},
		{"hello", 6, 1, nil},
		{"", 1, 1, nil},
		{"日本語", 1, 1, []string{"日", "本", "語"}},
		{"a日b本c", 2, 3, []string{"a日", "本c"}},
		{"🚴🏻 abcd", 2, 1, []string{"🚴🏻", "🏻 ", " a", "ab", "bc", "cd"}},
		{"abc", 3, 100, []string{"abc"}},
	}

	for _, v := range testValues {
		t.Run(fmt.Sprintf("%q size=%d step=%d", v.input, v.size, v.step), func(t *testing.T) {
			t.Parallel()
			actual := collectText(t, v.input, v.size, v.step)
			require.Equal(t, v.expected, actual)
		})
	}
}

func TestTextAgainstReference(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"",
		"a",
		"hello, world",
		"Привет, мир",
		"日本語のテキスト",
		"mixed ascii и кириллица 日本 🚴🏻",
		"\xe2\x82\xac€x",
	}

	for _, input := range inputs {
		for size := 1; size <= 5; size++ {
			for step := 1; step <= 6; step++ {
				actual := collectText(t, input, size, step)
				expected := naiveTextWindows(input, size, step)
				require.Equal(t, expected, actual, "%q size=%d step=%d", input, size, step)

				chars := utf8.RuneCountInString(input)
				expectedCount := 0
				if chars >= size {
					expectedCount = (chars - size + step) / step
				}
				require.Len(t, actual, expectedCount, "%q size=%d step=%d", input, size, step)

				for _, w := range actual {
					require.True(t, utf8.ValidString(w), "window %q should not split a character", w)
					require.Equal(t, size, utf8.RuneCountInString(w))
				}
			}
		}
	}
}

func TestTextWindowsAreSubstrings(t *testing.T) {
	t.Parallel()
	const input = "Привет!"
	ts, err := NewText(input, 3)
	require.NoError(t, err)

	offset := 0
	for w := range ts.All() {
		require.Equal(t, input[offset:offset+len(w)], w)
		_, n := utf8.DecodeRuneInString(input[offset:])
		offset += n
	}
}

func TestTextExhausted(t *testing.T) {
	t.Parallel()
	ts, err := NewTextWithStep("abcdef", 2, 4)
	require.NoError(t, err)

	w, ok := ts.Next()
	require.True(t, ok)
	require.Equal(t, "ab", w)

	w, ok = ts.Next()
	require.True(t, ok)
	require.Equal(t, "ef", w)

	for range 3 {
		_, ok = ts.Next()
		require.False(t, ok)
	}
}

func TestTextDeterministic(t *testing.T) {
	t.Parallel()
	const input = "the quick brown fox — jumps over the lazy dog"
	require.Equal(t, collectText(t, input, 4, 3), collectText(t, input, 4, 3))
}

func TestScanBoundaries(t *testing.T) {
	t.Parallel()

	r := scanBoundaries("привет", 0, 2, 1)
	require.True(t, r.hasNext)
	require.Equal(t, 2, r.next)
	require.True(t, r.hasEnd)
	require.Equal(t, 4, r.end)

	r = scanBoundaries("привет", 8, 4, 4)
	require.False(t, r.hasNext)
	require.False(t, r.hasEnd)
	require.Equal(t, 2, r.chars)
	require.False(t, r.fullWidth(4))

	r = scanBoundaries("ab", 0, 2, 1)
	require.False(t, r.hasEnd)
	require.True(t, r.fullWidth(2))

	for b := 0; b < 256; b++ {
		require.Equal(t, b < 128 || b >= 192, isCharBoundary(byte(b)), "byte %#x", b)
	}
}
