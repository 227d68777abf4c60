// Package ansi removes terminal escape sequences from text, so that
// colored output (e.g. from `ls --color` or `git diff`) can be windowed
// by the characters a reader actually sees.
package ansi

import (
	"strings"
)

const esc = '\x1b'

// Strip returns input with all CSI sequences (ESC [ ... final byte)
// removed. SGR sequences as well as cursor movement and erase sequences
// are dropped. An incomplete sequence at the end of input is dropped too.
// Invalid UTF-8 is preserved as is.
func Strip(input string) string {
	// Fast path: if no ESC character, return as-is
	i := strings.IndexByte(input, esc)
	if i < 0 {
		return input
	}

	var out strings.Builder
	out.Grow(len(input))
	out.WriteString(input[:i])

	for i < len(input) {
		if input[i] != esc || i+1 >= len(input) || input[i+1] != '[' {
			next := strings.IndexByte(input[i+1:], esc)
			if next < 0 {
				out.WriteString(input[i:])
				break
			}
			out.WriteString(input[i : i+1+next])
			i += 1 + next
			continue
		}

		// parameter and intermediate bytes, then the final byte
		j := i + 2
		for j < len(input) && input[j] >= 0x20 && input[j] <= 0x3F {
			j++
		}
		if j >= len(input) {
			break
		}
		i = j + 1
	}

	return out.String()
}
