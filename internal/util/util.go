package util

import (
	"strings"

	"github.com/pkg/errors"
)

type fder interface {
	Fd() uintptr
}

type exitStatuser interface {
	ExitStatus() int
}

// GetExitStatus returns the exit status carried by err or any error it
// wraps. If there is none, it returns 1 and false.
func GetExitStatus(err error) (int, bool) {
	var ese exitStatuser
	if errors.As(err, &ese) {
		return ese.ExitStatus(), true
	}
	return 1, false
}

// SplitLines splits s into lines without copying. A trailing newline
// does not start an empty last line, and a "\r" preceding a newline is
// dropped from the line.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}

	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		l = strings.TrimSuffix(l, "\n")
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
