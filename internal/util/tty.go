package util

import "github.com/mattn/go-isatty"

// IsTty checks if the given fd is a tty
func IsTty(arg interface{}) bool {
	fdsrc, ok := arg.(fder)
	if !ok {
		return false
	}
	fd := fdsrc.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
