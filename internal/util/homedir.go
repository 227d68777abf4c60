package util

import (
	"os"

	"github.com/pkg/errors"
)

// Homedir returns the home directory of the current user: $HOME on
// unix systems, %USERPROFILE% on windows.
func Homedir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate home directory")
	}
	return home, nil
}
