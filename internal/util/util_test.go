package util

import (
	"errors"
	"fmt"
	"os"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type mockExitStatusError struct {
	status int
	msg    string
}

func (e *mockExitStatusError) Error() string   { return e.msg }
func (e *mockExitStatusError) ExitStatus() int { return e.status }

func TestGetExitStatus(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedFound  bool
	}{
		{"exit status 0", &mockExitStatusError{status: 0, msg: "test"}, 0, true},
		{"exit status 42", &mockExitStatusError{status: 42, msg: "test"}, 42, true},
		{"plain error", errors.New("plain"), 1, false},
		{"nil error", nil, 1, false},
		{"wrapped exit status", fmt.Errorf("wrapper: %w", &mockExitStatusError{status: 2, msg: "inner"}), 2, true},
		{"pkg/errors wrapped", pkgerrors.Wrap(&mockExitStatusError{status: 3, msg: "inner"}, "wrapper"), 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status, found := GetExitStatus(tt.err)
			require.Equal(t, tt.expectedStatus, status)
			require.Equal(t, tt.expectedFound, found)
		})
	}
}

func TestSplitLines(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"abc", []string{"abc"}},
		{"abc\n", []string{"abc"}},
		{"abc\ndef", []string{"abc", "def"}},
		{"abc\r\ndef\r\n", []string{"abc", "def"}},
		{"\n\n", []string{"", ""}},
		{"привет\nмир", []string{"привет", "мир"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, SplitLines(tt.input))
		})
	}
}

func TestIsTty(t *testing.T) {
	t.Parallel()
	require.False(t, IsTty("not a file"))

	f, err := os.CreateTemp(t.TempDir(), "tty")
	require.NoError(t, err)
	defer f.Close()
	require.False(t, IsTty(f), "a regular file is not a tty")
}

func TestHomedir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("USERPROFILE", dir)

	home, err := Homedir()
	require.NoError(t, err)
	require.Equal(t, dir, home)
}
