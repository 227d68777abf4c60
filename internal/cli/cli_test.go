package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dchest/siphash"
	"github.com/peco/shingles/internal/util"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", "")
	return dir
}

func runCLI(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	c := &CLI{
		Stdin:  strings.NewReader(input),
		Stdout: &stdout,
		Stderr: &stderr,
		Argv:   args,
	}
	err := c.Run(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRunText(t *testing.T) {
	isolateConfig(t)

	out, _, err := runCLI(t, "Привет!", "--size", "4")
	require.NoError(t, err)
	require.Equal(t, "\"Прив\"\n\"риве\"\n\"ивет\"\n\"вет!\"\n", out)

	out, _, err = runCLI(t, "hello!", "-s", "4", "--step", "2")
	require.NoError(t, err)
	require.Equal(t, "\"hell\"\n\"llo!\"\n", out)
}

func TestRunBytes(t *testing.T) {
	isolateConfig(t)

	out, _, err := runCLI(t, "abcd", "--mode", "bytes", "--size", "3")
	require.NoError(t, err)
	require.Equal(t, "616263\n626364\n", out)
}

func TestRunLines(t *testing.T) {
	isolateConfig(t)

	out, _, err := runCLI(t, "a\nb\nc\n", "-m", "lines", "-s", "2")
	require.NoError(t, err)
	require.Equal(t, "\"a\" \"b\"\n\"b\" \"c\"\n", out)
}

func TestRunGrid(t *testing.T) {
	isolateConfig(t)

	out, _, err := runCLI(t, "abcd\nefgh\nijkl\n", "--mode", "grid", "--grid-size", "3x3")
	require.NoError(t, err)
	require.Equal(t, "|abc|\n|efg|\n|ijk|\n\n|bcd|\n|fgh|\n|jkl|\n\n", out)
}

func TestRunStripANSI(t *testing.T) {
	isolateConfig(t)

	out, _, err := runCLI(t, "\x1b[31mabc\x1b[0md", "-s", "3", "--strip-ansi")
	require.NoError(t, err)
	require.Equal(t, "\"abc\"\n\"bcd\"\n", out)

	out, _, err = runCLI(t, "\x1b[31mab\x1b[0m", "-s", "2")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "\"\\x1b[\"\n"), "escape sequences are windowed unless stripped: %q", out)
}

func TestRunGridWideCharacters(t *testing.T) {
	isolateConfig(t)

	out, _, err := runCLI(t, "日本語\nabc\n", "--mode", "grid", "--grid-size", "3x2")
	require.NoError(t, err)
	require.Equal(t, "|日本語|\n|abc   |\n\n", out)
}

func TestRunHashes(t *testing.T) {
	isolateConfig(t)

	out, _, err := runCLI(t, "hello", "--size", "5", "--output", "hashes")
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("%016x\n", siphash.Hash(0, 0, []byte("hello\xff"))), out)

	for _, alg := range []string{"siphash", "xxhash", "murmur3"} {
		a, _, err := runCLI(t, "some text to hash", "-o", "hashes", "--hash", alg)
		require.NoError(t, err)
		b, _, err := runCLI(t, "some text to hash", "-o", "hashes", "--hash", alg)
		require.NoError(t, err)
		require.Equal(t, a, b, "%s hashes should be deterministic", alg)
		require.Len(t, strings.Split(strings.TrimSpace(a), "\n"), 14)

		keyed, _, err := runCLI(t, "some text to hash", "-o", "hashes", "--hash", alg, "--key", "000102030405060708090a0b0c0d0e0f")
		require.NoError(t, err)
		require.NotEqual(t, a, keyed, "%s hashes should depend on the key", alg)
	}
}

func TestRunFile(t *testing.T) {
	dir := isolateConfig(t)

	file := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(file, []byte("abc"), 0o644))

	out, _, err := runCLI(t, "", "-s", "2", file)
	require.NoError(t, err)
	require.Equal(t, "\"ab\"\n\"bc\"\n", out)

	_, stderr, err := runCLI(t, "", filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	require.Empty(t, stderr, "errors are reported once, by the caller")
	st, _ := util.GetExitStatus(err)
	require.Equal(t, 1, st)
}

func TestRunCompare(t *testing.T) {
	dir := isolateConfig(t)

	same := filepath.Join(dir, "same.txt")
	require.NoError(t, os.WriteFile(same, []byte("abcdef"), 0o644))
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(other, []byte("abcxyz"), 0o644))

	out, _, err := runCLI(t, "abcdef", "-s", "3", "--compare", same)
	require.NoError(t, err)
	require.Equal(t, "1.000000\n", out)

	// {abc bcd cde def} vs {abc bcx cxy xyz}: 1 shared out of 7
	out, _, err = runCLI(t, "abcdef", "-s", "3", "--compare", other)
	require.NoError(t, err)
	require.Equal(t, "0.142857\n", out)

	out, _, err = runCLI(t, "abcdef", "-s", "3", "--compare", same, "--sketch", "2")
	require.NoError(t, err)
	require.Equal(t, "1.000000\n", out)
}

func TestRunConfigFile(t *testing.T) {
	dir := isolateConfig(t)

	rcdir := filepath.Join(dir, "shingles")
	require.NoError(t, os.MkdirAll(rcdir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(rcdir, "config.yaml"), []byte("Mode: bytes\nSize: 2\n"), 0o644))

	out, _, err := runCLI(t, "abc")
	require.NoError(t, err)
	require.Equal(t, "6162\n6263\n", out)

	// command line options take precedence
	out, _, err = runCLI(t, "abc", "--mode", "text", "--size", "3")
	require.NoError(t, err)
	require.Equal(t, "\"abc\"\n", out)

	explicit := filepath.Join(dir, "explicit.json")
	require.NoError(t, os.WriteFile(explicit, []byte(`{"Size": 0}`), 0o644))
	_, _, err = runCLI(t, "abc", "--rcfile", explicit)
	require.Error(t, err)
}

func TestRunInvalidOptions(t *testing.T) {
	isolateConfig(t)

	for _, args := range [][]string{
		{"--size", "-1"},
		{"--mode", "words"},
		{"--hash", "md5"},
		{"--key", "abcd"},
		{"--grid-size", "0x2"},
		{"--no-such-option"},
		{"a", "b"},
	} {
		_, stderr, err := runCLI(t, "abc", args...)
		require.Error(t, err, "%v should fail", args)
		require.Contains(t, stderr, "Usage: shingles")

		st, ok := util.GetExitStatus(err)
		require.True(t, ok, "%v should carry an exit status", args)
		require.Equal(t, 2, st)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("no space left on device")
}

func TestRunWriteError(t *testing.T) {
	isolateConfig(t)

	for _, args := range [][]string{
		{"-s", "3"},
		{"-s", "3", "-o", "hashes"},
	} {
		c := &CLI{
			Stdin:  strings.NewReader("hello world"),
			Stdout: failingWriter{},
			Stderr: &bytes.Buffer{},
			Argv:   args,
		}
		err := c.Run(context.Background())
		require.Error(t, err, "%v should fail", args)
		require.Contains(t, err.Error(), "no space left on device")
	}
}

func TestRunHelpAndVersion(t *testing.T) {
	isolateConfig(t)

	out, _, err := runCLI(t, "", "--help")
	require.NoError(t, err)
	require.Contains(t, out, "Usage: shingles [options] [FILE]")
	require.Contains(t, out, "--grid-size")

	out, _, err = runCLI(t, "", "--version")
	require.NoError(t, err)
	require.Equal(t, "shingles: "+Version+"\n", out)
}

func TestRunVerbose(t *testing.T) {
	isolateConfig(t)

	_, stderr, err := runCLI(t, "abc", "-v", "-s", "2")
	require.NoError(t, err)
	require.Contains(t, stderr, "windowing input")
}

func TestRunCanceled(t *testing.T) {
	isolateConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout bytes.Buffer
	c := &CLI{
		Stdin:  strings.NewReader("abcdef"),
		Stdout: &stdout,
		Stderr: &bytes.Buffer{},
		Argv:   []string{"-s", "2"},
	}
	require.ErrorIs(t, c.Run(ctx), context.Canceled)
	require.Empty(t, stdout.String())
}
