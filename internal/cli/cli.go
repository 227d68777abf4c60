// Package cli implements the shingles command line tool
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/peco/shingles/config"
	"github.com/peco/shingles/internal/ansi"
	"github.com/peco/shingles/internal/util"
	"github.com/pkg/errors"
)

// Version is the version reported by --version
const Version = "v0.1.0"

// usageError is returned for invalid command lines. The process exits
// with status 2 for these, as flag parsers conventionally do.
type usageError struct {
	error
}

func (e usageError) ExitStatus() int {
	return 2
}

func (e usageError) Unwrap() error {
	return e.error
}

// CLI is the shingles command line tool
type CLI struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Argv excludes the program name
	Argv []string

	logger *log.Logger
}

// New creates a CLI wired to the process' standard streams
func New() *CLI {
	return &CLI{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Argv:   os.Args[1:],
	}
}

// Run parses the command line, reads the input and prints its shingles,
// their hashes, or its similarity to another file.
func (c *CLI) Run(ctx context.Context) error {
	var opts Options
	args, err := opts.parse(c.Argv)
	if err != nil {
		c.Stderr.Write(opts.help())
		return usageError{err}
	}

	if opts.OptHelp {
		c.Stdout.Write(opts.help())
		return nil
	}

	if opts.OptVersion {
		fmt.Fprintf(c.Stdout, "shingles: %s\n", Version)
		return nil
	}

	c.logger = log.NewWithOptions(c.Stderr, log.Options{
		Prefix: "shingles",
		Level:  log.InfoLevel,
	})
	if opts.OptVerbose {
		c.logger.SetLevel(log.DebugLevel)
	}

	cfg, err := c.loadConfig(opts)
	if err != nil {
		return err
	}

	data, err := c.readInput(args)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(c.Stdout)
	if opts.OptCompare != "" {
		other, err := os.ReadFile(opts.OptCompare)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", opts.OptCompare)
		}
		err = c.compare(ctx, out, cfg, c.prepare(cfg, data), c.prepare(cfg, other))
	} else {
		err = c.emit(ctx, out, cfg, c.prepare(cfg, data))
	}
	if err != nil {
		return err
	}

	if err := out.Flush(); err != nil {
		return errors.Wrap(err, "failed to write output")
	}
	return nil
}

func (c *CLI) loadConfig(opts Options) (*config.Config, error) {
	var cfg config.Config
	if err := cfg.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize config")
	}

	rcfile := opts.OptRcfile
	if rcfile == "" {
		if file, err := config.LocateRcfile(config.DefaultConfigLocator); err == nil {
			rcfile = file
		}
	}

	if rcfile != "" {
		c.logger.Debug("reading config", "file", rcfile)
		if err := cfg.ReadFilename(rcfile); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", rcfile)
		}
	}

	if err := opts.apply(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

func (c *CLI) prepare(cfg *config.Config, data []byte) string {
	if !cfg.StripANSI {
		return string(data)
	}
	c.logger.Debug("stripping escape sequences")
	return ansi.Strip(string(data))
}

// readInput reads all of the input into memory, since every shingle
// refers back into it
func (c *CLI) readInput(args []string) ([]byte, error) {
	if len(args) > 0 {
		c.logger.Debug("reading input", "file", args[0])
		buf, err := os.ReadFile(args[0])
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", args[0])
		}
		return buf, nil
	}

	if util.IsTty(c.Stdin) {
		return nil, errors.New("you must supply something to work with via filename or stdin")
	}

	c.logger.Debug("reading input from stdin")
	buf, err := io.ReadAll(c.Stdin)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read stdin")
	}
	return buf, nil
}
