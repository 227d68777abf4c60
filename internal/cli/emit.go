package cli

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/peco/shingles"
	"github.com/peco/shingles/config"
	"github.com/peco/shingles/internal/util"
	"github.com/peco/shingles/similarity"
	"github.com/pkg/errors"
)

// hashIterator is what every *shingles.ShingleHasher provides
type hashIterator interface {
	All() iter.Seq[uint64]
	Err() error
}

func hashOptions(cfg *config.Config) ([]shingles.HashOption, error) {
	key, err := cfg.HashKey()
	if err != nil {
		return nil, err
	}
	return []shingles.HashOption{
		shingles.WithAlgorithm(cfg.Hash),
		shingles.WithKey(key),
	}, nil
}

func newHashIterator(cfg *config.Config, data string) (hashIterator, error) {
	options, err := hashOptions(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Mode {
	case config.ModeBytes:
		s, err := shingles.NewSliceWithStep([]byte(data), cfg.Size, cfg.Step)
		if err != nil {
			return nil, err
		}
		return s.Hashes(options...), nil
	case config.ModeLines:
		s, err := shingles.NewSliceWithStep(util.SplitLines(data), cfg.Size, cfg.Step)
		if err != nil {
			return nil, err
		}
		return s.Hashes(options...), nil
	case config.ModeGrid:
		s, err := shingles.NewTextGridWithStep(util.SplitLines(data), cfg.GridSize, cfg.GridStep)
		if err != nil {
			return nil, err
		}
		return s.Hashes(options...), nil
	default:
		s, err := shingles.NewTextWithStep(data, cfg.Size, cfg.Step)
		if err != nil {
			return nil, err
		}
		return s.Hashes(options...), nil
	}
}

// emit prints every shingle of data, or every hash when hashes were
// requested
func (c *CLI) emit(ctx context.Context, out io.Writer, cfg *config.Config, data string) error {
	c.logger.Debug("windowing input",
		"mode", cfg.Mode,
		"size", cfg.Size,
		"step", cfg.Step,
		"grid-size", cfg.GridSize,
		"grid-step", cfg.GridStep,
		"output", cfg.Output,
		"bytes", len(data),
	)

	var n int
	var err error
	if cfg.Output == config.OutputHashes {
		n, err = emitHashes(ctx, out, cfg, data)
	} else {
		n, err = emitShingles(ctx, out, cfg, data)
	}
	if err != nil {
		return err
	}

	c.logger.Debug("done", "shingles", n)
	return nil
}

func emitHashes(ctx context.Context, out io.Writer, cfg *config.Config, data string) (int, error) {
	it, err := newHashIterator(cfg, data)
	if err != nil {
		return 0, errors.Wrap(err, "failed to create hasher")
	}

	var n int
	for h := range it.All() {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		fmt.Fprintf(out, "%016x\n", h)
		n++
	}
	return n, it.Err()
}

func emitShingles(ctx context.Context, out io.Writer, cfg *config.Config, data string) (int, error) {
	switch cfg.Mode {
	case config.ModeBytes:
		s, err := shingles.NewSliceWithStep([]byte(data), cfg.Size, cfg.Step)
		if err != nil {
			return 0, errors.Wrap(err, "failed to create windower")
		}
		return printEach(ctx, out, s.All(), func(w []byte) string {
			return hex.EncodeToString(w)
		})
	case config.ModeLines:
		s, err := shingles.NewSliceWithStep(util.SplitLines(data), cfg.Size, cfg.Step)
		if err != nil {
			return 0, errors.Wrap(err, "failed to create windower")
		}
		return printEach(ctx, out, s.All(), quoteLines)
	case config.ModeGrid:
		s, err := shingles.NewTextGridWithStep(util.SplitLines(data), cfg.GridSize, cfg.GridStep)
		if err != nil {
			return 0, errors.Wrap(err, "failed to create windower")
		}
		// a blank line follows every window
		return printEach(ctx, out, s.All(), func(w []string) string {
			return renderGrid(w) + "\n"
		})
	default:
		s, err := shingles.NewTextWithStep(data, cfg.Size, cfg.Step)
		if err != nil {
			return 0, errors.Wrap(err, "failed to create windower")
		}
		return printEach(ctx, out, s.All(), strconv.Quote)
	}
}

func printEach[W any](ctx context.Context, out io.Writer, seq iter.Seq[W], format func(W) string) (int, error) {
	var n int
	for w := range seq {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if _, err := io.WriteString(out, format(w)+"\n"); err != nil {
			return n, errors.Wrap(err, "failed to write output")
		}
		n++
	}
	return n, nil
}

func quoteLines(w []string) string {
	quoted := make([]string, len(w))
	for i, l := range w {
		quoted[i] = strconv.Quote(l)
	}
	return strings.Join(quoted, " ")
}

// renderGrid draws a 2D shingle as a box of rows, padding each row to
// the display width of the widest one so that wide characters line up.
func renderGrid(w []string) string {
	width := 0
	for _, row := range w {
		width = max(width, runewidth.StringWidth(row))
	}

	var buf strings.Builder
	for i, row := range w {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteByte('|')
		buf.WriteString(runewidth.FillRight(row, width))
		buf.WriteByte('|')
	}
	return buf.String()
}

// compare prints the Jaccard similarity of the shingle sets of a and b
func (c *CLI) compare(ctx context.Context, out io.Writer, cfg *config.Config, a, b string) error {
	var score float64
	if cfg.SketchSize > 0 {
		sa, err := c.sketch(ctx, cfg, a)
		if err != nil {
			return err
		}
		sb, err := c.sketch(ctx, cfg, b)
		if err != nil {
			return err
		}
		score = similarity.EstimateJaccard(sa, sb)
	} else {
		sa, err := c.set(ctx, cfg, a)
		if err != nil {
			return err
		}
		sb, err := c.set(ctx, cfg, b)
		if err != nil {
			return err
		}
		score = similarity.Jaccard(sa, sb)
	}

	c.logger.Debug("compared inputs", "sketch", cfg.SketchSize, "similarity", score)
	_, err := fmt.Fprintf(out, "%.6f\n", score)
	return err
}

func (c *CLI) set(ctx context.Context, cfg *config.Config, data string) (*similarity.Set, error) {
	it, err := newHashIterator(cfg, data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create hasher")
	}

	s := similarity.NewSet()
	for h := range it.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.Add(h)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	c.logger.Debug("built shingle set", "distinct", s.Len())
	return s, nil
}

func (c *CLI) sketch(ctx context.Context, cfg *config.Config, data string) (*similarity.Sketch, error) {
	it, err := newHashIterator(cfg, data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create hasher")
	}

	s, err := similarity.NewSketch(cfg.SketchSize)
	if err != nil {
		return nil, err
	}
	for h := range it.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.Add(h)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return s, nil
}
