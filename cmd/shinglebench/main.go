// shinglebench measures the throughput of the windowers against
// synthetically generated text of configurable size.
//
// Usage:
//
//	go run ./cmd/shinglebench [flags]
//
// Examples:
//
//	go run ./cmd/shinglebench --lines 100000
//	go run ./cmd/shinglebench --lines 100000 --size 5 --step 3 --bench text
//	go run ./cmd/shinglebench --input /path/to/largefile.txt --json
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"github.com/peco/shingles"
	"github.com/peco/shingles/internal/util"
	"github.com/pkg/errors"
)

type result struct {
	Bench          string  `json:"bench"`
	Bytes          int     `json:"bytes"`
	Shingles       int     `json:"shingles"`
	Duration       string  `json:"duration"`
	DurationMs     float64 `json:"duration_ms"`
	ShinglesPerSec float64 `json:"shingles_per_sec"`
	MBPerSec       float64 `json:"mb_per_sec"`
}

type benchConfig struct {
	NumLines   int    `long:"lines" default:"100000" description:"number of lines to generate"`
	LineLen    int    `long:"line-length" default:"80" description:"average length of generated lines, in characters"`
	Size       int    `long:"size" default:"4" description:"window size"`
	Step       int    `long:"step" default:"1" description:"window step"`
	GridWidth  int    `long:"grid-width" default:"3" description:"2D window width"`
	GridHeight int    `long:"grid-height" default:"3" description:"2D window height"`
	Bench      string `long:"bench" description:"benchmark to run (empty = all)"`
	InputFile  string `long:"input" description:"read text from file instead of generating it"`
	JSONOutput bool   `long:"json" description:"output results as JSON"`
	Seed       uint64 `long:"seed" default:"42" description:"random seed for data generation"`
}

type benchFunc func(cfg benchConfig, text string, lines []string) (int, error)

var benches = map[string]benchFunc{
	"bytes":      benchBytes,
	"text":       benchText,
	"lines":      benchLines,
	"grid":       benchGrid,
	"text-grid":  benchTextGrid,
	"siphash":    benchHashes(shingles.SipHash),
	"xxhash":     benchHashes(shingles.XXHash),
	"murmur3":    benchHashes(shingles.Murmur3),
	"rune-slice": benchRuneSlice,
}

func main() {
	var cfg benchConfig
	if _, err := flags.Parse(&cfg); err != nil {
		if ferr, ok := err.(*flags.Error); ok && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	text, err := loadOrGenerate(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	lines := util.SplitLines(text)

	names := benchNames(cfg.Bench)
	if len(names) == 0 {
		fmt.Fprintf(os.Stderr, "unknown bench: %s\n", cfg.Bench)
		fmt.Fprintf(os.Stderr, "available: %s\n", strings.Join(benchNames(""), ", "))
		os.Exit(1)
	}

	if !cfg.JSONOutput {
		fmt.Fprintf(os.Stderr, "Dataset: %d lines, %d bytes\n", len(lines), len(text))
		fmt.Fprintf(os.Stderr, "Window: size %d step %d, grid %dx%d\n", cfg.Size, cfg.Step, cfg.GridWidth, cfg.GridHeight)
		fmt.Fprintf(os.Stderr, "GOMAXPROCS: %d\n\n", runtime.GOMAXPROCS(0))
	}

	var results []result
	for _, name := range names {
		r, err := run(name, benches[name], cfg, text, lines)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", name, err)
			continue
		}
		results = append(results, r)
		if !cfg.JSONOutput {
			printResult(r)
		}
	}

	if cfg.JSONOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(results)
	}
}

func benchNames(name string) []string {
	if name != "" {
		if _, ok := benches[name]; ok {
			return []string{name}
		}
		return nil
	}

	names := make([]string, 0, len(benches))
	for n := range benches {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func run(name string, f benchFunc, cfg benchConfig, text string, lines []string) (result, error) {
	// Force GC before measurement
	runtime.GC()

	start := time.Now()
	n, err := f(cfg, text, lines)
	elapsed := time.Since(start)
	if err != nil {
		return result{}, err
	}

	return result{
		Bench:          name,
		Bytes:          len(text),
		Shingles:       n,
		Duration:       elapsed.String(),
		DurationMs:     float64(elapsed.Milliseconds()),
		ShinglesPerSec: float64(n) / elapsed.Seconds(),
		MBPerSec:       float64(len(text)) / (1 << 20) / elapsed.Seconds(),
	}, nil
}

func printResult(r result) {
	fmt.Printf("%-10s %10d shingles  %12s  %14.0f shingles/s  %8.1f MB/s\n",
		r.Bench, r.Shingles, r.Duration, r.ShinglesPerSec, r.MBPerSec)
}

func count[W any](it shingles.Iterator[W]) int {
	var n int
	for {
		if _, ok := it.Next(); !ok {
			return n
		}
		n++
	}
}

func benchBytes(cfg benchConfig, text string, _ []string) (int, error) {
	s, err := shingles.NewSliceWithStep([]byte(text), cfg.Size, cfg.Step)
	if err != nil {
		return 0, err
	}
	return count[[]byte](s), nil
}

func benchText(cfg benchConfig, text string, _ []string) (int, error) {
	s, err := shingles.NewTextWithStep(text, cfg.Size, cfg.Step)
	if err != nil {
		return 0, err
	}
	return count[string](s), nil
}

// benchRuneSlice is the copying baseline: decode the text into runes and
// build a new string for every window
func benchRuneSlice(cfg benchConfig, text string, _ []string) (int, error) {
	runes := []rune(text)
	s, err := shingles.NewSliceWithStep(runes, cfg.Size, cfg.Step)
	if err != nil {
		return 0, err
	}

	var n int
	for w := range s.All() {
		_ = string(w)
		n++
	}
	return n, nil
}

func benchLines(cfg benchConfig, _ string, lines []string) (int, error) {
	s, err := shingles.NewSliceWithStep(lines, cfg.Size, cfg.Step)
	if err != nil {
		return 0, err
	}
	return count[[]string](s), nil
}

func benchGrid(cfg benchConfig, _ string, lines []string) (int, error) {
	rows := make([][]byte, len(lines))
	for i, l := range lines {
		rows[i] = []byte(l)
	}
	s, err := shingles.NewGrid(rows, [2]int{cfg.GridWidth, cfg.GridHeight})
	if err != nil {
		return 0, err
	}
	return count[[][]byte](s), nil
}

func benchTextGrid(cfg benchConfig, _ string, lines []string) (int, error) {
	s, err := shingles.NewTextGrid(lines, [2]int{cfg.GridWidth, cfg.GridHeight})
	if err != nil {
		return 0, err
	}
	return count[[]string](s), nil
}

func benchHashes(alg shingles.Algorithm) benchFunc {
	return func(cfg benchConfig, text string, _ []string) (int, error) {
		s, err := shingles.NewTextWithStep(text, cfg.Size, cfg.Step)
		if err != nil {
			return 0, err
		}
		h := s.Hashes(shingles.WithAlgorithm(alg))
		n := count[uint64](h)
		return n, h.Err()
	}
}

func loadOrGenerate(cfg benchConfig) (string, error) {
	if cfg.InputFile != "" {
		buf, err := os.ReadFile(cfg.InputFile)
		if err != nil {
			return "", errors.Wrapf(err, "failed to read %s", cfg.InputFile)
		}
		return string(buf), nil
	}
	return generateText(cfg), nil
}

// generateText creates a synthetic dataset of lines mixing ASCII and
// multi-byte words, so that the character-boundary scan sees 1 to 4
// byte characters.
func generateText(cfg benchConfig) string {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1))

	words := []string{
		"hello", "world", "foo", "bar", "baz",
		"привет", "мир", "日本語", "テキスト", "🚴🏻",
	}

	var sb strings.Builder
	for range cfg.NumLines {
		targetLen := cfg.LineLen/2 + rng.IntN(max(cfg.LineLen, 1))
		chars := 0
		for chars < targetLen {
			if chars > 0 {
				sb.WriteByte(' ')
				chars++
			}
			w := words[rng.IntN(len(words))]
			sb.WriteString(w)
			chars += len([]rune(w))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
