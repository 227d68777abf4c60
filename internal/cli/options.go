package cli

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/jessevdk/go-flags"
	"github.com/peco/shingles"
	"github.com/peco/shingles/config"
	"github.com/pkg/errors"
)

// Options holds the command line options. Zero values mean "not
// given", in which case the value from the config file (or the
// default) is used.
type Options struct {
	OptHelp     bool              `short:"h" long:"help" description:"show this help message and exit"`
	OptMode     config.Mode       `short:"m" long:"mode" description:"kind of shingles: 'text' (default), 'bytes', 'lines' or 'grid'"`
	OptSize     int               `short:"s" long:"size" description:"window size in characters, bytes or lines"`
	OptStep     int               `long:"step" description:"distance between consecutive windows"`
	OptGridSize config.Dimensions `long:"grid-size" description:"2D window size as WIDTHxHEIGHT (grid mode)"`
	OptGridStep config.Dimensions `long:"grid-step" description:"2D step as XxY (grid mode)"`
	OptHash     string            `long:"hash" description:"hash function: 'siphash' (default), 'xxhash' or 'murmur3'"`
	OptKey      string            `long:"key" description:"hash key as 32 hex digits"`
	OptOutput   config.OutputType `short:"o" long:"output" description:"what to print: 'shingles' (default) or 'hashes'"`
	OptCompare  string            `long:"compare" description:"print the Jaccard similarity between the input and this file"`
	OptSketch   int               `long:"sketch" description:"estimate similarity from the N smallest hashes"`
	OptStrip    bool              `long:"strip-ansi" description:"remove terminal escape sequences from the input"`
	OptRcfile   string            `long:"rcfile" description:"path to the settings file"`
	OptVerbose  bool              `short:"v" long:"verbose" description:"log progress to stderr"`
	OptVersion  bool              `long:"version" description:"print the version and exit"`
}

func (options *Options) parse(s []string) ([]string, error) {
	p := flags.NewParser(options, flags.PassDoubleDash)
	args, err := p.ParseArgs(s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid command line options")
	}

	if err := options.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid command line arguments")
	}

	if len(args) > 1 {
		return nil, errors.New("too many arguments: expected at most one FILE")
	}

	return args, nil
}

// Validate checks the values that go-flags cannot check by itself
func (options Options) Validate() error {
	if options.OptSize < 0 {
		return errors.Errorf("invalid size %d", options.OptSize)
	}
	if options.OptStep < 0 {
		return errors.Errorf("invalid step %d", options.OptStep)
	}
	if options.OptSketch < 0 {
		return errors.Errorf("invalid sketch size %d", options.OptSketch)
	}
	if options.OptHash != "" {
		if _, err := shingles.ParseAlgorithm(options.OptHash); err != nil {
			return err
		}
	}
	if options.OptKey != "" {
		if _, err := shingles.ParseKey(options.OptKey); err != nil {
			return err
		}
	}
	return nil
}

// apply overwrites the values in cfg with the options that were given
func (options Options) apply(cfg *config.Config) error {
	if options.OptMode != "" {
		cfg.Mode = options.OptMode
	}
	if options.OptSize > 0 {
		cfg.Size = options.OptSize
	}
	if options.OptStep > 0 {
		cfg.Step = options.OptStep
	}
	if options.OptGridSize.Valid() {
		cfg.GridSize = options.OptGridSize
	}
	if options.OptGridStep.Valid() {
		cfg.GridStep = options.OptGridStep
	}
	if options.OptHash != "" {
		alg, err := shingles.ParseAlgorithm(options.OptHash)
		if err != nil {
			return err
		}
		cfg.Hash = alg
	}
	if options.OptKey != "" {
		cfg.Key = options.OptKey
	}
	if options.OptOutput != "" {
		cfg.Output = options.OptOutput
	}
	if options.OptSketch > 0 {
		cfg.SketchSize = options.OptSketch
	}
	if options.OptStrip {
		cfg.StripANSI = true
	}
	return cfg.Validate()
}

func (options Options) help() []byte {
	buf := bytes.Buffer{}

	fmt.Fprintf(&buf, `
Usage: shingles [options] [FILE]

Options:
`)

	t := reflect.TypeOf(options)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag

		var o string
		if s := tag.Get("short"); s != "" {
			o = fmt.Sprintf("-%s, --%s", tag.Get("short"), tag.Get("long"))
		} else {
			o = fmt.Sprintf("--%s", tag.Get("long"))
		}

		fmt.Fprintf(
			&buf,
			"  %-21s %s\n",
			o,
			tag.Get("description"),
		)
	}

	return buf.Bytes()
}
