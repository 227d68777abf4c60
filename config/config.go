package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/peco/shingles"
	"github.com/peco/shingles/internal/util"
)

// Mode specifies what kind of shingles are produced from the input
type Mode string

const (
	// ModeText produces character shingles over the whole input
	ModeText Mode = "text"
	// ModeBytes produces byte shingles over the whole input
	ModeBytes Mode = "bytes"
	// ModeLines produces shingles whose elements are whole lines
	ModeLines Mode = "lines"
	// ModeGrid produces 2D shingles over the lines of the input
	ModeGrid Mode = "grid"
)

func (m *Mode) unmarshal(s string) error {
	switch v := Mode(s); v {
	case "":
		*m = ModeText
	case ModeText, ModeBytes, ModeLines, ModeGrid:
		*m = v
	default:
		return fmt.Errorf("invalid Mode value %q: must be one of %q, %q, %q or %q", s, ModeText, ModeBytes, ModeLines, ModeGrid)
	}
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler (used by JSON/YAML decoders).
func (m *Mode) UnmarshalText(b []byte) error {
	return m.unmarshal(string(b))
}

// UnmarshalFlag implements go-flags Unmarshaler (used by CLI flag parsing).
func (m *Mode) UnmarshalFlag(s string) error {
	return m.unmarshal(s)
}

// OutputType specifies what is printed for each shingle
type OutputType string

const (
	OutputShingles OutputType = "shingles"
	OutputHashes   OutputType = "hashes"
)

func (o *OutputType) unmarshal(s string) error {
	switch v := OutputType(s); v {
	case "":
		*o = OutputShingles
	case OutputShingles, OutputHashes:
		*o = v
	default:
		return fmt.Errorf("invalid Output value %q: must be %q or %q", s, OutputShingles, OutputHashes)
	}
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler (used by JSON/YAML decoders).
func (o *OutputType) UnmarshalText(b []byte) error {
	return o.unmarshal(string(b))
}

// UnmarshalFlag implements go-flags Unmarshaler (used by CLI flag parsing).
func (o *OutputType) UnmarshalFlag(s string) error {
	return o.unmarshal(s)
}

// Config holds all the data that can be configured in the
// external configuration file
type Config struct {
	Mode Mode `json:"Mode" yaml:"Mode"`
	// Size and Step apply to the text, bytes and lines modes
	Size int `json:"Size" yaml:"Size"`
	Step int `json:"Step" yaml:"Step"`
	// GridSize and GridStep apply to the grid mode, written as
	// "WIDTHxHEIGHT" (e.g. "3x3")
	GridSize Dimensions         `json:"GridSize" yaml:"GridSize"`
	GridStep Dimensions         `json:"GridStep" yaml:"GridStep"`
	Hash     shingles.Algorithm `json:"Hash" yaml:"Hash"`
	// Key is the hash key, 32 hexadecimal digits. Empty means the
	// all-zero key
	Key    string     `json:"Key" yaml:"Key"`
	Output OutputType `json:"Output" yaml:"Output"`

	// SketchSize, if positive, makes comparisons estimate similarity
	// from a bottom-k sketch of this many hashes instead of the full
	// set of hashes
	SketchSize int `json:"SketchSize" yaml:"SketchSize"`

	// StripANSI removes terminal escape sequences from the input
	// before windowing
	StripANSI bool `json:"StripANSI" yaml:"StripANSI"`
}

const (
	DefaultSize = 4
	DefaultStep = 1
)

var homedirFunc = util.Homedir

// Init initializes the Config with default values
func (c *Config) Init() error {
	c.Mode = ModeText
	c.Size = DefaultSize
	c.Step = DefaultStep
	c.GridSize = Dimensions{3, 3}
	c.GridStep = Dimensions{1, 1}
	c.Hash = shingles.SipHash
	c.Output = OutputShingles
	return nil
}

// ReadFilename reads the config from the given file, and
// does the appropriate processing, if any
func (c *Config) ReadFilename(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer f.Close()

	switch ext := filepath.Ext(filename); ext {
	case ".yaml", ".yml":
		err = yaml.NewDecoder(f).Decode(c)
		if err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		err = json.NewDecoder(f).Decode(c)
		if err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	}

	return c.Validate()
}

// Validate checks that the sizes and steps can be used to build a
// windower
func (c *Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("invalid Size %d: must be at least 1", c.Size)
	}
	if c.Step < 1 {
		return fmt.Errorf("invalid Step %d: must be at least 1", c.Step)
	}
	if !c.GridSize.Valid() {
		return fmt.Errorf("invalid GridSize %s", c.GridSize)
	}
	if !c.GridStep.Valid() {
		return fmt.Errorf("invalid GridStep %s", c.GridStep)
	}
	if c.SketchSize < 0 {
		return fmt.Errorf("invalid SketchSize %d: must not be negative", c.SketchSize)
	}
	if c.Key != "" {
		if _, err := shingles.ParseKey(c.Key); err != nil {
			return fmt.Errorf("invalid Key: %w", err)
		}
	}
	return nil
}

// HashKey returns the parsed hash key
func (c *Config) HashKey() (shingles.Key, error) {
	if c.Key == "" {
		return shingles.Key{}, nil
	}
	return shingles.ParseKey(c.Key)
}

// Locator locates a config file in a given directory.
type Locator interface {
	Locate(string) (string, error)
}

// LocatorFunc is a function that implements Locator.
type LocatorFunc func(string) (string, error)

// Locate calls the underlying function.
func (f LocatorFunc) Locate(dir string) (string, error) {
	return f(dir)
}

var configFilenames = []string{"config.json", "config.yaml", "config.yml"}

// DefaultConfigLocator searches for a config file with one of the known
// filenames (config.json, config.yaml, config.yml) in the given directory.
var DefaultConfigLocator = LocatorFunc(func(dir string) (string, error) {
	for _, basename := range configFilenames {
		file := filepath.Join(dir, basename)
		if _, err := os.Stat(file); err == nil {
			return file, nil
		}
	}
	return "", fmt.Errorf("config file not found in %s", dir)
})

// LocateRcfile attempts to find the config file in various locations
func LocateRcfile(locater Locator) (string, error) {
	// http://standards.freedesktop.org/basedir-spec/basedir-spec-latest.html
	//
	// Try in this order:
	//	  $XDG_CONFIG_HOME/shingles/config.{json,yaml,yml}
	//    $XDG_CONFIG_DIR/shingles/config.{json,yaml,yml} (where XDG_CONFIG_DIR is listed in $XDG_CONFIG_DIRS)
	//	  ~/.shingles/config.{json,yaml,yml}

	home, uErr := homedirFunc()

	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		if file, err := locater.Locate(filepath.Join(dir, "shingles")); err == nil {
			return file, nil
		}
	} else if uErr == nil { // silently ignore failure for homedir()
		if file, err := locater.Locate(filepath.Join(home, ".config", "shingles")); err == nil {
			return file, nil
		}
	}

	if dirs := os.Getenv("XDG_CONFIG_DIRS"); dirs != "" {
		for dir := range strings.SplitSeq(dirs, fmt.Sprintf("%c", filepath.ListSeparator)) {
			if file, err := locater.Locate(filepath.Join(dir, "shingles")); err == nil {
				return file, nil
			}
		}
	}

	if uErr == nil { // silently ignore failure for homedir()
		if file, err := locater.Locate(filepath.Join(home, ".shingles")); err == nil {
			return file, nil
		}
	}

	return "", errors.New("config file not found")
}
