package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Dimensions is a [width, height] pair, used for 2D window sizes and
// steps
type Dimensions [2]int

// ParseDimensions parses a "WIDTHxHEIGHT" string such as "3x2".
// A single number "N" is accepted as "NxN".
func ParseDimensions(s string) (Dimensions, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Dimensions{}, fmt.Errorf("empty dimensions")
	}

	w, h, found := strings.Cut(s, "x")
	if !found {
		h = w
	}

	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return Dimensions{}, fmt.Errorf("invalid dimensions %q", s)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return Dimensions{}, fmt.Errorf("invalid dimensions %q", s)
	}

	d := Dimensions{width, height}
	if !d.Valid() {
		return Dimensions{}, fmt.Errorf("width and height must be positive: %q", s)
	}
	return d, nil
}

// Valid reports whether both width and height are positive
func (d Dimensions) Valid() bool {
	return d[0] > 0 && d[1] > 0
}

// Width returns the first component
func (d Dimensions) Width() int {
	return d[0]
}

// Height returns the second component
func (d Dimensions) Height() int {
	return d[1]
}

func (d Dimensions) String() string {
	return strconv.Itoa(d[0]) + "x" + strconv.Itoa(d[1])
}

// UnmarshalText implements encoding.TextUnmarshaler (used by JSON/YAML decoders).
func (d *Dimensions) UnmarshalText(b []byte) error {
	v, err := ParseDimensions(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// UnmarshalFlag implements go-flags Unmarshaler (used by CLI flag parsing).
func (d *Dimensions) UnmarshalFlag(s string) error {
	return d.UnmarshalText([]byte(s))
}
