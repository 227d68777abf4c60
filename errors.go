package shingles

import "github.com/pkg/errors"

// ErrInvalidSize is returned when a window size smaller than 1 is requested.
var ErrInvalidSize = errors.New("window size must be at least 1")

// ErrInvalidStep is returned when a step smaller than 1 is requested.
// A zero step would never advance the view.
var ErrInvalidStep = errors.New("window step must be at least 1")

func validate(size, step int) error {
	if size < 1 {
		return errors.Wrapf(ErrInvalidSize, "invalid size %d", size)
	}
	if step < 1 {
		return errors.Wrapf(ErrInvalidStep, "invalid step %d", step)
	}
	return nil
}

func validate2D(size, step [2]int) error {
	if err := validate(size[0], step[0]); err != nil {
		return errors.Wrap(err, "invalid width")
	}
	if err := validate(size[1], step[1]); err != nil {
		return errors.Wrap(err, "invalid height")
	}
	return nil
}
