package calibration

import "errors"

var (
	// ErrMissingChannel is returned when a limits file lacks one of the B, G, R channels.
	ErrMissingChannel = errors.New("missing colour channel")

	// ErrRangeOutOfBounds is returned when a channel bound falls outside 0..255.
	ErrRangeOutOfBounds = errors.New("channel bound outside 0..255")

	// ErrInvertedRange is returned when a channel's min is greater than its max.
	ErrInvertedRange = errors.New("channel min greater than max")
)
