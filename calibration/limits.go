// Package calibration reads and writes the colour limits that select the
// pencil colour in camera frames.
package calibration

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultPath is where the segmenter writes its result.
const DefaultPath = "limits.json"

// Range is an inclusive bound on one 8-bit channel.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Limits holds one range per BGR channel.
type Limits struct {
	B Range
	G Range
	R Range
}

// limitsFile is the on-disk layout: {"limits": {"B": {...}, "G": {...}, "R": {...}}}
type limitsFile struct {
	Limits map[string]*Range `json:"limits"`
}

// Default returns full-range limits that match every pixel.
func Default() Limits {
	full := Range{Min: 0, Max: 255}
	return Limits{B: full, G: full, R: full}
}

// channels pairs each channel name with its field, in BGR order.
func (l *Limits) channels() []struct {
	name string
	r    *Range
} {
	return []struct {
		name string
		r    *Range
	}{{"B", &l.B}, {"G", &l.G}, {"R", &l.R}}
}

// Validate checks 0 <= min <= max <= 255 on every channel.
func (l Limits) Validate() error {
	for _, ch := range l.channels() {
		if ch.r.Min < 0 || ch.r.Min > 255 || ch.r.Max < 0 || ch.r.Max > 255 {
			return fmt.Errorf("channel %s [%d, %d]: %w", ch.name, ch.r.Min, ch.r.Max, ErrRangeOutOfBounds)
		}
		if ch.r.Min > ch.r.Max {
			return fmt.Errorf("channel %s [%d, %d]: %w", ch.name, ch.r.Min, ch.r.Max, ErrInvertedRange)
		}
	}
	return nil
}

// Lower returns the lower bounds in BGR order, as OpenCV expects.
func (l Limits) Lower() [3]float64 {
	return [3]float64{float64(l.B.Min), float64(l.G.Min), float64(l.R.Min)}
}

// Upper returns the upper bounds in BGR order.
func (l Limits) Upper() [3]float64 {
	return [3]float64{float64(l.B.Max), float64(l.G.Max), float64(l.R.Max)}
}

// Parse decodes and validates a limits document.
func Parse(data []byte) (Limits, error) {
	var f limitsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Limits{}, fmt.Errorf("failed to parse limits: %w", err)
	}

	var l Limits
	for _, ch := range l.channels() {
		r, ok := f.Limits[ch.name]
		if !ok || r == nil {
			return Limits{}, fmt.Errorf("channel %s: %w", ch.name, ErrMissingChannel)
		}
		*ch.r = *r
	}
	if err := l.Validate(); err != nil {
		return Limits{}, err
	}
	return l, nil
}

// Load reads and validates the limits file at path.
func Load(path string) (Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("failed to read limits file: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return Limits{}, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Save validates l and writes it to path.
func Save(path string, l Limits) error {
	if err := l.Validate(); err != nil {
		return err
	}

	f := limitsFile{Limits: map[string]*Range{}}
	for _, ch := range l.channels() {
		r := *ch.r
		f.Limits[ch.name] = &r
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode limits: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write limits file: %w", err)
	}
	return nil
}
