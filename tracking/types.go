package tracking

import (
	"fmt"
	"image"
)

// Point is a pencil position in frame pixels. The zero value is NoPoint:
// an absent detection is a normal value, not an error.
type Point struct {
	X, Y  int
	valid bool
}

// NoPoint is the absent point (colour not visible, mouse not moved yet).
var NoPoint = Point{}

// At returns a present point at (x, y).
func At(x, y int) Point {
	return Point{X: x, Y: y, valid: true}
}

// Valid reports whether the point holds a position.
func (p Point) Valid() bool {
	return p.valid
}

// Pt returns the position as an image.Point. Callers must check Valid first.
func (p Point) Pt() image.Point {
	return image.Point{X: p.X, Y: p.Y}
}

func (p Point) String() string {
	if !p.valid {
		return "(none)"
	}
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Sample is what a pointer source yields once per tick.
type Sample struct {
	Point Point

	// HasButton is set by pointer devices that report a pressed state.
	// Vision sources leave it false and Pressed is ignored.
	HasButton bool
	Pressed   bool
}

// PenDown returns the point that should draw this tick. A pointer device
// whose button is released lifts the pen.
func (s Sample) PenDown() Point {
	if s.HasButton && !s.Pressed {
		return NoPoint
	}
	return s.Point
}

// Source kinds reported by the detection layer.
type SourceKind int

const (
	SourceVision SourceKind = iota
	SourceMouse
)

func (k SourceKind) String() string {
	switch k {
	case SourceVision:
		return "VISION"
	case SourceMouse:
		return "MOUSE"
	default:
		return "UNKNOWN"
	}
}
