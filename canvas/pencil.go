package canvas

import (
	"fmt"
	"image/color"
)

// Pencil thickness bounds.
const (
	MinThickness     = 1
	MaxThickness     = 40
	ThicknessStep    = 4
	DefaultThickness = 5
)

var (
	Red   = color.RGBA{R: 255, A: 255}
	Green = color.RGBA{G: 255, A: 255}
	Blue  = color.RGBA{B: 255, A: 255}

	// Disabled marks a figure whose placement is paused because the pencil
	// was lost.
	Disabled = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// Pencil is the drawing state changed by keyboard commands.
type Pencil struct {
	Color     color.RGBA
	Thickness int
}

// NewPencil returns the start-of-session pencil: red, thickness 5.
func NewPencil() Pencil {
	return Pencil{Color: Red, Thickness: DefaultThickness}
}

// Thicker raises the thickness by one step, capped at MaxThickness.
func (p *Pencil) Thicker() {
	p.Thickness = clampThickness(p.Thickness + ThicknessStep)
}

// Thinner lowers the thickness by one step, floored at MinThickness.
func (p *Pencil) Thinner() {
	p.Thickness = clampThickness(p.Thickness - ThicknessStep)
}

func clampThickness(t int) int {
	if t < MinThickness {
		return MinThickness
	}
	if t > MaxThickness {
		return MaxThickness
	}
	return t
}

// ColorName names the pencil colours; anything else prints as hex.
func ColorName(c color.RGBA) string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Disabled:
		return "gray"
	default:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
}
