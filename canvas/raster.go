package canvas

import (
	"image"
	"image/color"
)

// Rasterizer draws primitives onto a pixel buffer in place. Coordinates are
// frame pixels; angles are degrees, as in OpenCV.
type Rasterizer interface {
	Line(from, to image.Point, c color.RGBA, thickness int)
	FilledCircle(center image.Point, radius int, c color.RGBA)
	Circle(center image.Point, radius int, c color.RGBA, thickness int)
	Rectangle(a, b image.Point, c color.RGBA, thickness int)
	Ellipse(center, axes image.Point, angle, startAngle, endAngle float64, c color.RGBA, thickness int)

	// Text draws s with its baseline starting at org.
	Text(s string, org image.Point, scale float64, c color.RGBA, thickness int)
	// MeasureText returns the width and height s would occupy.
	MeasureText(s string, scale float64, thickness int) image.Point
}
