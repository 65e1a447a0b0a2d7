package canvas

import (
	"image"
	"image/color"
	"math"
)

// Kind tags a DrawMove variant.
type Kind int

const (
	KindDot Kind = iota
	KindLine
	KindSquare
	KindEllipse
	KindCircle
)

func (k Kind) String() string {
	switch k {
	case KindDot:
		return "dot"
	case KindLine:
		return "line"
	case KindSquare:
		return "square"
	case KindEllipse:
		return "ellipse"
	case KindCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// DrawMove is one entry of the drawing history. Which payload fields are
// meaningful depends on Kind:
//
//	Dot:     Start (position)
//	Line:    Start -> End
//	Square:  Start (origin corner), End (opposite corner)
//	Ellipse: Start (center), Axes (semi-axes), Angle, StartAngle, EndAngle
//	Circle:  Start (center), Radius
type DrawMove struct {
	Kind       Kind        `json:"kind"`
	Start      image.Point `json:"start"`
	End        image.Point `json:"end,omitempty"`
	Axes       image.Point `json:"axes,omitempty"`
	Radius     int         `json:"radius,omitempty"`
	Angle      float64     `json:"angle,omitempty"`
	StartAngle float64     `json:"start_angle,omitempty"`
	EndAngle   float64     `json:"end_angle,omitempty"`
	Color      color.RGBA  `json:"color"`
	Thickness  int         `json:"thickness"`
}

// NewDot returns a dot at p.
func NewDot(p image.Point, thickness int, c color.RGBA) DrawMove {
	return DrawMove{Kind: KindDot, Start: p, Thickness: thickness, Color: c}
}

// NewLine returns a line segment from -> to.
func NewLine(from, to image.Point, thickness int, c color.RGBA) DrawMove {
	return DrawMove{Kind: KindLine, Start: from, End: to, Thickness: thickness, Color: c}
}

// NewSquare returns the rectangle spanned by origin and the opposite corner.
func NewSquare(origin, corner image.Point, thickness int, c color.RGBA) DrawMove {
	return DrawMove{Kind: KindSquare, Start: origin, End: corner, Thickness: thickness, Color: c}
}

// NewEllipse returns the full ellipse inscribed in the box spanned by origin
// and pointer.
func NewEllipse(origin, pointer image.Point, thickness int, c color.RGBA) DrawMove {
	meanX := float64(pointer.X-origin.X) / 2
	meanY := float64(pointer.Y-origin.Y) / 2

	return DrawMove{
		Kind: KindEllipse,
		Start: image.Point{
			X: roundHalfEven(meanX + float64(origin.X)),
			Y: roundHalfEven(meanY + float64(origin.Y)),
		},
		Axes: image.Point{
			X: roundHalfEven(math.Abs(meanX)),
			Y: roundHalfEven(math.Abs(meanY)),
		},
		Angle:      0,
		StartAngle: 0,
		EndAngle:   360,
		Thickness:  thickness,
		Color:      c,
	}
}

// NewCircle returns the circle centred on center passing through edge.
func NewCircle(center, edge image.Point, thickness int, c color.RGBA) DrawMove {
	dx := float64(edge.X - center.X)
	dy := float64(edge.Y - center.Y)

	return DrawMove{
		Kind:      KindCircle,
		Start:     center,
		Radius:    roundHalfEven(math.Sqrt(dx*dx + dy*dy)),
		Thickness: thickness,
		Color:     c,
	}
}

// Recolor returns a copy of m painted with c.
func (m DrawMove) Recolor(c color.RGBA) DrawMove {
	m.Color = c
	return m
}

// Bounds returns the rectangle of pixels the move can touch when rendered,
// stroke width included.
func (m DrawMove) Bounds() image.Rectangle {
	half := (m.Thickness + 1) / 2
	var r image.Rectangle

	switch m.Kind {
	case KindDot:
		return square(m.Start, m.Thickness)
	case KindLine:
		r = image.Rectangle{Min: m.Start, Max: m.End}.Canon()
	case KindSquare:
		r = image.Rectangle{Min: m.Start, Max: m.End}.Canon()
	case KindEllipse:
		r = image.Rectangle{Min: m.Start.Sub(m.Axes), Max: m.Start.Add(m.Axes)}
	case KindCircle:
		return square(m.Start, m.Radius+half)
	}
	return r.Inset(-half)
}

func square(c image.Point, radius int) image.Rectangle {
	return image.Rect(c.X-radius, c.Y-radius, c.X+radius, c.Y+radius)
}

// roundHalfEven rounds to the nearest integer, ties to even.
func roundHalfEven(v float64) int {
	return int(math.RoundToEven(v))
}
