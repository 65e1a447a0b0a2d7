// Package zones builds the colouring-book grid and grades painted frames
// against it.
package zones

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"
)

const (
	// Rows and Cols fix the grid arrangement: up to 3x4 = 12 zones.
	Rows = 3
	Cols = 4

	// Labels is the number of distinct zone labels, one per palette entry.
	Labels = 3
)

// NamedColor is a palette entry.
type NamedColor struct {
	Name  string
	Color color.RGBA
}

// Palette maps label i+1 to entry i.
type Palette [Labels]NamedColor

var basePalette = Palette{
	{Name: "red", Color: color.RGBA{R: 255, A: 255}},
	{Name: "green", Color: color.RGBA{G: 255, A: 255}},
	{Name: "blue", Color: color.RGBA{B: 255, A: 255}},
}

// Lookup returns the palette entry for a 1-based label.
func (p Palette) Lookup(label int) (NamedColor, bool) {
	if label < 1 || label > Labels {
		return NamedColor{}, false
	}
	return p[label-1], true
}

// Zone is one rectangular cell with its label.
type Zone struct {
	Rect  image.Rectangle
	Label int
}

// Anchor returns the centre of the zone's bounding box.
func (z Zone) Anchor() image.Point {
	return image.Point{
		X: (z.Rect.Min.X + z.Rect.Max.X) / 2,
		Y: (z.Rect.Min.Y + z.Rect.Max.Y) / 2,
	}
}

// Segment is a 1-px border line, both ends inclusive.
type Segment struct {
	From, To image.Point
}

// Grid is a generated colouring page. It is read-only once built.
type Grid struct {
	Width, Height int
	Zones         []Zone
	Palette       Palette

	xs, ys []int
}

// Generate partitions a w x h frame with horizontal boundaries every
// ceil(h/3) pixels and vertical boundaries every ceil(w/4) pixels, plus a
// closing border. The cells tile the frame exactly; edge cells may come out
// smaller and empty cells are dropped. Labels are drawn from rng and the
// palette is shuffled once per grid.
func Generate(w, h int, rng *rand.Rand) *Grid {
	g := &Grid{
		Width:   w,
		Height:  h,
		Palette: basePalette,
		xs:      boundaries(w, Cols),
		ys:      boundaries(h, Rows),
	}

	for r := 0; r+1 < len(g.ys); r++ {
		for c := 0; c+1 < len(g.xs); c++ {
			rect := image.Rect(g.xs[c], g.ys[r], g.xs[c+1], g.ys[r+1])
			if rect.Empty() {
				continue
			}
			g.Zones = append(g.Zones, Zone{Rect: rect, Label: rng.Intn(Labels) + 1})
		}
	}

	rng.Shuffle(len(g.Palette), func(i, j int) {
		g.Palette[i], g.Palette[j] = g.Palette[j], g.Palette[i]
	})
	return g
}

// boundaries returns 0, step, 2*step, ... below size, then size itself.
func boundaries(size, parts int) []int {
	if size <= 0 {
		return []int{0}
	}
	step := (size + parts - 1) / parts
	var out []int
	for v := 0; v < size; v += step {
		out = append(out, v)
	}
	return append(out, size)
}

// Target returns the colour zone z must be painted with.
func (g *Grid) Target(z Zone) color.RGBA {
	nc, _ := g.Palette.Lookup(z.Label)
	return nc.Color
}

// Lines returns the border segments: one vertical line per column boundary
// and one horizontal line per row boundary, the closing border drawn on the
// last pixel row/column.
func (g *Grid) Lines() []Segment {
	if g.Width <= 0 || g.Height <= 0 {
		return nil
	}
	var out []Segment
	for _, x := range g.xs {
		x = min(x, g.Width-1)
		out = append(out, Segment{From: image.Pt(x, 0), To: image.Pt(x, g.Height-1)})
	}
	for _, y := range g.ys {
		y = min(y, g.Height-1)
		out = append(out, Segment{From: image.Pt(0, y), To: image.Pt(g.Width-1, y)})
	}
	return out
}

// Legend returns the "label: colour" lines shown next to the page.
func (g *Grid) Legend() []string {
	out := make([]string, 0, Labels)
	for i, nc := range g.Palette {
		out = append(out, fmt.Sprintf("%d: %s", i+1, nc.Name))
	}
	return out
}
