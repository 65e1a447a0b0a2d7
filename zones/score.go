package zones

import (
	"image"
	"image/color"
)

// Accuracy grades a painted frame. For every zone it counts the pixels in
// the zone rectangle whose RGB equals the zone's target colour, then divides
// the sum by the total number of frame pixels, not the zone-covered ones.
// Grid lines, labels and anything outside an exact zone rectangle therefore
// count against the score. The percentage is truncated.
func Accuracy(frame image.Image, g *Grid) int {
	bounds := frame.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0
	}

	hits := 0
	for _, z := range g.Zones {
		hits += countMatches(frame, z.Rect.Add(bounds.Min).Intersect(bounds), g.Target(z))
	}
	return hits * 100 / total
}

func countMatches(frame image.Image, r image.Rectangle, want color.RGBA) int {
	n := 0
	if rgba, ok := frame.(*image.RGBA); ok {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			i := rgba.PixOffset(r.Min.X, y)
			for x := r.Min.X; x < r.Max.X; x, i = x+1, i+4 {
				p := rgba.Pix[i : i+3 : i+3]
				if p[0] == want.R && p[1] == want.G && p[2] == want.B {
					n++
				}
			}
		}
		return n
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.RGBAModel.Convert(frame.At(x, y)).(color.RGBA)
			if c.R == want.R && c.G == want.G && c.B == want.B {
				n++
			}
		}
	}
	return n
}
