package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// hersheyHeight approximates the pixel height of OpenCV's simplex font at
// scale 1, so both rasterizers place text alike.
const hersheyHeight = 22.0

// ImageCanvas is a pure-Go canvas.Rasterizer backed by a gg context.
// Integer coordinates address pixel centres.
type ImageCanvas struct {
	dc     *gg.Context
	pm     *gg.Pixmap
	source *text.FontSource
	faces  map[float64]text.Face
}

// NewImageCanvas returns a w x h canvas filled with bg.
func NewImageCanvas(w, h int, bg color.Color) (*ImageCanvas, error) {
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	pm := gg.NewPixmap(w, h)
	dc := gg.NewContextForPixmap(pm)
	dc.SetColor(bg)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("failed to clear canvas: %w", err)
	}

	return &ImageCanvas{dc: dc, pm: pm, source: source, faces: make(map[float64]text.Face)}, nil
}

// Clone returns an independent copy of the canvas. The pixel buffer is
// copied in one block.
func (c *ImageCanvas) Clone() *ImageCanvas {
	c.flush()
	pm := gg.NewPixmap(c.pm.Width(), c.pm.Height())
	copy(pm.Data(), c.pm.Data())
	return &ImageCanvas{dc: gg.NewContextForPixmap(pm), pm: pm, source: c.source, faces: c.faces}
}

// Image returns a snapshot of the pixels.
func (c *ImageCanvas) Image() *image.RGBA {
	c.flush()
	return c.pm.ToImage()
}

// SavePNG writes the canvas to path.
func (c *ImageCanvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// Close releases the gg context.
func (c *ImageCanvas) Close() error {
	return c.dc.Close()
}

// Line, Circle, Rectangle and Ellipse degenerate to a dot of the stroke
// width when their path has no length, as OpenCV draws them.
func (c *ImageCanvas) Line(from, to image.Point, col color.RGBA, thickness int) {
	if from == to {
		c.dot(from, col, thickness)
		return
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(float64(thickness))
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.DrawLine(px(from.X), px(from.Y), px(to.X), px(to.Y))
	c.stroke()
}

func (c *ImageCanvas) FilledCircle(center image.Point, radius int, col color.RGBA) {
	c.dc.SetColor(col)
	c.dc.DrawCircle(px(center.X), px(center.Y), float64(radius))
	c.fill()
}

func (c *ImageCanvas) Circle(center image.Point, radius int, col color.RGBA, thickness int) {
	if radius <= 0 {
		c.dot(center, col, thickness)
		return
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(float64(thickness))
	c.dc.DrawCircle(px(center.X), px(center.Y), float64(radius))
	c.stroke()
}

func (c *ImageCanvas) Rectangle(a, b image.Point, col color.RGBA, thickness int) {
	r := image.Rectangle{Min: a, Max: b}.Canon()
	if r.Empty() {
		c.Line(a, b, col, thickness)
		return
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(float64(thickness))
	c.dc.DrawRectangle(px(r.Min.X), px(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	c.stroke()
}

func (c *ImageCanvas) Ellipse(center, axes image.Point, angle, startAngle, endAngle float64, col color.RGBA, thickness int) {
	if axes.X <= 0 && axes.Y <= 0 {
		c.dot(center, col, thickness)
		return
	}
	cx, cy := px(center.X), px(center.Y)

	c.dc.Push()
	defer c.dc.Pop()
	c.dc.RotateAbout(radians(angle), cx, cy)
	c.dc.SetColor(col)
	c.dc.SetLineWidth(float64(thickness))
	c.dc.SetLineCap(gg.LineCapRound)
	if math.Abs(endAngle-startAngle) >= 360 {
		c.dc.DrawEllipse(cx, cy, float64(axes.X), float64(axes.Y))
	} else {
		c.dc.DrawEllipticalArc(cx, cy, float64(axes.X), float64(axes.Y), radians(startAngle), radians(endAngle))
	}
	c.stroke()
}

func (c *ImageCanvas) Text(s string, org image.Point, scale float64, col color.RGBA, thickness int) {
	c.dc.SetFont(c.face(scale))
	c.dc.SetColor(col)
	c.dc.DrawString(s, float64(org.X), float64(org.Y))
}

func (c *ImageCanvas) MeasureText(s string, scale float64, thickness int) image.Point {
	c.dc.SetFont(c.face(scale))
	w, h := c.dc.MeasureString(s)
	return image.Pt(int(math.Ceil(w)), int(math.Ceil(h)))
}

func (c *ImageCanvas) dot(p image.Point, col color.RGBA, thickness int) {
	c.FilledCircle(p, max(1, (thickness+1)/2), col)
}

func (c *ImageCanvas) face(scale float64) text.Face {
	if f, ok := c.faces[scale]; ok {
		return f
	}
	f := c.source.Face(hersheyHeight * scale)
	c.faces[scale] = f
	return f
}

func (c *ImageCanvas) flush() {
	if err := c.dc.FlushGPU(); err != nil {
		debugMsg("OVERLAY", fmt.Sprintf("flush failed: %v", err))
	}
}

func (c *ImageCanvas) stroke() {
	if err := c.dc.Stroke(); err != nil {
		debugMsg("OVERLAY", fmt.Sprintf("stroke failed: %v", err))
	}
}

func (c *ImageCanvas) fill() {
	if err := c.dc.Fill(); err != nil {
		debugMsg("OVERLAY", fmt.Sprintf("fill failed: %v", err))
	}
}

func px(v int) float64 {
	return float64(v) + 0.5
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
