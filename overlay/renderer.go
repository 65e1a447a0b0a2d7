package overlay

import (
	"fmt"
	"image"
	"image/color"

	"arpaint/canvas"
	"arpaint/tracking"
	"arpaint/zones"
)

// debugMsgFunc is set by the main package to use unified logging
var debugMsgFunc func(component, message string)

// debugMsgVerboseFunc is set by the main package for per-frame messages
var debugMsgVerboseFunc func(component, message string)

// SetDebugFunction allows main package to provide the debug logger
func SetDebugFunction(fn func(component, message string)) {
	debugMsgFunc = fn
}

// SetDebugVerboseFunction allows main package to provide the verbose debug logger
func SetDebugVerboseFunction(fn func(component, message string)) {
	debugMsgVerboseFunc = fn
}

// debugMsg is a wrapper that handles nil checks
func debugMsg(component, message string) {
	if debugMsgFunc != nil {
		debugMsgFunc(component, message)
	}
}

func debugMsgVerbose(component, message string) {
	if debugMsgVerboseFunc != nil {
		debugMsgVerboseFunc(component, message)
	}
}

// Status is what the status overlay shows in the lower-left corner.
type Status struct {
	Color     color.RGBA
	Thickness int
	Mode      string
	Source    string
	FPS       float64
}

// Renderer draws everything that is not part of the drawing itself:
// pointer cross, status text, grid lines and labels, legend.
type Renderer struct {
	pointerColor color.RGBA
	pointerSize  int
	pointerWidth int
	textColor    color.RGBA
	shadowColor  color.RGBA
	gridColor    color.RGBA
	labelColor   color.RGBA
	textScale    float64
	lineSpacing  int
	margin       int
}

func NewRenderer() *Renderer {
	return &Renderer{
		pointerColor: color.RGBA{255, 0, 0, 255}, // Red cross over the pencil
		pointerSize:  8,
		pointerWidth: 5,
		textColor:    color.RGBA{255, 255, 255, 255},
		shadowColor:  color.RGBA{0, 0, 0, 255},
		gridColor:    color.RGBA{0, 0, 0, 255},
		labelColor:   color.RGBA{0, 0, 0, 255},
		textScale:    0.6,
		lineSpacing:  22,
		margin:       10,
	}
}

// DrawPointer draws the pencil cross at p. Absent points draw nothing.
func (r *Renderer) DrawPointer(dst canvas.Rasterizer, p tracking.Point) {
	if !p.Valid() {
		return
	}
	c := p.Pt()
	dst.Line(image.Pt(c.X-r.pointerSize, c.Y), image.Pt(c.X+r.pointerSize, c.Y), r.pointerColor, r.pointerWidth)
	dst.Line(image.Pt(c.X, c.Y-r.pointerSize), image.Pt(c.X, c.Y+r.pointerSize), r.pointerColor, r.pointerWidth)
}

// DrawStatus prints the pencil state in the lower-left corner of a frame of
// the given size.
func (r *Renderer) DrawStatus(dst canvas.Rasterizer, frame image.Point, st Status) {
	lines := []string{
		fmt.Sprintf("COLOR: %s", canvas.ColorName(st.Color)),
		fmt.Sprintf("THICKNESS: %d", st.Thickness),
		fmt.Sprintf("MODE: %s", st.Mode),
	}
	if st.Source != "" {
		lines = append(lines, fmt.Sprintf("INPUT: %s", st.Source))
	}
	if st.FPS > 0 {
		lines = append(lines, fmt.Sprintf("FPS: %.1f", st.FPS))
	}

	y := frame.Y - r.margin - (len(lines)-1)*r.lineSpacing
	for _, line := range lines {
		org := image.Pt(r.margin, y)
		dst.Text(line, org.Add(image.Pt(1, 1)), r.textScale, r.shadowColor, 2)
		dst.Text(line, org, r.textScale, r.textColor, 1)
		y += r.lineSpacing
	}
	// swatch of the current colour next to the first line
	sw := image.Pt(r.margin+180, frame.Y-r.margin-(len(lines)-1)*r.lineSpacing-12)
	dst.FilledCircle(sw, 8, st.Color)

	debugMsgVerbose("OVERLAY", fmt.Sprintf("status: %v", lines))
}

// DrawGridLines draws the 1-px zone borders.
func (r *Renderer) DrawGridLines(dst canvas.Rasterizer, g *zones.Grid) {
	for _, seg := range g.Lines() {
		dst.Line(seg.From, seg.To, r.gridColor, 1)
	}
}

// DrawLabels writes each zone's label centred in its bounding box.
func (r *Renderer) DrawLabels(dst canvas.Rasterizer, g *zones.Grid) {
	const scale, thickness = 1.5, 2
	for _, z := range g.Zones {
		label := fmt.Sprintf("%d", z.Label)
		size := dst.MeasureText(label, scale, thickness)
		a := z.Anchor()
		dst.Text(label, image.Pt(a.X-size.X/2, a.Y+size.Y/2), scale, r.labelColor, thickness)
	}
}

// Legend renders the "label: colour" key, with the last accuracy if one was
// computed (accuracy < 0 means none yet).
func (r *Renderer) Legend(g *zones.Grid, accuracy int) (*ImageCanvas, error) {
	lines := g.Legend()
	height := r.margin*2 + (len(lines)+1)*30
	leg, err := NewImageCanvas(260, height, color.White)
	if err != nil {
		return nil, fmt.Errorf("failed to create legend: %w", err)
	}

	y := r.margin + 20
	for i, line := range lines {
		leg.FilledCircle(image.Pt(r.margin+8, y-6), 8, g.Palette[i].Color)
		leg.Text(line, image.Pt(r.margin+26, y), 0.8, r.labelColor, 1)
		y += 30
	}

	summary := "accuracy: -"
	if accuracy >= 0 {
		summary = fmt.Sprintf("accuracy: %d%%", accuracy)
	}
	leg.Text(summary, image.Pt(r.margin, y), 0.8, r.labelColor, 1)
	return leg, nil
}
