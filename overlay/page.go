package overlay

import (
	"fmt"
	"image"
	"image/color"

	"arpaint/canvas"
	"arpaint/zones"
)

// Page is the colouring-book sheet: a white frame with the zone borders,
// on which the drawing history is replayed for display and grading.
type Page struct {
	Grid     *zones.Grid
	renderer *Renderer
	blank    *ImageCanvas

	frame    *image.RGBA
	frameRev uint64
}

// NewPage prepares the empty sheet for g.
func NewPage(g *zones.Grid, renderer *Renderer) (*Page, error) {
	blank, err := NewImageCanvas(g.Width, g.Height, color.White)
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	renderer.DrawGridLines(blank, g)
	return &Page{Grid: g, renderer: renderer, blank: blank}, nil
}

// Paint returns a fresh sheet with the history replayed on it. This is the
// image that is graded and saved; labels are not part of it.
func (p *Page) Paint(h *canvas.History) *ImageCanvas {
	sheet := p.blank.Clone()
	h.Render(sheet)
	return sheet
}

// Display returns the painted sheet with the zone labels on top.
func (p *Page) Display(h *canvas.History) *ImageCanvas {
	sheet := p.Paint(h)
	p.renderer.DrawLabels(sheet, p.Grid)
	return sheet
}

// Frame returns the labelled sheet for the history at revision. The sheet
// is repainted only when revision differs from the previous call; fresh
// reports whether it was. Callers must not modify the returned image.
func (p *Page) Frame(h *canvas.History, revision uint64) (img *image.RGBA, fresh bool) {
	if p.frame != nil && p.frameRev == revision {
		return p.frame, false
	}
	sheet := p.Display(h)
	defer sheet.Close()

	p.frame, p.frameRev = sheet.Image(), revision
	debugMsgVerbose("OVERLAY", fmt.Sprintf("page repainted at revision %d", revision))
	return p.frame, true
}

// Score grades the history against the grid.
func (p *Page) Score(h *canvas.History) (int, *image.RGBA) {
	sheet := p.Paint(h)
	defer sheet.Close()

	img := sheet.Image()
	score := zones.Accuracy(img, p.Grid)
	debugMsg("OVERLAY", fmt.Sprintf("page graded: %d%% over %d zones", score, len(p.Grid.Zones)))
	return score, img
}

// Save grades the history and writes the graded sheet to path as PNG.
func (p *Page) Save(h *canvas.History, path string) (int, error) {
	sheet := p.Paint(h)
	defer sheet.Close()

	score := zones.Accuracy(sheet.Image(), p.Grid)
	if err := sheet.SavePNG(path); err != nil {
		return score, fmt.Errorf("failed to save page: %w", err)
	}
	debugMsg("OVERLAY", fmt.Sprintf("page saved to %s: %d%%", path, score))
	return score, nil
}
