package main

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

const (
	mainWindowName   = "arpaint"
	pencilWindowName = "pencil"
	legendWindowName = "legend"
)

// Display owns the HighGUI windows: the drawing, the pencil detection view
// and, in colouring mode, the legend.
type Display struct {
	main   *gocv.Window
	pencil *gocv.Window
	legend *gocv.Window
}

func NewDisplay(withLegend bool) *Display {
	d := &Display{
		main:   gocv.NewWindow(mainWindowName),
		pencil: gocv.NewWindow(pencilWindowName),
	}
	if withLegend {
		d.legend = gocv.NewWindow(legendWindowName)
	}
	return d
}

// SetMouseHandler routes mouse events of the drawing window to fn.
func (d *Display) SetMouseHandler(fn func(event, x, y, flags int, userdata interface{})) {
	d.main.SetMouseHandler(fn, nil)
}

func (d *Display) Show(frame gocv.Mat) {
	d.main.IMShow(frame)
}

func (d *Display) ShowPencil(vis gocv.Mat) {
	if vis.Empty() {
		return
	}
	d.pencil.IMShow(vis)
}

// ShowLegend converts a Go image to BGR and shows it in the legend window.
func (d *Display) ShowLegend(img image.Image) error {
	if d.legend == nil {
		return nil
	}
	mat, err := imageToBGR(img)
	if err != nil {
		return err
	}
	defer mat.Close()
	d.legend.IMShow(mat)
	return nil
}

// WaitKey pumps the GUI event loop and returns the pressed key, or -1.
func (d *Display) WaitKey(delay int) int {
	return d.main.WaitKey(delay)
}

func (d *Display) Close() {
	d.main.Close()
	d.pencil.Close()
	if d.legend != nil {
		d.legend.Close()
	}
}

// imageToBGR copies a Go image into a new 3-channel BGR Mat.
func imageToBGR(img image.Image) (gocv.Mat, error) {
	rgba, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to convert image: %w", err)
	}
	defer rgba.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(rgba, &bgr, gocv.ColorRGBAToBGR)
	return bgr, nil
}
