package detection

import (
	"gocv.io/x/gocv"

	"arpaint/tracking"
)

// MouseProvider reads the pencil from the window mouse cell. The frame is
// only used for its size.
type MouseProvider struct {
	mouse *tracking.Mouse
}

func NewMouseProvider(mouse *tracking.Mouse) *MouseProvider {
	return &MouseProvider{mouse: mouse}
}

// Handler is the callback to register with Window.SetMouseHandler.
func (mp *MouseProvider) Handler() func(event, x, y, flags int, userdata interface{}) {
	return func(event, x, y, flags int, _ interface{}) {
		mp.mouse.Update(event, x, y, flags)
	}
}

// Locate samples the mouse once and draws the cross on a black frame.
func (mp *MouseProvider) Locate(frame gocv.Mat) (tracking.Sample, gocv.Mat) {
	sample := mp.mouse.Sample()

	vis := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), frame.Rows(), frame.Cols(), gocv.MatTypeCV8UC3)
	if sample.Point.Valid() {
		drawCross(&vis, sample.Point.Pt())
	}
	return sample, vis
}

func (mp *MouseProvider) Close() error {
	return nil
}

func (mp *MouseProvider) GetProviderInfo() ProviderInfo {
	return ProviderInfo{Kind: tracking.SourceMouse, Detail: "window mouse"}
}
