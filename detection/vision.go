package detection

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"arpaint/calibration"
	"arpaint/tracking"
)

var (
	blobGreen  = color.RGBA{0, 255, 0, 0}
	blobWhite  = color.RGBA{255, 255, 255, 0}
	crossRed   = color.RGBA{255, 0, 0, 0}
	crossSize  = 8
	crossWidth = 5
)

// VisionProvider segments the calibrated colour and follows the centroid of
// the largest blob.
type VisionProvider struct {
	limits calibration.Limits
	lower  gocv.Scalar
	upper  gocv.Scalar
}

// NewVisionProvider validates limits and prepares the threshold bounds.
func NewVisionProvider(limits calibration.Limits) (*VisionProvider, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	lo, hi := limits.Lower(), limits.Upper()
	return &VisionProvider{
		limits: limits,
		lower:  gocv.NewScalar(lo[0], lo[1], lo[2], 0),
		upper:  gocv.NewScalar(hi[0], hi[1], hi[2], 0),
	}, nil
}

// Mask thresholds a BGR frame with the calibration limits.
func (vp *VisionProvider) Mask(frame gocv.Mat) gocv.Mat {
	mask := gocv.NewMat()
	gocv.InRangeWithScalar(frame, vp.lower, vp.upper, &mask)
	return mask
}

// Locate thresholds the frame and returns the centroid of the largest blob.
func (vp *VisionProvider) Locate(frame gocv.Mat) (tracking.Sample, gocv.Mat) {
	mask := vp.Mask(frame)
	defer mask.Close()

	p, vis := Centroid(mask)
	return tracking.Sample{Point: p}, vis
}

func (vp *VisionProvider) Close() error {
	return nil
}

func (vp *VisionProvider) GetProviderInfo() ProviderInfo {
	return ProviderInfo{
		Kind: tracking.SourceVision,
		Detail: fmt.Sprintf("B[%d,%d] G[%d,%d] R[%d,%d]",
			vp.limits.B.Min, vp.limits.B.Max, vp.limits.G.Min, vp.limits.G.Max, vp.limits.R.Min, vp.limits.R.Max),
	}
}

// Centroid finds the largest external contour of a binary mask and returns
// its centroid from the image moments of the filled contour. Without any
// contour, or with a zero-area blob, the point is absent. The returned BGR
// visualization shows the largest blob green, the others white and a red
// cross on the centroid; with no contours it is the mask itself.
func Centroid(mask gocv.Mat) (tracking.Point, gocv.Mat) {
	vis := gocv.NewMat()
	gocv.CvtColor(mask, &vis, gocv.ColorGrayToBGR)

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxNone)
	defer contours.Close()
	if contours.Size() == 0 {
		return tracking.NoPoint, vis
	}

	largest, largestArea := 0, -1.0
	for i := 0; i < contours.Size(); i++ {
		if area := gocv.ContourArea(contours.At(i)); area > largestArea {
			largest, largestArea = i, area
		}
	}

	blob := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), mask.Rows(), mask.Cols(), gocv.MatTypeCV8U)
	defer blob.Close()
	gocv.DrawContours(&blob, contours, largest, blobWhite, -1)

	for i := 0; i < contours.Size(); i++ {
		if i != largest {
			gocv.DrawContours(&vis, contours, i, blobWhite, -1)
		}
	}
	gocv.DrawContours(&vis, contours, largest, blobGreen, -1)

	m := gocv.Moments(blob, true)
	if m["m00"] == 0 {
		return tracking.NoPoint, vis
	}
	p := tracking.At(int(m["m10"]/m["m00"]), int(m["m01"]/m["m00"]))
	drawCross(&vis, p.Pt())
	debugMsg("VISION", fmt.Sprintf("largest blob %d/%d area=%.0f centroid=%v", largest+1, contours.Size(), largestArea, p))
	return p, vis
}

func drawCross(img *gocv.Mat, c image.Point) {
	gocv.Line(img, image.Pt(c.X-crossSize, c.Y), image.Pt(c.X+crossSize, c.Y), crossRed, crossWidth)
	gocv.Line(img, image.Pt(c.X, c.Y-crossSize), image.Pt(c.X, c.Y+crossSize), crossRed, crossWidth)
}
