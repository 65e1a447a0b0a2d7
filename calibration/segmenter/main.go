// Command segmenter tunes the BGR ranges that isolate the pencil colour and
// writes them to limits.json for arpaint -json.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"arpaint/calibration"
	"arpaint/detection"
)

const (
	windowName  = "Color segmentation"
	sliderMax   = 255
	windowScale = 0.55
)

var (
	camera  = flag.Int("camera", 0, "Camera device index")
	outPath = flag.String("out", calibration.DefaultPath, "Where to write the limits (also read as the starting point)")
	verbose = flag.Bool("v", false, "Log the current ranges on every change")
)

// channelBar ties one trackbar to one bound of a channel range.
type channelBar struct {
	name  string
	bar   *gocv.Trackbar
	bound *int
}

func main() {
	flag.Parse()
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	log := logrus.WithField("component", "segmenter")

	fmt.Printf("🎨 COLOR SEGMENTER\n")
	fmt.Printf("==================\n\n")

	limits, err := calibration.Load(*outPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		limits = calibration.Default()
		fmt.Printf("📄 No %s yet, starting from full ranges\n", *outPath)
	case err != nil:
		log.WithError(err).Fatalf("Cannot start from existing limits")
	default:
		fmt.Printf("📄 Loaded starting ranges from %s\n", *outPath)
	}

	capture, err := gocv.VideoCaptureDevice(*camera)
	if err != nil {
		log.WithError(err).WithField("camera", *camera).Fatal("Error opening camera")
	}
	defer capture.Close()

	frame := gocv.NewMat()
	defer frame.Close()
	if ok := capture.Read(&frame); !ok || frame.Empty() {
		log.WithField("camera", *camera).Error("Cannot read from camera")
		return
	}

	window := gocv.NewWindow(windowName)
	defer window.Close()
	window.ResizeWindow(int(float64(frame.Cols())*windowScale), frame.Rows())

	bars := []channelBar{
		{name: "R min", bound: &limits.R.Min},
		{name: "R max", bound: &limits.R.Max},
		{name: "G min", bound: &limits.G.Min},
		{name: "G max", bound: &limits.G.Max},
		{name: "B min", bound: &limits.B.Min},
		{name: "B max", bound: &limits.B.Max},
	}
	for i := range bars {
		bars[i].bar = window.CreateTrackbar(bars[i].name, sliderMax)
		bars[i].bar.SetPos(*bars[i].bound)
	}

	fmt.Printf("\n⌨️  Drag the sliders until only the pencil is white.\n")
	fmt.Printf("   w = write %s and exit, q = quit without saving\n\n", *outPath)

	for {
		if ok := capture.Read(&frame); !ok || frame.Empty() {
			log.Error("Camera stopped delivering frames")
			return
		}

		if readBars(bars) {
			log.WithFields(logrus.Fields{
				"B": fmt.Sprintf("[%d,%d]", limits.B.Min, limits.B.Max),
				"G": fmt.Sprintf("[%d,%d]", limits.G.Min, limits.G.Max),
				"R": fmt.Sprintf("[%d,%d]", limits.R.Min, limits.R.Max),
			}).Debug("Ranges changed")
		}

		showMask(window, frame, limits)

		switch window.WaitKey(1) & 0xFF {
		case 'q':
			fmt.Println("👋 Quit without saving")
			return
		case 'w':
			if err := writeLimits(*outPath, limits); err != nil {
				log.WithError(err).Error("Limits not written, fix the sliders and press w again")
				continue
			}
			fmt.Printf("✅ Limits written to %s\n", *outPath)
			return
		}
	}
}

// writeLimits saves limits to path. Invalid ranges are reported without
// touching an existing file.
func writeLimits(path string, limits calibration.Limits) error {
	if err := limits.Validate(); err != nil {
		return fmt.Errorf("invalid ranges: %w", err)
	}
	return calibration.Save(path, limits)
}

// readBars copies trackbar positions into the limits and reports whether any
// bound changed.
func readBars(bars []channelBar) bool {
	changed := false
	for _, b := range bars {
		if pos := b.bar.GetPos(); pos != *b.bound {
			*b.bound = pos
			changed = true
		}
	}
	return changed
}

// showMask displays the thresholded frame. An inverted range matches nothing,
// so the window goes black until the sliders are sorted out.
func showMask(window *gocv.Window, frame gocv.Mat, limits calibration.Limits) {
	vp, err := detection.NewVisionProvider(limits)
	if err != nil {
		black := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), frame.Rows(), frame.Cols(), gocv.MatTypeCV8U)
		defer black.Close()
		window.IMShow(black)
		return
	}
	mask := vp.Mask(frame)
	defer mask.Close()
	window.IMShow(mask)
}
