package main

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ErrFrameUnavailable is returned when the camera delivers no frame.
var ErrFrameUnavailable = errors.New("camera delivered no frame")

// Camera wraps the capture device and applies the optional mirror.
type Camera struct {
	capture *gocv.VideoCapture
	index   int
	mirror  bool
}

// OpenCamera opens device index with a minimal capture buffer.
func OpenCamera(index int, mirror bool) (*Camera, error) {
	capture, err := gocv.VideoCaptureDevice(index)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", index, err)
	}
	// Keep latency low: the newest frame is the only one we want
	capture.Set(gocv.VideoCaptureBufferSize, 1)
	debugMsg("CAMERA", fmt.Sprintf("camera %d opened (mirror=%v)", index, mirror))
	return &Camera{capture: capture, index: index, mirror: mirror}, nil
}

// Read grabs the next frame into dst.
func (c *Camera) Read(dst *gocv.Mat) error {
	if ok := c.capture.Read(dst); !ok || dst.Empty() {
		return fmt.Errorf("camera %d: %w", c.index, ErrFrameUnavailable)
	}
	if c.mirror {
		gocv.Flip(*dst, dst, 1)
	}
	return nil
}

// Size reads one frame to learn the frame dimensions.
func (c *Camera) Size() (image.Point, error) {
	frame := gocv.NewMat()
	defer frame.Close()
	if err := c.Read(&frame); err != nil {
		return image.Point{}, err
	}
	return image.Pt(frame.Cols(), frame.Rows()), nil
}

func (c *Camera) Close() error {
	return c.capture.Close()
}
