package detection

import (
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"arpaint/calibration"
	"arpaint/tracking"
)

// Global debug function for detection package
var debugMsgFunc func(string, string)

// SetDebugFunction allows main package to provide debug function
func SetDebugFunction(fn func(string, string)) {
	debugMsgFunc = fn
}

// debugMsg is a wrapper that handles nil checks
func debugMsg(component, message string) {
	if debugMsgFunc != nil {
		debugMsgFunc(component, message)
	}
}

// PointerProvider turns a camera frame into a pencil sample.
type PointerProvider interface {
	// Locate returns the sample for this tick and a visualization of what
	// was detected. The caller closes the returned Mat.
	Locate(frame gocv.Mat) (tracking.Sample, gocv.Mat)
	Close() error
	GetProviderInfo() ProviderInfo
}

// ProviderInfo describes the active pointer provider
type ProviderInfo struct {
	Kind     tracking.SourceKind
	Detail   string        // Limits or window the provider reads
	Smoothed bool          // Kalman smoothing applied on top
	InitTime time.Duration // Time taken to initialize
}

// Options selects and configures the provider.
type Options struct {
	UseMouse bool
	Mouse    *tracking.Mouse
	Limits   calibration.Limits
	Smooth   bool
}

// ProviderManager owns the active provider and the optional smoother
type ProviderManager struct {
	currentProvider PointerProvider
	providerInfo    ProviderInfo
	smoother        *tracking.Smoother
}

// NewProviderManager creates an empty provider manager
func NewProviderManager() *ProviderManager {
	return &ProviderManager{}
}

// Initialize picks the mouse provider when requested, the vision provider
// otherwise.
func (pm *ProviderManager) Initialize(opts Options) error {
	startTime := time.Now()

	if opts.UseMouse {
		if opts.Mouse == nil {
			return fmt.Errorf("mouse provider needs a mouse cell")
		}
		pm.currentProvider = NewMouseProvider(opts.Mouse)
	} else {
		vp, err := NewVisionProvider(opts.Limits)
		if err != nil {
			return fmt.Errorf("vision provider failed: %w", err)
		}
		pm.currentProvider = vp
	}

	if opts.Smooth {
		pm.smoother = tracking.NewSmoother()
	}

	pm.providerInfo = pm.currentProvider.GetProviderInfo()
	pm.providerInfo.Smoothed = opts.Smooth
	pm.providerInfo.InitTime = time.Since(startTime)
	debugMsg("PROVIDER", fmt.Sprintf("%s provider initialized (%s, smoothed=%v, %v)",
		pm.providerInfo.Kind, pm.providerInfo.Detail, pm.providerInfo.Smoothed, pm.providerInfo.InitTime))
	return nil
}

// Locate runs the active provider and smooths its point if enabled.
func (pm *ProviderManager) Locate(frame gocv.Mat) (tracking.Sample, gocv.Mat) {
	sample, vis := pm.currentProvider.Locate(frame)
	if pm.smoother != nil {
		sample.Point = pm.smoother.Filter(sample.Point)
	}
	return sample, vis
}

// GetProvider returns the current active provider
func (pm *ProviderManager) GetProvider() PointerProvider {
	return pm.currentProvider
}

// GetProviderInfo returns information about the current provider
func (pm *ProviderManager) GetProviderInfo() ProviderInfo {
	return pm.providerInfo
}

// Close closes the current provider
func (pm *ProviderManager) Close() error {
	if pm.currentProvider != nil {
		return pm.currentProvider.Close()
	}
	return nil
}
