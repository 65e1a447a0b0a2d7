package tracking

import "sync"

// OpenCV highgui mouse event codes delivered to window callbacks.
const (
	EventMouseMove   = 0
	EventLButtonDown = 1
	EventLButtonUp   = 4
)

// Mouse holds the last pointer position reported by the window callback.
// The callback runs outside the tick loop; the tick reads one Sample per
// frame and intermediate positions are overwritten, never queued.
type Mouse struct {
	mu      sync.Mutex
	point   Point
	pressed bool
}

// NewMouse creates a mouse cell with no position yet.
func NewMouse() *Mouse {
	return &Mouse{}
}

// Update records a window mouse event. Its signature matches the highgui
// callback shape so it can be passed straight through.
func (m *Mouse) Update(event, x, y, flags int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.point = At(x, y)
	switch event {
	case EventLButtonDown:
		m.pressed = true
	case EventLButtonUp:
		m.pressed = false
	}
}

// Sample returns the latest position and button state.
func (m *Mouse) Sample() Sample {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Sample{Point: m.point, HasButton: true, Pressed: m.pressed}
}
