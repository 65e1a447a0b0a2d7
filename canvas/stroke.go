package canvas

import "arpaint/tracking"

// ShakeThreshold is the per-axis jump, in pixels, above which shake
// prevention treats a new sample as a fresh stroke instead of a line.
const ShakeThreshold = 50

// NextMove decides what a freehand sample draws. It reports false when the
// new point is absent. A missing previous point, or a jump larger than
// ShakeThreshold on either axis while preventShake is set, starts a new
// stroke with a dot; otherwise the stroke continues with a line.
func NextMove(old, cur tracking.Point, pencil Pencil, preventShake bool) (DrawMove, bool) {
	if !cur.Valid() {
		return DrawMove{}, false
	}
	if !old.Valid() {
		return NewDot(cur.Pt(), pencil.Thickness, pencil.Color), true
	}
	if preventShake && (abs(old.X-cur.X) > ShakeThreshold || abs(old.Y-cur.Y) > ShakeThreshold) {
		return NewDot(cur.Pt(), pencil.Thickness, pencil.Color), true
	}
	return NewLine(old.Pt(), cur.Pt(), pencil.Thickness, pencil.Color), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
