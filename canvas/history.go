package canvas

// History is the ordered log of draw moves. Insertion order is render order:
// later moves paint over earlier ones.
type History struct {
	moves []DrawMove
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Append adds m at the end.
func (h *History) Append(m DrawMove) {
	h.moves = append(h.moves, m)
}

// ReplaceLast overwrites the most recent move. On an empty history it
// appends instead.
func (h *History) ReplaceLast(m DrawMove) {
	if len(h.moves) == 0 {
		h.moves = append(h.moves, m)
		return
	}
	h.moves[len(h.moves)-1] = m
}

// PopLast removes and returns the most recent move.
func (h *History) PopLast() (DrawMove, bool) {
	if len(h.moves) == 0 {
		return DrawMove{}, false
	}
	last := h.moves[len(h.moves)-1]
	h.moves = h.moves[:len(h.moves)-1]
	return last, true
}

// Clear drops every move.
func (h *History) Clear() {
	h.moves = nil
}

// Len returns the number of moves.
func (h *History) Len() int {
	return len(h.moves)
}

// At returns the i-th move in render order.
func (h *History) At(i int) DrawMove {
	return h.moves[i]
}

// Moves returns a copy of the log.
func (h *History) Moves() []DrawMove {
	out := make([]DrawMove, len(h.moves))
	copy(out, h.moves)
	return out
}

// Render replays every move onto r in insertion order.
func (h *History) Render(r Rasterizer) {
	for _, m := range h.moves {
		renderMove(r, m)
	}
}

func renderMove(r Rasterizer, m DrawMove) {
	switch m.Kind {
	case KindDot:
		r.FilledCircle(m.Start, m.Thickness, m.Color)
	case KindLine:
		r.Line(m.Start, m.End, m.Color, m.Thickness)
	case KindSquare:
		r.Rectangle(m.Start, m.End, m.Color, m.Thickness)
	case KindEllipse:
		r.Ellipse(m.Start, m.Axes, m.Angle, m.StartAngle, m.EndAngle, m.Color, m.Thickness)
	case KindCircle:
		r.Circle(m.Start, m.Radius, m.Color, m.Thickness)
	}
}
