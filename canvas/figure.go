package canvas

import (
	"image"

	"arpaint/tracking"
)

// FigureKind selects the geometric figure being placed.
type FigureKind int

const (
	FigureSquare FigureKind = iota
	FigureEllipse
	FigureCircle
)

func (k FigureKind) String() string {
	switch k {
	case FigureSquare:
		return "SQUARE"
	case FigureEllipse:
		return "ELLIPSE"
	case FigureCircle:
		return "CIRCLE"
	default:
		return "UNKNOWN"
	}
}

func (k FigureKind) build(origin, pointer image.Point, pencil Pencil) DrawMove {
	switch k {
	case FigureEllipse:
		return NewEllipse(origin, pointer, pencil.Thickness, pencil.Color)
	case FigureCircle:
		return NewCircle(origin, pointer, pencil.Thickness, pencil.Color)
	default:
		return NewSquare(origin, pointer, pencil.Thickness, pencil.Color)
	}
}

// FigureState is the placement mode of the builder.
type FigureState int

const (
	// FigureIdle means freehand drawing.
	FigureIdle FigureState = iota
	// FigurePlacing means a figure follows the pointer.
	FigurePlacing
)

func (s FigureState) String() string {
	switch s {
	case FigureIdle:
		return "IDLE"
	case FigurePlacing:
		return "PLACING"
	default:
		return "UNKNOWN"
	}
}

// FigureBuilder turns pointer samples into a live-preview figure at the tail
// of a History. It remembers the figure by its history index only.
type FigureBuilder struct {
	state  FigureState
	kind   FigureKind
	origin tracking.Point

	index    int
	hasIndex bool
	paused   bool
}

// NewFigureBuilder returns an idle builder.
func NewFigureBuilder() *FigureBuilder {
	return &FigureBuilder{origin: tracking.NoPoint}
}

// State returns the current placement mode.
func (b *FigureBuilder) State() FigureState {
	return b.state
}

// Kind returns the figure being placed. Only meaningful while placing.
func (b *FigureBuilder) Kind() FigureKind {
	return b.kind
}

// Placing reports whether a figure is being placed.
func (b *FigureBuilder) Placing() bool {
	return b.state == FigurePlacing
}

// Paused reports whether the figure in progress is greyed out because the
// pointer was lost.
func (b *FigureBuilder) Paused() bool {
	return b.hasIndex && b.paused
}

// Mode names the mode for status output, e.g. "freehand" or "placing:CIRCLE".
func (b *FigureBuilder) Mode() string {
	if b.state == FigureIdle {
		return "freehand"
	}
	return "placing:" + b.kind.String()
}

// Press handles a figure key. From idle it starts placing kind. Pressing the
// key of the figure being placed commits it, or cancels it if it is still
// greyed out. Pressing another figure key drops the figure in progress and
// starts placing the new kind.
func (b *FigureBuilder) Press(kind FigureKind, h *History) {
	switch {
	case b.state == FigureIdle:
		b.start(kind)
	case kind == b.kind:
		if b.Paused() {
			b.drop(h)
		}
		b.reset()
	default:
		b.drop(h)
		b.start(kind)
	}
}

// Sample feeds one pointer sample while placing. A valid point fixes the
// origin on first sight and then writes the figure spanned by origin and
// pointer. An absent point greys out the figure already written. It reports
// whether the history changed.
func (b *FigureBuilder) Sample(p tracking.Point, pencil Pencil, h *History) bool {
	if b.state != FigurePlacing {
		return false
	}

	if !p.Valid() {
		if b.hasIndex && !b.paused {
			b.write(h.At(b.index).Recolor(Disabled), h)
			b.paused = true
			return true
		}
		return false
	}

	if !b.origin.Valid() {
		b.origin = p
	}
	b.write(b.kind.build(b.origin.Pt(), p.Pt(), pencil), h)
	b.paused = false
	return true
}

// Discard forgets the cached figure after the history was cleared under it.
// The placement mode is kept; the next valid sample fixes a new origin.
func (b *FigureBuilder) Discard() {
	b.hasIndex = false
	b.paused = false
	b.origin = tracking.NoPoint
}

func (b *FigureBuilder) start(kind FigureKind) {
	b.reset()
	b.state = FigurePlacing
	b.kind = kind
}

func (b *FigureBuilder) reset() {
	b.state = FigureIdle
	b.Discard()
}

func (b *FigureBuilder) write(m DrawMove, h *History) {
	if b.hasIndex && b.index == h.Len()-1 {
		h.ReplaceLast(m)
		return
	}
	h.Append(m)
	b.index = h.Len() - 1
	b.hasIndex = true
}

func (b *FigureBuilder) drop(h *History) {
	if b.hasIndex && b.index == h.Len()-1 {
		h.PopLast()
	}
	b.hasIndex = false
}
