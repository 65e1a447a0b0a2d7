package canvas

import "arpaint/tracking"

// Effect is what the program loop must do after a command was applied.
type Effect int

const (
	EffectNone Effect = iota
	EffectRedraw
	EffectSave
	EffectEvaluate
	EffectQuit
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "NONE"
	case EffectRedraw:
		return "REDRAW"
	case EffectSave:
		return "SAVE"
	case EffectEvaluate:
		return "EVALUATE"
	case EffectQuit:
		return "QUIT"
	default:
		return "UNKNOWN"
	}
}

// Session owns the per-process drawing state: pencil, history, figure
// builder and the previous freehand point. It is driven by one goroutine.
type Session struct {
	Pencil       Pencil
	History      *History
	Figures      *FigureBuilder
	PreventShake bool

	last     tracking.Point
	revision uint64
}

// NewSession returns a session with the default pencil and an empty history.
func NewSession(preventShake bool) *Session {
	return &Session{
		Pencil:       NewPencil(),
		History:      NewHistory(),
		Figures:      NewFigureBuilder(),
		PreventShake: preventShake,
		last:         tracking.NoPoint,
	}
}

// Revision increases every time the history changes.
func (s *Session) Revision() uint64 {
	return s.revision
}

// LastPoint returns the previous freehand point.
func (s *Session) LastPoint() tracking.Point {
	return s.last
}

// Step feeds one pointer sample. While a figure is being placed the sample
// drives the figure builder; otherwise it goes through the shake filter and
// a freehand move is appended. It reports whether the history changed.
func (s *Session) Step(sample tracking.Sample) bool {
	if s.Figures.Placing() {
		return s.touch(s.Figures.Sample(sample.Point, s.Pencil, s.History))
	}

	cur := sample.PenDown()
	move, ok := NextMove(s.last, cur, s.Pencil, s.PreventShake)
	s.last = cur
	if !ok {
		return false
	}
	s.History.Append(move)
	return s.touch(true)
}

// Apply executes a keyboard command and tells the caller what else to do.
func (s *Session) Apply(cmd Command) Effect {
	switch cmd {
	case CmdQuit:
		return EffectQuit
	case CmdRed:
		s.Pencil.Color = Red
	case CmdGreen:
		s.Pencil.Color = Green
	case CmdBlue:
		s.Pencil.Color = Blue
	case CmdThicker:
		s.Pencil.Thicker()
	case CmdThinner:
		s.Pencil.Thinner()
	case CmdClear:
		s.History.Clear()
		s.Figures.Discard()
		s.last = tracking.NoPoint
		s.touch(true)
		return EffectRedraw
	case CmdSave:
		return EffectSave
	case CmdEvaluate:
		return EffectEvaluate
	case CmdSquare, CmdEllipse, CmdCircle:
		before := s.History.Len()
		s.Figures.Press(figureFor(cmd), s.History)
		s.last = tracking.NoPoint
		s.touch(s.History.Len() != before)
		return EffectRedraw
	default:
		return EffectNone
	}
	return EffectRedraw
}

func (s *Session) touch(changed bool) bool {
	if changed {
		s.revision++
	}
	return changed
}

func figureFor(cmd Command) FigureKind {
	switch cmd {
	case CmdEllipse:
		return FigureEllipse
	case CmdCircle:
		return FigureCircle
	default:
		return FigureSquare
	}
}
