package canvas

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arpaint/tracking"
)

func vision(x, y int) tracking.Sample {
	return tracking.Sample{Point: tracking.At(x, y)}
}

func TestParseKey(t *testing.T) {
	tests := map[int]Command{
		-1:  CmdNone,
		'q': CmdQuit,
		'r': CmdRed,
		'g': CmdGreen,
		'b': CmdBlue,
		'+': CmdThicker,
		'-': CmdThinner,
		'c': CmdClear,
		'w': CmdSave,
		's': CmdSquare,
		'e': CmdEllipse,
		'o': CmdCircle,
		'v': CmdEvaluate,
		'x': CmdNone,
		// high bits set by some window backends
		0x100000 | 'q': CmdQuit,
	}
	for key, want := range tests {
		assert.Equal(t, want, ParseKey(key), "key %#x", key)
	}
}

func TestSessionFreehand(t *testing.T) {
	s := NewSession(true)

	assert.True(t, s.Step(vision(10, 10)))
	assert.True(t, s.Step(vision(20, 15)))
	assert.False(t, s.Step(tracking.Sample{}))
	assert.True(t, s.Step(vision(25, 15)))
	assert.True(t, s.Step(vision(200, 15)))

	require.Equal(t, 4, s.History.Len())
	assert.Equal(t, KindDot, s.History.At(0).Kind)
	assert.Equal(t, KindLine, s.History.At(1).Kind)
	assert.Equal(t, KindDot, s.History.At(2).Kind, "absence breaks the stroke")
	assert.Equal(t, KindDot, s.History.At(3).Kind, "a jump is filtered as shake")
	assert.Equal(t, uint64(4), s.Revision())
}

func TestSessionMouseNeedsButton(t *testing.T) {
	s := NewSession(false)

	s.Step(tracking.Sample{Point: tracking.At(5, 5), HasButton: true})
	assert.Equal(t, 0, s.History.Len())

	s.Step(tracking.Sample{Point: tracking.At(5, 5), HasButton: true, Pressed: true})
	s.Step(tracking.Sample{Point: tracking.At(8, 5), HasButton: true, Pressed: true})
	assert.Equal(t, 2, s.History.Len())

	// figures follow the pointer whether or not the button is held
	s.Apply(CmdCircle)
	s.Step(tracking.Sample{Point: tracking.At(50, 50), HasButton: true})
	s.Step(tracking.Sample{Point: tracking.At(50, 60), HasButton: true})
	require.Equal(t, 3, s.History.Len())
	assert.Equal(t, 10, s.History.At(2).Radius)
}

func TestSessionCommands(t *testing.T) {
	s := NewSession(false)

	assert.Equal(t, EffectRedraw, s.Apply(CmdBlue))
	assert.Equal(t, Blue, s.Pencil.Color)
	s.Apply(CmdThicker)
	assert.Equal(t, 9, s.Pencil.Thickness)
	s.Apply(CmdThinner)
	assert.Equal(t, 5, s.Pencil.Thickness)

	assert.Equal(t, EffectSave, s.Apply(CmdSave))
	assert.Equal(t, EffectEvaluate, s.Apply(CmdEvaluate))
	assert.Equal(t, EffectQuit, s.Apply(CmdQuit))
	assert.Equal(t, EffectNone, s.Apply(CmdNone))

	s.Step(vision(1, 1))
	s.Step(vision(2, 2))
	rev := s.Revision()
	assert.Equal(t, EffectRedraw, s.Apply(CmdClear))
	assert.Equal(t, 0, s.History.Len())
	assert.Greater(t, s.Revision(), rev)
	assert.False(t, s.LastPoint().Valid())

	s.Step(vision(3, 3))
	assert.Equal(t, KindDot, s.History.At(0).Kind, "a clear starts a new stroke")
}

func TestSessionClearWhilePlacing(t *testing.T) {
	s := NewSession(false)
	s.Apply(CmdSquare)
	s.Step(vision(10, 10))
	s.Step(vision(20, 20))
	require.Equal(t, 1, s.History.Len())

	s.Apply(CmdClear)
	assert.True(t, s.Figures.Placing())
	s.Step(vision(30, 30))
	s.Step(vision(40, 45))
	require.Equal(t, 1, s.History.Len())
	assert.Equal(t, image.Pt(30, 30), s.History.At(0).Start)

	s.Apply(CmdSquare)
	assert.False(t, s.Figures.Placing())
	s.Step(vision(41, 45))
	assert.Equal(t, 2, s.History.Len())
	assert.Equal(t, KindDot, s.History.At(1).Kind, "freehand resumes with a new stroke")
}
