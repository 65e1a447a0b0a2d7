package canvas

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arpaint/tracking"
)

func TestFigureCommit(t *testing.T) {
	h := NewHistory()
	h.Append(NewDot(image.Pt(1, 1), 1, Red))
	b := NewFigureBuilder()
	pencil := NewPencil()

	b.Press(FigureSquare, h)
	require.Equal(t, FigurePlacing, b.State())
	assert.Equal(t, 1, h.Len(), "entering placement writes nothing")

	assert.True(t, b.Sample(tracking.At(10, 10), pencil, h))
	assert.True(t, b.Sample(tracking.At(30, 20), pencil, h))
	assert.True(t, b.Sample(tracking.At(40, 50), pencil, h))
	require.Equal(t, 2, h.Len(), "live preview replaces the tail")

	b.Press(FigureSquare, h)
	assert.Equal(t, FigureIdle, b.State())
	require.Equal(t, 2, h.Len())
	assert.Equal(t, NewSquare(image.Pt(10, 10), image.Pt(40, 50), pencil.Thickness, pencil.Color), h.At(1))
}

func TestFigureCancelWhenGrey(t *testing.T) {
	h := NewHistory()
	b := NewFigureBuilder()

	b.Press(FigureCircle, h)
	b.Sample(tracking.At(100, 100), NewPencil(), h)
	b.Sample(tracking.At(110, 100), NewPencil(), h)
	require.Equal(t, 1, h.Len())

	assert.True(t, b.Sample(tracking.NoPoint, NewPencil(), h))
	require.Equal(t, 1, h.Len(), "losing the pointer keeps the figure")
	assert.Equal(t, Disabled, h.At(0).Color)
	assert.Equal(t, 10, h.At(0).Radius)
	assert.True(t, b.Paused())
	assert.False(t, b.Sample(tracking.NoPoint, NewPencil(), h), "already grey")

	b.Press(FigureCircle, h)
	assert.Equal(t, FigureIdle, b.State())
	assert.Equal(t, 0, h.Len(), "a grey figure is cancelled")
}

func TestFigureResumesAfterPause(t *testing.T) {
	h := NewHistory()
	b := NewFigureBuilder()
	pencil := Pencil{Color: Blue, Thickness: 2}

	b.Press(FigureEllipse, h)
	b.Sample(tracking.At(0, 0), pencil, h)
	b.Sample(tracking.At(10, 10), pencil, h)
	b.Sample(tracking.NoPoint, pencil, h)
	b.Sample(tracking.At(20, 10), pencil, h)

	require.Equal(t, 1, h.Len())
	assert.Equal(t, Blue, h.At(0).Color, "the figure regains the pencil colour")
	assert.Equal(t, image.Pt(10, 5), h.At(0).Start, "the origin survives the pause")

	b.Press(FigureEllipse, h)
	assert.Equal(t, 1, h.Len())
}

func TestFigureSwitchKeepsAtMostOne(t *testing.T) {
	h := NewHistory()
	h.Append(NewLine(image.Pt(0, 0), image.Pt(5, 5), 1, Red))
	b := NewFigureBuilder()
	pencil := NewPencil()

	kinds := []FigureKind{FigureSquare, FigureEllipse, FigureCircle, FigureSquare}
	for _, kind := range kinds {
		b.Press(kind, h)
		assert.Equal(t, kind, b.Kind())
		assert.Equal(t, 1, h.Len(), "switching drops the figure in progress")

		b.Sample(tracking.At(40, 40), pencil, h)
		b.Sample(tracking.At(60, 70), pencil, h)
		assert.Equal(t, 2, h.Len())
	}

	b.Press(FigureSquare, h)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, KindSquare, h.At(1).Kind)
	assert.Equal(t, KindLine, h.At(0).Kind, "freehand moves are never touched")
}

func TestFigureClearWhilePlacing(t *testing.T) {
	h := NewHistory()
	b := NewFigureBuilder()
	pencil := NewPencil()

	b.Press(FigureSquare, h)
	b.Sample(tracking.At(5, 5), pencil, h)
	h.Clear()
	b.Discard()

	assert.Equal(t, FigurePlacing, b.State())
	b.Sample(tracking.At(50, 50), pencil, h)
	b.Sample(tracking.At(60, 70), pencil, h)
	require.Equal(t, 1, h.Len())
	assert.Equal(t, image.Pt(50, 50), h.At(0).Start, "a fresh origin after the clear")

	b.Press(FigureCircle, h)
	assert.Equal(t, 0, h.Len())
}

func TestFigurePressIdleDoesNothingOnSample(t *testing.T) {
	h := NewHistory()
	b := NewFigureBuilder()
	assert.False(t, b.Sample(tracking.At(1, 1), NewPencil(), h))
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, "freehand", b.Mode())

	b.Press(FigureCircle, h)
	assert.Equal(t, "placing:CIRCLE", b.Mode())
}
