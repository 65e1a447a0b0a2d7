package canvas

import (
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arpaint/tracking"
)

func TestNextMoveGrid(t *testing.T) {
	deltas := []int{-120, -51, -50, -49, -1, 0, 1, 49, 50, 51, 120}
	origins := []tracking.Point{tracking.NoPoint, tracking.At(0, 0), tracking.At(300, 200)}
	pencil := Pencil{Color: Green, Thickness: 9}

	for _, old := range origins {
		for _, dx := range deltas {
			for _, dy := range deltas {
				for _, preventShake := range []bool{false, true} {
					cur := tracking.At(300+dx, 200+dy)
					name := fmt.Sprintf("%v->%v/shake=%v", old, cur, preventShake)

					move, ok := NextMove(old, cur, pencil, preventShake)
					require.True(t, ok, name)
					assert.Equal(t, pencil.Color, move.Color, name)
					assert.Equal(t, pencil.Thickness, move.Thickness, name)

					jump := old.Valid() && (abs(cur.X-old.X) > 50 || abs(cur.Y-old.Y) > 50)
					switch {
					case !old.Valid(), preventShake && jump:
						assert.Equal(t, KindDot, move.Kind, name)
						assert.Equal(t, cur.Pt(), move.Start, name)
					default:
						assert.Equal(t, KindLine, move.Kind, name)
						assert.Equal(t, old.Pt(), move.Start, name)
						assert.Equal(t, cur.Pt(), move.End, name)
					}
				}
			}
		}
	}
}

func TestNextMoveAbsentCurrent(t *testing.T) {
	for _, old := range []tracking.Point{tracking.NoPoint, tracking.At(10, 10)} {
		for _, preventShake := range []bool{false, true} {
			_, ok := NextMove(old, tracking.NoPoint, NewPencil(), preventShake)
			assert.False(t, ok)
		}
	}
}

func TestNextMoveThresholdIsStrict(t *testing.T) {
	old := tracking.At(100, 100)

	move, _ := NextMove(old, tracking.At(150, 100), NewPencil(), true)
	assert.Equal(t, KindLine, move.Kind, "a jump of exactly 50 continues the stroke")

	move, _ = NextMove(old, tracking.At(100, 151), NewPencil(), true)
	assert.Equal(t, KindDot, move.Kind, "a jump of 51 starts a new stroke")
	assert.Equal(t, image.Pt(100, 151), move.Start)
}
