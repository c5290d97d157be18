package occupancy

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotvision/parking-monitor/internal/space"
	"github.com/lotvision/parking-monitor/pkg/types"
)

func unitSquare(t *testing.T) space.ParkingSpace {
	t.Helper()
	sp, err := space.FromPoints([]space.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})
	require.NoError(t, err)
	return sp
}

func carAt(cx, cy int) types.Detection {
	// A 4x4 box whose center lands exactly on (cx, cy).
	return types.Detection{
		ClassName:  "car",
		Confidence: 0.9,
		BBox:       types.BoundingBox{X: cx - 2, Y: cy - 2, W: 4, H: 4},
	}
}

func TestContains(t *testing.T) {
	sq := unitSquare(t)

	t.Run("interior", func(t *testing.T) {
		assert.True(t, Contains(sq, image.Point{X: 5, Y: 5}))
	})

	t.Run("exterior", func(t *testing.T) {
		assert.False(t, Contains(sq, image.Point{X: 50, Y: 50}))
		assert.False(t, Contains(sq, image.Point{X: 11, Y: 5}))
	})

	t.Run("boundary counts as inside", func(t *testing.T) {
		assert.True(t, Contains(sq, image.Point{X: 10, Y: 5}))
		assert.True(t, Contains(sq, image.Point{X: 0, Y: 0}))
		assert.True(t, Contains(sq, image.Point{X: 5, Y: 10}))
	})

	t.Run("non-convex polygon", func(t *testing.T) {
		// Arrow shape: the notch at (5,5) pulls the bottom edge inward.
		sp, err := space.FromPoints([]space.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 5, Y: 5}})
		require.NoError(t, err)
		assert.True(t, Contains(sp, image.Point{X: 8, Y: 4}))
		assert.False(t, Contains(sp, image.Point{X: 2, Y: 8}))
	})
}

func TestEvaluate(t *testing.T) {
	spaces := []space.ParkingSpace{unitSquare(t)}

	t.Run("center inside marks occupied", func(t *testing.T) {
		res := Evaluate(spaces, []types.Detection{carAt(5, 5)})
		assert.Equal(t, []bool{true}, res.Spaces)
		assert.Equal(t, 1, res.Occupied)
		assert.Equal(t, 0, res.Free)
	})

	t.Run("center outside leaves free", func(t *testing.T) {
		res := Evaluate(spaces, []types.Detection{carAt(50, 50)})
		assert.Equal(t, []bool{false}, res.Spaces)
		assert.Equal(t, 0, res.Occupied)
		assert.Equal(t, 1, res.Free)
	})

	t.Run("box overlap without center is not enough", func(t *testing.T) {
		// A wide box overlapping the square but centered outside it.
		det := types.Detection{
			ClassName:  "car",
			Confidence: 0.9,
			BBox:       types.BoundingBox{X: 8, Y: 4, W: 20, H: 4},
		}
		res := Evaluate(spaces, []types.Detection{det})
		assert.Equal(t, 0, res.Occupied)
	})

	t.Run("no detections yields all free", func(t *testing.T) {
		res := Evaluate(spaces, nil)
		assert.Equal(t, 1, res.Total)
		assert.Equal(t, 0, res.Occupied)
		assert.Equal(t, 1, res.Free)
	})

	t.Run("no spaces yields empty result", func(t *testing.T) {
		res := Evaluate(nil, []types.Detection{carAt(5, 5)})
		assert.Equal(t, 0, res.Total)
		assert.Empty(t, res.Spaces)
	})

	t.Run("counts always balance", func(t *testing.T) {
		many := []space.ParkingSpace{unitSquare(t)}
		sp2, err := space.FromPoints([]space.Point{{X: 100, Y: 0}, {X: 110, Y: 0}, {X: 110, Y: 10}, {X: 100, Y: 10}})
		require.NoError(t, err)
		many = append(many, sp2)

		res := Evaluate(many, []types.Detection{carAt(5, 5), carAt(200, 200)})
		assert.Equal(t, res.Total, res.Occupied+res.Free)
		assert.Equal(t, []bool{true, false}, res.Spaces)
	})
}

func TestIsOccupied(t *testing.T) {
	res := Result{Spaces: []bool{true, false}, Total: 2, Occupied: 1, Free: 1}
	assert.True(t, res.IsOccupied(0))
	assert.False(t, res.IsOccupied(1))
	assert.False(t, res.IsOccupied(-1))
	assert.False(t, res.IsOccupied(2))
}
