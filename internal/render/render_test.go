package render

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotvision/parking-monitor/internal/editor"
	"github.com/lotvision/parking-monitor/internal/occupancy"
	"github.com/lotvision/parking-monitor/internal/space"
	"github.com/lotvision/parking-monitor/pkg/types"
)

func TestStatusColor(t *testing.T) {
	assert.Equal(t, colorOccupied, StatusColor(true))
	assert.Equal(t, colorFree, StatusColor(false))
}

func TestSpotColor(t *testing.T) {
	assert.Equal(t, colorFree, SpotColor(false, false))
	assert.Equal(t, colorBooked, SpotColor(false, true))
	// Occupancy always wins over booking.
	assert.Equal(t, colorOccupied, SpotColor(true, true))
	assert.Equal(t, colorOccupied, SpotColor(true, false))
}

func testFrame(w, h int) *types.Frame {
	return &types.Frame{
		Image:     image.NewRGBA(image.Rect(0, 0, w, h)),
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		FrameNum:  1,
	}
}

// The test space sits at (50,50)-(80,80), below the summary banner the
// renderer paints across the top rows. Sample pixels are chosen away
// from outlines, labels and detection box edges.
func testSpaces(t *testing.T) []space.ParkingSpace {
	t.Helper()
	sp, err := space.FromPoints([]space.Point{{X: 50, Y: 50}, {X: 80, Y: 50}, {X: 80, Y: 80}, {X: 50, Y: 80}})
	require.NoError(t, err)
	return []space.ParkingSpace{sp}
}

func TestRenderDoesNotModifyInput(t *testing.T) {
	frame := testFrame(200, 200)
	spaces := testSpaces(t)
	res := occupancy.Evaluate(spaces, nil)

	out := New().Render(frame, spaces, res, nil, editor.Session{}, nil)

	require.NotSame(t, frame.Image, out)
	// Input frame pixels stay black.
	assert.Equal(t, uint8(0), frame.Image.RGBAAt(65, 65).G)
	// Output has the green fill blended inside the free space.
	assert.Greater(t, out.RGBAAt(65, 65).G, uint8(0))
}

func TestRenderFillMatchesOccupancyColor(t *testing.T) {
	spaces := testSpaces(t)
	r := New()

	t.Run("free space blends green", func(t *testing.T) {
		res := occupancy.Evaluate(spaces, nil)
		out := r.Render(testFrame(200, 200), spaces, res, nil, editor.Session{}, nil)
		px := out.RGBAAt(65, 65)
		assert.Greater(t, px.G, px.R)
	})

	t.Run("occupied space blends red", func(t *testing.T) {
		det := types.Detection{
			ClassName:  "car",
			Confidence: 0.9,
			BBox:       types.BoundingBox{X: 60, Y: 60, W: 10, H: 10},
		}
		res := occupancy.Evaluate(spaces, []types.Detection{det})
		require.Equal(t, 1, res.Occupied)

		out := r.Render(testFrame(200, 200), spaces, res, nil, editor.Session{}, nil)
		px := out.RGBAAt(55, 75)
		assert.Greater(t, px.R, px.G)
	})

	t.Run("booked free space blends yellow", func(t *testing.T) {
		res := occupancy.Evaluate(spaces, nil)
		out := r.Render(testFrame(200, 200), spaces, res, map[int]bool{0: true}, editor.Session{}, nil)
		px := out.RGBAAt(65, 65)
		assert.Greater(t, px.R, uint8(0))
		assert.Greater(t, px.G, uint8(0))
		assert.Equal(t, uint8(0), px.B)
	})

	t.Run("outside the space stays untouched", func(t *testing.T) {
		res := occupancy.Evaluate(spaces, nil)
		out := r.Render(testFrame(200, 200), spaces, res, nil, editor.Session{}, nil)
		px := out.RGBAAt(150, 150)
		assert.Equal(t, uint8(0), px.R)
		assert.Equal(t, uint8(0), px.G)
		assert.Equal(t, uint8(0), px.B)
	})
}

func TestRenderPendingPoints(t *testing.T) {
	session := editor.Session{
		Active:  true,
		Pending: []space.Point{{X: 50, Y: 100}, {X: 90, Y: 100}},
	}
	out := New().Render(testFrame(200, 200), nil, occupancy.Result{}, nil, session, nil)

	// Marker squares at the clicked points are drawn in cyan.
	assert.Equal(t, colorPending, out.RGBAAt(50, 100))
	assert.Equal(t, colorPending, out.RGBAAt(90, 100))
	// The connecting line between them too.
	assert.Equal(t, colorPending, out.RGBAAt(70, 100))
}

func TestRenderDetectionBox(t *testing.T) {
	det := types.Detection{
		ClassName:  "car",
		Confidence: 0.85,
		BBox:       types.BoundingBox{X: 30, Y: 60, W: 40, H: 30},
	}
	out := New().Render(testFrame(200, 200), nil, occupancy.Result{}, nil, editor.Session{}, []types.Detection{det})

	// Box edges are drawn in green.
	assert.Equal(t, colorFree, out.RGBAAt(30, 75))
	assert.Equal(t, colorFree, out.RGBAAt(50, 60))
}
