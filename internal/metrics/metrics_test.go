package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsExposition(t *testing.T) {
	m := New()
	m.FramesRead.Add(12)
	m.FramesDropped.Add(4)
	m.StreamFramesDropped.Add(2)
	m.UpdateOccupancy(8, 5, 3)
	m.UpdateDetectLatency(150 * time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "parking_frames_read_total 12")
	assert.Contains(t, body, "parking_frames_dropped_total 4")
	assert.Contains(t, body, "parking_stream_frames_dropped_total 2")
	assert.Contains(t, body, "parking_spaces_total 8")
	assert.Contains(t, body, "parking_spaces_occupied 5")
	assert.Contains(t, body, "parking_spaces_free 3")
	assert.Contains(t, body, "parking_evaluations_total 1")
	assert.Contains(t, body, "parking_detect_latency_ms 150")
}

func TestOccupancyUpdateOverwrites(t *testing.T) {
	m := New()
	m.UpdateOccupancy(4, 4, 0)
	m.UpdateOccupancy(4, 1, 3)

	assert.Equal(t, uint64(1), m.SpacesOccupied.Load())
	assert.Equal(t, uint64(3), m.SpacesFree.Load())
	assert.Equal(t, uint64(2), m.Evaluations.Load())
}
