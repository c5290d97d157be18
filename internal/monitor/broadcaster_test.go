package monitor

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/lotvision/parking-monitor/internal/occupancy"
	pb "github.com/lotvision/parking-monitor/pkg/proto"
)

func TestFrameBroadcaster(t *testing.T) {
	t.Run("fans out to subscribers", func(t *testing.T) {
		fb := NewFrameBroadcaster(nil)
		id1, ch1 := fb.Subscribe()
		id2, ch2 := fb.Subscribe()
		defer fb.Unsubscribe(id1)
		defer fb.Unsubscribe(id2)

		fb.Publish([]byte("frame-1"))
		assert.Equal(t, []byte("frame-1"), <-ch1)
		assert.Equal(t, []byte("frame-1"), <-ch2)
	})

	t.Run("slow client misses frames instead of blocking", func(t *testing.T) {
		var drops int
		fb := NewFrameBroadcaster(func() { drops++ })
		id, ch := fb.Subscribe()
		defer fb.Unsubscribe(id)

		// Buffer is 2; the third publish must not block.
		done := make(chan struct{})
		go func() {
			fb.Publish([]byte("a"))
			fb.Publish([]byte("b"))
			fb.Publish([]byte("c"))
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Publish blocked on a slow client")
		}
		assert.Equal(t, 1, drops)
		assert.Equal(t, []byte("a"), <-ch)
		assert.Equal(t, []byte("b"), <-ch)
	})

	t.Run("unsubscribe closes the channel", func(t *testing.T) {
		fb := NewFrameBroadcaster(nil)
		id, ch := fb.Subscribe()
		fb.Unsubscribe(id)

		_, open := <-ch
		assert.False(t, open)
		assert.Equal(t, 0, fb.ClientCount())
	})
}

func TestSerializeEvent(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	res := occupancy.Result{Spaces: []bool{true, false}, Total: 2, Occupied: 1, Free: 1}

	event, err := serializeEvent(42, ts, res, map[int]bool{1: true})
	require.NoError(t, err)

	t.Run("JSON payload", func(t *testing.T) {
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(event.JSONData, &decoded))

		assert.Equal(t, float64(42), decoded["frame_number"])
		summary := decoded["summary"].(map[string]any)
		assert.Equal(t, float64(2), summary["total"])
		assert.Equal(t, float64(1), summary["occupied"])

		spaces := decoded["spaces"].([]any)
		require.Len(t, spaces, 2)
		first := spaces[0].(map[string]any)
		assert.Equal(t, true, first["occupied"])
		assert.Equal(t, false, first["booked"])
		second := spaces[1].(map[string]any)
		assert.Equal(t, false, second["occupied"])
		assert.Equal(t, true, second["booked"])
	})

	t.Run("protobuf payload", func(t *testing.T) {
		raw, err := base64.StdEncoding.DecodeString(string(event.ProtobufData))
		require.NoError(t, err)

		var pbEvent pb.OccupancyEvent
		require.NoError(t, proto.Unmarshal(raw, &pbEvent))

		assert.Equal(t, uint64(42), pbEvent.GetFrameNumber())
		assert.Equal(t, int32(2), pbEvent.GetSummary().GetTotal())
		require.Len(t, pbEvent.GetSpaces(), 2)
		assert.True(t, pbEvent.GetSpaces()[0].GetOccupied())
		assert.True(t, pbEvent.GetSpaces()[1].GetBooked())
	})
}

func TestEventBroadcaster(t *testing.T) {
	eb := NewEventBroadcaster()
	id, ch := eb.Subscribe()
	defer eb.Unsubscribe(id)

	event := &SerializedEvent{JSONData: []byte(`{}`)}
	eb.Publish(event)
	assert.Same(t, event, <-ch)
}
