package monitor

import (
	"encoding/base64"
	"encoding/json"
	"sync"
	"time"

	"google.golang.org/protobuf/proto"

	"github.com/lotvision/parking-monitor/internal/logger"
	"github.com/lotvision/parking-monitor/internal/occupancy"
	pb "github.com/lotvision/parking-monitor/pkg/proto"
)

// FrameBroadcaster manages fanout of rendered JPEG frames to multiple
// stream clients. The pipeline pushes frames in; slow clients miss
// frames instead of stalling the pipeline.
type FrameBroadcaster struct {
	mu      sync.Mutex
	clients map[int]chan []byte
	nextID  int
	dropped func()
}

// NewFrameBroadcaster creates a frame fanout. onDrop, if non-nil, is
// called once per frame skipped for a slow client.
func NewFrameBroadcaster(onDrop func()) *FrameBroadcaster {
	return &FrameBroadcaster{
		clients: make(map[int]chan []byte),
		dropped: onDrop,
	}
}

// Subscribe adds a new client and returns a channel for receiving frames.
func (fb *FrameBroadcaster) Subscribe() (int, <-chan []byte) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	id := fb.nextID
	fb.nextID++
	ch := make(chan []byte, 2) // Buffer 2 frames to avoid blocking
	fb.clients[id] = ch

	logger.Debug("FrameBroadcaster", "client #%d subscribed (total clients: %d)", id, len(fb.clients))
	return id, ch
}

// Unsubscribe removes a client.
func (fb *FrameBroadcaster) Unsubscribe(id int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if ch, ok := fb.clients[id]; ok {
		close(ch)
		delete(fb.clients, id)
		logger.Debug("FrameBroadcaster", "client #%d unsubscribed (remaining clients: %d)", id, len(fb.clients))
	}
}

// ClientCount returns the number of connected stream clients.
func (fb *FrameBroadcaster) ClientCount() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.clients)
}

// Publish fans one frame out to every client. Clients whose buffer is
// full simply miss this frame.
func (fb *FrameBroadcaster) Publish(data []byte) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	for _, ch := range fb.clients {
		select {
		case ch <- data:
		default:
			if fb.dropped != nil {
				fb.dropped()
			}
		}
	}
}

// SerializedEvent holds one occupancy event pre-serialized in both
// formats, so fanout to many SSE clients serializes once.
type SerializedEvent struct {
	JSONData     []byte // Pre-serialized JSON
	ProtobufData []byte // Pre-serialized Protobuf (base64 encoded for SSE)
}

// EventBroadcaster manages fanout of occupancy events to SSE clients.
type EventBroadcaster struct {
	mu      sync.Mutex
	clients map[int]chan *SerializedEvent
	nextID  int
}

// NewEventBroadcaster creates an occupancy event fanout.
func NewEventBroadcaster() *EventBroadcaster {
	return &EventBroadcaster{
		clients: make(map[int]chan *SerializedEvent),
	}
}

// Subscribe adds a new client and returns a channel for receiving events.
func (eb *EventBroadcaster) Subscribe() (int, <-chan *SerializedEvent) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	id := eb.nextID
	eb.nextID++
	ch := make(chan *SerializedEvent, 2) // Buffer 2 events to avoid blocking
	eb.clients[id] = ch

	logger.Debug("EventBroadcaster", "client #%d subscribed (total clients: %d)", id, len(eb.clients))
	return id, ch
}

// Unsubscribe removes a client.
func (eb *EventBroadcaster) Unsubscribe(id int) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if ch, ok := eb.clients[id]; ok {
		close(ch)
		delete(eb.clients, id)
		logger.Debug("EventBroadcaster", "client #%d unsubscribed (remaining clients: %d)", id, len(eb.clients))
	}
}

// Publish fans one pre-serialized event out to every client. Clients
// whose buffer is full miss this event; the next one carries fresher
// state anyway.
func (eb *EventBroadcaster) Publish(event *SerializedEvent) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for _, ch := range eb.clients {
		select {
		case ch <- event:
		default:
		}
	}
}

// serializeEvent builds the occupancy event in both wire formats.
func serializeEvent(frameNum uint64, ts time.Time, res occupancy.Result, booked map[int]bool) (*SerializedEvent, error) {
	timestamp := float64(ts.UnixNano()) / 1e9

	jsonSpaces := make([]map[string]any, len(res.Spaces))
	pbSpaces := make([]*pb.SpaceStatus, len(res.Spaces))
	for i, occupied := range res.Spaces {
		jsonSpaces[i] = map[string]any{
			"index":    i,
			"occupied": occupied,
			"booked":   booked[i],
		}
		pbSpaces[i] = &pb.SpaceStatus{
			Index:    int32(i),
			Occupied: occupied,
			Booked:   booked[i],
		}
	}

	jsonEvent := map[string]any{
		"frame_number": frameNum,
		"timestamp":    timestamp,
		"spaces":       jsonSpaces,
		"summary": map[string]any{
			"total":    res.Total,
			"occupied": res.Occupied,
			"free":     res.Free,
		},
	}
	jsonData, err := json.Marshal(jsonEvent)
	if err != nil {
		return nil, err
	}

	pbEvent := &pb.OccupancyEvent{
		FrameNumber: frameNum,
		Timestamp:   timestamp,
		Spaces:      pbSpaces,
		Summary: &pb.OccupancySummary{
			Total:    int32(res.Total),
			Occupied: int32(res.Occupied),
			Free:     int32(res.Free),
		},
	}
	pbData, err := proto.Marshal(pbEvent)
	if err != nil {
		return nil, err
	}

	return &SerializedEvent{
		JSONData:     jsonData,
		ProtobufData: []byte(base64.StdEncoding.EncodeToString(pbData)),
	}, nil
}
