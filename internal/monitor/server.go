// Package monitor serves the operator-facing HTTP surface: the live
// MJPEG overlay stream, occupancy SSE feeds, and the control API for
// space authoring, configuration switching and spot booking.
package monitor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lotvision/parking-monitor/internal/config"
	"github.com/lotvision/parking-monitor/internal/editor"
	"github.com/lotvision/parking-monitor/internal/logger"
	"github.com/lotvision/parking-monitor/internal/metrics"
	"github.com/lotvision/parking-monitor/internal/occupancy"
	"github.com/lotvision/parking-monitor/internal/space"
)

// Server serves the web monitor endpoints. The pipeline pushes rendered
// frames and evaluation results in; HTTP handlers mutate the store,
// editor and booking board.
type Server struct {
	cfg      config.MonitorConfig
	store    *space.Store
	editor   *editor.Editor
	bookings *BookingBoard
	frames   *FrameBroadcaster
	events   *EventBroadcaster
	metrics  *metrics.Metrics
	quit     func()

	spacesDir string

	mu            sync.Mutex
	latestResult  occupancy.Result
	latestFrame   uint64
	latestEvalAt  time.Time
	haveEvaluated bool
}

// NewServer returns a configured monitor server. quit is invoked when a
// client requests shutdown through the API.
func NewServer(cfg *config.Config, store *space.Store, ed *editor.Editor, m *metrics.Metrics, quit func()) *Server {
	s := &Server{
		cfg:       cfg.Monitor,
		store:     store,
		editor:    ed,
		bookings:  NewBookingBoard(),
		events:    NewEventBroadcaster(),
		metrics:   m,
		quit:      quit,
		spacesDir: cfg.Spaces.Dir,
	}
	s.frames = NewFrameBroadcaster(func() { m.StreamFramesDropped.Add(1) })
	return s
}

// Bookings exposes the booking board so the pipeline can snapshot it
// for rendering.
func (s *Server) Bookings() *BookingBoard {
	return s.bookings
}

// PublishFrame fans a rendered JPEG out to connected stream clients.
func (s *Server) PublishFrame(jpegData []byte) {
	s.frames.Publish(jpegData)
}

// PublishResult records the latest evaluation and fans it out to SSE
// clients in both serialization formats.
func (s *Server) PublishResult(frameNum uint64, ts time.Time, res occupancy.Result) {
	s.mu.Lock()
	s.latestResult = res
	s.latestFrame = frameNum
	s.latestEvalAt = ts
	s.haveEvaluated = true
	s.mu.Unlock()

	event, err := serializeEvent(frameNum, ts, res, s.bookings.Snapshot())
	if err != nil {
		logger.Error("Monitor", "serialize occupancy event: %v", err)
		return
	}
	s.events.Publish(event)
}

// Handler exposes the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/stream", s.handleStream)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/status/stream", s.handleStatusStream)
	mux.HandleFunc("/api/occupancy/stream", s.handleOccupancyStream)
	mux.HandleFunc("/api/spaces", s.handleSpaces)
	mux.HandleFunc("/api/spaces/begin", s.handleSpacesBegin)
	mux.HandleFunc("/api/spaces/click", s.handleSpacesClick)
	mux.HandleFunc("/api/spaces/cancel", s.handleSpacesCancel)
	mux.HandleFunc("/api/spaces/remove-last", s.handleSpacesRemoveLast)
	mux.HandleFunc("/api/configs", s.handleConfigs)
	mux.HandleFunc("/api/configs/select", s.handleConfigSelect)
	mux.HandleFunc("/api/spots/book", s.handleSpotBook)
	mux.HandleFunc("/api/spots/clear", s.handleSpotClear)
	mux.HandleFunc("/api/quit", s.handleQuit)

	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id, frameCh := s.frames.Subscribe()
	s.metrics.StreamClients.Add(1)
	defer func() {
		s.frames.Unsubscribe(id)
		s.metrics.StreamClients.Add(^uint64(0))
	}()
	streamMJPEGFromChannel(w, frameCh, s.cfg.MJPEGInterval)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.statusPayload())
}

func (s *Server) handleStatusStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	interval := s.cfg.StatusInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := writeSSE(w, s.statusPayload()); err != nil {
			return
		}
		flusher.Flush()
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) handleOccupancyStream(w http.ResponseWriter, r *http.Request) {
	id, eventCh := s.events.Subscribe()
	defer s.events.Unsubscribe(id)

	// Content negotiation based on Accept header
	accept := r.Header.Get("Accept")
	useProtobuf := strings.Contains(accept, "application/protobuf") ||
		strings.Contains(accept, "application/x-protobuf")

	streamEventsFromChannel(w, eventCh, useProtobuf)
}

func (s *Server) handleSpaces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"spaces": s.store.Snapshot(),
		"count":  s.store.Count(),
	})
}

func (s *Server) handleSpacesBegin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.editor.Begin()
	writeJSON(w, map[string]any{"session": s.editor.Session()})
}

func (s *Server) handleSpacesClick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONWithStatus(w, map[string]any{"error": "invalid click payload"}, http.StatusBadRequest)
		return
	}
	if body.X < 0 || body.Y < 0 {
		writeJSONWithStatus(w, map[string]any{"error": "coordinates must be non-negative"}, http.StatusBadRequest)
		return
	}

	committed, err := s.editor.Click(space.Point{X: body.X, Y: body.Y})
	if err != nil {
		writeJSONWithStatus(w, map[string]any{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"committed": committed,
		"session":   s.editor.Session(),
		"count":     s.store.Count(),
	})
}

func (s *Server) handleSpacesCancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.editor.Cancel()
	writeJSON(w, map[string]any{"session": s.editor.Session()})
}

func (s *Server) handleSpacesRemoveLast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, removed, err := s.store.RemoveLast()
	if err != nil {
		writeJSONWithStatus(w, map[string]any{"error": err.Error()}, http.StatusInternalServerError)
		return
	}
	if !removed {
		writeJSONWithStatus(w, map[string]any{"error": "no spaces to remove"}, http.StatusBadRequest)
		return
	}

	// The removed index no longer exists; drop its booking if any.
	s.bookings.Clear(s.store.Count())

	writeJSON(w, map[string]any{
		"removed": true,
		"count":   s.store.Count(),
	})
}

func (s *Server) handleConfigs(w http.ResponseWriter, r *http.Request) {
	names, err := space.ListConfigs(s.spacesDir)
	if err != nil {
		writeJSONWithStatus(w, map[string]any{"error": err.Error()}, http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{
		"configs": names,
		"active":  filepath.Base(s.store.Path()),
	})
}

func (s *Server) handleConfigSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONWithStatus(w, map[string]any{"error": "invalid selection payload"}, http.StatusBadRequest)
		return
	}
	if !space.IsConfigName(body.Name) {
		writeJSONWithStatus(w, map[string]any{"error": fmt.Sprintf("invalid configuration name %q", body.Name)}, http.StatusBadRequest)
		return
	}

	if err := s.store.Reload(filepath.Join(s.spacesDir, body.Name)); err != nil {
		status := http.StatusInternalServerError
		var cfgErr *space.ConfigError
		if errors.As(err, &cfgErr) {
			status = http.StatusBadRequest
		}
		writeJSONWithStatus(w, map[string]any{"error": err.Error()}, status)
		return
	}

	// Space indices now refer to different slots; stale session state
	// would silently corrupt them.
	s.editor.Cancel()
	s.bookings.Reset()

	writeJSON(w, map[string]any{
		"active": body.Name,
		"count":  s.store.Count(),
	})
}

func (s *Server) handleSpotBook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	index, ok := s.decodeSpotIndex(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	occupied := s.haveEvaluated && s.latestResult.IsOccupied(index)
	s.mu.Unlock()
	if occupied {
		writeJSONWithStatus(w, map[string]any{"error": fmt.Sprintf("space %d is occupied", index+1)}, http.StatusConflict)
		return
	}

	s.bookings.Book(index)
	writeJSON(w, map[string]any{"index": index, "booked": true})
}

func (s *Server) handleSpotClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	index, ok := s.decodeSpotIndex(w, r)
	if !ok {
		return
	}

	s.bookings.Clear(index)
	writeJSON(w, map[string]any{"index": index, "booked": false})
}

func (s *Server) handleQuit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	logger.Info("Monitor", "shutdown requested over HTTP")
	writeJSON(w, map[string]any{"status": "stopping"})
	if s.quit != nil {
		go s.quit()
	}
}

// decodeSpotIndex parses and range-checks the booking target index.
func (s *Server) decodeSpotIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	var body struct {
		Index *int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Index == nil {
		writeJSONWithStatus(w, map[string]any{"error": "invalid spot payload"}, http.StatusBadRequest)
		return 0, false
	}
	index := *body.Index
	if index < 0 || index >= s.store.Count() {
		writeJSONWithStatus(w, map[string]any{"error": fmt.Sprintf("space index %d out of range", index)}, http.StatusBadRequest)
		return 0, false
	}
	return index, true
}

func (s *Server) statusPayload() map[string]any {
	s.mu.Lock()
	res := s.latestResult
	frameNum := s.latestFrame
	evalAt := s.latestEvalAt
	evaluated := s.haveEvaluated
	s.mu.Unlock()

	booked := s.bookings.Snapshot()
	bookedList := make([]int, 0, len(booked))
	for idx := range booked {
		bookedList = append(bookedList, idx)
	}
	sort.Ints(bookedList)

	payload := map[string]any{
		"spaces": map[string]any{
			"count":  s.store.Count(),
			"active": filepath.Base(s.store.Path()),
		},
		"pipeline": map[string]any{
			"frames_read":           s.metrics.FramesRead.Load(),
			"frames_processed":      s.metrics.FramesProcessed.Load(),
			"frames_skipped":        s.metrics.FramesSkipped.Load(),
			"frames_dropped":        s.metrics.FramesDropped.Load(),
			"stream_frames_dropped": s.metrics.StreamFramesDropped.Load(),
			"read_errors":           s.metrics.ReadErrors.Load(),
			"detector_errors":       s.metrics.DetectorErrors.Load(),
			"render_errors":         s.metrics.RenderErrors.Load(),
			"detect_latency_ms":     s.metrics.DetectLatencyMs.Load(),
			"render_latency_ms":     s.metrics.RenderLatencyMs.Load(),
		},
		"occupancy":      res,
		"frame_number":   frameNum,
		"evaluated":      evaluated,
		"booked":         bookedList,
		"editor":         s.editor.Session(),
		"stream_clients": s.frames.ClientCount(),
		"timestamp":      float64(time.Now().Unix()),
	}
	if evaluated {
		payload["evaluated_at"] = float64(evalAt.UnixNano()) / 1e9
	}
	return payload
}

func writeJSON(w http.ResponseWriter, payload any) {
	writeJSONWithStatus(w, payload, http.StatusOK)
}

func writeJSONWithStatus(w http.ResponseWriter, payload any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		_, _ = fmt.Fprintf(w, `{"error":"%s"}`, err.Error())
	}
}
