package metrics

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all pipeline metrics. Counters are plain atomics updated
// from the hot loop; Prometheus reads them through GaugeFunc collectors.
type Metrics struct {
	// Frame pipeline counters
	FramesRead      atomic.Uint64
	FramesProcessed atomic.Uint64
	FramesSkipped   atomic.Uint64
	FramesDropped   atomic.Uint64

	// Error counters
	ReadErrors     atomic.Uint64
	DetectorErrors atomic.Uint64
	RenderErrors   atomic.Uint64

	// Latency tracking
	DetectLatencyMs atomic.Uint64
	RenderLatencyMs atomic.Uint64

	// Occupancy state (last evaluation)
	SpacesTotal    atomic.Uint64
	SpacesOccupied atomic.Uint64
	SpacesFree     atomic.Uint64
	Evaluations    atomic.Uint64

	// Monitor clients
	StreamClients       atomic.Uint64
	StreamFramesDropped atomic.Uint64

	registry *prometheus.Registry
}

// New creates a Metrics instance with registered Prometheus collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}
	m.registerPrometheusMetrics()
	return m
}

func (m *Metrics) registerPrometheusMetrics() {
	gauge := func(name, help string, value func() uint64) {
		m.registry.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Name: name, Help: help},
			func() float64 { return float64(value()) },
		))
	}

	gauge("parking_frames_read_total", "Total frames read from the source", m.FramesRead.Load)
	gauge("parking_frames_processed_total", "Total frames detected and evaluated", m.FramesProcessed.Load)
	gauge("parking_frames_skipped_total", "Total frames skipped by the stride policy", m.FramesSkipped.Load)
	gauge("parking_frames_dropped_total", "Total frames dropped because the pipeline lagged", m.FramesDropped.Load)

	gauge("parking_read_errors_total", "Total frame source read errors", m.ReadErrors.Load)
	gauge("parking_detector_errors_total", "Total recoverable detector failures", m.DetectorErrors.Load)
	gauge("parking_render_errors_total", "Total frame encoding failures", m.RenderErrors.Load)

	gauge("parking_detect_latency_ms", "Latest detector round trip in milliseconds", m.DetectLatencyMs.Load)
	gauge("parking_render_latency_ms", "Latest render+encode time in milliseconds", m.RenderLatencyMs.Load)

	gauge("parking_spaces_total", "Defined parking spaces at last evaluation", m.SpacesTotal.Load)
	gauge("parking_spaces_occupied", "Occupied spaces at last evaluation", m.SpacesOccupied.Load)
	gauge("parking_spaces_free", "Free spaces at last evaluation", m.SpacesFree.Load)
	gauge("parking_evaluations_total", "Total occupancy evaluations", m.Evaluations.Load)

	gauge("parking_stream_clients", "Connected MJPEG stream clients", m.StreamClients.Load)
	gauge("parking_stream_frames_dropped_total", "Total frames skipped for slow stream clients", m.StreamFramesDropped.Load)
}

// UpdateOccupancy records the latest evaluation outcome.
func (m *Metrics) UpdateOccupancy(total, occupied, free int) {
	m.SpacesTotal.Store(uint64(total))
	m.SpacesOccupied.Store(uint64(occupied))
	m.SpacesFree.Store(uint64(free))
	m.Evaluations.Add(1)
}

// UpdateDetectLatency records the latest detector round trip.
func (m *Metrics) UpdateDetectLatency(d time.Duration) {
	m.DetectLatencyMs.Store(uint64(d.Milliseconds()))
}

// UpdateRenderLatency records the latest render+encode duration.
func (m *Metrics) UpdateRenderLatency(d time.Duration) {
	m.RenderLatencyMs.Store(uint64(d.Milliseconds()))
}

// Handler returns the Prometheus HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartServer starts the metrics HTTP server.
func (m *Metrics) StartServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return http.ListenAndServe(addr, mux)
}
