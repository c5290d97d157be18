package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image/jpeg"
	"io"
	"log"
	"net/http"
	_ "net/http/pprof" // Enable pprof
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/lotvision/parking-monitor/internal/config"
	"github.com/lotvision/parking-monitor/internal/detect"
	"github.com/lotvision/parking-monitor/internal/editor"
	"github.com/lotvision/parking-monitor/internal/logger"
	"github.com/lotvision/parking-monitor/internal/metrics"
	"github.com/lotvision/parking-monitor/internal/monitor"
	"github.com/lotvision/parking-monitor/internal/occupancy"
	"github.com/lotvision/parking-monitor/internal/render"
	"github.com/lotvision/parking-monitor/internal/space"
	"github.com/lotvision/parking-monitor/internal/stream"
	"github.com/lotvision/parking-monitor/pkg/types"
)

// Server wires the frame pipeline: source -> detector -> occupancy ->
// renderer -> monitor fanout. Reading and processing run in separate
// goroutines joined by a bounded channel; when processing falls behind,
// frames are dropped rather than queued so the overlay stays live.
type Server struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	cfg        *config.Config
	metrics    *metrics.Metrics
	store      *space.Store
	editor     *editor.Editor
	detector   detect.Detector
	renderer   *render.Renderer
	monitor    *monitor.Server
	source     stream.Source
	httpServer *http.Server

	processChan chan *types.Frame

	// Last successful detections, reused on skipped frames so the
	// overlay does not flicker between strides.
	lastDetections []types.Detection
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	flag.StringVar(&cfg.Source.Descriptor, "source", cfg.Source.Descriptor, "Frame source (MJPEG URL, file path, or YouTube URL)")
	flag.StringVar(&cfg.Server.Addr, "http", cfg.Server.Addr, "HTTP server address")
	flag.StringVar(&cfg.Server.MetricsAddr, "metrics", cfg.Server.MetricsAddr, "Metrics server address")
	flag.StringVar(&cfg.Server.PprofAddr, "pprof", cfg.Server.PprofAddr, "pprof server address")
	flag.StringVar(&cfg.Detector.BaseURL, "detector", cfg.Detector.BaseURL, "Vehicle detector base URL")
	flag.StringVar(&cfg.Spaces.Dir, "spaces-dir", cfg.Spaces.Dir, "Directory holding parking space configurations")
	flag.StringVar(&cfg.Spaces.File, "spaces-file", cfg.Spaces.File, "Active parking space configuration file")
	flag.IntVar(&cfg.Source.FrameStride, "stride", cfg.Source.FrameStride, "Run detection on every Nth frame")
	flag.IntVar(&cfg.Source.TargetFPS, "fps", cfg.Source.TargetFPS, "Target frames per second")
	flag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level (debug, info, warn, error)")
	flag.Parse()

	// Flags can push values past what Load already validated.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := logger.Init(cfg.Log.Level); err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	defer logger.Sync()

	if cfg.Source.Descriptor == "" {
		log.Fatalf("No frame source configured (set SOURCE_URL or -source)")
	}

	logger.Info("Main", "parking monitor starting")
	logger.Info("Main", "source: %s", cfg.Source.Descriptor)
	logger.Info("Main", "detector: %s", cfg.Detector.BaseURL)
	logger.Info("Main", "spaces: %s", filepath.Join(cfg.Spaces.Dir, cfg.Spaces.File))

	srv, err := NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	// Wait for a signal, an API quit, or end of stream.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		logger.Info("Main", "received %v, shutting down", sig)
	case <-srv.ctx.Done():
		logger.Info("Main", "pipeline finished, shutting down")
	}

	if err := srv.Shutdown(); err != nil {
		logger.Error("Main", "error during shutdown: %v", err)
	}
	logger.Info("Main", "server stopped")
}

// NewServer creates the pipeline and its HTTP surfaces.
func NewServer(cfg *config.Config) (*Server, error) {
	ctx, cancel := context.WithCancel(context.Background())

	m := metrics.New()

	store, err := space.Open(filepath.Join(cfg.Spaces.Dir, cfg.Spaces.File))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("open space store: %w", err)
	}

	ed := editor.New(store)
	mon := monitor.NewServer(cfg, store, ed, m, cancel)

	srv := &Server{
		ctx:         ctx,
		cancel:      cancel,
		cfg:         cfg,
		metrics:     m,
		store:       store,
		editor:      ed,
		detector:    detect.NewClient(cfg.Detector, logger.L().Named("Detector")),
		renderer:    render.New(),
		monitor:     mon,
		processChan: make(chan *types.Frame, 8),
	}
	srv.httpServer = &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: mon.Handler(),
	}
	return srv, nil
}

// Start resolves the frame source and launches all components.
func (s *Server) Start() error {
	src, err := stream.Resolve(s.ctx, s.cfg.Source.Descriptor)
	if err != nil {
		return err
	}
	s.source = src

	if s.cfg.Server.PprofAddr != "" {
		go func() {
			logger.Info("Main", "pprof server on %s", s.cfg.Server.PprofAddr)
			if err := http.ListenAndServe(s.cfg.Server.PprofAddr, nil); err != nil {
				logger.Error("Main", "pprof server error: %v", err)
			}
		}()
	}

	go func() {
		logger.Info("Main", "metrics server on %s", s.cfg.Server.MetricsAddr)
		if err := s.metrics.StartServer(s.cfg.Server.MetricsAddr); err != nil {
			logger.Error("Main", "metrics server error: %v", err)
		}
	}()

	go func() {
		logger.Info("Main", "monitor server on %s", s.cfg.Server.Addr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("Main", "HTTP server error: %v", err)
		}
	}()

	s.wg.Add(2)
	go s.readFrames()
	go s.processFrames()

	logger.Info("Main", "server started")
	return nil
}

// readFrames pulls frames from the source at the target rate and hands
// them to the processor without blocking.
func (s *Server) readFrames() {
	defer s.wg.Done()

	interval := time.Second / time.Duration(s.cfg.Source.TargetFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Reader", "reading frames at %d fps target", s.cfg.Source.TargetFPS)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
		}

		frame, err := s.source.ReadFrame(s.ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Info("Reader", "end of stream")
			} else if s.ctx.Err() == nil {
				s.metrics.ReadErrors.Add(1)
				logger.Error("Reader", "fatal read error: %v", err)
			}
			s.cancel()
			return
		}

		s.metrics.FramesRead.Add(1)

		select {
		case s.processChan <- frame:
		default:
			s.metrics.FramesDropped.Add(1)
		}
	}
}

// processFrames runs detection, occupancy evaluation and rendering.
func (s *Server) processFrames() {
	defer s.wg.Done()

	stride := s.cfg.Source.FrameStride
	if stride < 1 {
		stride = 1
	}

	for {
		select {
		case <-s.ctx.Done():
			return
		case frame := <-s.processChan:
			s.processFrame(frame, stride)
		}
	}
}

func (s *Server) processFrame(frame *types.Frame, stride int) {
	detections := s.lastDetections

	if frame.FrameNum%uint64(stride) == 0 {
		start := time.Now()
		result, err := s.detector.Detect(s.ctx, frame)
		if err != nil {
			// A bad detector round is recoverable: the frame counts
			// as having no detections and the loop keeps running.
			s.metrics.DetectorErrors.Add(1)
			logger.Warn("Pipeline", "detector failed on frame %d: %v", frame.FrameNum, err)
			detections = nil
		} else {
			detections = result
			s.metrics.UpdateDetectLatency(time.Since(start))
		}
		s.lastDetections = detections
		s.metrics.FramesProcessed.Add(1)
	} else {
		s.metrics.FramesSkipped.Add(1)
	}

	// Snapshot once so evaluation and rendering see the same sequence
	// even while the editor commits new spaces.
	spaces := s.store.Snapshot()
	res := occupancy.Evaluate(spaces, detections)
	s.metrics.UpdateOccupancy(res.Total, res.Occupied, res.Free)

	renderStart := time.Now()
	out := s.renderer.Render(frame, spaces, res, s.monitor.Bookings().Snapshot(), s.editor.Session(), detections)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: 80}); err != nil {
		s.metrics.RenderErrors.Add(1)
		logger.Warn("Pipeline", "encode frame %d: %v", frame.FrameNum, err)
		return
	}
	s.metrics.UpdateRenderLatency(time.Since(renderStart))

	s.monitor.PublishFrame(buf.Bytes())
	s.monitor.PublishResult(frame.FrameNum, frame.Timestamp, res)
}

// Shutdown stops the pipeline and drains the HTTP server.
func (s *Server) Shutdown() error {
	s.cancel()

	// Closing the source unblocks a reader stuck in a network read.
	if s.source != nil {
		_ = s.source.Close()
	}

	s.wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
