// Package detect talks to the external vehicle detector. The detector is
// an interchangeable collaborator: anything that accepts a JPEG frame and
// answers with labeled bounding boxes satisfies the contract.
package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/jpeg"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/lotvision/parking-monitor/internal/config"
	"github.com/lotvision/parking-monitor/pkg/types"
)

// Error is a recoverable per-frame detector failure. The pipeline treats
// the frame as having no detections and keeps running; it never crashes
// the loop on a single bad frame.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("detector: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Detector produces vehicle detections for a frame.
type Detector interface {
	Detect(ctx context.Context, frame *types.Frame) ([]types.Detection, error)
}

// Client is the HTTP detector client. It posts the frame as JPEG and
// filters the response down to the configured vehicle class.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	vehicleClass  string
	minConfidence float64
	jpegQuality   int
	logger        *zap.Logger
}

// NewClient builds a detector client from configuration.
func NewClient(cfg config.DetectorConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		vehicleClass:  cfg.VehicleClass,
		minConfidence: cfg.MinConfidence,
		jpegQuality:   80,
		logger:        logger,
	}
}

// Detect sends the frame and returns vehicle detections only. Every
// failure path comes back as *Error so callers can apply the recoverable
// policy uniformly.
func (c *Client) Detect(ctx context.Context, frame *types.Frame) ([]types.Detection, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame.Image, &jpeg.Options{Quality: c.jpegQuality}); err != nil {
		return nil, &Error{Err: fmt.Errorf("encode frame: %w", err)}
	}

	url := c.baseURL + "/detect"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &Error{Err: fmt.Errorf("detector returned %d: %s", resp.StatusCode, string(body))}
	}

	var result types.DetectionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &Error{Err: fmt.Errorf("decode response: %w", err)}
	}

	vehicles := make([]types.Detection, 0, len(result.Detections))
	for _, det := range result.Detections {
		if det.ClassName != c.vehicleClass || det.Confidence < c.minConfidence {
			continue
		}
		vehicles = append(vehicles, det)
	}

	c.logger.Debug("detector response",
		zap.Uint64("frame", frame.FrameNum),
		zap.Int("raw", len(result.Detections)),
		zap.Int("vehicles", len(vehicles)),
	)

	return vehicles, nil
}
