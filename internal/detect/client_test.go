package detect

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lotvision/parking-monitor/internal/config"
	"github.com/lotvision/parking-monitor/pkg/types"
)

func testClient(baseURL string) *Client {
	return NewClient(config.DetectorConfig{
		BaseURL:        baseURL,
		VehicleClass:   "car",
		MinConfidence:  0.5,
		RequestTimeout: 2 * time.Second,
	}, zap.NewNop())
}

func testDetectFrame() *types.Frame {
	return &types.Frame{
		Image:     image.NewRGBA(image.Rect(0, 0, 64, 48)),
		Timestamp: time.Now(),
		FrameNum:  7,
	}
}

func TestDetect(t *testing.T) {
	t.Run("filters class and confidence", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/detect", r.URL.Path)
			assert.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))

			resp := types.DetectionResult{
				FrameNumber: 7,
				Detections: []types.Detection{
					{ClassName: "car", Confidence: 0.9, BBox: types.BoundingBox{X: 1, Y: 2, W: 3, H: 4}},
					{ClassName: "person", Confidence: 0.95},
					{ClassName: "car", Confidence: 0.2},
				},
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		detections, err := testClient(server.URL).Detect(context.Background(), testDetectFrame())
		require.NoError(t, err)
		require.Len(t, detections, 1)
		assert.Equal(t, "car", detections[0].ClassName)
		assert.Equal(t, 0.9, detections[0].Confidence)
		assert.Equal(t, types.BoundingBox{X: 1, Y: 2, W: 3, H: 4}, detections[0].BBox)
	})

	t.Run("empty response yields no detections", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(types.DetectionResult{})
		}))
		defer server.Close()

		detections, err := testClient(server.URL).Detect(context.Background(), testDetectFrame())
		require.NoError(t, err)
		assert.Empty(t, detections)
	})

	t.Run("non-200 is a recoverable error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not loaded", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := testClient(server.URL).Detect(context.Background(), testDetectFrame())
		var detErr *Error
		require.True(t, errors.As(err, &detErr))
		assert.Contains(t, detErr.Error(), "503")
	})

	t.Run("unreachable detector is a recoverable error", func(t *testing.T) {
		_, err := testClient("http://127.0.0.1:1").Detect(context.Background(), testDetectFrame())
		var detErr *Error
		assert.True(t, errors.As(err, &detErr))
	})

	t.Run("malformed body is a recoverable error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		_, err := testClient(server.URL).Detect(context.Background(), testDetectFrame())
		var detErr *Error
		assert.True(t, errors.As(err, &detErr))
	})
}
