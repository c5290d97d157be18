package stream

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}))
	return buf.Bytes()
}

func TestScannerSource(t *testing.T) {
	t.Run("reads concatenated JPEGs", func(t *testing.T) {
		first := encodeJPEG(t, 32, 24)
		second := encodeJPEG(t, 16, 12)
		path := filepath.Join(t.TempDir(), "frames.mjpeg")
		require.NoError(t, os.WriteFile(path, append(append([]byte{}, first...), second...), 0644))

		src, err := Resolve(context.Background(), path)
		require.NoError(t, err)
		defer src.Close()

		f1, err := src.ReadFrame(context.Background())
		require.NoError(t, err)
		assert.Equal(t, uint64(1), f1.FrameNum)
		assert.Equal(t, image.Rect(0, 0, 32, 24), f1.Image.Bounds())

		f2, err := src.ReadFrame(context.Background())
		require.NoError(t, err)
		assert.Equal(t, uint64(2), f2.FrameNum)
		assert.Equal(t, image.Rect(0, 0, 16, 12), f2.Image.Bounds())

		_, err = src.ReadFrame(context.Background())
		assert.Equal(t, io.EOF, err)
	})

	t.Run("single still", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "still.jpg")
		require.NoError(t, os.WriteFile(path, encodeJPEG(t, 8, 8), 0644))

		src, err := Resolve(context.Background(), path)
		require.NoError(t, err)
		defer src.Close()

		_, err = src.ReadFrame(context.Background())
		require.NoError(t, err)
		_, err = src.ReadFrame(context.Background())
		assert.Equal(t, io.EOF, err)
	})

	t.Run("truncated frame is fatal", func(t *testing.T) {
		data := encodeJPEG(t, 8, 8)
		path := filepath.Join(t.TempDir(), "broken.mjpeg")
		require.NoError(t, os.WriteFile(path, data[:len(data)-4], 0644))

		src, err := Resolve(context.Background(), path)
		require.NoError(t, err)
		defer src.Close()

		_, err = src.ReadFrame(context.Background())
		var streamErr *Error
		assert.ErrorAs(t, err, &streamErr)
	})
}

func TestMultipartSource(t *testing.T) {
	frame := encodeJPEG(t, 32, 24)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
		for range 2 {
			_, _ = w.Write([]byte("--frame\r\nContent-Type: image/jpeg\r\n\r\n"))
			_, _ = w.Write(frame)
			_, _ = w.Write([]byte("\r\n"))
		}
		_, _ = w.Write([]byte("--frame--\r\n"))
	}))
	defer server.Close()

	src, err := Resolve(context.Background(), server.URL)
	require.NoError(t, err)
	defer src.Close()

	f1, err := src.ReadFrame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), f1.FrameNum)

	f2, err := src.ReadFrame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), f2.FrameNum)

	_, err = src.ReadFrame(context.Background())
	assert.Equal(t, io.EOF, err)
}

func TestResolveErrors(t *testing.T) {
	t.Run("empty descriptor", func(t *testing.T) {
		_, err := Resolve(context.Background(), "")
		var streamErr *Error
		assert.ErrorAs(t, err, &streamErr)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Resolve(context.Background(), filepath.Join(t.TempDir(), "nope.mjpeg"))
		var streamErr *Error
		assert.ErrorAs(t, err, &streamErr)
	})

	t.Run("http error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer server.Close()

		_, err := Resolve(context.Background(), server.URL)
		var streamErr *Error
		assert.ErrorAs(t, err, &streamErr)
	})
}

func TestIsYouTubeURL(t *testing.T) {
	assert.True(t, isYouTubeURL("https://www.youtube.com/watch?v=abc"))
	assert.True(t, isYouTubeURL("https://youtu.be/abc"))
	assert.False(t, isYouTubeURL("https://example.com/stream.mjpeg"))
	assert.False(t, isYouTubeURL("/tmp/frames.mjpeg"))
}
