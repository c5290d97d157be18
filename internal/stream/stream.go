// Package stream resolves a source descriptor into a playable frame
// source and reads raster frames from it. Supported descriptors: MJPEG
// over HTTP, local MJPEG/JPEG files, and YouTube page URLs resolved to a
// direct stream URL through yt-dlp.
package stream

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"mime"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/lotvision/parking-monitor/internal/logger"
	"github.com/lotvision/parking-monitor/pkg/types"
)

// Error is a fatal frame source failure: the source cannot be resolved or
// a read failed. The processing loop terminates on it (end-of-stream is
// reported as io.EOF, not as an Error).
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("stream %s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Source yields decoded frames until io.EOF or a fatal *Error.
type Source interface {
	ReadFrame(ctx context.Context) (*types.Frame, error)
	Close() error
}

// Resolve turns a descriptor into an open Source.
func Resolve(ctx context.Context, descriptor string) (Source, error) {
	if descriptor == "" {
		return nil, &Error{Source: descriptor, Err: fmt.Errorf("empty source descriptor")}
	}

	if isYouTubeURL(descriptor) {
		direct, err := resolveYouTube(ctx, descriptor)
		if err != nil {
			return nil, &Error{Source: descriptor, Err: err}
		}
		logger.Info("Stream", "resolved YouTube source to direct URL")
		descriptor = direct
	}

	if strings.HasPrefix(descriptor, "http://") || strings.HasPrefix(descriptor, "https://") {
		return openHTTP(ctx, descriptor)
	}

	return openFile(descriptor)
}

func openHTTP(ctx context.Context, url string) (Source, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Source: url, Err: err}
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, &Error{Source: url, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &Error{Source: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	mediaType, params, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") && params["boundary"] != "" {
		logger.Info("Stream", "reading multipart MJPEG from %s", url)
		return newMultipartSource(url, resp.Body, params["boundary"]), nil
	}

	logger.Info("Stream", "reading raw JPEG stream from %s", url)
	return newScannerSource(url, resp.Body), nil
}

func openFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Source: path, Err: err}
	}
	logger.Info("Stream", "reading frames from file %s", path)
	return newScannerSource(path, f), nil
}

// decodeFrame decodes one JPEG into an RGBA frame with sequence metadata.
func decodeFrame(data []byte, name string, frameNum uint64) (*types.Frame, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Source: name, Err: fmt.Errorf("decode frame %d: %w", frameNum, err)}
	}
	return &types.Frame{
		Image:     toRGBA(img),
		Timestamp: time.Now(),
		FrameNum:  frameNum,
	}, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}
