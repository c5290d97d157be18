package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/lotvision/parking-monitor/pkg/types"
)

// multipartSource reads frames from a multipart/x-mixed-replace body, the
// framing used by MJPEG-over-HTTP cameras and relays.
type multipartSource struct {
	name     string
	body     io.ReadCloser
	reader   *multipart.Reader
	frameNum uint64
}

func newMultipartSource(name string, body io.ReadCloser, boundary string) *multipartSource {
	return &multipartSource{
		name:   name,
		body:   body,
		reader: multipart.NewReader(body, boundary),
	}
}

func (s *multipartSource) ReadFrame(ctx context.Context) (*types.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	part, err := s.reader.NextPart()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, &Error{Source: s.name, Err: fmt.Errorf("next part: %w", err)}
	}
	data, err := io.ReadAll(part)
	part.Close()
	if err != nil {
		return nil, &Error{Source: s.name, Err: fmt.Errorf("read part: %w", err)}
	}
	s.frameNum++
	return decodeFrame(data, s.name, s.frameNum)
}

func (s *multipartSource) Close() error {
	return s.body.Close()
}

// scannerSource extracts JPEG images from a raw byte stream by scanning
// for SOI/EOI markers. Covers concatenated-JPEG .mjpeg files, single
// stills, and HTTP bodies without multipart framing.
type scannerSource struct {
	name     string
	body     io.ReadCloser
	reader   *bufio.Reader
	frameNum uint64
}

func newScannerSource(name string, body io.ReadCloser) *scannerSource {
	return &scannerSource{
		name:   name,
		body:   body,
		reader: bufio.NewReaderSize(body, 1<<16),
	}
}

func (s *scannerSource) ReadFrame(ctx context.Context) (*types.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.nextJPEG()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, &Error{Source: s.name, Err: err}
	}
	s.frameNum++
	return decodeFrame(data, s.name, s.frameNum)
}

func (s *scannerSource) Close() error {
	return s.body.Close()
}

// nextJPEG scans to the next SOI marker (0xFFD8) and accumulates bytes
// through the matching EOI (0xFFD9). Marker scanning is the usual MJPEG
// tooling approach; an EOI byte pair inside entropy-coded data is rare
// enough not to matter for monitoring frames.
func (s *scannerSource) nextJPEG() ([]byte, error) {
	// Seek start-of-image.
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			return nil, err
		}
		if b != 0xFF {
			continue
		}
		next, err := s.reader.ReadByte()
		if err != nil {
			return nil, err
		}
		if next == 0xD8 {
			break
		}
		// Not SOI; the second byte may itself start a marker.
		if next == 0xFF {
			if err := s.reader.UnreadByte(); err != nil {
				return nil, err
			}
		}
	}

	data := []byte{0xFF, 0xD8}
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("truncated JPEG frame: %w", err)
		}
		data = append(data, b)
		if b == 0xFF {
			next, err := s.reader.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("truncated JPEG frame: %w", err)
			}
			data = append(data, next)
			if next == 0xD9 {
				return data, nil
			}
		}
	}
}
