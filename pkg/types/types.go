package types

import (
	"image"
	"time"
)

// Frame represents a decoded video frame with metadata.
type Frame struct {
	Image     *image.RGBA // Decoded pixels
	Timestamp time.Time   // Frame capture/decode timestamp
	FrameNum  uint64      // Sequential frame number
}

// Bounds returns the pixel bounds of the frame image.
func (f *Frame) Bounds() image.Rectangle {
	if f == nil || f.Image == nil {
		return image.Rectangle{}
	}
	return f.Image.Bounds()
}

// BoundingBox is an axis-aligned detection box in pixel coordinates.
type BoundingBox struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Center returns the geometric center of the box.
func (b BoundingBox) Center() image.Point {
	return image.Point{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Detection is one object instance reported by the external detector.
type Detection struct {
	ClassName  string      `json:"class_name"`
	Confidence float64     `json:"confidence"`
	BBox       BoundingBox `json:"bbox"`
}

// DetectionResult is the detector output for one frame.
type DetectionResult struct {
	FrameNumber uint64      `json:"frame_number"`
	Timestamp   float64     `json:"timestamp"`
	Detections  []Detection `json:"detections"`
}
