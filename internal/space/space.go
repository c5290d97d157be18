package space

import (
	"encoding/json"
	"fmt"
	"image"
)

// VertexCount is the fixed number of corners in a parking space polygon.
const VertexCount = 4

// Point is a pixel coordinate. It serializes as a two-element JSON array
// [x,y], the on-disk format shared with the original configuration tool.
type Point struct {
	X int
	Y int
}

// MarshalJSON encodes the point as [x,y].
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON decodes a [x,y] pair. Coordinates must be non-negative
// integers; anything else is rejected so corrupted geometry never loads.
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("point must be a [x,y] integer pair: %w", err)
	}
	if pair[0] < 0 || pair[1] < 0 {
		return fmt.Errorf("point [%d,%d] has negative coordinates", pair[0], pair[1])
	}
	p.X, p.Y = pair[0], pair[1]
	return nil
}

// ImagePoint converts to the stdlib image coordinate type.
func (p Point) ImagePoint() image.Point {
	return image.Point{X: p.X, Y: p.Y}
}

// ParkingSpace is one user-defined quadrilateral slot, vertices in click
// order. A space always has exactly four vertices; partial point sets live
// only inside the editor session and are never persisted or evaluated.
type ParkingSpace [VertexCount]Point

// FromPoints builds a space from exactly four points in order.
func FromPoints(points []Point) (ParkingSpace, error) {
	var sp ParkingSpace
	if len(points) != VertexCount {
		return sp, fmt.Errorf("parking space needs exactly %d points, got %d", VertexCount, len(points))
	}
	copy(sp[:], points)
	return sp, nil
}

// Bounds returns the axis-aligned bounding rectangle of the polygon.
func (sp ParkingSpace) Bounds() image.Rectangle {
	r := image.Rectangle{Min: sp[0].ImagePoint(), Max: sp[0].ImagePoint()}
	for _, p := range sp[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X > r.Max.X {
			r.Max.X = p.X
		}
		if p.Y > r.Max.Y {
			r.Max.Y = p.Y
		}
	}
	r.Max.X++
	r.Max.Y++
	return r
}
