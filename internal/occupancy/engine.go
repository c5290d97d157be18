// Package occupancy classifies parking spaces as occupied or free by
// testing detected vehicle centers against the space polygons.
package occupancy

import (
	"image"

	"github.com/lotvision/parking-monitor/internal/space"
	"github.com/lotvision/parking-monitor/pkg/types"
)

// Result maps space index to occupancy for one evaluated frame. It is
// recomputed from scratch every frame; there is no temporal smoothing.
type Result struct {
	Spaces   []bool `json:"spaces"`
	Total    int    `json:"total"`
	Occupied int    `json:"occupied"`
	Free     int    `json:"free"`
}

// IsOccupied reports the status of the space at index, false when out of range.
func (r Result) IsOccupied(index int) bool {
	return index >= 0 && index < len(r.Spaces) && r.Spaces[index]
}

// Evaluate computes per-space occupancy: a space is occupied when any
// detection center lies inside or on the boundary of its polygon.
// Empty detections yield all-free; empty spaces yield an empty result.
// O(spaces × detections), fine for lot-sized inputs.
func Evaluate(spaces []space.ParkingSpace, detections []types.Detection) Result {
	res := Result{
		Spaces: make([]bool, len(spaces)),
		Total:  len(spaces),
	}

	centers := make([]image.Point, len(detections))
	for i, det := range detections {
		centers[i] = det.BBox.Center()
	}

	for i, sp := range spaces {
		for _, c := range centers {
			if Contains(sp, c) {
				res.Spaces[i] = true
				break
			}
		}
		if res.Spaces[i] {
			res.Occupied++
		}
	}
	res.Free = res.Total - res.Occupied
	return res
}

// Contains is the containment test: ray casting with an explicit edge
// check first, so a point exactly on the boundary counts as inside.
// The inclusive policy trades rare false positives near edges for fewer
// false negatives.
func Contains(sp space.ParkingSpace, p image.Point) bool {
	n := len(sp)
	for i := 0; i < n; i++ {
		if onSegment(sp[i].ImagePoint(), sp[(i+1)%n].ImagePoint(), p) {
			return true
		}
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := sp[i].ImagePoint(), sp[j].ImagePoint()
		if (a.Y > p.Y) != (b.Y > p.Y) {
			crossX := float64(b.X-a.X)*float64(p.Y-a.Y)/float64(b.Y-a.Y) + float64(a.X)
			if float64(p.X) < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// onSegment reports whether p lies on the closed segment ab.
func onSegment(a, b, p image.Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if cross != 0 {
		return false
	}
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}
