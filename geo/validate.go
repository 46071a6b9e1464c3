package geo

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var (
	ErrEmptyPolygon     = errors.New("polygon has no rings")
	ErrTooFewVertices   = errors.New("ring has fewer than 3 distinct vertices")
	ErrZeroArea         = errors.New("polygon has zero area")
	ErrSelfIntersecting = errors.New("ring is self-intersecting")
	ErrInvalidCoord     = errors.New("coordinate is not a finite lon/lat pair")
)

// Checks that the polygon is a simple, non-degenerate polygon.
//
// Only the outer ring is checked for self-intersection, holes are accepted as is.
func ValidatePolygon(polygon orb.Polygon) error {
	if len(polygon) == 0 {
		return ErrEmptyPolygon
	}
	outer := CloseRing(polygon[0])
	for _, c := range outer {
		if math.IsNaN(c[0]) || math.IsNaN(c[1]) || math.IsInf(c[0], 0) || math.IsInf(c[1], 0) {
			return ErrInvalidCoord
		}
	}
	if _CountDistinct(outer) < 3 {
		return ErrTooFewVertices
	}
	if math.Abs(planar.Area(polygon)) == 0 {
		return ErrZeroArea
	}
	if _IsSelfIntersecting(outer) {
		return ErrSelfIntersecting
	}
	return nil
}

func _CountDistinct(ring orb.Ring) int {
	seen := make(map[orb.Point]struct{}, len(ring))
	for _, c := range ring {
		seen[c] = struct{}{}
	}
	return len(seen)
}

// ring must be closed
func _IsSelfIntersecting(ring orb.Ring) bool {
	ring = _DropRepeated(ring)
	n := len(ring) - 1
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			// neighbouring segments share a vertex and only intersect when
			// they fold back onto each other
			if j == i+1 {
				if _FoldsBack(ring[i], ring[i+1], ring[j+1]) {
					return true
				}
				continue
			}
			if i == 0 && j == n-1 {
				if _FoldsBack(ring[j], ring[0], ring[1]) {
					return true
				}
				continue
			}
			if _SegmentsIntersect(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return true
			}
		}
	}
	return false
}

// Removes consecutive duplicate vertices.
func _DropRepeated(ring orb.Ring) orb.Ring {
	cleaned := make(orb.Ring, 0, len(ring))
	for _, c := range ring {
		if len(cleaned) > 0 && cleaned[len(cleaned)-1] == c {
			continue
		}
		cleaned = append(cleaned, c)
	}
	return cleaned
}

// Reports whether the segments (a, b) and (b, c) overlap beyond b.
func _FoldsBack(a, b, c orb.Point) bool {
	if _Orientation(a, b, c) != 0 {
		return false
	}
	return (a[0]-b[0])*(c[0]-b[0])+(a[1]-b[1])*(c[1]-b[1]) > 0
}

func _SegmentsIntersect(p1, p2, q1, q2 orb.Point) bool {
	d1 := _Orientation(q1, q2, p1)
	d2 := _Orientation(q1, q2, p2)
	d3 := _Orientation(p1, p2, q1)
	d4 := _Orientation(p1, p2, q2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && _OnSegment(q1, q2, p1) {
		return true
	}
	if d2 == 0 && _OnSegment(q1, q2, p2) {
		return true
	}
	if d3 == 0 && _OnSegment(p1, p2, q1) {
		return true
	}
	if d4 == 0 && _OnSegment(p1, p2, q2) {
		return true
	}
	return false
}

func _Orientation(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func _OnSegment(a, b, p orb.Point) bool {
	return math.Min(a[0], b[0]) <= p[0] && p[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= p[1] && p[1] <= math.Max(a[1], b[1])
}
