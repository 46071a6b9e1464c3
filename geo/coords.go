package geo

import (
	"github.com/paulmach/orb"
)

//*******************************************
// coordinate types
//*******************************************

// Coord is a position in geometry order (lon, lat).
type Coord = orb.Point

func NewCoord(lon, lat float64) Coord {
	return Coord{lon, lat}
}

// LatLon is a position in display order (lat, lon) as used by route paths
// and map widgets.
//
// Never pass a LatLon to a geometry operation without converting it first.
type LatLon [2]float64

func NewLatLon(lat, lon float64) LatLon {
	return LatLon{lat, lon}
}

func (self LatLon) Lat() float64 {
	return self[0]
}
func (self LatLon) Lon() float64 {
	return self[1]
}
func (self LatLon) Coord() Coord {
	return Coord{self[1], self[0]}
}

func ToLatLon(c Coord) LatLon {
	return LatLon{c[1], c[0]}
}

// Converts a lat/lon sequence into geometry order.
func SwapCoords(coords []LatLon) []Coord {
	swapped := make([]Coord, len(coords))
	for i, c := range coords {
		swapped[i] = c.Coord()
	}
	return swapped
}

// Builds a polyline in (lon, lat) order from a display path.
func PathToLineString(path []LatLon) orb.LineString {
	return orb.LineString(SwapCoords(path))
}

// Builds a closed polygon from a display-ordered ring.
func PolygonFromLatLon(ring []LatLon) orb.Polygon {
	return orb.Polygon{CloseRing(orb.Ring(SwapCoords(ring)))}
}

// Appends the first vertex if the ring is not closed yet.
func CloseRing(ring orb.Ring) orb.Ring {
	if len(ring) == 0 || ring.Closed() {
		return ring
	}
	closed := make(orb.Ring, len(ring), len(ring)+1)
	copy(closed, ring)
	return append(closed, ring[0])
}
