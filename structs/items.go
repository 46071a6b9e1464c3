package structs

import (
	"github.com/KimGeorgy/bird-migration/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

//*******************************************
// cell structs
//*******************************************

// CellID is an opaque, unique cell token (an H3 index in source data).
type CellID string

type Cell struct {
	ID       CellID
	Geometry orb.Polygon // (lon, lat)
	// numeric columns of the abundance table, at least lat, lng,
	// value_wintering and value_breeding
	Attributes map[string]float64
}

func (self *Cell) Attribute(name string) float64 {
	return self.Attributes[name]
}

// Returns the tabulated centroid in display order, falls back to the
// polygon centroid if the table has no lat/lng.
func (self *Cell) Centroid() geo.LatLon {
	lat, has_lat := self.Attributes["lat"]
	lng, has_lng := self.Attributes["lng"]
	if has_lat && has_lng {
		return geo.NewLatLon(lat, lng)
	}
	center, _ := planar.CentroidArea(self.Geometry)
	return geo.ToLatLon(center)
}

//*******************************************
// route structs
//*******************************************

type RouteKey struct {
	Departure   CellID
	Destination CellID
}

type RouteRecord struct {
	Departure   CellID       `json:"departure_cell"`
	Destination CellID       `json:"destination_cell"`
	Path        []geo.LatLon `json:"path"` // (lat, lon)
	// opaque scalar columns (distance, duration, elevation cost, ...)
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (self *RouteRecord) Key() RouteKey {
	return RouteKey{self.Departure, self.Destination}
}

//*******************************************
// barrier struct
//*******************************************

type Barrier struct {
	Name     string
	Geometry orb.Polygon // (lon, lat)
}
