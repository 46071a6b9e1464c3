package structs

import (
	"testing"

	"github.com/KimGeorgy/bird-migration/geo"
	"github.com/paulmach/orb"
)

func TestCellCentroid(t *testing.T) {
	cell := Cell{
		ID:         "A",
		Geometry:   orb.Polygon{{{0, 0}, {2, 0}, {2, 4}, {0, 4}, {0, 0}}},
		Attributes: map[string]float64{"lat": 40.5, "lng": -85.5},
	}
	if c := cell.Centroid(); c != geo.NewLatLon(40.5, -85.5) {
		t.Errorf("Centroid() = %v; want tabulated [40.5 -85.5]", c)
	}

	cell.Attributes = nil
	if c := cell.Centroid(); c != geo.NewLatLon(2, 1) {
		t.Errorf("Centroid() = %v; want polygon centroid [2 1]", c)
	}
}

func TestRouteRecordKey(t *testing.T) {
	route := RouteRecord{Departure: "A", Destination: "B"}
	if route.Key() != (RouteKey{"A", "B"}) {
		t.Errorf("Key() = %v; want A-B", route.Key())
	}
	if route.Key() == (RouteKey{"B", "A"}) {
		t.Errorf("Key() must keep the direction")
	}
}
