package geo

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
)

func TestSwapCoords(t *testing.T) {
	path := []LatLon{{40, -85}, {41, -86}}
	line := PathToLineString(path)
	if len(line) != 2 {
		t.Fatalf("len(line) = %v; want 2", len(line))
	}
	if line[0].Lon() != -85 || line[0].Lat() != 40 {
		t.Errorf("line[0] = %v; want lon -85, lat 40", line[0])
	}
	if ToLatLon(line[1]) != path[1] {
		t.Errorf("ToLatLon(line[1]) = %v; want %v", ToLatLon(line[1]), path[1])
	}
}

func TestPolygonFromLatLonCloses(t *testing.T) {
	poly := PolygonFromLatLon([]LatLon{{41, -87}, {43, -89}, {43, -90}})
	ring := poly[0]
	if len(ring) != 4 || !ring.Closed() {
		t.Fatalf("ring = %v; want closed ring of 4", ring)
	}
	if ring[0] != (orb.Point{-87, 41}) {
		t.Errorf("ring[0] = %v; want [-87 41]", ring[0])
	}
}

func TestValidatePolygon(t *testing.T) {
	square := orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}
	if err := ValidatePolygon(square); err != nil {
		t.Errorf("square: unexpected error %v", err)
	}
	open := orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}
	if err := ValidatePolygon(open); err != nil {
		t.Errorf("open square: unexpected error %v", err)
	}
	repeated := orb.Polygon{{{0, 0}, {1, 0}, {1, 0}, {1, 1}, {0, 1}}}
	if err := ValidatePolygon(repeated); err != nil {
		t.Errorf("square with repeated vertex: unexpected error %v", err)
	}

	tests := []struct {
		name string
		poly orb.Polygon
		want error
	}{
		{"empty", orb.Polygon{}, ErrEmptyPolygon},
		{"two vertices", orb.Polygon{{{0, 0}, {1, 1}, {0, 0}}}, ErrTooFewVertices},
		{"collinear", orb.Polygon{{{0, 0}, {1, 1}, {2, 2}, {0, 0}}}, ErrZeroArea},
		{"bowtie", orb.Polygon{{{0, 0}, {4, 2}, {4, 0}, {0, 3}, {0, 0}}}, ErrSelfIntersecting},
		{"spike", orb.Polygon{{{0, 0}, {4, 0}, {4, 4}, {4, 6}, {4, 5}, {0, 4}, {0, 0}}}, ErrSelfIntersecting},
		{"fold at closing vertex", orb.Polygon{{{2, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}, {3, 0}}}, ErrSelfIntersecting},
	}
	for _, test := range tests {
		err := ValidatePolygon(test.poly)
		if !errors.Is(err, test.want) {
			t.Errorf("%s: ValidatePolygon() = %v; want %v", test.name, err, test.want)
		}
	}
}
