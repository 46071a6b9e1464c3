package comps

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/KimGeorgy/bird-migration/geo"
	"github.com/KimGeorgy/bird-migration/structs"
	"github.com/paulmach/orb"
)

func hexagon(id string, lon, lat, radius float64) structs.Cell {
	ring := make(orb.Ring, 0, 7)
	for k := 0; k < 6; k++ {
		angle := float64(k) * math.Pi / 3
		ring = append(ring, orb.Point{lon + radius*math.Cos(angle), lat + radius*math.Sin(angle)})
	}
	ring = append(ring, ring[0])
	return structs.Cell{ID: structs.CellID(id), Geometry: orb.Polygon{ring}, Attributes: map[string]float64{"lat": lat, "lng": lon}}
}

func square(id string, minx, miny, size float64) structs.Cell {
	ring := orb.Ring{{minx, miny}, {minx + size, miny}, {minx + size, miny + size}, {minx, miny + size}, {minx, miny}}
	return structs.Cell{ID: structs.CellID(id), Geometry: orb.Polygon{ring}}
}

func TestResolveInsideAndOutside(t *testing.T) {
	cells := []structs.Cell{
		hexagon("A", -85, 40, 0.5),
		hexagon("B", -86, 41, 0.5),
		hexagon("C", -84, 39, 0.5),
	}
	index, err := BuildCellIndex(cells)
	if err != nil {
		t.Fatalf("BuildCellIndex() error = %v", err)
	}
	for _, cell := range cells {
		c := cell.Centroid().Coord()
		res := index.Resolve(c)
		if !res.HasValue() || res.Value != cell.ID {
			t.Errorf("Resolve(%v) = %v; want %v", c, res, cell.ID)
		}
	}
	outside := []geo.Coord{{0, 0}, {-85, 45}, {-85.45, 40.45}, {-90, 40}}
	for _, p := range outside {
		if res := index.Resolve(p); res.HasValue() {
			t.Errorf("Resolve(%v) = %v; want none", p, res.Value)
		}
	}
}

func TestResolveGrid(t *testing.T) {
	cells := make([]structs.Cell, 0, 100)
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			cells = append(cells, square(fmt.Sprintf("%d-%d", i, j), float64(i), float64(j), 1))
		}
	}
	index, err := BuildCellIndex(cells)
	if err != nil {
		t.Fatalf("BuildCellIndex() error = %v", err)
	}
	if index.Count() != 100 {
		t.Errorf("Count() = %v; want 100", index.Count())
	}
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			for _, off := range [][2]float64{{0.5, 0.5}, {0.1, 0.9}, {0.99, 0.01}} {
				p := geo.Coord{float64(i) + off[0], float64(j) + off[1]}
				want := structs.CellID(fmt.Sprintf("%d-%d", i, j))
				res := index.Resolve(p)
				if !res.HasValue() || res.Value != want {
					t.Errorf("Resolve(%v) = %v; want %v", p, res, want)
				}
			}
		}
	}
	if res := index.Resolve(geo.Coord{10.5, 5}); res.HasValue() {
		t.Errorf("Resolve outside grid = %v; want none", res.Value)
	}
	bound := index.Bound()
	if bound.Min != (orb.Point{0, 0}) || bound.Max != (orb.Point{10, 10}) {
		t.Errorf("Bound() = %v", bound)
	}
}

func TestResolveOverlapUsesBuildOrder(t *testing.T) {
	first := square("first", 0, 0, 2)
	second := square("second", 1, 1, 2)
	p := geo.Coord{1.5, 1.5}

	index, _ := BuildCellIndex([]structs.Cell{first, second})
	if res := index.Resolve(p); res.Value != "first" {
		t.Errorf("Resolve() = %v; want first", res.Value)
	}
	index, _ = BuildCellIndex([]structs.Cell{second, first})
	if res := index.Resolve(p); res.Value != "second" {
		t.Errorf("Resolve() = %v; want second", res.Value)
	}
	// repeated lookups are stable
	for i := 0; i < 10; i++ {
		if res := index.Resolve(p); res.Value != "second" {
			t.Fatalf("Resolve() = %v; want second", res.Value)
		}
	}
}

func TestResolveSharedBoundary(t *testing.T) {
	index, _ := BuildCellIndex([]structs.Cell{square("L", 0, 0, 1), square("R", 1, 0, 1)})
	res := index.Resolve(geo.Coord{1, 0.5})
	if !res.HasValue() || res.Value != "L" {
		t.Errorf("Resolve(boundary) = %v; want L", res)
	}
}

func TestBuildCellIndexClosesRings(t *testing.T) {
	cell := structs.Cell{ID: "open", Geometry: orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}}
	index, err := BuildCellIndex([]structs.Cell{cell})
	if err != nil {
		t.Fatalf("BuildCellIndex() error = %v", err)
	}
	geom := index.Geometry("open")
	if !geom.HasValue() || !geom.Value[0].Closed() {
		t.Errorf("Geometry(open) = %v; want closed ring", geom)
	}
	if len(cell.Geometry[0]) != 4 {
		t.Errorf("input geometry was modified")
	}
	if index.Geometry("missing").HasValue() || index.Cell("missing").HasValue() {
		t.Errorf("unknown cell should be empty")
	}
}

func TestBuildCellIndexErrors(t *testing.T) {
	var build_err *BuildError

	_, err := BuildCellIndex(nil)
	if !errors.As(err, &build_err) {
		t.Errorf("empty table: error = %v; want BuildError", err)
	}

	_, err = BuildCellIndex([]structs.Cell{square("A", 0, 0, 1), square("A", 2, 0, 1)})
	if !errors.As(err, &build_err) || build_err.Cell != "A" {
		t.Errorf("duplicate id: error = %v; want BuildError for A", err)
	}

	_, err = BuildCellIndex([]structs.Cell{square("", 0, 0, 1)})
	if !errors.As(err, &build_err) {
		t.Errorf("missing id: error = %v; want BuildError", err)
	}

	flat := structs.Cell{ID: "flat", Geometry: orb.Polygon{{{0, 0}, {1, 1}, {2, 2}, {0, 0}}}}
	_, err = BuildCellIndex([]structs.Cell{square("A", 0, 0, 1), flat})
	if !errors.As(err, &build_err) || build_err.Cell != "flat" {
		t.Errorf("zero area: error = %v; want BuildError for flat", err)
	}
	if !errors.Is(err, geo.ErrZeroArea) {
		t.Errorf("zero area: error = %v; want ErrZeroArea", err)
	}

	bowtie := structs.Cell{ID: "bowtie", Geometry: orb.Polygon{{{0, 0}, {4, 2}, {4, 0}, {0, 3}, {0, 0}}}}
	_, err = BuildCellIndex([]structs.Cell{bowtie})
	if !errors.Is(err, geo.ErrSelfIntersecting) {
		t.Errorf("bowtie: error = %v; want ErrSelfIntersecting", err)
	}
}

func TestCellReturnsCopy(t *testing.T) {
	cell := square("A", 0, 0, 1)
	cell.Attributes = map[string]float64{"value_wintering": 2}
	index, err := BuildCellIndex([]structs.Cell{cell})
	if err != nil {
		t.Fatalf("BuildCellIndex() error = %v", err)
	}
	got := index.Cell("A")
	if !got.HasValue() || got.Value.Attribute("value_wintering") != 2 {
		t.Fatalf("Cell(A) = %v; want wintering 2", got)
	}
	got.Value.Attributes["value_wintering"] = 0
	got.Value.Geometry[0][0] = orb.Point{5, 5}

	again := index.Cell("A")
	if again.Value.Attribute("value_wintering") != 2 {
		t.Errorf("attributes of the index were modified")
	}
	if again.Value.Geometry[0][0] != (orb.Point{0, 0}) {
		t.Errorf("geometry of the index was modified")
	}
	if !index.Resolve(geo.Coord{0.5, 0.5}).HasValue() {
		t.Errorf("Resolve() empty after modifying a copy")
	}
}
