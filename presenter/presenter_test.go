package presenter

import (
	"encoding/json"
	"testing"

	"github.com/KimGeorgy/bird-migration/explorer"
	"github.com/KimGeorgy/bird-migration/geo"
	"github.com/KimGeorgy/bird-migration/structs"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func newExplorer(t *testing.T) *explorer.Explorer {
	square := func(id string, lon, lat float64, w, b float64) structs.Cell {
		ring := orb.Ring{{lon, lat}, {lon + 1, lat}, {lon + 1, lat + 1}, {lon, lat + 1}, {lon, lat}}
		return structs.Cell{
			ID:         structs.CellID(id),
			Geometry:   orb.Polygon{ring},
			Attributes: map[string]float64{"lat": lat + 0.5, "lng": lon + 0.5, "value_wintering": w, "value_breeding": b},
		}
	}
	cells := []structs.Cell{square("A", -86, 40, 5, 0), square("B", -87, 41, 0, 3), square("C", -85, 41, 0, 1)}
	routes := []structs.RouteRecord{{Departure: "A", Destination: "B", Path: []geo.LatLon{{40, -85}, {41, -86}}}}
	barriers := []structs.Barrier{{Geometry: geo.PolygonFromLatLon([]geo.LatLon{{41, -87}, {43, -89}, {43, -90}})}}
	exp, err := explorer.New(cells, routes, barriers, explorer.Options{})
	if err != nil {
		t.Fatalf("explorer.New() error = %v", err)
	}
	return exp
}

func countLayer(fc *geojson.FeatureCollection, layer string) int {
	n := 0
	for _, f := range fc.Features {
		if f.Properties["layer"] == layer {
			n++
		}
	}
	return n
}

func TestBuildMapViewEmpty(t *testing.T) {
	exp := newExplorer(t)
	session := exp.NewSession()

	view := BuildMapView(session, LayerOptions{ShowGrid: true})
	if countLayer(view.Layers, "grid") != 3 || countLayer(view.Layers, "barrier") != 1 {
		t.Errorf("layers = %v", len(view.Layers.Features))
	}
	if view.Message != MSG_SELECT_CELLS {
		t.Errorf("Message = %q; want %q", view.Message, MSG_SELECT_CELLS)
	}

	view = BuildMapView(session, LayerOptions{ShowGrid: false})
	if countLayer(view.Layers, "grid") != 0 {
		t.Errorf("grid layer drawn while hidden")
	}
}

func TestBuildMapViewComplete(t *testing.T) {
	exp := newExplorer(t)
	session := exp.NewSession()
	session.Select("A")
	session.Select("B")

	view := BuildMapView(session, LayerOptions{})
	if countLayer(view.Layers, "origin") != 1 || countLayer(view.Layers, "target") != 1 || countLayer(view.Layers, "route") != 1 {
		t.Fatalf("selection layers missing: %v features", len(view.Layers.Features))
	}
	if view.Message != "" {
		t.Errorf("Message = %q; want none", view.Message)
	}
	for _, f := range view.Layers.Features {
		if f.Properties["layer"] != "route" {
			continue
		}
		line, ok := f.Geometry.(orb.LineString)
		if !ok || len(line) != 2 {
			t.Fatalf("route geometry = %v", f.Geometry)
		}
		// GeoJSON is (lon, lat)
		if line[0] != (orb.Point{-85, 40}) {
			t.Errorf("route start = %v; want [-85 40]", line[0])
		}
	}
	for _, f := range view.Layers.Features {
		if f.Properties["layer"] == "origin" && f.Properties["fillColor"] != "green" {
			t.Errorf("origin fill = %v; want green", f.Properties["fillColor"])
		}
	}

	if _, err := json.Marshal(view); err != nil {
		t.Errorf("marshal view: %v", err)
	}
}

func TestStatusMessageNoRoute(t *testing.T) {
	exp := newExplorer(t)
	session := exp.NewSession()
	session.Select("A")
	session.Select("C")
	if msg := StatusMessage(session.State(), session.CurrentRoute()); msg != MSG_NO_ROUTE {
		t.Errorf("StatusMessage() = %q; want %q", msg, MSG_NO_ROUTE)
	}
	view := BuildMapView(session, LayerOptions{})
	if countLayer(view.Layers, "route") != 0 {
		t.Errorf("route drawn without a record")
	}
}

func TestBuildRouteDetails(t *testing.T) {
	route := structs.RouteRecord{
		Departure:   "A",
		Destination: "B",
		Path:        []geo.LatLon{{40, -85}, {40.5, -85.5}, {41, -86}},
		Metadata:    map[string]any{"elevation_cost": 12.0, "distance": 142.5},
	}
	details := BuildRouteDetails(route)
	want := []string{"departure_cell", "destination_cell", "path_points", "distance", "elevation_cost"}
	if len(details.Columns) != len(want) {
		t.Fatalf("Columns = %v; want %v", details.Columns, want)
	}
	for i := range want {
		if details.Columns[i] != want[i] {
			t.Errorf("Columns[%d] = %v; want %v", i, details.Columns[i], want[i])
		}
	}
	if details.Row["path_points"] != 3 || details.Row["distance"] != 142.5 {
		t.Errorf("Row = %v", details.Row)
	}
}

func TestBuildMapViewReachable(t *testing.T) {
	exp := newExplorer(t)
	session := exp.NewSession()
	session.Select("A")

	view := BuildMapView(session, LayerOptions{})
	if len(view.Reachable) != 1 || view.Reachable[0] != "B" {
		t.Errorf("Reachable = %v; want [B]", view.Reachable)
	}
	session.Select("B")
	view = BuildMapView(session, LayerOptions{})
	if view.Reachable != nil {
		t.Errorf("Reachable = %v; want none once complete", view.Reachable)
	}
}

func TestBuildMapViewLegend(t *testing.T) {
	exp := newExplorer(t)
	view := BuildMapView(exp.NewSession(), LayerOptions{ShowGrid: true})

	wintering := view.Legend["value_wintering"]
	if wintering.Min != 0 || wintering.Max != 5 {
		t.Errorf("Legend[value_wintering] = %v; want 0..5", wintering)
	}
	breeding := view.Legend["value_breeding"]
	if breeding.Min != 0 || breeding.Max != 3 {
		t.Errorf("Legend[value_breeding] = %v; want 0..3", breeding)
	}
	for _, f := range view.Layers.Features {
		if f.Properties["layer"] == "grid" && f.Properties["cell"] == "A" {
			if f.Properties["value_wintering"] != 5.0 || f.Properties["value_breeding"] != 0.0 {
				t.Errorf("grid A properties = %v", f.Properties)
			}
		}
	}
}

func TestCellFeature(t *testing.T) {
	exp := newExplorer(t)
	cell := exp.Cells().Cell("B")
	if !cell.HasValue() {
		t.Fatalf("Cell(B) empty")
	}
	f := CellFeature(cell.Value)
	if f.ID != "B" || f.Properties["cell"] != "B" || f.Properties["value_breeding"] != 3.0 {
		t.Errorf("CellFeature(B) = %v %v", f.ID, f.Properties)
	}
	if _, ok := f.Geometry.(orb.Polygon); !ok {
		t.Errorf("geometry = %T; want polygon", f.Geometry)
	}
}
