package presenter

import (
	"github.com/KimGeorgy/bird-migration/attr"
	"github.com/KimGeorgy/bird-migration/explorer"
	"github.com/KimGeorgy/bird-migration/geo"
	"github.com/KimGeorgy/bird-migration/selection"
	"github.com/KimGeorgy/bird-migration/structs"
	. "github.com/KimGeorgy/bird-migration/util"
	"github.com/paulmach/orb/geojson"
)

//**********************************************************
// map layers
//**********************************************************

type LayerOptions struct {
	ShowGrid bool
}

// MapView is everything a map widget needs to draw one session.
type MapView struct {
	Center  geo.LatLon                 `json:"center"`
	Zoom    int                        `json:"zoom"`
	Layers  *geojson.FeatureCollection `json:"layers"`
	State   selection.State            `json:"state"`
	Message string                     `json:"message,omitempty"`
	// destinations with a precomputed route from the origin, set while
	// waiting for the target
	Reachable List[structs.CellID] `json:"reachable,omitempty"`
	// value range of every numeric cell column
	Legend Dict[string, ValueRange] `json:"legend"`
}

type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func BuildMapView(session *explorer.Session, opts LayerOptions) MapView {
	exp := session.Explorer()
	state := session.State()
	route := session.CurrentRoute()

	fc := geojson.NewFeatureCollection()
	if opts.ShowGrid {
		_AppendAll(fc, GridLayer(exp))
	}
	_AppendAll(fc, BarrierLayer(exp.Barriers()))
	if state.Origin.HasValue() {
		_AppendOptional(fc, SelectedCellFeature(exp, state.Origin.Value, ORIGIN_STYLE, "origin"))
	}
	if state.Target.HasValue() {
		_AppendOptional(fc, SelectedCellFeature(exp, state.Target.Value, TARGET_STYLE, "target"))
	}
	if route.HasValue() {
		fc.Append(RouteFeature(route.Value))
	}

	view := MapView{
		Center:  exp.Center(),
		Zoom:    5,
		Layers:  fc,
		State:   state,
		Message: StatusMessage(state, route),
		Legend:  BuildLegend(exp.Attributes()),
	}
	if state.Phase() == selection.ORIGIN_SET {
		view.Reachable = exp.Routes().RoutesFrom(state.Origin.Value)
	}
	return view
}

// Background layer of all cells.
func GridLayer(exp *explorer.Explorer) *geojson.FeatureCollection {
	cells := exp.Cells().Cells()
	att := exp.Attributes()
	fc := geojson.NewFeatureCollection()
	for i, cell := range cells {
		f := geojson.NewFeature(cell.Geometry)
		f.ID = string(cell.ID)
		_SetStyle(f, "grid", GRID_STYLE)
		f.Properties["cell"] = string(cell.ID)
		f.Properties["tooltip"] = string(cell.ID)
		f.Properties[attr.VALUE_WINTERING] = att.GetValue(int32(i), attr.VALUE_WINTERING)
		f.Properties[attr.VALUE_BREEDING] = att.GetValue(int32(i), attr.VALUE_BREEDING)
		fc.Append(f)
	}
	return fc
}

func BarrierLayer(barriers []structs.Barrier) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, barrier := range barriers {
		f := geojson.NewFeature(barrier.Geometry)
		_SetStyle(f, "barrier", BARRIER_STYLE)
		if barrier.Name != "" {
			f.Properties["name"] = barrier.Name
		}
		fc.Append(f)
	}
	return fc
}

func SelectedCellFeature(exp *explorer.Explorer, id structs.CellID, style Style, layer string) Optional[*geojson.Feature] {
	geom := exp.CellGeometry(id)
	if !geom.HasValue() {
		return None[*geojson.Feature]()
	}
	f := geojson.NewFeature(geom.Value)
	f.ID = string(id)
	_SetStyle(f, layer, style)
	f.Properties["cell"] = string(id)
	return Some(f)
}

// Route polyline in GeoJSON (lon, lat) order.
func RouteFeature(route structs.RouteRecord) *geojson.Feature {
	f := geojson.NewFeature(geo.PathToLineString(route.Path))
	_SetStyle(f, "route", ROUTE_STYLE)
	f.Properties["departure_cell"] = string(route.Departure)
	f.Properties["destination_cell"] = string(route.Destination)
	return f
}

// Single cell polygon with its attributes, used by the geometry endpoint.
func CellFeature(cell structs.Cell) *geojson.Feature {
	f := geojson.NewFeature(cell.Geometry)
	f.ID = string(cell.ID)
	for name, value := range cell.Attributes {
		f.Properties[name] = value
	}
	f.Properties["cell"] = string(cell.ID)
	f.Properties["centroid"] = cell.Centroid()
	return f
}

func BuildLegend(att attr.IAttributes) Dict[string, ValueRange] {
	columns := att.Columns()
	legend := NewDict[string, ValueRange](columns.Length())
	for _, name := range columns {
		lo, hi := attr.Range(att, name)
		legend[name] = ValueRange{Min: lo, Max: hi}
	}
	return legend
}

func StatusMessage(state selection.State, route Optional[structs.RouteRecord]) string {
	if state.Phase() != selection.COMPLETE {
		return MSG_SELECT_CELLS
	}
	if !route.HasValue() {
		return MSG_NO_ROUTE
	}
	return ""
}

func _SetStyle(f *geojson.Feature, layer string, style Style) {
	f.Properties["layer"] = layer
	if style.FillColor != "" {
		f.Properties["fillColor"] = style.FillColor
		f.Properties["fillOpacity"] = style.FillOpacity
	}
	f.Properties["color"] = style.Color
	f.Properties["weight"] = style.Weight
}

func _AppendAll(fc *geojson.FeatureCollection, other *geojson.FeatureCollection) {
	for _, f := range other.Features {
		fc.Append(f)
	}
}

func _AppendOptional(fc *geojson.FeatureCollection, f Optional[*geojson.Feature]) {
	if f.HasValue() {
		fc.Append(f.Value)
	}
}
