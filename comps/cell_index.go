package comps

import (
	"fmt"
	"maps"
	"slices"

	"github.com/KimGeorgy/bird-migration/geo"
	"github.com/KimGeorgy/bird-migration/structs"
	. "github.com/KimGeorgy/bird-migration/util"
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"golang.org/x/exp/slog"
)

// half-width of the query box used for point lookups in degrees
const _QUERY_EPS = 1e-9

//*******************************************
// cell envelope
//*******************************************

// tree entry, the polygon is the bounding box of the cell
type _CellEnvelope struct {
	geom.Polygon
	slot int32
}

func _NewCellEnvelope(bound orb.Bound, slot int32) *_CellEnvelope {
	return &_CellEnvelope{
		Polygon: geom.Polygon{{
			{X: bound.Min[0], Y: bound.Min[1]},
			{X: bound.Max[0], Y: bound.Min[1]},
			{X: bound.Max[0], Y: bound.Max[1]},
			{X: bound.Min[0], Y: bound.Max[1]},
		}},
		slot: slot,
	}
}

//*******************************************
// cell index
//*******************************************

// CellIndex resolves points to the cell containing them.
//
// Candidates are narrowed by an r-tree over the cell envelopes and then
// tested by exact point-in-polygon. Candidates are tested in build order,
// so overlapping cells and shared boundaries always resolve to the cell
// listed first in the input table.
type CellIndex struct {
	cells      Array[structs.Cell]
	id_mapping Dict[structs.CellID, int32]
	tree       *rtree.Rtree
	bound      orb.Bound
}

func BuildCellIndex(cells []structs.Cell) (*CellIndex, error) {
	if len(cells) == 0 {
		return nil, &BuildError{Reason: "cell table is empty"}
	}
	stored := NewArray[structs.Cell](len(cells))
	id_mapping := NewDict[structs.CellID, int32](len(cells))
	tree := rtree.NewTree(25, 50)
	var bound orb.Bound
	for i, cell := range cells {
		if cell.ID == "" {
			return nil, &BuildError{Reason: fmt.Sprintf("cell at row %d has no id", i)}
		}
		if id_mapping.ContainsKey(cell.ID) {
			return nil, &BuildError{Cell: cell.ID, Reason: "duplicate cell id"}
		}
		if err := geo.ValidatePolygon(cell.Geometry); err != nil {
			return nil, &BuildError{Cell: cell.ID, Reason: "invalid geometry", Err: err}
		}
		polygon := cell.Geometry.Clone()
		polygon[0] = geo.CloseRing(polygon[0])
		cell.Geometry = polygon

		cell_bound := polygon.Bound()
		if i == 0 {
			bound = cell_bound
		} else {
			bound = bound.Union(cell_bound)
		}
		stored[i] = cell
		id_mapping[cell.ID] = int32(i)
		tree.Insert(_NewCellEnvelope(cell_bound, int32(i)))
	}
	slog.Debug(fmt.Sprintf("built cell index over %v cells", len(cells)))
	return &CellIndex{
		cells:      stored,
		id_mapping: id_mapping,
		tree:       tree,
		bound:      bound,
	}, nil
}

// Returns the cell containing the point (lon, lat) or None if the point
// lies outside all cells.
func (self *CellIndex) Resolve(point geo.Coord) Optional[structs.CellID] {
	if !self.bound.Pad(_QUERY_EPS).Contains(point) {
		return None[structs.CellID]()
	}
	for _, slot := range self._Candidates(point) {
		cell := &self.cells[slot]
		if planar.PolygonContains(cell.Geometry, point) {
			return Some(cell.ID)
		}
	}
	return None[structs.CellID]()
}

// coarse filter, slots in build order
func (self *CellIndex) _Candidates(point geo.Coord) []int32 {
	query := &geom.Bounds{
		Min: geom.Point{X: point[0] - _QUERY_EPS, Y: point[1] - _QUERY_EPS},
		Max: geom.Point{X: point[0] + _QUERY_EPS, Y: point[1] + _QUERY_EPS},
	}
	hits := self.tree.SearchIntersect(query)
	slots := make([]int32, 0, len(hits))
	for _, hit := range hits {
		slots = append(slots, hit.(*_CellEnvelope).slot)
	}
	slices.Sort(slots)
	return slots
}

// Returns a copy of the cell, the index itself stays unchanged.
func (self *CellIndex) Cell(id structs.CellID) Optional[structs.Cell] {
	slot, ok := self.id_mapping[id]
	if !ok {
		return None[structs.Cell]()
	}
	cell := self.cells[slot]
	cell.Geometry = cell.Geometry.Clone()
	cell.Attributes = maps.Clone(cell.Attributes)
	return Some(cell)
}

// The polygon is shared with the index and must not be modified.
func (self *CellIndex) Geometry(id structs.CellID) Optional[orb.Polygon] {
	slot, ok := self.id_mapping[id]
	if !ok {
		return None[orb.Polygon]()
	}
	return Some(self.cells[slot].Geometry)
}

func (self *CellIndex) Contains(id structs.CellID) bool {
	return self.id_mapping.ContainsKey(id)
}

// Returns all cells in build order.
func (self *CellIndex) Cells() Array[structs.Cell] {
	return self.cells
}

func (self *CellIndex) Count() int {
	return self.cells.Length()
}

// Returns the envelope of all cells in (lon, lat).
func (self *CellIndex) Bound() orb.Bound {
	return self.bound
}
