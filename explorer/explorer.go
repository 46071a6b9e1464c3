package explorer

import (
	"fmt"

	"github.com/KimGeorgy/bird-migration/attr"
	"github.com/KimGeorgy/bird-migration/comps"
	"github.com/KimGeorgy/bird-migration/geo"
	"github.com/KimGeorgy/bird-migration/selection"
	"github.com/KimGeorgy/bird-migration/structs"
	. "github.com/KimGeorgy/bird-migration/util"
	"github.com/paulmach/orb"
	"golang.org/x/exp/slog"
)

//**********************************************************
// explorer
//**********************************************************

type Options struct {
	Roles comps.RoleOptions
}

// Explorer bundles the read-only structures built from one cell table and
// one route table. It may be shared by any number of sessions.
type Explorer struct {
	cells      *comps.CellIndex
	attributes *attr.CellAttributes
	roles      comps.Roles
	routes     *comps.RouteLookup
	barriers   List[structs.Barrier]
}

func New(cells []structs.Cell, routes []structs.RouteRecord, barriers []structs.Barrier, opts Options) (*Explorer, error) {
	index, err := comps.BuildCellIndex(cells)
	if err != nil {
		return nil, err
	}
	roles := comps.ClassifyRoles(index.Cells(), opts.Roles)
	lookup := comps.BuildRouteLookup(routes)

	dangling := 0
	for _, key := range lookup.Keys() {
		if !index.Contains(key.Departure) || !index.Contains(key.Destination) {
			dangling += 1
		}
	}
	if dangling > 0 {
		slog.Warn(fmt.Sprintf("%v routes reference cells missing from the cell table", dangling))
	}
	slog.Info(fmt.Sprintf("explorer ready: %v cells, %v departure, %v destination, %v routes (%v duplicate keys dropped)",
		index.Count(), roles.Departure.Length(), roles.Destination.Length(), lookup.Count(), lookup.Duplicates()))

	return &Explorer{
		cells:      index,
		attributes: attr.New(index.Cells()),
		roles:      roles,
		routes:     lookup,
		barriers:   List[structs.Barrier](barriers),
	}, nil
}

func (self *Explorer) ResolvePoint(lon, lat float64) Optional[structs.CellID] {
	return self.cells.Resolve(geo.NewCoord(lon, lat))
}

func (self *Explorer) GetDepartureCells() Set[structs.CellID] {
	return self.roles.Departure
}

func (self *Explorer) GetDestinationCells() Set[structs.CellID] {
	return self.roles.Destination
}

func (self *Explorer) CellGeometry(id structs.CellID) Optional[orb.Polygon] {
	return self.cells.Geometry(id)
}

func (self *Explorer) Cells() *comps.CellIndex {
	return self.cells
}

func (self *Explorer) Routes() *comps.RouteLookup {
	return self.routes
}

func (self *Explorer) Attributes() attr.IAttributes {
	return self.attributes
}

func (self *Explorer) Barriers() List[structs.Barrier] {
	return self.barriers
}

// Returns the mean of the tabulated cell centroids.
func (self *Explorer) Center() geo.LatLon {
	return geo.NewLatLon(attr.Mean(self.attributes, attr.LAT), attr.Mean(self.attributes, attr.LNG))
}

func (self *Explorer) NewSession() *Session {
	return &Session{
		explorer:   self,
		controller: selection.NewController(&self.roles, self.routes),
	}
}
