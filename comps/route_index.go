package comps

import (
	"fmt"
	"slices"
	"strings"

	"github.com/KimGeorgy/bird-migration/structs"
	. "github.com/KimGeorgy/bird-migration/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// route lookup
//*******************************************

// RouteLookup maps an ordered (departure, destination) pair to its
// precomputed route.
type RouteLookup struct {
	routes     Dict[structs.RouteKey, structs.RouteRecord]
	adjacency  Dict[structs.CellID, List[structs.CellID]]
	duplicates int
}

// Builds the lookup, on duplicate keys the last record wins.
func BuildRouteLookup(records []structs.RouteRecord) *RouteLookup {
	routes := NewDict[structs.RouteKey, structs.RouteRecord](len(records))
	duplicates := 0
	for _, record := range records {
		key := record.Key()
		if routes.ContainsKey(key) {
			duplicates += 1
		}
		routes[key] = record
	}
	if duplicates > 0 {
		slog.Warn(fmt.Sprintf("route table contains %v duplicate keys, keeping last", duplicates))
	}

	adjacency := NewDict[structs.CellID, List[structs.CellID]](len(routes))
	for key := range routes {
		targets := adjacency[key.Departure]
		targets.Add(key.Destination)
		adjacency[key.Departure] = targets
	}
	for _, targets := range adjacency {
		slices.Sort(targets)
	}

	return &RouteLookup{
		routes:     routes,
		adjacency:  adjacency,
		duplicates: duplicates,
	}
}

// Returns the route for exactly the ordered pair (origin, destination).
func (self *RouteLookup) Get(origin, destination structs.CellID) Optional[structs.RouteRecord] {
	route, ok := self.routes[structs.RouteKey{Departure: origin, Destination: destination}]
	if !ok {
		return None[structs.RouteRecord]()
	}
	return Some(route)
}

// Returns the destinations with a precomputed route from origin, sorted.
func (self *RouteLookup) RoutesFrom(origin structs.CellID) List[structs.CellID] {
	return self.adjacency[origin]
}

func (self *RouteLookup) Count() int {
	return self.routes.Length()
}

// Number of records dropped because a later record had the same key.
func (self *RouteLookup) Duplicates() int {
	return self.duplicates
}

// Returns all keys ordered by departure, then destination.
func (self *RouteLookup) Keys() List[structs.RouteKey] {
	keys := NewList[structs.RouteKey](len(self.routes))
	for key := range self.routes {
		keys.Add(key)
	}
	slices.SortFunc(keys, func(a, b structs.RouteKey) int {
		if c := strings.Compare(string(a.Departure), string(b.Departure)); c != 0 {
			return c
		}
		return strings.Compare(string(a.Destination), string(b.Destination))
	})
	return keys
}
