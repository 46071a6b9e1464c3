package presenter

import (
	"github.com/KimGeorgy/bird-migration/structs"
	. "github.com/KimGeorgy/bird-migration/util"
)

//**********************************************************
// route details
//**********************************************************

// RouteDetails is the single row shown in the route details panel.
type RouteDetails struct {
	Columns List[string]      `json:"columns"`
	Row     Dict[string, any] `json:"row"`
}

// Flattens a route into one table row: the key columns, the number of path
// points and the metadata columns in alphabetical order.
func BuildRouteDetails(route structs.RouteRecord) RouteDetails {
	columns := NewList[string](3 + len(route.Metadata))
	row := NewDict[string, any](3 + len(route.Metadata))

	columns.Add("departure_cell")
	row["departure_cell"] = string(route.Departure)
	columns.Add("destination_cell")
	row["destination_cell"] = string(route.Destination)
	columns.Add("path_points")
	row["path_points"] = len(route.Path)

	meta := Dict[string, any](route.Metadata)
	for _, name := range SortedKeys(meta) {
		if row.ContainsKey(name) {
			continue
		}
		columns.Add(name)
		row[name] = meta[name]
	}
	return RouteDetails{Columns: columns, Row: row}
}
