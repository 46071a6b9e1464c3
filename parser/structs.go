package parser

import (
	"github.com/KimGeorgy/bird-migration/geo"
)

//*******************************************
// parser structs
//*******************************************

// one row of the abundance table
type CellRow struct {
	Cell           string  `csv:"cell"`
	Geometry       string  `csv:"geometry"` // WKT, (lon, lat)
	Lat            float64 `csv:"lat"`
	Lng            float64 `csv:"lng"`
	ValueWintering float64 `csv:"value_wintering"`
	ValueBreeding  float64 `csv:"value_breeding"`
}

// inline barrier definition, ring in (lat, lon)
type BarrierDef struct {
	Name string       `yaml:"name"`
	Ring []geo.LatLon `yaml:"ring"`
}

const (
	COL_DEPARTURE   = "departure_cell"
	COL_DESTINATION = "destination_cell"
	COL_PATH        = "path"
)
