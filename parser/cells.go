package parser

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/KimGeorgy/bird-migration/attr"
	"github.com/KimGeorgy/bird-migration/structs"
	. "github.com/KimGeorgy/bird-migration/util"
	"github.com/gocarina/gocsv"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"golang.org/x/exp/slog"
)

func LoadCells(file string) ([]structs.Cell, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read cell table: %w", err)
	}
	cells, err := ParseCells(data)
	if err != nil {
		return nil, fmt.Errorf("parse cell table %s: %w", file, err)
	}
	slog.Info(fmt.Sprintf("loaded %v cells from %s", len(cells), file))
	return cells, nil
}

// Parses an abundance table (CSV with a WKT geometry column).
//
// Besides the required columns every other numeric column is kept as a
// cell attribute, non-numeric values are ignored.
func ParseCells(data []byte) ([]structs.Cell, error) {
	records, err := gocsv.CSVToMaps(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table has no rows")
	}
	for _, name := range append([]string{"cell", "geometry"}, attr.REQUIRED_COLUMNS...) {
		if _, ok := records[0][name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var rows []CellRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, err
	}
	if len(rows) != len(records) {
		return nil, fmt.Errorf("row count mismatch: %d typed rows, %d records", len(rows), len(records))
	}

	cells := NewList[structs.Cell](len(rows))
	for i, row := range rows {
		geom, err := ParsePolygonWKT(row.Geometry)
		if err != nil {
			return nil, fmt.Errorf("row %d (cell %s): %w", i+1, row.Cell, err)
		}
		attributes := NewDict[string, float64](len(records[i]))
		for name, value := range records[i] {
			if name == "cell" || name == "geometry" || value == "" {
				continue
			}
			num, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}
			attributes[name] = num
		}
		attributes[attr.LAT] = row.Lat
		attributes[attr.LNG] = row.Lng
		attributes[attr.VALUE_WINTERING] = row.ValueWintering
		attributes[attr.VALUE_BREEDING] = row.ValueBreeding

		cells.Add(structs.Cell{
			ID:         structs.CellID(row.Cell),
			Geometry:   geom,
			Attributes: attributes,
		})
	}
	return cells, nil
}

// Parses a WKT polygon, a multipolygon is accepted if it has exactly one part.
func ParsePolygonWKT(text string) (orb.Polygon, error) {
	geom, err := wkt.Unmarshal(text)
	if err != nil {
		return nil, fmt.Errorf("parse geometry: %w", err)
	}
	switch g := geom.(type) {
	case orb.Polygon:
		return g, nil
	case orb.MultiPolygon:
		if len(g) == 1 {
			return g[0], nil
		}
		return nil, fmt.Errorf("multipolygon with %d parts", len(g))
	default:
		return nil, fmt.Errorf("unsupported geometry type %s", geom.GeoJSONType())
	}
}
