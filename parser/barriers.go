package parser

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/KimGeorgy/bird-migration/geo"
	"github.com/KimGeorgy/bird-migration/structs"
	. "github.com/KimGeorgy/bird-migration/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"golang.org/x/exp/slog"
)

//*******************************************
// inline barriers
//*******************************************

// Builds barrier polygons from display-ordered rings.
func BuildBarriers(defs []BarrierDef) ([]structs.Barrier, error) {
	barriers := NewList[structs.Barrier](len(defs))
	for i, def := range defs {
		name := def.Name
		if name == "" {
			name = fmt.Sprintf("barrier-%d", i+1)
		}
		polygon := geo.PolygonFromLatLon(def.Ring)
		if err := geo.ValidatePolygon(polygon); err != nil {
			return nil, fmt.Errorf("barrier %s: %w", name, err)
		}
		barriers.Add(structs.Barrier{Name: name, Geometry: polygon})
	}
	return barriers, nil
}

//*******************************************
// osm barriers
//*******************************************

type _BarrierWay struct {
	name  string
	nodes []int64
}

// Loads every closed way tagged with barrier=* from an .osm or .osm.pbf file.
func LoadBarriersOSM(ctx context.Context, file string) ([]structs.Barrier, error) {
	var barriers []structs.Barrier
	var err error
	if strings.HasSuffix(file, ".pbf") {
		barriers, err = _LoadBarriersPBF(ctx, file)
	} else {
		barriers, err = _LoadBarriersXML(file)
	}
	if err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("loaded %v barriers from %s", len(barriers), file))
	return barriers, nil
}

func _LoadBarriersXML(file string) ([]structs.Barrier, error) {
	reader, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return ParseBarriersXML(reader)
}

// Decodes barriers from OSM XML.
func ParseBarriersXML(reader io.Reader) ([]structs.Barrier, error) {
	data := osm.OSM{}
	if err := xml.NewDecoder(reader).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode osm xml: %w", err)
	}
	ways := NewList[_BarrierWay](10)
	for _, way := range data.Ways {
		if bw, ok := _ToBarrierWay(way); ok {
			ways.Add(bw)
		}
	}
	coords := NewDict[int64, geo.Coord](len(data.Nodes))
	for _, node := range data.Nodes {
		coords[int64(node.ID)] = geo.NewCoord(node.Lon, node.Lat)
	}
	return _BuildBarrierPolygons(ways, coords), nil
}

func _LoadBarriersPBF(ctx context.Context, file string) ([]structs.Barrier, error) {
	ways := NewList[_BarrierWay](10)
	needed := NewSet[int64](100)

	reader, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	scanner := osmpbf.New(ctx, reader, runtime.GOMAXPROCS(-1))
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			bw, ok := _ToBarrierWay(object)
			if !ok {
				continue
			}
			ways.Add(bw)
			for _, id := range bw.nodes {
				needed.Add(id)
			}
		default:
			continue
		}
	}
	err = scanner.Err()
	scanner.Close()
	if err != nil {
		return nil, fmt.Errorf("scan ways: %w", err)
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	coords := NewDict[int64, geo.Coord](needed.Length())
	scanner = osmpbf.New(ctx, reader, runtime.GOMAXPROCS(-1))
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			id := object.FeatureID().Ref()
			if !needed.Contains(id) {
				continue
			}
			coords[id] = geo.NewCoord(object.Lon, object.Lat)
		default:
			continue
		}
	}
	err = scanner.Err()
	scanner.Close()
	if err != nil {
		return nil, fmt.Errorf("scan nodes: %w", err)
	}
	return _BuildBarrierPolygons(ways, coords), nil
}

//*******************************************
// utility methods
//*******************************************

func _ToBarrierWay(way *osm.Way) (_BarrierWay, bool) {
	tags := Dict[string, string](way.TagMap())
	if !tags.ContainsKey("barrier") {
		return _BarrierWay{}, false
	}
	refs := way.Nodes.NodeIDs()
	if len(refs) < 4 || refs[0] != refs[len(refs)-1] {
		return _BarrierWay{}, false
	}
	name := tags.Get("name")
	if name == "" {
		name = fmt.Sprintf("way/%d", way.ID)
	}
	nodes := make([]int64, len(refs))
	for i, ref := range refs {
		nodes[i] = int64(ref)
	}
	return _BarrierWay{name: name, nodes: nodes}, true
}

func _BuildBarrierPolygons(ways List[_BarrierWay], coords Dict[int64, geo.Coord]) []structs.Barrier {
	barriers := NewList[structs.Barrier](ways.Length())
	for _, way := range ways {
		ring := make(orb.Ring, 0, len(way.nodes))
		missing := false
		for _, id := range way.nodes {
			coord, ok := coords[id]
			if !ok {
				missing = true
				break
			}
			ring = append(ring, coord)
		}
		if missing {
			slog.Warn(fmt.Sprintf("barrier %s references missing nodes, skipped", way.name))
			continue
		}
		polygon := orb.Polygon{ring}
		if err := geo.ValidatePolygon(polygon); err != nil {
			slog.Warn(fmt.Sprintf("barrier %s skipped: %v", way.name, err))
			continue
		}
		barriers.Add(structs.Barrier{Name: way.name, Geometry: polygon})
	}
	return barriers
}
