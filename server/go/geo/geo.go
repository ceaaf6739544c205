/*
	Copyright 2025 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package geo decodes and loads the region boundaries drawn beneath
// choropleth charts.
//
// Boundary files may be GeoJSON (a FeatureCollection or a single Feature) or
// TopoJSON.  TopoJSON topologies are converted to GeoJSON features from a
// single named object, whose arcs are decoded (and, if the topology is
// quantized, delta-decoded and transformed) into orb geometries.
package geo

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

const (
	topologyType          = "Topology"
	featureCollectionType = "FeatureCollection"
	featureType           = "Feature"
	geometryCollection    = "GeometryCollection"
)

// Decode returns the features held in data.  If data is a TopoJSON
// topology, objectKey names the topology object to convert.
func Decode(data []byte, objectKey string) ([]*geojson.Feature, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errors.Wrap(err, "failed to decode geography")
	}
	switch head.Type {
	case topologyType:
		return decodeTopology(data, objectKey)
	case featureCollectionType:
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode feature collection")
		}
		return fc.Features, nil
	case featureType:
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode feature")
		}
		return []*geojson.Feature{f}, nil
	default:
		return nil, errors.Errorf("unsupported geography type %q", head.Type)
	}
}

// FeatureName returns the 'name' property of f, or "" if it has none.
func FeatureName(f *geojson.Feature) string {
	return f.Properties.MustString("name", "")
}

type transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

type topology struct {
	Transform *transform                 `json:"transform"`
	Arcs      [][][]float64              `json:"arcs"`
	Objects   map[string]json.RawMessage `json:"objects"`
}

type topoGeometry struct {
	Type        string          `json:"type"`
	ID          any             `json:"id"`
	Properties  map[string]any  `json:"properties"`
	Arcs        json.RawMessage `json:"arcs"`
	Coordinates json.RawMessage `json:"coordinates"`
	Geometries  []*topoGeometry `json:"geometries"`
}

func decodeTopology(data []byte, objectKey string) ([]*geojson.Feature, error) {
	var topo topology
	if err := json.Unmarshal(data, &topo); err != nil {
		return nil, errors.Wrap(err, "failed to decode topology")
	}
	raw, ok := topo.Objects[objectKey]
	if !ok {
		return nil, errors.Errorf("topology has no object %q", objectKey)
	}
	var obj topoGeometry
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, errors.Wrapf(err, "failed to decode topology object %q", objectKey)
	}
	d := &topoDecoder{
		arcs: topo.decodeArcs(),
		tf:   topo.Transform,
	}
	geoms := []*topoGeometry{&obj}
	if obj.Type == geometryCollection {
		geoms = obj.Geometries
	}
	ret := make([]*geojson.Feature, 0, len(geoms))
	for _, g := range geoms {
		f, err := d.feature(g)
		if err != nil {
			return nil, errors.Wrapf(err, "topology object %q", objectKey)
		}
		ret = append(ret, f)
	}
	return ret, nil
}

// decodeArcs returns the topology's arcs in absolute coordinates.
func (t *topology) decodeArcs() [][]orb.Point {
	ret := make([][]orb.Point, len(t.Arcs))
	for idx, arc := range t.Arcs {
		points := make([]orb.Point, 0, len(arc))
		var x, y float64
		for _, pos := range arc {
			if len(pos) < 2 {
				continue
			}
			if t.Transform == nil {
				points = append(points, orb.Point{pos[0], pos[1]})
				continue
			}
			x += pos[0]
			y += pos[1]
			points = append(points, t.Transform.apply(x, y))
		}
		ret[idx] = points
	}
	return ret
}

func (tf *transform) apply(x, y float64) orb.Point {
	return orb.Point{
		x*tf.Scale[0] + tf.Translate[0],
		y*tf.Scale[1] + tf.Translate[1],
	}
}

type topoDecoder struct {
	arcs [][]orb.Point
	tf   *transform
}

func (d *topoDecoder) point(pos []float64) (orb.Point, error) {
	if len(pos) < 2 {
		return orb.Point{}, errors.Errorf("position %v has fewer than two coordinates", pos)
	}
	if d.tf == nil {
		return orb.Point{pos[0], pos[1]}, nil
	}
	return d.tf.apply(pos[0], pos[1]), nil
}

// line stitches the referenced arcs into one sequence of points.  A negative
// index ^i references arc i reversed.  Consecutive arcs share an endpoint,
// which is kept only once.
func (d *topoDecoder) line(indices []int) ([]orb.Point, error) {
	ret := []orb.Point{}
	for _, idx := range indices {
		reversed := idx < 0
		if reversed {
			idx = ^idx
		}
		if idx >= len(d.arcs) {
			return nil, errors.Errorf("arc index %d out of range", idx)
		}
		arc := d.arcs[idx]
		if len(ret) > 0 {
			ret = ret[:len(ret)-1]
		}
		for pIdx := range arc {
			if reversed {
				ret = append(ret, arc[len(arc)-1-pIdx])
			} else {
				ret = append(ret, arc[pIdx])
			}
		}
	}
	return ret, nil
}

func (d *topoDecoder) ring(indices []int) (orb.Ring, error) {
	points, err := d.line(indices)
	if err != nil {
		return nil, err
	}
	// A ring needs at least four positions.
	for len(points) > 0 && len(points) < 4 {
		points = append(points, points[0])
	}
	return orb.Ring(points), nil
}

func (d *topoDecoder) polygon(rings [][]int) (orb.Polygon, error) {
	ret := make(orb.Polygon, 0, len(rings))
	for _, r := range rings {
		ring, err := d.ring(r)
		if err != nil {
			return nil, err
		}
		ret = append(ret, ring)
	}
	return ret, nil
}

func (d *topoDecoder) geometry(g *topoGeometry) (orb.Geometry, error) {
	switch g.Type {
	case "":
		return nil, nil
	case "Polygon":
		var rings [][]int
		if err := json.Unmarshal(g.Arcs, &rings); err != nil {
			return nil, errors.Wrap(err, "bad Polygon arcs")
		}
		return d.polygon(rings)
	case "MultiPolygon":
		var polys [][][]int
		if err := json.Unmarshal(g.Arcs, &polys); err != nil {
			return nil, errors.Wrap(err, "bad MultiPolygon arcs")
		}
		ret := make(orb.MultiPolygon, 0, len(polys))
		for _, p := range polys {
			poly, err := d.polygon(p)
			if err != nil {
				return nil, err
			}
			ret = append(ret, poly)
		}
		return ret, nil
	case "LineString":
		var indices []int
		if err := json.Unmarshal(g.Arcs, &indices); err != nil {
			return nil, errors.Wrap(err, "bad LineString arcs")
		}
		points, err := d.line(indices)
		if err != nil {
			return nil, err
		}
		return orb.LineString(points), nil
	case "MultiLineString":
		var lines [][]int
		if err := json.Unmarshal(g.Arcs, &lines); err != nil {
			return nil, errors.Wrap(err, "bad MultiLineString arcs")
		}
		ret := make(orb.MultiLineString, 0, len(lines))
		for _, l := range lines {
			points, err := d.line(l)
			if err != nil {
				return nil, err
			}
			ret = append(ret, orb.LineString(points))
		}
		return ret, nil
	case "Point":
		var pos []float64
		if err := json.Unmarshal(g.Coordinates, &pos); err != nil {
			return nil, errors.Wrap(err, "bad Point coordinates")
		}
		return d.point(pos)
	case "MultiPoint":
		var positions [][]float64
		if err := json.Unmarshal(g.Coordinates, &positions); err != nil {
			return nil, errors.Wrap(err, "bad MultiPoint coordinates")
		}
		ret := make(orb.MultiPoint, 0, len(positions))
		for _, pos := range positions {
			p, err := d.point(pos)
			if err != nil {
				return nil, err
			}
			ret = append(ret, p)
		}
		return ret, nil
	default:
		return nil, errors.Errorf("unsupported topology geometry type %q", g.Type)
	}
}

func (d *topoDecoder) feature(g *topoGeometry) (*geojson.Feature, error) {
	geom, err := d.geometry(g)
	if err != nil {
		return nil, err
	}
	f := geojson.NewFeature(geom)
	if g.ID != nil {
		f.ID = g.ID
	}
	for k, v := range g.Properties {
		f.Properties[k] = v
	}
	return f, nil
}
