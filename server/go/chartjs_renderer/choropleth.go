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

package chartjsrenderer

import (
	"log/slog"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	continuousaxis "github.com/insightsengine/insights/server/go/continuous_axis"
	"github.com/insightsengine/insights/server/go/geo"
	"github.com/insightsengine/insights/server/go/renderer"
	"github.com/insightsengine/insights/server/go/util"
)

// LoadingMessage is shown in place of a map whose geography is not ready.
const LoadingMessage = "Loading map data..."

const projection = "albersUsa"

func placeholder(desc *chartdata.ChartDescriptor) *Config {
	return &Config{
		Type:      choroplethType,
		Loading:   true,
		Message:   LoadingMessage,
		chartType: desc.Type,
	}
}

// regionValues maps region names to their values.  Rows without a name, or
// lacking the value field, are skipped; a later row for the same region
// replaces an earlier one.
func regionValues(desc *chartdata.ChartDescriptor) map[string]float64 {
	ret := map[string]float64{}
	if desc.NameField == "" || desc.ValueField == "" {
		return ret
	}
	for _, row := range desc.Data {
		name := row.Get(desc.NameField)
		if name.T != util.StringValueType || name.Label() == "" {
			continue
		}
		if _, ok := row[desc.ValueField]; !ok {
			continue
		}
		ret[name.Label()] = row.Get(desc.ValueField).Float()
	}
	return ret
}

func (r *Renderer) choropleth(desc *chartdata.ChartDescriptor) *Config {
	feats, ok := r.geos.Lookup(desc.MapType)
	if !ok || len(feats) == 0 {
		r.logger.Debug("geography not ready",
			slog.String("chart_id", desc.ID),
			slog.String("map_type", desc.MapType))
		return placeholder(desc)
	}
	values := regionValues(desc)
	data := make([]*RegionValue, len(feats))
	for idx, f := range feats {
		data[idx] = &RegionValue{
			Feature: f,
			Value:   values[geo.FeatureName(f)],
		}
	}
	domain := continuousaxis.ValueDomain(desc.Data, desc.ValueField)
	return &Config{
		Type: choroplethType,
		Data: &ChoroplethData{
			Datasets: []*ChoroplethDataset{{
				Label:   renderer.DefaultSeriesName,
				Outline: feats,
				Data:    data,
			}},
		},
		Options: &Options{
			Responsive:    true,
			ShowOutline:   boolPtr(true),
			ShowGraticule: boolPtr(false),
			Scales: Scales{
				XY: &ProjectionScale{
					Projection: projection,
				},
				Color: &ColorScale{
					Min:    domain.Min,
					Max:    domain.Max,
					Colors: r.space.Colors(),
				},
			},
		},
		chartType: desc.Type,
	}
}
