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

package echartsrenderer

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	continuousaxis "github.com/insightsengine/insights/server/go/continuous_axis"
)

// choropleth renders a map descriptor.  Region values are colored over the
// renderer's color space, scaled to the domain of the rows' values.
func (r *Renderer) choropleth(desc *chartdata.ChartDescriptor) *Option {
	domain := continuousaxis.ValueDomain(desc.Data, desc.ValueField)
	points := make([]MapPoint, len(desc.Data))
	data := make([]opts.MapData, len(desc.Data))
	for idx, row := range desc.Data {
		points[idx] = MapPoint{
			Name:  row.Get(desc.NameField).Label(),
			Value: row.Get(desc.ValueField).Float(),
		}
		data[idx] = opts.MapData{
			Name:  points[idx].Name,
			Value: points[idx].Value,
		}
	}
	m := charts.NewMap()
	m.RegisterMapType(desc.MapType)
	m.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: desc.Title}),
		r.colorOpts(),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(domain.Min),
			Max:        float32(domain.Max),
			InRange: &opts.VisualMapInRange{
				Color: r.space.Colors(),
			},
		}),
	)
	m.AddSeries(desc.Title, data)
	return &Option{
		Type:      desc.Type,
		Domain:    &domain,
		MapPoints: points,
		chart:     m,
	}
}
