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
)

func lineData(values []float64) []opts.LineData {
	ret := make([]opts.LineData, len(values))
	for idx, v := range values {
		ret[idx] = opts.LineData{Value: v}
	}
	return ret
}

func (r *Renderer) line(desc *chartdata.ChartDescriptor) *Option {
	cats, series := r.series(desc)
	showLegend := len(series) > 1
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalOpts(desc, showLegend)...)
	line.SetXAxis(cats)
	for idx, s := range series {
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(desc.Smooth)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color}),
		}
		if desc.AreaStyle {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{
				Color:   s.Color,
				Opacity: areaOpacity,
			}))
		}
		if idx == 0 {
			seriesOpts = append(seriesOpts, markLineOpts(desc)...)
		}
		line.AddSeries(s.Name, lineData(s.Values), seriesOpts...)
	}
	return &Option{
		Type:       desc.Type,
		Categories: cats,
		Series:     series,
		ShowLegend: showLegend,
		chart:      line,
	}
}
