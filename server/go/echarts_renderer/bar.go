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

	"github.com/insightsengine/insights/server/go/category"
	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	"github.com/insightsengine/insights/server/go/renderer"
)

// series extracts the colored series of desc.
func (r *Renderer) series(desc *chartdata.ChartDescriptor) ([]string, []Series) {
	grouped := category.Extract(desc, renderer.DefaultSeriesName)
	ret := make([]Series, len(grouped.Series))
	for idx, s := range grouped.Series {
		ret[idx] = Series{
			Name:   s.Name,
			Color:  r.palette.At(idx),
			Values: grouped.Values[idx],
		}
	}
	return category.Labels(grouped.Categories), ret
}

func barData(values []float64) []opts.BarData {
	ret := make([]opts.BarData, len(values))
	for idx, v := range values {
		ret[idx] = opts.BarData{Value: v}
	}
	return ret
}

func (r *Renderer) bar(desc *chartdata.ChartDescriptor) *Option {
	cats, series := r.series(desc)
	showLegend := len(series) > 1
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalOpts(desc, showLegend)...)
	bar.SetXAxis(cats)
	for idx, s := range series {
		seriesOpts := []charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		}
		if desc.Stacked {
			seriesOpts = append(seriesOpts, charts.WithBarChartOpts(opts.BarChart{Stack: stackID}))
		}
		if idx == 0 {
			seriesOpts = append(seriesOpts, markLineOpts(desc)...)
		}
		bar.AddSeries(s.Name, barData(s.Values), seriesOpts...)
	}
	return &Option{
		Type:       desc.Type,
		Categories: cats,
		Series:     series,
		ShowLegend: showLegend,
		chart:      bar,
	}
}

// waterfall renders each row as its own bar, in row order, with its raw
// value.  No running total is computed.
func (r *Renderer) waterfall(desc *chartdata.ChartDescriptor) *Option {
	cats := make([]string, len(desc.Data))
	values := make([]float64, len(desc.Data))
	for idx, row := range desc.Data {
		cats[idx] = row.Get(desc.XAxisField).Label()
		values[idx] = row.Get(desc.YAxisField).Float()
	}
	series := []Series{{
		Name:   renderer.DefaultSeriesName,
		Color:  r.palette.At(0),
		Values: values,
	}}
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalOpts(desc, false)...)
	bar.SetXAxis(cats)
	bar.AddSeries(series[0].Name, barData(values),
		append([]charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Color: series[0].Color}),
		}, markLineOpts(desc)...)...,
	)
	return &Option{
		Type:       desc.Type,
		Categories: cats,
		Series:     series,
		chart:      bar,
	}
}
