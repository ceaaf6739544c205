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

// Package echartsrenderer renders chart descriptors into Apache ECharts
// options, built with go-echarts.
//
// Each rendered Option exposes the extracted categories, series, and (for
// maps) value domain alongside the underlying go-echarts chart, which it
// marshals to the ECharts option JSON:
//
//	r := echartsrenderer.New()
//	opt, err := r.Render(ctx, desc)
//	...
//	b, err := json.Marshal(opt)
package echartsrenderer

import (
	"context"
	"encoding/json"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	"github.com/insightsengine/insights/server/go/color"
	continuousaxis "github.com/insightsengine/insights/server/go/continuous_axis"
	"github.com/insightsengine/insights/server/go/renderer"
)

// Name is the name of the ECharts renderer.
const Name = "echarts"

const (
	stackID     = "total"
	areaOpacity = 0.3
)

// Series is a single rendered series.
type Series struct {
	Name   string
	Color  string
	Values []float64
}

// MapPoint is a single choropleth region value.
type MapPoint struct {
	Name  string
	Value float64
}

// chart is implemented by go-echarts charts.
type chart interface {
	Validate()
	JSON() map[string]interface{}
}

// Option is a rendered ECharts option.
type Option struct {
	Type       chartdata.ChartType
	Categories []string
	Series     []Series
	ShowLegend bool
	// Domain and MapPoints are populated only for maps.
	Domain    *continuousaxis.Domain
	MapPoints []MapPoint

	chart chart
}

// ChartType returns the type of the rendered chart.
func (o *Option) ChartType() chartdata.ChartType {
	return o.Type
}

// MarshalJSON marshals the receiver as an ECharts option object.
func (o *Option) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.chart.JSON())
}

// Renderer renders ECharts options.
type Renderer struct {
	palette color.Palette
	space   *color.Space
}

// New returns a new ECharts Renderer using the default palette and map
// color space.
func New() *Renderer {
	return &Renderer{
		palette: color.DefaultPalette,
		space:   color.MapSpace,
	}
}

// Name returns the renderer's name.
func (r *Renderer) Name() string {
	return Name
}

// Render renders desc into an ECharts option.
func (r *Renderer) Render(ctx context.Context, desc *chartdata.ChartDescriptor) (renderer.Option, error) {
	var opt *Option
	switch desc.Type {
	case chartdata.BarChart:
		opt = r.bar(desc)
	case chartdata.LineChart:
		opt = r.line(desc)
	case chartdata.MapChart:
		opt = r.choropleth(desc)
	case chartdata.WaterfallChart:
		opt = r.waterfall(desc)
	default:
		return nil, renderer.Unsupported(Name, desc)
	}
	opt.chart.Validate()
	return opt, nil
}

func (r *Renderer) globalOpts(desc *chartdata.ChartDescriptor, showLegend bool) []charts.GlobalOpts {
	axis := continuousaxis.FromDescriptor(desc)
	yAxis := opts.YAxis{
		Type: "value",
		AxisLabel: &opts.AxisLabel{
			Formatter: types.FuncStr(axis.LabelTemplate()),
		},
	}
	if axis.HasMax() {
		yAxis.Max = *axis.Max
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: desc.Title}),
		r.colorOpts(),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(showLegend)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(yAxis),
	}
}

// colorOpts replaces the chart's root color list with the renderer's
// palette, so implicitly colored elements cycle through the same colors as
// the series.  WithColorsOpts would only prepend to the go-echarts defaults.
func (r *Renderer) colorOpts() charts.GlobalOpts {
	return func(bc *charts.BaseConfiguration) {
		bc.Colors = append([]string(nil), r.palette...)
	}
}

// markLineOpts returns the series options adding desc's reference line, if
// it has one.
func markLineOpts(desc *chartdata.ChartDescriptor) []charts.SeriesOpts {
	axis := continuousaxis.FromDescriptor(desc)
	if !axis.HasMarkLine() {
		return nil
	}
	return []charts.SeriesOpts{
		charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
			Name:  axis.Format(*axis.MarkLine),
			YAxis: *axis.MarkLine,
		}),
	}
}
