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

// Package staticrenderer draws chart descriptors to static PNG or SVG images
// with go-chart, for export and for contexts without a JavaScript charting
// library.  Maps are not supported.
package staticrenderer

import (
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/insightsengine/insights/server/go/category"
	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	"github.com/insightsengine/insights/server/go/color"
	continuousaxis "github.com/insightsengine/insights/server/go/continuous_axis"
	"github.com/insightsengine/insights/server/go/renderer"
)

// Format is an image format.
type Format string

// Supported image formats.
const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ErrNoData is returned when a descriptor has no rows to draw.
var ErrNoData = errors.New("chart has no data")

// ParseFormat returns the Format named by s, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case PNG, SVG:
		return f, nil
	}
	return "", errors.Errorf("unsupported image format %q", s)
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// Image dimensions, in pixels.
const (
	width  = 800
	height = 400
)

// areaAlpha is the opacity of the fill beneath area lines, 0x33 of 0xff.
const areaAlpha = 0x33

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Render draws desc to w in the specified format.
func Render(desc *chartdata.ChartDescriptor, format Format, w io.Writer) error {
	if _, err := ParseFormat(string(format)); err != nil {
		return err
	}
	var (
		r   renderable
		err error
	)
	switch desc.Type {
	case chartdata.BarChart:
		r, err = bar(desc)
	case chartdata.WaterfallChart:
		r, err = waterfall(desc)
	case chartdata.LineChart:
		r, err = line(desc)
	default:
		return renderer.Unsupported("static", desc)
	}
	if err != nil {
		return errors.Wrapf(err, "chart %q", desc.ID)
	}
	if err := r.Render(format.provider(), w); err != nil {
		return errors.Wrapf(err, "failed to draw chart %q", desc.ID)
	}
	return nil
}

// hexColor converts an HTML hex color into a drawing color.
func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func valueFormatter(axis continuousaxis.Axis) chart.ValueFormatter {
	return func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return ""
		}
		return axis.Format(f)
	}
}

// yAxis returns the value axis for desc, drawn over values.
func yAxis(desc *chartdata.ChartDescriptor, values []float64) chart.YAxis {
	axis := continuousaxis.FromDescriptor(desc)
	ret := chart.YAxis{
		ValueFormatter: valueFormatter(axis),
	}
	if axis.HasMax() {
		ret.Range = &chart.ContinuousRange{Min: 0, Max: *axis.Max}
	} else {
		ret.Range = flatRange(values)
	}
	return ret
}

// flatRange returns an explicit range for values that span no range, which
// go-chart refuses to draw, or nil if values span a range.  All-zero values
// take the fallback domain; any other flat value is drawn against zero.
func flatRange(values []float64) *chart.ContinuousRange {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo != hi {
		return nil
	}
	domain := continuousaxis.NewDomain(values...)
	if domain.Min == domain.Max {
		domain = continuousaxis.Domain{
			Min: math.Min(0, domain.Min),
			Max: math.Max(0, domain.Max),
		}
	}
	return &chart.ContinuousRange{Min: domain.Min, Max: domain.Max}
}

func barValues(bars []chart.Value) []float64 {
	ret := make([]float64, len(bars))
	for idx, b := range bars {
		ret[idx] = b.Value
	}
	return ret
}

func bar(desc *chartdata.ChartDescriptor) (renderable, error) {
	grouped := category.Extract(desc, renderer.DefaultSeriesName)
	if len(grouped.Categories) == 0 {
		return nil, ErrNoData
	}
	labels := category.Labels(grouped.Categories)
	if desc.Stacked {
		bars := make([]chart.StackedBar, len(labels))
		for cIdx, label := range labels {
			bars[cIdx] = chart.StackedBar{Name: label}
			for sIdx := range grouped.Series {
				bars[cIdx].Values = append(bars[cIdx].Values, chart.Value{
					Label: grouped.Series[sIdx].Name,
					Value: grouped.Values[sIdx][cIdx],
					Style: chart.Style{
						FillColor:   hexColor(color.DefaultPalette.At(sIdx)),
						StrokeColor: hexColor(color.DefaultPalette.At(sIdx)),
					},
				})
			}
		}
		return &chart.StackedBarChart{
			Title:  desc.Title,
			Width:  width,
			Height: height,
			Bars:   bars,
		}, nil
	}
	// Unstacked series are drawn side by side within each category.
	multi := len(grouped.Series) > 1
	bars := []chart.Value{}
	for cIdx, label := range labels {
		for sIdx, s := range grouped.Series {
			barLabel := label
			if multi {
				barLabel = label + " / " + s.Name
			}
			bars = append(bars, chart.Value{
				Label: barLabel,
				Value: grouped.Values[sIdx][cIdx],
				Style: chart.Style{
					FillColor:   hexColor(color.DefaultPalette.At(sIdx)),
					StrokeColor: hexColor(color.DefaultPalette.At(sIdx)),
				},
			})
		}
	}
	return barChart(desc, bars), nil
}

func barChart(desc *chartdata.ChartDescriptor, bars []chart.Value) *chart.BarChart {
	return &chart.BarChart{
		Title:  desc.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{
				Top: 40,
			},
		},
		YAxis: yAxis(desc, barValues(bars)),
		// Bars grow up or down from zero, so negative values stay legible.
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}
}

// waterfall draws each row as its own bar, in row order, with its raw value.
func waterfall(desc *chartdata.ChartDescriptor) (renderable, error) {
	if len(desc.Data) == 0 {
		return nil, ErrNoData
	}
	bars := make([]chart.Value, len(desc.Data))
	for idx, row := range desc.Data {
		bars[idx] = chart.Value{
			Label: row.Get(desc.XAxisField).Label(),
			Value: row.Get(desc.YAxisField).Float(),
			Style: chart.Style{
				FillColor:   hexColor(color.DefaultPalette.At(0)),
				StrokeColor: hexColor(color.DefaultPalette.At(0)),
			},
		}
	}
	return barChart(desc, bars), nil
}

func line(desc *chartdata.ChartDescriptor) (renderable, error) {
	grouped := category.Extract(desc, renderer.DefaultSeriesName)
	if len(grouped.Categories) == 0 {
		return nil, ErrNoData
	}
	labels := category.Labels(grouped.Categories)
	xValues := make([]float64, len(labels))
	ticks := make([]chart.Tick, len(labels))
	for idx, label := range labels {
		xValues[idx] = float64(idx)
		ticks[idx] = chart.Tick{Value: float64(idx), Label: label}
	}
	graph := &chart.Chart{
		Title:  desc.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{
				Top:  40,
				Left: 20,
			},
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
	}
	if len(xValues) == 1 {
		// A single category spans no x range.
		graph.XAxis.Range = &chart.ContinuousRange{Min: -0.5, Max: 0.5}
	}
	yValues := []float64{}
	for sIdx, s := range grouped.Series {
		style := chart.Style{
			StrokeColor: hexColor(color.DefaultPalette.At(sIdx)),
			StrokeWidth: 2,
		}
		if desc.AreaStyle {
			style.FillColor = hexColor(color.DefaultPalette.At(sIdx)).WithAlpha(areaAlpha)
		}
		yValues = append(yValues, grouped.Values[sIdx]...)
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xValues,
			YValues: grouped.Values[sIdx],
			Style:   style,
		})
	}
	if markLine := continuousaxis.FromDescriptor(desc).MarkLine; markLine != nil {
		ys := make([]float64, len(xValues))
		for idx := range ys {
			ys[idx] = *markLine
		}
		yValues = append(yValues, ys...)
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    "Target",
			XValues: xValues,
			YValues: ys,
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("64748b"),
				StrokeDashArray: []float64{5, 5},
			},
		})
	}
	graph.YAxis = yAxis(desc, yValues)
	if len(grouped.Series) > 1 {
		graph.Elements = []chart.Renderable{chart.Legend(graph)}
	}
	return graph, nil
}
