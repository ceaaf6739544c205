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
	"github.com/insightsengine/insights/server/go/category"
	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	continuousaxis "github.com/insightsengine/insights/server/go/continuous_axis"
	"github.com/insightsengine/insights/server/go/renderer"
)

const (
	smoothTension = 0.4
	stackID       = "total"
)

func categoryOptions(desc *chartdata.ChartDescriptor, showLegend bool, withMax bool) *Options {
	axis := continuousaxis.FromDescriptor(desc)
	y := &LinearScale{
		BeginAtZero: true,
		Ticks: Ticks{
			LabelTemplate: axis.LabelTemplate(),
		},
	}
	if withMax && axis.HasMax() {
		y.Max = floatPtr(*axis.Max)
	}
	ret := &Options{
		Responsive: true,
		Scales: Scales{
			Y: y,
		},
		Plugins: Plugins{
			Legend: Legend{
				Display: showLegend,
			},
			Tooltip: Tooltip{
				Unit: axis.Unit,
			},
		},
	}
	if showLegend {
		ret.Plugins.Legend.Position = "top"
	}
	return ret
}

func (r *Renderer) bar(desc *chartdata.ChartDescriptor) *Config {
	grouped := category.Extract(desc, renderer.DefaultSeriesName)
	datasets := make([]*Dataset, len(grouped.Series))
	for idx, s := range grouped.Series {
		ds := &Dataset{
			Label:           s.Name,
			Data:            grouped.Values[idx],
			BackgroundColor: r.palette.At(idx),
		}
		if desc.Stacked {
			ds.Stack = stackID
		}
		datasets[idx] = ds
	}
	return &Config{
		Type: barType,
		Data: &CategoryData{
			Labels:   category.Labels(grouped.Categories),
			Datasets: datasets,
		},
		Options:   categoryOptions(desc, len(datasets) > 1, true),
		chartType: desc.Type,
	}
}

func (r *Renderer) line(desc *chartdata.ChartDescriptor) *Config {
	grouped := category.Extract(desc, renderer.DefaultSeriesName)
	tension := 0.0
	if desc.Smooth {
		tension = smoothTension
	}
	datasets := make([]*Dataset, len(grouped.Series))
	for idx, s := range grouped.Series {
		datasets[idx] = &Dataset{
			Label:           s.Name,
			Data:            grouped.Values[idx],
			BorderColor:     r.palette.At(idx),
			BackgroundColor: r.palette.Translucent(idx),
			Fill:            boolPtr(desc.AreaStyle),
			Tension:         floatPtr(tension),
		}
	}
	return &Config{
		Type: lineType,
		Data: &CategoryData{
			Labels:   category.Labels(grouped.Categories),
			Datasets: datasets,
		},
		Options:   categoryOptions(desc, len(datasets) > 1, true),
		chartType: desc.Type,
	}
}

// waterfall renders each row as its own bar, in row order, with its raw
// value.  No running total is computed.
func (r *Renderer) waterfall(desc *chartdata.ChartDescriptor) *Config {
	labels := make([]string, len(desc.Data))
	values := make([]float64, len(desc.Data))
	for idx, row := range desc.Data {
		labels[idx] = row.Get(desc.XAxisField).Label()
		values[idx] = row.Get(desc.YAxisField).Float()
	}
	return &Config{
		Type: barType,
		Data: &CategoryData{
			Labels: labels,
			Datasets: []*Dataset{{
				Label:           renderer.DefaultSeriesName,
				Data:            values,
				BackgroundColor: r.palette.At(0),
			}},
		},
		Options:   categoryOptions(desc, false, false),
		chartType: desc.Type,
	}
}
