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
	"github.com/paulmach/orb/geojson"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
)

// Chart.js chart types.
const (
	barType        = "bar"
	lineType       = "line"
	choroplethType = "choropleth"
)

// Config is a Chart.js chart configuration.
type Config struct {
	Type string `json:"type"`
	// Data is a *CategoryData for bar and line charts, or a *ChoroplethData
	// for maps.  It is nil in placeholder configurations.
	Data    any      `json:"data,omitempty"`
	Options *Options `json:"options,omitempty"`
	// Loading and Message are set in placeholder configurations.
	Loading bool   `json:"loading,omitempty"`
	Message string `json:"message,omitempty"`

	chartType chartdata.ChartType
}

// ChartType returns the type of the rendered chart.
func (c *Config) ChartType() chartdata.ChartType {
	return c.chartType
}

// CategoryData is the data of a category-axis chart.
type CategoryData struct {
	Labels   []string   `json:"labels"`
	Datasets []*Dataset `json:"datasets"`
}

// Dataset is one bar or line series.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	Stack           string    `json:"stack,omitempty"`
	// Line-only.
	Fill    *bool    `json:"fill,omitempty"`
	Tension *float64 `json:"tension,omitempty"`
}

// ChoroplethData is the data of a choropleth.
type ChoroplethData struct {
	Datasets []*ChoroplethDataset `json:"datasets"`
}

// ChoroplethDataset colors a set of regions.
type ChoroplethDataset struct {
	Label   string             `json:"label"`
	Outline []*geojson.Feature `json:"outline"`
	Data    []*RegionValue     `json:"data"`
}

// RegionValue is the value of one region.
type RegionValue struct {
	Feature *geojson.Feature `json:"feature"`
	Value   float64          `json:"value"`
}

// Options holds chart options.
type Options struct {
	Responsive          bool    `json:"responsive"`
	MaintainAspectRatio bool    `json:"maintainAspectRatio"`
	ShowOutline         *bool   `json:"showOutline,omitempty"`
	ShowGraticule       *bool   `json:"showGraticule,omitempty"`
	Scales              Scales  `json:"scales"`
	Plugins             Plugins `json:"plugins"`
}

// Scales holds the chart's scales.
type Scales struct {
	Y     *LinearScale     `json:"y,omitempty"`
	XY    *ProjectionScale `json:"xy,omitempty"`
	Color *ColorScale      `json:"color,omitempty"`
}

// LinearScale is a numeric value scale.
type LinearScale struct {
	BeginAtZero bool     `json:"beginAtZero"`
	Max         *float64 `json:"max,omitempty"`
	Ticks       Ticks    `json:"ticks"`
}

// Ticks configures scale tick labels.  LabelTemplate is a label with a
// "{value}" placeholder, such as "{value}%".
type Ticks struct {
	LabelTemplate string `json:"labelTemplate"`
}

// ProjectionScale is a chartjs-chart-geo projection scale.
type ProjectionScale struct {
	Projection string `json:"projection"`
}

// ColorScale is a chartjs-chart-geo color scale over [Min, Max].
type ColorScale struct {
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
	Colors []string `json:"colors"`
}

// Plugins holds plugin options.
type Plugins struct {
	Legend  Legend  `json:"legend"`
	Tooltip Tooltip `json:"tooltip"`
}

// Legend configures the chart legend.
type Legend struct {
	Display  bool   `json:"display"`
	Position string `json:"position,omitempty"`
}

// Tooltip configures tooltips.  Unit is appended to tooltip values.
type Tooltip struct {
	Unit string `json:"unit,omitempty"`
}

func boolPtr(b bool) *bool {
	return &b
}

func floatPtr(f float64) *float64 {
	return &f
}
