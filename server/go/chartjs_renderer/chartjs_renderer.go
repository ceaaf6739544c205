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

// Package chartjsrenderer renders chart descriptors into Chart.js chart
// configurations.  Maps render as chartjs-chart-geo choropleths over
// geographies supplied by a Geographies implementation; until a map's
// geography is ready, a placeholder configuration is rendered instead.
package chartjsrenderer

import (
	"context"
	"log/slog"

	"github.com/paulmach/orb/geojson"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	"github.com/insightsengine/insights/server/go/color"
	"github.com/insightsengine/insights/server/go/renderer"
)

// Name is the name of the Chart.js renderer.
const Name = "chartjs"

// Geographies supplies region boundaries by map type.  Lookup must not
// block: it reports false until the geography is ready.
type Geographies interface {
	Lookup(mapType string) ([]*geojson.Feature, bool)
}

// Renderer renders Chart.js configurations.
type Renderer struct {
	geos    Geographies
	palette color.Palette
	space   *color.Space
	logger  *slog.Logger
}

// New returns a new Chart.js Renderer drawing maps over the provided
// geographies.
func New(geos Geographies) *Renderer {
	return &Renderer{
		geos:    geos,
		palette: color.DefaultPalette,
		space:   color.MapSpace,
		logger:  slog.Default().With(slog.String("module", "chartjs_renderer")),
	}
}

// Name returns the renderer's name.
func (r *Renderer) Name() string {
	return Name
}

// Render renders desc into a Chart.js configuration.
func (r *Renderer) Render(ctx context.Context, desc *chartdata.ChartDescriptor) (renderer.Option, error) {
	switch desc.Type {
	case chartdata.BarChart:
		return r.bar(desc), nil
	case chartdata.LineChart:
		return r.line(desc), nil
	case chartdata.MapChart:
		return r.choropleth(desc), nil
	case chartdata.WaterfallChart:
		return r.waterfall(desc), nil
	default:
		return nil, renderer.Unsupported(Name, desc)
	}
}
