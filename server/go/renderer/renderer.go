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

// Package renderer defines the capability shared by every chart renderer: a
// transformation from a ChartDescriptor into a charting library's option
// object.
package renderer

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
)

// ErrUnsupportedType is returned when a descriptor's chart type has no
// builder in a renderer.
var ErrUnsupportedType = errors.New("unsupported chart type")

// DefaultSeriesName names the single series of a chart without a series
// field.
const DefaultSeriesName = "Value"

// Option is a rendered, JSON-marshalable chart option.
type Option interface {
	ChartType() chartdata.ChartType
}

// Renderer transforms chart descriptors into options for one charting
// library.  Render is a pure function of its descriptor: rendering the same
// descriptor twice yields structurally equal options.
type Renderer interface {
	// Name returns the renderer's unique name, such as "echarts".
	Name() string
	// Render returns the option for desc, or an error wrapping
	// ErrUnsupportedType if desc's type is not supported.
	Render(ctx context.Context, desc *chartdata.ChartDescriptor) (Option, error)
}

// Unsupported returns an error wrapping ErrUnsupportedType for desc.
func Unsupported(rendererName string, desc *chartdata.ChartDescriptor) error {
	return errors.Wrapf(ErrUnsupportedType, "%s: chart %q has type %q", rendererName, desc.ID, desc.Type)
}

// Generic returns opt as a generic JSON value: maps, slices, strings,
// float64s, bools, and nils.
func Generic(opt Option) (any, error) {
	b, err := json.Marshal(opt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal option")
	}
	var ret any
	if err := json.Unmarshal(b, &ret); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal option")
	}
	return ret, nil
}
