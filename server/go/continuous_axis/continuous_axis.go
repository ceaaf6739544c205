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

// Package continuousaxis provides helpers for numeric value axes and value
// domains.  An Axis carries the presentation hints a descriptor may set on
// its y axis: a unit suffix, an optional fixed maximum, and an optional
// horizontal reference line.  A Domain is the [min, max] range of a set of
// values, used to scale choropleth colors.
package continuousaxis

import (
	"math"
	"strings"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	"github.com/insightsengine/insights/server/go/util"
)

// valuePlaceholder is the token charting libraries replace with the tick
// value in a label template.
const valuePlaceholder = "{value}"

// Axis describes a numeric value axis.
type Axis struct {
	Unit     string
	Max      *float64
	MarkLine *float64
}

// FromDescriptor returns the value axis described by desc.
func FromDescriptor(desc *chartdata.ChartDescriptor) Axis {
	return Axis{
		Unit:     desc.YAxisUnit,
		Max:      desc.YAxisMax,
		MarkLine: desc.MarkLine,
	}
}

// LabelTemplate returns the tick label template for the axis, such as
// "{value}%".
func (a Axis) LabelTemplate() string {
	return valuePlaceholder + a.Unit
}

// Format renders a tick value with the axis unit, as LabelTemplate would.
func (a Axis) Format(v float64) string {
	return strings.Replace(a.LabelTemplate(), valuePlaceholder, util.FormatNumber(v), 1)
}

// HasMax returns true if the axis has a fixed maximum.
func (a Axis) HasMax() bool {
	return a.Max != nil
}

// HasMarkLine returns true if the axis has a reference line.
func (a Axis) HasMarkLine() bool {
	return a.MarkLine != nil
}

// Domain is a closed numeric range.
type Domain struct {
	Min, Max float64
}

// FallbackDomain is used when a set of values is empty or all zero, where a
// computed domain would be zero-width.
var FallbackDomain = Domain{Min: 0, Max: 100}

// NewDomain returns the domain spanning the provided values.  If there are
// no values, or every value is zero, FallbackDomain is returned instead.
func NewDomain(values ...float64) Domain {
	allZero := true
	for _, v := range values {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return FallbackDomain
	}
	ret := Domain{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range values {
		ret.Min = math.Min(ret.Min, v)
		ret.Max = math.Max(ret.Max, v)
	}
	return ret
}

// ValueDomain returns the domain of the non-null numeric values of field in
// rows, per NewDomain.  Null and string values are skipped.
func ValueDomain(rows []chartdata.Row, field string) Domain {
	values := []float64{}
	for _, row := range rows {
		v := row.Get(field)
		if v.T != util.NumberValueType {
			continue
		}
		values = append(values, v.Float())
	}
	return NewDomain(values...)
}
