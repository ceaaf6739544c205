/*
	Copyright 2023 Google Inc.
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

// Package category extracts the discrete x-axis categories and the data
// series from chart data rows.
//
// Categories are the distinct values of a row field, in first-occurrence
// order.  Series are the rows partitioned by the distinct values of a series
// field, again in first-occurrence order.  Values for a (category, series)
// pair are found by a linear equality scan; category counts in a dashboard
// chart are small.
package category

import (
	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	"github.com/insightsengine/insights/server/go/util"
)

// Categories returns the distinct values of field across rows, in order of
// first occurrence.  Rows lacking the field contribute a Null category.
func Categories(rows []chartdata.Row, field string) []util.V {
	ret := []util.V{}
	for _, row := range rows {
		v := row.Get(field)
		if !contains(ret, v) {
			ret = append(ret, v)
		}
	}
	return ret
}

// Labels returns the display labels of the provided categories.
func Labels(cats []util.V) []string {
	ret := make([]string, len(cats))
	for idx, cat := range cats {
		ret[idx] = cat.Label()
	}
	return ret
}

func contains(vals []util.V, v util.V) bool {
	for _, val := range vals {
		if val.Equal(v) {
			return true
		}
	}
	return false
}

// Series is a named subset of rows sharing one series-field value.
type Series struct {
	Name string
	Rows []chartdata.Row
}

// NullSeriesName names the series of rows holding no value for the series
// field.
const NullSeriesName = "null"

// GroupBy partitions rows by the label of their value for field.  Rows
// without a value are grouped under NullSeriesName.  Series are returned in
// order of first occurrence, and rows keep their relative order within a
// series.
func GroupBy(rows []chartdata.Row, field string) []*Series {
	ret := []*Series{}
	byName := map[string]*Series{}
	for _, row := range rows {
		v := row.Get(field)
		name := v.Label()
		if v.IsNull() {
			name = NullSeriesName
		}
		s, ok := byName[name]
		if !ok {
			s = &Series{Name: name}
			byName[name] = s
			ret = append(ret, s)
		}
		s.Rows = append(s.Rows, row)
	}
	return ret
}

// Lookup returns the yField value of the first row whose xField equals cat,
// or 0 if no row matches or the matching row holds no number.
func Lookup(rows []chartdata.Row, xField string, cat util.V, yField string) float64 {
	for _, row := range rows {
		if row.Get(xField).Equal(cat) {
			return row.Get(yField).Float()
		}
	}
	return 0
}

// Values returns one value per category, in category order, drawn from rows
// with Lookup.  The result always has exactly len(cats) entries.
func Values(rows []chartdata.Row, xField, yField string, cats []util.V) []float64 {
	ret := make([]float64, len(cats))
	for idx, cat := range cats {
		ret[idx] = Lookup(rows, xField, cat, yField)
	}
	return ret
}

// Grouped is the result of extracting categories and series from a chart
// descriptor.
type Grouped struct {
	Categories []util.V
	Series     []*Series
	// Values holds, per series, one value per category.
	Values [][]float64
}

// Extract returns the categories of desc and, per series, its values.  If
// desc has no series field, all rows form a single series with the provided
// default name.
func Extract(desc *chartdata.ChartDescriptor, defaultSeriesName string) *Grouped {
	cats := Categories(desc.Data, desc.XAxisField)
	var series []*Series
	if desc.SeriesField != "" {
		series = GroupBy(desc.Data, desc.SeriesField)
	} else {
		series = []*Series{{
			Name: defaultSeriesName,
			Rows: desc.Data,
		}}
	}
	values := make([][]float64, len(series))
	for idx, s := range series {
		values[idx] = Values(s.Rows, desc.XAxisField, desc.YAxisField, cats)
	}
	return &Grouped{
		Categories: cats,
		Series:     series,
		Values:     values,
	}
}
