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

// Package testutil provides fixtures and comparators facilitating testing of
// chart descriptors and rendered chart options.
package testutil

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	"github.com/insightsengine/insights/server/go/util"
)

// Ptr returns a pointer to f, for optional descriptor fields.
func Ptr(f float64) *float64 {
	return &f
}

// Value converts a Go literal into a util.V: strings become Strings, numeric
// types become Numbers, and anything else becomes Null.
func Value(v any) util.V {
	switch val := v.(type) {
	case string:
		return util.StringValue(val)
	case float64:
		return util.NumberValue(val)
	case int:
		return util.NumberValue(float64(val))
	default:
		return util.NullValue()
	}
}

// Row builds a data row from alternating field names and values.  A
// trailing name without a value is ignored.
func Row(kvs ...any) chartdata.Row {
	ret := chartdata.Row{}
	for idx := 0; idx+1 < len(kvs); idx += 2 {
		ret[fmt.Sprint(kvs[idx])] = Value(kvs[idx+1])
	}
	return ret
}

// GroupedBar returns a stacked bar descriptor with two series over three
// regions.  The Budget Target series has no West row.
func GroupedBar() *chartdata.ChartDescriptor {
	return &chartdata.ChartDescriptor{
		ID:          "revenue_components",
		Title:       "Revenue Components",
		Type:        chartdata.BarChart,
		XAxisField:  "region",
		YAxisField:  "value",
		SeriesField: "segment",
		YAxisUnit:   "M",
		Stacked:     true,
		Data: []chartdata.Row{
			Row("region", "Northeast", "segment", "Forecast", "value", 12.5),
			Row("region", "Northeast", "segment", "Budget Target", "value", 10),
			Row("region", "West", "segment", "Forecast", "value", 8),
			Row("region", "Southeast", "segment", "Budget Target", "value", 7),
			Row("region", "Southeast", "segment", "Forecast", "value", 6),
		},
	}
}

// SimpleLine returns an ungrouped, smoothed, area-filled line descriptor
// with an axis maximum and a reference line.
func SimpleLine() *chartdata.ChartDescriptor {
	return &chartdata.ChartDescriptor{
		ID:         "growth_trend",
		Title:      "Growth Trend",
		Type:       chartdata.LineChart,
		XAxisField: "month",
		YAxisField: "growth",
		YAxisUnit:  "%",
		YAxisMax:   Ptr(20),
		MarkLine:   Ptr(5),
		Smooth:     true,
		AreaStyle:  true,
		Data: []chartdata.Row{
			Row("month", "Jan", "growth", 3),
			Row("month", "Feb", "growth", 7.5),
			Row("month", "Mar"),
		},
	}
}

// StateMap returns a USA choropleth descriptor over two states.
func StateMap() *chartdata.ChartDescriptor {
	return &chartdata.ChartDescriptor{
		ID:         "revenue_map",
		Title:      "Revenue by State",
		Type:       chartdata.MapChart,
		MapType:    "USA",
		NameField:  "name",
		ValueField: "value",
		Data: []chartdata.Row{
			Row("name", "California", "value", 10),
			Row("name", "Texas", "value", 20),
		},
	}
}

// Waterfall returns a waterfall descriptor with a repeated step and a
// negative change.
func Waterfall() *chartdata.ChartDescriptor {
	return &chartdata.ChartDescriptor{
		ID:         "sales_bridge",
		Title:      "Sales Bridge",
		Type:       chartdata.WaterfallChart,
		XAxisField: "Step",
		YAxisField: "Change",
		Data: []chartdata.Row{
			Row("Step", "A", "Change", 9),
			Row("Step", "B", "Change", -4),
			Row("Step", "A", "Change", 2),
		},
	}
}

// ManySeriesBar returns an unstacked bar descriptor with n series over a
// single category, series i having value i.
func ManySeriesBar(n int) *chartdata.ChartDescriptor {
	desc := &chartdata.ChartDescriptor{
		ID:          "many_series",
		Title:       "Many series",
		Type:        chartdata.BarChart,
		XAxisField:  "quarter",
		YAxisField:  "value",
		SeriesField: "series",
		Data:        []chartdata.Row{},
	}
	for i := 0; i < n; i++ {
		desc.Data = append(desc.Data, Row("quarter", "Q1", "series", fmt.Sprintf("S%d", i), "value", i))
	}
	return desc
}

// Document returns a document holding every fixture descriptor, laid out
// in two workspace sections.  The second section references a missing
// chart.
func Document() *chartdata.Document {
	doc := &chartdata.Document{
		ChartConfigurations: map[string]*chartdata.ChartDescriptor{},
		KpiData:             chartdata.PlaceholderKpis,
	}
	for _, desc := range []*chartdata.ChartDescriptor{GroupedBar(), SimpleLine(), StateMap(), Waterfall()} {
		doc.ChartConfigurations[desc.ID] = desc
	}
	doc.PageLayouts.Workspace.Sections = []chartdata.PageSection{{
		Title:         "Revenue",
		InsightsCount: 2,
		Charts:        []string{"revenue_components", "growth_trend"},
	}, {
		Title:         "Geography",
		InsightsCount: 1,
		Charts:        []string{"revenue_map", "missing_chart", "sales_bridge"},
	}}
	doc.PageLayouts.Collections = chartdata.CollectionsLayout{
		Favorites: []string{"growth_trend"},
		Collections: []chartdata.Collection{{
			Title:    "Quarterly review",
			Chart:    "sales_bridge",
			NewCount: 3,
		}},
	}
	return doc
}

// Generic marshals v to JSON and back into a generic JSON value, failing the
// test on error.
func Generic(t *testing.T, v any) any {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal %T: %s", v, err)
	}
	var ret any
	if err := json.Unmarshal(b, &ret); err != nil {
		t.Fatalf("failed to unmarshal %s: %s", string(b), err)
	}
	return ret
}

// Path descends into a generic JSON value along the provided path of object
// keys (strings) and array indices (ints).  It returns nil if the path does
// not exist.
func Path(v any, path ...any) any {
	for _, step := range path {
		switch s := step.(type) {
		case string:
			m, ok := v.(map[string]any)
			if !ok {
				return nil
			}
			v = m[s]
		case int:
			a, ok := v.([]any)
			if !ok || s < 0 || s >= len(a) {
				return nil
			}
			v = a[s]
		default:
			return nil
		}
	}
	return v
}

// JSONComparator facilitates testing of marshaled options, ensuring that a
// 'got' value marshals to JSON equivalent to a 'want' JSON string.  Object
// key ordering and whitespace are ignored.
type JSONComparator struct {
	got  any
	want string
}

// NewJSONComparator returns a new, empty JSONComparator.
func NewJSONComparator() *JSONComparator {
	return &JSONComparator{}
}

// WithTestValue specifies the receiver's value-under-test.
func (jc *JSONComparator) WithTestValue(got any) *JSONComparator {
	jc.got = got
	return jc
}

// WithWantJSON specifies the JSON the receiver's value-under-test should
// marshal to.
func (jc *JSONComparator) WithWantJSON(want string) *JSONComparator {
	jc.want = want
	return jc
}

// Compare the receiver's 'got' and 'want' values, returning a difference
// message (empty if no difference) and a boolean indicating whether the two
// are different (true) or not (false).
func (jc *JSONComparator) Compare(t *testing.T) (string, bool) {
	t.Helper()
	var want any
	if err := json.Unmarshal([]byte(jc.want), &want); err != nil {
		t.Fatalf("failed to unmarshal want JSON: %s", err)
	}
	got := Generic(t, jc.got)
	if diff := cmp.Diff(want, got); diff != "" {
		return fmt.Sprintf("Got %v, diff (-want +got):\n%s", got, diff), true
	}
	return "", false
}
