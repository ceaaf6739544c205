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

package category

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	"github.com/insightsengine/insights/server/go/util"
)

func str(s string) util.V {
	return util.StringValue(s)
}

func num(f float64) util.V {
	return util.NumberValue(f)
}

var forecastRows = []chartdata.Row{
	{"region": str("Northeast"), "segment": str("Forecast"), "value": num(12)},
	{"region": str("Northeast"), "segment": str("Budget Target"), "value": num(10)},
	{"region": str("West"), "segment": str("Forecast"), "value": num(8)},
	{"region": str("Southeast"), "segment": str("Budget Target"), "value": num(7)},
	{"region": str("West"), "segment": str("Forecast"), "value": num(99)},
}

func TestCategories(t *testing.T) {
	for _, test := range []struct {
		description string
		rows        []chartdata.Row
		field       string
		want        []string
	}{{
		description: "first-occurrence order, duplicates collapsed",
		rows:        forecastRows,
		field:       "region",
		want:        []string{"Northeast", "West", "Southeast"},
	}, {
		description: "empty data",
		rows:        nil,
		field:       "region",
		want:        []string{},
	}, {
		description: "missing field yields a null category",
		rows: []chartdata.Row{
			{"region": str("A")},
			{"other": str("B")},
			{"other": str("C")},
		},
		field: "region",
		want:  []string{"A", ""},
	}} {
		t.Run(test.description, func(t *testing.T) {
			got := Labels(Categories(test.rows, test.field))
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Categories() = %v, diff (-want +got) %s", got, diff)
			}
		})
	}
}

func TestGroupBy(t *testing.T) {
	groups := GroupBy(forecastRows, "segment")
	gotNames := []string{}
	gotSizes := []int{}
	for _, g := range groups {
		gotNames = append(gotNames, g.Name)
		gotSizes = append(gotSizes, len(g.Rows))
	}
	if diff := cmp.Diff([]string{"Forecast", "Budget Target"}, gotNames); diff != "" {
		t.Errorf("GroupBy() names diff (-want +got) %s", diff)
	}
	if diff := cmp.Diff([]int{3, 2}, gotSizes); diff != "" {
		t.Errorf("GroupBy() sizes diff (-want +got) %s", diff)
	}
}

func TestGroupByNullSeries(t *testing.T) {
	rows := []chartdata.Row{
		{"region": str("Northeast"), "segment": str("Forecast"), "value": num(12)},
		{"region": str("West"), "value": num(8)},
		{"region": str("Southeast"), "segment": util.NullValue(), "value": num(7)},
		{"region": str("Midwest"), "segment": str(""), "value": num(3)},
	}
	gotNames := []string{}
	gotSizes := []int{}
	for _, g := range GroupBy(rows, "segment") {
		gotNames = append(gotNames, g.Name)
		gotSizes = append(gotSizes, len(g.Rows))
	}
	if diff := cmp.Diff([]string{"Forecast", NullSeriesName, ""}, gotNames); diff != "" {
		t.Errorf("GroupBy() names diff (-want +got) %s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 1}, gotSizes); diff != "" {
		t.Errorf("GroupBy() sizes diff (-want +got) %s", diff)
	}
}

func TestExtract(t *testing.T) {
	for _, test := range []struct {
		description    string
		desc           *chartdata.ChartDescriptor
		wantCategories []string
		wantSeries     []string
		wantValues     [][]float64
	}{{
		description: "grouped series are padded with zeroes",
		desc: &chartdata.ChartDescriptor{
			XAxisField:  "region",
			YAxisField:  "value",
			SeriesField: "segment",
			Data:        forecastRows,
		},
		wantCategories: []string{"Northeast", "West", "Southeast"},
		wantSeries:     []string{"Forecast", "Budget Target"},
		// The first matching row wins: West/Forecast is 8, not 99.
		wantValues: [][]float64{{12, 8, 0}, {10, 0, 7}},
	}, {
		description: "ungrouped",
		desc: &chartdata.ChartDescriptor{
			XAxisField: "region",
			YAxisField: "value",
			Data: []chartdata.Row{
				{"region": str("A"), "value": num(1)},
				{"region": str("B")},
				{"region": str("C"), "value": str("n/a")},
			},
		},
		wantCategories: []string{"A", "B", "C"},
		wantSeries:     []string{"Value"},
		wantValues:     [][]float64{{1, 0, 0}},
	}, {
		description: "empty data",
		desc: &chartdata.ChartDescriptor{
			XAxisField:  "region",
			YAxisField:  "value",
			SeriesField: "segment",
		},
		wantCategories: []string{},
		wantSeries:     []string{},
		wantValues:     [][]float64{},
	}} {
		t.Run(test.description, func(t *testing.T) {
			got := Extract(test.desc, "Value")
			if diff := cmp.Diff(test.wantCategories, Labels(got.Categories)); diff != "" {
				t.Errorf("categories diff (-want +got) %s", diff)
			}
			gotSeries := []string{}
			for _, s := range got.Series {
				gotSeries = append(gotSeries, s.Name)
			}
			if diff := cmp.Diff(test.wantSeries, gotSeries); diff != "" {
				t.Errorf("series diff (-want +got) %s", diff)
			}
			if diff := cmp.Diff(test.wantValues, got.Values); diff != "" {
				t.Errorf("values diff (-want +got) %s", diff)
			}
			for idx, vals := range got.Values {
				if len(vals) != len(got.Categories) {
					t.Errorf("series %d has %d values, want %d", idx, len(vals), len(got.Categories))
				}
			}
		})
	}
}
