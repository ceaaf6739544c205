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

package staticrenderer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wcharczuk/go-chart/v2"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	"github.com/insightsengine/insights/server/go/renderer"
	testutil "github.com/insightsengine/insights/server/go/test_util"
)

func TestParseFormat(t *testing.T) {
	for _, test := range []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", PNG, false},
		{"SVG", SVG, false},
		{"gif", "", true},
	} {
		got, err := ParseFormat(test.in)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseFormat(%q) yielded error %v, wanted error: %t", test.in, err, test.wantErr)
		}
		if got != test.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestRender(t *testing.T) {
	unstacked := testutil.GroupedBar()
	unstacked.Stacked = false
	grouped := testutil.SimpleLine()
	grouped.SeriesField = "series"
	grouped.Data = []chartdata.Row{
		testutil.Row("month", "Jan", "series", "a", "growth", 1),
		testutil.Row("month", "Feb", "series", "a", "growth", 4),
		testutil.Row("month", "Jan", "series", "b", "growth", 2),
		testutil.Row("month", "Feb", "series", "b", "growth", 3),
	}
	singlePoint := testutil.SimpleLine()
	singlePoint.YAxisMax = nil
	singlePoint.MarkLine = nil
	singlePoint.Data = []chartdata.Row{
		testutil.Row("month", "Jan", "growth", 3),
	}
	zeroBar := testutil.GroupedBar()
	zeroBar.Stacked = false
	zeroBar.SeriesField = ""
	zeroBar.Data = []chartdata.Row{
		testutil.Row("region", "Northeast", "value", 0),
		testutil.Row("region", "West", "value", 0),
	}
	zeroWaterfall := testutil.Waterfall()
	zeroWaterfall.Data = []chartdata.Row{
		testutil.Row("Step", "A", "Change", 0),
		testutil.Row("Step", "B", "Change", 0),
	}
	flatBar := testutil.ManySeriesBar(1)
	flatBar.Data = []chartdata.Row{
		testutil.Row("quarter", "Q1", "series", "S0", "value", 4),
		testutil.Row("quarter", "Q2", "series", "S0", "value", 4),
	}
	for _, test := range []struct {
		description string
		desc        *chartdata.ChartDescriptor
	}{
		{"stacked bar", testutil.GroupedBar()},
		{"unstacked bar", unstacked},
		{"line", testutil.SimpleLine()},
		{"grouped line", grouped},
		{"waterfall", testutil.Waterfall()},
		{"single point line", singlePoint},
		{"all zero bar", zeroBar},
		{"all zero waterfall", zeroWaterfall},
		{"flat bar", flatBar},
	} {
		t.Run(test.description, func(t *testing.T) {
			var png bytes.Buffer
			if err := Render(test.desc, PNG, &png); err != nil {
				t.Fatalf("Render(PNG) yielded unexpected error %s", err)
			}
			if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
				t.Errorf("Render(PNG) didn't yield a PNG")
			}
			var svg bytes.Buffer
			if err := Render(test.desc, SVG, &svg); err != nil {
				t.Fatalf("Render(SVG) yielded unexpected error %s", err)
			}
			if !strings.Contains(svg.String(), "<svg") {
				t.Errorf("Render(SVG) didn't yield an SVG")
			}
		})
	}
}

func TestFlatRange(t *testing.T) {
	for _, test := range []struct {
		description string
		values      []float64
		want        *chart.ContinuousRange
	}{
		{"spanning", []float64{1, 3}, nil},
		{"empty", nil, nil},
		{"all zero", []float64{0, 0}, &chart.ContinuousRange{Min: 0, Max: 100}},
		{"flat positive", []float64{5, 5}, &chart.ContinuousRange{Min: 0, Max: 5}},
		{"flat negative", []float64{-2}, &chart.ContinuousRange{Min: -2, Max: 0}},
	} {
		t.Run(test.description, func(t *testing.T) {
			got := flatRange(test.values)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("flatRange(%v) = %v, diff (-want +got) %s", test.values, got, diff)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	empty := testutil.Waterfall()
	empty.Data = nil
	for _, test := range []struct {
		description string
		desc        *chartdata.ChartDescriptor
		format      Format
		wantErr     error
	}{
		{"map", testutil.StateMap(), PNG, renderer.ErrUnsupportedType},
		{"no data", empty, SVG, ErrNoData},
	} {
		t.Run(test.description, func(t *testing.T) {
			err := Render(test.desc, test.format, &bytes.Buffer{})
			if !errors.Is(err, test.wantErr) {
				t.Errorf("Render() yielded error %v, want %v", err, test.wantErr)
			}
		})
	}
	if err := Render(testutil.Waterfall(), "bmp", &bytes.Buffer{}); err == nil {
		t.Errorf("Render() to an unsupported format yielded no error")
	}
}
