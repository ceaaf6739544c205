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

package querydispatcher

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	"github.com/insightsengine/insights/server/go/renderer"
	testutil "github.com/insightsengine/insights/server/go/test_util"
)

type testOption struct {
	Type chartdata.ChartType
	ID   string
}

func (to *testOption) ChartType() chartdata.ChartType {
	return to.Type
}

// testRenderer supports every chart type but maps, and fails on charts
// titled "error".
type testRenderer struct {
	name string
}

func (tr *testRenderer) Name() string {
	return tr.name
}

func (tr *testRenderer) Render(ctx context.Context, desc *chartdata.ChartDescriptor) (renderer.Option, error) {
	if desc.Type == chartdata.MapChart {
		return nil, renderer.Unsupported(tr.name, desc)
	}
	if desc.Title == "error" {
		return nil, errors.New("oops")
	}
	return &testOption{Type: desc.Type, ID: desc.ID}, nil
}

func TestQueryDispatcherCreation(t *testing.T) {
	for _, test := range []struct {
		description string
		renderers   []renderer.Renderer
		wantNames   []string
		wantErr     bool
	}{{
		description: "distinct renderers",
		renderers:   []renderer.Renderer{&testRenderer{"b"}, &testRenderer{"a"}},
		wantNames:   []string{"b", "a"},
	}, {
		description: "duplicate renderers",
		renderers:   []renderer.Renderer{&testRenderer{"a"}, &testRenderer{"a"}},
		wantErr:     true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			qd, err := New(test.renderers...)
			if (err != nil) != test.wantErr {
				t.Fatalf("New() yielded error %v, wanted error: %t", err, test.wantErr)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(test.wantNames, qd.Renderers()); diff != "" {
				t.Errorf("Renderers() diff (-want +got) %s", diff)
			}
		})
	}
}

func renderedIDs(rcs []*RenderedChart) []string {
	ret := []string{}
	for _, rc := range rcs {
		ret = append(ret, rc.ID)
		if rc.Option.(*testOption).ID != rc.ID {
			panic("rendered chart holds another chart's option")
		}
	}
	return ret
}

func TestRenderCharts(t *testing.T) {
	qd, err := New(&testRenderer{"test"})
	if err != nil {
		t.Fatalf("New() yielded unexpected error %s", err)
	}
	doc := testutil.Document()
	for _, test := range []struct {
		description string
		ids         []string
		want        []string
	}{{
		description: "order is preserved",
		ids:         []string{"sales_bridge", "growth_trend", "revenue_components"},
		want:        []string{"sales_bridge", "growth_trend", "revenue_components"},
	}, {
		description: "missing and unsupported charts are skipped",
		ids:         []string{"missing", "revenue_map", "growth_trend"},
		want:        []string{"growth_trend"},
	}, {
		description: "no charts",
		want:        []string{},
	}} {
		t.Run(test.description, func(t *testing.T) {
			got, err := qd.RenderCharts(context.Background(), doc, "test", test.ids)
			if err != nil {
				t.Fatalf("RenderCharts() yielded unexpected error %s", err)
			}
			if diff := cmp.Diff(test.want, renderedIDs(got)); diff != "" {
				t.Errorf("RenderCharts() diff (-want +got) %s", diff)
			}
		})
	}
}

func TestRenderSection(t *testing.T) {
	qd, err := New(&testRenderer{"test"})
	if err != nil {
		t.Fatalf("New() yielded unexpected error %s", err)
	}
	got, err := qd.RenderSection(context.Background(), testutil.Document(), "test", chartdata.WorkspacePage, 1)
	if err != nil {
		t.Fatalf("RenderSection() yielded unexpected error %s", err)
	}
	// revenue_map is unsupported, and missing_chart doesn't resolve.
	if diff := cmp.Diff([]string{"sales_bridge"}, renderedIDs(got)); diff != "" {
		t.Errorf("RenderSection() diff (-want +got) %s", diff)
	}
}

func TestRenderErrors(t *testing.T) {
	qd, err := New(&testRenderer{"test"})
	if err != nil {
		t.Fatalf("New() yielded unexpected error %s", err)
	}
	doc := testutil.Document()
	if _, err := qd.RenderCharts(context.Background(), doc, "other", []string{"growth_trend"}); !errors.Is(err, ErrUnknownRenderer) {
		t.Errorf("RenderCharts() with an unknown renderer yielded error %v, want %v", err, ErrUnknownRenderer)
	}
	doc.ChartByID("growth_trend").Title = "error"
	if _, err := qd.RenderCharts(context.Background(), doc, "test", []string{"sales_bridge", "growth_trend"}); err == nil {
		t.Errorf("RenderCharts() with a failing chart yielded no error")
	}
	if _, err := qd.Render(context.Background(), "test", doc.ChartByID("sales_bridge")); err != nil {
		t.Errorf("Render() yielded unexpected error %s", err)
	}
}
