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

package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/insightsengine/insights/server/go/util"
)

func TestRow(t *testing.T) {
	got := Row("name", "Texas", "value", 20, "share", 1.5, "missing", nil, "dangling")
	if len(got) != 4 {
		t.Fatalf("Row() has %d fields, want 4", len(got))
	}
	for _, test := range []struct {
		field string
		want  util.V
	}{
		{"name", util.StringValue("Texas")},
		{"value", util.NumberValue(20)},
		{"share", util.NumberValue(1.5)},
		{"missing", util.NullValue()},
		{"dangling", util.NullValue()},
	} {
		if got := got.Get(test.field); !got.Equal(test.want) {
			t.Errorf("Row()[%q] = %v, want %v", test.field, got, test.want)
		}
	}
}

func TestPath(t *testing.T) {
	v := Generic(t, map[string]any{
		"series": []any{
			map[string]any{"name": "a"},
		},
	})
	for _, test := range []struct {
		description string
		path        []any
		want        any
	}{
		{"present", []any{"series", 0, "name"}, "a"},
		{"index out of range", []any{"series", 1, "name"}, nil},
		{"key on array", []any{"series", "name"}, nil},
		{"missing key", []any{"legend"}, nil},
	} {
		t.Run(test.description, func(t *testing.T) {
			if diff := cmp.Diff(test.want, Path(v, test.path...)); diff != "" {
				t.Errorf("Path() diff (-want +got) %s", diff)
			}
		})
	}
}

func TestJSONComparator(t *testing.T) {
	if msg, failed := NewJSONComparator().
		WithTestValue(map[string]any{"b": []int{1, 2}, "a": "x"}).
		WithWantJSON(`{"a": "x", "b": [1, 2]}`).
		Compare(t); failed {
		t.Error(msg)
	}
	if _, failed := NewJSONComparator().
		WithTestValue([]int{2, 1}).
		WithWantJSON(`[1, 2]`).
		Compare(t); !failed {
		t.Error("Compare() reported reordered arrays as equal")
	}
}

func TestDocumentFixture(t *testing.T) {
	doc := Document()
	if got := len(doc.ChartsForSection("workspace", 1)); got != 2 {
		t.Errorf("second section resolves %d charts, want 2", got)
	}
}
