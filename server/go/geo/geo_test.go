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

package geo

import (
	"context"
	"errors"
	"io/fs"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
)

const testTopology = `{
  "type": "Topology",
  "transform": {"scale": [2, 1], "translate": [10, 0]},
  "arcs": [
    [[0, 0], [1, 0], [0, 1]],
    [[1, 1], [-1, 0], [0, -1]]
  ],
  "objects": {
    "usa": {
      "type": "GeometryCollection",
      "geometries": [
        {"type": "Polygon", "id": "06", "arcs": [[0, 1]], "properties": {"name": "California"}},
        {"type": "MultiPolygon", "arcs": [[[-2]]], "properties": {"name": "Texas"}}
      ]
    }
  }
}`

const testFeatureCollection = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Nevada"},
      "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]]]}
    }
  ]
}`

func TestDecode(t *testing.T) {
	for _, test := range []struct {
		description string
		data        string
		objectKey   string
		wantNames   []string
		wantGeoms   []orb.Geometry
		wantErr     bool
	}{{
		description: "topology",
		data:        testTopology,
		objectKey:   "usa",
		wantNames:   []string{"California", "Texas"},
		wantGeoms: []orb.Geometry{
			orb.Polygon{{{10, 0}, {12, 0}, {12, 1}, {10, 1}, {10, 0}}},
			// A reversed arc, padded to a four-position ring.
			orb.MultiPolygon{{{{10, 0}, {10, 1}, {12, 1}, {10, 0}}}},
		},
	}, {
		description: "topology missing object",
		data:        testTopology,
		objectKey:   "states",
		wantErr:     true,
	}, {
		description: "feature collection",
		data:        testFeatureCollection,
		objectKey:   "usa",
		wantNames:   []string{"Nevada"},
		wantGeoms: []orb.Geometry{
			orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
		},
	}, {
		description: "unknown type",
		data:        `{"type": "Sphere"}`,
		wantErr:     true,
	}, {
		description: "malformed",
		data:        `{"type": `,
		wantErr:     true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			feats, err := Decode([]byte(test.data), test.objectKey)
			if (err != nil) != test.wantErr {
				t.Fatalf("Decode() yielded error %v, wanted error: %t", err, test.wantErr)
			}
			if err != nil {
				return
			}
			gotNames := []string{}
			gotGeoms := []orb.Geometry{}
			for _, f := range feats {
				gotNames = append(gotNames, FeatureName(f))
				gotGeoms = append(gotGeoms, f.Geometry)
			}
			if diff := cmp.Diff(test.wantNames, gotNames); diff != "" {
				t.Errorf("feature names diff (-want +got) %s", diff)
			}
			if diff := cmp.Diff(test.wantGeoms, gotGeoms); diff != "" {
				t.Errorf("feature geometries diff (-want +got) %s", diff)
			}
		})
	}
}

func TestDecodeKeepsID(t *testing.T) {
	feats, err := Decode([]byte(testTopology), "usa")
	if err != nil {
		t.Fatalf("Decode() yielded unexpected error %s", err)
	}
	if got, want := feats[0].ID, any("06"); got != want {
		t.Errorf("feature ID = %v, want %v", got, want)
	}
}

// countingFS counts file opens.
type countingFS struct {
	fs.FS
	opens atomic.Int32
}

func (c *countingFS) Open(name string) (fs.File, error) {
	c.opens.Add(1)
	return c.FS.Open(name)
}

func newLoader(t *testing.T, files fstest.MapFS) (*Loader, *countingFS) {
	t.Helper()
	cfs := &countingFS{FS: files}
	l, err := NewLoader(cfs, 2)
	if err != nil {
		t.Fatalf("NewLoader() yielded unexpected error %s", err)
	}
	t.Cleanup(l.Close)
	return l, cfs
}

func TestLookup(t *testing.T) {
	l, cfs := newLoader(t, fstest.MapFS{
		"USA.json": {Data: []byte(testTopology)},
	})
	if _, ok := l.Lookup(USA); ok {
		t.Fatalf("Lookup() reported ready before any load")
	}
	// A second lookup while loading starts no new load.
	l.Lookup(USA)
	l.wg.Wait()
	feats, ok := l.Lookup(USA)
	if !ok {
		t.Fatalf("Lookup() reported not ready after load")
	}
	if len(feats) != 2 {
		t.Errorf("Lookup() yielded %d features, want 2", len(feats))
	}
	if got := cfs.opens.Load(); got != 1 {
		t.Errorf("geography file opened %d times, want 1", got)
	}
}

func TestLookupFailureIsNotRetried(t *testing.T) {
	l, cfs := newLoader(t, fstest.MapFS{
		"USA.json": {Data: []byte(`{"type": "Topology", "objects": {}}`)},
	})
	for i := 0; i < 3; i++ {
		if _, ok := l.Lookup(USA); ok {
			t.Fatalf("Lookup() reported a failed geography as ready")
		}
		l.wg.Wait()
	}
	if got := cfs.opens.Load(); got != 1 {
		t.Errorf("geography file opened %d times, want 1", got)
	}
}

func TestLoad(t *testing.T) {
	l, cfs := newLoader(t, fstest.MapFS{
		"USA.json": {Data: []byte(testFeatureCollection)},
	})
	for i := 0; i < 2; i++ {
		feats, err := l.Load(context.Background(), USA)
		if err != nil {
			t.Fatalf("Load() yielded unexpected error %s", err)
		}
		if len(feats) != 1 {
			t.Errorf("Load() yielded %d features, want 1", len(feats))
		}
	}
	if got := cfs.opens.Load(); got != 1 {
		t.Errorf("geography file opened %d times, want 1", got)
	}
	if _, ok := l.Lookup(USA); !ok {
		t.Errorf("Lookup() after Load() reported not ready")
	}
}

func TestLoadErrors(t *testing.T) {
	l, _ := newLoader(t, fstest.MapFS{})
	if _, err := l.Load(context.Background(), "Canada"); !errors.Is(err, ErrUnsupportedMap) {
		t.Errorf("Load(Canada) yielded error %v, want %v", err, ErrUnsupportedMap)
	}
	if _, err := l.Load(context.Background(), USA); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(USA) with no file yielded error %v, want %v", err, fs.ErrNotExist)
	}
}

func TestLookupAfterClose(t *testing.T) {
	l, cfs := newLoader(t, fstest.MapFS{
		"USA.json": {Data: []byte(testTopology)},
	})
	l.Close()
	if _, ok := l.Lookup(USA); ok {
		t.Errorf("Lookup() after Close() reported ready")
	}
	if got := cfs.opens.Load(); got != 0 {
		t.Errorf("geography file opened %d times after Close(), want 0", got)
	}
}
