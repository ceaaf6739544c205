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

package service

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/insightsengine/insights/insights/config"
	testutil "github.com/insightsengine/insights/server/go/test_util"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	data, err := json.Marshal(testutil.Document())
	if err != nil {
		t.Fatalf("failed to marshal document: %s", err)
	}
	dataPath := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(dataPath, data, 0o600); err != nil {
		t.Fatalf("failed to write document: %s", err)
	}
	cfg := config.Default()
	cfg.DataPath = dataPath
	cfg.AssetRoot = dir
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("New() yielded unexpected error %s", err)
	}
	t.Cleanup(svc.Close)
	mux := http.NewServeMux()
	svc.RegisterHandlers(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestService(t *testing.T) {
	srv := newTestServer(t)
	for _, test := range []struct {
		description     string
		path            string
		wantStatus      int
		wantContentType string
		wantBody        string
	}{{
		description:     "dashboard",
		path:            "/",
		wantStatus:      http.StatusOK,
		wantContentType: "text/html",
		wantBody:        `data-chart-id="growth_trend"`,
	}, {
		description:     "collections",
		path:            "/collections",
		wantStatus:      http.StatusOK,
		wantContentType: "text/html",
		wantBody:        "Quarterly review",
	}, {
		description:     "document asset",
		path:            "/chart-data-reference.json",
		wantStatus:      http.StatusOK,
		wantContentType: "application/json",
		wantBody:        `"chartConfigurations"`,
	}, {
		description: "absent geography asset",
		path:        "/geo/USA.json",
		wantStatus:  http.StatusNotFound,
	}, {
		description:     "default renderer",
		path:            "/GetChart?id=growth_trend",
		wantStatus:      http.StatusOK,
		wantContentType: "application/json",
		wantBody:        `"smooth":true`,
	}, {
		description:     "chartjs map placeholder",
		path:            "/GetChart?id=revenue_map&renderer=chartjs",
		wantStatus:      http.StatusOK,
		wantContentType: "application/json",
		wantBody:        "Loading map data...",
	}, {
		description:     "section",
		path:            "/GetSection?section=1",
		wantStatus:      http.StatusOK,
		wantContentType: "application/json",
		wantBody:        `"sales_bridge"`,
	}, {
		description:     "png export",
		path:            "/ExportChart?id=sales_bridge",
		wantStatus:      http.StatusOK,
		wantContentType: "image/png",
	}, {
		description:     "svg export",
		path:            "/ExportChart?id=growth_trend&format=svg",
		wantStatus:      http.StatusOK,
		wantContentType: "image/svg+xml",
		wantBody:        "<svg",
	}, {
		description: "map export unsupported",
		path:        "/ExportChart?id=revenue_map",
		wantStatus:  http.StatusUnprocessableEntity,
	}, {
		description: "export missing chart",
		path:        "/ExportChart?id=nope",
		wantStatus:  http.StatusNotFound,
	}, {
		description: "export bad format",
		path:        "/ExportChart?id=sales_bridge&format=gif",
		wantStatus:  http.StatusBadRequest,
	}} {
		t.Run(test.description, func(t *testing.T) {
			resp, err := srv.Client().Get(srv.URL + test.path)
			if err != nil {
				t.Fatalf("GET %s failed: %s", test.path, err)
			}
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("failed to read body: %s", err)
			}
			if resp.StatusCode != test.wantStatus {
				t.Fatalf("GET %s status = %d, want %d (%s)", test.path, resp.StatusCode, test.wantStatus, body)
			}
			if got := resp.Header.Get("Content-Type"); !strings.HasPrefix(got, test.wantContentType) {
				t.Errorf("GET %s content type = %q, want %q", test.path, got, test.wantContentType)
			}
			if !strings.Contains(string(body), test.wantBody) {
				t.Errorf("GET %s body lacks %q", test.path, test.wantBody)
			}
		})
	}
}

func TestNewRejectsBadCacheSize(t *testing.T) {
	cfg := config.Default()
	cfg.GeoCacheSize = 0
	if _, err := New(cfg); err == nil {
		t.Error("New() with a zero geography cache yielded no error")
	}
}

func TestRemoteDocument(t *testing.T) {
	data, err := json.Marshal(testutil.Document())
	if err != nil {
		t.Fatalf("failed to marshal document: %s", err)
	}
	var fetches atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/chart-data-reference.json" {
			http.NotFound(w, req)
			return
		}
		fetches.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
	t.Cleanup(upstream.Close)
	cfg := config.Default()
	cfg.DataPath = ""
	cfg.DataURL = upstream.URL + "/"
	cfg.AssetRoot = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() yielded unexpected error %s", err)
	}
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("New() yielded unexpected error %s", err)
	}
	t.Cleanup(svc.Close)
	mux := http.NewServeMux()
	svc.RegisterHandlers(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	for _, test := range []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/", http.StatusOK, `data-chart-id="growth_trend"`},
		{"/GetChart?id=growth_trend", http.StatusOK, `"smooth":true`},
		{"/ExportChart?id=growth_trend&format=svg", http.StatusOK, "<svg"},
		{"/chart-data-reference.json", http.StatusNotFound, ""},
	} {
		resp, err := srv.Client().Get(srv.URL + test.path)
		if err != nil {
			t.Fatalf("GET %s failed: %s", test.path, err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("failed to read body: %s", err)
		}
		if resp.StatusCode != test.wantStatus {
			t.Errorf("GET %s status = %d, want %d (%s)", test.path, resp.StatusCode, test.wantStatus, body)
		}
		if !strings.Contains(string(body), test.wantBody) {
			t.Errorf("GET %s body lacks %q", test.path, test.wantBody)
		}
	}
	if got := fetches.Load(); got != 3 {
		t.Errorf("upstream served %d fetches, want 3", got)
	}
}

func TestRemoteDocumentUnavailable(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(upstream.Close)
	cfg := config.Default()
	cfg.DataURL = upstream.URL
	cfg.AssetRoot = t.TempDir()
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("New() yielded unexpected error %s", err)
	}
	t.Cleanup(svc.Close)
	mux := http.NewServeMux()
	svc.RegisterHandlers(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	resp, err := srv.Client().Get(srv.URL + "/ExportChart?id=growth_trend")
	if err != nil {
		t.Fatalf("GET failed: %s", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("export with an unavailable document status = %d, want %d", resp.StatusCode, http.StatusBadGateway)
	}
}
