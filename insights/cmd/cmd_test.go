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

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chartloader "github.com/insightsengine/insights/server/go/chart_loader"
)

const salesReport = `category,region,segment,value,market_share,change_percentage,growth_rate,revenue,volume
brand_performance,Nation,All IDN,,62,3,4.5,120000000,250000
brand_performance,Northeast,All IDN,,70,2,5,48000000,
revenue_forecast,Northeast,Forecast,2500000,,,,,
`

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("insights %s failed: %s\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sales-report.csv")
	if err := os.WriteFile(csvPath, []byte(salesReport), 0o600); err != nil {
		t.Fatalf("failed to write report: %s", err)
	}
	docPath := filepath.Join(dir, "chart-data-reference.json")
	cfgPath := filepath.Join(dir, "insights.yaml")
	cfg := "data_path: " + docPath + "\nasset_root: " + dir + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatalf("failed to write config: %s", err)
	}

	run(t, "convert", csvPath, "--output", docPath)
	doc, err := chartloader.FileSource{Path: docPath}.Load(t.Context())
	if err != nil {
		t.Fatalf("converted document failed to load: %s", err)
	}
	if doc.ChartByID("market_share_regions") == nil {
		t.Errorf("converted document lacks market_share_regions")
	}

	out := run(t, "--config", cfgPath, "render", "market_share_regions", "--renderer", "echarts")
	var option map[string]any
	if err := json.Unmarshal([]byte(out), &option); err != nil {
		t.Fatalf("render output is not JSON: %s\n%s", err, out)
	}
	if _, ok := option["series"]; !ok {
		t.Errorf("rendered option lacks series: %s", out)
	}

	svgPath := filepath.Join(dir, "growth.svg")
	run(t, "--config", cfgPath, "export", "growth_trend_regions", "--format", "svg", "--output", svgPath)
	svg, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatalf("export wrote no image: %s", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("exported image is not SVG")
	}
}
