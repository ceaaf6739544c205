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
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	chartloader "github.com/insightsengine/insights/server/go/chart_loader"
	chartjsrenderer "github.com/insightsengine/insights/server/go/chartjs_renderer"
	"github.com/insightsengine/insights/server/go/color"
	echartsrenderer "github.com/insightsengine/insights/server/go/echarts_renderer"
	"github.com/insightsengine/insights/server/go/geo"
	querydispatcher "github.com/insightsengine/insights/server/go/query_dispatcher"
	"github.com/insightsengine/insights/server/go/renderer"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rendererName string

//nolint:gochecknoglobals // Cobra boilerplate
var renderCmd = &cobra.Command{
	Use:   "render <chart-id>",
	Short: "Print the rendered option for a chart",
	Long: `Render a chart from the configured document and print its option JSON,
with theme colors resolved.  Map geographies are loaded before rendering.

Example:
  insights render growth_trend_regions --renderer chartjs`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&rendererName, "renderer", "", "Renderer to use (default from config)")
}

func loadChart(cmd *cobra.Command, dataPath, id string) (*chartdata.ChartDescriptor, error) {
	doc, err := chartloader.FileSource{Path: dataPath}.Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	desc := doc.ChartByID(id)
	if desc == nil {
		return nil, errors.Errorf("no chart %q in %s", id, dataPath)
	}
	return desc, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if rendererName == "" {
		rendererName = cfg.DefaultRenderer
	}
	desc, err := loadChart(cmd, cfg.DataPath, args[0])
	if err != nil {
		return err
	}
	geos, err := geo.NewLoader(os.DirFS(filepath.Join(cfg.AssetRoot, "geo")), cfg.GeoCacheSize)
	if err != nil {
		return err
	}
	defer geos.Close()
	if desc.Type == chartdata.MapChart {
		// Warm the cache so the map renders rather than its placeholder.
		if _, err := geos.Load(cmd.Context(), desc.MapType); err != nil {
			return err
		}
	}
	qd, err := querydispatcher.New(echartsrenderer.New(), chartjsrenderer.New(geos))
	if err != nil {
		return err
	}
	opt, err := qd.Render(cmd.Context(), rendererName, desc)
	if err != nil {
		return err
	}
	generic, err := renderer.Generic(opt)
	if err != nil {
		return err
	}
	resolved := color.NewResolver(color.ThemeLookup(cfg.Theme)).DeepResolve(generic)
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(resolved), "failed to write option")
}
