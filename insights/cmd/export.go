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
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	staticrenderer "github.com/insightsengine/insights/server/go/static_renderer"
)

//nolint:gochecknoglobals // Cobra boilerplate
var exportFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var exportOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var exportCmd = &cobra.Command{
	Use:   "export <chart-id>",
	Short: "Export a chart as a PNG or SVG image",
	Long: `Draw a bar, line, or waterfall chart from the configured document as a
static image.

Example:
  insights export revenue_vs_forecast --format svg --output revenue.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "png", "Image format: png or svg")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default <chart-id>.<format>)")
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	format, err := staticrenderer.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	desc, err := loadChart(cmd, cfg.DataPath, args[0])
	if err != nil {
		return err
	}
	path := exportOutput
	if path == "" {
		path = args[0] + "." + string(format)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", path)
		}
	}()
	if err := staticrenderer.Render(desc, format, f); err != nil {
		return errors.Wrapf(err, "failed to export %s", args[0])
	}
	cmd.Printf("Wrote %s\n", path)
	return nil
}
