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
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	reportconverter "github.com/insightsengine/insights/insights/report_converter"
)

//nolint:gochecknoglobals // Cobra boilerplate
var convertOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var convertCmd = &cobra.Command{
	Use:   "convert <sales-report.csv|.xlsx>",
	Short: "Convert a sales report into a chart configuration document",
	Long: `Convert a sales report into the chart configuration document the
dashboard serves.  Reports ending in .xlsx are read from their first sheet;
anything else is read as CSV.

Example:
  insights convert sales-report.csv --output public/chart-data-reference.json`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file (default stdout)")
}

func runConvert(cmd *cobra.Command, args []string) (err error) {
	in, err := os.Open(args[0])
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", args[0])
	}
	defer in.Close()
	rows, err := reportconverter.ParseFile(args[0], in)
	if err != nil {
		return err
	}
	doc := reportconverter.Convert(rows, time.Now())

	var out io.Writer = cmd.OutOrStdout()
	if convertOutput != "" {
		var f *os.File
		f, err = os.Create(convertOutput)
		if err != nil {
			return errors.Wrapf(err, "failed to create %s", convertOutput)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = errors.Wrapf(cerr, "failed to close %s", convertOutput)
			}
		}()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "failed to write document")
	}
	slog.Info("converted sales report",
		slog.String("input", args[0]),
		slog.Int("charts", len(doc.ChartConfigurations)))
	return nil
}
