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

// Package reportconverter builds a chart configuration document from a
// sales report, read from CSV or from the first sheet of an XLSX workbook.
package reportconverter

import (
	"encoding/csv"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	"github.com/insightsengine/insights/server/go/util"
)

// Parse reads a headered CSV into rows keyed by header.  Cells that parse as
// numbers become Numbers, empty or missing cells become Null, and everything
// else is a String.  Cells beyond the header are ignored.
func Parse(r io.Reader) ([]chartdata.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read sales report")
	}
	return fromRecords(records)
}

// ParseXLSX reads the first sheet of an XLSX workbook as Parse reads a CSV.
func ParseXLSX(r io.Reader) ([]chartdata.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sales workbook")
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("sales workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %q", sheets[0])
	}
	return fromRecords(records)
}

// ParseFile parses the report at path, as XLSX if its extension is .xlsx
// and as CSV otherwise.
func ParseFile(path string, r io.Reader) ([]chartdata.Row, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ParseXLSX(r)
	}
	return Parse(r)
}

func fromRecords(records [][]string) ([]chartdata.Row, error) {
	if len(records) == 0 {
		return nil, errors.New("sales report has no header")
	}
	header := records[0]
	rows := make([]chartdata.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(chartdata.Row, len(header))
		for idx, field := range header {
			cell := ""
			if idx < len(record) {
				cell = record[idx]
			}
			row[field] = parseCell(cell)
		}
		rows = append(rows, row)
	}
	logger().Debug("parsed sales report", slog.Int("records", len(rows)))
	return rows, nil
}

func parseCell(cell string) util.V {
	if cell == "" {
		return util.NullValue()
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return util.NumberValue(f)
	}
	return util.StringValue(cell)
}
