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

package reportconverter

import (
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	"github.com/insightsengine/insights/server/go/util"
)

// Report categories with row-driven charts.
const (
	BrandPerformance = "brand_performance"
	RevenueForecast  = "revenue_forecast"
)

// Row field names read from the sales report.
const (
	categoryField         = "category"
	regionField           = "region"
	segmentField          = "segment"
	valueField            = "value"
	marketShareField      = "market_share"
	changePercentageField = "change_percentage"
	growthRateField       = "growth_rate"
	revenueField          = "revenue"
	volumeField           = "volume"
)

const (
	allIDN       = "All IDN"
	nation       = "Nation"
	national     = "National"
	budgetTarget = "Budget Target"
	forecast     = "Forecast"
	million      = 1000000.0

	// Version is the document version written into metadata.
	Version = "2.0.0"
	// SourceFile names the report in metadata.
	SourceFile = "sales-report.csv"
)

func logger() *slog.Logger {
	return slog.Default().With(slog.String("module", "report_converter"))
}

// Convert builds a complete chart configuration document from parsed sales
// report rows, stamping its metadata with now.
func Convert(rows []chartdata.Row, now time.Time) *chartdata.Document {
	charts := map[string]*chartdata.ChartDescriptor{}
	for _, group := range groupByCategory(rows) {
		switch group.category {
		case BrandPerformance:
			addBrandPerformance(charts, group.rows)
		case RevenueForecast:
			addRevenueForecast(charts, group.rows)
		}
	}
	for _, desc := range referenceCharts() {
		charts[desc.ID] = desc
	}
	logger().Info("converted sales report",
		slog.Int("records", len(rows)),
		slog.Int("charts", len(charts)))
	return &chartdata.Document{
		Metadata: &chartdata.Metadata{
			Description:  "Sales report driven chart data structure for InsightsEngine application",
			Version:      Version,
			GeneratedAt:  now.UTC().Format("2006-01-02T15:04:05.000Z"),
			DataSource:   "Sales Report CSV",
			TotalRecords: len(rows),
			SourceFile:   SourceFile,
		},
		ChartConfigurations: charts,
		KpiData:             Kpis(rows),
		PageLayouts:         Layouts(),
	}
}

type categoryRows struct {
	category string
	rows     []chartdata.Row
}

// groupByCategory groups rows by their string category, in order of first
// appearance.
func groupByCategory(rows []chartdata.Row) []*categoryRows {
	var ret []*categoryRows
	byCategory := map[string]*categoryRows{}
	for _, row := range rows {
		cat, err := util.ExpectStringValue(row.Get(categoryField))
		if err != nil {
			continue
		}
		group, ok := byCategory[cat]
		if !ok {
			group = &categoryRows{category: cat}
			byCategory[cat] = group
			ret = append(ret, group)
		}
		group.rows = append(group.rows, row)
	}
	return ret
}

func is(row chartdata.Row, field, want string) bool {
	return row.Get(field).Equal(util.StringValue(want))
}

func filter(rows []chartdata.Row, pred func(chartdata.Row) bool) []chartdata.Row {
	ret := []chartdata.Row{}
	for _, row := range rows {
		if pred(row) {
			ret = append(ret, row)
		}
	}
	return ret
}

// project copies the named fields of each row.
func project(rows []chartdata.Row, fields ...string) []chartdata.Row {
	ret := make([]chartdata.Row, len(rows))
	for idx, row := range rows {
		out := make(chartdata.Row, len(fields))
		for _, field := range fields {
			out[field] = row.Get(field)
		}
		ret[idx] = out
	}
	return ret
}

// scaled copies rows, replacing the value field with f applied to it.
func scaled(rows []chartdata.Row, f func(float64) float64, fields ...string) []chartdata.Row {
	ret := project(rows, fields...)
	for _, row := range ret {
		row[valueField] = util.NumberValue(f(row.Get(valueField).Float()))
	}
	return ret
}

func ptr(f float64) *float64 {
	return &f
}

func addBrandPerformance(charts map[string]*chartdata.ChartDescriptor, rows []chartdata.Row) {
	allIDNRows := filter(rows, func(row chartdata.Row) bool { return is(row, segmentField, allIDN) })
	charts["market_share_regions"] = &chartdata.ChartDescriptor{
		ID:          "market_share_regions",
		Title:       "Market share across regions",
		Type:        chartdata.BarChart,
		Category:    BrandPerformance,
		XAxisField:  regionField,
		YAxisField:  marketShareField,
		YAxisUnit:   "%",
		YAxisMax:    ptr(100),
		MarkLine:    ptr(85),
		Recommended: true,
		Data:        project(allIDNRows, regionField, marketShareField),
	}
	charts["market_share_change_segments"] = &chartdata.ChartDescriptor{
		ID:          "market_share_change_segments",
		Title:       "% Market share change across segments",
		Type:        chartdata.BarChart,
		Category:    BrandPerformance,
		XAxisField:  segmentField,
		YAxisField:  changePercentageField,
		YAxisUnit:   "%",
		Recommended: true,
		Data: project(
			filter(rows, func(row chartdata.Row) bool { return is(row, regionField, nation) }),
			segmentField, changePercentageField),
	}
	charts["revenue_by_region_map"] = &chartdata.ChartDescriptor{
		ID:          "revenue_by_region_map",
		Title:       "Revenue distribution across regions",
		Type:        chartdata.MapChart,
		Category:    BrandPerformance,
		XAxisField:  regionField,
		YAxisField:  revenueField,
		MapType:     "USA",
		ValueField:  "value",
		NameField:   "name",
		Recommended: true,
		Data:        stateRevenue(allIDNRows),
	}
	charts["growth_trend_regions"] = &chartdata.ChartDescriptor{
		ID:         "growth_trend_regions",
		Title:      "Growth rate trend across regions",
		Type:       chartdata.LineChart,
		Category:   BrandPerformance,
		XAxisField: regionField,
		YAxisField: growthRateField,
		YAxisUnit:  "%",
		Smooth:     true,
		Data:       project(allIDNRows, regionField, growthRateField),
	}
}

func addRevenueForecast(charts map[string]*chartdata.ChartDescriptor, rows []chartdata.Row) {
	forecastRows := filter(rows, func(row chartdata.Row) bool {
		return is(row, segmentField, budgetTarget) || is(row, segmentField, forecast)
	})
	toMillions := func(v float64) float64 { return v / million }
	charts["revenue_vs_forecast"] = &chartdata.ChartDescriptor{
		ID:          "revenue_vs_forecast",
		Title:       "Revenue vs Forecast by Region",
		Type:        chartdata.BarChart,
		Category:    RevenueForecast,
		XAxisField:  regionField,
		YAxisField:  valueField,
		YAxisUnit:   "M",
		SeriesField: segmentField,
		Recommended: true,
		Data:        scaled(forecastRows, toMillions, regionField, valueField, segmentField),
	}
	charts["revenue_components"] = &chartdata.ChartDescriptor{
		ID:          "revenue_components",
		Title:       "Revenue components breakdown",
		Type:        chartdata.BarChart,
		Category:    RevenueForecast,
		XAxisField:  segmentField,
		YAxisField:  valueField,
		YAxisUnit:   "M",
		Recommended: true,
		Stacked:     true,
		Data: scaled(
			filter(rows, func(row chartdata.Row) bool { return is(row, regionField, national) }),
			func(v float64) float64 { return math.Abs(v) / million },
			segmentField, valueField),
	}
	charts["forecast_trend"] = &chartdata.ChartDescriptor{
		ID:          "forecast_trend",
		Title:       "Forecast trend over time",
		Type:        chartdata.LineChart,
		Category:    RevenueForecast,
		XAxisField:  regionField,
		YAxisField:  valueField,
		YAxisUnit:   "M",
		SeriesField: segmentField,
		Smooth:      true,
		AreaStyle:   true,
		Data:        scaled(forecastRows, toMillions, regionField, valueField, segmentField),
	}
}

// roundHalfUp rounds halves toward positive infinity.
func roundHalfUp(f float64) float64 {
	r := math.Floor(f)
	if f-r >= 0.5 {
		r++
	}
	return r
}

// fixed formats f with the provided number of decimals.  The exact binary
// value of f is rounded, with exact ties going away from zero; FormatFloat
// would send them to even.
func fixed(f float64, decimals int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', decimals, 64)
	}
	const prec = 256
	scaled := new(big.Float).SetPrec(prec).SetFloat64(math.Abs(f))
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	scaled.Mul(scaled, new(big.Float).SetPrec(prec).SetInt(scale))
	scaled.Add(scaled, big.NewFloat(0.5))
	n, _ := scaled.Int(nil)
	digits := n.String()
	if decimals > 0 {
		if len(digits) <= decimals {
			digits = strings.Repeat("0", decimals-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-decimals] + "." + digits[len(digits)-decimals:]
	}
	if f < 0 {
		digits = "-" + digits
	}
	return digits
}

// Kpis computes the headline KPI snapshot from the report's national
// 'All IDN' rows.
func Kpis(rows []chartdata.Row) chartdata.KpiSnapshot {
	var totalRevenue, totalVolume, changeSum float64
	for _, row := range rows {
		if !is(row, segmentField, allIDN) {
			continue
		}
		changeSum += row.Get(changePercentageField).Float()
		if is(row, regionField, nation) {
			totalRevenue += row.Get(revenueField).Float()
			totalVolume += row.Get(volumeField).Float()
		}
	}
	// The report always carries six regions.
	avgChange := fixed(changeSum/6, 1)
	return chartdata.KpiSnapshot{
		NetSales: chartdata.KpiEntry{
			Title: "Net Sales",
			Value: fmt.Sprintf("$%sM", fixed(totalRevenue/million, 0)),
			Trend: fmt.Sprintf("↑ %s%% YoY | %s%% QoQ", avgChange, avgChange),
		},
		GrowthNetSales: chartdata.KpiEntry{
			Title: "Growth Net Sales",
			Value: fmt.Sprintf("$%sM", fixed(totalRevenue*(changeSum/6)/100/million, 0)),
			Trend: fmt.Sprintf("↑ %s%%", avgChange),
		},
		DailySales: chartdata.KpiEntry{
			Title: "Daily Sales",
			Value: fmt.Sprintf("%s std.", fixed(totalVolume, 0)),
			Trend: fmt.Sprintf("↑ %s%% in total volume", avgChange),
		},
		CallActivityVolume: chartdata.KpiEntry{
			Title: "Call Activity Volume",
			Value: fmt.Sprintf("%sK", fixed(roundHalfUp(totalVolume/1000), 0)),
			Trend: fmt.Sprintf("↑ %s%%", avgChange),
		},
	}
}
