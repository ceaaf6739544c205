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

// Package chartdata defines the declarative, renderer-agnostic chart
// description consumed by every renderer, and the document that carries all
// chart descriptions, KPI values, and page layouts for the dashboard.
//
// A Document is decoded once per load and never mutated afterwards; all of
// its lookup methods are read-only and safe for concurrent use.
package chartdata

import (
	"log/slog"

	"github.com/insightsengine/insights/server/go/util"
)

// ChartType is the closed set of chart kinds a descriptor may name.
type ChartType string

// Supported chart types.
const (
	BarChart       ChartType = "bar"
	LineChart      ChartType = "line"
	MapChart       ChartType = "map"
	WaterfallChart ChartType = "waterfall"
)

// Valid returns true if the receiver is one of the supported chart types.
func (ct ChartType) Valid() bool {
	switch ct {
	case BarChart, LineChart, MapChart, WaterfallChart:
		return true
	}
	return false
}

// Row is a single data row: a mapping from field name to value.  Rows need
// not carry every field.
type Row map[string]util.V

// Get returns the value of the named field, or Null if the row lacks it.
func (r Row) Get(field string) util.V {
	if field == "" {
		return util.NullValue()
	}
	v, ok := r[field]
	if !ok {
		return util.NullValue()
	}
	return v
}

// ChartDescriptor is the declarative description of one chart.
type ChartDescriptor struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        ChartType `json:"type"`
	Category    string    `json:"category,omitempty"`
	XAxisField  string    `json:"xAxisField"`
	YAxisField  string    `json:"yAxisField"`
	SeriesField string    `json:"seriesField,omitempty"`
	YAxisUnit   string    `json:"yAxisUnit,omitempty"`
	YAxisMax    *float64  `json:"yAxisMax,omitempty"`
	MarkLine    *float64  `json:"markLine,omitempty"`
	Recommended bool      `json:"recommended,omitempty"`
	Stacked     bool      `json:"stacked,omitempty"`
	Smooth      bool      `json:"smooth,omitempty"`
	AreaStyle   bool      `json:"areaStyle,omitempty"`
	// Map-only fields.
	MapType    string `json:"mapType,omitempty"`
	NameField  string `json:"nameField,omitempty"`
	ValueField string `json:"valueField,omitempty"`
	Data       []Row  `json:"data"`
}

// KpiEntry is a single pre-formatted KPI card.
type KpiEntry struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Trend string `json:"trend"`
}

// KpiSnapshot holds the four headline KPIs.
type KpiSnapshot struct {
	NetSales           KpiEntry `json:"netSales"`
	GrowthNetSales     KpiEntry `json:"growthNetSales"`
	DailySales         KpiEntry `json:"dailySales"`
	CallActivityVolume KpiEntry `json:"callActivityVolume"`
}

// Entries returns the receiver's KPIs in display order.
func (ks KpiSnapshot) Entries() []KpiEntry {
	return []KpiEntry{ks.NetSales, ks.GrowthNetSales, ks.DailySales, ks.CallActivityVolume}
}

// PlaceholderKpis is shown while a document is still loading.
var PlaceholderKpis = KpiSnapshot{
	NetSales:           KpiEntry{Title: "Net Sales", Value: "Loading...", Trend: "..."},
	GrowthNetSales:     KpiEntry{Title: "Growth Net Sales", Value: "Loading...", Trend: "..."},
	DailySales:         KpiEntry{Title: "Daily Sales", Value: "Loading...", Trend: "..."},
	CallActivityVolume: KpiEntry{Title: "Call Activity Volume", Value: "Loading...", Trend: "..."},
}

// PageSection is one titled group of charts on a page.
type PageSection struct {
	Title         string   `json:"title"`
	InsightsCount int      `json:"insightsCount"`
	Charts        []string `json:"charts"`
}

// PageLayout is an ordered list of sections.
type PageLayout struct {
	Sections []PageSection `json:"sections"`
}

// Collection is a saved collection, previewed by a single chart.
type Collection struct {
	Title    string `json:"title"`
	Chart    string `json:"chart"`
	NewCount int    `json:"newCount,omitempty"`
}

// CollectionsLayout lists favorited charts and saved collections.
type CollectionsLayout struct {
	Favorites   []string     `json:"favorites"`
	Collections []Collection `json:"collections"`
}

// PageLayouts holds the layouts of every page.
type PageLayouts struct {
	Workspace   PageLayout        `json:"workspace"`
	Collections CollectionsLayout `json:"collections"`
}

// Metadata describes how a Document was generated.
type Metadata struct {
	Description  string `json:"description"`
	Version      string `json:"version"`
	GeneratedAt  string `json:"generatedAt"`
	DataSource   string `json:"dataSource"`
	TotalRecords int    `json:"totalRecords"`
	SourceFile   string `json:"sourceFile"`
}

// Document is the root of the chart configuration document.
type Document struct {
	Metadata            *Metadata                   `json:"metadata,omitempty"`
	ChartConfigurations map[string]*ChartDescriptor `json:"chartConfigurations"`
	KpiData             KpiSnapshot                 `json:"kpiData"`
	PageLayouts         PageLayouts                 `json:"pageLayouts"`
}

// Page names a page with a sectioned layout.
type Page string

// Pages with sectioned layouts.
const (
	WorkspacePage Page = "workspace"
)

func logger() *slog.Logger {
	return slog.Default().With(slog.String("module", "chart_data"))
}

// ChartByID returns the descriptor with the provided ID, or nil if the
// document has none.  A missing chart is a normal condition.
func (d *Document) ChartByID(id string) *ChartDescriptor {
	if d == nil {
		return nil
	}
	return d.ChartConfigurations[id]
}

// Kpis returns the document's KPI snapshot.
func (d *Document) Kpis() KpiSnapshot {
	return d.KpiData
}

// Sections returns the sections of the specified page, or nil if the page
// has no sectioned layout.
func (d *Document) Sections(page Page) []PageSection {
	switch page {
	case WorkspacePage:
		return d.PageLayouts.Workspace.Sections
	}
	return nil
}

// ChartsForSection returns, in layout order, the descriptors charted in the
// sectionIndex'th section of the specified page.  Chart IDs that do not
// resolve are logged and dropped.  An unknown page or out-of-range index
// yields no charts.
func (d *Document) ChartsForSection(page Page, sectionIndex int) []*ChartDescriptor {
	sections := d.Sections(page)
	if sectionIndex < 0 || sectionIndex >= len(sections) {
		return []*ChartDescriptor{}
	}
	return d.resolve(sections[sectionIndex].Charts, slog.String("page", string(page)), slog.Int("section", sectionIndex))
}

// Favorites returns the favorited descriptors in layout order, dropping
// unresolved IDs.
func (d *Document) Favorites() []*ChartDescriptor {
	return d.resolve(d.PageLayouts.Collections.Favorites, slog.String("page", "collections"))
}

// CollectionChart pairs a saved collection with its resolved preview chart.
type CollectionChart struct {
	Collection
	Chart *ChartDescriptor
}

// CollectionCharts returns every saved collection whose preview chart
// resolves, in layout order.
func (d *Document) CollectionCharts() []CollectionChart {
	ret := []CollectionChart{}
	for _, coll := range d.PageLayouts.Collections.Collections {
		desc := d.ChartByID(coll.Chart)
		if desc == nil {
			logger().Warn("dropping unresolved collection chart",
				slog.String("collection", coll.Title),
				slog.String("chart_id", coll.Chart))
			continue
		}
		ret = append(ret, CollectionChart{
			Collection: coll,
			Chart:      desc,
		})
	}
	return ret
}

func (d *Document) resolve(ids []string, attrs ...any) []*ChartDescriptor {
	ret := make([]*ChartDescriptor, 0, len(ids))
	for _, id := range ids {
		desc := d.ChartByID(id)
		if desc == nil {
			logger().Warn("dropping unresolved chart", append([]any{slog.String("chart_id", id)}, attrs...)...)
			continue
		}
		ret = append(ret, desc)
	}
	return ret
}
