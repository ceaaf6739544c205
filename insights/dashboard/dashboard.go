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

// Package dashboard assembles and renders the dashboard pages.  A page is
// built from a freshly loaded chart configuration document and is in one of
// three states: loading, failed, or ready.
package dashboard

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/safehtml/template"
	"github.com/pkg/errors"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	chartloader "github.com/insightsengine/insights/server/go/chart_loader"
)

// State is the load state of a page.
type State int

// Page states.
const (
	Loading State = iota
	Failed
	Ready
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Failed:
		return "error"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// View names a dashboard page.
type View string

// Dashboard pages.
const (
	WorkspaceView   View = "workspace"
	CollectionsView View = "collections"
)

// ErrorHeading heads a page whose document failed to load.
const ErrorHeading = "Error Loading Data"

// Chart is a chart slot on a page.  The chart body is fetched separately.
type Chart struct {
	ID    string
	Title string
	Type  chartdata.ChartType
}

func chartOf(desc *chartdata.ChartDescriptor) Chart {
	return Chart{ID: desc.ID, Title: desc.Title, Type: desc.Type}
}

func chartsOf(descs []*chartdata.ChartDescriptor) []Chart {
	ret := make([]Chart, len(descs))
	for idx, desc := range descs {
		ret[idx] = chartOf(desc)
	}
	return ret
}

// Section is a resolved workspace section.
type Section struct {
	Index         int
	Title         string
	InsightsCount int
	Charts        []Chart
}

// Collection is a saved collection with its preview chart.
type Collection struct {
	Title    string
	NewCount int
	Chart    Chart
}

// Page is the model of one dashboard page.
type Page struct {
	View  View
	State State
	// Message describes the load failure, when State is Failed.
	Message     string
	Kpis        []chartdata.KpiEntry
	Sections    []Section
	Favorites   []Chart
	Collections []Collection
}

// NewLoadingPage returns a page whose document has not yet arrived.
func NewLoadingPage(view View) *Page {
	return &Page{
		View:  view,
		State: Loading,
		Kpis:  chartdata.PlaceholderKpis.Entries(),
	}
}

// Build loads the document from source and assembles the specified page.
// A load failure yields a Failed page rather than an error.
func Build(ctx context.Context, source chartloader.Source, view View) *Page {
	doc, err := source.Load(ctx)
	if err != nil {
		logger().Error("failed to load dashboard data",
			slog.String("view", string(view)),
			slog.String("error", err.Error()))
		return &Page{
			View:    view,
			State:   Failed,
			Message: err.Error(),
		}
	}
	return FromDocument(doc, view)
}

// FromDocument assembles a ready page from a loaded document.
func FromDocument(doc *chartdata.Document, view View) *Page {
	page := &Page{
		View:  view,
		State: Ready,
		Kpis:  doc.Kpis().Entries(),
	}
	switch view {
	case CollectionsView:
		page.Favorites = chartsOf(doc.Favorites())
		for _, cc := range doc.CollectionCharts() {
			page.Collections = append(page.Collections, Collection{
				Title:    cc.Title,
				NewCount: cc.NewCount,
				Chart:    chartOf(cc.Chart),
			})
		}
	default:
		for idx, section := range doc.Sections(chartdata.WorkspacePage) {
			page.Sections = append(page.Sections, Section{
				Index:         idx,
				Title:         section.Title,
				InsightsCount: section.InsightsCount,
				Charts:        chartsOf(doc.ChartsForSection(chartdata.WorkspacePage, idx)),
			})
		}
	}
	return page
}

func logger() *slog.Logger {
	return slog.Default().With(slog.String("module", "dashboard"))
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	if err := pageTemplate.Execute(w, p); err != nil {
		return errors.Wrapf(err, "failed to render %s page", p.View)
	}
	return nil
}

// Handler serves the dashboard pages.
type Handler struct {
	source chartloader.Source
	paths  map[string]View
}

// NewHandler returns a Handler serving the workspace page at '/' and the
// collections page at '/collections', loading from source on every request.
func NewHandler(source chartloader.Source) *Handler {
	return &Handler{
		source: source,
		paths: map[string]View{
			"/":            WorkspaceView,
			"/collections": CollectionsView,
		},
	}
}

// HandlersByPath returns the page handlers keyed by path.
func (h *Handler) HandlersByPath() map[string]func(http.ResponseWriter, *http.Request) {
	ret := make(map[string]func(http.ResponseWriter, *http.Request), len(h.paths))
	for path, view := range h.paths {
		path, view := path, view
		ret[path] = func(w http.ResponseWriter, req *http.Request) {
			// '/' is the catch-all pattern.
			if req.URL.Path != path {
				http.NotFound(w, req)
				return
			}
			page := Build(req.Context(), h.source, view)
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			if page.State == Failed {
				w.WriteHeader(http.StatusBadGateway)
			}
			if err := page.Render(w); err != nil {
				logger().Error("failed to render page", slog.String("error", err.Error()))
			}
		}
	}
	return ret
}
