/*
	Copyright 2023 Google Inc.
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

// Package handlers provides the HTTP handlers serving rendered chart options
// and static dashboard assets.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	chartloader "github.com/insightsengine/insights/server/go/chart_loader"
	"github.com/insightsengine/insights/server/go/color"
	querydispatcher "github.com/insightsengine/insights/server/go/query_dispatcher"
	"github.com/insightsengine/insights/server/go/renderer"
)

// HandlerFunc is a HTTP handler function.
type HandlerFunc func(http.ResponseWriter, *http.Request)

// WrapFunc is a function that rewrites a HandlerFunc.
type WrapFunc func(HandlerFunc) HandlerFunc

// Handler describes an HTTP handler serving one or more paths.
type Handler interface {
	HandlersByPath() map[string]func(http.ResponseWriter, *http.Request)
}

// QueryHandler is a Handler for chart queries.  It supports a Wrap method
// that wraps all handlers, e.g. adding logging.
type QueryHandler interface {
	Handler
	Wrap(...WrapFunc) Handler
}

// Request parameters.
const (
	rendererParam = "renderer"
	idParam       = "id"
	pageParam     = "page"
	sectionParam  = "section"
)

const (
	chartMethod   = "/GetChart"
	sectionMethod = "/GetSection"
)

// sendJSON serializes v and sends it along the provided http.ResponseWriter.
// Any failures during serialization yield an HTTP internal status error.
func sendJSON(w http.ResponseWriter, v any) {
	resp, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Failed to marshal response: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(resp)
}

// queryHandler is an http.Handler serving rendered chart options.
type queryHandler struct {
	qd              *querydispatcher.QueryDispatcher
	source          chartloader.Source
	resolver        *color.Resolver
	defaultRenderer string
	logger          *slog.Logger
	wrappers        []WrapFunc
}

// NewQueryHandler returns a new Handler serving chart requests.  Each
// request loads the chart document afresh from source and renders it with
// the provided QueryDispatcher, using defaultRenderer when the request names
// none.  CSS variables in rendered options are resolved with resolver.
func NewQueryHandler(qd *querydispatcher.QueryDispatcher, source chartloader.Source, resolver *color.Resolver, defaultRenderer string) QueryHandler {
	return &queryHandler{
		qd:              qd,
		source:          source,
		resolver:        resolver,
		defaultRenderer: defaultRenderer,
		logger:          slog.Default().With(slog.String("module", "handlers")),
	}
}

func (qh *queryHandler) Wrap(wrappers ...WrapFunc) Handler {
	qh.wrappers = append(qh.wrappers, wrappers...)
	return qh
}

// HandlersByPath returns a mapping of HTTP request path to HTTP handler for
// this Handler.
func (qh *queryHandler) HandlersByPath() map[string]func(http.ResponseWriter, *http.Request) {
	ret := map[string]func(http.ResponseWriter, *http.Request){}
	for path, h := range map[string]HandlerFunc{
		chartMethod:   qh.getChartHandler,
		sectionMethod: qh.getSectionHandler,
	} {
		for _, wrapper := range qh.wrappers {
			h = wrapper(h)
		}
		ret[path] = h
	}
	return ret
}

func (qh *queryHandler) rendererName(req *http.Request) string {
	if name := req.Form.Get(rendererParam); name != "" {
		return name
	}
	return qh.defaultRenderer
}

// load loads the chart document, reporting failure to the client.
func (qh *queryHandler) load(w http.ResponseWriter, req *http.Request) (*chartdata.Document, bool) {
	doc, err := qh.source.Load(req.Context())
	if err != nil {
		qh.logger.Error("failed to load chart data", slog.Any("error", err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return nil, false
	}
	return doc, true
}

// resolve returns opt as a generic JSON value with CSS variables resolved.
func (qh *queryHandler) resolve(opt renderer.Option) (any, error) {
	generic, err := renderer.Generic(opt)
	if err != nil {
		return nil, err
	}
	return qh.resolver.DeepResolve(generic), nil
}

// renderStatus returns the HTTP status reporting a rendering error.
func renderStatus(err error) int {
	switch {
	case errors.Is(err, querydispatcher.ErrUnknownRenderer):
		return http.StatusBadRequest
	case errors.Is(err, renderer.ErrUnsupportedType):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (qh *queryHandler) getChartHandler(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	id := req.Form.Get(idParam)
	if id == "" {
		http.Error(w, "Missing chart id", http.StatusBadRequest)
		return
	}
	doc, ok := qh.load(w, req)
	if !ok {
		return
	}
	desc := doc.ChartByID(id)
	if desc == nil {
		http.Error(w, "No chart `"+id+"`", http.StatusNotFound)
		return
	}
	opt, err := qh.qd.Render(req.Context(), qh.rendererName(req), desc)
	if err != nil {
		http.Error(w, "Render failed: "+err.Error(), renderStatus(err))
		return
	}
	resolved, err := qh.resolve(opt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, resolved)
}

type sectionChart struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Option any    `json:"option"`
}

func (qh *queryHandler) getSectionHandler(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	page := chartdata.WorkspacePage
	if p := req.Form.Get(pageParam); p != "" {
		page = chartdata.Page(p)
	}
	sectionIdx, err := strconv.Atoi(req.Form.Get(sectionParam))
	if err != nil {
		http.Error(w, "Bad section index: "+err.Error(), http.StatusBadRequest)
		return
	}
	doc, ok := qh.load(w, req)
	if !ok {
		return
	}
	rendered, err := qh.qd.RenderSection(req.Context(), doc, qh.rendererName(req), page, sectionIdx)
	if err != nil {
		http.Error(w, "Render failed: "+err.Error(), renderStatus(err))
		return
	}
	ret := make([]sectionChart, len(rendered))
	for idx, rc := range rendered {
		resolved, err := qh.resolve(rc.Option)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		ret[idx] = sectionChart{
			ID:     rc.ID,
			Title:  rc.Title,
			Option: resolved,
		}
	}
	sendJSON(w, ret)
}
