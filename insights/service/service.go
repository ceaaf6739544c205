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

// Package service wires the insights dashboard's data source, renderers, and
// HTTP handlers together.
package service

import (
	"bytes"
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/pkg/errors"

	"github.com/insightsengine/insights/insights/config"
	"github.com/insightsengine/insights/insights/dashboard"
	chartloader "github.com/insightsengine/insights/server/go/chart_loader"
	chartjsrenderer "github.com/insightsengine/insights/server/go/chartjs_renderer"
	"github.com/insightsengine/insights/server/go/color"
	echartsrenderer "github.com/insightsengine/insights/server/go/echarts_renderer"
	"github.com/insightsengine/insights/server/go/geo"
	"github.com/insightsengine/insights/server/go/handlers"
	querydispatcher "github.com/insightsengine/insights/server/go/query_dispatcher"
	staticrenderer "github.com/insightsengine/insights/server/go/static_renderer"
)

// Service serves the dashboard.
type Service struct {
	source       chartloader.Source
	geos         *geo.Loader
	queryHandler handlers.QueryHandler
	assetHandler *handlers.AssetHandler
	pageHandler  *dashboard.Handler
	logger       *slog.Logger
}

// fetchTimeout bounds each fetch of a remote chart document.
const fetchTimeout = 30 * time.Second

// New builds a Service from the provided configuration.  The chart document
// is fetched anew on every request, from cfg.DataURL if set and from
// cfg.DataPath otherwise.  Only a local document is itself served.
func New(cfg config.Config) (*Service, error) {
	geoRoot := path.Join(cfg.AssetRoot, "geo")
	geos, err := geo.NewLoader(os.DirFS(geoRoot), cfg.GeoCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create geography loader")
	}
	qd, err := querydispatcher.New(
		echartsrenderer.New(),
		chartjsrenderer.New(geos),
	)
	if err != nil {
		geos.Close()
		return nil, err
	}
	assetHandler := handlers.NewAssetHandler().
		With("/geo/"+geo.FileName(geo.USA), handlers.NewFileAsset(path.Join(geoRoot, geo.FileName(geo.USA)), "application/json"))
	var source chartloader.Source
	if cfg.DataURL != "" {
		source = chartloader.New(cfg.DataURL, &http.Client{Timeout: fetchTimeout})
	} else {
		source = chartloader.FileSource{Path: cfg.DataPath}
		assetHandler.With(chartloader.DocumentPath, handlers.NewFileAsset(cfg.DataPath, "application/json"))
	}
	return &Service{
		source: source,
		geos:   geos,
		queryHandler: handlers.NewQueryHandler(
			qd, source,
			color.NewResolver(color.ThemeLookup(cfg.Theme)),
			cfg.DefaultRenderer,
		),
		assetHandler: assetHandler,
		pageHandler:  dashboard.NewHandler(source),
		logger:       slog.Default().With(slog.String("module", "service")),
	}, nil
}

// Close releases the service's background geography loads.
func (s *Service) Close() {
	s.geos.Close()
}

// RegisterHandlers registers every handler of the service on mux.
func (s *Service) RegisterHandlers(mux *http.ServeMux) {
	for _, h := range []handlers.Handler{s.queryHandler, s.assetHandler, s.pageHandler} {
		for path, handler := range h.HandlersByPath() {
			mux.HandleFunc(path, handler)
		}
	}
	mux.HandleFunc("/ExportChart", s.exportChart)
}

// exportChart serves a static image of the chart named by the 'id' query
// parameter, in the format named by 'format' (default png).
func (s *Service) exportChart(w http.ResponseWriter, req *http.Request) {
	id := req.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing chart id", http.StatusBadRequest)
		return
	}
	formatName := req.URL.Query().Get("format")
	if formatName == "" {
		formatName = string(staticrenderer.PNG)
	}
	format, err := staticrenderer.ParseFormat(formatName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := s.source.Load(req.Context())
	if err != nil {
		s.logger.Error("export failed to load document", slog.String("error", err.Error()))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	desc := doc.ChartByID(id)
	if desc == nil {
		http.Error(w, "no chart "+id, http.StatusNotFound)
		return
	}
	contentType := "image/png"
	if format == staticrenderer.SVG {
		contentType = "image/svg+xml"
	}
	var buf bytes.Buffer
	if err := staticrenderer.Render(desc, format, &buf); err != nil {
		s.logger.Warn("export failed",
			slog.String("chart_id", id),
			slog.String("error", err.Error()))
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("failed to write export", slog.String("error", err.Error()))
	}
}
