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

// Package querydispatcher provides QueryDispatcher, a type for multiplexing
// multiple chart renderers, and rendering sets of charts with them
// concurrently.
package querydispatcher

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	"github.com/insightsengine/insights/server/go/renderer"
)

// ErrUnknownRenderer is returned when a request names no registered
// renderer.
var ErrUnknownRenderer = errors.New("unknown renderer")

// RenderedChart is a single chart rendered for a page.
type RenderedChart struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Option renderer.Option `json:"option"`
}

// QueryDispatcher multiplexes multiple renderers, which may target entirely
// different charting libraries, allowing the same chart descriptors to be
// rendered for any of them.
type QueryDispatcher struct {
	renderers map[string]renderer.Renderer
	// Renderer names in registration order.
	names  []string
	logger *slog.Logger
}

// New returns a *QueryDispatcher wrapping the provided renderers.  Renderer
// names must be unique.
func New(rs ...renderer.Renderer) (*QueryDispatcher, error) {
	qd := &QueryDispatcher{
		renderers: map[string]renderer.Renderer{},
		logger:    slog.Default().With(slog.String("module", "query_dispatcher")),
	}
	for _, r := range rs {
		if _, ok := qd.renderers[r.Name()]; ok {
			return nil, errors.Errorf("multiple renderers named `%s`", r.Name())
		}
		qd.renderers[r.Name()] = r
		qd.names = append(qd.names, r.Name())
	}
	return qd, nil
}

// Renderers returns the names of the receiver's renderers, in registration
// order.
func (qd *QueryDispatcher) Renderers() []string {
	return append([]string{}, qd.names...)
}

func (qd *QueryDispatcher) renderer(name string) (renderer.Renderer, error) {
	r, ok := qd.renderers[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownRenderer, "`%s`", name)
	}
	return r, nil
}

// Render renders a single descriptor with the named renderer.
func (qd *QueryDispatcher) Render(ctx context.Context, rendererName string, desc *chartdata.ChartDescriptor) (renderer.Option, error) {
	r, err := qd.renderer(rendererName)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, desc)
}

// RenderCharts renders the specified charts of doc with the named renderer,
// concurrently.  The returned charts are in the order of ids.  IDs that do
// not resolve, and charts of types the renderer does not support, are logged
// and skipped.  Any other rendering error cancels the entire request.
func (qd *QueryDispatcher) RenderCharts(ctx context.Context, doc *chartdata.Document, rendererName string, ids []string) ([]*RenderedChart, error) {
	descs := make([]*chartdata.ChartDescriptor, 0, len(ids))
	for _, id := range ids {
		desc := doc.ChartByID(id)
		if desc == nil {
			qd.logger.Warn("skipping unresolved chart", slog.String("chart_id", id))
			continue
		}
		descs = append(descs, desc)
	}
	return qd.render(ctx, rendererName, descs)
}

// RenderSection renders the charts of the sectionIndex'th section of the
// specified page, as RenderCharts does.
func (qd *QueryDispatcher) RenderSection(ctx context.Context, doc *chartdata.Document, rendererName string, page chartdata.Page, sectionIndex int) ([]*RenderedChart, error) {
	return qd.render(ctx, rendererName, doc.ChartsForSection(page, sectionIndex))
}

func (qd *QueryDispatcher) render(ctx context.Context, rendererName string, descs []*chartdata.ChartDescriptor) ([]*RenderedChart, error) {
	r, err := qd.renderer(rendererName)
	if err != nil {
		return nil, err
	}
	// Each goroutine writes only its own index.
	rendered := make([]*RenderedChart, len(descs))
	errg, ctx := errgroup.WithContext(ctx)
	for idx, desc := range descs {
		errg.Go(func() error {
			opt, err := r.Render(ctx, desc)
			if errors.Is(err, renderer.ErrUnsupportedType) {
				qd.logger.Warn("skipping unsupported chart",
					slog.String("chart_id", desc.ID),
					slog.String("renderer", rendererName),
					slog.Any("error", err))
				return nil
			}
			if err != nil {
				return errors.Wrapf(err, "failed to render chart `%s`", desc.ID)
			}
			rendered[idx] = &RenderedChart{
				ID:     desc.ID,
				Title:  desc.Title,
				Option: opt,
			}
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	ret := make([]*RenderedChart, 0, len(rendered))
	for _, rc := range rendered {
		if rc != nil {
			ret = append(ret, rc)
		}
	}
	return ret, nil
}
