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

// Package chartloader loads the chart configuration document, either over
// HTTP from the static path it is served at, or from a file on disk.
//
// Loads are never retried and never cached: every call to Load fetches the
// document afresh.  Every failure is reported as a *LoadError.
package chartloader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
)

// DocumentPath is the path, relative to a site root, at which the chart
// configuration document is served.
const DocumentPath = "/chart-data-reference.json"

// LoadError reports a failure to load the chart configuration document.
type LoadError struct {
	// StatusCode is the HTTP status of a non-successful response, or 0 if the
	// load failed before or after receiving a status.
	StatusCode int
	Err        error
}

func (le *LoadError) Error() string {
	if le.StatusCode != 0 {
		return fmt.Sprintf("failed to load chart data: %d %s", le.StatusCode, http.StatusText(le.StatusCode))
	}
	return fmt.Sprintf("failed to load chart data: %s", le.Err)
}

func (le *LoadError) Unwrap() error {
	return le.Err
}

// Source supplies chart configuration documents.
type Source interface {
	Load(ctx context.Context) (*chartdata.Document, error)
}

// Decode decodes a chart configuration document from r.
func Decode(r io.Reader) (*chartdata.Document, error) {
	doc := &chartdata.Document{}
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode chart data")
	}
	return doc, nil
}

// Loader loads the chart configuration document over HTTP.
type Loader struct {
	url    string
	client *http.Client
}

// New returns a new Loader fetching the document from beneath baseURL with
// the provided client.  If client is nil, http.DefaultClient is used.
func New(baseURL string, client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{
		url:    strings.TrimSuffix(baseURL, "/") + DocumentPath,
		client: client,
	}
}

// Load issues a single GET for the document, bypassing any HTTP caches.
func (l *Loader) Load(ctx context.Context) (*chartdata.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, &LoadError{Err: errors.Wrap(err, "failed to create HTTP request")}
	}
	req.Header.Set("Cache-Control", "no-cache")
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &LoadError{Err: errors.Wrap(err, "HTTP request failed")}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{
			StatusCode: resp.StatusCode,
			Err:        errors.Errorf("HTTP request failed with status: %d", resp.StatusCode),
		}
	}
	doc, err := Decode(resp.Body)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return doc, nil
}

// FileSource loads the chart configuration document from a file, reading it
// anew on every Load.
type FileSource struct {
	Path string
}

// Load reads and decodes the document file.
func (fs FileSource) Load(ctx context.Context) (*chartdata.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Err: err}
	}
	f, err := os.Open(fs.Path)
	if err != nil {
		return nil, &LoadError{Err: errors.Wrapf(err, "failed to open %s", fs.Path)}
	}
	defer f.Close()
	doc, err := Decode(f)
	if err != nil {
		return nil, &LoadError{Err: errors.Wrapf(err, "failed to read %s", fs.Path)}
	}
	return doc, nil
}
