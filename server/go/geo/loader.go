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

package geo

import (
	"context"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// USA is the only supported map type.
const USA = "USA"

// ErrUnsupportedMap is returned when a map type has no bundled geography.
var ErrUnsupportedMap = errors.New("unsupported map type")

// objectKeys maps supported map types to their TopoJSON object keys.
var objectKeys = map[string]string{
	USA: "usa",
}

// FileName returns the name of the geography file for mapType.
func FileName(mapType string) string {
	return mapType + ".json"
}

type loadState int

const (
	loading loadState = iota
	// failed loads are not retried.
	failed
)

// Loader loads geographies from bundled files, caching the most recently
// used.  It supports a blocking Load and a non-blocking Lookup, which starts
// a single background load on first use and reports the geography as not
// ready until that load resolves.
type Loader struct {
	fsys   fs.FS
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu sync.Mutex
	// An LRU cache holding the most recently-used decoded geographies.
	lru *simplelru.LRU
	// Map types with unresolved or failed background loads.
	states map[string]loadState
}

// NewLoader returns a new Loader reading geography files from fsys, caching
// up to cap decoded geographies.
func NewLoader(fsys fs.FS, cap int) (*Loader, error) {
	lru, err := simplelru.NewLRU(cap, nil /* no onEvict policy */)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create geography cache")
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		fsys:   fsys,
		logger: slog.Default().With(slog.String("module", "geo")),
		ctx:    ctx,
		cancel: cancel,
		lru:    lru,
		states: map[string]loadState{},
	}, nil
}

func (l *Loader) cached(mapType string) ([]*geojson.Feature, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	featsIf, ok := l.lru.Get(mapType)
	if !ok {
		return nil, false
	}
	feats, ok := featsIf.([]*geojson.Feature)
	return feats, ok
}

func (l *Loader) store(mapType string, feats []*geojson.Feature) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.states, mapType)
	l.lru.Add(mapType, feats)
}

// read reads and decodes the geography for mapType.
func (l *Loader) read(ctx context.Context, mapType string) ([]*geojson.Feature, error) {
	objectKey, ok := objectKeys[mapType]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedMap, "map type %q", mapType)
	}
	data, err := fs.ReadFile(l.fsys, FileName(mapType))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read geography for %q", mapType)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	feats, err := Decode(data, objectKey)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode geography for %q", mapType)
	}
	return feats, nil
}

// Load returns the features of mapType, reading them if they are not cached.
func (l *Loader) Load(ctx context.Context, mapType string) ([]*geojson.Feature, error) {
	if feats, ok := l.cached(mapType); ok {
		return feats, nil
	}
	feats, err := l.read(ctx, mapType)
	if err != nil {
		return nil, err
	}
	l.store(mapType, feats)
	return feats, nil
}

// Lookup returns the features of mapType and true if they are loaded.
// Otherwise, it starts loading them in the background if no load has yet
// been attempted, and returns false.  A failed background load is logged and
// never retried, so its map type is never ready.
func (l *Loader) Lookup(mapType string) ([]*geojson.Feature, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if featsIf, ok := l.lru.Get(mapType); ok {
		feats, ok := featsIf.([]*geojson.Feature)
		return feats, ok
	}
	if _, ok := l.states[mapType]; ok {
		return nil, false
	}
	if l.ctx.Err() != nil {
		return nil, false
	}
	l.states[mapType] = loading
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		feats, err := l.read(l.ctx, mapType)
		if err != nil {
			l.logger.Error("failed to load geography",
				slog.String("map_type", mapType),
				slog.Any("error", err))
			l.mu.Lock()
			l.states[mapType] = failed
			l.mu.Unlock()
			return
		}
		l.store(mapType, feats)
	}()
	return nil, false
}

// Close cancels any in-flight background loads and waits for them to exit.
func (l *Loader) Close() {
	l.cancel()
	l.wg.Wait()
}
