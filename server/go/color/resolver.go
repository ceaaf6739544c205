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

package color

import (
	"log/slog"
	"strings"
	"sync"
)

// DefaultTheme maps the CSS variables used in chart options to their
// dashboard theme colors.
var DefaultTheme = map[string]string{
	"--chart-primary":    "#1e293b",
	"--chart-green":      "#10b981",
	"--chart-orange":     "#f97316",
	"--chart-teal":       "#06b6d4",
	"--chart-gray":       "#64748b",
	"--chart-light-gray": "#e2e8f0",
	"--chart-purple":     "#8b5cf6",
	"--chart-blue":       "#3b82f6",
	"--chart-light-blue": "#60a5fa",
	"--chart-dark-blue":  "#1d4ed8",
	"--chart-dark-green": "#047857",
	"--chart-pink":       "#ec4899",
	"--chart-indigo":     "#6366f1",
}

// LookupFunc returns the value of a CSS variable, or "" if it is undefined.
type LookupFunc func(name string) string

// ThemeLookup returns a LookupFunc over the provided theme.
func ThemeLookup(theme map[string]string) LookupFunc {
	return func(name string) string {
		return strings.TrimSpace(theme[name])
	}
}

// Resolver resolves "var(--name)" references into concrete values.  Each
// variable is looked up at most once; later references are served from a
// memo.  A Resolver is safe for concurrent use.
type Resolver struct {
	lookup LookupFunc
	logger *slog.Logger

	mu   sync.Mutex
	memo map[string]string
}

// NewResolver returns a new Resolver using the provided lookup.
func NewResolver(lookup LookupFunc) *Resolver {
	return &Resolver{
		lookup: lookup,
		logger: slog.Default().With(slog.String("module", "color")),
		memo:   map[string]string{},
	}
}

func varName(s string) (string, bool) {
	if !strings.HasPrefix(s, "var(") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	return strings.TrimSpace(s[len("var(") : len(s)-1]), true
}

// Resolve returns the value of the CSS variable referenced by s.  Strings
// that are not variable references, and references to undefined variables,
// are returned unchanged.
func (r *Resolver) Resolve(s string) string {
	name, ok := varName(s)
	if !ok {
		return s
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if ret, ok := r.memo[name]; ok {
		return ret
	}
	ret := r.lookup(name)
	if ret == "" {
		r.logger.Debug("unresolved CSS variable", slog.String("var", name))
		ret = s
	}
	r.memo[name] = ret
	return ret
}

// DeepResolve returns a copy of v, a generic JSON value, with every string
// within it passed through Resolve.  Maps and slices are rebuilt; other
// values are returned as-is.
func (r *Resolver) DeepResolve(v any) any {
	switch val := v.(type) {
	case string:
		return r.Resolve(val)
	case []any:
		ret := make([]any, len(val))
		for idx, elem := range val {
			ret[idx] = r.DeepResolve(elem)
		}
		return ret
	case map[string]any:
		ret := make(map[string]any, len(val))
		for k, elem := range val {
			ret[k] = r.DeepResolve(elem)
		}
		return ret
	default:
		return v
	}
}
