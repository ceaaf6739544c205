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

// Package color supports the fixed series palette, continuous color spaces,
// and CSS variable resolution shared by all chart renderers.
//
// Series colors are drawn from a Palette by series index, wrapping around
// when there are more series than palette entries:
//
//	for idx, series := range grouped.Series {
//	  c := color.DefaultPalette.At(idx)
//	  ...
//	}
//
// Continuous values, such as the per-state values of a choropleth, are
// colored along a Space: a color continuum from the lowest to the highest
// value of some domain.
package color

// Palette is an ordered, fixed list of HTML hex colors.
type Palette []string

// DefaultPalette is the palette applied to chart series.
var DefaultPalette = Palette{
	"#3b82f6", // blue
	"#10b981", // emerald
	"#f59e0b", // amber
	"#ef4444", // red
	"#8b5cf6", // violet
	"#06b6d4", // cyan
	"#f97316", // orange
	"#ec4899", // pink
	"#14b8a6", // teal
	"#a855f7", // purple
	"#22c55e", // green
	"#6366f1", // indigo
}

// At returns the color for the idx'th series.  Indices past the end of the
// palette wrap around.  An empty palette yields "".
func (p Palette) At(idx int) string {
	if len(p) == 0 {
		return ""
	}
	idx %= len(p)
	if idx < 0 {
		idx += len(p)
	}
	return p[idx]
}

// translucentSuffix is the hex alpha suffix for a 20%-opaque fill.
const translucentSuffix = "33"

// Translucent returns the idx'th color with a 20% alpha channel appended,
// for area fills beneath lines.
func (p Palette) Translucent(idx int) string {
	c := p.At(idx)
	if c == "" {
		return ""
	}
	return c + translucentSuffix
}

// Space represents a color space: a color continuum, from the color for the
// lowest value to the color for the highest.
type Space struct {
	name   string
	colors []string
}

// NewSpace defines a new color space.  Colors in this space are linearly
// interpolated between the specified colors.
func NewSpace(name string, colors ...string) *Space {
	return &Space{
		name:   name,
		colors: colors,
	}
}

// Name returns the Space's name.
func (s *Space) Name() string {
	return s.name
}

// Colors returns a copy of the Space's colors, lowest first.
func (s *Space) Colors() []string {
	return append([]string{}, s.colors...)
}

// MapSpace colors choropleth regions from light (low) to dark (high) blue.
var MapSpace = NewSpace("map", "#dbeafe", "#93c5fd", "#3b82f6", "#1d4ed8", "#1e3a8a")
