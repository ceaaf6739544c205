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
	"math"

	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	"github.com/insightsengine/insights/server/go/util"
)

// continentalStates are the states a region's revenue is spread over, in
// assignment order.
var continentalStates = []string{
	"Alabama", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "Florida", "Georgia", "Idaho", "Illinois",
	"Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana", "Maine",
	"Maryland", "Massachusetts", "Michigan", "Minnesota", "Mississippi",
	"Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire",
	"New Jersey", "New Mexico", "New York", "North Carolina",
	"North Dakota", "Ohio", "Oklahoma", "Oregon", "Pennsylvania",
	"Rhode Island", "South Carolina", "South Dakota", "Tennessee", "Texas",
	"Utah", "Vermont", "Virginia", "Washington", "West Virginia",
	"Wisconsin", "Wyoming",
}

// regionStateCounts is how many states each region's revenue covers.
var regionStateCounts = map[string]int{
	"Northeast":     12,
	"Southeast":     12,
	"West":          10,
	"South Central": 8,
	"Greater":       6,
	nation:          len(continentalStates) / 4,
}

const defaultStateCount = 5

// Map row fields.
const (
	stateNameField     = "name"
	stateValueField    = "value"
	originalValueField = "originalValue"
)

// stateRevenue spreads each region's revenue evenly over consecutive
// states, then normalizes the per-state values into [0, 100].  The
// unnormalized value is kept under originalValue.  When every state has the
// same value, all normalize to 50.
func stateRevenue(rows []chartdata.Row) []chartdata.Row {
	// Regions in first-seen order; a repeated region keeps its position but
	// takes the later revenue.
	var regions []string
	revenue := map[string]float64{}
	for _, row := range rows {
		region := row.Get(regionField).Label()
		if _, ok := revenue[region]; !ok {
			regions = append(regions, region)
		}
		revenue[region] = row.Get(revenueField).Float()
	}
	var states []string
	var values []float64
	for _, region := range regions {
		count, ok := regionStateCounts[region]
		if !ok {
			count = defaultStateCount
		}
		perState := math.Floor(revenue[region] / float64(count))
		for i := 0; i < count && len(states) < len(continentalStates); i++ {
			states = append(states, continentalStates[len(states)])
			values = append(values, perState)
		}
	}
	ret := make([]chartdata.Row, len(states))
	if len(states) == 0 {
		return ret
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	for idx, state := range states {
		normalized := 50.0
		if hi != lo {
			normalized = roundHalfUp((values[idx] - lo) / (hi - lo) * 100)
		}
		ret[idx] = chartdata.Row{
			stateNameField:     util.StringValue(state),
			stateValueField:    util.NumberValue(normalized),
			originalValueField: util.NumberValue(values[idx]),
		}
	}
	return ret
}
