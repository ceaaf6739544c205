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
	chartdata "github.com/insightsengine/insights/server/go/chart_data"
	"github.com/insightsengine/insights/server/go/util"
)

type point struct {
	x string
	y float64
}

type reference struct {
	id, title, category string
	chartType           chartdata.ChartType
	xField, yField      string
	unit                string
	recommended         bool
	smooth, areaStyle   bool
	points              []point
}

func (r reference) descriptor() *chartdata.ChartDescriptor {
	data := make([]chartdata.Row, len(r.points))
	for idx, p := range r.points {
		data[idx] = chartdata.Row{
			r.xField: util.StringValue(p.x),
			r.yField: util.NumberValue(p.y),
		}
	}
	return &chartdata.ChartDescriptor{
		ID:          r.id,
		Title:       r.title,
		Type:        r.chartType,
		Category:    r.category,
		XAxisField:  r.xField,
		YAxisField:  r.yField,
		YAxisUnit:   r.unit,
		Recommended: r.recommended,
		Smooth:      r.smooth,
		AreaStyle:   r.areaStyle,
		Data:        data,
	}
}

var regionNames = []string{"Nation", "Northeast", "Southeast", "West", "South Central", "Greater"}

func regionPoints(values ...float64) []point {
	ret := make([]point, len(values))
	for idx, v := range values {
		ret[idx] = point{regionNames[idx], v}
	}
	return ret
}

// referenceCharts returns the charts of the workspace sections that the
// sales report does not drive.
func referenceCharts() []*chartdata.ChartDescriptor {
	refs := []reference{{
		id: "postcard_recall_rate", title: "Postcard recall rate", category: "hcp_attitudes",
		chartType: chartdata.BarChart, xField: "region", yField: "recall_rate", unit: "%",
		recommended: true,
		points:      regionPoints(85, 88, 82, 87, 79, 84),
	}, {
		id: "wellness_visit_growth", title: "Wellness visit growth", category: "hcp_attitudes",
		chartType: chartdata.LineChart, xField: "period", yField: "growth_rate", unit: "%",
		recommended: true, smooth: true, areaStyle: true,
		points: []point{
			{"Jan 2024", 12}, {"Feb 2024", 15}, {"Mar 2024", 18},
			{"Apr 2024", 22}, {"May 2024", 25}, {"Jun 2024", 28},
		},
	}, {
		id: "wellness_visit_by_age_group", title: "Wellness visit by age group", category: "hcp_attitudes",
		chartType: chartdata.BarChart, xField: "age_group", yField: "visit_count", unit: "K",
		points: []point{
			{"0-2 years", 45}, {"3-5 years", 38}, {"6-11 years", 52},
			{"12-17 years", 41}, {"18+ years", 67},
		},
	}, {
		id: "birth_rate", title: "Birth rate trends", category: "political_sentiments",
		chartType: chartdata.LineChart, xField: "year", yField: "birth_rate", unit: "per 1000",
		recommended: true, smooth: true,
		points: []point{
			{"2020", 11.4}, {"2021", 10.9}, {"2022", 10.5}, {"2023", 10.2}, {"2024", 9.8},
		},
	}, {
		id: "vaccination_rate_south_central", title: "Vaccination rate in South Central", category: "political_sentiments",
		chartType: chartdata.BarChart, xField: "state", yField: "vaccination_rate", unit: "%",
		recommended: true,
		points: []point{
			{"Texas", 68}, {"Oklahoma", 72}, {"Arkansas", 65}, {"Louisiana", 70}, {"Mississippi", 63},
		},
	}, {
		id: "series_completion", title: "Series completion rate", category: "series_completion",
		chartType: chartdata.BarChart, xField: "region", yField: "completion_rate", unit: "%",
		recommended: true,
		points:      regionPoints(78, 82, 75, 80, 72, 76),
	}, {
		id: "missed_doses", title: "Missed doses analysis", category: "series_completion",
		chartType: chartdata.LineChart, xField: "month", yField: "missed_count", unit: "K",
		smooth: true, areaStyle: true,
		points: []point{
			{"Jan", 12}, {"Feb", 15}, {"Mar", 18}, {"Apr", 14}, {"May", 16}, {"Jun", 13},
		},
	}, {
		id: "ped_population_movement", title: "Pediatric population movement", category: "series_completion",
		chartType: chartdata.BarChart, xField: "age_group", yField: "population_change", unit: "%",
		points: []point{
			{"0-2 years", 2.1}, {"3-5 years", 1.8}, {"6-11 years", 1.5}, {"12-17 years", 1.2},
		},
	}, {
		id: "call_activity_volume", title: "Call activity volume", category: "operational_metrics",
		chartType: chartdata.BarChart, xField: "territory", yField: "call_count", unit: "K",
		recommended: true,
		points: []point{
			{"National", 18}, {"Northeast", 4.2}, {"Southeast", 3.8},
			{"West", 3.5}, {"South Central", 3.2}, {"Greater", 3.3},
		},
	}, {
		id: "territory_performance", title: "Territory performance", category: "operational_metrics",
		chartType: chartdata.LineChart, xField: "month", yField: "performance_score", unit: "score",
		smooth: true,
		points: []point{
			{"Jan", 85}, {"Feb", 88}, {"Mar", 92}, {"Apr", 89}, {"May", 94}, {"Jun", 91},
		},
	}, {
		id: "account_segmentation", title: "Account segmentation", category: "operational_metrics",
		chartType: chartdata.BarChart, xField: "account_type", yField: "count", unit: "accounts",
		points: []point{
			{"Enterprise", 45}, {"Independent", 120}, {"Health System", 28}, {"Clinic", 85},
		},
	}, {
		id: "product_line_analysis", title: "Product line analysis", category: "operational_metrics",
		chartType: chartdata.BarChart, xField: "product", yField: "revenue", unit: "M",
		points: []point{
			{"Vaxneuvance", 485}, {"Prevnar 13", 320}, {"Other Vaccines", 180},
		},
	}}
	ret := make([]*chartdata.ChartDescriptor, len(refs))
	for idx, ref := range refs {
		ret[idx] = ref.descriptor()
	}
	return ret
}

// Layouts returns the workspace sections and collections layout.  Some
// section chart IDs have no configuration and are dropped at display time.
func Layouts() chartdata.PageLayouts {
	return chartdata.PageLayouts{
		Workspace: chartdata.PageLayout{
			Sections: []chartdata.PageSection{{
				Title:         "How is the brand performing?",
				InsightsCount: 6,
				Charts: []string{
					"market_share_regions", "market_share_change_segments",
					"revenue_by_region_map", "growth_trend_regions",
					"vaxneuvance_share_regions", "qoq_market_share_change",
				},
			}, {
				Title:         "How has the revenue forecast evolved?",
				InsightsCount: 4,
				Charts: []string{
					"revenue_vs_forecast", "revenue_components",
					"forecast_trend", "le_revenue_change_baseline",
				},
			}, {
				Title:         "How are HCP and Caregiver attitudes impacting the business?",
				InsightsCount: 3,
				Charts:        []string{"postcard_recall_rate", "wellness_visit_growth", "wellness_visit_by_age_group"},
			}, {
				Title:         "How have shifts in political sentiments and policy impacted health of the business?",
				InsightsCount: 2,
				Charts:        []string{"birth_rate", "vaccination_rate_south_central"},
			}, {
				Title:         "How is the series completion and adherence evolving?",
				InsightsCount: 3,
				Charts:        []string{"series_completion", "missed_doses", "ped_population_movement"},
			}, {
				Title:         "What are the key operational metrics?",
				InsightsCount: 4,
				Charts: []string{
					"call_activity_volume", "territory_performance",
					"account_segmentation", "product_line_analysis",
				},
			}},
		},
		Collections: chartdata.CollectionsLayout{
			Favorites: []string{
				"market_share_regions", "market_share_change_segments",
				"revenue_by_region_map", "revenue_vs_forecast",
				"postcard_recall_rate", "wellness_visit_growth",
				"vaccination_rate_south_central",
			},
			Collections: []chartdata.Collection{
				{Title: "How is the brand growing?", Chart: "revenue_by_region_map", NewCount: 2},
				{Title: "Weekly Tactics Collection", Chart: "call_activity_volume", NewCount: 2},
				{Title: "Quarterly Business Review", Chart: "revenue_vs_forecast", NewCount: 2},
				{Title: "Competitor Watch", Chart: "market_share_change_segments", NewCount: 3},
				{Title: "Market Share Collection", Chart: "market_share_regions"},
				{Title: "My Custom Collection", Chart: "growth_trend_regions"},
			},
		},
	}
}
