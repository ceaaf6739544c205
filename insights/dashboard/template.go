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

package dashboard

const pageHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>InsightsEngine</title>
</head>
<body>
<nav>
<a href="/">Workspace</a>
<a href="/collections">Collections</a>
</nav>
<main class="page" data-view="{{.View}}" data-state="{{.State}}">
{{if eq .State.String "error"}}
<section class="error">
<h2>Error Loading Data</h2>
<p>{{.Message}}</p>
</section>
{{else}}
<section class="kpis">
{{range .Kpis}}
<div class="kpi">
<h3>{{.Title}}</h3>
<p class="kpi-value">{{.Value}}</p>
<p class="kpi-trend">{{.Trend}}</p>
</div>
{{end}}
</section>
{{if eq .State.String "loading"}}
<p class="loading">Loading...</p>
{{end}}
{{range .Sections}}
<section class="insights" data-section="{{.Index}}">
<h2>{{.Title}}</h2>
<p class="insights-count">{{.InsightsCount}} insights</p>
{{range .Charts}}
<figure class="chart" data-chart-id="{{.ID}}" data-chart-type="{{.Type}}">
<figcaption>{{.Title}}</figcaption>
</figure>
{{end}}
</section>
{{end}}
{{if .Favorites}}
<section class="favorites">
<h2>Favorites</h2>
{{range .Favorites}}
<figure class="chart" data-chart-id="{{.ID}}" data-chart-type="{{.Type}}">
<figcaption>{{.Title}}</figcaption>
</figure>
{{end}}
</section>
{{end}}
{{if .Collections}}
<section class="collections">
<h2>Collections</h2>
{{range .Collections}}
<article class="collection">
<h3>{{.Title}}</h3>
{{if .NewCount}}<span class="new-count">{{.NewCount}} new</span>{{end}}
<figure class="chart" data-chart-id="{{.Chart.ID}}" data-chart-type="{{.Chart.Type}}">
<figcaption>{{.Chart.Title}}</figcaption>
</figure>
</article>
{{end}}
</section>
{{end}}
{{end}}
</main>
</body>
</html>
`
