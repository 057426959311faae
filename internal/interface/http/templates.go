package http

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<style>
*{box-sizing:border-box}
body{font-family:system-ui,sans-serif;background:#f4f7fb;color:#1f2937;margin:0}
nav{background:#1e3a8a;padding:10px 16px;display:flex;gap:16px}
nav a{color:#e0e7ff;text-decoration:none;font-weight:600}
main{max-width:960px;margin:0 auto;padding:16px}
form.controls{display:flex;gap:8px;flex-wrap:wrap;margin-bottom:16px}
.recipe-card,.current-weather,.welcome-card,.error-card,.forecast-card{background:#fff;border-radius:8px;box-shadow:0 1px 3px rgba(0,0,0,.1);padding:12px 16px;margin-bottom:12px}
.recipe-meta,.date-text,.fc-date{color:#6b7280;font-size:13px}
.forecast{display:flex;gap:12px;flex-wrap:wrap}
.forecast-card{text-align:center;min-width:120px}
.temp-value{font-size:40px;font-weight:700}
.weather-details{display:grid;grid-template-columns:repeat(2,1fr);gap:6px}
.error-card{border-left:4px solid #dc2626}
</style>
</head>
<body>
<nav><a href="/">Recipes</a><a href="/weather">SkyFetch</a></nav>
<main>{{template "content" .}}</main>
</body>
</html>{{end}}
`

const tmplRecipes = `
{{define "content"}}
<h1>Recipes</h1>
<form class="controls" method="get" action="/">
  <select name="category">
    <option value="All">All</option>
    {{range .Categories}}<option value="{{.}}"{{if eq . $.Query.Category}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  <select name="sort">
    {{range .SortOptions}}<option value="{{.Value}}"{{if eq .Value $.Query.Sort}} selected{{end}}>{{.Label}}</option>{{end}}
  </select>
  <input type="search" name="q" value="{{.Query.Search}}" placeholder="Search recipes">
  <button type="submit">Apply</button>
</form>
{{if .Error}}<div class="error-card"><p>{{.Error}}</p></div>{{end}}
{{range .Cards}}
<div class="recipe-card" data-id="{{.ID}}">
  <h3>{{.Title}}</h3>
  <p class="recipe-meta">{{.Category}} • {{.Minutes}} mins</p>
  <details class="steps"><summary>Steps</summary>{{.StepsHTML}}</details>
  <details class="ingredients"><summary>Ingredients</summary>
    <ul>{{range .Ingredients}}<li>{{.}}</li>{{end}}</ul>
  </details>
</div>
{{else}}
{{if not .Error}}<p>No recipes match.</p>{{end}}
{{end}}
{{end}}
`

const tmplWeather = `
{{define "content"}}
<form class="controls" method="get" action="/weather">
  <input type="text" name="city" value="{{.City}}" placeholder="Enter city name">
  <button type="submit">Search</button>
</form>
{{if .Error}}
<div class="error-card">
  <h3>Oops!</h3>
  <p>{{.Error}}</p>
</div>
{{else if .Report}}
{{with .Report.Current}}
<div class="current-weather">
  <div class="weather-header">
    <h2>{{.City}}, {{.Country}}</h2>
    <div class="date-text">{{fmtDate .ObservedAt}}</div>
    {{if .IconURL}}<img src="{{.IconURL}}" alt="{{.Description}}">{{end}}
  </div>
  <div class="temp-value">{{round .Temperature}}°C</div>
  <div class="description">{{.Description}}</div>
  <div class="weather-details">
    <span>Feels like {{round .FeelsLike}}°C</span>
    <span>Humidity {{.Humidity}}%</span>
    <span>Wind {{.WindSpeed}} m/s</span>
    <span>Visibility {{printf "%.1f" .VisibilityKm}} km</span>
  </div>
</div>
{{end}}
{{if .Report.Forecast}}
<section class="forecast">
  {{range .Report.Forecast}}
  <div class="forecast-card">
    <div class="fc-day">{{.Day}}</div>
    <div class="fc-date">{{.Date}}</div>
    {{if .IconURL}}<div class="fc-icon"><img src="{{.IconURL}}" alt="{{.Description}}"></div>{{end}}
    <div class="fc-temp">{{.Temperature}}°C</div>
    <div class="fc-desc">{{.Description}}</div>
  </div>
  {{end}}
</section>
{{else}}
<p>No forecast available.</p>
{{end}}
{{else}}
<div class="welcome-card">
  <h2>Welcome to SkyFetch!</h2>
  <p>Type a city name above to get the current weather and a 5-day forecast.</p>
</div>
{{end}}
{{end}}
`
