package http

import (
	"bytes"
	"html/template"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/skyfetch/internal/domain/recipe"
	"github.com/yanqian/skyfetch/internal/domain/weather"
)

var funcMap = template.FuncMap{
	"round": func(f float64) int { return int(math.Round(f)) },
	"fmtDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Monday, January 2, 2006")
	},
}

type pageRenderer struct {
	recipes *template.Template
	weather *template.Template
}

func newPageRenderer() *pageRenderer {
	return &pageRenderer{
		recipes: template.Must(template.New("recipes").Funcs(funcMap).Parse(tmplBase + tmplRecipes)),
		weather: template.Must(template.New("weather").Funcs(funcMap).Parse(tmplBase + tmplWeather)),
	}
}

type sortOption struct {
	Value string
	Label string
}

var sortOptions = []sortOption{
	{Value: recipe.SortNone, Label: "Default order"},
	{Value: recipe.SortTimeAsc, Label: "Time: short to long"},
	{Value: recipe.SortTimeDesc, Label: "Time: long to short"},
	{Value: recipe.SortTitleAsc, Label: "Title: A to Z"},
	{Value: recipe.SortTitleDesc, Label: "Title: Z to A"},
}

type recipeView struct {
	ID          int
	Title       string
	Category    string
	Minutes     int
	Ingredients []string
	// StepsHTML is produced by outline.Render, which escapes all text.
	StepsHTML template.HTML
}

type recipesPage struct {
	Title       string
	Query       recipe.Query
	Categories  []string
	SortOptions []sortOption
	Cards       []recipeView
	Error       string
}

type weatherPage struct {
	Title  string
	City   string
	Report *weather.Report
	Error  string
}

// RecipesPage renders the recipe cards as HTML.
func (h *Handler) RecipesPage(c *gin.Context) {
	ctx := c.Request.Context()
	var q recipe.Query
	_ = c.ShouldBindQuery(&q)

	page := recipesPage{Title: "Recipes", Query: q, SortOptions: sortOptions}
	status := http.StatusOK

	cats, err := h.recipeSvc.Categories(ctx)
	if err != nil {
		h.logger.Error("load categories failed", "error", err)
	}
	page.Categories = cats

	cards, err := h.recipeSvc.List(ctx, q)
	if err != nil {
		status, _ = classify(err, "recipes_failed")
		page.Error = publicMessage(err)
	}
	for _, card := range cards {
		page.Cards = append(page.Cards, recipeView{
			ID:          card.ID,
			Title:       card.Title,
			Category:    card.Category,
			Minutes:     card.Minutes,
			Ingredients: card.Ingredients,
			StepsHTML:   template.HTML(card.StepsHTML),
		})
	}

	h.renderPage(c, h.pages.recipes, status, page)
}

// WeatherPage renders the dashboard: welcome card, error card, or report.
func (h *Handler) WeatherPage(c *gin.Context) {
	var req weather.Request
	_ = c.ShouldBindQuery(&req)

	page := weatherPage{Title: "SkyFetch", City: req.City}
	status := http.StatusOK

	if _, present := c.GetQuery("city"); present {
		report, err := h.weatherSvc.Lookup(c.Request.Context(), req)
		if err != nil {
			status, _ = classify(err, "weather_failed")
			page.Error = publicMessage(err)
		} else {
			page.Report = &report
		}
	}

	h.renderPage(c, h.pages.weather, status, page)
}

func (h *Handler) renderPage(c *gin.Context, tmpl *template.Template, status int, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		h.logger.Error("render page failed", "path", c.Request.URL.Path, "error", err)
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "render_failed", "failed to render page", err))
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
