package recipe

import "github.com/yanqian/skyfetch/pkg/outline"

// Sort orders accepted by List.
const (
	SortNone      = ""
	SortTimeAsc   = "time-asc"
	SortTimeDesc  = "time-desc"
	SortTitleAsc  = "title-asc"
	SortTitleDesc = "title-desc"
)

// AllCategories disables the category filter.
const AllCategories = "All"

// Recipe is a catalog entry. Steps may nest to any depth.
type Recipe struct {
	ID          int
	Title       string
	Category    string
	Minutes     int
	Ingredients []string
	Steps       []outline.Item
}

// Query narrows and orders the catalog.
type Query struct {
	Category string `form:"category"`
	Search   string `form:"q"`
	Sort     string `form:"sort"`
}

// Card is the render-ready view of a recipe.
type Card struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Category    string       `json:"category"`
	Minutes     int          `json:"time"`
	Ingredients []string     `json:"ingredients"`
	Steps       outline.List `json:"steps"`
	StepsHTML   string       `json:"stepsHtml"`
	StepCount   int          `json:"stepCount"`
	StepDepth   int          `json:"stepDepth"`
}

// Config wires runtime settings for the recipe domain.
type Config struct {
	CatalogPath string
}
