package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/skyfetch/internal/domain/recipe"
	"github.com/yanqian/skyfetch/internal/domain/weather"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	recipeSvc  recipe.Service
	weatherSvc weather.Service
	pages      *pageRenderer
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(recipeSvc recipe.Service, weatherSvc weather.Service, logger *slog.Logger) *Handler {
	return &Handler{
		recipeSvc:  recipeSvc,
		weatherSvc: weatherSvc,
		pages:      newPageRenderer(),
		logger:     logger.With("component", "http.handler"),
	}
}

// ListRecipes returns recipe cards filtered and sorted by query parameters.
func (h *Handler) ListRecipes(c *gin.Context) {
	var q recipe.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	cards, err := h.recipeSvc.List(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err, "recipes_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": cards})
}

// GetRecipe returns a single recipe card.
func (h *Handler) GetRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "recipe id must be an integer", err))
		return
	}

	card, err := h.recipeSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "recipes_failed")
		return
	}
	c.JSON(http.StatusOK, card)
}

// RecipeCategories lists the categories available for filtering.
func (h *Handler) RecipeCategories(c *gin.Context) {
	cats, err := h.recipeSvc.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err, "recipes_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

// Weather returns current conditions plus the daily forecast for a city.
func (h *Handler) Weather(c *gin.Context) {
	var req weather.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	report, err := h.weatherSvc.Lookup(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "weather_failed")
		return
	}
	c.JSON(http.StatusOK, report)
}

// CurrentWeather returns only the present conditions for a city.
func (h *Handler) CurrentWeather(c *gin.Context) {
	var req weather.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	current, err := h.weatherSvc.Current(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "weather_failed")
		return
	}
	c.JSON(http.StatusOK, current)
}

// Forecast returns only the daily forecast for a city.
func (h *Handler) Forecast(c *gin.Context) {
	var req weather.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.weatherSvc.Forecast(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "weather_failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) fail(c *gin.Context, err error, fallbackCode string) {
	status, code := classify(err, fallbackCode)
	abortWithError(c, NewHTTPError(status, code, publicMessage(err), err))
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
