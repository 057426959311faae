package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/skyfetch/internal/domain/recipe"
	"github.com/yanqian/skyfetch/internal/domain/weather"
	"github.com/yanqian/skyfetch/internal/infra/config"
	"github.com/yanqian/skyfetch/internal/infra/weather/openweather"
	"github.com/yanqian/skyfetch/internal/infra/weathercache"
)

func provideRecipeConfig(cfg *config.Config) recipe.Config {
	return recipe.Config{CatalogPath: cfg.Recipes.CatalogPath}
}

func provideCatalog(cfg recipe.Config, logger *slog.Logger) (*recipe.Catalog, error) {
	catalog, err := recipe.LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	source := cfg.CatalogPath
	if source == "" {
		source = "embedded"
	}
	logger.Info("recipe catalog loaded", "source", source, "recipes", len(catalog.Recipes()))
	return catalog, nil
}

func provideWeatherConfig(cfg *config.Config) (weather.Config, error) {
	policy, err := cfg.DayPolicy()
	if err != nil {
		return weather.Config{}, err
	}
	return weather.Config{
		Policy:   policy,
		MaxDays:  cfg.Weather.MaxDays,
		CacheTTL: cfg.Weather.CacheTTL,
	}, nil
}

func provideOpenWeatherClient(cfg *config.Config, logger *slog.Logger) *openweather.Client {
	if strings.TrimSpace(cfg.Weather.APIKey) == "" {
		logger.Warn("weather api key not set, upstream lookups will be rejected")
	}
	return openweather.NewClient(openweather.Options{
		APIKey:      cfg.Weather.APIKey,
		BaseURL:     cfg.Weather.BaseURL,
		IconBaseURL: cfg.Weather.IconBaseURL,
		Units:       cfg.Weather.Units,
		Timeout:     cfg.Weather.Timeout,
	})
}

func provideWeatherCache(cfg *config.Config, logger *slog.Logger) weather.Cache {
	fallback := func() weather.Cache {
		return weathercache.NewMemoryCache(cfg.Cache.MemorySize, cfg.Weather.CacheTTL)
	}
	if !cfg.Cache.Valkey.Enabled {
		return fallback()
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return fallback()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return fallback()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return fallback()
	}
	logger.Info("weather valkey cache enabled", "addr", cfg.Cache.Valkey.Addr)
	return weathercache.NewValkeyCache(client, cfg.Cache.Valkey.Prefix)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	addr := strings.TrimSpace(cfg.Cache.Valkey.Addr)
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
