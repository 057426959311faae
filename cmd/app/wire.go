//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/skyfetch/internal/bootstrap"
	"github.com/yanqian/skyfetch/internal/domain/recipe"
	"github.com/yanqian/skyfetch/internal/domain/weather"
	"github.com/yanqian/skyfetch/internal/infra/config"
	"github.com/yanqian/skyfetch/internal/infra/weather/openweather"
	httpiface "github.com/yanqian/skyfetch/internal/interface/http"
	"github.com/yanqian/skyfetch/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideRecipeConfig,
		provideCatalog,
		provideWeatherConfig,
		provideOpenWeatherClient,
		provideWeatherCache,
		recipe.NewService,
		weather.NewService,
		wire.Bind(new(weather.Client), new(*openweather.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
