package weather

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yanqian/skyfetch/pkg/daybucket"
	apperrors "github.com/yanqian/skyfetch/pkg/errors"
	"github.com/yanqian/skyfetch/pkg/util"
)

const (
	msgEmptyCity           = "Please enter a city name."
	msgCityNotFound        = "City not found. Please check the spelling and try again."
	msgForecastUnavailable = "Forecast data unavailable."
)

// Service exposes the weather dashboard lookups.
type Service interface {
	Lookup(ctx context.Context, req Request) (Report, error)
	Current(ctx context.Context, req Request) (Current, error)
	Forecast(ctx context.Context, req Request) (ForecastResponse, error)
}

// Client fetches raw data from the weather provider.
type Client interface {
	CurrentWeather(ctx context.Context, city string) (Current, error)
	Forecast(ctx context.Context, city string) ([]ForecastEntry, error)
}

// Cache stores finished reports keyed by normalized city.
type Cache interface {
	Get(ctx context.Context, key string) (Report, bool, error)
	Set(ctx context.Context, key string, report Report, ttl time.Duration) error
}

type service struct {
	cfg    Config
	client Client
	cache  Cache
	logger *slog.Logger
	now    util.Clock
}

// NewService wires up the weather domain.
func NewService(cfg Config, client Client, cache Cache, logger *slog.Logger) Service {
	if cfg.Policy == nil {
		cfg.Policy = daybucket.Noon
	}
	return &service{
		cfg:    cfg,
		client: client,
		cache:  cache,
		logger: logger.With("component", "weather.service"),
		now:    util.NowUTC,
	}
}

func (s *service) Lookup(ctx context.Context, req Request) (Report, error) {
	city, err := resolveCity(req.City)
	if err != nil {
		return Report{}, err
	}
	key := cacheKey(city)

	if s.cfg.CacheTTL > 0 {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("weather cache read failed", "city", city, "error", err)
		} else if ok {
			cached.Cached = true
			return cached, nil
		}
	}

	var (
		current Current
		entries []ForecastEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.client.CurrentWeather(gctx, city)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.client.Forecast(gctx, city)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("weather lookup failed", "city", city, "error", err)
		return Report{}, apperrors.Wrap("weather_unavailable", msgCityNotFound, err)
	}

	report := Report{
		Current:   current,
		Forecast:  s.daily(entries),
		FetchedAt: s.now(),
	}
	s.logger.Info("weather report built", "city", city, "days", len(report.Forecast), "policy", s.cfg.Policy.String())

	if s.cfg.CacheTTL > 0 {
		if err := s.cache.Set(ctx, key, report, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("weather cache write failed", "city", city, "error", err)
		}
	}
	return report, nil
}

func (s *service) Current(ctx context.Context, req Request) (Current, error) {
	city, err := resolveCity(req.City)
	if err != nil {
		return Current{}, err
	}
	current, err := s.client.CurrentWeather(ctx, city)
	if err != nil {
		s.logger.Warn("current weather lookup failed", "city", city, "error", err)
		return Current{}, apperrors.Wrap("weather_unavailable", msgCityNotFound, err)
	}
	return current, nil
}

func (s *service) Forecast(ctx context.Context, req Request) (ForecastResponse, error) {
	city, err := resolveCity(req.City)
	if err != nil {
		return ForecastResponse{}, err
	}
	entries, err := s.client.Forecast(ctx, city)
	if err != nil {
		s.logger.Warn("forecast lookup failed", "city", city, "error", err)
		return ForecastResponse{}, apperrors.Wrap("weather_unavailable", msgForecastUnavailable, err)
	}
	return ForecastResponse{City: city, Days: s.daily(entries)}, nil
}

// daily reduces the 3-hourly series to one card per day.
func (s *service) daily(entries []ForecastEntry) []DayForecast {
	series := make([]daybucket.Sample[ForecastEntry], 0, len(entries))
	for _, e := range entries {
		series = append(series, daybucket.Sample[ForecastEntry]{At: e.At, Label: e.Label, Payload: e})
	}
	picked := daybucket.Select(series, s.cfg.Policy, s.cfg.MaxDays)

	days := make([]DayForecast, 0, len(picked))
	for _, p := range picked {
		e := p.Payload
		days = append(days, DayForecast{
			Day:         e.At.Format("Mon"),
			Date:        e.At.Format("Jan 2"),
			At:          e.At,
			Temperature: int(math.Round(e.Temperature)),
			Description: e.Description,
			Icon:        e.Icon,
			IconURL:     e.IconURL,
		})
	}
	return days
}

func resolveCity(input string) (string, error) {
	city := strings.TrimSpace(input)
	if city == "" {
		return "", apperrors.Wrap("invalid_input", msgEmptyCity, nil)
	}
	return city, nil
}

func cacheKey(city string) string {
	return strings.Join(strings.Fields(strings.ToLower(city)), " ")
}
