package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/skyfetch/internal/domain/weather"
)

const (
	defaultBaseURL     = "https://api.openweathermap.org/data/2.5"
	defaultIconBaseURL = "https://openweathermap.org/img/wn"
	defaultUnits       = "metric"
)

// Options configures the OpenWeatherMap client.
type Options struct {
	APIKey      string
	BaseURL     string
	IconBaseURL string
	Units       string
	Timeout     time.Duration
}

// Client fetches current conditions and 3-hourly forecasts from OpenWeatherMap.
type Client struct {
	apiKey      string
	baseURL     string
	iconBaseURL string
	units       string
	httpClient  *http.Client
}

// NewClient builds an API client.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:      strings.TrimSpace(opts.APIKey),
		baseURL:     strings.TrimRight(orDefault(opts.BaseURL, defaultBaseURL), "/"),
		iconBaseURL: strings.TrimRight(orDefault(opts.IconBaseURL, defaultIconBaseURL), "/"),
		units:       orDefault(opts.Units, defaultUnits),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CurrentWeather retrieves present conditions for city.
func (c *Client) CurrentWeather(ctx context.Context, city string) (weather.Current, error) {
	var raw currentResponse
	if err := c.get(ctx, "weather", city, &raw); err != nil {
		return weather.Current{}, err
	}
	cond := raw.condition()
	return weather.Current{
		City:         raw.Name,
		Country:      raw.Sys.Country,
		Temperature:  raw.Main.Temp,
		FeelsLike:    raw.Main.FeelsLike,
		Humidity:     raw.Main.Humidity,
		WindSpeed:    raw.Wind.Speed,
		VisibilityKm: math.Round(float64(raw.Visibility)/100) / 10,
		Description:  cond.Description,
		Icon:         cond.Icon,
		IconURL:      c.IconURL(cond.Icon),
		ObservedAt:   unixUTC(raw.Dt),
	}, nil
}

// Forecast retrieves the 5 day / 3 hour forecast series for city.
func (c *Client) Forecast(ctx context.Context, city string) ([]weather.ForecastEntry, error) {
	var raw forecastResponse
	if err := c.get(ctx, "forecast", city, &raw); err != nil {
		return nil, err
	}
	entries := make([]weather.ForecastEntry, 0, len(raw.List))
	for _, item := range raw.List {
		cond := item.condition()
		entries = append(entries, weather.ForecastEntry{
			At:          unixUTC(item.Dt),
			Label:       item.DtTxt,
			Temperature: item.Main.Temp,
			Description: cond.Description,
			Icon:        cond.Icon,
			IconURL:     c.IconURL(cond.Icon),
		})
	}
	return entries, nil
}

// IconURL returns the 2x icon image for an icon code.
func (c *Client) IconURL(icon string) string {
	if icon == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s@2x.png", c.iconBaseURL, url.PathEscape(icon))
}

func (c *Client) get(ctx context.Context, resource, city string, out any) error {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.apiKey)
	query.Set("units", c.units)
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, resource, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", resource, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("%s request error: status=%d body=%s", resource, resp.StatusCode, string(payload))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}

type conditionWire struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type mainWire struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

type currentResponse struct {
	Name       string          `json:"name"`
	Dt         int64           `json:"dt"`
	Visibility int             `json:"visibility"`
	Main       mainWire        `json:"main"`
	Weather    []conditionWire `json:"weather"`
	Wind       struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

func (r currentResponse) condition() conditionWire {
	return firstCondition(r.Weather)
}

type forecastResponse struct {
	List []forecastItem `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
}

type forecastItem struct {
	Dt      int64           `json:"dt"`
	DtTxt   string          `json:"dt_txt"`
	Main    mainWire        `json:"main"`
	Weather []conditionWire `json:"weather"`
}

func (i forecastItem) condition() conditionWire {
	return firstCondition(i.Weather)
}

func firstCondition(conds []conditionWire) conditionWire {
	if len(conds) == 0 {
		return conditionWire{}
	}
	return conds[0]
}

func unixUTC(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

var _ weather.Client = (*Client)(nil)
