package weather

import (
	"time"

	"github.com/yanqian/skyfetch/pkg/daybucket"
)

// Request captures the city lookup accepted by the weather service.
type Request struct {
	City string `json:"city" form:"city"`
}

// Current describes present conditions for a city.
type Current struct {
	City         string    `json:"city"`
	Country      string    `json:"country"`
	Temperature  float64   `json:"temperature"`
	FeelsLike    float64   `json:"feelsLike"`
	Humidity     int       `json:"humidity"`
	WindSpeed    float64   `json:"windSpeed"`
	VisibilityKm float64   `json:"visibilityKm"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	IconURL      string    `json:"iconUrl"`
	ObservedAt   time.Time `json:"observedAt"`
}

// ForecastEntry is one 3-hourly upstream forecast point.
type ForecastEntry struct {
	At          time.Time
	Label       string
	Temperature float64
	Description string
	Icon        string
	IconURL     string
}

// DayForecast is the per-day card shown on the dashboard.
type DayForecast struct {
	Day         string    `json:"day"`
	Date        string    `json:"date"`
	At          time.Time `json:"at"`
	Temperature int       `json:"temperature"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	IconURL     string    `json:"iconUrl"`
}

// Report combines current conditions with the daily forecast.
type Report struct {
	Current   Current       `json:"current"`
	Forecast  []DayForecast `json:"forecast"`
	FetchedAt time.Time     `json:"fetchedAt"`
	Cached    bool          `json:"cached"`
}

// ForecastResponse is returned by the forecast-only lookup.
type ForecastResponse struct {
	City string        `json:"city"`
	Days []DayForecast `json:"days"`
}

// Config wires runtime settings for the weather domain.
type Config struct {
	Policy   daybucket.Policy
	MaxDays  int
	CacheTTL time.Duration
}
