package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const currentFixture = `{
  "name": "London",
  "dt": 1719835200,
  "visibility": 8500,
  "main": {"temp": 17.36, "feels_like": 16.9, "humidity": 72},
  "weather": [{"description": "light rain", "icon": "10d"}],
  "wind": {"speed": 4.12},
  "sys": {"country": "GB"}
}`

const forecastFixture = `{
  "city": {"name": "London", "country": "GB"},
  "list": [
    {"dt": 1719792000, "dt_txt": "2024-07-01 00:00:00", "main": {"temp": 14.2}, "weather": [{"description": "clear sky", "icon": "01n"}]},
    {"dt": 1719835200, "dt_txt": "2024-07-01 12:00:00", "main": {"temp": 19.8}, "weather": [{"description": "few clouds", "icon": "02d"}]},
    {"dt": 1719846000, "dt_txt": "2024-07-01 15:00:00", "main": {"temp": 20.1}, "weather": []}
  ]
}`

func TestClientCurrentWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/weather", r.URL.Path)
		require.Equal(t, "São Paulo", r.URL.Query().Get("q"))
		require.Equal(t, "secret", r.URL.Query().Get("appid"))
		require.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(currentFixture))
	}))
	defer srv.Close()

	client := NewClient(Options{APIKey: "secret", BaseURL: srv.URL + "/", IconBaseURL: "https://icons.test/wn"})
	current, err := client.CurrentWeather(context.Background(), "São Paulo")
	require.NoError(t, err)
	require.Equal(t, "London", current.City)
	require.Equal(t, "GB", current.Country)
	require.Equal(t, 17.36, current.Temperature)
	require.Equal(t, 16.9, current.FeelsLike)
	require.Equal(t, 72, current.Humidity)
	require.Equal(t, 4.12, current.WindSpeed)
	require.Equal(t, 8.5, current.VisibilityKm)
	require.Equal(t, "light rain", current.Description)
	require.Equal(t, "https://icons.test/wn/10d@2x.png", current.IconURL)
	require.Equal(t, time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC), current.ObservedAt)
}

func TestClientForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/forecast", r.URL.Path)
		_, _ = w.Write([]byte(forecastFixture))
	}))
	defer srv.Close()

	client := NewClient(Options{APIKey: "k", BaseURL: srv.URL})
	entries, err := client.Forecast(context.Background(), "London")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "2024-07-01 12:00:00", entries[1].Label)
	require.Equal(t, time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC), entries[1].At)
	require.Equal(t, 19.8, entries[1].Temperature)
	require.Equal(t, "few clouds", entries[1].Description)
	require.Equal(t, "https://openweathermap.org/img/wn/02d@2x.png", entries[1].IconURL)
	require.Empty(t, entries[2].Icon)
	require.Empty(t, entries[2].IconURL)
}

func TestClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	_, err := NewClient(Options{BaseURL: srv.URL}).CurrentWeather(context.Background(), "Atlantis")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=404")
	require.Contains(t, err.Error(), "city not found")
}

func TestClientMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"list": [`))
	}))
	defer srv.Close()

	_, err := NewClient(Options{BaseURL: srv.URL}).Forecast(context.Background(), "London")
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode forecast response")
}

func TestClientHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewClient(Options{BaseURL: srv.URL}).CurrentWeather(ctx, "London")
	require.Error(t, err)
}
