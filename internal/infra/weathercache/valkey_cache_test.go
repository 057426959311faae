package weathercache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/skyfetch/internal/domain/weather"
)

func newTestValkey(t *testing.T) (*miniredis.Miniredis, valkey.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return mr, client
}

func TestValkeyCacheRoundTrip(t *testing.T) {
	mr, client := newTestValkey(t)
	cache := NewValkeyCache(client, "test")
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "paris")
	require.NoError(t, err)
	require.False(t, ok)

	report := weather.Report{
		Current:  weather.Current{City: "Paris", Country: "FR", Temperature: 21.5},
		Forecast: []weather.DayForecast{{Day: "Mon", Date: "Jul 1", Temperature: 22}},
	}
	require.NoError(t, cache.Set(ctx, "paris", report, 90*time.Second))
	require.True(t, mr.Exists("test:report:paris"))
	require.Equal(t, 90*time.Second, mr.TTL("test:report:paris"))

	got, ok, err := cache.Get(ctx, "paris")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, report.Current, got.Current)
	require.Equal(t, report.Forecast, got.Forecast)

	mr.FastForward(2 * time.Minute)
	_, ok, err = cache.Get(ctx, "paris")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValkeyCacheRoundsUpSubSecondTTL(t *testing.T) {
	mr, client := newTestValkey(t)
	cache := NewValkeyCache(client, "")

	require.NoError(t, cache.Set(context.Background(), "rome", weather.Report{}, 10*time.Millisecond))
	require.Equal(t, time.Second, mr.TTL("skyfetch:report:rome"))
}

func TestValkeyCacheCorruptPayload(t *testing.T) {
	mr, client := newTestValkey(t)
	require.NoError(t, mr.Set("test:report:bad", "not-json"))

	_, _, err := NewValkeyCache(client, "test").Get(context.Background(), "bad")
	require.Error(t, err)
}
