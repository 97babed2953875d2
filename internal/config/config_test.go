package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New(viper.New())

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 300, cfg.Cache.PredictionTTLSeconds)
	assert.Equal(t, "./frontend", cfg.App.StaticDir)

	assert.Equal(t, 0.1, cfg.Forecast.TrendSlope)
	assert.Equal(t, 30, cfg.Forecast.HorizonDays)
	assert.Equal(t, 7.0, cfg.Forecast.CriticalDays)
	assert.Equal(t, 15.0, cfg.Forecast.LowStockDays)
	assert.Equal(t, 60.0, cfg.Forecast.OverstockDays)
	assert.Equal(t, 999.0, cfg.Forecast.NoSalesCoverDays)
	assert.Equal(t, 3660, cfg.Forecast.MaxSpanDays)
}

func TestNew_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("SERVER_PORT", "9090")
	v.Set("DB_ENABLED", true)
	v.Set("FORECAST_TREND_SLOPE", 0.25)
	v.Set("FORECAST_OVERSTOCK_DAYS", 90)
	v.Set("STORAGE_BUCKET", "sales")

	cfg := New(v)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, 0.25, cfg.Forecast.TrendSlope)
	assert.Equal(t, 90.0, cfg.Forecast.OverstockDays)
	assert.Equal(t, 7.0, cfg.Forecast.CriticalDays)
	assert.Equal(t, "sales", cfg.Storage.Bucket)
}

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv("FORECAST_HORIZON_DAYS", "14")
	t.Setenv("CACHE_ENABLED", "true")

	v := viper.New()
	v.AutomaticEnv()
	cfg := New(v)

	assert.Equal(t, 14, cfg.Forecast.HorizonDays)
	assert.True(t, cfg.Cache.Enabled)
}
