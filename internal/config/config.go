// backend-go/internal/config/config.go
package config

import (
	"sync"

	"github.com/andresuchdata/inventory-predictor/backend-go/internal/forecast"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
	Cache    CacheConfig
	Storage  StorageConfig
	Drive    DriveConfig
	Forecast forecast.Thresholds
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type AppConfig struct {
	StaticDir string
	LogLevel  string
}

type CacheConfig struct {
	Enabled              bool
	RedisURL             string
	RedisHost            string
	RedisPort            string
	RedisPassword        string
	RedisDB              int
	PredictionTTLSeconds int
}

// StorageConfig points at an S3-compatible bucket holding sales history
// exports and archived forecasts.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

type DriveConfig struct {
	CredentialsJSON string
}

var (
	once     sync.Once
	instance *Config
)

// Load reads the process configuration once from .env and the environment.
func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		v := viper.New()
		setDefaults(v)
		v.AutomaticEnv()

		instance = New(v)
	})

	return instance
}

func setDefaults(v *viper.Viper) {
	defaults := forecast.DefaultThresholds()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("DB_ENABLED", false)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "inventory_predictor")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("APP_STATIC_DIR", "./frontend")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_PREDICTION_TTL_SECONDS", 300)
	v.SetDefault("STORAGE_ENDPOINT", "")
	v.SetDefault("STORAGE_ACCESS_KEY", "")
	v.SetDefault("STORAGE_SECRET_KEY", "")
	v.SetDefault("STORAGE_BUCKET", "")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_USE_SSL", true)
	v.SetDefault("GOOGLE_DRIVE_CREDENTIALS_JSON", "")
	v.SetDefault("FORECAST_TREND_SLOPE", defaults.TrendSlope)
	v.SetDefault("FORECAST_HORIZON_DAYS", defaults.HorizonDays)
	v.SetDefault("FORECAST_CRITICAL_DAYS", defaults.CriticalDays)
	v.SetDefault("FORECAST_LOW_STOCK_DAYS", defaults.LowStockDays)
	v.SetDefault("FORECAST_OVERSTOCK_DAYS", defaults.OverstockDays)
	v.SetDefault("FORECAST_NO_SALES_COVER_DAYS", defaults.NoSalesCoverDays)
	v.SetDefault("FORECAST_MAX_SPAN_DAYS", defaults.MaxSpanDays)
}

// New builds a Config from an explicit viper instance. Defaults are applied
// for any key the instance does not set.
func New(v *viper.Viper) *Config {
	setDefaults(v)

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Enabled:  v.GetBool("DB_ENABLED"),
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		App: AppConfig{
			StaticDir: v.GetString("APP_STATIC_DIR"),
			LogLevel:  v.GetString("LOG_LEVEL"),
		},
		Cache: CacheConfig{
			Enabled:              v.GetBool("CACHE_ENABLED"),
			RedisURL:             v.GetString("REDIS_URL"),
			RedisHost:            v.GetString("REDIS_HOST"),
			RedisPort:            v.GetString("REDIS_PORT"),
			RedisPassword:        v.GetString("REDIS_PASSWORD"),
			RedisDB:              v.GetInt("REDIS_DB"),
			PredictionTTLSeconds: v.GetInt("CACHE_PREDICTION_TTL_SECONDS"),
		},
		Storage: StorageConfig{
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
		},
		Drive: DriveConfig{
			CredentialsJSON: v.GetString("GOOGLE_DRIVE_CREDENTIALS_JSON"),
		},
		Forecast: forecast.Thresholds{
			TrendSlope:       v.GetFloat64("FORECAST_TREND_SLOPE"),
			HorizonDays:      v.GetInt("FORECAST_HORIZON_DAYS"),
			CriticalDays:     v.GetFloat64("FORECAST_CRITICAL_DAYS"),
			LowStockDays:     v.GetFloat64("FORECAST_LOW_STOCK_DAYS"),
			OverstockDays:    v.GetFloat64("FORECAST_OVERSTOCK_DAYS"),
			NoSalesCoverDays: v.GetFloat64("FORECAST_NO_SALES_COVER_DAYS"),
			MaxSpanDays:      v.GetInt("FORECAST_MAX_SPAN_DAYS"),
		},
	}
}
