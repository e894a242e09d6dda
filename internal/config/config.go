package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Module provides the application configuration.
var Module = fx.Provide(Load, NewReportConfigHolder)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	LogLevel    string

	HTTPAddr string

	// DataDir is the directory holding the persisted XML collections.
	DataDir string

	// BillingCron, when non-empty, schedules automatic reconciliation of the
	// previous calendar month (robfig/cron spec).
	BillingCron string

	SnowflakeNode int64
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:       getenv("APP_SERVICE", "meterbill"),
		AppVersion:    getenv("APP_VERSION", "0.1.0"),
		Environment:   getenv("ENVIRONMENT", "development"),
		LogLevel:      strings.TrimSpace(getenv("LOG_LEVEL", "")),
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		DataDir:       getenv("DATA_DIR", "data"),
		BillingCron:   strings.TrimSpace(getenv("BILLING_CRON", "")),
		SnowflakeNode: getenvInt64("SNOWFLAKE_NODE", 1),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}
