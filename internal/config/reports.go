package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ReportConfig holds renderer-facing tunables for the report queries.
type ReportConfig struct {
	TopCategories     int `mapstructure:"topCategories"`
	TopConfigurations int `mapstructure:"topConfigurations"`
	TopResources      int `mapstructure:"topResources"`
}

func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		TopCategories:     10,
		TopConfigurations: 10,
		TopResources:      15,
	}
}

// ReportConfigHolder exposes the current report configuration and reloads it
// when the backing file changes.
type ReportConfigHolder struct {
	current atomic.Value // holds ReportConfig
}

func NewReportConfigHolder() (*ReportConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("reports")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/meterbill")
	v.AddConfigPath(".")

	v.SetEnvPrefix("METERBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
		defaults := DefaultReportConfig()
		v.SetDefault("reports.topCategories", defaults.TopCategories)
		v.SetDefault("reports.topConfigurations", defaults.TopConfigurations)
		v.SetDefault("reports.topResources", defaults.TopResources)
	}

	var cfg ReportConfig
	if err := v.UnmarshalKey("reports", &cfg); err != nil {
		return nil, err
	}
	if err := validateReportConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ReportConfigHolder{}
	holder.current.Store(cfg)

	if !fileFound {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ReportConfig
		if err := v.UnmarshalKey("reports", &updated); err != nil {
			log.Printf("[report-config] reload failed: %v", err)
			return
		}
		if err := validateReportConfig(updated); err != nil {
			log.Printf("[report-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[report-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *ReportConfigHolder) Get() ReportConfig {
	return h.current.Load().(ReportConfig)
}

func validateReportConfig(cfg ReportConfig) error {
	if cfg.TopCategories <= 0 || cfg.TopConfigurations <= 0 || cfg.TopResources <= 0 {
		return errors.New("reports limits must be positive")
	}
	return nil
}
