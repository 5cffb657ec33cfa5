// Package config loads pinpipe settings from an optional .env file, an
// optional pinpipe.yaml and PINPIPE_* environment variables, and builds the
// global logger.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gaurav-prasanna/pinpipe/core/fetch"
	"github.com/gaurav-prasanna/pinpipe/regions"
	"github.com/gaurav-prasanna/pinpipe/store"
)

// Config is the top-level configuration.
type Config struct {
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Store   store.Config  `yaml:"store" mapstructure:"store"`
	Fetch   FetchConfig   `yaml:"fetch" mapstructure:"fetch"`
	Export  ExportConfig  `yaml:"export" mapstructure:"export"`
	Regions RegionsConfig `yaml:"regions" mapstructure:"regions"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// FetchConfig configures the HTTP fetcher and the header profiles.
type FetchConfig struct {
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent         string  `yaml:"user_agent" mapstructure:"user_agent"`
	BrowserUserAgent  string  `yaml:"browser_user_agent" mapstructure:"browser_user_agent"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// Timeout returns the request timeout as a duration.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSecs) * time.Second
}

// ExportConfig configures optional card export.
type ExportConfig struct {
	Dir    string `yaml:"dir" mapstructure:"dir"`
	Format string `yaml:"format" mapstructure:"format"`
}

// RegionsConfig holds the region rules; empty means regions.DefaultRules.
type RegionsConfig struct {
	Rules []regions.Rule `yaml:"rules" mapstructure:"rules"`
}

// Load reads configuration from .env, file and environment. An explicit
// configFile must exist; otherwise pinpipe.yaml is looked up in the working
// directory and $HOME/.config/pinpipe.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("pinpipe")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pinpipe"))
		}
	}

	// Environment
	v.SetEnvPrefix("PINPIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("store.database_url", "PINPIPE_STORE_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, eris.Wrap(err, "config: bind env")
	}

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("store.driver", "yaml")
	v.SetDefault("store.path", store.DefaultYAMLPath)
	v.SetDefault("store.database_url", "")
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.user_agent", fetch.DefaultUserAgent)
	v.SetDefault("fetch.browser_user_agent", fetch.DefaultBrowserUserAgent)
	v.SetDefault("fetch.requests_per_second", 2.0)
	v.SetDefault("export.dir", "")
	v.SetDefault("export.format", "json")

	// Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
