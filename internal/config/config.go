// Package config loads theaterlog configuration from an optional YAML file,
// environment variables and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/validate"
	"github.com/spf13/viper"

	"github.com/rcliao/theaterlog/internal/fetch"
)

// Config is the full runtime configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Listing ListingConfig `mapstructure:"listing"`
	Export  ExportConfig  `mapstructure:"export"`
}

// StorageConfig locates the database file.
type StorageConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LoggerConfig controls log output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// ListingConfig configures the external listing fetcher.
type ListingConfig struct {
	ReaderURL      string   `mapstructure:"readerUrl" validate:"required"`
	SiteURL        string   `mapstructure:"siteUrl" validate:"required"`
	Blacklist      []string `mapstructure:"blacklist"`
	MaxResults     int      `mapstructure:"maxResults" validate:"min:1"`
	MinContent     int      `mapstructure:"minContent" validate:"min:1"`
	TimeoutSeconds int      `mapstructure:"timeoutSeconds" validate:"min:1"`
}

// ExportConfig configures file delivery.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	v := validate.Struct(c)
	if !v.Validate() {
		return v.Errors.OneError()
	}
	return nil
}

// Load reads the configuration. path may be empty, in which case only
// defaults and environment variables apply; a named file that cannot be read
// is an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()
	v.SetDefault("storage.path", filepath.Join(home, ".theaterlog", "theaterlog.db"))
	v.SetDefault("logger.level", "warn")
	v.SetDefault("listing.readerUrl", "https://r.jina.ai/")
	v.SetDefault("listing.siteUrl", "https://www.theater.nl")
	v.SetDefault("listing.blacklist", fetch.DefaultBlacklist())
	v.SetDefault("listing.maxResults", 25)
	v.SetDefault("listing.minContent", 100)
	v.SetDefault("listing.timeoutSeconds", 15)
	v.SetDefault("export.dir", ".")

	v.BindEnv("storage.path", "THEATERLOG_DB")
	v.BindEnv("logger.level", "THEATERLOG_LOG_LEVEL")
	v.BindEnv("listing.readerUrl", "THEATERLOG_READER_URL")
	v.BindEnv("listing.siteUrl", "THEATERLOG_SITE_URL")
	v.BindEnv("export.dir", "THEATERLOG_EXPORT_DIR")

	if path != "" {
		filename := filepath.Base(path)
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}
