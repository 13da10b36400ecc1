// Package config loads CLI configuration from flags, environment variables
// and an optional config file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variables, so source.bucket is read
// from HYPERCUBE_SOURCE_BUCKET.
const EnvPrefix = "HYPERCUBE"

// Backends accepted in source.backend.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
	BackendMinio = "minio"
)

// Config is the full CLI configuration.
type Config struct {
	Source SourceConfig `mapstructure:"source"`
	Ingest IngestConfig `mapstructure:"ingest"`
	Cube   CubeConfig   `mapstructure:"cube"`
	Log    LogConfig    `mapstructure:"log"`
}

// SourceConfig selects where records are read from.
type SourceConfig struct {
	Backend   string `mapstructure:"backend"`
	Path      string `mapstructure:"path"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Secure    bool   `mapstructure:"secure"`
	Codec     string `mapstructure:"codec"`
}

// IngestConfig tunes loading.
type IngestConfig struct {
	Rate        float64 `mapstructure:"rate"`
	Burst       int     `mapstructure:"burst"`
	Enrich      bool    `mapstructure:"enrich"`
	Location    string  `mapstructure:"location"`
	SkipInvalid bool    `mapstructure:"skip_invalid"`
}

// CubeConfig configures the loaded cube.
type CubeConfig struct {
	ExpectedMeasures []string `mapstructure:"expected_measures"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers default values on v. Every key needs a default so
// AutomaticEnv picks it up during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source.backend", BackendLocal)
	v.SetDefault("source.path", "-")
	v.SetDefault("source.bucket", "")
	v.SetDefault("source.prefix", "")
	v.SetDefault("source.endpoint", "")
	v.SetDefault("source.region", "")
	v.SetDefault("source.access_key", "")
	v.SetDefault("source.secret_key", "")
	v.SetDefault("source.secure", true)
	v.SetDefault("source.codec", "go-json")
	v.SetDefault("ingest.rate", 0)
	v.SetDefault("ingest.burst", 1000)
	v.SetDefault("ingest.enrich", false)
	v.SetDefault("ingest.location", "Local")
	v.SetDefault("ingest.skip_invalid", false)
	v.SetDefault("cube.expected_measures", []string{})
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the config file at path, if any, and decodes v into a Config.
// The file type is taken from its extension (toml, yaml, json).
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports configuration errors.
func (c *Config) Validate() error {
	var errs []error

	switch c.Source.Backend {
	case BackendLocal:
		if c.Source.Path == "" {
			errs = append(errs, errors.New("source.path is required for the local backend"))
		}
	case BackendS3, BackendMinio:
		if c.Source.Bucket == "" {
			errs = append(errs, fmt.Errorf("source.bucket is required for the %s backend", c.Source.Backend))
		}
		if c.Source.Backend == BackendMinio && c.Source.Endpoint == "" {
			errs = append(errs, errors.New("source.endpoint is required for the minio backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("source.backend %q: want one of %v", c.Source.Backend, Backends()))
	}

	if c.Ingest.Rate < 0 {
		errs = append(errs, errors.New("ingest.rate must not be negative"))
	}
	if _, err := c.Ingest.TimeLocation(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains([]string{"text", "json"}, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format %q: want text or json", c.Log.Format))
	}

	return errors.Join(errs...)
}

// Backends returns the accepted source.backend values.
func Backends() []string {
	return []string{BackendLocal, BackendS3, BackendMinio}
}

// TimeLocation resolves ingest.location. "Local" and "" mean time.Local.
func (c IngestConfig) TimeLocation() (*time.Location, error) {
	if c.Location == "" || c.Location == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("ingest.location: %w", err)
	}
	return loc, nil
}

// SlogLevel parses log.level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
