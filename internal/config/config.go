// Package config loads ls-astro settings through viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Defaults for values not set by config file, environment, or flags.
const (
	DefaultLogLevel       = "info"
	DefaultLocation       = "ATCA"
	DefaultRefraction     = 0.00005
	DefaultResolverScript = "/cgi-bin/Calibrators/new/sourcequery.pl"
	DefaultResolveTimeout = 10 * time.Second
	DefaultTrackRefresh   = time.Second
)

// ResolverConfig holds the remote name resolver settings. An empty URL
// disables the remote resolver.
type ResolverConfig struct {
	URL     string        `mapstructure:"url"`
	Script  string        `mapstructure:"script"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MetricsConfig holds the Prometheus endpoint settings. An empty Addr
// disables the endpoint.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// TrackConfig holds settings for the live track view.
type TrackConfig struct {
	Refresh time.Duration `mapstructure:"refresh"`
}

// Config holds all runtime configuration for ls-astro.
// Values are populated from .ls-astro.toml, LSASTRO_* env vars, and CLI flags.
type Config struct {
	LogLevel   string         `mapstructure:"log_level"`
	Location   string         `mapstructure:"location"`
	Refraction float64        `mapstructure:"refraction"`
	SitesFile  string         `mapstructure:"sites_file"`
	Resolver   ResolverConfig `mapstructure:"resolver"`
	Metrics    MetricsConfig  `mapstructure:"metrics"`
	Track      TrackConfig    `mapstructure:"track"`
}

// SetDefaults registers the built-in defaults with viper.
func SetDefaults() {
	viper.SetDefault("log_level", DefaultLogLevel)
	viper.SetDefault("location", DefaultLocation)
	viper.SetDefault("refraction", DefaultRefraction)
	viper.SetDefault("sites_file", "")
	viper.SetDefault("resolver.url", "")
	viper.SetDefault("resolver.script", DefaultResolverScript)
	viper.SetDefault("resolver.timeout", DefaultResolveTimeout)
	viper.SetDefault("metrics.addr", "")
	viper.SetDefault("track.refresh", DefaultTrackRefresh)
}

// BindEnv maps LSASTRO_* environment variables onto config keys, with
// nested keys joined by underscores (LSASTRO_RESOLVER_URL).
func BindEnv() {
	viper.SetEnvPrefix("LSASTRO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	SetDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

var logLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// Validate checks that values are in range.
func (c Config) Validate() error {
	var errs []error
	if !logLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel))
	}
	if strings.TrimSpace(c.Location) == "" {
		errs = append(errs, errors.New("location is empty"))
	}
	if c.Refraction < 0 || c.Refraction > 0.001 {
		errs = append(errs, fmt.Errorf("refraction %v turns outside [0, 0.001]", c.Refraction))
	}
	if c.Resolver.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("resolver.timeout %v must be positive", c.Resolver.Timeout))
	}
	if c.Resolver.URL != "" && !strings.HasPrefix(c.Resolver.URL, "http://") && !strings.HasPrefix(c.Resolver.URL, "https://") {
		errs = append(errs, fmt.Errorf("resolver.url %q is not an http(s) URL", c.Resolver.URL))
	}
	if c.Track.Refresh < 100*time.Millisecond {
		errs = append(errs, fmt.Errorf("track.refresh %v below 100ms", c.Track.Refresh))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
