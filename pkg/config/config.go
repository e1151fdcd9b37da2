// Package config loads the viewer configuration from a TOML file with
// environment-variable overrides. Everything has a workable default; a
// missing config file is not an error.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/errors"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/render"
)

// Cache backend names accepted in [cache].backend.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full viewer configuration.
type Config struct {
	Services Services `toml:"services"`
	Auth     Auth     `toml:"auth"`
	Cache    CacheCfg `toml:"cache"`
	Viewer   Viewer   `toml:"viewer"`
	Server   Server   `toml:"server"`
}

// Services holds the upstream service endpoints.
type Services struct {
	// GeometryURL is the city geometry service root.
	GeometryURL string `toml:"geometry_url"`

	// BuildingsURL is the building registry root.
	BuildingsURL string `toml:"buildings_url"`
}

// Auth configures credential acquisition for secured layers.
type Auth struct {
	// TokenURL is the password-grant token endpoint. Empty disables the
	// session provider; a static token may still be supplied via env.
	TokenURL string `toml:"token_url"`
	ClientID string `toml:"client_id"`
	Username string `toml:"username"`

	// Token is a fixed bearer token. Prefer the URBANAI_TOKEN env var to
	// keep credentials out of config files.
	Token string `toml:"token"`
}

// CacheCfg selects and tunes the cache backend.
type CacheCfg struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`

	// RedisURL is required when Backend is "redis",
	// e.g. redis://localhost:6379/0.
	RedisURL string `toml:"redis_url"`
}

// Viewer tunes scene composition and interaction.
type Viewer struct {
	// Attribute is the default categorization attribute.
	Attribute string `toml:"attribute"`

	// DetailThreshold is the zoom level at which the detailed
	// representation appears.
	DetailThreshold float64 `toml:"detail_threshold"`

	// FramingSeconds overrides the camera transition length.
	FramingSeconds float64 `toml:"framing_seconds"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`

	ReadTimeoutSeconds  int `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `toml:"write_timeout_seconds"`
}

// Default returns the configuration used when no file and no overrides are
// present.
func Default() Config {
	return Config{
		Cache: CacheCfg{Backend: BackendFile},
		Viewer: Viewer{
			DetailThreshold: render.DefaultDetailThreshold,
			FramingSeconds:  render.FramingDuration.Seconds(),
		},
		Server: Server{
			Addr:                ":8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
		},
	}
}

// DefaultPath returns the standard config file location,
// ~/.config/urbanai/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "urbanai", "config.toml")
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist, then applies environment overrides and validates.
// An empty path selects [DefaultPath].
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config file %s", path)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Environment overrides, mirroring the TOML fields.
func applyEnv(cfg *Config) {
	setenv := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setenv(&cfg.Services.GeometryURL, "URBANAI_GEOMETRY_URL")
	setenv(&cfg.Services.BuildingsURL, "URBANAI_BUILDINGS_URL")
	setenv(&cfg.Auth.TokenURL, "URBANAI_TOKEN_URL")
	setenv(&cfg.Auth.ClientID, "URBANAI_CLIENT_ID")
	setenv(&cfg.Auth.Username, "URBANAI_USERNAME")
	setenv(&cfg.Auth.Token, "URBANAI_TOKEN")
	setenv(&cfg.Cache.Backend, "URBANAI_CACHE_BACKEND")
	setenv(&cfg.Cache.RedisURL, "URBANAI_REDIS_URL")
	setenv(&cfg.Server.Addr, "URBANAI_ADDR")
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend %q requires redis_url", BackendRedis)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Viewer.DetailThreshold < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "detail_threshold must be non-negative")
	}
	return nil
}

// FramingDuration returns the configured camera transition length.
func (c Config) FramingDuration() time.Duration {
	if c.Viewer.FramingSeconds <= 0 {
		return render.FramingDuration
	}
	return time.Duration(c.Viewer.FramingSeconds * float64(time.Second))
}
