// Package config loads the crossflow application configuration.
//
// Settings come from an optional YAML file (crossflow.yaml by default) and
// are then overridden by CROSSFLOW_* environment variables:
//
//	CROSSFLOW_SERVER_ADDR=:9000        -> server.addr
//	CROSSFLOW_CACHE_BACKEND=redis      -> cache.backend
//	CROSSFLOW_CACHE_REDIS_ADDR=r:6379  -> cache.redis_addr
//	CROSSFLOW_STYLE_MAX_WIDTH=14       -> style.max_width
//	CROSSFLOW_LOG_LEVEL=debug          -> log_level
//
// The style section holds the default diagram config; a counts file's own
// config table and command-line flags override it.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/matzehuels/crossflow/pkg/cache"
	"github.com/matzehuels/crossflow/pkg/crossflow"
	"github.com/matzehuels/crossflow/pkg/errors"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "crossflow.yaml"

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "CROSSFLOW_"

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config is the top-level crossflow configuration, corresponding to crossflow.yaml.
type Config struct {
	Server   ServerConfig     `yaml:"server" koanf:"server"`
	Cache    CacheConfig      `yaml:"cache" koanf:"cache"`
	Style    crossflow.Config `yaml:"style" koanf:"style"`
	LogLevel string           `yaml:"log_level" koanf:"log_level"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	Addr           string        `yaml:"addr" koanf:"addr"`
	CORSAllowAll   bool          `yaml:"cors_allow_all" koanf:"cors_allow_all"`
	RequestTimeout time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string        `yaml:"backend" koanf:"backend"`
	Dir           string        `yaml:"dir" koanf:"dir"`
	LayoutTTL     time.Duration `yaml:"layout_ttl" koanf:"layout_ttl"`
	RedisAddr     string        `yaml:"redis_addr" koanf:"redis_addr"`
	RedisDB       int           `yaml:"redis_db" koanf:"redis_db"`
	RedisPassword string        `yaml:"redis_password" koanf:"redis_password"`
	Prefix        string        `yaml:"prefix" koanf:"prefix"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			CORSAllowAll:   true,
			RequestTimeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			Dir:       DefaultCacheDir(),
			LayoutTTL: cache.TTLLayout,
			RedisAddr: "localhost:6379",
			Prefix:    "crossflow:",
		},
		Style:    crossflow.DefaultConfig(),
		LogLevel: "info",
	}
}

// DefaultCacheDir follows XDG: $XDG_CACHE_HOME/crossflow, else
// $HOME/.cache/crossflow, else a temp dir when the home directory is unknown.
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "crossflow")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "crossflow-cache")
	}
	return filepath.Join(home, ".cache", "crossflow")
}

// sections are the nested keys an environment variable may address.
var sections = []string{"server", "cache", "style"}

// envKey maps CROSSFLOW_CACHE_REDIS_ADDR to cache.redis_addr.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, sec := range sections {
		if strings.HasPrefix(key, sec+"_") {
			return sec + "." + strings.TrimPrefix(key, sec+"_")
		}
	}
	return key
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading config %s", path)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "unmarshalling config")
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validBackends = map[string]bool{
	BackendNone:  true,
	BackendFile:  true,
	BackendRedis: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr is required")
	}
	if c.Server.RequestTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.request_timeout must be non-negative")
	}
	if !validBackends[c.Cache.Backend] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid cache.backend %q: must be one of none, file, redis", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendFile && c.Cache.Dir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.dir is required for the file backend")
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if err := errors.ValidateConfig(c.Style); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "style")
	}
	return nil
}

// Open creates the configured cache backend.
func (c CacheConfig) Open(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case BackendNone, "":
		return cache.NewNullCache(), nil
	case BackendFile:
		fc, err := cache.NewFileCache(c.Dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported cache backend %q", c.Backend)
}
