// Package config loads panelview's TOML configuration file.
//
// The file is looked up at, in order: the path given with --config,
// $XDG_CONFIG_HOME/panelview/config.toml, ~/.config/panelview/config.toml.
// A missing file is not an error; every field has a default.
//
//	[render]
//	formats = ["svg", "png"]
//	png_scale = 2.0
//	legacy_clamp = false
//	strict = false
//
//	[cache]
//	backend = "redis"          # file | redis | mongo | none
//	ttl = "168h"
//	redis_addr = "localhost:6379"
//	key_prefix = "staging:"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
//	write_timeout = "30s"
//	max_body_bytes = 1048576
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/panelview/pkg/errors"
)

// AppName names the config and cache directories.
const AppName = "panelview"

// Config is the full configuration file.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

// RenderConfig holds pipeline defaults.
type RenderConfig struct {
	Formats     []string `toml:"formats"`
	PNGScale    float64  `toml:"png_scale"`
	LegacyClamp bool     `toml:"legacy_clamp"`
	Strict      bool     `toml:"strict"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	TTL           time.Duration `toml:"ttl"`
	RedisAddr     string        `toml:"redis_addr"`
	MongoURI      string        `toml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database"`
	KeyPrefix     string        `toml:"key_prefix"`
}

// ServerConfig configures `panelview serve`.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Formats:  []string{"svg"},
			PNGScale: 2,
		},
		Cache: CacheConfig{
			Backend:       "file",
			TTL:           7 * 24 * time.Hour,
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: AppName,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
	}
}

// Load reads the config at path, or at the default location when path is
// empty. Values absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path

	return cfg, cfg.Validate()
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "file", "redis", "mongo", "none":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q must be one of: file, redis, mongo, none", c.Cache.Backend)
	}
	if c.Render.PNGScale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.png_scale must be positive")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	return nil
}

// DefaultPath returns the XDG config file location, or "" when no home
// directory can be determined.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName, "config.toml")
}

// CacheDir returns the cache directory: cache.dir if set, else the XDG
// cache location (~/.cache/panelview/).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
