package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/panelview/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty", cfg.Path)
	}
	if cfg.Server.Addr != ":8080" || cfg.Cache.Backend != "file" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, AppName), 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, AppName, "config.toml")
	if err := os.WriteFile(path, []byte("[render]\nstrict = true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Render.Strict || cfg.Path != path {
		t.Errorf("XDG config not loaded: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[render]
formats = ["svg", "png"]
png_scale = 3.0
legacy_clamp = true

[cache]
backend = "redis"
ttl = "1h"
redis_addr = "cache:6379"
key_prefix = "staging:"

[server]
addr = "127.0.0.1:9000"
read_timeout = "5s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(cfg.Render.Formats, []string{"svg", "png"}) || cfg.Render.PNGScale != 3 || !cfg.Render.LegacyClamp {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.TTL != time.Hour || cfg.Cache.RedisAddr != "cache:6379" || cfg.Cache.KeyPrefix != "staging:" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	// Untouched values keep defaults.
	if cfg.Server.WriteTimeout != 30*time.Second || cfg.Server.MaxBodyBytes != 1<<20 {
		t.Errorf("defaults lost: %+v", cfg.Server)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", "[render\n", errors.ErrCodeInvalidConfig},
		{"unknown key", "[render]\ncolour = 'red'\n", errors.ErrCodeInvalidConfig},
		{"bad backend", "[cache]\nbackend = 'memcached'\n", errors.ErrCodeInvalidConfig},
		{"bad scale", "[render]\npng_scale = 0.0\n", errors.ErrCodeInvalidConfig},
		{"bad body limit", "[server]\nmax_body_bytes = 0\n", errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("got %v, want FILE_NOT_FOUND", err)
	}
}

func TestCacheDir(t *testing.T) {
	cfg := Default()
	cfg.Cache.Dir = "/srv/cache"
	if dir, _ := cfg.CacheDir(); dir != "/srv/cache" {
		t.Errorf("explicit dir = %q", dir)
	}

	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	if dir, _ := Default().CacheDir(); dir != filepath.Join(xdg, AppName) {
		t.Errorf("XDG dir = %q", dir)
	}
}
