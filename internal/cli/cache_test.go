package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/matzehuels/wordladder/internal/config"
	"github.com/matzehuels/wordladder/pkg/cache"
)

func TestDefaultCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := defaultCacheDir()
	if err != nil {
		t.Fatalf("defaultCacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", "wordladder"); dir != want {
		t.Errorf("defaultCacheDir() = %q, want %q", dir, want)
	}

	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	dir, _ = defaultCacheDir()
	if want := filepath.Join(xdg, "wordladder"); dir != want {
		t.Errorf("with XDG_CACHE_HOME, defaultCacheDir() = %q, want %q", dir, want)
	}
}

func TestNewCacheBackends(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		backend string
		noCache bool
		check   func(t *testing.T, c cache.Cache)
	}{
		{"File", config.BackendFile, false, func(t *testing.T, c cache.Cache) {
			if _, ok := c.(*cache.FileCache); !ok {
				t.Errorf("got %T, want *cache.FileCache", c)
			}
		}},
		{"Redis", config.BackendRedis, false, func(t *testing.T, c cache.Cache) {
			if _, ok := c.(*cache.RedisCache); !ok {
				t.Errorf("got %T, want *cache.RedisCache", c)
			}
		}},
		{"None", config.BackendNone, false, func(t *testing.T, c cache.Cache) {
			if _, ok := c.(cache.Clearer); ok {
				t.Errorf("disabled cache %T should not be clearable", c)
			}
		}},
		{"NoCacheFlag", config.BackendRedis, true, func(t *testing.T, c cache.Cache) {
			if _, ok := c.(*cache.NullCache); !ok {
				t.Errorf("got %T, want *cache.NullCache", c)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			c.cfg.Cache.Backend = tt.backend
			c.cfg.Cache.Dir = t.TempDir()
			c.cfg.Cache.Redis.Addr = mr.Addr()

			backend, err := c.newCache(context.Background(), tt.noCache)
			if err != nil {
				t.Fatalf("newCache: %v", err)
			}
			defer backend.Close()
			tt.check(t, backend)
		})
	}
}

func TestNewCacheRedisUnreachable(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.cfg.Cache.Backend = config.BackendRedis
	c.cfg.Cache.Redis.Addr = "127.0.0.1:1"

	if _, err := c.newCache(context.Background(), false); err == nil {
		t.Error("expected an error for an unreachable redis")
	}
}

func TestCacheLocation(t *testing.T) {
	c := New(io.Discard, LogInfo)

	c.cfg.Cache.Dir = "/tmp/wl-cache"
	if got := c.cacheLocation(); got != "/tmp/wl-cache" {
		t.Errorf("file location = %q", got)
	}

	c.cfg.Cache.Backend = config.BackendRedis
	c.cfg.Cache.Redis.Addr = "cache:6379"
	c.cfg.Cache.Redis.DB = 3
	if got := c.cacheLocation(); got != "redis://cache:6379/3" {
		t.Errorf("redis location = %q", got)
	}
}
