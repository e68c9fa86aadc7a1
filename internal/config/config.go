// Package config loads the wordladder configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/wordladder/config.toml
// (~/.config/wordladder/config.toml when XDG_CONFIG_HOME is unset) unless a
// path is given explicitly. Every field is optional; command-line flags
// override file values.
//
//	word_file = "/usr/share/wordladder/words4.tsv"
//	workers = 8
//
//	[search]
//	step_delay = "50ms"
//	edge_delay = "5ms"
//
//	[cache]
//	backend = "redis"
//
//	[cache.redis]
//	addr = "localhost:6379"
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	werrors "github.com/matzehuels/wordladder/pkg/errors"
)

const appName = "wordladder"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full configuration.
type Config struct {
	WordFile string       `toml:"word_file"`
	Workers  int          `toml:"workers"` // 0 means one per CPU
	Search   SearchConfig `toml:"search"`
	Cache    CacheConfig  `toml:"cache"`
	Server   ServerConfig `toml:"server"`
	TUI      TUIConfig    `toml:"tui"`
}

// SearchConfig paces the search engine for live display.
type SearchConfig struct {
	StepDelay time.Duration `toml:"step_delay"`
	EdgeDelay time.Duration `toml:"edge_delay"`
}

// CacheConfig selects and configures the graph cache.
type CacheConfig struct {
	Backend   string      `toml:"backend"`
	Dir       string      `toml:"dir"`       // file backend; empty means the XDG cache dir
	Namespace string      `toml:"namespace"` // key prefix shared by all backends
	Redis     RedisConfig `toml:"redis"`
}

// RedisConfig locates the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr    string        `toml:"addr"`
	MaxRuns int           `toml:"max_runs"` // finished runs kept for inspection
	RunTTL  time.Duration `toml:"run_ttl"`
}

// TUIConfig configures the watch command.
type TUIConfig struct {
	Refresh time.Duration `toml:"refresh"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Search: SearchConfig{
			StepDelay: 40 * time.Millisecond,
			EdgeDelay: 5 * time.Millisecond,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Server: ServerConfig{
			Addr:    "localhost:8080",
			MaxRuns: 64,
			RunTTL:  time.Hour,
		},
		TUI: TUIConfig{
			Refresh: 50 * time.Millisecond,
		},
	}
}

// DefaultPath returns the XDG location of the configuration file.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration at path on top of [Default]. An empty path
// means [DefaultPath], which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return Config{}, werrors.Wrap(werrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return Config{}, werrors.Wrap(werrors.ErrCodeInvalidConfig, err, "open %s", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, werrors.Wrap(werrors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Decode parses TOML from r on top of [Default] and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, werrors.Wrap(werrors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, werrors.New(werrors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges and cross-field requirements.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return werrors.New(werrors.ErrCodeInvalidConfig, format, args...)
	}

	if c.Workers < 0 {
		return invalid("workers must not be negative, got %d", c.Workers)
	}
	if c.Search.StepDelay < 0 || c.Search.EdgeDelay < 0 {
		return invalid("search delays must not be negative")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return invalid("cache.redis.addr is required for the redis backend")
		}
	default:
		return invalid("cache.backend must be one of file, redis, none; got %q", c.Cache.Backend)
	}
	if c.Server.Addr == "" {
		return invalid("server.addr must not be empty")
	}
	if c.Server.MaxRuns < 1 {
		return invalid("server.max_runs must be at least 1, got %d", c.Server.MaxRuns)
	}
	if c.Server.RunTTL <= 0 {
		return invalid("server.run_ttl must be positive")
	}
	if c.TUI.Refresh <= 0 {
		return invalid("tui.refresh must be positive")
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
