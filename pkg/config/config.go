// Package config loads user settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/pkgdeps/config.toml (falling back to
// ~/.config/pkgdeps/config.toml) and every key is optional:
//
//	file = "./pnpm-lock.yaml"
//	format = "text"          # text, json, dot or svg
//	trace = false
//	trace_instances = false
//	legacy_match = false
//
//	[cache]
//	backend = "file"         # file, redis or none
//	redis_url = "redis://localhost:6379/0"
//	prefix = "ci"
//	ttl = "168h"
//
// Command-line flags override file values.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	pkgerrors "github.com/matzehuels/pkgdeps/pkg/errors"
)

const appName = "pkgdeps"

// FileName is the config file base name.
const FileName = "config.toml"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatJSON, FormatDOT, FormatSVG}

// Backends lists the accepted cache backends.
var Backends = []string{BackendFile, BackendRedis, BackendNone}

// Config holds user settings.
type Config struct {
	File           string `toml:"file"`
	Format         string `toml:"format"`
	Trace          bool   `toml:"trace"`
	TraceInstances bool   `toml:"trace_instances"`
	LegacyMatch    bool   `toml:"legacy_match"`
	Cache          Cache  `toml:"cache"`
}

// Cache configures the decoded-lockfile cache.
type Cache struct {
	Backend  string   `toml:"backend"`
	RedisURL string   `toml:"redis_url"`
	Prefix   string   `toml:"prefix"`
	TTL      Duration `toml:"ttl"`
}

// Duration is a time.Duration written as a string such as "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText writes the duration in Go syntax.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		File:   "./pnpm-lock.yaml",
		Format: FormatText,
		Cache:  Cache{Backend: BackendFile},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, FileName), nil
}

// Load reads the config at path on top of [Default].
//
// A missing file is not an error unless required is set, which callers use
// when the path was given explicitly.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return cfg, nil
	}
	if err != nil {
		return cfg, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidConfig, err, "read config")
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, pkgerrors.New(pkgerrors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidFormat, "unknown format %q (valid: text, json, dot, svg)", c.Format)
	}
	if !slices.Contains(Backends, c.Cache.Backend) {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidConfig, "unknown cache backend %q (valid: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisURL == "" {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidConfig, "cache backend redis requires redis_url")
	}
	if c.Cache.TTL.Duration < 0 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return nil
}
