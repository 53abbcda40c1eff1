// Package config loads modinfo settings from the environment and an
// optional .env file. Variables already set in the environment win over
// the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvErrors    = "MODINFO_ERRORS"
	EnvVerbosity = "MODINFO_LOG_VERBOSITY"
	EnvCacheSize = "MODINFO_CACHE_SIZE"
	EnvColor     = "MODINFO_COLOR"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	// Errors names the error policy: silent, log or fail.
	Errors    string
	Verbosity int
	CacheSize int
	Color     string
}

func Default() *Config {
	return &Config{
		Errors:    "log",
		Verbosity: 0,
		CacheSize: 256,
		Color:     ColorAuto,
	}
}

// Load reads the given .env files (".env" when none are named) and the
// process environment. Missing files are ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	vars := map[string]string{}
	for _, file := range files {
		m, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		for k, v := range m {
			if _, ok := vars[k]; !ok {
				vars[k] = v
			}
		}
	}
	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	})
}

// FromLookup builds a Config from a variable lookup function such as
// os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	if v := get(EnvErrors); v != "" {
		switch v {
		case "silent", "log", "fail":
			cfg.Errors = v
		default:
			return nil, fmt.Errorf("%s: unknown error policy %q", EnvErrors, v)
		}
	}
	if v := get(EnvVerbosity); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvVerbosity, err)
		}
		cfg.Verbosity = n
	}
	if v := get(EnvCacheSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvCacheSize, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%s: must be positive, got %d", EnvCacheSize, n)
		}
		cfg.CacheSize = n
	}
	if v := strings.ToLower(get(EnvColor)); v != "" {
		switch v {
		case ColorAuto, ColorAlways, ColorNever:
			cfg.Color = v
		default:
			return nil, fmt.Errorf("%s: unknown color mode %q", EnvColor, v)
		}
	}
	return cfg, nil
}
