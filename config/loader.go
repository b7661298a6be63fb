package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces the environment overrides, e.g.
// CONDUIT_AUTH_SECRET or CONDUIT_SERVER_PORT.
const EnvPrefix = "CONDUIT"

// FileSystem abstracts file lookups so the loader is testable without
// touching the real working directory.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

type osFileSystem struct{}

func (osFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderOption customizes Load.
type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	fs         FileSystem
	configFile string
	envFile    string
}

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *loaderConfig) { lc.fs = fs }
}

// WithConfigFile sets an explicit config file path, skipping the search.
func WithConfigFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.configFile = path }
}

// WithEnvFile sets an explicit .env file path, skipping the search.
func WithEnvFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.envFile = path }
}

// Load reads config.yml and .env from the standard locations, applies
// CONDUIT_* environment overrides, then fills defaults and validates.
// Missing files are fine; a missing auth secret is not.
func Load(opts ...LoaderOption) (*Config, error) {
	lc := loaderConfig{fs: osFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}

	if lc.configFile == "" {
		lc.configFile = findFirst(lc.fs,
			"./cmd/conduit/config.yml",
			"../cmd/conduit/config.yml",
			"./config.yml",
		)
	}
	if lc.envFile == "" {
		lc.envFile = findFirst(lc.fs, "./.env", "../.env")
	}

	// Load .env before reading the environment so its values take part
	// in the override pass.
	if lc.envFile != "" {
		if err := lc.fs.LoadEnv(lc.envFile); err != nil {
			return nil, fmt.Errorf("config: load env file %s: %w", lc.envFile, err)
		}
	}

	v := viper.New()
	if lc.configFile != "" {
		v.SetConfigFile(lc.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", lc.configFile, err)
		}
	}
	bindEnvOverrides(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func findFirst(fs FileSystem, paths ...string) string {
	for _, p := range paths {
		if fs.Exists(p) {
			return p
		}
	}
	return ""
}

// bindEnvOverrides sets every CONDUIT_* environment variable on the viper
// instance under each plausible nested key, so both
// CONDUIT_SERVER_PORT -> server.port and
// CONDUIT_AUTH_TOKEN_TTL -> auth.token_ttl resolve. Viper's AutomaticEnv
// does not surface env-only keys through Unmarshal, hence the explicit
// binding.
func bindEnvOverrides(v *viper.Viper) {
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix+"_") {
			continue
		}
		for _, variant := range keyVariants(strings.TrimPrefix(key, EnvPrefix+"_")) {
			v.Set(variant, value)
		}
	}
}

// keyVariants maps SERVER_READ_TIMEOUT to server.read_timeout,
// server.read.timeout, and every other split of underscores into dots.
func keyVariants(envKey string) []string {
	parts := strings.Split(strings.ToLower(envKey), "_")
	if len(parts) == 1 {
		return parts
	}

	seen := make(map[string]bool)
	variants := make([]string, 0, len(parts)+1)
	add := func(key string) {
		if !seen[key] {
			seen[key] = true
			variants = append(variants, key)
		}
	}

	add(strings.Join(parts, "."))
	for i := 1; i < len(parts); i++ {
		add(strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_"))
	}
	return variants
}
