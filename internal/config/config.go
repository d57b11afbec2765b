package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/studyclock/internal/advisor"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration. Sources are applied in
// order: defaults, YAML file, .env file, process environment.
//
// SigningKey is empty unless set explicitly; the remember-me tokens are then
// signed with the per-install key stored in KeyFile, which defaults to
// signing.key beside TokenFile.
type Config struct {
	DBPath     string         `yaml:"db_path"`
	TokenFile  string         `yaml:"token_file"`
	SigningKey string         `yaml:"signing_key"`
	KeyFile    string         `yaml:"key_file"`
	Log        bool           `yaml:"log"`
	Advisor    advisorSection `yaml:"advisor"`
}

type advisorSection struct {
	Enabled    *bool  `yaml:"enabled"`
	LogCalls   *bool  `yaml:"log_calls"`
	Endpoint   string `yaml:"endpoint"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	MaxRetries *int   `yaml:"max_retries"`
}

// Paths locates the optional config and env files.
type Paths struct {
	ConfigFile string
	EnvFile    string
}

// DefaultPaths returns ~/.studyclock/config.yaml and ./.env.
func DefaultPaths() (Paths, error) {
	home, err := homeDir()
	if err != nil {
		return Paths{}, err
	}
	return Paths{
		ConfigFile: filepath.Join(home, "config.yaml"),
		EnvFile:    ".env",
	}, nil
}

// Default returns the built-in configuration rooted at ~/.studyclock.
func Default() (Config, error) {
	home, err := homeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		DBPath:    filepath.Join(home, "studyclock.db"),
		TokenFile: filepath.Join(home, "session.jwt"),
	}, nil
}

// Load resolves the configuration. Missing files are skipped; malformed
// ones are errors.
func Load(paths Paths) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	if paths.ConfigFile != "" {
		data, err := os.ReadFile(paths.ConfigFile)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing %s: %w", paths.ConfigFile, err)
			}
		}
	}

	if paths.EnvFile != "" {
		// godotenv.Load never overrides variables already set in the process.
		if err := godotenv.Load(paths.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading env file: %w", err)
		}
	}

	applyEnv(&cfg)
	if cfg.KeyFile == "" {
		cfg.KeyFile = filepath.Join(filepath.Dir(cfg.TokenFile), "signing.key")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STUDYCLOCK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STUDYCLOCK_TOKEN_FILE"); v != "" {
		cfg.TokenFile = v
	}
	if v := os.Getenv("STUDYCLOCK_SIGNING_KEY"); v != "" {
		cfg.SigningKey = v
	}
	if v := os.Getenv("STUDYCLOCK_KEY_FILE"); v != "" {
		cfg.KeyFile = v
	}
	if v := os.Getenv("STUDYCLOCK_LOG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log = b
		}
	}
}

// AdvisorConfig merges the advisor section over the advisor defaults, then
// lets the STUDYCLOCK_ADVISOR_* variables have the last word.
func (c Config) AdvisorConfig() advisor.Config {
	out := advisor.DefaultConfig()
	a := c.Advisor
	if a.Enabled != nil {
		out.Enabled = *a.Enabled
	}
	if a.LogCalls != nil {
		out.LogCalls = *a.LogCalls
	}
	if a.Endpoint != "" {
		out.Endpoint = a.Endpoint
	}
	if a.TimeoutMs > 0 {
		out.TimeoutMs = a.TimeoutMs
	}
	if a.MaxRetries != nil && *a.MaxRetries >= 0 {
		out.MaxRetries = *a.MaxRetries
	}
	return advisor.ApplyEnv(out)
}

func homeDir() (string, error) {
	if v := os.Getenv("STUDYCLOCK_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".studyclock"), nil
}
