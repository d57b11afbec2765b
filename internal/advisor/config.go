package advisor

import (
	"os"
	"strconv"
	"time"
)

// Endpoint identifies one of the advisor's remote procedures.
type Endpoint string

const (
	EndpointPredict  Endpoint = "predict"
	EndpointFeedback Endpoint = "feedback"
)

// Config holds the settings for the remote study advisor.
type Config struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	TimeoutMs  int
	MaxRetries int
}

// DefaultConfig returns the advisor defaults: enabled, local endpoint, a
// four second timeout and no automatic retry.
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		LogCalls:   false,
		Endpoint:   "http://localhost:5001",
		TimeoutMs:  4000,
		MaxRetries: 0,
	}
}

// LoadConfig reads advisor configuration from environment variables,
// falling back to defaults for any unset or malformed values.
func LoadConfig() Config {
	return ApplyEnv(DefaultConfig())
}

// ApplyEnv overlays the STUDYCLOCK_ADVISOR_* variables onto cfg. Unset or
// malformed values leave the existing setting alone.
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv("STUDYCLOCK_ADVISOR_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}
	if v := os.Getenv("STUDYCLOCK_ADVISOR_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STUDYCLOCK_ADVISOR_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("STUDYCLOCK_ADVISOR_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("STUDYCLOCK_ADVISOR_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	return cfg
}

// Timeout returns the per-call timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
