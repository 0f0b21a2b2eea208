// Package config supplies the environment configuration consumed by the
// deploy and theme-lookup layers: store domain, API password, theme ID,
// environment name, and the optional timeout and ignore-list settings.
//
// Configuration is sourced from SLATE_* environment variables, optionally
// seeded from a .env file and a Theme Kit config.yml. Values are validated
// as a whole; validation produces human-readable messages rather than a
// single opaque error so every problem can be reported at once.
//
// Example usage:
//
//	cfg, err := config.FromEnv()
//	if err != nil {
//	    return err
//	}
//	config.MustValid(cfg)
package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"
)

// Environment variable names read by FromEnv.
const (
	EnvStore       = "SLATE_STORE"
	EnvPassword    = "SLATE_PASSWORD"
	EnvThemeID     = "SLATE_THEME_ID"
	EnvEnvironment = "SLATE_ENV"
	EnvTimeout     = "SLATE_TIMEOUT"
	EnvIgnoreFiles = "SLATE_IGNORE_FILES"
)

// DefaultEnvironment is used when SLATE_ENV is not set.
const DefaultEnvironment = "development"

// IgnoreFilesSeparator splits SLATE_IGNORE_FILES into individual patterns.
const IgnoreFilesSeparator = ":"

// Secret holds a sensitive string such as the store API password.
// Its String and LogValue methods redact the value so it cannot end up in
// console output or structured logs; callers that need the raw value must
// ask for it explicitly via Reveal.
type Secret string

// String implements fmt.Stringer with a redacted representation.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// LogValue implements slog.LogValuer so Secrets are redacted in logs.
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// Reveal returns the raw secret value.
func (s Secret) Reveal() string {
	return string(s)
}

// IsSet reports whether the secret has a value.
func (s Secret) IsSet() bool {
	return s != ""
}

// Config carries the settings required to talk to a storefront. A zero
// Config is not usable; construct one with FromEnv (or populate the fields
// directly in tests) and check it with Validate before use.
type Config struct {
	// Store is the storefront domain, e.g. "example.myshopify.com".
	Store string

	// Password is the private-app API password used both as the Theme Kit
	// credential and as the Admin API access token.
	Password Secret

	// ThemeID identifies the theme to deploy to. Either a numeric ID or
	// the literal "live" (Theme Kit resolves "live" to the published theme).
	ThemeID string

	// Environment is the Theme Kit environment name, e.g. "development".
	Environment string

	// Timeout, when non-zero, is passed through to the deploy tool as its
	// per-operation timeout. This library enforces no timeout of its own.
	Timeout time.Duration

	// IgnoreFiles lists patterns the deploy tool should skip.
	IgnoreFiles []string
}

// FromEnv builds a Config from SLATE_* environment variables. Unset
// variables leave the corresponding field empty; completeness is checked
// separately by Validate. An unparsable SLATE_TIMEOUT is the one hard
// error, since silently dropping it would change deploy behavior.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Store:       os.Getenv(EnvStore),
		Password:    Secret(os.Getenv(EnvPassword)),
		ThemeID:     os.Getenv(EnvThemeID),
		Environment: os.Getenv(EnvEnvironment),
	}
	if cfg.Environment == "" {
		cfg.Environment = DefaultEnvironment
	}

	if raw := os.Getenv(EnvTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", EnvTimeout, raw, err)
		}
		cfg.Timeout = d
	}

	if raw := os.Getenv(EnvIgnoreFiles); raw != "" {
		for _, pattern := range strings.Split(raw, IgnoreFilesSeparator) {
			if pattern = strings.TrimSpace(pattern); pattern != "" {
				cfg.IgnoreFiles = append(cfg.IgnoreFiles, pattern)
			}
		}
	}

	return cfg, nil
}

var (
	storePattern   = regexp.MustCompile(`^[a-z0-9][a-z0-9\-]*\.myshopify\.com$`)
	themeIDPattern = regexp.MustCompile(`^[0-9]+$`)
)

// Validate checks the configuration and returns a human-readable message
// for every problem found. An empty slice means the configuration is
// usable.
func (c *Config) Validate() []string {
	var problems []string

	switch {
	case c.Store == "":
		problems = append(problems, fmt.Sprintf("%s environment variable is not set", EnvStore))
	case !storePattern.MatchString(c.Store):
		problems = append(problems, fmt.Sprintf(
			"%s must be a valid myshopify.com domain, got %q", EnvStore, c.Store))
	}

	if !c.Password.IsSet() {
		problems = append(problems, fmt.Sprintf("%s environment variable is not set", EnvPassword))
	}

	switch {
	case c.ThemeID == "":
		problems = append(problems, fmt.Sprintf("%s environment variable is not set", EnvThemeID))
	case c.ThemeID != "live" && !themeIDPattern.MatchString(c.ThemeID):
		problems = append(problems, fmt.Sprintf(
			"%s must be \"live\" or a numeric theme ID, got %q", EnvThemeID, c.ThemeID))
	}

	if c.Timeout < 0 {
		problems = append(problems, fmt.Sprintf("%s must not be negative", EnvTimeout))
	}

	return problems
}

// exitFunc is indirected so tests can observe the hard stop.
var exitFunc = os.Exit

// MustValid checks the configuration and, if it is invalid, prints every
// problem to stderr and terminates the process with exit status 1. Missing
// credentials make the whole session unusable, so this is a hard-stop
// precondition rather than a recoverable error.
func MustValid(c *Config) {
	problems := c.Validate()
	if len(problems) == 0 {
		return
	}
	for _, p := range problems {
		fmt.Fprintln(os.Stderr, "slate:", p)
	}
	exitFunc(1)
}
