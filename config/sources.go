package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadDotenv loads a .env file into the process environment so a
// subsequent FromEnv call picks up its values. Variables already present
// in the environment win over the file. A missing file is not an error;
// projects without one fall back to the plain environment.
func LoadDotenv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// themeKitEnv mirrors one environment section of a Theme Kit config.yml.
type themeKitEnv struct {
	Password    string   `yaml:"password"`
	ThemeID     string   `yaml:"theme_id"`
	Store       string   `yaml:"store"`
	Timeout     string   `yaml:"timeout"`
	IgnoreFiles []string `yaml:"ignore_files"`
}

// FromThemeKitFile reads the named environment section of a Theme Kit
// config.yml. It is used to seed defaults for fields the environment does
// not set; see (*Config).FillFrom.
func FromThemeKitFile(path, env string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var envs map[string]themeKitEnv
	if err := yaml.Unmarshal(data, &envs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	section, ok := envs[env]
	if !ok {
		return nil, fmt.Errorf("%s has no %q environment", path, env)
	}

	cfg := &Config{
		Store:       section.Store,
		Password:    Secret(section.Password),
		ThemeID:     section.ThemeID,
		Environment: env,
		IgnoreFiles: section.IgnoreFiles,
	}
	if section.Timeout != "" {
		d, err := time.ParseDuration(section.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid timeout %q: %w", path, section.Timeout, err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// FillFrom copies values from other into fields of c that are unset.
// Environment variables therefore take precedence over config.yml
// defaults.
func (c *Config) FillFrom(other *Config) {
	if other == nil {
		return
	}
	if c.Store == "" {
		c.Store = other.Store
	}
	if !c.Password.IsSet() {
		c.Password = other.Password
	}
	if c.ThemeID == "" {
		c.ThemeID = other.ThemeID
	}
	if c.Timeout == 0 {
		c.Timeout = other.Timeout
	}
	if len(c.IgnoreFiles) == 0 {
		c.IgnoreFiles = append(c.IgnoreFiles, other.IgnoreFiles...)
	}
}
