// Package config loads dotametrics settings from an optional YAML file, a
// .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full set of run settings. Command-line flags are applied on
// top of it by the cmd package.
type Config struct {
	API      APIConfig   `yaml:"api"`
	Timezone string      `yaml:"timezone"`
	LogLevel string      `yaml:"log_level"`
	Players  []string    `yaml:"players"`
	Party    PartyConfig `yaml:"party"`
	Filter   string      `yaml:"filter"`
	Range    RangeConfig `yaml:"range"`
	Charts   ChartConfig `yaml:"charts"`
	Analyze  AIConfig    `yaml:"analyze"`
}

// APIConfig configures the OpenDota client.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Key        string        `yaml:"key"`
	Timeout    time.Duration `yaml:"timeout"`
	MatchLimit int           `yaml:"match_limit"`
}

// PartyConfig names the two players analyzed as a unit.
type PartyConfig struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// RangeConfig is either a preset or explicit inclusive dates (YYYY-MM-DD).
type RangeConfig struct {
	Preset string `yaml:"preset"`
	From   string `yaml:"from"`
	To     string `yaml:"to"`
}

// ChartConfig controls PNG output.
type ChartConfig struct {
	Dir    string `yaml:"dir"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// AIConfig configures the analyze command.
type AIConfig struct {
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// Load reads a YAML config file and expands ${VAR} references. An empty path
// yields an empty config.
func Load(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return &cfg, nil
}

// LoadWithDefaults loads the file, applies environment overrides and fills
// in defaults.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate is LoadWithDefaults followed by Validate.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv reads .env from the working directory if present. Variables
// already set in the environment win.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Location resolves Timezone. "Local" and "" mean the system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) applyEnv() {
	c.API.BaseURL = getEnv("OPENDOTA_API_URL", c.API.BaseURL)
	c.API.Key = getEnv("OPENDOTA_API_KEY", c.API.Key)
	c.Timezone = getEnv("DOTAMETRICS_TZ", c.Timezone)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
