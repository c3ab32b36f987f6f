package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pable/go-dota-metrics/internal/model"
	"github.com/pable/go-dota-metrics/internal/window"
)

// Validate checks that values are well formed. Player lists and date ranges
// are checked per run by the window package, since flags may still fill them.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be > 0")
	}
	if c.API.MatchLimit < 1 {
		return errors.New("api.match_limit must be >= 1")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := model.ParseMatchFilter(c.Filter); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	if c.Range.Preset != "" && !slices.Contains(window.Presets, c.Range.Preset) {
		return fmt.Errorf("range.preset must be one of %s, got %q", strings.Join(window.Presets, ", "), c.Range.Preset)
	}
	if c.Charts.Width < 100 || c.Charts.Height < 100 {
		return fmt.Errorf("charts.width and charts.height must be >= 100, got %dx%d", c.Charts.Width, c.Charts.Height)
	}
	if c.Analyze.MaxTokens < 1 {
		return errors.New("analyze.max_tokens must be >= 1")
	}
	return nil
}
