package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL     = "https://api.opendota.com/api"
	DefaultTimeout     = 30 * time.Second
	DefaultMatchLimit  = 10000
	DefaultTimezone    = "Local"
	DefaultLogLevel    = "info"
	DefaultFilter      = "all"
	DefaultPreset      = "30d"
	DefaultChartWidth  = 1200
	DefaultChartHeight = 500
	DefaultModel       = "claude-haiku-4-5-20251001"
	DefaultMaxTokens   = 1024
)

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultTimeout
	}
	if c.API.MatchLimit == 0 {
		c.API.MatchLimit = DefaultMatchLimit
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Filter == "" {
		c.Filter = DefaultFilter
	}
	if c.Range.Preset == "" && c.Range.From == "" && c.Range.To == "" {
		c.Range.Preset = DefaultPreset
	}
	if c.Charts.Width == 0 {
		c.Charts.Width = DefaultChartWidth
	}
	if c.Charts.Height == 0 {
		c.Charts.Height = DefaultChartHeight
	}
	if c.Analyze.Model == "" {
		c.Analyze.Model = DefaultModel
	}
	if c.Analyze.MaxTokens == 0 {
		c.Analyze.MaxTokens = DefaultMaxTokens
	}
}
