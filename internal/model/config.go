package model

import (
	"fmt"
	"time"
)

// Config is the complete foundyear configuration
type Config struct {
	Lookup       LookupConfig       `yaml:"lookup" mapstructure:"lookup"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Extract      ExtractConfig      `yaml:"extract" mapstructure:"extract"`
	Input        InputConfig        `yaml:"input" mapstructure:"input"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
	Metrics      MetricsConfig      `yaml:"metrics" mapstructure:"metrics"`
}

// LookupConfig selects and configures the article lookup backend
type LookupConfig struct {
	Backend  string `yaml:"backend" mapstructure:"backend"`   // "api" or "html"
	Language string `yaml:"language" mapstructure:"language"` // Wikipedia language subdomain
	BaseURL  string `yaml:"base_url,omitempty" mapstructure:"base_url"`
}

// HTTPConfig configures outbound requests
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// RateLimitingConfig limits requests per host
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// CacheConfig configures the lookup cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	Dir       string        `yaml:"dir,omitempty" mapstructure:"dir"` // Empty disables the disk layer
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
	SearchTTL time.Duration `yaml:"search_ttl" mapstructure:"search_ttl"` // Search hits; article bodies use the layer TTLs
}

// ExtractConfig configures sentence segmentation and year extraction
type ExtractConfig struct {
	Segmenter        string   `yaml:"segmenter" mapstructure:"segmenter"` // "punkt" or "rules"
	MinYear          int      `yaml:"min_year" mapstructure:"min_year"`   // Exclusive lower bound
	MaxYear          int      `yaml:"max_year" mapstructure:"max_year"`   // Exclusive upper bound
	FoundingKeywords []string `yaml:"founding_keywords" mapstructure:"founding_keywords"`
}

// InputConfig configures how the company list is read
type InputConfig struct {
	Encoding string `yaml:"encoding" mapstructure:"encoding"` // auto, utf-8, utf-16, utf-16le, utf-16be
}

// OutputConfig configures the record sink
type OutputConfig struct {
	Path        string `yaml:"path" mapstructure:"path"` // "-" writes to stdout
	LegacyLists bool   `yaml:"legacy_lists" mapstructure:"legacy_lists"`
	Echo        bool   `yaml:"echo" mapstructure:"echo"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	Format     string `yaml:"format" mapstructure:"format"` // "text" or "json"
	File       string `yaml:"file,omitempty" mapstructure:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
}

// MetricsConfig configures the Prometheus textfile export
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty" mapstructure:"textfile"`
}

// Range defaults for plausible founding years (both bounds exclusive)
const (
	DefaultMinYear = 1600
	DefaultMaxYear = 1913
)

// DefaultFoundingKeywords are the literal substrings marking a founding sentence
var DefaultFoundingKeywords = []string{"founded", "established"}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Lookup: LookupConfig{
			Backend:  "api",
			Language: "en",
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "foundyear/0.1 (+https://github.com/ppiankov/foundyear)",
			MaxBodyBytes:  5_000_000,
			RespectRobots: true,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 5,
			BurstSize:         5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
			SearchTTL: 24 * time.Hour,
		},
		Extract: ExtractConfig{
			Segmenter:        "punkt",
			MinYear:          DefaultMinYear,
			MaxYear:          DefaultMaxYear,
			FoundingKeywords: append([]string(nil), DefaultFoundingKeywords...),
		},
		Input: InputConfig{
			Encoding: "auto",
		},
		Output: OutputConfig{
			Path: "WikipediaFoundingDates.txt",
			Echo: true,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Validate checks the configuration for values the program cannot run with
func (c *Config) Validate() error {
	switch c.Lookup.Backend {
	case "api", "html":
	default:
		return fmt.Errorf("unknown lookup backend: %q (supported: api, html)", c.Lookup.Backend)
	}
	if c.Lookup.Language == "" && c.Lookup.BaseURL == "" {
		return fmt.Errorf("lookup language must not be empty")
	}
	switch c.Extract.Segmenter {
	case "punkt", "rules":
	default:
		return fmt.Errorf("unknown segmenter: %q (supported: punkt, rules)", c.Extract.Segmenter)
	}
	if c.Extract.MinYear >= c.Extract.MaxYear {
		return fmt.Errorf("min_year %d must be below max_year %d", c.Extract.MinYear, c.Extract.MaxYear)
	}
	if len(c.Extract.FoundingKeywords) == 0 {
		return fmt.Errorf("at least one founding keyword is required")
	}
	switch c.Input.Encoding {
	case "auto", "utf-8", "utf-16", "utf-16le", "utf-16be":
	default:
		return fmt.Errorf("unknown input encoding: %q", c.Input.Encoding)
	}
	if c.RateLimiting.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output path must not be empty")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format: %q (supported: text, json)", c.Log.Format)
	}
	return nil
}
