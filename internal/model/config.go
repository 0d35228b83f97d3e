package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the complete trustlens configuration.
type Config struct {
	Backend     BackendConfig     `yaml:"backend"`
	Input       InputConfig       `yaml:"input"`
	Cache       CacheConfig       `yaml:"cache"`
	Fetch       FetchConfig       `yaml:"fetch"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	LLM         LLMConfig         `yaml:"llm"`
	Server      ServerConfig      `yaml:"server"`
	Output      OutputConfig      `yaml:"output"`
}

// BackendConfig configures access to the analysis backend.
type BackendConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	IsPro        bool          `yaml:"is_pro"`
}

// InputConfig configures pre-network input validation.
type InputConfig struct {
	// MinWords is the minimum word count accepted in text mode.
	MinWords int `yaml:"min_words"`
}

// CacheConfig configures the analysis response cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// FetchConfig configures the local article fetcher used for the
// text-mode fallback.
type FetchConfig struct {
	UserAgent     string        `yaml:"user_agent"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy"`
}

// ConcurrencyConfig configures batch processing.
type ConcurrencyConfig struct {
	BatchWorkers      int     `yaml:"batch_workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// LLMConfig configures the optional summary provider.
// Summaries never affect scoring.
type LLMConfig struct {
	Provider  string        `yaml:"provider"` // "openai" or "" (disabled)
	Model     string        `yaml:"model"`
	APIKey    string        `yaml:"-"` // from environment only, never persisted
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`
}

// ServerConfig configures the local dashboard server.
type ServerConfig struct {
	Addr          string `yaml:"addr"`
	LogFile       string `yaml:"log_file"` // empty: log to stderr
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups"`
	LogMaxAgeDays int    `yaml:"log_max_age_days"`
}

// OutputConfig configures report output.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults. CLI flags, environment
// variables and the config file override them.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:      "http://localhost:8000",
			Timeout:      2 * time.Minute,
			MaxBodyBytes: 10_000_000,
		},
		Input: InputConfig{
			MinWords: 50,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Fetch: FetchConfig{
			UserAgent:     "trustlens/0.1 (+https://github.com/veridex/trustlens)",
			Timeout:       30 * time.Second,
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers:      4,
			RequestsPerSecond: 1,
			Burst:             2,
		},
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			Timeout:   30 * time.Second,
			MaxTokens: 400,
		},
		Server: ServerConfig{
			Addr:          ":8787",
			LogMaxSizeMB:  20,
			LogMaxBackups: 3,
			LogMaxAgeDays: 14,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "trustlens-cache")
	}
	return filepath.Join(home, ".trustlens", "cache")
}
