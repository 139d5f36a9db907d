package model

import "time"

// DefaultSourceURL is the page scraped when no URL is given
const DefaultSourceURL = "https://en.wikipedia.org/wiki/List_of_prime_ministers_of_Australia"

// Config is the complete lifelines configuration.
// Precedence: CLI flags > LIFELINES_* env vars > config file > DefaultConfig.
type Config struct {
	Source       SourceConfig     `yaml:"source" mapstructure:"source"`
	HTTP         HTTPConfig       `yaml:"http" mapstructure:"http"`
	RateLimiting RateLimitConfig  `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Cache        CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Simulation   SimulationConfig `yaml:"simulation" mapstructure:"simulation"`
	Output       OutputConfig     `yaml:"output" mapstructure:"output"`
	LLM          LLMConfig        `yaml:"llm" mapstructure:"llm"`
}

// SourceConfig describes where the table lives and which column to read
type SourceConfig struct {
	URL        string `yaml:"url" mapstructure:"url"`
	TableClass string `yaml:"table_class" mapstructure:"table_class"` // CSS class of the target table
	NameColumn string `yaml:"name_column" mapstructure:"name_column"` // Substring of the column header to read
	HeaderText string `yaml:"header_text" mapstructure:"header_text"` // Literal header text filtered out of the rows
}

// HTTPConfig controls the page fetch
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// RateLimitConfig bounds request rate per host
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// CacheConfig controls the fetch-once page cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	File      string        `yaml:"file" mapstructure:"file"` // Fixed file name for the raw page; empty derives one from the URL
	TTL       time.Duration `yaml:"ttl" mapstructure:"ttl"`   // 0 keeps the page forever
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
}

// SimulationConfig holds the sampling ranges for synthetic records
type SimulationConfig struct {
	Count         int `yaml:"count" mapstructure:"count"`
	MinPopularity int `yaml:"min_popularity" mapstructure:"min_popularity"`
	BornMin       int `yaml:"born_min" mapstructure:"born_min"`
	BornMax       int `yaml:"born_max" mapstructure:"born_max"`
	LifespanMin   int `yaml:"lifespan_min" mapstructure:"lifespan_min"`
	LifespanMax   int `yaml:"lifespan_max" mapstructure:"lifespan_max"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose     bool   `yaml:"verbose" mapstructure:"verbose"`
	Width       int    `yaml:"width" mapstructure:"width"`               // Timeline bar area in columns
	CurrentYear int    `yaml:"current_year" mapstructure:"current_year"` // 0 uses the clock
	JSONPath    string `yaml:"json_path,omitempty" mapstructure:"json_path"`
	NoTimeline  bool   `yaml:"no_timeline" mapstructure:"no_timeline"`
}

// LLMConfig configures the optional narrative
type LLMConfig struct {
	Provider      string `yaml:"provider" mapstructure:"provider"` // "" disables, "openai"
	Model         string `yaml:"model" mapstructure:"model"`
	APIKey        string `yaml:"-" mapstructure:"api_key"`
	BaseURL       string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout       int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	StrictFigures bool   `yaml:"strict_figures" mapstructure:"strict_figures"`
	MaxTokens     int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			URL:        DefaultSourceURL,
			TableClass: "wikitable",
			NameColumn: "Name",
			HeaderText: "Name(Birth–Death)Constituency",
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Lifelines/0.1 (+https://github.com/ppiankov/lifelines)",
			MaxBodyBytes:  5_000_000,
			RespectRobots: true,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 1,
			BurstSize:         1,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".lifelines",
			File:      "page.html",
			TTL:       0,
			MemoryTTL: 10 * time.Minute,
		},
		Simulation: SimulationConfig{
			Count:         10,
			MinPopularity: 5000,
			BornMin:       1800,
			BornMax:       1950,
			LifespanMin:   40,
			LifespanMax:   100,
		},
		Output: OutputConfig{
			Width: 60,
		},
		LLM: LLMConfig{
			Timeout:       30,
			StrictFigures: true,
			MaxTokens:     600,
		},
	}
}
