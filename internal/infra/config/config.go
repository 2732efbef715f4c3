package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/contenttools/internal/infra/llm"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	LLM     LLMConfig     `yaml:"llm"`
	FAQ     FAQConfig     `yaml:"faq"`
	Content ContentConfig `yaml:"content"`
	Reports ReportsConfig `yaml:"reports"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	MaxUploadMB  int64           `yaml:"maxUploadMb"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// LLMConfig selects and tunes the completion provider.
type LLMConfig struct {
	// Provider forces a kind ("openai" or "gemini"); empty infers it from key and endpoint.
	Provider     string        `yaml:"provider"`
	APIKey       string        `yaml:"apiKey"`
	Endpoint     string        `yaml:"endpoint"`
	Model        string        `yaml:"model"`
	GeminiModels []string      `yaml:"geminiModels"`
	Temperature  float32       `yaml:"temperature"`
	MaxTokens    int           `yaml:"maxTokens"`
	Timeout      time.Duration `yaml:"timeout"`

	// Kind is resolved by Load and never read from the file.
	Kind llm.Kind `yaml:"-"`
}

// Configured reports whether an API key is present.
func (c LLMConfig) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// FAQConfig controls FAQ generation.
type FAQConfig struct {
	Prompt             string        `yaml:"prompt"`
	MinItems           int           `yaml:"minItems"`
	MaxContentTokens   int           `yaml:"maxContentTokens"`
	BatchRatePerMinute float64       `yaml:"batchRatePerMinute"`
	Valkey             ValkeyConfig  `yaml:"valkey"`
	CacheTTL           time.Duration `yaml:"cacheTtl"`
}

// ValkeyConfig contains connection information for the FAQ cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// ContentConfig points at the content database and describes the public site.
type ContentConfig struct {
	SiteURL     string         `yaml:"siteUrl"`
	FrontPageID int64          `yaml:"frontPageId"`
	PostsPageID int64          `yaml:"postsPageId"`
	Postgres    PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ReportsConfig selects where generated CSV reports are kept.
type ReportsConfig struct {
	Dir string   `yaml:"dir"`
	R2  R2Config `yaml:"r2"`
}

// R2Config holds S3-compatible object storage credentials.
type R2Config struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.LLM.Kind = cfg.resolveKind()

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) resolveKind() llm.Kind {
	if kind, ok := llm.ParseKind(c.LLM.Provider); ok {
		return kind
	}
	return llm.ResolveKind(c.LLM.APIKey, c.LLM.Endpoint)
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.HTTP.Address, "HTTP_ADDRESS")
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	setBool(&cfg.HTTP.RateLimit.Enabled, "HTTP_RATE_LIMIT_ENABLED")
	setInt(&cfg.HTTP.RateLimit.RequestsPerMinute, "HTTP_RATE_LIMIT_RPM")
	setInt(&cfg.HTTP.RateLimit.Burst, "HTTP_RATE_LIMIT_BURST")
	setBool(&cfg.HTTP.Retry.Enabled, "HTTP_RETRY_ENABLED")
	setInt(&cfg.HTTP.Retry.MaxAttempts, "HTTP_RETRY_MAX_ATTEMPTS")
	setDuration(&cfg.HTTP.Retry.BaseBackoff, "HTTP_RETRY_BASE_BACKOFF")

	setString(&cfg.LLM.Provider, "LLM_PROVIDER")
	setString(&cfg.LLM.APIKey, "LLM_API_KEY")
	setString(&cfg.LLM.Endpoint, "LLM_ENDPOINT")
	setString(&cfg.LLM.Model, "LLM_MODEL")
	if v := os.Getenv("LLM_GEMINI_MODELS"); v != "" {
		cfg.LLM.GeminiModels = splitList(v)
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	setInt(&cfg.LLM.MaxTokens, "LLM_MAX_TOKENS")
	setDuration(&cfg.LLM.Timeout, "LLM_TIMEOUT")

	setString(&cfg.FAQ.Prompt, "FAQ_PROMPT")
	setInt(&cfg.FAQ.MinItems, "FAQ_MIN_ITEMS")
	setInt(&cfg.FAQ.MaxContentTokens, "FAQ_MAX_CONTENT_TOKENS")
	if v := os.Getenv("FAQ_BATCH_RATE_PER_MINUTE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.FAQ.BatchRatePerMinute = parsed
		}
	}
	setBool(&cfg.FAQ.Valkey.Enabled, "FAQ_VALKEY_ENABLED")
	setString(&cfg.FAQ.Valkey.Addr, "FAQ_VALKEY_ADDR")
	setDuration(&cfg.FAQ.CacheTTL, "FAQ_CACHE_TTL")

	setString(&cfg.Content.SiteURL, "CONTENT_SITE_URL")
	setInt64(&cfg.Content.FrontPageID, "CONTENT_FRONT_PAGE_ID")
	setInt64(&cfg.Content.PostsPageID, "CONTENT_POSTS_PAGE_ID")
	setString(&cfg.Content.Postgres.DSN, "CONTENT_POSTGRES_DSN")

	setString(&cfg.Reports.Dir, "REPORTS_DIR")
	setBool(&cfg.Reports.R2.Enabled, "REPORTS_R2_ENABLED")
	setString(&cfg.Reports.R2.Endpoint, "REPORTS_R2_ENDPOINT")
	setString(&cfg.Reports.R2.AccessKey, "REPORTS_R2_ACCESS_KEY")
	setString(&cfg.Reports.R2.SecretKey, "REPORTS_R2_SECRET_KEY")
	setString(&cfg.Reports.R2.Bucket, "REPORTS_R2_BUCKET")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = parsed
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 10 * time.Minute,
			MaxUploadMB:  10,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/faq/generate",
					"/api/v1/faq/analyze",
					"/api/v1/faq/apply-reviewed",
					"/api/v1/tools/",
				},
			},
		},
		LLM: LLMConfig{
			Endpoint:    "https://api.openai.com/v1/chat/completions",
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			MaxTokens:   2000,
			Timeout:     2 * time.Minute,
		},
		FAQ: FAQConfig{
			MinItems:         2,
			MaxContentTokens: 6000,
			CacheTTL:         6 * time.Hour,
			Valkey: ValkeyConfig{
				Prefix: "contenttools:faq",
			},
		},
		Content: ContentConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Reports: ReportsConfig{
			R2: R2Config{
				Region: "auto",
				Prefix: "reports",
			},
		},
	}
}

// Validate ensures the configuration is safe to use. A missing LLM key is allowed;
// generation reports it per request.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.MaxUploadMB <= 0 {
		return errors.New("http.maxUploadMb must be positive")
	}
	if c.LLM.Provider != "" {
		if _, ok := llm.ParseKind(c.LLM.Provider); !ok {
			return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
		}
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.MaxTokens <= 0 {
		return errors.New("llm.maxTokens must be positive")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if c.FAQ.MinItems <= 0 {
		return errors.New("faq.minItems must be positive")
	}
	if c.FAQ.MaxContentTokens < 0 {
		return errors.New("faq.maxContentTokens cannot be negative")
	}
	if c.FAQ.BatchRatePerMinute < 0 {
		return errors.New("faq.batchRatePerMinute cannot be negative")
	}
	if c.FAQ.CacheTTL < 0 {
		return errors.New("faq.cacheTtl cannot be negative")
	}
	if c.FAQ.Valkey.Enabled && strings.TrimSpace(c.FAQ.Valkey.Addr) == "" {
		return errors.New("faq.valkey.addr cannot be empty when the valkey cache is enabled")
	}
	if c.Reports.R2.Enabled {
		if strings.TrimSpace(c.Reports.R2.Endpoint) == "" || strings.TrimSpace(c.Reports.R2.Bucket) == "" {
			return errors.New("reports.r2.endpoint and reports.r2.bucket are required when r2 is enabled")
		}
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}
