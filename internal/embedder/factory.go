package embedder

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config holds embedder configuration
type Config struct {
	// Provider selects the backend ("openai" or "local"). Empty picks openai
	// when Endpoint is set and local otherwise.
	Provider  string
	Model     string
	Endpoint  string // Base URL of an OpenAI-compatible API, e.g. http://tei:8080/v1
	APIKey    string
	Dimension int // Expected vector size; 0 accepts whatever the server returns
	Timeout   time.Duration
	CacheSize int // 0 disables caching
	Retry     RetryConfig
	Logger    *slog.Logger
}

func (c *Config) defaults() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Retry == (RetryConfig{}) {
		c.Retry = DefaultRetryConfig()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// DetectProvider returns the provider New would build for cfg
func DetectProvider(cfg Config) string {
	if cfg.Provider != "" {
		return strings.ToLower(cfg.Provider)
	}
	if cfg.Endpoint != "" {
		return ProviderOpenAI
	}
	return ProviderLocal
}

// New creates an embedder with explicit configuration
func New(cfg Config) (Embedder, error) {
	var cache *Cache
	if cfg.CacheSize > 0 {
		cache = NewCache(cfg.CacheSize)
	}

	switch DetectProvider(cfg) {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg, cache)
	case ProviderLocal:
		return NewLocalProvider(cfg.Dimension, cache)
	default:
		return nil, fmt.Errorf("%w: unknown provider %s", ErrUnsupportedModel, cfg.Provider)
	}
}
