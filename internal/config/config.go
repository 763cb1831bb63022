package config

import (
	"time"
)

// Config is the complete service configuration
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Chunking  ChunkingConfig  `koanf:"chunking"`
	Embedding EmbeddingConfig `koanf:"embedding"`
	Extract   ExtractConfig   `koanf:"extract"`
	Log       LogConfig       `koanf:"log"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Host         string `koanf:"host" env:"HOST"`
	Port         int    `koanf:"port" env:"PORT" validate:"min=1,max=65535"`
	MaxBodyBytes int64  `koanf:"max_body_bytes" env:"MAX_BODY_BYTES" validate:"gt=0"`
}

// ChunkingConfig controls chunk sizing
type ChunkingConfig struct {
	TargetChars  int `koanf:"target_chars" env:"TARGET_CHARS" validate:"gt=0"`
	OverlapChars int `koanf:"overlap_chars" env:"OVERLAP_CHARS" validate:"gte=0"`
}

// EmbeddingConfig selects and tunes the embedding backend
type EmbeddingConfig struct {
	Provider  string        `koanf:"provider" env:"EMBEDDING_PROVIDER" validate:"omitempty,oneof=openai local"`
	Model     string        `koanf:"model" env:"MODEL_NAME" validate:"required"`
	Endpoint  string        `koanf:"endpoint" env:"EMBEDDING_ENDPOINT" validate:"omitempty,url"`
	APIKey    string        `koanf:"api_key" env:"EMBEDDING_API_KEY"`
	Dimension int           `koanf:"dimension" env:"EMBEDDING_DIMENSION" validate:"gte=0"`
	Timeout   time.Duration `koanf:"timeout" env:"EMBEDDING_TIMEOUT" validate:"gt=0"`
	Retries   int           `koanf:"retries" env:"EMBEDDING_RETRIES" validate:"gte=0,lte=10"`
	CacheSize int           `koanf:"cache_size" env:"EMBEDDING_CACHE_SIZE" validate:"gte=0"`
	BatchSize int           `koanf:"batch_size" env:"EMBED_BATCH_SIZE" validate:"gt=0,lte=256"`
	Workers   int           `koanf:"workers" env:"EMBED_WORKERS" validate:"gt=0,lte=64"`
}

// ExtractConfig bounds document extraction
type ExtractConfig struct {
	MaxFileSize int64 `koanf:"max_file_size" env:"MAX_FILE_SIZE" validate:"gt=0"`
}

// LogConfig configures the process logger
type LogConfig struct {
	Level string `koanf:"level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json" env:"LOG_JSON"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8000,
			MaxBodyBytes: 16 << 20,
		},
		Chunking: ChunkingConfig{
			TargetChars:  4000,
			OverlapChars: 800,
		},
		Embedding: EmbeddingConfig{
			Model:     "BAAI/bge-small-en-v1.5",
			Timeout:   30 * time.Second,
			Retries:   3,
			CacheSize: 10000,
			BatchSize: 32,
			Workers:   4,
		},
		Extract: ExtractConfig{
			MaxFileSize: 100 << 20,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
