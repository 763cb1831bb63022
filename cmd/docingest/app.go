package main

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dshills/docingest/internal/chunker"
	"github.com/dshills/docingest/internal/config"
	"github.com/dshills/docingest/internal/embedder"
	"github.com/dshills/docingest/internal/extractor"
	"github.com/dshills/docingest/internal/ingest"
	"github.com/dshills/docingest/internal/logging"
)

// app holds the collaborators shared by every command
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	extractor *extractor.FileExtractor
	service   *ingest.Service
}

// newApp loads configuration, applies flag overrides and builds the pipeline
func newApp(cmd *cobra.Command) (*app, error) {
	envFiles, err := cmd.Flags().GetStringSlice("env-file")
	if err != nil {
		return nil, fmt.Errorf("failed to get env-file flag: %w", err)
	}

	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	if err := applyLogFlags(cmd, cfg); err != nil {
		return nil, err
	}

	logger := logging.Setup(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})

	emb, err := embedder.New(embedderConfig(cfg, logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	ext := extractor.New(extractor.Config{
		MaxFileSize: cfg.Extract.MaxFileSize,
		Logger:      logger,
	})

	svc, err := ingest.New(ext, emb, ingest.Config{
		Chunking:  chunkerConfig(cfg),
		BatchSize: cfg.Embedding.BatchSize,
		Workers:   cfg.Embedding.Workers,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, extractor: ext, service: svc}, nil
}

func applyLogFlags(cmd *cobra.Command, cfg *config.Config) error {
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.Log.Level = f.Value.String()
	}
	if f := cmd.Flags().Lookup("log-json"); f != nil && f.Changed {
		v, err := cmd.Flags().GetBool("log-json")
		if err != nil {
			return fmt.Errorf("failed to get log-json flag: %w", err)
		}
		cfg.Log.JSON = v
	}
	return nil
}

func embedderConfig(cfg *config.Config, logger *slog.Logger) embedder.Config {
	retry := embedder.DefaultRetryConfig()
	retry.MaxRetries = cfg.Embedding.Retries

	return embedder.Config{
		Provider:  cfg.Embedding.Provider,
		Model:     cfg.Embedding.Model,
		Endpoint:  cfg.Embedding.Endpoint,
		APIKey:    cfg.Embedding.APIKey,
		Dimension: cfg.Embedding.Dimension,
		Timeout:   cfg.Embedding.Timeout,
		CacheSize: cfg.Embedding.CacheSize,
		Retry:     retry,
		Logger:    logger,
	}
}

func chunkerConfig(cfg *config.Config) chunker.Config {
	return chunker.Config{
		TargetChars:  cfg.Chunking.TargetChars,
		OverlapChars: cfg.Chunking.OverlapChars,
	}
}

func listenAddr(cfg *config.Config) string {
	return net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
}
