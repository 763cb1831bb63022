package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/docingest/internal/chunker"
	"github.com/dshills/docingest/internal/embedder"
	"github.com/dshills/docingest/internal/extractor"
	"github.com/dshills/docingest/pkg/types"
)

const (
	// DefaultBatchSize is the number of chunks sent to the embedder per call
	DefaultBatchSize = embedder.DefaultBatchSize

	// DefaultWorkers bounds concurrent embedding calls per ingestion
	DefaultWorkers = 4
)

// Config configures a Service
type Config struct {
	Chunking  chunker.Config
	BatchSize int
	Workers   int
	Logger    *slog.Logger
}

func (c *Config) defaults() {
	if c.Chunking == (chunker.Config{}) {
		c.Chunking = chunker.DefaultConfig()
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.BatchSize > embedder.MaxBatchSize {
		c.BatchSize = embedder.MaxBatchSize
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Service runs the ingestion pipeline: extract, normalize, chunk, embed.
// It is safe for concurrent use.
type Service struct {
	extractor extractor.Extractor
	embedder  embedder.Embedder
	chunker   *chunker.Chunker
	validate  *validator.Validate
	cfg       Config
	logger    *slog.Logger
}

// New creates a Service from its collaborators
func New(ext extractor.Extractor, emb embedder.Embedder, cfg Config) (*Service, error) {
	if ext == nil || emb == nil {
		return nil, fmt.Errorf("ingest: extractor and embedder are required")
	}
	cfg.defaults()

	c, err := chunker.New(cfg.Chunking)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	return &Service{
		extractor: ext,
		embedder:  emb,
		chunker:   c,
		validate:  newValidator(),
		cfg:       cfg,
		logger:    cfg.Logger,
	}, nil
}

// Embedder returns the embedder the service was built with
func (s *Service) Embedder() embedder.Embedder {
	return s.embedder
}

// ChunkingConfig returns the default chunk sizing
func (s *Service) ChunkingConfig() chunker.Config {
	return s.chunker.Config()
}

// Embed returns the normalized embedding of a single text
func (s *Service) Embed(ctx context.Context, req EmbedRequest) (*EmbedResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	emb, err := s.embedder.GenerateEmbedding(ctx, embedder.EmbeddingRequest{Text: req.Text})
	if err != nil {
		return nil, err
	}

	return &EmbedResponse{
		Embedding: emb.Vector,
		Model:     emb.Model,
		Dimension: len(emb.Vector),
	}, nil
}

// Chunk normalizes text and splits it without embedding. Nil sizing fields
// fall back to the service defaults.
func (s *Service) Chunk(ctx context.Context, req ChunkRequest) (*ChunkResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := s.chunker.Config()
	if req.TargetChars != nil {
		cfg.TargetChars = *req.TargetChars
	}
	if req.OverlapChars != nil {
		cfg.OverlapChars = *req.OverlapChars
	}
	c, err := chunker.New(cfg)
	if err != nil {
		return nil, err
	}

	chunks := c.Chunk(chunker.Normalize(req.Text))
	return &ChunkResponse{
		TargetChars:  cfg.TargetChars,
		OverlapChars: cfg.OverlapChars,
		Chunks:       chunks,
	}, nil
}

// Ingest extracts the document at req.Path, chunks it and embeds every chunk.
// Chunks are returned in index order, each paired with its own embedding.
func (s *Service) Ingest(ctx context.Context, req IngestRequest) (*IngestResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	start := time.Now()
	logger := s.logger.With("doc_id", req.DocID, "path", req.Path)

	raw, err := s.extractor.Extract(ctx, req.Path, req.Type)
	if err != nil {
		logger.Warn("extraction failed", "error", err)
		return nil, err
	}

	chunks := s.chunker.Chunk(chunker.Normalize(raw))
	vectors, err := s.embedChunks(ctx, chunks)
	if err != nil {
		logger.Error("embedding failed", "chunks", len(chunks), "error", err)
		return nil, err
	}

	out := make([]IngestChunk, len(chunks))
	for i, ch := range chunks {
		out[i] = IngestChunk{
			Index:     ch.Index,
			ID:        ChunkID(req.DocID, ch.Index),
			Text:      ch.Text,
			Embedding: vectors[i],
		}
	}

	logger.Info("document ingested",
		"chunks", len(out),
		"chars", len(raw),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &IngestResponse{
		DocID:  req.DocID,
		Title:  req.Title,
		Chunks: out,
	}, nil
}

// embedChunks embeds chunks in fixed-size batches with bounded concurrency.
// Each batch writes only its own slice of the result, so order is kept.
func (s *Service) embedChunks(ctx context.Context, chunks types.ChunkSet) ([][]float32, error) {
	vectors := make([][]float32, len(chunks))
	if len(chunks) == 0 {
		return vectors, nil
	}
	texts := chunks.Texts()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for start := 0; start < len(texts); start += s.cfg.BatchSize {
		end := min(start+s.cfg.BatchSize, len(texts))
		g.Go(func() error {
			resp, err := s.embedder.GenerateBatch(gctx, embedder.BatchEmbeddingRequest{Texts: texts[start:end]})
			if err != nil {
				return fmt.Errorf("embed chunks %d-%d: %w", start, end-1, err)
			}
			if len(resp.Embeddings) != end-start {
				return fmt.Errorf("embed chunks %d-%d: %w: got %d embeddings", start, end-1, embedder.ErrProviderFailed, len(resp.Embeddings))
			}
			for i, emb := range resp.Embeddings {
				vectors[start+i] = emb.Vector
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// check validates a request struct, reporting failures as types.ErrValidation
func (s *Service) check(req any) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", types.ErrValidation, describe(err))
	}
	return nil
}

// ChunkID derives a stable identifier for chunk index of document docID
func ChunkID(docID string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(docID+":"+strconv.Itoa(index))).String()
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(jsonName)
	return v
}
