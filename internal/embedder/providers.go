package embedder

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/sashabaranov/go-openai"
)

// Provider configuration
const (
	ProviderOpenAI = "openai"
	ProviderLocal  = "local"

	// DefaultModel is the embedding model served by the ingestion service
	DefaultModel = "BAAI/bge-small-en-v1.5"

	// Dimensions
	DefaultDimension = 384
	LocalDimension   = 384

	// Batch limits
	DefaultBatchSize = 32
	MaxBatchSize     = 256

	// Cache
	DefaultCacheSize = 10000

	// Retry configuration
	MaxRetries       = 3
	InitialBackoffMs = 100
	MaxBackoffMs     = 5000

	DefaultTimeout = 30 * time.Second
)

// OpenAIProvider implements Embedder against any server speaking the OpenAI
// /v1/embeddings protocol (OpenAI, text-embeddings-inference, vLLM, Ollama)
type OpenAIProvider struct {
	client    *openai.Client
	http      *http.Client
	model     string
	dimension atomic.Int64
	cache     *Cache
	retry     RetryConfig
	logger    *slog.Logger
}

// NewOpenAIProvider creates an embedder for an OpenAI-compatible endpoint.
// An empty endpoint targets api.openai.com and then requires an API key.
func NewOpenAIProvider(cfg Config, cache *Cache) (*OpenAIProvider, error) {
	cfg.defaults()
	if cfg.Endpoint == "" && cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai provider needs an endpoint or API key", ErrNoProviderEnabled)
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.Endpoint, "/")
	}
	clientCfg.HTTPClient = httpClient

	p := &OpenAIProvider{
		client: openai.NewClientWithConfig(clientCfg),
		http:   httpClient,
		model:  cfg.Model,
		cache:  cache,
		retry:  cfg.Retry,
		logger: cfg.Logger,
	}
	p.dimension.Store(int64(cfg.Dimension))
	return p, nil
}

func (o *OpenAIProvider) GenerateEmbedding(ctx context.Context, req EmbeddingRequest) (*Embedding, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	resp, err := o.GenerateBatch(ctx, BatchEmbeddingRequest{
		Texts: []string{req.Text},
		Model: req.Model,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("%w: no embeddings returned", ErrProviderFailed)
	}

	return resp.Embeddings[0], nil
}

func (o *OpenAIProvider) GenerateBatch(ctx context.Context, req BatchEmbeddingRequest) (*BatchEmbeddingResponse, error) {
	if err := ValidateBatchRequest(req); err != nil {
		return nil, err
	}

	if len(req.Texts) > MaxBatchSize {
		return nil, fmt.Errorf("%w: max %d texts allowed", ErrBatchTooLarge, MaxBatchSize)
	}

	model := req.Model
	if model == "" {
		model = o.model
	}

	embeddings := make([]*Embedding, len(req.Texts))
	var missing []int
	for i, text := range req.Texts {
		if emb, ok := o.cache.Get(cacheKey(model, text)); ok {
			embeddings[i] = emb
			continue
		}
		missing = append(missing, i)
	}

	if len(missing) > 0 {
		texts := make([]string, len(missing))
		for j, i := range missing {
			texts[j] = req.Texts[i]
		}

		fetched, err := retryWithBackoff(ctx, o.retry, func(ctx context.Context) ([]*Embedding, error) {
			return o.callAPI(ctx, texts, model)
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("%w: %v", ErrProviderFailed, err)
		}

		for j, i := range missing {
			emb := fetched[j]
			emb.Hash = cacheKey(model, req.Texts[i])
			o.cache.Set(emb.Hash, emb)
			embeddings[i] = emb
		}
		o.logger.Debug("embedded batch", "model", model, "requested", len(req.Texts), "fetched", len(missing))
	}

	return &BatchEmbeddingResponse{
		Embeddings: embeddings,
		Provider:   ProviderOpenAI,
		Model:      model,
	}, nil
}

// callAPI performs one /embeddings round trip and returns normalized vectors
// in input order
func (o *OpenAIProvider) callAPI(ctx context.Context, texts []string, model string) ([]*Embedding, error) {
	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(model),
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrProviderFailed, len(resp.Data), len(texts))
	}

	want := int(o.dimension.Load())
	embeddings := make([]*Embedding, len(texts))
	for _, data := range resp.Data {
		if data.Index < 0 || data.Index >= len(texts) || embeddings[data.Index] != nil {
			return nil, fmt.Errorf("%w: invalid embedding index %d", ErrProviderFailed, data.Index)
		}
		if want > 0 && len(data.Embedding) != want {
			return nil, fmt.Errorf("%w: expected dimension %d, got %d", ErrProviderFailed, want, len(data.Embedding))
		}
		vector := NormalizeVector(data.Embedding)
		embeddings[data.Index] = &Embedding{
			Vector:    vector,
			Dimension: len(vector),
			Provider:  ProviderOpenAI,
			Model:     model,
		}
	}

	if want == 0 && len(embeddings) > 0 {
		o.dimension.CompareAndSwap(0, int64(embeddings[0].Dimension))
	}

	return embeddings, nil
}

// Dimension returns the configured dimension, or the one observed in the first
// response when none was configured. It is 0 until a size is known.
func (o *OpenAIProvider) Dimension() int {
	return int(o.dimension.Load())
}

func (o *OpenAIProvider) Provider() string {
	return ProviderOpenAI
}

func (o *OpenAIProvider) Model() string {
	return o.model
}

func (o *OpenAIProvider) Close() error {
	o.http.CloseIdleConnections()
	return nil
}

// LocalProvider produces deterministic feature-hashed embeddings without a
// model server. Texts sharing words get similar vectors, which is enough for
// development and tests.
type LocalProvider struct {
	model     string
	dimension int
	cache     *Cache
}

// NewLocalProvider creates a new local embedder
func NewLocalProvider(dimension int, cache *Cache) (*LocalProvider, error) {
	if dimension <= 0 {
		dimension = LocalDimension
	}
	return &LocalProvider{
		model:     "local-hash-embeddings",
		dimension: dimension,
		cache:     cache,
	}, nil
}

func (l *LocalProvider) GenerateEmbedding(ctx context.Context, req EmbeddingRequest) (*Embedding, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hash := cacheKey(l.model, req.Text)
	if emb, ok := l.cache.Get(hash); ok {
		return emb, nil
	}

	vector := NormalizeVector(hashVector(req.Text, l.dimension))
	emb := &Embedding{
		Vector:    vector,
		Dimension: l.dimension,
		Provider:  ProviderLocal,
		Model:     l.model,
		Hash:      hash,
	}

	l.cache.Set(hash, emb)
	return emb, nil
}

func (l *LocalProvider) GenerateBatch(ctx context.Context, req BatchEmbeddingRequest) (*BatchEmbeddingResponse, error) {
	if err := ValidateBatchRequest(req); err != nil {
		return nil, err
	}

	embeddings := make([]*Embedding, len(req.Texts))
	for i, text := range req.Texts {
		emb, err := l.GenerateEmbedding(ctx, EmbeddingRequest{Text: text, Model: req.Model})
		if err != nil {
			return nil, fmt.Errorf("embedding text %d: %w", i, err)
		}
		embeddings[i] = emb
	}

	return &BatchEmbeddingResponse{
		Embeddings: embeddings,
		Provider:   ProviderLocal,
		Model:      l.model,
	}, nil
}

func (l *LocalProvider) Dimension() int {
	return l.dimension
}

func (l *LocalProvider) Provider() string {
	return ProviderLocal
}

func (l *LocalProvider) Model() string {
	return l.model
}

func (l *LocalProvider) Close() error {
	return nil
}

// hashVector maps lowercased word tokens into dim buckets with a sign bit
func hashVector(text string, dim int) []float32 {
	vector := make([]float32, dim)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, w := range words {
		h := fnv.New64a()
		_, _ = h.Write([]byte(w))
		sum := h.Sum64()
		bucket := int(sum % uint64(dim))
		if sum&(1<<63) != 0 {
			vector[bucket]--
		} else {
			vector[bucket]++
		}
	}
	return vector
}

// NormalizeVector normalizes a vector to unit length (for cosine similarity).
// A zero vector is returned unchanged.
func NormalizeVector(v []float32) []float32 {
	var sum float64
	for _, val := range v {
		sum += float64(val) * float64(val)
	}

	if sum == 0 {
		return v
	}

	norm := math.Sqrt(sum)
	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = float32(float64(val) / norm)
	}

	return result
}
