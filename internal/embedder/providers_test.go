package embedder

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docingest/pkg/types"
)

// fakeEmbeddingServer serves /v1/embeddings. Text i of a request gets the
// vector [len(text), i+1, 0, ...] with the given dimension.
type fakeEmbeddingServer struct {
	*httptest.Server
	calls     atomic.Int32
	texts     atomic.Int32
	failFirst int32
	status    int
	reversed  bool
	dimension int
}

func newFakeServer(t *testing.T, opts ...func(*fakeEmbeddingServer)) *fakeEmbeddingServer {
	t.Helper()
	f := &fakeEmbeddingServer{status: http.StatusInternalServerError, dimension: 4}
	for _, opt := range opts {
		opt(f)
	}

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := f.calls.Add(1)
		if r.URL.Path != "/v1/embeddings" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if call <= f.failFirst {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(`{"error":{"message":"temporarily unavailable","type":"server_error"}}`))
			return
		}

		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.texts.Add(int32(len(req.Input)))

		data := make([]map[string]any, 0, len(req.Input))
		for i, text := range req.Input {
			vec := make([]float32, f.dimension)
			vec[0] = float32(len(text))
			vec[1] = float32(i + 1)
			data = append(data, map[string]any{"object": "embedding", "index": i, "embedding": vec})
		}
		if f.reversed {
			for l, r := 0, len(data)-1; l < r; l, r = l+1, r-1 {
				data[l], data[r] = data[r], data[l]
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  req.Model,
			"data":   data,
			"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
	t.Cleanup(f.Close)
	return f
}

func fastRetry() RetryConfig {
	return RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func newTestProvider(t *testing.T, srv *fakeEmbeddingServer, cache *Cache) *OpenAIProvider {
	t.Helper()
	p, err := NewOpenAIProvider(Config{
		Endpoint: srv.URL + "/v1",
		Model:    "test-model",
		Retry:    fastRetry(),
	}, cache)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func vectorNorm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func TestOpenAIProvider(t *testing.T) {
	t.Run("single embedding is normalized", func(t *testing.T) {
		srv := newFakeServer(t)
		p := newTestProvider(t, srv, nil)
		assert.Zero(t, p.Dimension())

		emb, err := p.GenerateEmbedding(context.Background(), EmbeddingRequest{Text: "abc"})
		require.NoError(t, err)

		assert.Equal(t, ProviderOpenAI, emb.Provider)
		assert.Equal(t, "test-model", emb.Model)
		assert.Len(t, emb.Vector, 4)
		assert.InDelta(t, 1.0, vectorNorm(emb.Vector), 1e-6)
		// raw vector [3, 1, 0, 0]
		assert.InDelta(t, 3/math.Sqrt(10), emb.Vector[0], 1e-6)
		assert.Equal(t, 4, p.Dimension())
	})

	t.Run("batch preserves order", func(t *testing.T) {
		srv := newFakeServer(t, func(f *fakeEmbeddingServer) { f.reversed = true })
		p := newTestProvider(t, srv, nil)

		texts := []string{"a", "bbbb", "cc"}
		resp, err := p.GenerateBatch(context.Background(), BatchEmbeddingRequest{Texts: texts})
		require.NoError(t, err)
		require.Len(t, resp.Embeddings, 3)

		for i, emb := range resp.Embeddings {
			// second component encodes position, first encodes length
			ratio := emb.Vector[0] / emb.Vector[1]
			assert.InDelta(t, float64(len(texts[i]))/float64(i+1), float64(ratio), 1e-5, "embedding %d", i)
		}
	})

	t.Run("empty text rejected without a call", func(t *testing.T) {
		srv := newFakeServer(t)
		p := newTestProvider(t, srv, nil)

		_, err := p.GenerateEmbedding(context.Background(), EmbeddingRequest{Text: "  \n"})
		assert.ErrorIs(t, err, types.ErrValidation)
		assert.Equal(t, int32(0), srv.calls.Load())
	})

	t.Run("transient failures are retried", func(t *testing.T) {
		srv := newFakeServer(t, func(f *fakeEmbeddingServer) { f.failFirst = 2 })
		p := newTestProvider(t, srv, nil)

		_, err := p.GenerateEmbedding(context.Background(), EmbeddingRequest{Text: "retry me"})
		require.NoError(t, err)
		assert.Equal(t, int32(3), srv.calls.Load())
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		srv := newFakeServer(t, func(f *fakeEmbeddingServer) { f.failFirst = 100 })
		p := newTestProvider(t, srv, nil)

		_, err := p.GenerateEmbedding(context.Background(), EmbeddingRequest{Text: "never"})
		assert.ErrorIs(t, err, ErrProviderFailed)
		assert.Equal(t, int32(3), srv.calls.Load())
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		srv := newFakeServer(t, func(f *fakeEmbeddingServer) {
			f.failFirst = 100
			f.status = http.StatusBadRequest
		})
		p := newTestProvider(t, srv, nil)

		_, err := p.GenerateEmbedding(context.Background(), EmbeddingRequest{Text: "bad"})
		assert.ErrorIs(t, err, ErrProviderFailed)
		assert.Equal(t, int32(1), srv.calls.Load())
	})

	t.Run("cache serves repeated texts", func(t *testing.T) {
		srv := newFakeServer(t)
		p := newTestProvider(t, srv, NewCache(100))
		ctx := context.Background()

		_, err := p.GenerateBatch(ctx, BatchEmbeddingRequest{Texts: []string{"one", "two"}})
		require.NoError(t, err)
		resp, err := p.GenerateBatch(ctx, BatchEmbeddingRequest{Texts: []string{"two", "three", "one"}})
		require.NoError(t, err)

		require.Len(t, resp.Embeddings, 3)
		assert.Equal(t, int32(2), srv.calls.Load())
		assert.Equal(t, int32(3), srv.texts.Load(), "only the uncached text is sent")
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		srv := newFakeServer(t)
		p, err := NewOpenAIProvider(Config{Endpoint: srv.URL + "/v1", Dimension: 8, Retry: fastRetry()}, nil)
		require.NoError(t, err)

		_, err = p.GenerateEmbedding(context.Background(), EmbeddingRequest{Text: "x"})
		assert.ErrorIs(t, err, ErrProviderFailed)
		assert.Equal(t, int32(1), srv.calls.Load())
	})

	t.Run("batch too large", func(t *testing.T) {
		srv := newFakeServer(t)
		p := newTestProvider(t, srv, nil)

		texts := make([]string, MaxBatchSize+1)
		for i := range texts {
			texts[i] = "t"
		}
		_, err := p.GenerateBatch(context.Background(), BatchEmbeddingRequest{Texts: texts})
		assert.ErrorIs(t, err, ErrBatchTooLarge)
	})

	t.Run("canceled context", func(t *testing.T) {
		srv := newFakeServer(t)
		p := newTestProvider(t, srv, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := p.GenerateEmbedding(ctx, EmbeddingRequest{Text: "x"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewOpenAIProvider_RequiresEndpointOrKey(t *testing.T) {
	_, err := NewOpenAIProvider(Config{}, nil)
	assert.ErrorIs(t, err, ErrNoProviderEnabled)
}

func TestLocalProvider(t *testing.T) {
	p, err := NewLocalProvider(0, NewCache(10))
	require.NoError(t, err)
	ctx := context.Background()

	a, err := p.GenerateEmbedding(ctx, EmbeddingRequest{Text: "The quick brown fox"})
	require.NoError(t, err)
	b, err := p.GenerateEmbedding(ctx, EmbeddingRequest{Text: "The quick brown fox"})
	require.NoError(t, err)

	assert.Equal(t, LocalDimension, p.Dimension())
	assert.Len(t, a.Vector, LocalDimension)
	assert.Equal(t, a.Vector, b.Vector, "deterministic")
	assert.InDelta(t, 1.0, vectorNorm(a.Vector), 1e-5)

	_, err = p.GenerateEmbedding(ctx, EmbeddingRequest{Text: "\t"})
	assert.ErrorIs(t, err, types.ErrValidation)

	// punctuation only hashes to nothing and stays a zero vector
	zero, err := p.GenerateEmbedding(ctx, EmbeddingRequest{Text: "..."})
	require.NoError(t, err)
	assert.Equal(t, 0.0, vectorNorm(zero.Vector))

	resp, err := p.GenerateBatch(ctx, BatchEmbeddingRequest{Texts: []string{"x", "y"}})
	require.NoError(t, err)
	assert.Len(t, resp.Embeddings, 2)
}

func TestNormalizeVector(t *testing.T) {
	tests := []struct {
		name string
		in   []float32
		want []float32
	}{
		{"unit already", []float32{1, 0, 0}, []float32{1, 0, 0}},
		{"3-4-5", []float32{3, 4}, []float32{0.6, 0.8}},
		{"zero vector unchanged", []float32{0, 0, 0}, []float32{0, 0, 0}},
		{"empty", []float32{}, []float32{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeVector(tt.in)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-6)
			}
		})
	}
}
