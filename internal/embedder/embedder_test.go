package embedder

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docingest/pkg/types"
)

func TestComputeHash(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "empty string",
			text: "",
			want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name: "simple text",
			text: "hello world",
			want: "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeHash(tt.text))
		})
	}

	assert.NotEqual(t, cacheKey("model-a", "text"), cacheKey("model-b", "text"))
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"valid request", "test text", false},
		{"empty text", "", true},
		{"spaces only", "   ", true},
		{"mixed whitespace", " \n\t\r ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(EmbeddingRequest{Text: tt.text})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrEmptyText)
			assert.ErrorIs(t, err, types.ErrValidation)
		})
	}
}

func TestValidateBatchRequest(t *testing.T) {
	err := ValidateBatchRequest(BatchEmbeddingRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, types.ErrValidation)

	err = ValidateBatchRequest(BatchEmbeddingRequest{Texts: []string{"ok", " "}})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.Contains(t, err.Error(), "index 1")

	assert.NoError(t, ValidateBatchRequest(BatchEmbeddingRequest{Texts: []string{"a", "b"}}))
}

func TestCache(t *testing.T) {
	t.Run("get returns a copy", func(t *testing.T) {
		cache := NewCache(10)
		cache.Set("h", &Embedding{Vector: []float32{1, 2, 3}, Dimension: 3})

		got, ok := cache.Get("h")
		require.True(t, ok)
		got.Vector[0] = 99

		again, ok := cache.Get("h")
		require.True(t, ok)
		assert.Equal(t, float32(1), again.Vector[0])
	})

	t.Run("set stores a copy", func(t *testing.T) {
		cache := NewCache(10)
		emb := &Embedding{Vector: []float32{1, 2, 3}}
		cache.Set("h", emb)
		emb.Vector[0] = 42

		got, _ := cache.Get("h")
		assert.Equal(t, float32(1), got.Vector[0])
	})

	t.Run("lru eviction", func(t *testing.T) {
		cache := NewCache(2)
		cache.Set("a", &Embedding{})
		cache.Set("b", &Embedding{})
		cache.Set("c", &Embedding{})

		assert.Equal(t, 2, cache.Size())
		_, ok := cache.Get("a")
		assert.False(t, ok)
	})

	t.Run("clear", func(t *testing.T) {
		cache := NewCache(0)
		cache.Set("a", &Embedding{})
		cache.Clear()
		assert.Equal(t, 0, cache.Size())
	})

	t.Run("nil cache is a no-op", func(t *testing.T) {
		var cache *Cache
		cache.Set("a", &Embedding{})
		_, ok := cache.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 0, cache.Size())
	})

	t.Run("concurrent access", func(t *testing.T) {
		cache := NewCache(100)
		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := fmt.Sprintf("k%d", i%5)
				cache.Set(key, &Embedding{Vector: []float32{float32(i)}})
				_, _ = cache.Get(key)
			}(i)
		}
		wg.Wait()
		assert.LessOrEqual(t, cache.Size(), 5)
	})
}

func TestErrorKinds(t *testing.T) {
	assert.True(t, errors.Is(ErrBatchTooLarge, types.ErrValidation))
	assert.False(t, errors.Is(ErrProviderFailed, types.ErrValidation))
}
