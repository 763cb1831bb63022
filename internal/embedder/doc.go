// Package embedder generates L2-normalized vector embeddings for document chunks.
//
// Two providers are available: an OpenAI-compatible HTTP client (OpenAI itself,
// Hugging Face text-embeddings-inference, vLLM, Ollama) and a deterministic
// local provider for offline development. Both share an in-memory LRU cache.
//
// # Basic Usage
//
//	emb, err := embedder.New(embedder.Config{
//	    Endpoint:  "http://tei:8080/v1",
//	    Model:     "BAAI/bge-small-en-v1.5",
//	    CacheSize: 10000,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer emb.Close()
//
//	result, err := emb.GenerateEmbedding(ctx, embedder.EmbeddingRequest{
//	    Text: "Chunks are embedded one vector per chunk.",
//	})
//	fmt.Printf("Vector dimension: %d\n", len(result.Vector))
//
// # Batch Processing
//
//	resp, err := emb.GenerateBatch(ctx, embedder.BatchEmbeddingRequest{
//	    Texts: chunks.Texts(),
//	})
//
//	for i, embedding := range resp.Embeddings {
//	    // embedding belongs to chunk i
//	}
//
// Batches are limited to MaxBatchSize texts. Cached texts are served from the
// cache and only the misses are sent to the server.
//
// # Provider Selection
//
//  1. Config.Provider when set ("openai" or "local")
//  2. "openai" when Config.Endpoint is set
//  3. "local" otherwise
//
// # Caching
//
// Cache keys are SHA-256 hashes of model and text. Get and Set copy vectors,
// so callers may mutate results freely.
//
// # Error Handling
//
// Empty or whitespace-only text fails with ErrEmptyText, which wraps
// types.ErrValidation and is never retried. Transient HTTP failures (network
// errors, 429, 5xx) are retried with exponential backoff; anything left over
// is reported as ErrProviderFailed:
//
//	_, err := emb.GenerateBatch(ctx, req)
//	if errors.Is(err, embedder.ErrProviderFailed) {
//	    // server unavailable after retries
//	}
package embedder
