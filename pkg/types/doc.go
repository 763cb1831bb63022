// Package types provides shared type definitions for the docingest service.
//
// This package defines the domain types and error kinds used across the
// chunker, extractor, embedder and transport packages.
//
// # Core Types
//
// Chunk is one ordered, bounded text segment of a document:
//
//	chunk := types.Chunk{
//	    Index:     1,
//	    Text:      "test. Another sentence here.",
//	    Overlap:   5, // "test." was carried over from chunk 0
//	    Sentences: 1,
//	}
//
// ChunkSet is the ordered collection of chunks for one document. Index order
// is retrieval order:
//
//	if err := set.Validate(); err != nil {
//	    // indices are not 0..n-1, or a chunk is empty
//	}
//
// # Error Kinds
//
// Three sentinel errors classify failures:
//
//	types.ErrValidation // missing/empty input, surfaced directly, never retried
//	types.ErrNotFound   // file path does not resolve to a readable file
//	types.ErrExtraction // content cannot be decoded as text
//
// Packages wrap them with context:
//
//	return fmt.Errorf("%w: doc_id is required", types.ErrValidation)
//
// and transports classify with errors.Is or Kind:
//
//	switch types.Kind(err) {
//	case "validation":
//	    // 400
//	}
package types
