// Package chunker turns extracted document text into bounded, overlapping chunks
// for embedding and retrieval.
//
// The pipeline has three pure stages: Normalize canonicalizes whitespace,
// Sentences splits on terminal punctuation, and Chunker packs sentences
// greedily into chunks of at most TargetChars characters.
//
// # Basic Usage
//
//	c, err := chunker.New(chunker.Config{TargetChars: 4000, OverlapChars: 800})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, chunk := range c.Chunk(chunker.Normalize(raw)) {
//	    fmt.Printf("chunk %d: %d chars (%d carried over)\n",
//	        chunk.Index, chunk.Len(), chunk.Overlap)
//	}
//
// # Chunking Strategy
//
// Sentences are appended to a buffer, joined by a single space, while the
// buffer stays within TargetChars. When the next sentence would overflow:
//   - the buffer is emitted as a chunk
//   - the last OverlapChars characters of the emitted chunk seed the next buffer
//   - the sentence is appended after the seed
//
// The seed is cut on a character boundary, not a word boundary, so it may
// begin mid-word. A single sentence longer than TargetChars is never
// truncated and forms an oversized chunk of its own.
//
// # Sizing
//
// Lengths are Unicode code points, not bytes or tokens. The bound is soft:
// only chunks that pack more than one sentence are guaranteed to fit within
// TargetChars.
//
//	"Hello world. This is a test. Another sentence here."  (target 25, overlap 5)
//	  -> "Hello world."
//	  -> "orld. This is a test."
//	  -> "test. Another sentence here."
//
// Every function in this package is deterministic and safe for concurrent use.
package chunker
