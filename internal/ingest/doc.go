// Package ingest wires extraction, chunking and embedding into the three
// operations exposed by the transports: Embed, Ingest and Chunk.
//
// Requests are validated at this boundary; the chunker only ever sees
// normalized text and integers. Ingest embeds chunk batches concurrently and
// returns chunks in index order, each paired with its own vector and a
// deterministic ID derived from the document ID and chunk index.
package ingest
