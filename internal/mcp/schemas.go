package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// embedTextTool returns the tool definition for embed_text
func embedTextTool() mcp.Tool {
	return mcp.Tool{
		Name:        "embed_text",
		Description: "Generate an L2-normalized embedding vector for a piece of text",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to embed (must contain non-whitespace characters)",
				},
			},
			Required: []string{"text"},
		},
	}
}

// ingestDocumentTool returns the tool definition for ingest_document
func ingestDocumentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "ingest_document",
		Description: "Extract a PDF, Markdown or text file, split it into overlapping chunks and embed each chunk",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"doc_id": map[string]interface{}{
					"type":        "string",
					"description": "Caller-chosen document identifier; chunk ids are derived from it",
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Document title",
				},
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Declared document type; a .pdf extension or PDF content is detected regardless",
					"enum":        []string{"pdf", "md", "txt"},
				},
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path of the document on the server's filesystem",
				},
				"include_embeddings": map[string]interface{}{
					"type":        "boolean",
					"description": "If false, omit embedding vectors from the result",
					"default":     true,
				},
			},
			Required: []string{"doc_id", "title", "path"},
		},
	}
}

// chunkTextTool returns the tool definition for chunk_text
func chunkTextTool() mcp.Tool {
	return mcp.Tool{
		Name:        "chunk_text",
		Description: "Normalize text and split it into sentence-aligned, overlapping chunks without embedding",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Raw text to chunk",
				},
				"target_chars": map[string]interface{}{
					"type":        "integer",
					"description": "Soft upper bound on chunk length in characters",
					"minimum":     1,
				},
				"overlap_chars": map[string]interface{}{
					"type":        "integer",
					"description": "Trailing characters of each chunk repeated at the start of the next",
					"minimum":     0,
				},
			},
			Required: []string{"text"},
		},
	}
}
