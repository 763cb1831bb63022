// Package mcp implements the Model Context Protocol (MCP) server for docingest.
//
// The MCP server exposes three tools to AI assistants:
//   - embed_text: Embed a single piece of text
//   - ingest_document: Extract, chunk and embed a document on disk
//   - chunk_text: Preview how text would be chunked, without embedding
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// # Basic Usage
//
// The MCP server is started via the mcp command:
//
//	docingest mcp
//
// It then listens on stdin for MCP protocol messages and writes responses to
// stdout. Logs go to stderr.
//
// # Tool: ingest_document
//
//	Request:
//	{
//	  "name": "ingest_document",
//	  "arguments": {
//	    "doc_id": "handbook-2024",
//	    "title": "Employee Handbook",
//	    "type": "pdf",
//	    "path": "/data/handbook.pdf",
//	    "include_embeddings": false
//	  }
//	}
//
//	Response:
//	{
//	  "doc_id": "handbook-2024",
//	  "title": "Employee Handbook",
//	  "chunks": [
//	    {"index": 0, "id": "5f0c...", "text": "Welcome to ...", "embedding": null}
//	  ]
//	}
//
// # Tool: chunk_text
//
//	Request:
//	{
//	  "name": "chunk_text",
//	  "arguments": {"text": "A. B. C.", "target_chars": 4, "overlap_chars": 0}
//	}
//
//	Response:
//	{
//	  "target_chars": 4,
//	  "overlap_chars": 0,
//	  "chunks": [{"index": 0, "text": "A.", "overlap": 0, "sentences": 1}, ...]
//	}
//
// # MCP Client Configuration
//
//	{
//	  "mcpServers": {
//	    "docingest": {
//	      "command": "/usr/local/bin/docingest",
//	      "args": ["mcp"],
//	      "env": {
//	        "EMBEDDING_ENDPOINT": "http://localhost:8080/v1"
//	      }
//	    }
//	  }
//	}
//
// # Error Handling
//
// Tool failures are returned as results flagged isError, never as JSON-RPC
// errors. The text and structuredContent both carry a JSON body:
//
//	{"code": -32001, "message": "ingestion failed", "kind": "not_found", "error": "..."}
//
// Codes:
//   - -32602: Invalid params (missing or blank arguments, bad chunk sizes)
//   - -32001: Document path does not resolve to a readable file
//   - -32002: Document content cannot be decoded as text
//   - -32603: Internal error (embedding server unavailable, etc.)
package mcp
