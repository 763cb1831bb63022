package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/docingest/internal/ingest"
	"github.com/dshills/docingest/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams   = -32602 // Invalid method parameters
	ErrorCodeInternalError   = -32603 // Internal JSON-RPC error
	ErrorCodeNotFound        = -32001 // Document path does not resolve to a readable file
	ErrorCodeExtractionError = -32002 // Document content cannot be decoded as text
)

// handleEmbedText handles the embed_text tool invocation
func (s *Server) handleEmbedText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return invalidParams("invalid arguments", ""), nil
	}

	text, ok := args["text"].(string)
	if !ok {
		return invalidParams("text parameter is required", "text"), nil
	}

	resp, err := s.pipeline.Embed(ctx, ingest.EmbedRequest{Text: text})
	if err != nil {
		return s.toolError("embedding failed", err), nil
	}

	return mcp.NewToolResultText(formatJSON(resp)), nil
}

// handleIngestDocument handles the ingest_document tool invocation
func (s *Server) handleIngestDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return invalidParams("invalid arguments", ""), nil
	}

	req := ingest.IngestRequest{
		DocID: getStringDefault(args, "doc_id", ""),
		Title: getStringDefault(args, "title", ""),
		Type:  getStringDefault(args, "type", ""),
		Path:  getStringDefault(args, "path", ""),
	}
	includeEmbeddings := getBoolDefault(args, "include_embeddings", true)

	resp, err := s.pipeline.Ingest(ctx, req)
	if err != nil {
		return s.toolError("ingestion failed", err), nil
	}

	if !includeEmbeddings {
		for i := range resp.Chunks {
			resp.Chunks[i].Embedding = nil
		}
	}

	return mcp.NewToolResultText(formatJSON(resp)), nil
}

// handleChunkText handles the chunk_text tool invocation
func (s *Server) handleChunkText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return invalidParams("invalid arguments", ""), nil
	}

	req := ingest.ChunkRequest{Text: getStringDefault(args, "text", "")}
	target, ok, err := getInt(args, "target_chars")
	if err != nil {
		return invalidParams(err.Error(), "target_chars"), nil
	}
	if ok {
		req.TargetChars = &target
	}
	overlap, ok, err := getInt(args, "overlap_chars")
	if err != nil {
		return invalidParams(err.Error(), "overlap_chars"), nil
	}
	if ok {
		req.OverlapChars = &overlap
	}

	resp, err := s.pipeline.Chunk(ctx, req)
	if err != nil {
		return s.toolError("chunking failed", err), nil
	}

	return mcp.NewToolResultText(formatJSON(resp)), nil
}

// Helper functions

// MCPError is the body of a failed tool call. It travels as the text and
// structured content of a result flagged isError.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Param   string `json:"param,omitempty"`
	Detail  string `json:"error,omitempty"`
}

func (e *MCPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("MCP error %d: %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// toolError converts a pipeline error into an error result with the matching code
func (s *Server) toolError(message string, err error) *mcp.CallToolResult {
	code := codeFor(err)
	if code == ErrorCodeInternalError {
		s.logger.Error(message, "error", err)
	}
	return newErrorResult(&MCPError{
		Code:    code,
		Message: message,
		Kind:    types.Kind(err),
		Detail:  err.Error(),
	})
}

// invalidParams reports a malformed argument before the pipeline runs
func invalidParams(message, param string) *mcp.CallToolResult {
	return newErrorResult(&MCPError{
		Code:    ErrorCodeInvalidParams,
		Message: message,
		Kind:    types.Kind(types.ErrValidation),
		Param:   param,
	})
}

func newErrorResult(e *MCPError) *mcp.CallToolResult {
	res := mcp.NewToolResultError(formatJSON(e))
	res.StructuredContent = e
	return res
}

// codeFor maps a pipeline error kind to an MCP error code
func codeFor(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation):
		return ErrorCodeInvalidParams
	case errors.Is(err, types.ErrNotFound):
		return ErrorCodeNotFound
	case errors.Is(err, types.ErrExtraction):
		return ErrorCodeExtractionError
	default:
		return ErrorCodeInternalError
	}
}

// formatJSON formats a value as indented JSON
func formatJSON(data interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getInt extracts an integer parameter. Absent or null values report
// present=false; fractional, out of range or non-numeric values are errors.
func getInt(args map[string]interface{}, key string) (int, bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, false, nil
	}

	switch val := raw.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) || val != math.Trunc(val) {
			return 0, false, fmt.Errorf("%s must be a whole number", key)
		}
		if val < float64(math.MinInt) || val >= float64(math.MaxInt) {
			return 0, false, fmt.Errorf("%s is out of range", key)
		}
		return int(val), true, nil
	case int:
		return val, true, nil
	case json.Number:
		n, err := strconv.ParseInt(val.String(), 10, strconv.IntSize)
		if err != nil {
			return 0, false, fmt.Errorf("%s must be a whole number in range", key)
		}
		return int(n), true, nil
	default:
		return 0, false, fmt.Errorf("%s must be an integer", key)
	}
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
