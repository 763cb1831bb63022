package mcp

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/docingest/internal/embedder"
	"github.com/dshills/docingest/internal/ingest"
)

const (
	// ServerName is the MCP server name
	ServerName = "docingest"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Pipeline is the set of operations exposed as MCP tools
type Pipeline interface {
	Embed(ctx context.Context, req ingest.EmbedRequest) (*ingest.EmbedResponse, error)
	Ingest(ctx context.Context, req ingest.IngestRequest) (*ingest.IngestResponse, error)
	Chunk(ctx context.Context, req ingest.ChunkRequest) (*ingest.ChunkResponse, error)
	Embedder() embedder.Embedder
}

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	pipeline Pipeline
	logger   *slog.Logger
}

// NewServer creates a new MCP server instance
func NewServer(p Pipeline, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s := &Server{
		mcp:      mcpServer,
		pipeline: p,
		logger:   logger,
	}

	s.registerTools()
	return s
}

// Serve runs the MCP protocol on stdio and blocks until ctx is canceled or
// stdin is closed
func (s *Server) Serve(ctx context.Context) error {
	return s.ServeIO(ctx, os.Stdin, os.Stdout)
}

// ServeIO runs the MCP protocol over the given streams
func (s *Server) ServeIO(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	emb := s.pipeline.Embedder()
	s.logger.Info("mcp server ready",
		"provider", emb.Provider(),
		"model", emb.Model(),
		"dimension", emb.Dimension(),
	)
	return stdio.Listen(ctx, in, out)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(embedTextTool(), s.handleEmbedText)
	s.mcp.AddTool(ingestDocumentTool(), s.handleIngestDocument)
	s.mcp.AddTool(chunkTextTool(), s.handleChunkText)
}
