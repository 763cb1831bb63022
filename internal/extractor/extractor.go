package extractor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dshills/docingest/pkg/types"
)

// DefaultMaxFileSize is the largest file the extractor reads (100 MiB)
const DefaultMaxFileSize int64 = 100 * 1024 * 1024

// Format identifies how a document is decoded
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatUnknown  Format = ""
)

// Extractor turns a document on disk into raw text
type Extractor interface {
	// Extract returns the textual content of the file at path. declaredType is
	// the caller's hint ("pdf", "md", "txt") and may be empty.
	Extract(ctx context.Context, path, declaredType string) (string, error)
}

// Config configures a FileExtractor
type Config struct {
	// MaxFileSize is the maximum file size to process (default: 100 MiB)
	MaxFileSize int64 `json:"max_file_size"`

	// Logger for debug messages
	Logger *slog.Logger `json:"-"`
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// FileExtractor reads PDF, Markdown and plain text files from the local filesystem
type FileExtractor struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a FileExtractor with the given configuration
func New(cfg Config) *FileExtractor {
	cfg.defaults()
	return &FileExtractor{
		cfg:    cfg,
		logger: cfg.Logger,
	}
}

// ParseFormat maps a declared document type to a Format. Unknown or empty
// types map to FormatUnknown and are resolved by sniffing the file.
func ParseFormat(declared string) Format {
	switch strings.ToLower(strings.TrimSpace(declared)) {
	case "pdf", "application/pdf":
		return FormatPDF
	case "md", "markdown", "text/markdown":
		return FormatMarkdown
	case "txt", "text", "text/plain":
		return FormatText
	default:
		return FormatUnknown
	}
}

// Detect resolves the format of the file at path. A declared "pdf" type or a
// .pdf extension wins; otherwise the content is sniffed.
func (e *FileExtractor) Detect(path, declaredType string) (Format, *mimetype.MIME, error) {
	declared := ParseFormat(declaredType)
	if declared == FormatPDF || strings.EqualFold(filepath.Ext(path), ".pdf") {
		return FormatPDF, nil, nil
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return FormatUnknown, nil, fmt.Errorf("%w: detect %s: %v", types.ErrExtraction, path, err)
	}
	if mt.Is("application/pdf") {
		return FormatPDF, mt, nil
	}
	if declared != FormatUnknown {
		return declared, mt, nil
	}
	if strings.EqualFold(filepath.Ext(path), ".md") || strings.EqualFold(filepath.Ext(path), ".markdown") {
		return FormatMarkdown, mt, nil
	}
	return FormatText, mt, nil
}

// Extract returns the raw text of the document at path.
//
// It fails with types.ErrNotFound when path is not a readable regular file
// and with types.ErrExtraction when the content cannot be decoded as text.
func (e *FileExtractor) Extract(ctx context.Context, path, declaredType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: path is required", types.ErrValidation)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return "", fmt.Errorf("%w: %s", types.ErrNotFound, path)
		}
		return "", fmt.Errorf("%w: stat %s: %v", types.ErrNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", types.ErrNotFound, path)
	}
	if info.Size() > e.cfg.MaxFileSize {
		return "", fmt.Errorf("%w: file too large: %d bytes (max %d)", types.ErrExtraction, info.Size(), e.cfg.MaxFileSize)
	}
	if info.Size() == 0 {
		return "", nil
	}

	format, mt, err := e.Detect(path, declaredType)
	if err != nil {
		return "", err
	}

	e.logger.Debug("extracting document", "path", path, "format", string(format), "size", info.Size())

	switch format {
	case FormatPDF:
		return extractPDF(ctx, path)
	default:
		if mt != nil && !isTextual(mt) {
			return "", fmt.Errorf("%w: unsupported binary content %s", types.ErrExtraction, mt.String())
		}
		return extractText(path)
	}
}

// isTextual reports whether mt is text or an unclassified byte stream.
// Unclassified streams are usually text with a few invalid bytes.
func isTextual(mt *mimetype.MIME) bool {
	if mt.Is("application/octet-stream") {
		return true
	}
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
