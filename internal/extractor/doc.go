// Package extractor reads documents from disk and returns their raw text.
//
// Supported formats:
//   - PDF: page text in page order, pages separated by "\n"
//   - Markdown and plain text: file content with invalid UTF-8 bytes dropped
//
// A file is treated as PDF when the declared type is "pdf", the path ends in
// .pdf, or the content sniffs as application/pdf. Other known binary formats
// (images, archives) are rejected with types.ErrExtraction.
//
// Usage:
//
//	ex := extractor.New(extractor.Config{MaxFileSize: 10 << 20})
//	raw, err := ex.Extract(ctx, "/data/report.pdf", "pdf")
package extractor
