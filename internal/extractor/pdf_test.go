package extractor

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docingest/internal/chunker"
)

// buildPDF writes a minimal PDF with one Helvetica text line per page and a
// correct cross-reference table.
func buildPDF(pages ...string) []byte {
	var objects []string
	kids := ""
	fontObj := 3 + 2*len(pages)
	for i, text := range pages {
		pageObj := 3 + 2*i
		kids += fmt.Sprintf("%d 0 R ", pageObj)
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontObj, pageObj+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}
	objects = append([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, len(pages)),
	}, objects...)
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtract_PDF(t *testing.T) {
	doc := buildPDF("First page.", "Second page.")
	e := New(Config{})

	tests := []struct {
		name     string
		file     string
		declared string
	}{
		{"declared pdf", "report.dat", "pdf"},
		{"pdf extension", "report.pdf", ""},
		{"sniffed content", "upload.bin", ""},
		{"sniff beats declared text", "upload.txt", "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, doc)

			format, _, err := e.Detect(path, tt.declared)
			require.NoError(t, err)
			assert.Equal(t, FormatPDF, format)

			raw, err := e.Extract(context.Background(), path, tt.declared)
			require.NoError(t, err)

			// each page opens with a text object break; pages join with one newline
			assert.Equal(t, "\nFirst page.\n\nSecond page.", raw)
			assert.Equal(t, "First page.\n\nSecond page.", chunker.Normalize(raw))
		})
	}
}

func TestExtract_PDFPageOrder(t *testing.T) {
	path := writeFile(t, "three.pdf", buildPDF("Alpha.", "Bravo.", "Charlie."))

	raw, err := New(Config{}).Extract(context.Background(), path, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "Alpha.\n\nBravo.\n\nCharlie.", chunker.Normalize(raw))
}
