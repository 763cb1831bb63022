package extractor

import (
	"fmt"
	"os"
	"strings"

	"github.com/dshills/docingest/pkg/types"
)

// extractText returns the file content with invalid UTF-8 bytes dropped
func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", types.ErrNotFound, path, err)
	}
	text := strings.ToValidUTF8(string(data), "")
	return strings.TrimPrefix(text, "\ufeff"), nil
}
