package chunker

import (
	"regexp"
	"strings"
)

var (
	lineBreaks   = regexp.MustCompile(`\r\n|\r`)
	horizontalWS = regexp.MustCompile(`[ \t]+`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
)

// Normalize canonicalizes whitespace in raw extracted text.
//
// Line endings become "\n", runs of spaces and tabs collapse to one space,
// three or more consecutive newlines collapse to a paragraph break ("\n\n")
// and the result is trimmed. Normalize is idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := lineBreaks.ReplaceAllString(raw, "\n")
	s = horizontalWS.ReplaceAllString(s, " ")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
