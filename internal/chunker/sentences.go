package chunker

import (
	"iter"
	"slices"
	"unicode"
	"unicode/utf8"
)

// isTerminal reports whether r ends a sentence when followed by whitespace
func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Sentences yields the sentences of text in order.
//
// A sentence ends at '.', '!' or '?' immediately followed by one or more
// whitespace characters. The punctuation stays with its sentence and the
// whitespace run is dropped. Text without a boundary is yielded whole. Empty
// sentences are never yielded.
func Sentences(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := 0
		i := 0
		for i < len(text) {
			r, size := utf8.DecodeRuneInString(text[i:])
			i += size
			if !isTerminal(r) || i >= len(text) {
				continue
			}
			next, _ := utf8.DecodeRuneInString(text[i:])
			if !unicode.IsSpace(next) {
				continue
			}

			end := i
			for i < len(text) {
				ws, n := utf8.DecodeRuneInString(text[i:])
				if !unicode.IsSpace(ws) {
					break
				}
				i += n
			}
			if end > start {
				if !yield(text[start:end]) {
					return
				}
			}
			start = i
		}

		if rest := trimTrailingSpace(text[start:]); rest != "" {
			yield(rest)
		}
	}
}

// SplitSentences returns all sentences of text as a slice
func SplitSentences(text string) []string {
	return slices.Collect(Sentences(text))
}

// trimTrailingSpace drops a trailing whitespace run so a remainder made only
// of whitespace yields nothing
func trimTrailingSpace(s string) string {
	end := len(s)
	for end > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= size
	}
	return s[:end]
}
