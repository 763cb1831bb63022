package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"no punctuation", "just some words", []string{"just some words"}},
		{"single", "One sentence.", []string{"One sentence."}},
		{"three terminals", "A. B! C?", []string{"A.", "B!", "C?"}},
		{"whitespace run dropped", "First.   \n\n Second.", []string{"First.", "Second."}},
		{"no space after dot", "v1.2 is out. Yes", []string{"v1.2 is out.", "Yes"}},
		{"trailing whitespace", "Done.  ", []string{"Done."}},
		{"ellipsis", "Wait... What?", []string{"Wait...", "What?"}},
		{"unicode", "Café ouvert. Über alles!", []string{"Café ouvert.", "Über alles!"}},
		{"newline boundary", "Line one.\nLine two", []string{"Line one.", "Line two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.in)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSentences_NoEmpty(t *testing.T) {
	for s := range Sentences("a. . b!  ?  c.   ") {
		assert.NotEmpty(t, s)
	}
}

func TestSentences_EarlyStop(t *testing.T) {
	var got []string
	for s := range Sentences("A. B. C. D.") {
		got = append(got, s)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"A.", "B."}, got)
}
