package types

import (
	"crypto/sha256"
	"unicode/utf8"
)

// Chunk is one bounded, ordered text segment produced for downstream embedding
type Chunk struct {
	// Index is the zero-based position of the chunk within its ChunkSet
	Index int `json:"index"`

	// Text is the chunk content, including any carried-over overlap prefix
	Text string `json:"text"`

	// Overlap is the number of characters at the start of Text that were
	// carried over from the previous chunk (0 for the first chunk)
	Overlap int `json:"overlap"`

	// Sentences is the number of sentences packed into the chunk,
	// not counting the overlap prefix
	Sentences int `json:"sentences"`
}

// Len returns the chunk length in characters (Unicode code points)
func (c *Chunk) Len() int {
	return utf8.RuneCountInString(c.Text)
}

// Body returns the chunk text without its overlap prefix and the single
// joining space that follows it
func (c *Chunk) Body() string {
	if c.Overlap == 0 {
		return c.Text
	}
	runes := []rune(c.Text)
	start := c.Overlap + 1
	if start > len(runes) {
		return ""
	}
	return string(runes[start:])
}

// ContentHash computes the SHA-256 hash of the chunk text
func (c *Chunk) ContentHash() [32]byte {
	return sha256.Sum256([]byte(c.Text))
}

// Validate checks that the chunk is well formed
func (c *Chunk) Validate() error {
	if c.Index < 0 {
		return ErrNegativeIndex
	}
	if c.Text == "" {
		return ErrEmptyContent
	}
	if c.Overlap > c.Len() {
		return ErrOverlapTooLong
	}
	return nil
}

// ChunkSet is the ordered sequence of chunks for one document. Index order is
// retrieval order and must be preserved end to end.
type ChunkSet []Chunk

// Texts returns the chunk texts in index order
func (cs ChunkSet) Texts() []string {
	out := make([]string, len(cs))
	for i := range cs {
		out[i] = cs[i].Text
	}
	return out
}

// Validate checks every chunk and that indices run 0..n-1 without gaps
func (cs ChunkSet) Validate() error {
	for i := range cs {
		if err := cs[i].Validate(); err != nil {
			return err
		}
		if cs[i].Index != i {
			return ErrIndexGap
		}
	}
	return nil
}
