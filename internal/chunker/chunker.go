package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/docingest/pkg/types"
)

const (
	// DefaultTargetChars is the soft upper bound on chunk length in characters
	DefaultTargetChars = 4000

	// DefaultOverlapChars is the number of trailing characters carried into the next chunk
	DefaultOverlapChars = 800
)

// Config controls chunk sizing
type Config struct {
	TargetChars  int `json:"target_chars"`
	OverlapChars int `json:"overlap_chars"`
}

// DefaultConfig returns the default chunk sizing
func DefaultConfig() Config {
	return Config{
		TargetChars:  DefaultTargetChars,
		OverlapChars: DefaultOverlapChars,
	}
}

// Validate checks the sizing parameters
func (c Config) Validate() error {
	if c.TargetChars <= 0 {
		return fmt.Errorf("%w: target_chars must be > 0, got %d", types.ErrValidation, c.TargetChars)
	}
	if c.OverlapChars < 0 {
		return fmt.Errorf("%w: overlap_chars must be >= 0, got %d", types.ErrValidation, c.OverlapChars)
	}
	return nil
}

// Chunker packs sentences into bounded, overlapping chunks
type Chunker struct {
	target  int
	overlap int
}

// New creates a new Chunker instance.
// An overlap larger than the target is accepted; chunks then repeat most of
// their predecessor.
func New(cfg Config) (*Chunker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Chunker{
		target:  cfg.TargetChars,
		overlap: cfg.OverlapChars,
	}, nil
}

// Config returns the sizing the chunker was built with
func (c *Chunker) Config() Config {
	return Config{TargetChars: c.target, OverlapChars: c.overlap}
}

// Chunk splits normalized text into an ordered ChunkSet.
//
// Sentences are appended to a buffer while the buffer stays within the
// target. When the next sentence would overflow, the buffer is emitted and
// the next buffer starts with the last OverlapChars characters of the emitted
// one. A sentence longer than the target is kept whole. Lengths are counted
// in Unicode code points.
func (c *Chunker) Chunk(text string) types.ChunkSet {
	chunks := make(types.ChunkSet, 0)

	var (
		buf       strings.Builder
		bufLen    int
		seedLen   int
		sentences int
	)

	emit := func() {
		chunks = append(chunks, types.Chunk{
			Index:     len(chunks),
			Text:      buf.String(),
			Overlap:   seedLen,
			Sentences: sentences,
		})
	}

	for s := range Sentences(text) {
		sLen := utf8.RuneCountInString(s)

		candidate := sLen
		if bufLen > 0 {
			candidate = bufLen + 1 + sLen
		}
		if candidate <= c.target {
			if bufLen > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(s)
			bufLen = candidate
			sentences++
			continue
		}

		var seed string
		if bufLen > 0 {
			emit()
			if c.overlap > 0 {
				seed = tail(buf.String(), c.overlap)
			}
		}

		buf.Reset()
		bufLen, seedLen, sentences = 0, 0, 1
		if seed != "" {
			seedLen = utf8.RuneCountInString(seed)
			buf.WriteString(seed)
			buf.WriteByte(' ')
			bufLen = seedLen + 1
		}
		buf.WriteString(s)
		bufLen += sLen
	}

	if bufLen > 0 {
		emit()
	}
	return chunks
}

// Texts is a convenience wrapper returning only the chunk strings
func (c *Chunker) Texts(text string) []string {
	return c.Chunk(text).Texts()
}

// tail returns the last n code points of s, or s itself when it is shorter
func tail(s string, n int) string {
	count := utf8.RuneCountInString(s)
	if count <= n {
		return s
	}
	skip := count - n
	for i := range s {
		if skip == 0 {
			return s[i:]
		}
		skip--
	}
	return ""
}
