package types

import "errors"

// Error kinds surfaced by the ingestion pipeline. Packages wrap these with
// fmt.Errorf("%w: ...") so callers can classify failures with errors.Is.
var (
	// ErrValidation marks missing or empty required input. Never retried.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a referenced file path that does not resolve to a readable file.
	ErrNotFound = errors.New("not found")

	// ErrExtraction marks content that cannot be decoded as text.
	ErrExtraction = errors.New("extraction error")
)

// Domain errors for chunk validation
var (
	ErrNegativeIndex  = errors.New("chunk index must be >= 0")
	ErrEmptyContent   = errors.New("content cannot be empty")
	ErrIndexGap       = errors.New("chunk indices must increase by one starting at 0")
	ErrOverlapTooLong = errors.New("overlap cannot exceed chunk length")
)

// Kind returns a short label for the error kind of err, or "internal" when err
// does not wrap one of the pipeline error kinds.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrExtraction):
		return "extraction"
	default:
		return "internal"
	}
}
