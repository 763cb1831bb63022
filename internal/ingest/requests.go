package ingest

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dshills/docingest/pkg/types"
)

// EmbedRequest asks for the embedding of a single text
type EmbedRequest struct {
	Text string `json:"text" validate:"notblank"`
}

// EmbedResponse carries one L2-normalized vector
type EmbedResponse struct {
	Embedding []float32 `json:"embedding"`
	Model     string    `json:"model,omitempty"`
	Dimension int       `json:"dimension,omitempty"`
}

// IngestRequest identifies a document on disk to ingest
type IngestRequest struct {
	DocID string `json:"doc_id" validate:"notblank"`
	Title string `json:"title" validate:"notblank"`
	Type  string `json:"type"`
	Path  string `json:"path" validate:"notblank"`
}

// IngestChunk is one chunk paired with its embedding
type IngestChunk struct {
	Index     int       `json:"index"`
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
}

// IngestResponse is the ordered result of ingesting one document
type IngestResponse struct {
	DocID  string        `json:"doc_id"`
	Title  string        `json:"title"`
	Chunks []IngestChunk `json:"chunks"`
}

// ChunkRequest is a dry run of normalization and chunking. Nil sizing fields
// use the service defaults.
type ChunkRequest struct {
	Text         string `json:"text" validate:"notblank"`
	TargetChars  *int   `json:"target_chars,omitempty"`
	OverlapChars *int   `json:"overlap_chars,omitempty"`
}

// ChunkResponse lists the chunks a ChunkRequest would produce
type ChunkResponse struct {
	TargetChars  int            `json:"target_chars"`
	OverlapChars int            `json:"overlap_chars"`
	Chunks       types.ChunkSet `json:"chunks"`
}

// describe flattens validator errors into "field: rule" messages
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "notblank", "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s%s", fe.Field(), fe.Tag(), paramSuffix(fe.Param())))
		}
	}
	return strings.Join(msgs, "; ")
}

func paramSuffix(param string) string {
	if param == "" {
		return ""
	}
	return "=" + param
}

// jsonName reports fields by their JSON name in validation messages
func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
