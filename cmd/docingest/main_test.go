package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docingest/internal/ingest"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	envFile := filepath.Join(t.TempDir(), "empty.env")
	require.NoError(t, os.WriteFile(envFile, nil, 0o600))

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--env-file", envFile, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "docingest "+version)
	assert.Contains(t, out, "Default Model:")
}

func TestChunkCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello world. This is a test. Another sentence here."), 0o644))

	out, err := run(t, "chunk", path, "--target", "25", "--overlap", "5")
	require.NoError(t, err)

	var resp ingest.ChunkResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 25, resp.TargetChars)
	assert.Equal(t, []string{
		"Hello world.",
		"orld. This is a test.",
		"test. Another sentence here.",
	}, resp.Chunks.Texts())
}

func TestChunkCommandErrors(t *testing.T) {
	_, err := run(t, "chunk")
	assert.Error(t, err)

	_, err = run(t, "chunk", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("A."), 0o644))
	_, err = run(t, "chunk", path, "--target", "0")
	assert.Error(t, err)
}

func TestEmbedCommand(t *testing.T) {
	t.Setenv("EMBEDDING_PROVIDER", "local")
	t.Setenv("EMBEDDING_DIMENSION", "16")

	out, err := run(t, "embed", "hello", "world")
	require.NoError(t, err)

	var resp ingest.EmbedResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 16, resp.Dimension)
	assert.Len(t, resp.Embedding, 16)
}
