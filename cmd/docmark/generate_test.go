package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"docmark/internal/config"
	"docmark/internal/generator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addSource = `package calc

// Add adds two numbers.
func Add(a int, b int) int { return a + b }
`

func init() {
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writePackage(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestGenerate_Stdout(t *testing.T) {
	dir := writePackage(t, map[string]string{"calc.go": addSource})

	var out bytes.Buffer
	written, err := generate(context.Background(), config.Default(), dir, false, &out)
	require.NoError(t, err)
	assert.Empty(t, written)
	assert.Equal(t, "## Index\n\n"+
		"- [Functions](#functions)\n"+
		"- [Add\\(a int, b int\\) int](#add)\n\n\n"+
		"## Functions\n\n"+
		"## Add\n\n"+
		"```go\nfunc Add(a int, b int) int\n```\n\n"+
		"Add adds two numbers\\.\n", out.String())
	assert.NoFileExists(t, filepath.Join(dir, "DOCUMENTATION.md"))
}

func TestGenerate_WriteAllOutputs(t *testing.T) {
	dir := writePackage(t, map[string]string{"calc.go": addSource})
	cfg := config.Default()
	cfg.Output.HTML = true
	cfg.Output.Model = true

	var out bytes.Buffer
	written, err := generate(context.Background(), cfg, dir, true, &out)
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Equal(t, []string{
		filepath.Join(dir, "DOCUMENTATION.md"),
		filepath.Join(dir, "DOCUMENTATION.html"),
		filepath.Join(dir, modelFile),
	}, written)

	page, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Contains(t, string(page), "### Add")

	html, err := os.ReadFile(written[1])
	require.NoError(t, err)
	assert.Contains(t, string(html), `id="add"`)

	model, err := generator.LoadDocModel(written[2])
	require.NoError(t, err)
	assert.Equal(t, "calc", model.Package)
	require.Len(t, model.Records, 1)
	assert.Equal(t, "Add", model.Records[0].Name)
}

func TestGenerate_SingleFileWritesNextToIt(t *testing.T) {
	dir := writePackage(t, map[string]string{"calc.go": addSource})

	written, err := generate(context.Background(), config.Default(), filepath.Join(dir, "calc.go"), true, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "DOCUMENTATION.md")}, written)
}

func TestGenerate_NothingToDocument(t *testing.T) {
	dir := writePackage(t, map[string]string{"p.go": "package p\n\nfunc hidden() {}\n"})

	_, err := generate(context.Background(), config.Default(), dir, true, io.Discard)
	assert.ErrorIs(t, err, errNothingToDocument)
	assert.NoFileExists(t, filepath.Join(dir, "DOCUMENTATION.md"))
}

func TestGenerate_WithCache(t *testing.T) {
	dir := writePackage(t, map[string]string{"calc.go": addSource})
	cfg := config.Default()
	cfg.Cache.Path = filepath.Join(t.TempDir(), "cache.db")

	var first, second bytes.Buffer
	_, err := generate(context.Background(), cfg, dir, false, &first)
	require.NoError(t, err)
	_, err = generate(context.Background(), cfg, dir, false, &second)
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())
}

func TestWriteOutput_LogsFormatAndSize(t *testing.T) {
	var logs bytes.Buffer
	prev := logger
	logger = slog.New(slog.NewTextHandler(&logs, nil))
	t.Cleanup(func() { logger = prev })

	target := filepath.Join(t.TempDir(), "page.md")
	require.NoError(t, writeOutput(target, "markdown", []byte("## Index\n")))

	line := logs.String()
	assert.Contains(t, line, "format=markdown")
	assert.Contains(t, line, "bytes=9")
	assert.Contains(t, line, `size="9 B"`)
}
