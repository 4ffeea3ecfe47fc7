package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docmark/internal/config"
	"docmark/internal/crawler"
	"docmark/internal/doc"
	"docmark/internal/extractor"
	"docmark/internal/generator"
	"docmark/internal/graph"
	"docmark/internal/logfields"
	"docmark/internal/storage"

	"github.com/dustin/go-humanize"
)

// modelFile is the name of the JSON document model written by --model.
const modelFile = "doc_model.json"

// collect extracts and links the records of the package at path.
func collect(ctx context.Context, cfg *config.Config, path string) (string, []doc.Record, error) {
	ext, err := extractor.NewExtractor("go")
	if err != nil {
		return "", nil, err
	}

	opts := []crawler.Option{
		crawler.WithPlatform(cfg.Source.GOOS, cfg.Source.GOARCH, cfg.Source.Tags),
		crawler.WithLogger(logger),
	}
	if cfg.Cache.Path != "" {
		store, err := storage.NewSQLiteStore(cfg.Cache.Path)
		if err != nil {
			return "", nil, fmt.Errorf("failed to open cache %s: %w", cfg.Cache.Path, err)
		}
		defer store.Close()
		opts = append(opts, crawler.WithCache(store))
	}

	start := time.Now()
	g := graph.NewGraph()
	if err := crawler.NewCrawler(ext, opts...).ScanPackage(ctx, path, g.AddFile); err != nil {
		return "", nil, err
	}
	records := g.Link()
	logger.Debug("Linked package",
		logfields.Package(g.Package),
		logfields.Units(g.Len()),
		logfields.Records(len(records)),
		logfields.Duration(time.Since(start)))
	return g.Package, records, nil
}

// outputDir is the directory generated files are written to.
func outputDir(path string) string {
	if st, err := os.Stat(path); err == nil && !st.IsDir() {
		return filepath.Dir(path)
	}
	return path
}

// generate renders the package at path. The page goes to out unless write
// is set; HTML and model outputs are always files. It returns the files written.
func generate(ctx context.Context, cfg *config.Config, path string, write bool, out io.Writer) ([]string, error) {
	pkg, records, err := collect(ctx, cfg, path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errNothingToDocument
	}

	gen := generator.NewMarkdownGenerator(generator.Options{
		CodeLang:    cfg.Render.CodeLang,
		IndexIndent: cfg.Render.IndexIndent,
	})
	page := gen.Render(records)

	dir := outputDir(path)
	var written []string
	if write {
		target := filepath.Join(dir, cfg.Output.File)
		if err := writeOutput(target, "markdown", append(page, '\n')); err != nil {
			return written, err
		}
		written = append(written, target)
	} else if _, err := fmt.Fprintln(out, string(page)); err != nil {
		return written, err
	}

	if cfg.Output.HTML {
		html, err := generator.RenderHTML(pkg, page)
		if err != nil {
			return written, fmt.Errorf("failed to render HTML: %w", err)
		}
		target := filepath.Join(dir, strings.TrimSuffix(cfg.Output.File, filepath.Ext(cfg.Output.File))+".html")
		if err := writeOutput(target, "html", html); err != nil {
			return written, err
		}
		written = append(written, target)
	}

	if cfg.Output.Model {
		target := filepath.Join(dir, modelFile)
		if err := generator.SaveDocModel(target, generator.BuildDocModel(pkg, records, time.Now())); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", target, err)
		}
		logger.Info("Wrote document model", logfields.Output(target), logfields.Records(len(records)))
		written = append(written, target)
	}
	return written, nil
}

func writeOutput(path, format string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("Wrote output",
		logfields.Output(path),
		logfields.Format(format),
		logfields.Bytes(len(data)),
		logfields.Size(humanize.Bytes(uint64(len(data)))))
	return nil
}
