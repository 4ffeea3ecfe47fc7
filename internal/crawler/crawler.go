package crawler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"go/build"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"docmark/internal/extractor"
	"docmark/internal/logfields"
)

// ErrNoSources is returned when a path holds nothing to document.
var ErrNoSources = errors.New("no source files")

// Cache stores extraction results keyed by file path and content hash.
type Cache interface {
	Lookup(ctx context.Context, path, hash string) (*extractor.File, bool, error)
	Store(ctx context.Context, hash string, f *extractor.File) error
	Prune(ctx context.Context, dir string, keep []string) (int64, error)
}

// Crawler enumerates the source files of one package and extracts them.
type Crawler struct {
	extractor *extractor.Extractor
	build     build.Context
	cache     Cache
	logger    *slog.Logger
}

type Option func(*Crawler)

// WithCache makes the crawler reuse extraction results of unchanged files.
func WithCache(cache Cache) Option {
	return func(c *Crawler) { c.cache = cache }
}

// WithPlatform selects the GOOS/GOARCH and build tags used to filter files.
// Empty values keep the host defaults.
func WithPlatform(goos, goarch string, tags []string) Option {
	return func(c *Crawler) {
		if goos != "" {
			c.build.GOOS = goos
		}
		if goarch != "" {
			c.build.GOARCH = goarch
		}
		c.build.BuildTags = append([]string(nil), tags...)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) { c.logger = logger }
}

// NewCrawler creates a new crawler instance.
func NewCrawler(ext *extractor.Extractor, opts ...Option) *Crawler {
	c := &Crawler{
		extractor: ext,
		build:     build.Default,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sources returns the files making up path. A file path is taken as is; a
// directory yields its non-test .go files that match the build platform,
// which skips files constrained by "//go:build ignore" and foreign
// _GOOS/_GOARCH suffixes. Subdirectories are separate packages and ignored.
func (c *Crawler) Sources(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		ok, err := c.build.MatchFile(path, name)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate build constraints of %s: %w", filepath.Join(path, name), err)
		}
		if !ok {
			c.logger.Debug("Skipping file excluded by build constraints", logfields.File(name))
			continue
		}
		files = append(files, filepath.Join(path, name))
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, path)
	}
	return files, nil
}

// ScanPackage extracts every source file of path in name order and streams
// the results to onFile. Paths are made absolute first. The first read or
// parse failure aborts the scan.
func (c *Crawler) ScanPackage(ctx context.Context, path string, onFile func(*extractor.File)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	path = abs
	files, err := c.Sources(path)
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := c.extractFile(ctx, file)
		if err != nil {
			return err
		}
		onFile(f)
	}

	if c.cache != nil {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			removed, err := c.cache.Prune(ctx, path, files)
			if err != nil {
				c.logger.Warn("Failed to prune extraction cache", logfields.Path(path), logfields.Error(err))
			} else if removed > 0 {
				c.logger.Debug("Pruned extraction cache", logfields.Path(path), logfields.Count(int(removed)))
			}
		}
	}
	return nil
}

func (c *Crawler) extractFile(ctx context.Context, path string) (*extractor.File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	if c.cache == nil {
		return c.extractor.Extract(ctx, path, src)
	}

	sum := sha256.Sum256(src)
	hash := hex.EncodeToString(sum[:])
	cached, ok, err := c.cache.Lookup(ctx, path, hash)
	if err != nil {
		c.logger.Warn("Extraction cache lookup failed", logfields.File(path), logfields.Error(err))
	} else if ok {
		c.logger.Debug("Extraction cache hit", logfields.File(path), logfields.Units(len(cached.Units)))
		return cached, nil
	}

	f, err := c.extractor.Extract(ctx, path, src)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Store(ctx, hash, f); err != nil {
		c.logger.Warn("Failed to update extraction cache", logfields.File(path), logfields.Error(err))
	}
	return f, nil
}
