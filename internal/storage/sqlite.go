package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"docmark/internal/extractor"

	_ "github.com/mattn/go-sqlite3"
)

// unitsVersion is bumped whenever the JSON shape of extractor.Unit changes;
// rows written under another version are treated as misses.
const unitsVersion = 1

type SQLiteStore struct {
	db *sql.DB
}

var _ ExtractionCache = (*SQLiteStore)(nil)

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS files (
			path TEXT PRIMARY KEY,
			dir TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			package TEXT,
			version INTEGER NOT NULL,
			units JSON,
			updated_at INTEGER
		);`,
		`CREATE INDEX IF NOT EXISTS idx_files_dir ON files(dir);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Lookup(ctx context.Context, path, hash string) (*extractor.File, bool, error) {
	var (
		pkg   sql.NullString
		units []byte
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT package, units FROM files WHERE path = ? AND content_hash = ? AND version = ?",
		path, hash, unitsVersion,
	).Scan(&pkg, &units)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query file %s: %w", path, err)
	}

	f := &extractor.File{Path: path, Package: pkg.String}
	if len(units) > 0 {
		if err := json.Unmarshal(units, &f.Units); err != nil {
			return nil, false, fmt.Errorf("failed to decode units of %s: %w", path, err)
		}
	}
	return f, true, nil
}

func (s *SQLiteStore) Store(ctx context.Context, hash string, f *extractor.File) error {
	units, err := json.Marshal(f.Units)
	if err != nil {
		return fmt.Errorf("failed to encode units of %s: %w", f.Path, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO files (path, dir, content_hash, package, version, units, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			dir=excluded.dir,
			content_hash=excluded.content_hash,
			package=excluded.package,
			version=excluded.version,
			units=excluded.units,
			updated_at=excluded.updated_at
	`, f.Path, filepath.Dir(f.Path), hash, f.Package, unitsVersion, units, time.Now().Unix())
	return err
}

func (s *SQLiteStore) Prune(ctx context.Context, dir string, keep []string) (int64, error) {
	query := "DELETE FROM files WHERE dir = ?"
	args := []any{filepath.Clean(dir)}
	if len(keep) > 0 {
		query += " AND path NOT IN (?" + strings.Repeat(", ?", len(keep)-1) + ")"
		for _, p := range keep {
			args = append(args, p)
		}
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to prune %s: %w", dir, err)
	}
	return res.RowsAffected()
}

// Count returns the number of cached files.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
