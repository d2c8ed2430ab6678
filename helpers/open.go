package helpers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/spektr-org/xpsref/engine"
	"github.com/spektr-org/xpsref/schema"
)

// ============================================================================
// FILE SOURCES: Plain or compressed CSV, or a SQLite database
// ============================================================================
// The compression is picked from the file extension:
//   .csv.gz / .gz   → gzip
//   .csv.zst / .zst → zstd
//   .csv.lz4 / .lz4 → lz4 frame
//   .db / .sqlite   → SQLite table (see LoadSQLite)
// ============================================================================

// DefaultTable is the SQLite table read by LoadFile.
const DefaultTable = "binding_energies"

// OpenDataset opens a CSV file and wraps it in the decompressor its extension
// asks for. Closing the returned reader closes the file.
func OpenDataset(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zr.IOReadCloser(), f}}, nil
	case ".lz4":
		return &stackedReader{Reader: lz4.NewReader(f), closers: []io.Closer{f}}, nil
	default:
		return f, nil
	}
}

// IsSQLite reports whether path names a SQLite database by extension.
func IsSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// LoadFile loads a Dataset from a CSV file (optionally compressed) or from
// the DefaultTable of a SQLite database.
func LoadFile(ctx context.Context, path string, sch schema.Config, logger *engine.Logger) (*engine.Dataset, error) {
	if logger == nil {
		logger = engine.NoopLogger()
	}
	ds, err := loadFile(ctx, path, sch)
	logger.LogLoad(ctx, path, ds, err)
	return ds, err
}

func loadFile(ctx context.Context, path string, sch schema.Config) (*engine.Dataset, error) {
	if IsSQLite(path) {
		db, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		records, err := LoadSQLite(ctx, db, DefaultTable, sch)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, ErrEmptyDataset
		}
		return engine.NewDataset(records), nil
	}

	rc, err := OpenDataset(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ParseCSVDataset(rc, sch)
}

// stackedReader closes a decompressor and its underlying file in order.
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
