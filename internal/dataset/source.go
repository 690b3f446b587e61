package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Source loads the tabular input for one run.
type Source interface {
	Load(ctx context.Context) (*Table, error)
}

// SourceOption customizes how a source reads its input.
type SourceOption func(*sourceOptions)

type sourceOptions struct {
	rows [2]int
}

// WithRows restricts the load to a 1-based inclusive data-row range.
func WithRows(start, end int) SourceOption {
	return func(o *sourceOptions) {
		o.rows = [2]int{start, end}
	}
}

// Open picks a source for the given path: Azure Blob Storage for https
// URLs, the local filesystem otherwise. Gzip is inferred from a .gz
// extension on either transport.
func Open(path string, opts ...SourceOption) (Source, error) {
	var o sourceOptions
	for _, opt := range opts {
		if opt == nil {
			panic("dataset: nil SourceOption")
		}
		opt(&o)
	}

	if strings.Contains(path, "://") {
		return newBlobSource(path, o)
	}
	return &FileSource{path: path, rows: o.rows}, nil
}

// FileSource reads a CSV file from the local filesystem, transparently
// decompressing .gz files.
type FileSource struct {
	path string
	rows [2]int
}

// Load reads and parses the file.
func (s *FileSource) Load(ctx context.Context) (*Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", s.path, err)
	}
	defer f.Close() //nolint:errcheck

	var r io.Reader = f
	if isGzip(s.path) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("dataset: gunzip %s: %w", s.path, err)
		}
		defer zr.Close() //nolint:errcheck
		r = zr
	}

	table, err := readTable(r, s.path)
	if err != nil {
		return nil, err
	}
	return table.sliceRows(s.rows), nil
}

func isGzip(path string) bool {
	return strings.HasSuffix(path, ".gz")
}
