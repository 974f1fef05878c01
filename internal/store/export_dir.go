package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirSink writes export files into a local directory.
type DirSink struct {
	dir string
}

// NewDirSink creates dir if needed and returns a sink writing into it.
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating export directory %q: %w", dir, err)
	}
	return &DirSink{dir: dir}, nil
}

// Put writes data to <dir>/<name>, replacing an existing file.
func (s *DirSink) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("error writing %s: %w", path, err)
	}

	return path, nil
}
