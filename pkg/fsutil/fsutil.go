// Package fsutil holds the file handling used when mdlstyle rewrites style
// files and writes exported linter configs: content snapshots for detecting
// concurrent edits, sidecar backups and atomic writes.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrModified indicates the file changed after it was read.
	ErrModified = errors.New("file modified since it was read")
)

// Snapshot records a file's state when it was read.
type Snapshot struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [32]byte
}

// ReadFile reads path and returns its content with a snapshot of its state.
func ReadFile(ctx context.Context, path string) ([]byte, *Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	return content, &Snapshot{
		Path:    path,
		Mode:    stat.Mode().Perm(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// Changed reports whether the file differs from the snapshot. A deleted file
// counts as changed. Size and mod time are compared first; the content hash
// settles the rest.
func (s *Snapshot) Changed(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", s.Path, err)
	}
	if stat.Size() != s.Size {
		return true, nil
	}
	if stat.ModTime().Equal(s.ModTime) {
		return false, nil
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return sha256.Sum256(content) != s.Hash, nil
}

// Matches reports whether content hashes to the snapshot's content.
func (s *Snapshot) Matches(content []byte) bool {
	return sha256.Sum256(content) == s.Hash
}

// Rewrite replaces the snapshotted file with content, preserving its mode.
// It fails with ErrModified if the file changed after the snapshot was taken.
func (s *Snapshot) Rewrite(ctx context.Context, content []byte) error {
	changed, err := s.Changed(ctx)
	if err != nil {
		return err
	}
	if changed {
		return fmt.Errorf("%w: %s", ErrModified, s.Path)
	}
	return WriteAtomic(ctx, s.Path, content, s.Mode)
}
