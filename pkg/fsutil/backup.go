package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupSuffix is appended to a file name to form its backup path.
const BackupSuffix = ".bak"

// BackupPath returns the sidecar backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// Backup copies the file at path to its sidecar backup. An existing backup is
// never overwritten, so repeated rewrites keep the oldest content. It reports
// whether a backup was written.
func Backup(ctx context.Context, path string) (bool, error) {
	backupPath := BackupPath(path)
	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat backup: %w", err)
	}

	content, snap, err := ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, snap.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}
