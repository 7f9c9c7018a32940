package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for files written with mode 0.
const DefaultFileMode os.FileMode = 0o644

// dirMode is the permission mode for parent directories created on write.
const dirMode os.FileMode = 0o755

// WriteAtomic replaces path with content by renaming a fully written temp
// file from the same directory over it, so readers never see a partial
// file. Missing parent directories are created. Mode 0 selects
// DefaultFileMode.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	tmpPath, err := writeTemp(dir, filepath.Base(path), content, mode)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// writeTemp stores content durably in a new temp file in dir and returns
// its path. The temp file is removed on failure.
func writeTemp(dir, base string, content []byte, mode os.FileMode) (_ string, err error) {
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	return tmp.Name(), nil
}

// WriteAtomicIfChanged writes content only when it differs from what is on
// disk, reporting whether a write happened.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("write atomic: %w", err)
	}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return false, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("read existing: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}

// WriteNew writes content atomically unless path already exists, in which
// case it returns ErrExists.
func WriteNew(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return WriteAtomic(ctx, path, content, mode)
}
