// Package fsutil reads C# sources and writes sharplint's own files (cache
// entries, generated docs, config templates) atomically.
package fsutil

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// MaxSourceSize is the largest source file ReadSource accepts (16 MiB).
const MaxSourceSize = 16 << 20

// utf8BOM is stripped from the start of sources. Editors do not count it in
// columns, and LSP clients never send it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the file exceeds MaxSourceSize.
	ErrTooLarge = errors.New("file too large")

	// ErrExists indicates WriteNew found an existing file.
	ErrExists = errors.New("file already exists")
)

// FileInfo describes a source file as it was read.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the on-disk size in bytes, including any BOM.
	Size int64

	// BOM is true when a UTF-8 byte order mark was stripped.
	BOM bool

	// Hash is the SHA-256 of the returned content.
	Hash [sha256.Size]byte
}

// ReadSource reads a source file, stripping a leading UTF-8 BOM so offsets
// and columns match what editors show.
func ReadSource(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read source: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if stat.Size() > MaxSourceSize {
		return nil, nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, stat.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	info := &FileInfo{
		Path:    path,
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
	}
	if bytes.HasPrefix(content, utf8BOM) {
		content = content[len(utf8BOM):]
		info.BOM = true
	}
	info.Hash = sha256.Sum256(content)

	return content, info, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
