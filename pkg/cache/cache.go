// Package cache stores analysis results on disk, keyed by file content and
// the analysis session that produced them.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/sharplint/pkg/fsutil"
	"github.com/yaklabco/sharplint/pkg/lint"
)

// SchemaVersion is bumped whenever Payload or lint.Record changes shape.
const SchemaVersion uint16 = 1

const (
	appDir     = "sharplint"
	entriesDir = "results"
	entryExt   = ".mp"
	dirMode    = 0o755
)

// Key identifies one cached result.
type Key [sha256.Size]byte

// String returns the hex form of the key.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// NewKey derives the cache key for a file analyzed by a session with the
// given signature. The path is part of the key because records carry it.
func NewKey(signature, path string, content []byte) Key {
	h := sha256.New()

	var schema [2]byte
	binary.BigEndian.PutUint16(schema[:], SchemaVersion)
	h.Write(schema[:])

	for _, part := range [][]byte{[]byte(signature), []byte(path), content} {
		var n [8]byte
		binary.BigEndian.PutUint64(n[:], uint64(len(part)))
		h.Write(n[:])
		h.Write(part)
	}

	var key Key
	copy(key[:], h.Sum(nil))
	return key
}

// Payload is the on-disk form of one result.
type Payload struct {
	Schema    uint16        `msgpack:"schema"`
	Signature string        `msgpack:"signature"`
	Records   []lint.Record `msgpack:"records"`
}

// Cache is a directory of msgpack payloads. A nil *Cache is a valid,
// always-missing cache. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns the per-user cache directory for sharplint.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate user cache dir: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// Open creates the cache directory if needed. An empty dir selects DefaultDir.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Join(dir, entriesDir), dirMode); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(key Key) string {
	hexKey := key.String()
	return filepath.Join(c.dir, entriesDir, hexKey[:2], hexKey+entryExt)
}

// Get returns the cached records for key. Entries written under another
// schema version are reported as misses.
func (c *Cache) Get(key Key) ([]lint.Record, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}

	var payload Payload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if payload.Schema != SchemaVersion {
		return nil, false, nil
	}
	return payload.Records, true, nil
}

// Put stores records under key, replacing any previous entry atomically.
func (c *Cache) Put(ctx context.Context, key Key, signature string, records []lint.Record) error {
	if c == nil {
		return nil
	}

	data, err := msgpack.Marshal(&Payload{
		Schema:    SchemaVersion,
		Signature: signature,
		Records:   records,
	})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("create cache shard: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, path, data, 0); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := filepath.Join(c.dir, entriesDir)
	if err := os.RemoveAll(entries); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	if err := os.MkdirAll(entries, dirMode); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}
