package cache

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// entryMagic starts every file written by FileCache. Files without it are
// treated as foreign and ignored.
var entryMagic = []byte("NPC1")

// headerSize is the magic plus a big-endian expiry in Unix nanoseconds
// (zero for entries without ttl).
const headerSize = 4 + 8

// FileCache keeps one file per entry under a directory, fanned out into
// subdirectories by the first two hex digits of the hashed key. Artifacts
// are stored raw behind a small header, so large PNG and PDF files are not
// re-encoded.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache returns a file cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Dir returns the cache root.
func (c *FileCache) Dir() string { return c.dir }

// Get implements Cache. Expired and unreadable entries are removed and
// reported as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	data, expires, ok := decodeEntry(raw)
	if !ok || (!expires.IsZero() && c.now().After(expires)) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

// Set implements Cache. The entry is written to a temporary file and
// renamed into place, so concurrent readers never see a partial artifact.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var expires time.Time
	if ttl > 0 {
		expires = c.now().Add(ttl)
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(encodeEntry(data, expires)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete implements Cache.
func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Close implements Cache.
func (c *FileCache) Close() error { return nil }

// Clear removes every entry and the emptied fan-out directories, and
// returns the number of entries removed.
func (c *FileCache) Clear() (int, error) {
	subdirs, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, sub := range subdirs {
		if !sub.IsDir() {
			continue
		}
		subPath := filepath.Join(c.dir, sub.Name())
		files, err := os.ReadDir(subPath)
		if err != nil {
			return removed, err
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			if err := os.Remove(filepath.Join(subPath, f.Name())); err == nil {
				removed++
			}
		}
		_ = os.Remove(subPath)
	}
	return removed, nil
}

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:])
}

func encodeEntry(data []byte, expires time.Time) []byte {
	buf := make([]byte, headerSize, headerSize+len(data))
	copy(buf, entryMagic)
	if !expires.IsZero() {
		binary.BigEndian.PutUint64(buf[len(entryMagic):], uint64(expires.UnixNano()))
	}
	return append(buf, data...)
}

func decodeEntry(raw []byte) (data []byte, expires time.Time, ok bool) {
	if len(raw) < headerSize || !bytes.HasPrefix(raw, entryMagic) {
		return nil, time.Time{}, false
	}
	if n := binary.BigEndian.Uint64(raw[len(entryMagic):headerSize]); n != 0 {
		expires = time.Unix(0, int64(n))
	}
	return raw[headerSize:], expires, true
}

var _ Cache = (*FileCache)(nil)
