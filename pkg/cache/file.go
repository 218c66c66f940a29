package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// FileCache persists entries under a directory, one file per key, so
// repeated CLI invocations share layouts and artifacts.
//
// On-disk format: one header line holding the expiry as unix nanoseconds
// ("0" for no expiry), then the raw payload. Payloads are stored as-is;
// large SVG artifacts are not worth a second encode round.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-backed cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get reads an entry. Corrupt or expired files are removed and reported
// as misses; the cache heals itself instead of failing the pipeline.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	nl := bytes.IndexByte(raw, '\n')
	if nl < 0 {
		_ = os.Remove(path)
		return nil, false, nil
	}
	expires, err := strconv.ParseInt(string(raw[:nl]), 10, 64)
	if err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if expires != 0 && time.Now().UnixNano() > expires {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return raw[nl+1:], true, nil
}

// Set writes an entry atomically (temp file + rename), so a concurrent
// reader never observes a half-written payload.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expires int64
	if ttl > 0 {
		expires = time.Now().Add(ttl).UnixNano()
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	buf := make([]byte, 0, len(data)+24)
	buf = strconv.AppendInt(buf, expires, 10)
	buf = append(buf, '\n')
	buf = append(buf, data...)
	if _, err := tmp.Write(buf); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes an entry. Missing entries are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op; files need no teardown.
func (c *FileCache) Close() error { return nil }

// path fans keys out over 256 subdirectories by hash prefix so no single
// directory accumulates every entry.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".entry")
}

var _ Cache = (*FileCache)(nil)
