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

// Entry layout: magic, big-endian expiry in Unix nanoseconds (0 = never),
// then the zstd-compressed value.
var entryMagic = []byte("QAC1")

const (
	entryHeaderLen = 4 + 8
	entryExt       = ".qc"
)

// FileCache keeps entries as files under dir, sharded by the first byte
// of the key hash. Unreadable or expired entries count as misses and are
// removed on sight.
type FileCache struct {
	dir string
}

// NewFileCache creates dir if needed and returns a cache rooted there.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *FileCache) Dir() string { return c.dir }

// Get returns the stored value, or a miss for absent, expired or corrupt entries.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}

	value, ok := decodeEntry(raw, time.Now())
	if !ok {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return value, true, nil
}

func decodeEntry(raw []byte, now time.Time) ([]byte, bool) {
	if len(raw) < entryHeaderLen || !bytes.Equal(raw[:4], entryMagic) {
		return nil, false
	}
	if exp := int64(binary.BigEndian.Uint64(raw[4:entryHeaderLen])); exp != 0 && now.UnixNano() > exp {
		return nil, false
	}
	value, err := decompress(raw[entryHeaderLen:])
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set stores data under key. A ttl <= 0 never expires. The entry is
// written to a temp file and renamed into place, so a concurrent Get
// never sees a partial entry.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).UnixNano()
	}
	raw := make([]byte, entryHeaderLen, entryHeaderLen+len(data)/2)
	copy(raw, entryMagic)
	binary.BigEndian.PutUint64(raw[4:], uint64(exp))
	raw = append(raw, compress(data)...)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes the entry for key. A missing entry is not an error.
func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Clear deletes every entry and the emptied shard directories. It returns
// the number of entries removed.
func (c *FileCache) Clear() (int, error) {
	n := 0
	err := c.walk(func(dir string, f fs.DirEntry) error {
		if os.Remove(filepath.Join(dir, f.Name())) == nil {
			n++
		}
		return nil
	}, func(dir string) {
		_ = os.Remove(dir) // only succeeds when empty
	})
	return n, err
}

// Usage reports the number of stored entries and their size on disk,
// expired ones included.
func (c *FileCache) Usage() (entries int, size int64, err error) {
	err = c.walk(func(_ string, f fs.DirEntry) error {
		info, err := f.Info()
		if err != nil {
			return nil // removed concurrently
		}
		entries++
		size += info.Size()
		return nil
	}, nil)
	return entries, size, err
}

// walk calls fn for each entry file and after, if set, for each shard.
func (c *FileCache) walk(fn func(dir string, f fs.DirEntry) error, after func(dir string)) error {
	shards, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, shard := range shards {
		if !shard.IsDir() {
			continue
		}
		dir := filepath.Join(c.dir, shard.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, f := range files {
			if filepath.Ext(f.Name()) != entryExt {
				continue
			}
			if err := fn(dir, f); err != nil {
				return err
			}
		}
		if after != nil {
			after(dir)
		}
	}
	return nil
}

// Close is a no-op.
func (c *FileCache) Close() error { return nil }

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+entryExt)
}
