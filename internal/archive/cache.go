package archive

import (
	"fmt"
	"os"
	"path/filepath"
)

// Cache is the on-disk archive cache directory (spec.md §5's "Shared
// resources": files are keyed by owner-repo-commitOid.<ext>; writers use a
// unique temp path and rename on finalize; readers only trust fully-renamed
// files).
type Cache struct {
	Dir string
}

// NewCache ensures dir exists and returns a Cache rooted there.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("archive cache: %w", err)
	}
	return &Cache{Dir: dir}, nil
}

func (c *Cache) path(key string, format Format) string {
	return filepath.Join(c.Dir, key+"."+format.Extension())
}

// Open returns the cached archive file for key/format if it has already
// been fully written, ok=false otherwise.
func (c *Cache) Open(key string, format Format) (*os.File, bool, error) {
	f, err := os.Open(c.path(key, format))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return f, true, nil
}

// stagedWriter writes to a unique temp file under the cache directory;
// Commit renames it into place atomically, Abort discards it. Concurrent
// writers for the same key may race on rename; the last one wins, which
// spec.md §5 explicitly accepts.
type stagedWriter struct {
	file    *os.File
	tmpPath string
	target  string
}

// Writer opens a new staged write for key/format.
func (c *Cache) Writer(key string, format Format) (*stagedWriter, error) {
	f, err := os.CreateTemp(c.Dir, "."+key+"-*.tmp")
	if err != nil {
		return nil, err
	}
	return &stagedWriter{file: f, tmpPath: f.Name(), target: c.path(key, format)}, nil
}

func (s *stagedWriter) Write(p []byte) (int, error) { return s.file.Write(p) }

// Commit flushes and atomically renames the temp file into its final cache
// path, making it visible to readers.
func (s *stagedWriter) Commit() error {
	if err := s.file.Close(); err != nil {
		os.Remove(s.tmpPath)
		return err
	}
	return os.Rename(s.tmpPath, s.target)
}

// Abort discards a partially written archive (client disconnect, build
// error) so an incomplete file is never observed as a valid cache entry.
func (s *stagedWriter) Abort() {
	s.file.Close()
	os.Remove(s.tmpPath)
}
