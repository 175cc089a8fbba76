// Package blob stores uploaded file payloads on the local filesystem,
// keyed by a generated collision-resistant filename.
package blob

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Store writes payloads under a single directory. The generated name is
// the original name stem, the current unix-millisecond timestamp, and
// the original extension, so two uploads of the same file at different
// times never collide.
type Store struct {
	dir string

	// now is swappable for tests.
	now func() time.Time
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// UniqueName derives the storage filename for an uploaded file.
func (s *Store) UniqueName(original string) string {
	base := filepath.Base(original)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return stem + strconv.FormatInt(s.now().UnixMilli(), 10) + ext
}

// Save writes data under a freshly generated name and returns that name.
// The write is synced to disk before Save returns; callers may treat a
// nil error as a durably completed write.
func (s *Store) Save(originalName string, data []byte) (string, error) {
	name := s.UniqueName(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create blob %s: %w", name, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write blob %s: %w", name, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("sync blob %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close blob %s: %w", name, err)
	}

	return name, nil
}

// Path returns the on-disk location for a stored name. Used by the
// static file route in main.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string { return s.dir }
