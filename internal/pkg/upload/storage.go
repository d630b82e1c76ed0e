// internal/pkg/upload/storage.go
package upload

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// StoredFile describes a file written to local storage.
type StoredFile struct {
	URL    string `json:"url"` // service-relative path, e.g. /files/01J....pdf
	SHA256 string `json:"sha256"`
	Size   int64  `json:"size"`
}

// Storage writes uploaded files to a local directory under collision-free
// ULID names, keeping the original extension, and digests content with
// SHA-256 so re-uploads of the same document are detectable.
type Storage struct {
	dir string
}

func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

func (s *Storage) Save(r io.Reader, originalName string) (*StoredFile, error) {
	name := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	if ext := strings.ToLower(filepath.Ext(originalName)); ext != "" {
		name += ext
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	size, err := io.Copy(io.MultiWriter(f, hasher), r)
	if err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &StoredFile{
		URL:    "/files/" + name,
		SHA256: hex.EncodeToString(hasher.Sum(nil)),
		Size:   size,
	}, nil
}

// Dir is the backing directory, for static file serving.
func (s *Storage) Dir() string {
	return s.dir
}
