package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ratbook/ratbook_backend/internal/apperrors"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// ProofStore saves uploaded proof files under a configured directory.
type ProofStore struct {
	dir      string
	maxBytes int64
}

// NewProofStore creates a proof store rooted at dir, creating it if needed.
func NewProofStore(dir string, maxBytes int64) (*ProofStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &ProofStore{dir: dir, maxBytes: maxBytes}, nil
}

// SanitizeFilename strips path components and replaces unsafe characters so
// the stored name is safe to place on disk and in URLs.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	return unsafeChars.ReplaceAllString(name, "")
}

// Save writes the uploaded file to disk under a timestamp-prefixed sanitized
// name and returns the stored filename.
func (s *ProofStore) Save(file *multipart.FileHeader) (string, error) {
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return "", fmt.Errorf("%w: proof file exceeds maximum size", apperrors.ErrValidation)
	}

	safeName := SanitizeFilename(file.Filename)
	if safeName == "" {
		return "", fmt.Errorf("%w: proof file has no usable name", apperrors.ErrValidation)
	}
	storedName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), safeName)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded proof file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, storedName))
	if err != nil {
		return "", fmt.Errorf("failed to create proof file %s: %w", storedName, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write proof file %s: %w", storedName, err)
	}

	return storedName, nil
}

// Dir returns the directory proof files are stored in.
func (s *ProofStore) Dir() string {
	return s.dir
}
