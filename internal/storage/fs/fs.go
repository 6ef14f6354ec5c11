package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafeFilename marks a stored filename that cannot be mapped to a
// location under the storage root.
var ErrUnsafeFilename = errors.New("unsafe filename")

// Storage resolves logical media filenames against a single root directory.
// It never lets a resolved path escape that root.
type Storage struct {
	root string
}

func New(rootPath string) (*Storage, error) {
	p, err := filepath.Abs(filepath.Clean(rootPath))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve storage root %s: %w", rootPath, err)
	}

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", p, err)
	}

	return &Storage{root: p}, nil
}

func (s *Storage) Root() string {
	return s.root
}

// Normalize canonicalizes a stored filename and verifies containment under
// the root. It returns the cleaned root-relative path. A plain string prefix
// check is not enough here: ".." segments are resolved first and the result
// is compared against the root via filepath.Rel.
func (s *Storage) Normalize(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrUnsafeFilename
	}
	if filepath.IsAbs(name) {
		return "", ErrUnsafeFilename
	}

	full := filepath.Join(s.root, name) // Join cleans, resolving "." and ".."
	rel, err := filepath.Rel(s.root, full)
	if err != nil {
		return "", ErrUnsafeFilename
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrUnsafeFilename
	}
	return rel, nil
}

// Exists reports whether the root-relative path names a regular file.
func (s *Storage) Exists(rel string) bool {
	info, err := os.Stat(filepath.Join(s.root, rel))
	return err == nil && info.Mode().IsRegular()
}

// Abs maps a normalized root-relative path back to an absolute one.
func (s *Storage) Abs(rel string) string {
	return filepath.Join(s.root, rel)
}
