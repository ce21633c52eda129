// Package storage provides blob storage for avatars and post media on local
// disk, with public URLs served by the HTTP layer.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxUploadSize caps media uploads at 5MB, matching the client-side check.
const MaxUploadSize = 5 * 1024 * 1024

// MediaStore writes uploaded files under a root directory and maps them to
// public URLs. Uploads are not transactional with the rows that reference
// them: a post insert failing after its media upload leaves an orphaned file.
type MediaStore struct {
	root    string
	baseURL string
}

func NewMediaStore(root, baseURL string) (*MediaStore, error) {
	for _, sub := range []string{"posts", "avatars"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create media dir: %w", err)
		}
	}
	return &MediaStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root returns the directory served as static content.
func (s *MediaStore) Root() string { return s.root }

// SavePostMedia stores a post attachment under posts/<user>/<timestamp>.<ext>
// and returns its public URL.
func (s *MediaStore) SavePostMedia(userID uuid.UUID, filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), sanitizeExt(filename))
	rel := filepath.Join("posts", userID.String(), name)
	if err := s.write(rel, r); err != nil {
		return "", err
	}
	return s.publicURL(rel), nil
}

// SaveAvatar stores a user avatar under avatars/<user>.<ext>, replacing any
// previous one with the same extension.
func (s *MediaStore) SaveAvatar(userID uuid.UUID, filename string, r io.Reader) (string, error) {
	rel := filepath.Join("avatars", userID.String()+sanitizeExt(filename))
	if err := s.write(rel, r); err != nil {
		return "", err
	}
	return s.publicURL(rel), nil
}

func (s *MediaStore) write(rel string, r io.Reader) error {
	abs := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(r, MaxUploadSize+1)); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *MediaStore) publicURL(rel string) string {
	return s.baseURL + "/" + filepath.ToSlash(rel)
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	}
	return ".bin"
}
