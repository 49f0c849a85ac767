// Package storage implements the image blob collaborator as local-disk
// files served from the media directory.
package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// FileStore writes decoded images under a base directory and returns
// URL paths rooted at urlPrefix.
type FileStore struct {
	baseDir   string
	urlPrefix string
}

// NewFileStore creates the media directory if needed.
func NewFileStore(baseDir, urlPrefix string) (*FileStore, error) {
	dir := filepath.Join(baseDir, "recipes", "images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media dir: %w", err)
	}
	return &FileStore{baseDir: baseDir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Save decodes a base64 payload, optionally prefixed with a data URI
// header ("data:image/png;base64,..."), writes it to disk and returns the
// stable URL path.
func (s *FileStore) Save(encoded string) (string, error) {
	ext := ".png"
	if rest, ok := strings.CutPrefix(encoded, "data:"); ok {
		mime, payload, found := strings.Cut(rest, ";base64,")
		if !found {
			return "", fmt.Errorf("malformed data URI")
		}
		if e, ok := extensions[mime]; ok {
			ext = e
		}
		encoded = payload
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty image payload")
	}

	name := uuid.NewString() + ext
	rel := filepath.Join("recipes", "images", name)
	if err := os.WriteFile(filepath.Join(s.baseDir, rel), data, 0o644); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}
	return s.urlPrefix + "/" + filepath.ToSlash(rel), nil
}
