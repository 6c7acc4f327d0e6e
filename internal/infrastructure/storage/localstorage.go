package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/nippo-inc/nippo/internal/shared/errors"
	"github.com/nippo-inc/nippo/internal/shared/logger"
)

// ImageStore persists uploaded report images and returns the reference
// string stored on the report.
type ImageStore interface {
	Save(filename string, content io.Reader) (string, error)
	Remove(reference string) error
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// LocalImageStore writes images to a directory on local disk. References
// are URL paths under baseURL so the frontend can serve them directly.
type LocalImageStore struct {
	uploadDir string
	baseURL   string
	maxBytes  int64
	logger    logger.Interface
}

func NewLocalImageStore(uploadDir, baseURL string, maxUploadMB int, log logger.Interface) (*LocalImageStore, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalImageStore{
		uploadDir: uploadDir,
		baseURL:   strings.TrimRight(baseURL, "/"),
		maxBytes:  int64(maxUploadMB) << 20,
		logger:    log,
	}, nil
}

func (s *LocalImageStore) Save(filename string, content io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", apperrors.NewValidationError(fmt.Sprintf("unsupported image type %q", ext))
	}

	name, err := randomName(ext)
	if err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}

	dst := filepath.Join(s.uploadDir, name)
	file, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	written, err := io.Copy(file, io.LimitReader(content, s.maxBytes+1))
	if err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	if written > s.maxBytes {
		os.Remove(dst)
		return "", apperrors.NewValidationError(fmt.Sprintf("image exceeds maximum size of %d MB", s.maxBytes>>20))
	}

	s.logger.Infow("image stored", "file", name, "bytes", written)
	return s.baseURL + "/" + name, nil
}

// Remove deletes a previously stored image. A missing file is not an
// error; the reference may already have been cleaned up.
func (s *LocalImageStore) Remove(reference string) error {
	name := filepath.Base(reference)
	if name == "." || name == "/" {
		return nil
	}

	if err := os.Remove(filepath.Join(s.uploadDir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	return nil
}

func randomName(ext string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf) + ext, nil
}
