// AngelaMos | 2026
// upload.go

package product

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adeyemi-dev/storefront/internal/config"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds size limit")
	ErrUnsupportedType = errors.New("unsupported image type")
)

// ImageStore persists uploaded product images and returns the path a
// client can fetch them from later.
type ImageStore interface {
	Save(file multipart.File, header *multipart.FileHeader) (string, error)
}

type DiskImageStore struct {
	dir     string
	maxSize int64
}

func NewDiskImageStore(cfg config.UploadConfig) (*DiskImageStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &DiskImageStore{dir: cfg.Dir, maxSize: cfg.MaxFileSize}, nil
}

// Save sniffs the content rather than trusting the client's extension,
// admits only jpeg and png, and names the file by timestamp so repeated
// uploads of the same original never collide.
func (s *DiskImageStore) Save(
	file multipart.File,
	header *multipart.FileHeader,
) (string, error) {
	if header.Size > s.maxSize {
		return "", fmt.Errorf(
			"%s is %d bytes: %w",
			header.Filename,
			header.Size,
			ErrFileTooLarge,
		)
	}

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}

	ext, err := imageExtension(http.DetectContentType(sniff[:n]))
	if err != nil {
		return "", err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	path := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close() //nolint:errcheck

	if _, err := io.Copy(dst, io.LimitReader(file, s.maxSize)); err != nil {
		os.Remove(path) //nolint:errcheck
		return "", fmt.Errorf("write image file: %w", err)
	}

	return path, nil
}

func imageExtension(contentType string) (string, error) {
	switch {
	case strings.HasPrefix(contentType, "image/jpeg"):
		return ".jpg", nil
	case strings.HasPrefix(contentType, "image/png"):
		return ".png", nil
	default:
		return "", fmt.Errorf("%s: %w", contentType, ErrUnsupportedType)
	}
}
