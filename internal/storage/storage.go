package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// MaxUploadBytes is the largest image accepted for upload.
const MaxUploadBytes = 10 << 20

// ErrUnsupportedType is returned for files that are not an allowed image type.
var ErrUnsupportedType = errors.New("unsupported image type")

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
}

type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

// Storage stores uploaded media and returns the public URL for it.
type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
	fmt.Stringer
}

// ImageExt returns the normalized extension of filename when it is an
// allowed image type.
func ImageExt(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageTypes[ext]; !ok {
		return "", ErrUnsupportedType
	}
	return ext, nil
}

// ContentType returns the MIME type for an allowed image filename, or
// application/octet-stream.
func ContentType(filename string) string {
	if ct, ok := imageTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}
