package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local writes uploads to a directory served by the API under URLPrefix.
type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: urlPrefix}
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	_ = ctx

	ext, err := ImageExt(in.Filename)
	if err != nil {
		return PutResult{}, err
	}
	if err := os.MkdirAll(l.BaseDir, 0o755); err != nil {
		return PutResult{}, fmt.Errorf("create upload dir: %w", err)
	}

	key := uuid.NewString() + ext
	f, err := os.OpenFile(filepath.Join(l.BaseDir, key), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return PutResult{}, fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return PutResult{}, fmt.Errorf("write upload file: %w", err)
	}
	if n > MaxUploadBytes {
		f.Close()
		os.Remove(filepath.Join(l.BaseDir, key))
		return PutResult{}, fmt.Errorf("upload exceeds %d bytes", MaxUploadBytes)
	}

	url := strings.TrimRight(l.URLPrefix, "/") + "/" + key
	return PutResult{Key: key, URL: url}, nil
}

// Delete removes the stored file. A missing file is not an error.
func (l *Local) Delete(ctx context.Context, key string) error {
	_ = ctx
	if key == "" {
		return nil
	}
	err := os.Remove(filepath.Join(l.BaseDir, filepath.Base(key)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete upload %s: %w", key, err)
	}
	return nil
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
