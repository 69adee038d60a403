package core

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/edvin/shopadmin/internal/storage"
)

// Image is an uploaded image handed to a service for storage.
type Image struct {
	Body        io.Reader
	Filename    string
	ContentType string
	Size        int64
}

func putImage(ctx context.Context, store storage.Storage, img *Image) (storage.PutResult, error) {
	if store == nil {
		return storage.PutResult{}, fmt.Errorf("store image: no storage configured")
	}
	res, err := store.Put(ctx, img.Body, storage.PutInput{
		Filename:    img.Filename,
		ContentType: img.ContentType,
		Size:        img.Size,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			return storage.PutResult{}, invalidf("image %s: %s", img.Filename, err)
		}
		return storage.PutResult{}, fmt.Errorf("store image %s: %w", img.Filename, err)
	}
	return res, nil
}

// dropImage removes a replaced or orphaned image. The owning row no longer
// references key, so a failure only leaves an unused file behind.
func dropImage(ctx context.Context, store storage.Storage, key string) {
	if store == nil || key == "" {
		return
	}
	_ = store.Delete(ctx, key)
}
