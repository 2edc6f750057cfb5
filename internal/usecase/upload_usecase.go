package usecase

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"portfolio-api/internal/storage"
)

// MaxUploadSize is the per-file ceiling for the upload proxy.
const MaxUploadSize = 5 << 20

// FileRef is the stable reference a client attaches to a resource record:
// the object key plus a retrievable (presigned) URL.
type FileRef struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type UploadUsecase interface {
	ListFolder(ctx context.Context, folder string) ([]FileRef, error)
	Upload(ctx context.Context, folder, filename, contentType string, size int64, r io.Reader) (FileRef, error)
	Replace(ctx context.Context, folder, name, contentType string, size int64, r io.Reader) (FileRef, error)
	Remove(ctx context.Context, folder, name string) (string, error)
}

type Upload struct {
	store  ObjectStore
	logger *log.Logger

	now func() time.Time
}

func NewUploadUsecase(store ObjectStore, logger *log.Logger) *Upload {
	if logger == nil {
		logger = log.Default()
	}
	return &Upload{store: store, logger: logger, now: time.Now}
}

func (u *Upload) ListFolder(ctx context.Context, folder string) ([]FileRef, error) {
	if err := validateFolder(folder); err != nil {
		return nil, err
	}

	keys, err := u.store.List(ctx, folder+"/")
	if err != nil {
		u.logger.Printf("list folder %s failed: %v", folder, err)
		return nil, ErrInternal
	}

	refs := make([]FileRef, 0, len(keys))
	for _, key := range keys {
		url, err := u.store.PresignedGet(ctx, key)
		if err != nil {
			u.logger.Printf("presign %s failed: %v", key, err)
			return nil, ErrInternal
		}
		refs = append(refs, FileRef{Key: key, URL: url})
	}
	return refs, nil
}

func (u *Upload) Upload(ctx context.Context, folder, filename, contentType string, size int64, r io.Reader) (FileRef, error) {
	if err := validateFolder(folder); err != nil {
		return FileRef{}, err
	}
	if err := validateSize(size); err != nil {
		return FileRef{}, err
	}

	key := storage.BuildKey(folder, filename, u.now())
	return u.put(ctx, key, contentType, size, r)
}

// Replace overwrites the bytes at an existing key, keeping the reference
// stable for records that already point at it.
func (u *Upload) Replace(ctx context.Context, folder, name, contentType string, size int64, r io.Reader) (FileRef, error) {
	key, err := objectKey(folder, name)
	if err != nil {
		return FileRef{}, err
	}
	if err := validateSize(size); err != nil {
		return FileRef{}, err
	}
	return u.put(ctx, key, contentType, size, r)
}

func (u *Upload) Remove(ctx context.Context, folder, name string) (string, error) {
	key, err := objectKey(folder, name)
	if err != nil {
		return "", err
	}
	if err := u.store.Remove(ctx, key); err != nil {
		u.logger.Printf("remove %s failed: %v", key, err)
		return "", ErrInternal
	}
	return key, nil
}

func (u *Upload) put(ctx context.Context, key, contentType string, size int64, r io.Reader) (FileRef, error) {
	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	if err := u.store.Put(ctx, key, contentType, size, io.LimitReader(r, MaxUploadSize)); err != nil {
		u.logger.Printf("upload %s failed: %v", key, err)
		return FileRef{}, ErrInternal
	}

	url, err := u.store.PresignedGet(ctx, key)
	if err != nil {
		u.logger.Printf("presign %s failed: %v", key, err)
		return FileRef{}, ErrInternal
	}
	return FileRef{Key: key, URL: url}, nil
}

func validateFolder(folder string) error {
	switch folder {
	case "certs", "projects":
		return nil
	default:
		return fmt.Errorf("%w: unknown folder %q", ErrInvalidInput, folder)
	}
}

func validateSize(size int64) error {
	if size <= 0 {
		return fmt.Errorf("%w: empty file", ErrInvalidInput)
	}
	if size > MaxUploadSize {
		return fmt.Errorf("%w: file exceeds %d byte limit", ErrInvalidInput, MaxUploadSize)
	}
	return nil
}

func objectKey(folder, name string) (string, error) {
	if err := validateFolder(folder); err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: invalid object name", ErrInvalidInput)
	}
	return folder + "/" + name, nil
}
