package usecase

import (
	"context"
	"io"
	"log"

	"portfolio-api/internal/repository"
	"portfolio-api/internal/resource"

	"github.com/google/uuid"
)

// ObjectStore is the slice of the storage client the usecases need.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, size int64, r io.Reader) error
	Remove(ctx context.Context, key string) error
	PresignedGet(ctx context.Context, key string) (string, error)
	List(ctx context.Context, prefix string) ([]string, error)
}

type ResourceUsecase interface {
	List(ctx context.Context, def resource.Definition) ([]repository.Document, error)
	Create(ctx context.Context, def resource.Definition, payload map[string]any) (repository.Document, error)
	Update(ctx context.Context, def resource.Definition, id uuid.UUID, payload map[string]any) (repository.Document, error)
	Delete(ctx context.Context, def resource.Definition, id uuid.UUID) error
}

// Resource runs the shared CRUD pipeline for every collection. For
// file-backed collections it also upholds the storage invariant: deleting
// or replacing a record's file reference removes the previously referenced
// object.
type Resource struct {
	repo   repository.DocumentRepository
	store  ObjectStore
	logger *log.Logger
}

func NewResourceUsecase(repo repository.DocumentRepository, store ObjectStore, logger *log.Logger) *Resource {
	if logger == nil {
		logger = log.Default()
	}
	return &Resource{repo: repo, store: store, logger: logger}
}

func (u *Resource) List(ctx context.Context, def resource.Definition) ([]repository.Document, error) {
	docs, err := u.repo.List(ctx, def.Table)
	if err != nil {
		u.logger.Printf("list %s failed: %v", def.Plural, err)
		return nil, ErrInternal
	}
	return docs, nil
}

func (u *Resource) Create(ctx context.Context, def resource.Definition, payload map[string]any) (repository.Document, error) {
	fields := def.Filter(payload)
	def.ApplyDefaults(fields)
	if err := def.ValidateCreate(fields); err != nil {
		return repository.Document{}, err
	}

	doc := repository.Document{ID: uuid.New(), Fields: fields}
	if err := u.repo.Insert(ctx, def.Table, doc); err != nil {
		u.logger.Printf("create %s failed: %v", def.Singular, err)
		return repository.Document{}, ErrInternal
	}
	return doc, nil
}

func (u *Resource) Update(ctx context.Context, def resource.Definition, id uuid.UUID, payload map[string]any) (repository.Document, error) {
	fields := def.Filter(payload)
	if err := def.ValidateUpdate(fields); err != nil {
		return repository.Document{}, err
	}

	existing, ok, err := u.repo.GetByID(ctx, def.Table, id)
	if err != nil {
		u.logger.Printf("update %s %s failed: %v", def.Singular, id, err)
		return repository.Document{}, ErrInternal
	}
	if !ok {
		return repository.Document{}, ErrNotFound
	}

	if len(fields) > 0 {
		if _, err := u.repo.Merge(ctx, def.Table, id, fields); err != nil {
			u.logger.Printf("update %s %s failed: %v", def.Singular, id, err)
			return repository.Document{}, ErrInternal
		}
	}

	if def.FileBacked {
		oldKey := resource.FileKey(existing.Fields)
		newKey := resource.FileKey(fields)
		if newKey != "" && oldKey != "" && newKey != oldKey {
			u.releaseObject(ctx, oldKey)
		}
	}

	merged := make(map[string]any, len(existing.Fields)+len(fields))
	for k, v := range existing.Fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return repository.Document{ID: id, Fields: merged}, nil
}

func (u *Resource) Delete(ctx context.Context, def resource.Definition, id uuid.UUID) error {
	var fileKey string
	if def.FileBacked {
		existing, ok, err := u.repo.GetByID(ctx, def.Table, id)
		if err != nil {
			u.logger.Printf("delete %s %s failed: %v", def.Singular, id, err)
			return ErrInternal
		}
		if ok {
			fileKey = resource.FileKey(existing.Fields)
		}
	}

	// Deleting an absent id is indistinguishable from deleting a present one.
	if _, err := u.repo.Delete(ctx, def.Table, id); err != nil {
		u.logger.Printf("delete %s %s failed: %v", def.Singular, id, err)
		return ErrInternal
	}

	if fileKey != "" {
		u.releaseObject(ctx, fileKey)
	}
	return nil
}

// releaseObject removes a no-longer-referenced object. The record state is
// authoritative, so a storage failure here is logged and swallowed rather
// than failing the mutation that already happened.
func (u *Resource) releaseObject(ctx context.Context, key string) {
	if u.store == nil {
		return
	}
	if err := u.store.Remove(ctx, key); err != nil {
		u.logger.Printf("release object %s failed: %v", key, err)
	}
}
