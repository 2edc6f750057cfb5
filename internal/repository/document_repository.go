package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"portfolio-api/internal/database"

	"github.com/google/uuid"
)

// Document is one stored record: an id plus the schemaless field map
// persisted as a JSON document.
type Document struct {
	ID     uuid.UUID
	Fields map[string]any
}

type DocumentRepository interface {
	List(ctx context.Context, table string) ([]Document, error)
	GetByID(ctx context.Context, table string, id uuid.UUID) (Document, bool, error)
	Insert(ctx context.Context, table string, doc Document) error
	// Merge overlays the given fields onto the stored document and reports
	// whether the id existed.
	Merge(ctx context.Context, table string, id uuid.UUID, fields map[string]any) (bool, error)
	// Delete removes the record and reports whether the id existed.
	Delete(ctx context.Context, table string, id uuid.UUID) (bool, error)
}

type PostgresDocumentRepository struct {
	db database.DB
}

func NewPostgresDocumentRepository(db database.DB) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{db: db}
}

// Table names come from the fixed resource definitions, never from request
// input, so interpolating them is safe.

func (r *PostgresDocumentRepository) List(ctx context.Context, table string) ([]Document, error) {
	q := fmt.Sprintf(`SELECT id, doc FROM %s ORDER BY created_at ASC, id ASC`, table)
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Document, 0)
	for rows.Next() {
		var (
			id  uuid.UUID
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, Document{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresDocumentRepository) GetByID(ctx context.Context, table string, id uuid.UUID) (Document, bool, error) {
	q := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, table)
	rows, err := r.db.Query(ctx, q, id)
	if err != nil {
		return Document{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return Document{}, false, rows.Err()
	}

	var raw []byte
	if err := rows.Scan(&raw); err != nil {
		return Document{}, false, err
	}
	fields, err := decodeFields(raw)
	if err != nil {
		return Document{}, false, err
	}
	return Document{ID: id, Fields: fields}, true, nil
}

func (r *PostgresDocumentRepository) Insert(ctx context.Context, table string, doc Document) error {
	raw, err := json.Marshal(doc.Fields)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2::jsonb)`, table)
	_, err = r.db.Exec(ctx, q, doc.ID, string(raw))
	return err
}

func (r *PostgresDocumentRepository) Merge(ctx context.Context, table string, id uuid.UUID, fields map[string]any) (bool, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return false, err
	}
	q := fmt.Sprintf(`UPDATE %s SET doc = doc || $2::jsonb WHERE id = $1`, table)
	affected, err := r.db.Exec(ctx, q, id, string(raw))
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresDocumentRepository) Delete(ctx context.Context, table string, id uuid.UUID) (bool, error) {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)
	affected, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func decodeFields(raw []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(raw) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
