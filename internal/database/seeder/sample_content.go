package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/resource"

	"github.com/google/uuid"
)

// SampleContentSeeder fills one collection with starter records so a fresh
// install renders a non-empty site. It only runs against an empty table;
// content an admin has created is never touched.
type SampleContentSeeder struct {
	Def  resource.Definition
	Docs []map[string]any
}

func (s SampleContentSeeder) Name() string { return s.Def.Plural }

func (s SampleContentSeeder) Run(ctx context.Context, db database.DB) error {
	var count int64
	if err := db.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.Def.Table)).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, doc := range s.Docs {
		doc = s.Def.Filter(doc)
		s.Def.ApplyDefaults(doc)
		if err := s.Def.ValidateCreate(doc); err != nil {
			return err
		}

		raw, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			ctx,
			fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2::jsonb)`, s.Def.Table),
			uuid.New(),
			raw,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
