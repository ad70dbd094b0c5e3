// Package report renders an analysis report into the files a run produces
// and writes them to a storage backend.
package report

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/drivescope/core/internal/models"
)

const duckdbSchema = `
CREATE OR REPLACE TABLE entries (
	id VARCHAR NOT NULL,
	name VARCHAR NOT NULL,
	mime_type VARCHAR,
	is_folder BOOLEAN NOT NULL,
	size_bytes BIGINT,
	created_time VARCHAR,
	first_parent VARCHAR,
	category VARCHAR
);

CREATE OR REPLACE TABLE duplicates (
	kind VARCHAR NOT NULL,
	name VARCHAR NOT NULL,
	size_bytes BIGINT,
	copies INTEGER NOT NULL,
	reclaimable_bytes BIGINT,
	file_id VARCHAR NOT NULL,
	location VARCHAR NOT NULL
);

CREATE OR REPLACE TABLE categories (
	category VARCHAR PRIMARY KEY,
	position INTEGER NOT NULL,
	files INTEGER NOT NULL
);
`

// DuckDBSink exports the snapshot and its findings to a DuckDB database
// file for ad hoc SQL.
type DuckDBSink struct {
	db *sql.DB
}

func OpenDuckDB(path string) (*DuckDBSink, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", path, err)
	}
	if _, err := db.Exec(duckdbSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create duckdb tables: %w", err)
	}
	return &DuckDBSink{db: db}, nil
}

func (s *DuckDBSink) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB exposes the connection for queries over an export.
func (s *DuckDBSink) DB() *sql.DB {
	return s.db
}

// Export replaces the tables' contents with g and r in one transaction.
func (s *DuckDBSink) Export(ctx context.Context, g *models.Graph, r *models.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"entries", "duplicates", "categories"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := insertEntries(ctx, tx, g, categoryByID(r.Categories)); err != nil {
		return err
	}
	if err := insertDuplicates(ctx, tx, r.Duplicates); err != nil {
		return err
	}
	if err := insertCategories(ctx, tx, r.Categories); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit export: %w", err)
	}
	return nil
}

func categoryByID(c models.Categories) map[string]string {
	out := make(map[string]string)
	if c.Members == nil {
		return out
	}
	c.Members.Each(func(category string, members []models.CategoryMember) {
		for _, m := range members {
			out[m.ID] = category
		}
	})
	return out
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func insertEntries(ctx context.Context, tx *sql.Tx, g *models.Graph, categories map[string]string) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (id, name, mime_type, is_folder, size_bytes, created_time, first_parent, category)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare entries: %w", err)
	}
	defer stmt.Close()

	for _, e := range g.Entries {
		size := sql.NullInt64{Int64: e.Bytes(), Valid: e.HasSize()}
		parent, _ := e.FirstParent()
		_, err := stmt.ExecContext(ctx,
			e.ID, e.Name, nullString(e.MimeType), e.IsFolder(), size,
			nullString(e.CreatedTime), nullString(parent), nullString(categories[e.ID]),
		)
		if err != nil {
			return fmt.Errorf("insert entry %s: %w", e.ID, err)
		}
	}
	return nil
}

func insertDuplicates(ctx context.Context, tx *sql.Tx, d models.Duplicates) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO duplicates (kind, name, size_bytes, copies, reclaimable_bytes, file_id, location)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare duplicates: %w", err)
	}
	defer stmt.Close()

	for _, g := range d.Potential {
		for _, m := range g.Members {
			if _, err := stmt.ExecContext(ctx, "potential", g.Name, nil, g.Count, nil, m.ID, m.Location); err != nil {
				return fmt.Errorf("insert duplicate %s: %w", g.Name, err)
			}
		}
	}
	for _, g := range d.Exact {
		for _, m := range g.Members {
			if _, err := stmt.ExecContext(ctx, "exact", g.Name, g.Size, g.Count, g.Reclaimable, m.ID, m.Location); err != nil {
				return fmt.Errorf("insert duplicate %s: %w", g.Name, err)
			}
		}
	}
	return nil
}

func insertCategories(ctx context.Context, tx *sql.Tx, c models.Categories) error {
	if c.Summary == nil {
		return nil
	}
	position := 0
	var err error
	c.Summary.Each(func(category string, n int) {
		if err != nil {
			return
		}
		_, err = tx.ExecContext(ctx, "INSERT INTO categories (category, position, files) VALUES (?, ?, ?)", category, position, n)
		position++
	})
	if err != nil {
		return fmt.Errorf("insert categories: %w", err)
	}
	return nil
}
