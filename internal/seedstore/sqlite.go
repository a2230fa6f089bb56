package seedstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps seed documents in a local SQLite database. It serves
// offline development and tests, where standing up an Elasticsearch cluster
// is not worth the trouble.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLiteStore opens or creates a SQLite database at the given path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: SQLitePath is required", ErrInvalidConfig)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			index_name TEXT NOT NULL,
			doc_id TEXT NOT NULL,
			source TEXT NOT NULL,
			PRIMARY KEY (index_name, doc_id)
		);
	`

	_, err := db.Exec(schema)
	return err
}

// BulkIndex upserts docs into the named index inside a single transaction.
// Documents without an ID get a generated one, matching how Elasticsearch
// assigns IDs to documents indexed without one.
func (s *SQLiteStore) BulkIndex(ctx context.Context, index string, docs []Document) (BulkResult, error) {
	if len(docs) == 0 {
		return BulkResult{}, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BulkResult{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (index_name, doc_id, source)
		VALUES (?, ?, ?)
		ON CONFLICT(index_name, doc_id) DO UPDATE SET source = excluded.source
	`)
	if err != nil {
		return BulkResult{}, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, doc := range docs {
		id := doc.ID
		if id == "" {
			id = uuid.NewString()
		}

		source, err := json.Marshal(doc.Source)
		if err != nil {
			return BulkResult{}, fmt.Errorf("marshaling document %q: %w", id, err)
		}

		if _, err := stmt.ExecContext(ctx, index, id, string(source)); err != nil {
			return BulkResult{}, fmt.Errorf("upserting document %q: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return BulkResult{}, fmt.Errorf("committing transaction: %w", err)
	}
	return BulkResult{Indexed: len(docs)}, nil
}

// Count returns the number of documents stored under the named index.
func (s *SQLiteStore) Count(ctx context.Context, index string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE index_name = ?", index,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
