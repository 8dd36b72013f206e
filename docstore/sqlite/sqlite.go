// Package sqlite implements docstore.Store backed by SQLite, intended for
// local development and single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/japaguide/japabot/docstore"
)

// Store is a SQLite-backed document store.
type Store struct {
	db        *sql.DB
	tableName string
}

var _ docstore.Store = (*Store)(nil)

// Options configuration for the SQLite connection.
type Options struct {
	Path      string
	TableName string // Default "country_documents"
}

// NewStore creates a new SQLite document store and initializes its schema.
func NewStore(opts Options) (*Store, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "country_documents"
	}

	store := &Store{
		db:        db,
		tableName: tableName,
	}

	if err := store.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// InitSchema creates the necessary table if it doesn't exist.
func (s *Store) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			country_code TEXT NOT NULL,
			country_name TEXT NOT NULL,
			topic TEXT NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			confidence TEXT NOT NULL DEFAULT 'low',
			needs_review INTEGER NOT NULL DEFAULT 1,
			source TEXT NOT NULL DEFAULT '',
			updated_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_country_topic ON %s (country_code, topic);
	`, s.tableName, s.tableName, s.tableName)

	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts or replaces a document.
func (s *Store) Put(ctx context.Context, doc docstore.Document) error {
	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO %s
		(id, country_code, country_name, topic, title, content, confidence, needs_review, source, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.tableName)

	_, err := s.db.ExecContext(ctx, query,
		doc.ID, doc.CountryCode, doc.CountryName, string(doc.Topic), doc.Title,
		doc.Content, string(doc.Confidence), doc.NeedsReview, doc.Source,
		doc.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}
	return nil
}

// Search returns documents matching the query, ordered by review flag,
// confidence and recency.
func (s *Store) Search(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	var (
		conds []string
		args  []any
	)
	if len(q.Countries) > 0 {
		placeholders := make([]string, len(q.Countries))
		for i, c := range q.Countries {
			placeholders[i] = "?"
			args = append(args, c)
		}
		conds = append(conds, fmt.Sprintf("country_code IN (%s)", strings.Join(placeholders, ", ")))
	}
	if len(q.Topics) > 0 {
		placeholders := make([]string, len(q.Topics))
		for i, t := range q.Topics {
			placeholders[i] = "?"
			args = append(args, string(t))
		}
		conds = append(conds, fmt.Sprintf("topic IN (%s)", strings.Join(placeholders, ", ")))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	limit := ""
	if q.Limit > 0 {
		limit = "LIMIT ?"
	}

	query := fmt.Sprintf(`
		SELECT id, country_code, country_name, topic, title, content,
		       confidence, needs_review, source, updated_at
		FROM %s
		%s
		ORDER BY needs_review ASC,
		         CASE confidence WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END DESC,
		         updated_at DESC
		%s`, s.tableName, where, limit)

	if q.Limit > 0 {
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var doc docstore.Document
		var topic, confidence string
		var updatedAt time.Time
		if err := rows.Scan(&doc.ID, &doc.CountryCode, &doc.CountryName, &topic,
			&doc.Title, &doc.Content, &confidence, &doc.NeedsReview,
			&doc.Source, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.Topic = docstore.Topic(topic)
		doc.Confidence = docstore.Confidence(confidence)
		doc.UpdatedAt = updatedAt
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}

	return docs, nil
}
