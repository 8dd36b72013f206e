// Package postgres implements docstore.Store backed by PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/japaguide/japabot/docstore"
)

// DBPool defines the interface for the database connection pool.
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// Store is a Postgres-backed document store.
type Store struct {
	pool      DBPool
	tableName string
}

var _ docstore.Store = (*Store)(nil)

// Options configuration for the Postgres connection.
type Options struct {
	ConnString string
	TableName  string // Default "country_documents"
}

// NewStore creates a new Postgres document store.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	return NewStoreWithPool(pool, opts.TableName), nil
}

// NewStoreWithPool creates a new Postgres document store with an existing
// pool. Useful for testing with mocks.
func NewStoreWithPool(pool DBPool, tableName string) *Store {
	if tableName == "" {
		tableName = "country_documents"
	}
	return &Store{
		pool:      pool,
		tableName: tableName,
	}
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
			needs_review BOOLEAN NOT NULL DEFAULT TRUE,
			source TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_country_topic ON %s (country_code, topic);
	`, s.tableName, s.tableName, s.tableName)

	_, err := s.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Search returns documents matching the query, ordered by review flag,
// confidence and recency.
func (s *Store) Search(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	var (
		conds []string
		args  []any
	)
	if len(q.Countries) > 0 {
		args = append(args, q.Countries)
		conds = append(conds, fmt.Sprintf("country_code = ANY($%d)", len(args)))
	}
	if len(q.Topics) > 0 {
		topics := make([]string, len(q.Topics))
		for i, t := range q.Topics {
			topics[i] = string(t)
		}
		args = append(args, topics)
		conds = append(conds, fmt.Sprintf("topic = ANY($%d)", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	limit := ""
	if q.Limit > 0 {
		args = append(args, q.Limit)
		limit = fmt.Sprintf("LIMIT $%d", len(args))
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

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var doc docstore.Document
		var topic, confidence string
		if err := rows.Scan(&doc.ID, &doc.CountryCode, &doc.CountryName, &topic,
			&doc.Title, &doc.Content, &confidence, &doc.NeedsReview,
			&doc.Source, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.Topic = docstore.Topic(topic)
		doc.Confidence = docstore.Confidence(confidence)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}

	return docs, nil
}
