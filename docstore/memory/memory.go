// Package memory provides an in-memory docstore.Store, useful for tests and
// for running the assistant against a seeded document set without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/japaguide/japabot/docstore"
)

// Store is an in-memory document store. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	docs []docstore.Document
}

var _ docstore.Store = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Add appends documents to the store.
func (s *Store) Add(docs ...docstore.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, docs...)
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Search returns matching documents ordered by review flag, confidence and
// recency, truncated to q.Limit.
func (s *Store) Search(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	countries := make(map[string]bool, len(q.Countries))
	for _, c := range q.Countries {
		countries[c] = true
	}
	topics := make(map[docstore.Topic]bool, len(q.Topics))
	for _, t := range q.Topics {
		topics[t] = true
	}

	s.mu.RLock()
	matched := make([]docstore.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		if len(countries) > 0 && !countries[doc.CountryCode] {
			continue
		}
		if len(topics) > 0 && !topics[doc.Topic] {
			continue
		}
		matched = append(matched, doc)
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.NeedsReview != b.NeedsReview {
			return !a.NeedsReview
		}
		if a.Confidence.Rank() != b.Confidence.Rank() {
			return a.Confidence.Rank() > b.Confidence.Rank()
		}
		return a.UpdatedAt.After(b.UpdatedAt)
	})

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	return matched, nil
}
