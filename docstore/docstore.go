// Package docstore defines the country document model and the query surface
// used for grounding generated answers. Implementations live in the memory,
// postgres and sqlite sub-packages and share a single ranking contract:
// reviewed documents first, then higher confidence, then most recently
// updated.
package docstore

import (
	"context"
	"time"
)

// Topic classifies a document within a country's immigration content.
type Topic string

const (
	TopicOverview    Topic = "overview"
	TopicVisas       Topic = "visas"
	TopicWork        Topic = "work"
	TopicStudy       Topic = "study"
	TopicFamily      Topic = "family"
	TopicCitizenship Topic = "citizenship"
	TopicAsylum      Topic = "asylum"
)

// Topics returns all known topics.
func Topics() []Topic {
	return []Topic{
		TopicOverview,
		TopicVisas,
		TopicWork,
		TopicStudy,
		TopicFamily,
		TopicCitizenship,
		TopicAsylum,
	}
}

// IsValid reports whether t is one of the known topics.
func (t Topic) IsValid() bool {
	switch t {
	case TopicOverview, TopicVisas, TopicWork, TopicStudy,
		TopicFamily, TopicCitizenship, TopicAsylum:
		return true
	}
	return false
}

// Confidence is the tri-level trust rating attached to a document.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Rank returns a sortable weight for the confidence level. Unknown values
// rank lowest, matching the most-cautious default used elsewhere.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	}
	return 0
}

// Document is a country-scoped piece of immigration content. The retrieval
// layer only reads documents; writes happen through ingestion tooling
// outside this module.
type Document struct {
	ID          string     `json:"id"`
	CountryCode string     `json:"country_code"` // ISO 3166-1 alpha-3
	CountryName string     `json:"country_name"`
	Topic       Topic      `json:"topic"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Confidence  Confidence `json:"confidence"`
	NeedsReview bool       `json:"needs_review"`
	Source      string     `json:"source"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Query filters and bounds a document search. An empty Countries or Topics
// slice omits that predicate entirely.
type Query struct {
	Countries []string
	Topics    []Topic
	Limit     int
}

// Store is the read surface of a document store.
type Store interface {
	// Search returns documents matching the query, ordered by the ranking
	// contract and truncated to Query.Limit (no truncation when Limit <= 0).
	Search(ctx context.Context, q Query) ([]Document, error)
}
