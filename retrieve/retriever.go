// Package retrieve turns a free-text message into a ranked, bounded set of
// grounding documents. It combines entity extraction with the document
// store's query surface and projects results into prompt-sized views.
package retrieve

import (
	"context"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/japaguide/japabot/docstore"
	"github.com/japaguide/japabot/extract"
)

// DocumentView is a bounded projection of a stored document, ready for
// prompt injection.
type DocumentView struct {
	CountryCode string              `json:"country_code"`
	CountryName string              `json:"country_name"`
	Topic       docstore.Topic      `json:"topic"`
	Title       string              `json:"title"`
	Content     string              `json:"content"`
	Confidence  docstore.Confidence `json:"confidence"`
	Source      string              `json:"source"`
	LastUpdated time.Time           `json:"last_updated"`
}

// Config bounds retrieval output.
type Config struct {
	// MaxDocuments is the default result limit. Default 5.
	MaxDocuments int
	// ContentLimit caps each document's content in characters so a handful
	// of documents cannot blow the prompt budget. Default 3000.
	ContentLimit int
}

// Retriever performs read-only, side-effect-free document lookups. Calling
// it twice with identical arguments against an unchanged store yields
// identical ordered results.
type Retriever struct {
	store     docstore.Store
	extractor *extract.Extractor
	config    Config
	sanitizer *bluemonday.Policy
}

// NewRetriever creates a retriever over the given store and extractor.
func NewRetriever(store docstore.Store, extractor *extract.Extractor, config Config) *Retriever {
	if config.MaxDocuments == 0 {
		config.MaxDocuments = 5
	}
	if config.ContentLimit == 0 {
		config.ContentLimit = 3000
	}

	return &Retriever{
		store:     store,
		extractor: extractor,
		config:    config,
		// Stored content may carry markup from ingestion; strip it before
		// it reaches a prompt.
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Retrieve returns up to limit documents relevant to the message. A
// non-empty countryCode overrides country detection entirely; otherwise the
// countries mentioned in the message form the filter, and no mention means
// no country restriction. A limit <= 0 falls back to Config.MaxDocuments.
func (r *Retriever) Retrieve(ctx context.Context, message, countryCode string, limit int) ([]DocumentView, error) {
	if limit <= 0 {
		limit = r.config.MaxDocuments
	}

	var countries []string
	if countryCode != "" {
		countries = []string{countryCode}
	} else {
		countries = r.extractor.Countries(message)
	}

	docs, err := r.store.Search(ctx, docstore.Query{
		Countries: countries,
		Topics:    r.extractor.Topics(message),
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	views := make([]DocumentView, len(docs))
	for i, doc := range docs {
		views[i] = r.project(doc)
	}
	return views, nil
}

func (r *Retriever) project(doc docstore.Document) DocumentView {
	content := truncateChars(strings.TrimSpace(r.sanitizer.Sanitize(doc.Content)), r.config.ContentLimit)

	source := doc.Source
	if source == "" {
		source = "Unknown"
	}

	return DocumentView{
		CountryCode: doc.CountryCode,
		CountryName: doc.CountryName,
		Topic:       doc.Topic,
		Title:       doc.Title,
		Content:     content,
		Confidence:  doc.Confidence,
		Source:      source,
		LastUpdated: doc.UpdatedAt,
	}
}

// truncateChars cuts s to at most limit characters. The budget counts runes,
// not bytes, so a cut never lands inside a multi-byte character.
func truncateChars(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
