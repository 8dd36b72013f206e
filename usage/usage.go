// Package usage records every completed model call for cost tracking and
// operator debugging. Records are append-only; retention and cleanup are
// handled outside this module.
package usage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is one logged model call.
type Record struct {
	ID              string         `json:"id"`
	SessionID       string         `json:"session_id,omitempty"`
	PromptText      string         `json:"prompt_text"`
	ResponseText    string         `json:"response_text"`
	Model           string         `json:"model"`
	TokensUsed      int            `json:"tokens_used"`
	CostUSD         float64        `json:"cost_usd"`
	DurationSeconds float64        `json:"duration_seconds"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Sink receives usage records.
type Sink interface {
	Append(ctx context.Context, rec *Record) error
}

// Stamp fills in the record's ID and creation time if unset.
func (r *Record) Stamp() {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
}

// MemorySink keeps records in memory. Intended for tests and local runs.
type MemorySink struct {
	mu      sync.Mutex
	records []*Record
}

var _ Sink = (*MemorySink)(nil)

// NewMemorySink creates an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Append stores the record.
func (s *MemorySink) Append(ctx context.Context, rec *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec.Stamp()
	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()
	return nil
}

// Records returns a snapshot of all appended records.
func (s *MemorySink) Records() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Record, len(s.records))
	copy(out, s.records)
	return out
}
