// Package chat is the top-level conversation entry point. It coordinates
// entity extraction, document retrieval, prompt assembly and completion for
// each turn, tracking which country is in focus. It is a read path: it never
// persists the exchange itself.
package chat

import (
	"context"

	"github.com/japaguide/japabot/completion"
	"github.com/japaguide/japabot/extract"
	"github.com/japaguide/japabot/prompt"
	"github.com/japaguide/japabot/retrieve"
)

// Request is one conversation turn from a caller (e.g. an HTTP layer).
type Request struct {
	Message string
	Tone    prompt.Tone
	// CountryCode is an explicit focus override (ISO alpha-3); empty means
	// resolve from the message and history.
	CountryCode string
	// UseRAG enables document retrieval. When false the prompt carries no
	// grounding context.
	UseRAG bool
	// History is the prior conversation, oldest first. Read-only.
	History []prompt.Turn
	// SessionID is passed through to usage logging.
	SessionID string
}

// Source identifies a document that grounded an answer.
type Source struct {
	Country string `json:"country"`
	Title   string `json:"title"`
	Source  string `json:"source"`
}

// Response is the answer plus provenance for client-side display.
type Response struct {
	Answer            string   `json:"answer"`
	Sources           []Source `json:"sources"`
	CountriesDetected []string `json:"countries_detected"`
	FocusedCountry    string   `json:"focused_country,omitempty"`
	Cached            bool     `json:"cached"`
	TokensUsed        int      `json:"tokens_used"`
	// Err is set when the completion failed; Answer still holds a user-safe
	// message.
	Err error `json:"-"`
}

// Config bounds the orchestrator's context gathering.
type Config struct {
	// HistoryScanWindow is how many trailing history turns are scanned for
	// country mentions. Default 6.
	HistoryScanWindow int
	// MaxDocuments is the retrieval limit per turn. Default 5.
	MaxDocuments int
}

// Orchestrator wires the pipeline together. All dependencies are explicit
// constructor parameters; construct one per process and share it across
// requests.
type Orchestrator struct {
	extractor *extract.Extractor
	retriever *retrieve.Retriever
	assembler *prompt.Assembler
	engine    *completion.Engine
	config    Config
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(extractor *extract.Extractor, retriever *retrieve.Retriever, assembler *prompt.Assembler, engine *completion.Engine, config Config) *Orchestrator {
	if config.HistoryScanWindow == 0 {
		config.HistoryScanWindow = 6
	}
	if config.MaxDocuments == 0 {
		config.MaxDocuments = 5
	}

	return &Orchestrator{
		extractor: extractor,
		retriever: retriever,
		assembler: assembler,
		engine:    engine,
		config:    config,
	}
}

// Chat handles one turn. Focus precedence: explicit override, then the
// first country mentioned in the current message, then the first country
// found scanning recent history in chronological order.
func (o *Orchestrator) Chat(ctx context.Context, req Request) (*Response, error) {
	currentCountries := o.extractor.Countries(req.Message)
	historyCountries := o.scanHistory(req.History)

	focus := req.CountryCode
	if focus == "" && len(currentCountries) > 0 {
		focus = currentCountries[0]
	}
	if focus == "" && len(historyCountries) > 0 {
		focus = historyCountries[0]
	}

	detected := dedupe(req.CountryCode, currentCountries, historyCountries)

	var docs []retrieve.DocumentView
	if req.UseRAG {
		var err error
		docs, err = o.retriever.Retrieve(ctx, req.Message, focus, o.config.MaxDocuments)
		if err != nil {
			return nil, err
		}
	}

	in := prompt.Input{
		Message:      req.Message,
		Tone:         req.Tone,
		ContextType:  prompt.ContextBase,
		FocusCountry: focus,
		Documents:    docs,
		History:      req.History,
	}

	userPrompt, err := o.assembler.UserPrompt(in)
	if err != nil {
		return nil, err
	}
	systemPrompt, err := o.assembler.SystemPrompt(in)
	if err != nil {
		return nil, err
	}

	result := o.engine.Complete(ctx, completion.Request{
		SystemPrompt: systemPrompt,
		Prompt:       userPrompt,
		UseCache:     true,
		SessionID:    req.SessionID,
		Metadata: map[string]any{
			"tone":            string(req.Tone.Resolve()),
			"focused_country": focus,
			"use_rag":         req.UseRAG,
		},
	})

	sources := make([]Source, len(docs))
	for i, doc := range docs {
		sources[i] = Source{
			Country: doc.CountryName,
			Title:   doc.Title,
			Source:  doc.Source,
		}
	}

	return &Response{
		Answer:            result.Answer,
		Sources:           sources,
		CountriesDetected: detected,
		FocusedCountry:    focus,
		Cached:            result.Cached,
		TokensUsed:        result.TokensUsed,
		Err:               result.Err,
	}, nil
}

// scanHistory collects countries mentioned in the last HistoryScanWindow
// turns, scanned in chronological order so earlier mentions keep priority.
func (o *Orchestrator) scanHistory(history []prompt.Turn) []string {
	start := len(history) - o.config.HistoryScanWindow
	if start < 0 {
		start = 0
	}

	var found []string
	for _, turn := range history[start:] {
		if turn.Content == "" {
			continue
		}
		found = append(found, o.extractor.Countries(turn.Content)...)
	}
	return found
}

// dedupe merges the explicit override, current-message mentions and history
// mentions into one ordered, de-duplicated list.
func dedupe(explicit string, groups ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(code string) {
		if code == "" || seen[code] {
			return
		}
		seen[code] = true
		out = append(out, code)
	}

	add(explicit)
	for _, group := range groups {
		for _, code := range group {
			add(code)
		}
	}
	return out
}
