// Package completion turns an assembled prompt into a model answer. It owns
// the content-addressed response cache, per-call usage logging and the cost
// accounting for external model calls. Provider failures never escape as
// errors: callers always get a user-safe answer.
package completion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/japaguide/japabot/cache"
	"github.com/japaguide/japabot/log"
	"github.com/japaguide/japabot/usage"
)

// ErrUnavailable indicates no model credential is configured for this
// process. The engine short-circuits without touching the cache or the
// usage log.
var ErrUnavailable = errors.New("completion model not configured")

const (
	unavailableAnswer = "AI service is currently unavailable."
	fallbackAnswer    = "Sorry, I encountered an error processing your request."
)

// Request is one completion call.
type Request struct {
	// SystemPrompt frames the call; part of the cache key.
	SystemPrompt string
	// Prompt is the rendered user-role prompt.
	Prompt string
	// Temperature and MaxTokens override the engine defaults when non-zero.
	// A zero Temperature means "use the engine default"; pass a negative
	// value to request deterministic sampling at temperature 0.
	Temperature float64
	MaxTokens   int
	// UseCache enables the content-addressed cache for this call.
	UseCache bool
	// SessionID and Metadata are carried into the usage record only.
	SessionID string
	Metadata  map[string]any
}

// Result is the outcome of a completion call. When Err is set, Answer still
// holds a user-safe message.
type Result struct {
	Answer          string  `json:"answer"`
	TokensUsed      int     `json:"tokens_used"`
	CostUSD         float64 `json:"cost_usd"`
	DurationSeconds float64 `json:"duration_seconds"`
	Cached          bool    `json:"cached"`
	Err             error   `json:"-"`
}

// Config configures the engine.
type Config struct {
	// ModelName is recorded in usage records.
	ModelName string
	// Temperature default 0.7; negative means 0. MaxTokens default 1000.
	Temperature float64
	MaxTokens   int
	// CostPerToken is the blended per-token rate used for cost estimates.
	// Default 0.00000021 USD.
	CostPerToken float64
	// CacheTTL default 1 hour.
	CacheTTL time.Duration
	// CachePrefix default "ai:completion:".
	CachePrefix string
}

// Engine coordinates cache lookup, the external model call, cache store and
// usage logging. A nil model is allowed and yields unavailable results.
type Engine struct {
	model  Model
	cache  cache.Store
	sink   usage.Sink
	config Config
}

// NewEngine creates a completion engine. cacheStore and sink may be nil to
// disable caching and usage logging respectively.
func NewEngine(model Model, cacheStore cache.Store, sink usage.Sink, config Config) *Engine {
	if config.Temperature == 0 {
		config.Temperature = 0.7
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 1000
	}
	if config.CostPerToken == 0 {
		config.CostPerToken = 0.00000021
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = time.Hour
	}
	if config.CachePrefix == "" {
		config.CachePrefix = "ai:completion:"
	}

	return &Engine{
		model:  model,
		cache:  cacheStore,
		sink:   sink,
		config: config,
	}
}

// CacheKey derives the content-addressed cache key for a prompt pair. The
// system prompt is folded into the hash so an answer generated under one
// safety framing is never served under another.
func (e *Engine) CacheKey(systemPrompt, prompt string) string {
	h := sha256.New()
	h.Write([]byte(systemPrompt))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return e.config.CachePrefix + hex.EncodeToString(h.Sum(nil))
}

// Complete runs one completion. Identical rendered prompts within the TTL
// window hit the cache and perform no external call. Two concurrent
// identical misses may both call the model; the cache is content-addressed,
// so both store the same key and correctness is unaffected.
func (e *Engine) Complete(ctx context.Context, req Request) Result {
	if e.model == nil {
		return Result{Answer: unavailableAnswer, Err: ErrUnavailable}
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = e.config.Temperature
	}
	if temperature < 0 {
		temperature = 0
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = e.config.MaxTokens
	}

	key := e.CacheKey(req.SystemPrompt, req.Prompt)

	if req.UseCache && e.cache != nil {
		if res, ok := e.cacheLookup(ctx, key); ok {
			res.Cached = true
			return res
		}
	}

	start := time.Now()
	answer, tokens, err := e.model.Complete(ctx, req.SystemPrompt, req.Prompt, temperature, maxTokens)
	duration := time.Since(start)
	if err != nil {
		log.Error("completion call failed after %.2fs: %v", duration.Seconds(), err)
		return Result{
			Answer: fallbackAnswer,
			Err:    fmt.Errorf("completion call failed: %w", err),
		}
	}

	result := Result{
		Answer:          answer,
		TokensUsed:      tokens,
		CostUSD:         float64(tokens) * e.config.CostPerToken,
		DurationSeconds: duration.Seconds(),
	}

	if req.UseCache && e.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := e.cache.Set(ctx, key, data, e.config.CacheTTL); err != nil {
				log.Warn("failed to cache completion: %v", err)
			}
		}
	}

	if e.sink != nil {
		rec := &usage.Record{
			SessionID:       req.SessionID,
			PromptText:      req.Prompt,
			ResponseText:    answer,
			Model:           e.config.ModelName,
			TokensUsed:      tokens,
			CostUSD:         result.CostUSD,
			DurationSeconds: result.DurationSeconds,
			Metadata:        req.Metadata,
		}
		if err := e.sink.Append(ctx, rec); err != nil {
			log.Warn("failed to append usage record: %v", err)
		}
	}

	return result
}

func (e *Engine) cacheLookup(ctx context.Context, key string) (Result, bool) {
	data, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		log.Warn("cache lookup failed: %v", err)
		return Result{}, false
	}
	if !ok {
		return Result{}, false
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		log.Warn("failed to decode cached completion: %v", err)
		return Result{}, false
	}
	return res, true
}
