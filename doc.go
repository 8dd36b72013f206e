// Japabot - Grounded Migration-Assistant Core in Go
//
// Japabot is the retrieval-augmented generation core of the JapaGuide
// migration assistant. It turns a free-text user message, plus optional
// conversation history and an explicit country selection, into a grounded,
// safety-framed prompt for a chat-completion model, backed by a store of
// country-specific immigration documents.
//
// # Packages
//
//   - extract: country and topic detection from free text
//   - docstore: document model and store implementations (memory, postgres, sqlite)
//   - retrieve: filtered, ranked document retrieval with bounded projections
//   - prompt: personality tones, safety rules and prompt assembly
//   - completion: cached model calls with cost and usage accounting
//   - chat: the per-turn conversation orchestrator
//   - cache: TTL key/value stores (memory, redis) behind the response cache
//   - usage: append-only model-call logging (memory, postgres)
//   - config: process configuration
//   - log: leveled logging
//
// # Quick Start
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//
//		"github.com/japaguide/japabot/cache"
//		"github.com/japaguide/japabot/chat"
//		"github.com/japaguide/japabot/completion"
//		"github.com/japaguide/japabot/docstore/memory"
//		"github.com/japaguide/japabot/extract"
//		"github.com/japaguide/japabot/prompt"
//		"github.com/japaguide/japabot/retrieve"
//		"github.com/japaguide/japabot/usage"
//	)
//
//	func main() {
//		store := memory.NewStore()
//		extractor := extract.NewExtractor(nil)
//		retriever := retrieve.NewRetriever(store, extractor, retrieve.Config{})
//		assembler := prompt.NewAssembler(prompt.Config{})
//
//		model, _ := completion.NewOpenAIModel(completion.OpenAIOptions{
//			APIKey: "...",
//			Model:  "deepseek-chat",
//		})
//		engine := completion.NewEngine(model, cache.NewMemory(), usage.NewMemorySink(),
//			completion.Config{ModelName: "deepseek-chat"})
//
//		bot := chat.NewOrchestrator(extractor, retriever, assembler, engine, chat.Config{})
//		resp, _ := bot.Chat(context.Background(), chat.Request{
//			Message: "What are the visa requirements for Canada?",
//			Tone:    prompt.ToneHelpful,
//			UseRAG:  true,
//		})
//		fmt.Println(resp.Answer)
//	}
package japabot
