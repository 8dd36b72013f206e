package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaguide/japabot/cache"
	"github.com/japaguide/japabot/completion"
	"github.com/japaguide/japabot/docstore"
	"github.com/japaguide/japabot/docstore/memory"
	"github.com/japaguide/japabot/extract"
	"github.com/japaguide/japabot/prompt"
	"github.com/japaguide/japabot/retrieve"
	"github.com/japaguide/japabot/usage"
)

type recordingModel struct {
	answer  string
	calls   int
	systems []string
	users   []string
}

func (m *recordingModel) Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, int, error) {
	m.calls++
	m.systems = append(m.systems, system)
	m.users = append(m.users, user)
	return m.answer, 42, nil
}

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	store.Add(
		docstore.Document{
			ID: "can-visas", CountryCode: "CAN", CountryName: "Canada",
			Topic: docstore.TopicVisas, Title: "Express Entry",
			Content: "Express Entry is Canada's points-based system for skilled workers.",
			Confidence: docstore.ConfidenceHigh, Source: "IRCC",
		},
		docstore.Document{
			ID: "can-work", CountryCode: "CAN", CountryName: "Canada",
			Topic: docstore.TopicWork, Title: "Work Permits",
			Content: "Most work permits require a job offer backed by an LMIA.",
			Confidence: docstore.ConfidenceMedium, Source: "IRCC",
		},
		docstore.Document{
			ID: "aus-visas", CountryCode: "AUS", CountryName: "Australia",
			Topic: docstore.TopicVisas, Title: "Skilled Migration",
			Content: "Australia runs SkillSelect for skilled independent visas.",
			Confidence: docstore.ConfidenceHigh, Source: "Home Affairs",
		},
		docstore.Document{
			ID: "gbr-study", CountryCode: "GBR", CountryName: "United Kingdom",
			Topic: docstore.TopicStudy, Title: "Student Visa",
			Content: "The UK student visa requires a CAS from a licensed sponsor.",
			Confidence: docstore.ConfidenceHigh, Source: "GOV.UK",
		},
	)
	return store
}

func newTestOrchestrator(t *testing.T, model completion.Model) *Orchestrator {
	t.Helper()
	extractor := extract.NewExtractor(nil)
	retriever := retrieve.NewRetriever(seedStore(t), extractor, retrieve.Config{})
	assembler := prompt.NewAssembler(prompt.Config{})
	engine := completion.NewEngine(model, cache.NewMemory(), usage.NewMemorySink(), completion.Config{ModelName: "test-model"})
	return NewOrchestrator(extractor, retriever, assembler, engine, Config{})
}

func TestChat_CountryFromMessage(t *testing.T) {
	model := &recordingModel{answer: "Canada info"}
	orch := newTestOrchestrator(t, model)

	res, err := orch.Chat(context.Background(), Request{
		Message: "What visa do I need for Canada?",
		UseRAG:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Canada info", res.Answer)
	assert.Equal(t, "CAN", res.FocusedCountry)
	assert.Equal(t, []string{"CAN"}, res.CountriesDetected)

	require.NotEmpty(t, res.Sources)
	for _, src := range res.Sources {
		assert.Equal(t, "Canada", src.Country)
	}

	// Retrieved content flows into the rendered prompt.
	require.Equal(t, 1, model.calls)
	assert.Contains(t, model.users[0], "Express Entry")
}

func TestChat_ExplicitCountryOverridesMessage(t *testing.T) {
	model := &recordingModel{answer: "ok"}
	orch := newTestOrchestrator(t, model)

	res, err := orch.Chat(context.Background(), Request{
		Message:     "What visa would I need if I mentioned Canada?",
		CountryCode: "AUS",
		UseRAG:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "AUS", res.FocusedCountry)
	// Both the override and the mention are reported, override first.
	assert.Equal(t, []string{"AUS", "CAN"}, res.CountriesDetected)
	require.NotEmpty(t, res.Sources)
	for _, src := range res.Sources {
		assert.Equal(t, "Australia", src.Country)
	}
}

func TestChat_CountryFromHistory(t *testing.T) {
	model := &recordingModel{answer: "ok"}
	orch := newTestOrchestrator(t, model)

	res, err := orch.Chat(context.Background(), Request{
		Message: "How much does the visa cost?",
		UseRAG:  true,
		History: []prompt.Turn{
			{Role: prompt.RoleUser, Content: "Tell me about moving to Australia"},
			{Role: prompt.RoleAssistant, Content: "Australia has several visa streams."},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "AUS", res.FocusedCountry)
	assert.Contains(t, res.CountriesDetected, "AUS")
}

func TestChat_HistoryScanWindow(t *testing.T) {
	model := &recordingModel{answer: "ok"}
	orch := newTestOrchestrator(t, model)

	// CAN is mentioned outside the 6-turn scan window; only GBR is visible.
	history := []prompt.Turn{
		{Role: prompt.RoleUser, Content: "I was considering Canada"},
		{Role: prompt.RoleAssistant, Content: "Noted."},
		{Role: prompt.RoleUser, Content: "Actually, what about the UK?"},
		{Role: prompt.RoleAssistant, Content: "The UK has a points-based system."},
		{Role: prompt.RoleUser, Content: "What are the requirements?"},
		{Role: prompt.RoleAssistant, Content: "You need a sponsor."},
		{Role: prompt.RoleUser, Content: "And the fees?"},
		{Role: prompt.RoleAssistant, Content: "Fees vary by route."},
	}

	res, err := orch.Chat(context.Background(), Request{
		Message: "Can I study there?",
		UseRAG:  true,
		History: history,
	})
	require.NoError(t, err)

	assert.Equal(t, "GBR", res.FocusedCountry)
	assert.NotContains(t, res.CountriesDetected, "CAN")
}

func TestChat_MultipleCountriesMentionOrder(t *testing.T) {
	model := &recordingModel{answer: "ok"}
	orch := newTestOrchestrator(t, model)

	res, err := orch.Chat(context.Background(), Request{
		Message: "Compare Canada and Australia for skilled workers",
		UseRAG:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"CAN", "AUS"}, res.CountriesDetected)
	assert.Equal(t, "CAN", res.FocusedCountry)
}

func TestChat_NoCountry(t *testing.T) {
	model := &recordingModel{answer: "general advice"}
	orch := newTestOrchestrator(t, model)

	res, err := orch.Chat(context.Background(), Request{
		Message: "What paperwork should I gather before applying anywhere?",
		UseRAG:  true,
	})
	require.NoError(t, err)

	assert.Empty(t, res.FocusedCountry)
	assert.Empty(t, res.CountriesDetected)
	assert.Equal(t, "general advice", res.Answer)
}

func TestChat_NoCountryEmptyStore(t *testing.T) {
	model := &recordingModel{answer: "general advice"}
	extractor := extract.NewExtractor(nil)
	retriever := retrieve.NewRetriever(memory.NewStore(), extractor, retrieve.Config{})
	assembler := prompt.NewAssembler(prompt.Config{})
	engine := completion.NewEngine(model, cache.NewMemory(), usage.NewMemorySink(), completion.Config{ModelName: "test-model"})
	orch := NewOrchestrator(extractor, retriever, assembler, engine, Config{})

	res, err := orch.Chat(context.Background(), Request{
		Message: "What paperwork should I gather before applying anywhere?",
		UseRAG:  true,
	})
	require.NoError(t, err)

	assert.Empty(t, res.FocusedCountry)
	assert.Empty(t, res.CountriesDetected)
	assert.Empty(t, res.Sources)
	assert.Equal(t, "general advice", res.Answer)

	// With nothing retrieved the prompt takes the no-context branch.
	require.Equal(t, 1, model.calls)
	assert.Contains(t, model.users[0], "specify which country")
}

func TestChat_RAGDisabled(t *testing.T) {
	model := &recordingModel{answer: "ok"}
	orch := newTestOrchestrator(t, model)

	res, err := orch.Chat(context.Background(), Request{
		Message: "What visa do I need for Canada?",
		UseRAG:  false,
	})
	require.NoError(t, err)

	assert.Empty(t, res.Sources)
	// The country is still detected even without retrieval.
	assert.Equal(t, "CAN", res.FocusedCountry)
	require.Equal(t, 1, model.calls)
	assert.NotContains(t, model.users[0], "Express Entry")
}

func TestChat_ToneReachesSystemPrompt(t *testing.T) {
	model := &recordingModel{answer: "ok"}
	orch := newTestOrchestrator(t, model)

	_, err := orch.Chat(context.Background(), Request{
		Message: "Tell me about Canada",
		Tone:    prompt.ToneUncleJapa,
		UseRAG:  true,
	})
	require.NoError(t, err)

	require.Equal(t, 1, model.calls)
	assert.Contains(t, model.users[0], prompt.ToneUncleJapa.Intro())
}

func TestChat_RepeatedQuestionServedFromCache(t *testing.T) {
	model := &recordingModel{answer: "cached"}
	orch := newTestOrchestrator(t, model)
	ctx := context.Background()

	req := Request{Message: "What visa do I need for Canada?", UseRAG: true}

	first, err := orch.Chat(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := orch.Chat(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Answer, second.Answer)
	assert.Equal(t, 1, model.calls)

	// Provenance is recomputed per turn, not cached.
	assert.Equal(t, first.Sources, second.Sources)
}

func TestChat_UnavailableEngine(t *testing.T) {
	orch := newTestOrchestrator(t, nil)

	res, err := orch.Chat(context.Background(), Request{
		Message: "What visa do I need for Canada?",
		UseRAG:  true,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, res.Err, completion.ErrUnavailable)
	assert.Equal(t, "AI service is currently unavailable.", res.Answer)
	// Extraction and retrieval still ran.
	assert.Equal(t, "CAN", res.FocusedCountry)
	assert.NotEmpty(t, res.Sources)
}

func TestScanHistory_SkipsEmptyTurns(t *testing.T) {
	orch := newTestOrchestrator(t, &recordingModel{answer: "ok"})

	found := orch.scanHistory([]prompt.Turn{
		{Role: prompt.RoleUser, Content: ""},
		{Role: prompt.RoleUser, Content: "Thinking about Germany"},
	})
	assert.Equal(t, []string{"DEU"}, found)
}

func TestDedupe(t *testing.T) {
	out := dedupe("AUS", []string{"CAN", "AUS"}, []string{"GBR", "CAN"})
	assert.Equal(t, []string{"AUS", "CAN", "GBR"}, out)

	assert.Empty(t, dedupe("", nil, nil))
}
