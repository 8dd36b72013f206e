package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/japaguide/japabot/docstore"
	"github.com/japaguide/japabot/retrieve"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the conversation history. History is read-only
// input: the assembler never mutates it.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Input carries everything the assembler needs for one prompt. Every
// recognized field is enumerated here; there is no open-ended context bag.
type Input struct {
	Message      string
	Tone         Tone
	ContextType  ContextType
	FocusCountry string // alpha-3 code, empty when no country is in focus
	CountryName  string // display name for the system prompt
	Confidence   docstore.Confidence
	Documents    []retrieve.DocumentView
	History      []Turn
}

// Config bounds the conversational context included in prompts.
type Config struct {
	// HistoryWindow is how many trailing turns are rendered. Default 4.
	HistoryWindow int
	// HistoryCharLimit caps each rendered turn's content. Default 500.
	HistoryCharLimit int
}

// Assembler renders user and system prompts. Stateless and safe for
// concurrent use.
type Assembler struct {
	config Config
}

// NewAssembler creates an assembler.
func NewAssembler(config Config) *Assembler {
	if config.HistoryWindow == 0 {
		config.HistoryWindow = 4
	}
	if config.HistoryCharLimit == 0 {
		config.HistoryCharLimit = 500
	}
	return &Assembler{config: config}
}

// conversationalTemplate is the RAG chat prompt. The no-context branch
// explicitly tells the model no grounding data was found and to ask for
// country specificity rather than fabricate.
const conversationalTemplate = `{{.PersonalityIntro}}

{{if .HasConversationContext}}Previous conversation context:
{{.ConversationContext}}

---

{{end}}{{if .FocusedCountry}}The user is asking about: {{.FocusedCountry}}

{{end}}{{if .HasContext}}I have access to the following official immigration information to help answer your question:

{{.RetrievedDocuments}}

---

{{end}}User's current question: {{.Message}}

{{.ToneInstructions}}

{{if .HasContext}}Based on the official information above and our conversation, provide a helpful response. Be specific and focus on the country we've been discussing ({{.FocusedCountry}}). If the documents don't fully answer the question, acknowledge what's known and what requires further research.{{else}}Provide general guidance, but remind the user that for specific country information, they should specify which country they're interested in. Be helpful but acknowledge uncertainty without specific data.{{end}}

Response:`

// UserPrompt renders the user-role prompt: personality intro, bounded
// conversation context, document context and the current question.
func (a *Assembler) UserPrompt(in Input) (string, error) {
	if strings.TrimSpace(in.Message) == "" {
		return "", errors.New("prompt assembly requires a non-empty message")
	}

	docContext := a.renderDocuments(in.Documents)
	convContext := a.renderHistory(in.History)

	return renderTemplate(conversationalTemplate, map[string]any{
		"PersonalityIntro":       in.Tone.Intro(),
		"ToneInstructions":       in.Tone.Instructions(),
		"Message":                in.Message,
		"FocusedCountry":         in.FocusCountry,
		"HasContext":             docContext != "",
		"RetrievedDocuments":     docContext,
		"HasConversationContext": convContext != "",
		"ConversationContext":    convContext,
	})
}

// SystemPrompt renders the system-role prompt for the input's context type.
func (a *Assembler) SystemPrompt(in Input) (string, error) {
	return BuildSystemPrompt(in.ContextType, in.CountryName, in.Confidence)
}

// renderDocuments renders each retrieved document as a labeled block, with
// a clear separator between blocks. Returns "" when there is nothing to
// render.
func (a *Assembler) renderDocuments(docs []retrieve.DocumentView) string {
	if len(docs) == 0 {
		return ""
	}

	blocks := make([]string, len(docs))
	for i, doc := range docs {
		blocks[i] = fmt.Sprintf("**%s - %s** (Source: %s, Confidence: %s)\n\n%s",
			doc.CountryName, doc.Title, doc.Source, doc.Confidence, doc.Content)
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

// renderHistory renders the last HistoryWindow turns as "Role: content"
// lines, each truncated to HistoryCharLimit. Empty turns are skipped.
func (a *Assembler) renderHistory(history []Turn) string {
	if len(history) == 0 {
		return ""
	}

	start := len(history) - a.config.HistoryWindow
	if start < 0 {
		start = 0
	}

	var lines []string
	for _, turn := range history[start:] {
		content := turn.Content
		if content == "" {
			continue
		}
		content = truncateChars(content, a.config.HistoryCharLimit)
		lines = append(lines, fmt.Sprintf("%s: %s", titleRole(turn.Role), content))
	}
	return strings.Join(lines, "\n")
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

func titleRole(r Role) string {
	switch r {
	case RoleAssistant:
		return "Assistant"
	case RoleUser:
		return "User"
	default:
		if r == "" {
			return "User"
		}
		return strings.ToUpper(string(r[0])) + string(r[1:])
	}
}
