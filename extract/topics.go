package extract

import (
	"github.com/dlclark/regexp2"

	"github.com/japaguide/japabot/docstore"
)

// topicKeywords maps each topic to its word-boundary keyword patterns.
// Patterns use regexp2 so the citizenship entry can exclude "work PR"
// (work permit shorthand) with a lookbehind.
var topicKeywords = []struct {
	topic    docstore.Topic
	patterns []string
}{
	{docstore.TopicOverview, []string{
		`\boverview\b`, `\babout\b`, `\bgeneral\b`, `\binfo\b`, `\binformation\b`,
	}},
	{docstore.TopicVisas, []string{
		`\bvisa\b`, `\bvisas\b`, `\bpermit\b`, `\bentry\b`,
	}},
	{docstore.TopicWork, []string{
		`\bwork\b`, `\bjob\b`, `\bemployment\b`, `\bcareer\b`, `\bskilled\b`,
		`\bprofessional\b`, `\bh1b\b`, `\bblue card\b`, `\bworking\b`,
	}},
	{docstore.TopicStudy, []string{
		`\bstudy\b`, `\bstudent\b`, `\beducation\b`, `\buniversity\b`,
		`\bcollege\b`, `\bschool\b`, `\bdegree\b`, `\bstudying\b`,
	}},
	{docstore.TopicFamily, []string{
		`\bfamily\b`, `\bspouse\b`, `\bpartner\b`, `\bmarriage\b`,
		`\breunification\b`, `\bdependent\b`,
	}},
	{docstore.TopicCitizenship, []string{
		`\bcitizen\b`, `\bcitizenship\b`, `\bnaturalization\b`, `\bpassport\b`,
		`\bpermanent resident\b`, `(?<!work )\bpr\b`,
	}},
	{docstore.TopicAsylum, []string{
		`\basylum\b`, `\brefugee\b`, `\bhumanitarian\b`, `\bprotection\b`,
	}},
}

type topicPattern struct {
	topic    docstore.Topic
	patterns []*regexp2.Regexp
}

func compileTopicPatterns() []topicPattern {
	compiled := make([]topicPattern, 0, len(topicKeywords))
	for _, tk := range topicKeywords {
		tp := topicPattern{topic: tk.topic}
		for _, p := range tk.patterns {
			tp.patterns = append(tp.patterns, regexp2.MustCompile(p, regexp2.IgnoreCase))
		}
		compiled = append(compiled, tp)
	}
	return compiled
}

// Topics returns the topic tags matched by the message, in canonical topic
// order. A message may match several topics; when nothing matches the
// default set {overview, work, study} is returned.
func (e *Extractor) Topics(message string) []docstore.Topic {
	var matched []docstore.Topic
	for _, tp := range e.topics {
		for _, re := range tp.patterns {
			if ok, _ := re.MatchString(message); ok {
				matched = append(matched, tp.topic)
				break
			}
		}
	}
	if len(matched) == 0 {
		return append([]docstore.Topic(nil), e.fallback...)
	}
	return matched
}
