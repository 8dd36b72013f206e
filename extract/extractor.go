// Package extract detects countries and topics in free-text messages. It is
// a pure function of its input plus static tables: no network or storage
// access, so it can run on every message and every history turn cheaply.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/japaguide/japabot/docstore"
)

// Result holds what was detected in a single message.
type Result struct {
	// Countries are ISO 3166-1 alpha-3 codes, de-duplicated and ordered by
	// first mention in the message. Order matters downstream: the first
	// mention wins focus resolution.
	Countries []string
	// Topics are the matched topic tags. Never empty: defaults to
	// {overview, work, study} when no keyword matches.
	Topics []docstore.Topic
}

// codeStoplist contains common English words that coincide with valid
// alpha-3 codes and must never be treated as country mentions.
var codeStoplist = map[string]bool{
	"THE": true, "AND": true, "FOR": true, "ARE": true, "CAN": true,
	"NOT": true, "YOU": true, "HAS": true, "HIM": true, "HER": true,
	"ITS": true, "OUR": true, "WHO": true, "ALL": true, "ANY": true,
	"GET": true, "SET": true, "USE": true, "WAY": true, "HOW": true,
	"NOW": true, "DAY": true, "NEW": true, "OLD": true, "TRY": true,
	"TWO": true, "MAY": true, "SAY": true, "SEE": true, "ASK": true,
	"LET": true, "PUT": true, "END": true, "TOO": true, "OWN": true,
	"RUN": true, "OUT": true, "OFF": true, "GOT": true, "DID": true,
	"BIG": true, "TOP": true, "LOW": true, "ADD": true, "AGO": true,
	"AIR": true,
}

// aliasTable maps informal country references to codes. Patterns are
// compiled with word boundaries, case-insensitive.
var aliasTable = []struct {
	pattern string
	code    string
}{
	{`uk`, "GBR"},
	{`united kingdom`, "GBR"},
	{`britain`, "GBR"},
	{`england`, "GBR"},
	{`usa`, "USA"},
	{`u\.s\.a?`, "USA"},
	{`united states`, "USA"},
	{`america`, "USA"},
	{`uae`, "ARE"},
	{`emirates`, "ARE"},
	{`dubai`, "ARE"},
	{`nz`, "NZL"},
	{`new zealand`, "NZL"},
}

var codeRe = regexp.MustCompile(`(?i)\b[a-z]{3}\b`)

type countryPattern struct {
	code string
	re   *regexp.Regexp
}

// Extractor detects country and topic mentions using precompiled
// word-boundary patterns. Safe for concurrent use after construction.
type Extractor struct {
	codes    map[string]bool
	names    []countryPattern
	aliases  []countryPattern
	topics   []topicPattern
	fallback []docstore.Topic
}

// NewExtractor creates an extractor for the given country table. Passing nil
// uses DefaultCountries.
func NewExtractor(countries []Country) *Extractor {
	if countries == nil {
		countries = DefaultCountries()
	}

	e := &Extractor{
		codes:    make(map[string]bool, len(countries)),
		topics:   compileTopicPatterns(),
		fallback: []docstore.Topic{docstore.TopicOverview, docstore.TopicWork, docstore.TopicStudy},
	}
	for _, c := range countries {
		e.codes[c.Code] = true
		e.names = append(e.names, countryPattern{
			code: c.Code,
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(c.Name) + `\b`),
		})
	}
	for _, a := range aliasTable {
		e.aliases = append(e.aliases, countryPattern{
			code: a.code,
			re:   regexp.MustCompile(`(?i)\b` + a.pattern + `\b`),
		})
	}
	return e
}

// Extract detects countries and topics in the message.
func (e *Extractor) Extract(message string) Result {
	return Result{
		Countries: e.Countries(message),
		Topics:    e.Topics(message),
	}
}

// Countries returns the alpha-3 codes mentioned in the message, ordered by
// first mention. Detection runs three passes: standalone alpha-3 codes
// (minus the stoplist), full country names, and the alias table. All passes
// record the byte offset of the earliest match so a country named later in
// one pass does not jump ahead of one named earlier in another.
func (e *Extractor) Countries(message string) []string {
	earliest := make(map[string]int)
	record := func(code string, offset int) {
		if prev, ok := earliest[code]; !ok || offset < prev {
			earliest[code] = offset
		}
	}

	// Pass 1: explicit alpha-3 codes, matched case-insensitively so "can I
	// move to usa" hits both the stoplist and the code table. Each token is
	// uppercased individually; all three passes index into the original
	// message, so offsets stay comparable (ToUpper on the whole string can
	// shift byte positions for some Unicode input).
	for _, m := range codeRe.FindAllStringIndex(message, -1) {
		token := strings.ToUpper(message[m[0]:m[1]])
		if codeStoplist[token] {
			continue
		}
		if e.codes[token] {
			record(token, m[0])
		}
	}

	// Pass 2: full country names at word boundaries. Every country is
	// checked; matching must not stop at the first hit because mention
	// order feeds focus resolution.
	for _, p := range e.names {
		if m := p.re.FindStringIndex(message); m != nil {
			record(p.code, m[0])
		}
	}

	// Pass 3: aliases.
	for _, p := range e.aliases {
		if m := p.re.FindStringIndex(message); m != nil {
			record(p.code, m[0])
		}
	}

	codes := make([]string, 0, len(earliest))
	for code := range earliest {
		codes = append(codes, code)
	}
	sort.SliceStable(codes, func(i, j int) bool {
		if earliest[codes[i]] != earliest[codes[j]] {
			return earliest[codes[i]] < earliest[codes[j]]
		}
		return codes[i] < codes[j]
	})
	return codes
}
