package prompt

import "github.com/japaguide/japabot/docstore"

// SafetyRules is the fixed data-integrity block included in every system
// prompt, regardless of context type.
const SafetyRules = `
## CRITICAL DATA INTEGRITY RULES

You MUST follow these rules for EVERY response:

1. **NO FABRICATION**: If you don't have specific data for a country, visa, or cost, say "I don't have verified data for this" rather than inventing numbers or requirements.

2. **UNCERTAINTY LANGUAGE**: Use phrases like:
   - "Based on available data..."
   - "This may vary..."
   - "You should verify this with..."
   - "Approximately..." or "Around..."
   - "As of [date]..."

3. **SOURCE AWARENESS**:
   - Acknowledge when data may be outdated
   - Recommend official sources for critical decisions
   - Never present estimates as facts

4. **CRITICAL DISCLAIMERS** - Always include for:
   - Visa requirements: "Visa rules change frequently. Always verify with the official embassy or consulate."
   - Cost estimates: "Costs are estimates based on available data and will vary based on lifestyle and timing."
   - Legal matters: "This is general information, not legal advice. Consult an immigration lawyer for your specific situation."
   - Timelines: "Processing times are approximate and can vary significantly."

5. **TIER-1 PRIORITY**: Our verified data is strongest for: Canada, UK, USA, Australia, Germany, Netherlands, Ireland, New Zealand, Portugal, France, Sweden, Norway, Denmark, Switzerland, Japan, South Korea, Singapore, UAE, and select others. For other countries, be more cautious about specifics.

6. **RED FLAGS**: If a user asks about:
   - Specific visa approval chances: respond "I cannot predict individual outcomes"
   - Guaranteed jobs or housing: respond "I cannot guarantee outcomes"
   - Illegal immigration routes: refuse to answer
   - Circumventing requirements: refuse to answer
`

var confidenceGuidance = map[docstore.Confidence]string{
	docstore.ConfidenceHigh: `
This country has verified, recently-updated data. You can be more specific in your responses, but still:
- Use uncertainty language for time-sensitive info
- Recommend official sources for visa details
- Present cost ranges rather than exact figures
`,
	docstore.ConfidenceMedium: `
This country has partial data that may need verification. You should:
- Use more hedging language ("approximately", "around", "typically")
- Strongly recommend verifying with official sources
- Acknowledge data may be incomplete or dated
`,
	docstore.ConfidenceLow: `
This country has limited or outdated data. You MUST:
- Use maximum uncertainty language
- Strongly caveat all specific figures
- Recommend the user research independently
- Focus on general guidance rather than specifics
- State clearly: "Our data for this country is limited. Please verify all details with official sources."
`,
}

// ConfidenceGuidance returns the hedging instructions for a confidence
// tier. Unknown or missing confidence resolves to the most cautious tier.
func ConfidenceGuidance(c docstore.Confidence) string {
	if g, ok := confidenceGuidance[c]; ok {
		return g
	}
	return confidenceGuidance[docstore.ConfidenceLow]
}
