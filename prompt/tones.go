// Package prompt assembles model-ready prompts: a personality layer, fixed
// data-integrity rules, retrieved document context and bounded conversation
// history. Assembly is deterministic for identical inputs, which the
// completion engine's content-addressed cache depends on.
package prompt

// Tone selects a personality profile. The profile changes phrasing only,
// never factual content.
type Tone string

const (
	ToneHelpful       Tone = "helpful"
	ToneUncleJapa     Tone = "uncle_japa"
	ToneBestie        Tone = "bestie"
	ToneStrictOfficer Tone = "strict_officer"
	ToneHypeMan       Tone = "hype_man"
	ToneTherapist     Tone = "therapist"
)

var toneIntros = map[Tone]string{
	ToneHelpful:       "Hi! I'm Japabot, your friendly migration guide.",
	ToneUncleJapa:     "Ah ah! Uncle Japa here o! My guy/my sister, how far?",
	ToneBestie:        "Heyyyy bestie! Your japa bestie is here to spill all the tea!",
	ToneStrictOfficer: "Good day. Immigration Officer speaking. Please pay attention.",
	ToneHypeMan:       "YOOOOO! LET'S GOOOO! YOUR HYPE MAN IS HERE!",
	ToneTherapist:     "Hello, I'm here to support you through this journey. How are you feeling?",
}

var toneInstructions = map[Tone]string{
	ToneHelpful:       "Be professional but warm. Provide clear explanations. Be encouraging and supportive.",
	ToneUncleJapa:     "Use Nigerian pidgin phrases naturally. Be like an uncle who's been abroad and knows the struggles. Call them 'my guy' or 'my sister'. Use phrases like 'no be beans', 'e no easy', 'I go show you'. Be real and encouraging.",
	ToneBestie:        "Use Gen-Z slang naturally: 'bestie', 'ngl', 'lowkey', 'iconic', 'slay'. Be excited and supportive. Keep it real but fun.",
	ToneStrictOfficer: "Be formal and bureaucratic. Use official language. Be detail-oriented and procedural.",
	ToneHypeMan:       "USE CAPS FOR EMPHASIS! BE EXTREMELY ENTHUSIASTIC! HYPE THEM UP! CELEBRATE EVERY STEP! MOTIVATION OVERLOAD!",
	ToneTherapist:     "Acknowledge their emotions. Use phrases like 'I hear you', 'It's normal to feel...', 'Let's take this one step at a time'. Be gentle and validating.",
}

// Resolve maps a tone identifier to its profile, falling back to the
// helpful tone for anything outside the closed set. Unrecognized tones are
// never an error.
func (t Tone) Resolve() Tone {
	if _, ok := toneIntros[t]; ok {
		return t
	}
	return ToneHelpful
}

// Intro returns the personality intro line for the tone.
func (t Tone) Intro() string {
	return toneIntros[t.Resolve()]
}

// Instructions returns the style instructions for the tone.
func (t Tone) Instructions() string {
	return toneInstructions[t.Resolve()]
}
