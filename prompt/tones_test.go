package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToneResolve_ClosedSet(t *testing.T) {
	for _, tone := range []Tone{ToneHelpful, ToneUncleJapa, ToneBestie, ToneStrictOfficer, ToneHypeMan, ToneTherapist} {
		assert.Equal(t, tone, tone.Resolve())
		assert.NotEmpty(t, tone.Intro())
		assert.NotEmpty(t, tone.Instructions())
	}
}

func TestToneResolve_UnknownFallsBackToHelpful(t *testing.T) {
	unknown := Tone("sarcastic")
	assert.Equal(t, ToneHelpful, unknown.Resolve())
	assert.Equal(t, ToneHelpful.Intro(), unknown.Intro())
	assert.Equal(t, ToneHelpful.Instructions(), unknown.Instructions())

	empty := Tone("")
	assert.Equal(t, ToneHelpful.Intro(), empty.Intro())
}
