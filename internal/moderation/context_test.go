package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeContextPositive(t *testing.T) {
	score := AnalyzeContext("This is fucking awesome!")
	assert.Equal(t, 1, score.PositiveContext)
	assert.Zero(t, score.ClearlyAbusive)
	assert.Zero(t, score.HighlyAbusive)
	assert.True(t, score.LikelyFalsePositive)
}

func TestAnalyzeContextClearlyAbusive(t *testing.T) {
	for _, text := range []string{
		"fuck you",
		"f**k you",
		"go to hell",
		"kill yourself",
		"you are a piece of shit",
	} {
		score := AnalyzeContext(text)
		assert.Positivef(t, score.ClearlyAbusive, "expected clearly abusive signal for %q", text)
		assert.False(t, score.LikelyFalsePositive)
	}
}

func TestAnalyzeContextClearlyAbusiveWeighting(t *testing.T) {
	// One phrase pattern counts double.
	score := AnalyzeContext("go to hell")
	assert.Equal(t, 2, score.ClearlyAbusive)
}

func TestAnalyzeContextDirectAddress(t *testing.T) {
	tests := []struct {
		text   string
		expect bool
	}{
		{"you are an idiot", true},
		{"you're a moron", true},
		{"You idiot", true},
		{"what an idiot", true},
		{"idiot", false}, // bare word is left to the decision policy
		{"an idiotic plan", false},
	}
	for _, tt := range tests {
		score := AnalyzeContext(tt.text)
		if tt.expect {
			assert.Positivef(t, score.HighlyAbusive, "expected direct-address signal for %q", tt.text)
		} else {
			assert.Zerof(t, score.HighlyAbusive, "unexpected direct-address signal for %q", tt.text)
		}
	}
}

func TestPolitenessScore(t *testing.T) {
	score := AnalyzeContext("Could you please explain this part? Thanks")
	assert.Equal(t, 2, score.Politeness) // please + thanks; text does not end with "?"

	score = AnalyzeContext("Could you explain this part?")
	assert.Equal(t, 1, score.Politeness)

	score = AnalyzeContext("Could you please explain?")
	assert.Equal(t, 2, score.Politeness)
}

func TestSarcasticQuestionSuppressesPoliteness(t *testing.T) {
	for _, text := range []string{
		"Are you stupid?",
		"What the hell is this?",
		"How stupid can this get?",
	} {
		score := AnalyzeContext(text)
		assert.Zerof(t, score.Politeness, "sarcastic question %q must not earn politeness", text)
	}
}

func TestClearlyAbusiveQuestionEarnsNoPoliteness(t *testing.T) {
	score := AnalyzeContext("why don't you go to hell?")
	assert.Positive(t, score.ClearlyAbusive)
	assert.Zero(t, score.Politeness)
}
