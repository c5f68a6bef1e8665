package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func classify(t *testing.T, text string) AbuseVerdict {
	t.Helper()
	return NewEngine(DefaultConfig(), nil, nil).ClassifyAbuse(text)
}

func TestDecideEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		v := classify(t, text)
		assert.Zero(t, v.IsAbusive)
		assert.Zero(t, v.Confidence)
		assert.Equal(t, ActionApprove, v.Action)
		assert.Equal(t, ReasonEmptyText, v.Reason)
	}
}

func TestDecideCleanText(t *testing.T) {
	v := classify(t, "Great write-up, learned a lot from it")
	assert.Zero(t, v.IsAbusive)
	assert.Equal(t, ActionApprove, v.Action)
	assert.Equal(t, ReasonNoAbusiveWords, v.Reason)
	assert.Empty(t, v.FlaggedWords)
}

func TestDecideClearlyAbusive(t *testing.T) {
	v := classify(t, "f**k you")
	assert.Equal(t, 1, v.IsAbusive)
	assert.Equal(t, 0.95, v.Confidence)
	assert.Equal(t, ActionKeepHidden, v.Action)
	assert.Equal(t, ReasonClearlyAbusive, v.Reason)
}

func TestDecidePhraseAbuseSentinel(t *testing.T) {
	// No literal lexicon word matches, but the phrase pattern fires; the
	// sentinel marks the verdict so the text is not treated as clean.
	v := classify(t, "just kill yourself")
	assert.Equal(t, 1, v.IsAbusive)
	assert.Equal(t, ActionKeepHidden, v.Action)
	assert.Equal(t, []string{PhraseAbuse}, v.FlaggedWords)
}

func TestDecideThreeWordPileup(t *testing.T) {
	v := classify(t, "stupid dumb trash take")
	assert.Equal(t, 1, v.IsAbusive)
	assert.Equal(t, 0.95, v.Confidence)
	assert.Equal(t, ActionKeepHidden, v.Action)
	assert.Equal(t, ReasonClearlyAbusive, v.Reason)
}

func TestDecidePositiveContext(t *testing.T) {
	v := classify(t, "This is fucking awesome!")
	assert.Zero(t, v.IsAbusive)
	assert.Equal(t, 0.3, v.Confidence)
	assert.Equal(t, ActionAutoApprove, v.Action)
	assert.Equal(t, ReasonPositiveContext, v.Reason)
	assert.Equal(t, []string{"fucking"}, v.FlaggedWords)
}

func TestDecidePoliteTone(t *testing.T) {
	v := classify(t, "Can you explain why this looks dumb? Thanks")
	assert.Zero(t, v.IsAbusive)
	assert.Equal(t, 0.4, v.Confidence)
	assert.Equal(t, ActionAutoApprove, v.Action)
	assert.Equal(t, ReasonPoliteTone, v.Reason)
}

func TestDecideSingleHighRiskWord(t *testing.T) {
	v := classify(t, "idiot")
	assert.Equal(t, 1, v.IsAbusive)
	assert.Equal(t, 0.8, v.Confidence)
	assert.Equal(t, ActionKeepHidden, v.Action)
	assert.Equal(t, ReasonHighRiskWord, v.Reason)
}

func TestDecideDirectAddressOutranksSingleWord(t *testing.T) {
	// With a second-person address the phrase signal wins over the
	// single-word rule.
	v := classify(t, "You idiot")
	assert.Equal(t, 1, v.IsAbusive)
	assert.Equal(t, 0.95, v.Confidence)
	assert.Equal(t, ReasonClearlyAbusive, v.Reason)
}

func TestDecideUncertainContext(t *testing.T) {
	v := classify(t, "This is stupid")
	assert.Equal(t, 1, v.IsAbusive)
	assert.Equal(t, 0.6, v.Confidence)
	assert.Equal(t, ActionHumanReview, v.Action)
	assert.Equal(t, ReasonUncertainContext, v.Reason)
}

func TestDecideSarcasmOverride(t *testing.T) {
	v := classify(t, "Are you stupid?")
	assert.Equal(t, 1, v.IsAbusive)
	assert.Equal(t, ActionKeepHidden, v.Action)
}

func TestDecidePrecedenceAbusiveBeatsPositive(t *testing.T) {
	// Texts carrying both a positive-context and a clearly-abusive pattern
	// are still hidden.
	v := classify(t, "This is fucking awesome, now go to hell")
	assert.Equal(t, 1, v.IsAbusive)
	assert.Equal(t, ActionKeepHidden, v.Action)
	assert.Equal(t, ReasonClearlyAbusive, v.Reason)
}

func TestDecideDeterminism(t *testing.T) {
	texts := []string{"", "idiot", "This is stupid", "f**k you", "a clean comment"}
	eng := NewEngine(DefaultConfig(), nil, nil)
	for _, text := range texts {
		assert.Equal(t, eng.ClassifyAbuse(text), eng.ClassifyAbuse(text))
	}
}

func TestStatusForAction(t *testing.T) {
	assert.Equal(t, StatusApproved, StatusForAction(ActionApprove))
	assert.Equal(t, StatusApproved, StatusForAction(ActionAutoApprove))
	assert.Equal(t, StatusHidden, StatusForAction(ActionKeepHidden))
	assert.Equal(t, StatusPendingReview, StatusForAction(ActionHumanReview))
}
