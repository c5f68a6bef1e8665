package moderation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func historyOf(texts ...string) []HistoryComment {
	out := make([]HistoryComment, len(texts))
	for i, txt := range texts {
		out[i] = HistoryComment{ID: fmt.Sprintf("c%d", i+1), Text: txt, Status: StatusApproved}
	}
	return out
}

func repeated(text string, n int) []HistoryComment {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = text
	}
	return historyOf(texts...)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("hello world", "hello world"))
	assert.Equal(t, 1.0, Similarity("  Hello World ", "hello world"))
	assert.Less(t, Similarity("hello world", "goodbye moon"), 0.5)
	assert.GreaterOrEqual(t, Similarity("this is a great post", "this is a great post!!!"), 0.85)
}

func TestIsPromotionalContent(t *testing.T) {
	promotional := []string{
		"Check out my new channel",
		"buy now while stocks last",
		"DM me for details",
		"visit https://example.com today",
		"more at www.example.com",
		"huge discount this week",
	}
	for _, text := range promotional {
		assert.Truef(t, IsPromotionalContent(text), "expected promotional: %q", text)
	}

	clean := []string{
		"really enjoyed this post",
		"what a thoughtful take",
	}
	for _, text := range clean {
		assert.Falsef(t, IsPromotionalContent(text), "expected clean: %q", text)
	}
}

func TestDetectSpamAllow(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil, nil)
	v := eng.DetectSpam("really enjoyed this post", nil)
	assert.False(t, v.IsSpam)
	assert.Equal(t, SpamActionAllow, v.Action)
	assert.Zero(t, v.Confidence)
	assert.Empty(t, v.Reasons)
}

func TestDetectSpamPromotionalCascade(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil, nil)
	promo := "Check out my channel for more"

	// 1st through 3rd occurrence pass.
	for prior := 0; prior <= 2; prior++ {
		v := eng.DetectSpam(promo, repeated(promo, prior))
		assert.Equalf(t, SpamActionAllow, v.Action, "prior=%d", prior)
	}

	// 4th occurrence warns.
	v := eng.DetectSpam(promo, repeated(promo, 3))
	assert.False(t, v.IsSpam)
	assert.Equal(t, SpamActionWarning, v.Action)
	assert.Equal(t, 50, v.Confidence)
	assert.Equal(t, []string{SpamReasonPromotionalWarning}, v.Reasons)
	assert.Contains(t, v.Message, "4 times")

	// 5th occurrence hides everything.
	v = eng.DetectSpam(promo, repeated(promo, 4))
	assert.True(t, v.IsSpam)
	assert.Equal(t, SpamActionAutoHide, v.Action)
	assert.Equal(t, 95, v.Confidence)
	assert.True(t, v.HideAll)
	assert.Len(t, v.SimilarCommentIDs, 4)
	assert.Equal(t, []string{SpamReasonPromotionalRepetition}, v.Reasons)
	assert.Contains(t, v.Message, "5 times")
}

func TestDetectSpamPlainRepetitionCascade(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil, nil)
	text := "really enjoyed this post"

	// 1st through 5th occurrence pass.
	for prior := 0; prior <= 4; prior++ {
		v := eng.DetectSpam(text, repeated(text, prior))
		assert.Equalf(t, SpamActionAllow, v.Action, "prior=%d", prior)
	}

	// 6th occurrence warns.
	v := eng.DetectSpam(text, repeated(text, 5))
	assert.False(t, v.IsSpam)
	assert.Equal(t, SpamActionWarning, v.Action)
	assert.Equal(t, []string{SpamReasonRepetitionWarning}, v.Reasons)
	assert.Contains(t, v.Message, "6 times")

	// 7th occurrence is spam; only this comment is hidden.
	v = eng.DetectSpam(text, repeated(text, 6))
	assert.True(t, v.IsSpam)
	assert.Equal(t, SpamActionAutoHide, v.Action)
	assert.Equal(t, 100, v.Confidence)
	assert.False(t, v.HideAll)
	assert.Empty(t, v.SimilarCommentIDs)
	assert.Equal(t, []string{SpamReasonExcessiveRepetition}, v.Reasons)
}

func TestDetectSpamRepetitionCountIsMaxOfBuckets(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil, nil)
	text := "really enjoyed reading this post"
	prior := historyOf(
		"really enjoyed reading this post",
		"Really enjoyed reading this post",
		"really enjoyed reading this post!",
		"really enjoyed reading this post!!",
		"really enjoyed reading this post :)",
	)
	// 2 exact (case-folded) and 3 near-duplicates; the repetition count is
	// the larger bucket, not the sum, so this stays below the warning line.
	v := eng.DetectSpam(text, prior)
	assert.Equal(t, SpamActionAllow, v.Action)
}

func TestDetectSpamNearDuplicatesTriggerWarning(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil, nil)
	text := "really enjoyed reading this post"
	prior := historyOf(
		"really enjoyed reading this post!",
		"really enjoyed reading this post!!",
		"really enjoyed reading this post :)",
		"really enjoyed reading this post ...",
		"really enjoyed reading this post ;)",
	)
	v := eng.DetectSpam(text, prior)
	assert.Equal(t, SpamActionWarning, v.Action)
	assert.Equal(t, []string{SpamReasonRepetitionWarning}, v.Reasons)
}

func TestDetectSpamIgnoresDissimilarHistory(t *testing.T) {
	eng := NewEngine(DefaultConfig(), nil, nil)
	prior := historyOf(
		"first impression of the article",
		"a completely different thought",
		"third unrelated remark here",
	)
	v := eng.DetectSpam("really enjoyed this post", prior)
	assert.Equal(t, SpamActionAllow, v.Action)
}
