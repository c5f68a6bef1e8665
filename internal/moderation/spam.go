package moderation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

var promotionalKeywords = []string{
	"check out my", "visit my", "click here", "buy now",
	"follow me", "subscribe to", "check my profile", "dm me",
	"whatsapp", "telegram", "link in bio", "follow for follow",
	"check this out", "visit here", "my website", "my channel",
	"discount", "limited offer", "earn money", "work from home",
}

var urlPattern = regexp.MustCompile(`https?://\S+|www\.\S+|\S+\.(com|net|org|io|co)\S*`)

// Similarity returns the sequence-match ratio of two texts after case folding
// and trimming, in [0, 1].
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1.0
	}
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

// IsPromotionalContent reports whether text carries promotional phrases or
// URL-like tokens.
func IsPromotionalContent(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range promotionalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return urlPattern.MatchString(lower)
}

// DetectSpam evaluates a submission against the user's prior comments on the
// same post. Promotional repetition is punished retroactively (all counted
// repeats are handed back for hiding); plain repetition only going forward.
//
// Thresholds are prior-repeat counts: a promotional text warns on its 4th
// occurrence and hides everything on the 5th; any text warns on its 6th
// occurrence and hides on the 7th.
func (e *Engine) DetectSpam(text string, prior []HistoryComment) SpamVerdict {
	clean := strings.TrimSpace(text)

	exactCount := 0
	similarCount := 0
	var similarIDs []string
	for _, c := range prior {
		ratio := Similarity(clean, c.Text)
		switch {
		case ratio == 1.0:
			exactCount++
			similarIDs = append(similarIDs, c.ID)
		case ratio >= e.cfg.SimilarityThreshold:
			similarCount++
			similarIDs = append(similarIDs, c.ID)
		}
	}

	promotional := IsPromotionalContent(clean)
	total := max(exactCount, similarCount)

	if promotional && total >= e.cfg.PromotionalHideRepeats {
		return SpamVerdict{
			IsSpam:            true,
			Reasons:           []string{SpamReasonPromotionalRepetition},
			Confidence:        95,
			Action:            SpamActionAutoHide,
			HideAll:           true,
			SimilarCommentIDs: similarIDs,
			Message: fmt.Sprintf(
				"Spam detected: promotional content repeated %d times on this post. All promotional comments have been hidden.",
				total+1),
		}
	}

	if total >= e.cfg.RepetitionHideRepeats {
		return SpamVerdict{
			IsSpam:     true,
			Reasons:    []string{SpamReasonExcessiveRepetition},
			Confidence: 100,
			Action:     SpamActionAutoHide,
			Message: fmt.Sprintf(
				"Spam detected: comment repeated %d times on this post. Recent repetitive comments have been hidden.",
				total+1),
		}
	}

	if promotional && total >= e.cfg.PromotionalWarnRepeats {
		return SpamVerdict{
			Reasons:    []string{SpamReasonPromotionalWarning},
			Confidence: 50,
			Action:     SpamActionWarning,
			Message: fmt.Sprintf(
				"Warning: you have posted similar promotional content %d times on this post. One more repetition will result in all promotional comments being hidden.",
				total+1),
		}
	}

	if total >= e.cfg.RepetitionWarnRepeats {
		return SpamVerdict{
			Reasons:    []string{SpamReasonRepetitionWarning},
			Confidence: 50,
			Action:     SpamActionWarning,
			Message: fmt.Sprintf(
				"Warning: you have posted similar comments %d times on this post. Further repetition will result in spam detection.",
				total+1),
		}
	}

	return SpamVerdict{
		Action:  SpamActionAllow,
		Message: "No spam detected",
	}
}
