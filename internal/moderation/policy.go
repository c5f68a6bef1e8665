package moderation

import "strings"

// Decide folds the match set and context score into a single verdict. The
// rules form a frozen decision table evaluated in strict order with fixed
// per-rule confidences; nothing here is computed or tunable.
func Decide(text string, matches []string, score ContextScore) AbuseVerdict {
	if strings.TrimSpace(text) == "" {
		return AbuseVerdict{
			Action: ActionApprove,
			Reason: ReasonEmptyText,
		}
	}

	if len(matches) == 0 {
		if score.ClearlyAbusive > 0 || score.HighlyAbusive > 0 {
			// A phrase-level pattern fired without any literal word match.
			matches = []string{PhraseAbuse}
		} else {
			return AbuseVerdict{
				FlaggedWords: matches,
				Action:       ActionApprove,
				Reason:       ReasonNoAbusiveWords,
			}
		}
	}

	if score.ClearlyAbusive > 0 || score.HighlyAbusive > 0 || len(matches) >= 3 {
		return AbuseVerdict{
			IsAbusive:    1,
			Confidence:   0.95,
			FlaggedWords: matches,
			Action:       ActionKeepHidden,
			Reason:       ReasonClearlyAbusive,
		}
	}

	if score.LikelyFalsePositive {
		return AbuseVerdict{
			Confidence:   0.3,
			FlaggedWords: matches,
			Action:       ActionAutoApprove,
			Reason:       ReasonPositiveContext,
		}
	}

	if len(matches) == 1 && score.Politeness > 0 {
		return AbuseVerdict{
			Confidence:   0.4,
			FlaggedWords: matches,
			Action:       ActionAutoApprove,
			Reason:       ReasonPoliteTone,
		}
	}

	if len(matches) == 1 && IsHighlyAbusiveWord(matches[0]) {
		return AbuseVerdict{
			IsAbusive:    1,
			Confidence:   0.8,
			FlaggedWords: matches,
			Action:       ActionKeepHidden,
			Reason:       ReasonHighRiskWord,
		}
	}

	return AbuseVerdict{
		IsAbusive:    1,
		Confidence:   0.6,
		FlaggedWords: matches,
		Action:       ActionHumanReview,
		Reason:       ReasonUncertainContext,
	}
}

// StatusForAction maps an auto-review action to the persisted comment status.
func StatusForAction(action string) string {
	switch action {
	case ActionKeepHidden:
		return StatusHidden
	case ActionHumanReview:
		return StatusPendingReview
	default:
		return StatusApproved
	}
}
