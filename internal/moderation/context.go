package moderation

import "strings"

var thanksTokens = []string{"thanks", "thank you", "thx"}

// AnalyzeContext computes the contextual signals for a text. Clearly-abusive
// phrase matches weigh double and direct-address hits triple relative to the
// other signals.
func AnalyzeContext(text string) ContextScore {
	var score ContextScore

	for _, p := range positiveContextPatterns {
		if p.MatchString(text) {
			score.PositiveContext++
		}
	}

	clearly := 0
	for _, p := range clearlyAbusivePatterns {
		if p.MatchString(text) {
			clearly++
		}
	}
	score.ClearlyAbusive = 2 * clearly

	highly := 0
	for _, patterns := range directAttackPatterns {
		for _, p := range patterns {
			if p.MatchString(text) {
				highly++
			}
		}
	}
	score.HighlyAbusive = 3 * highly

	score.Politeness = politenessScore(text, score.ClearlyAbusive)
	score.LikelyFalsePositive = score.PositiveContext > 0 && clearly == 0 && highly == 0
	return score
}

// politenessScore sums three independent signals: a genuine question, a
// "please", and a thanks token. Rhetorical questions earn nothing.
func politenessScore(text string, clearlyAbusive int) int {
	politeness := 0
	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(trimmed, "?") && !isSarcasticQuestion(text) && clearlyAbusive == 0 {
		politeness++
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "please") {
		politeness++
	}
	for _, t := range thanksTokens {
		if strings.Contains(lower, t) {
			politeness++
			break
		}
	}
	return politeness
}

func isSarcasticQuestion(text string) bool {
	for _, p := range sarcasticIndicators {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
