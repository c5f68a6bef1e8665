package moderation

import "regexp"

// The four pattern tables are static, compiled once, and never mutated.
// Matching everywhere is case-insensitive and word-bounded.

// highlyAbusiveWords are severe enough that a single direct-address use is
// conclusive on its own.
var highlyAbusiveWords = []string{"asshole", "bitch", "moron", "idiot"}

var highlyAbusiveIndex = func() map[string]struct{} {
	m := make(map[string]struct{}, len(highlyAbusiveWords))
	for _, w := range highlyAbusiveWords {
		m[w] = struct{}{}
	}
	return m
}()

// positiveContextPatterns capture benign uses of otherwise flagged words.
var positiveContextPatterns = compileAll(
	`(?i)\bfucking\s+(awesome|amazing|great|good|brilliant|incredible|fantastic|beautiful|love)\b`,
	`(?i)\bdamn\s+(good|great|fine|nice|impressive|delicious)\b`,
	`(?i)\b(stupid|dumb)\s+(simple|easy|obvious|question|mistake\s+of\s+mine)\b`,
	`(?i)\bcrazy\s+(good|awesome|talented)\b`,
	`(?i)\bhell\s+(yeah|yes|of\s+a\s+(job|game|show))\b`,
	`(?i)\bbad\s?ass\b`,
	`(?i)\bkick(s|ed|ing)?\s+ass\b`,
	`(?i)\bthe\s+shit\b`,
	`(?i)\bholy\s+(shit|crap)\b`,
)

// clearlyAbusivePatterns are phrase-level attacks that need no further
// context, including masked renderings of "fuck you".
var clearlyAbusivePatterns = compileAll(
	`(?i)\bfuck\s+(you|u|off|this|that)\b`,
	`(?i)\bf[*#@u]*c?k+\s+(you|u|off)\b`,
	`(?i)\bgo\s+to\s+hell\b`,
	`(?i)\b(burn|rot)\s+in\s+hell\b`,
	`(?i)\bkill\s+your\s?self\b`,
	`(?i)\bgo\s+die\b`,
	`(?i)\bpiece\s+of\s+(shit|crap|garbage)\b`,
	`(?i)\bwaste\s+of\s+(space|air|oxygen)\b`,
	`(?i)\byou\s+suck\b`,
	`(?i)\bscrew\s+you\b`,
	`(?i)\b(i\s+)?hate\s+you\b`,
	`(?i)\bshut\s+(the\s+(fuck|hell)\s+)?up\b`,
	`(?i)\bnobody\s+(likes|cares\s+about)\s+you\b`,
	`(?i)\bare\s+you\s+(stupid|dumb|blind|braindead)\b`,
)

// sarcasticIndicators are rhetorical question openers; they void the
// question-mark politeness bonus even without a clearly-abusive match.
var sarcasticIndicators = compileAll(
	`(?i)\bwhat\s+the\s+(hell|fuck|heck)\b`,
	`(?i)\bare\s+you\s+(stupid|dumb|serious|kidding|blind)\b`,
	`(?i)\bhow\s+(stupid|dumb)\b`,
)

// directAttackPatterns key second-person and isolated-utterance templates by
// each highly abusive word. The bare word on its own line matches none of
// these; that case is handled by the decision policy instead.
var directAttackPatterns = func() map[string][]*regexp.Regexp {
	out := make(map[string][]*regexp.Regexp, len(highlyAbusiveWords))
	for _, w := range highlyAbusiveWords {
		q := regexp.QuoteMeta(w)
		out[w] = compileAll(
			`(?i)\byou\s+(are\s+)?(an?\s+)?`+q+`\b`,
			`(?i)\byou'?re\s+(an?\s+)?`+q+`\b`,
			`(?i)\S\s+`+q+`\W*$`,
			`(?i)^\W*`+q+`\W+\S`,
		)
	}
	return out
}()

// hellPhrasePatterns keep the otherwise harmless "hell" flagged only when it
// is part of an actual attack phrase.
var hellPhrasePatterns = compileAll(
	`(?i)\bgo\s+to\s+hell\b`,
	`(?i)\bburn\s+in\s+hell\b`,
	`(?i)\brot\s+in\s+hell\b`,
)

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// IsHighlyAbusiveWord reports whether w is in the severe word set used by the
// direct-address patterns and the single-word policy rule.
func IsHighlyAbusiveWord(w string) bool {
	_, ok := highlyAbusiveIndex[w]
	return ok
}
