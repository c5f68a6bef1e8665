package moderation

import (
	"regexp"
	"strings"
)

// leetSubstitutions maps a letter to the symbols commonly used in its place.
var leetSubstitutions = map[rune]string{
	'a': "@4",
	'b': "8",
	'e': "3",
	'g': "9",
	'i': "1!",
	'l': "1",
	'o': "0",
	's': "$5",
	't': "7",
}

// maskSymbols may stand in for any letter of a masked word.
const maskSymbols = `*#`

// Matcher finds lexicon words in text under five obfuscation-tolerant
// strategies. All per-word patterns are compiled once at construction; Match
// is a pure read and safe for concurrent use.
type Matcher struct {
	entries []wordPatterns
}

type wordPatterns struct {
	word       string
	strategies []*regexp.Regexp
}

// NewMatcher compiles detection patterns for every word in the lexicon.
func NewMatcher(lex *Lexicon) *Matcher {
	words := lex.Words()
	m := &Matcher{entries: make([]wordPatterns, 0, len(words))}
	for _, w := range words {
		m.entries = append(m.entries, wordPatterns{
			word:       w,
			strategies: strategiesFor(w),
		})
	}
	return m
}

// Match returns the deduplicated set of flagged words found in text, in
// lexicon order. Strategies per word are tried in order and the first hit
// wins; the resulting set does not depend on that order.
func (m *Matcher) Match(text string) []string {
	var found []string
	for _, e := range m.entries {
		for _, p := range e.strategies {
			if p.MatchString(text) {
				found = append(found, e.word)
				break
			}
		}
	}
	return filterHell(found, text)
}

// filterHell drops the standalone "hell" match unless it is part of a real
// attack phrase. On its own it is treated as a harmless expletive.
func filterHell(found []string, text string) []string {
	idx := -1
	for i, w := range found {
		if w == "hell" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return found
	}
	for _, p := range hellPhrasePatterns {
		if p.MatchString(text) {
			return found
		}
	}
	return append(found[:idx], found[idx+1:]...)
}

func strategiesFor(word string) []*regexp.Regexp {
	patterns := []string{
		exactPattern(word),
		elongationPattern(word),
		substitutionPattern(word),
	}
	patterns = append(patterns, asteriskPatterns(word)...)
	patterns = append(patterns, spacingPattern(word))
	return compileAll(patterns...)
}

func exactPattern(word string) string {
	return `(?i)\b` + regexp.QuoteMeta(word) + `\b`
}

// elongationPattern lets every character repeat, so "stupid" also matches
// "stuuupid".
func elongationPattern(word string) string {
	var b strings.Builder
	b.WriteString(`(?i)\b`)
	for _, r := range word {
		b.WriteString(regexp.QuoteMeta(string(r)))
		b.WriteByte('+')
	}
	b.WriteString(`\b`)
	return b.String()
}

// substitutionPattern allows each letter to be written as itself, a leetspeak
// stand-in, or a masking symbol, so "stupid" also matches "$tupid" and
// "st*pid". Classes can match symbols at the word edges, so the boundary is a
// consuming group rather than \b. Mask symbols are excluded from the boundary
// or a long asterisk run would satisfy every class of a short word.
func substitutionPattern(word string) string {
	var b strings.Builder
	b.WriteString(`(?i)(?:^|[^a-z0-9_*#])`)
	for _, r := range word {
		if r >= 'a' && r <= 'z' {
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteString(leetSubstitutions[r])
			b.WriteString(maskSymbols)
			b.WriteByte(']')
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	b.WriteString(`(?:[^a-z0-9_*#]|$)`)
	return b.String()
}

// asteriskPatterns cover the "f**k" style of masking: first letter, a run of
// asterisks, last letter; and for longer words also the first two letters
// before the run.
func asteriskPatterns(word string) []string {
	runes := []rune(word)
	if len(runes) < 3 {
		return nil
	}
	first := regexp.QuoteMeta(string(runes[0]))
	last := regexp.QuoteMeta(string(runes[len(runes)-1]))
	out := []string{`(?i)\b` + first + `\*+` + last + `\b`}
	if len(runes) >= 4 {
		firstTwo := regexp.QuoteMeta(string(runes[:2]))
		out = append(out, `(?i)\b`+firstTwo+`\*+`+last+`\b`)
	}
	return out
}

// spacingPattern tolerates whitespace between the letters, so "stupid" also
// matches "s t u p i d".
func spacingPattern(word string) string {
	parts := make([]string, 0, len(word))
	for _, r := range word {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	return `(?i)\b` + strings.Join(parts, `\s*`) + `\b`
}
