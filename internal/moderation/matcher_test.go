package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestMatcher() *Matcher {
	return NewMatcher(DefaultLexicon())
}

func TestMatcherExact(t *testing.T) {
	m := newTestMatcher()
	assert.Equal(t, []string{"stupid"}, m.Match("you are so stupid sometimes"))
	assert.Empty(t, m.Match("a perfectly fine comment"))
}

func TestMatcherCaseInsensitive(t *testing.T) {
	m := newTestMatcher()
	assert.Equal(t, []string{"stupid"}, m.Match("STUPID take"))
}

func TestMatcherWordBoundary(t *testing.T) {
	m := newTestMatcher()
	// "class" contains "ass" but nothing flagged; "fucking" must not also
	// report "fuck".
	assert.Empty(t, m.Match("attending class today"))
	assert.Equal(t, []string{"fucking"}, m.Match("This is fucking awesome!"))
}

func TestMatcherElongation(t *testing.T) {
	m := newTestMatcher()
	assert.Equal(t, []string{"stupid"}, m.Match("that is stuuuupid"))
	assert.Equal(t, []string{"idiot"}, m.Match("iiidiooot"))
}

func TestMatcherSubstitution(t *testing.T) {
	m := newTestMatcher()
	assert.Equal(t, []string{"stupid"}, m.Match("what a $tupid idea"))
	assert.Equal(t, []string{"stupid"}, m.Match("st*pid take"))
	assert.Equal(t, []string{"idiot"}, m.Match("1d1ot"))
}

func TestMatcherAsteriskMasking(t *testing.T) {
	m := newTestMatcher()
	assert.Equal(t, []string{"fuck"}, m.Match("f**k this"))
	assert.Equal(t, []string{"fuck"}, m.Match("fu**k this"))
	assert.Equal(t, []string{"shit"}, m.Match("that is sh*****t"))
}

func TestMatcherSpacing(t *testing.T) {
	m := newTestMatcher()
	assert.Equal(t, []string{"stupid"}, m.Match("s t u p i d"))
}

func TestMatcherDeduplicates(t *testing.T) {
	m := newTestMatcher()
	// Same word under two strategies is reported once.
	assert.Equal(t, []string{"stupid"}, m.Match("stupid and stuuupid"))
}

func TestMatcherHellFilter(t *testing.T) {
	m := newTestMatcher()

	// "hell" alone is a harmless expletive.
	assert.Empty(t, m.Match("what the hell"))
	assert.Empty(t, m.Match("hell of a ride"))

	// Inside an attack phrase it stays flagged.
	assert.Equal(t, []string{"hell"}, m.Match("go to hell"))
	assert.Equal(t, []string{"hell"}, m.Match("you can burn in hell"))
	assert.Equal(t, []string{"hell"}, m.Match("rot in hell"))
}

func TestMatcherMultipleWords(t *testing.T) {
	m := newTestMatcher()
	found := m.Match("stupid dumb trash take")
	assert.ElementsMatch(t, []string{"stupid", "dumb", "trash"}, found)
}
