package moderation

import (
	"bufio"
	"os"
	"strings"
)

// defaultWords is the built-in fallback used when no lexicon file is
// available at startup.
var defaultWords = []string{
	"stupid",
	"idiot",
	"moron",
	"dumb",
	"fool",
	"loser",
	"pathetic",
	"worthless",
	"disgusting",
	"ugly",
	"trash",
	"garbage",
	"asshole",
	"bitch",
	"bastard",
	"jerk",
	"scum",
	"creep",
	"fuck",
	"fucking",
	"shit",
	"crap",
	"damn",
	"hell",
	"suck",
}

// Lexicon is the immutable set of flagged words, loaded once at startup.
type Lexicon struct {
	words []string
	index map[string]struct{}
}

// NewLexicon builds a lexicon from raw entries. Entries are lowercased and
// trimmed; blanks and duplicates are dropped, first-seen order is kept.
func NewLexicon(entries []string) *Lexicon {
	l := &Lexicon{index: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		w := strings.ToLower(strings.TrimSpace(e))
		if w == "" {
			continue
		}
		if _, ok := l.index[w]; ok {
			continue
		}
		l.index[w] = struct{}{}
		l.words = append(l.words, w)
	}
	return l
}

// DefaultLexicon returns the built-in word set.
func DefaultLexicon() *Lexicon {
	return NewLexicon(defaultWords)
}

// LoadLexicon reads a line-delimited word file. Lines starting with "#" are
// treated as comments.
func LoadLexicon(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewLexicon(entries), nil
}

// Words returns the flagged words in load order.
func (l *Lexicon) Words() []string {
	out := make([]string, len(l.words))
	copy(out, l.words)
	return out
}

// Contains reports whether w is a flagged word.
func (l *Lexicon) Contains(w string) bool {
	_, ok := l.index[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// Len returns the number of flagged words.
func (l *Lexicon) Len() int { return len(l.words) }
