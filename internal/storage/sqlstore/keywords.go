package sqlstore

import (
	"sort"
	"strings"

	"opportunity-finder/internal/models"
)

const maxKeywords = 100

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`what this that with from have will your there their about would
		which when make like just into over such than them been some could more very after most also
		made then well back only come being were much where does here need help looking best good
		want anyone know find tool`) {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether w is excluded from the keyword cloud.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// keywordToken lowercases a whitespace-separated token and reports whether it
// counts as a keyword: ASCII letters only, longer than three, not a stop word.
// Tokens carrying punctuation are dropped rather than stripped.
func keywordToken(tok string) (string, bool) {
	w := strings.ToLower(tok)
	if len(w) <= 3 {
		return "", false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return "", false
		}
	}
	if IsStopWord(w) {
		return "", false
	}
	return w, true
}

// keywordCounter tallies keywords across titles.
type keywordCounter map[string]int64

func (c keywordCounter) add(title string) {
	for _, tok := range strings.Fields(title) {
		if w, ok := keywordToken(tok); ok {
			c[w]++
		}
	}
}

// top returns at most n keywords, most frequent first, ties alphabetical.
func (c keywordCounter) top(n int) []models.KeywordCount {
	out := make([]models.KeywordCount, 0, len(c))
	for w, cnt := range c {
		out = append(out, models.KeywordCount{Word: w, Count: cnt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// CountKeywords builds the keyword cloud for a set of titles.
func CountKeywords(titles []string) []models.KeywordCount {
	c := keywordCounter{}
	for _, t := range titles {
		c.add(t)
	}
	return c.top(maxKeywords)
}
