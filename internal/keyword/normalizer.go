package keyword

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalization limits.
const (
	// MaxKeywords bounds query fan-out across strategies.
	MaxKeywords = 5
	// MinKeywordRunes is the shortest token worth searching for.
	MinKeywordRunes = 2
)

// Characters that terminate a token: common punctuation in both widths plus
// single-character particles, which written Japanese does not delimit with
// spaces.
const splitRunes = "、。，．・！？；：（）「」『』【】,.!?;:()[]"

const particleRunes = "のをがはにへでとも"

// Normalizer derives an ordered keyword list from a free-text question.
// Deterministic and side-effect free; safe for concurrent use.
type Normalizer struct {
	vocab    Vocabulary
	compound []*regexp.Regexp
}

// NewNormalizer creates a normalizer over the given vocabulary.
func NewNormalizer(v Vocabulary) *Normalizer {
	compound := make([]*regexp.Regexp, 0, len(v.Suffixes()))
	for _, s := range v.Suffixes() {
		compound = append(compound, regexp.MustCompile(`([\p{L}\p{N}_]+)`+regexp.QuoteMeta(s)))
	}
	return &Normalizer{vocab: v, compound: compound}
}

// Normalize tokenizes the query and returns at most MaxKeywords keywords in
// their original order: compounds are split on known suffixes (ログイン機能 →
// ログイン 機能), tokens shorter than two runes and stop words are dropped,
// duplicates keep their first position. A query of nothing but stop words
// yields an empty list.
func (n *Normalizer) Normalize(query string) []string {
	query = n.splitCompounds(strings.TrimSpace(query))

	tokens := strings.FieldsFunc(query, isTokenBoundary)

	keywords := make([]string, 0, MaxKeywords)
	seen := make(map[string]struct{}, MaxKeywords)
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if utf8.RuneCountInString(tok) < MinKeywordRunes || n.vocab.IsStopWord(tok) {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		keywords = append(keywords, tok)
		if len(keywords) == MaxKeywords {
			break
		}
	}
	return keywords
}

// splitCompounds inserts a space before every known compound suffix so that
// ログイン機能 tokenizes as two keywords. Required for keyword-split to fire
// on unsegmented Japanese.
func (n *Normalizer) splitCompounds(query string) string {
	for i, re := range n.compound {
		query = re.ReplaceAllString(query, "$1 "+n.vocab.Suffixes()[i])
	}
	return query
}

func isTokenBoundary(r rune) bool {
	return unicode.IsSpace(r) ||
		strings.ContainsRune(splitRunes, r) ||
		strings.ContainsRune(particleRunes, r)
}
