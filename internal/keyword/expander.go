package keyword

import "strings"

// MaxRelatedTerms caps fallback query fan-out.
const MaxRelatedTerms = 5

// Expander widens a keyword list through the synonym table. Used only by the
// fallback strategy once the precise strategies came up empty.
type Expander struct {
	vocab Vocabulary
}

// NewExpander creates an expander over the given vocabulary.
func NewExpander(v Vocabulary) *Expander {
	return &Expander{vocab: v}
}

// Related returns up to MaxRelatedTerms synonym-table terms for the keywords:
// exact key hits first, then bidirectional substring key matches. The input
// keywords themselves are excluded, duplicates keep their first position.
// Iteration over the table follows sorted key order so the same keywords
// always expand to the same terms in the same order.
func (e *Expander) Related(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}

	original := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		original[k] = struct{}{}
	}

	var related []string
	seen := make(map[string]struct{})
	add := func(terms []string) {
		for _, t := range terms {
			if _, dup := seen[t]; dup {
				continue
			}
			if _, own := original[t]; own {
				continue
			}
			seen[t] = struct{}{}
			related = append(related, t)
		}
	}

	for _, kw := range keywords {
		if terms, ok := e.vocab.synonyms[kw]; ok {
			add(terms)
		}
		for _, key := range e.vocab.keys {
			if strings.Contains(key, kw) || strings.Contains(kw, key) {
				add(e.vocab.synonyms[key])
			}
		}
	}

	if len(related) > MaxRelatedTerms {
		related = related[:MaxRelatedTerms]
	}
	return related
}
