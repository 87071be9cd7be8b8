package strategy

// Name identifies one search strategy.
type Name string

// Strategy name constants, in execution order.
const (
	// TitlePriority matches the raw query against page titles.
	TitlePriority Name = "title_priority"
	KeywordSplit  Name = "keyword_split"
	PhraseSearch  Name = "phrase_search"
	PartialMatch  Name = "partial_match"
	// Fallback widens via related terms, then most recently modified pages.
	Fallback Name = "fallback"
)

// All returns the strategy names in execution order.
func All() []Name {
	return []Name{TitlePriority, KeywordSplit, PhraseSearch, PartialMatch, Fallback}
}

// IsValid checks if the name is one of the supported strategies.
func (n Name) IsValid() bool {
	switch n {
	case TitlePriority, KeywordSplit, PhraseSearch, PartialMatch, Fallback:
		return true
	}
	return false
}

// Bonus returns the ranking bonus awarded to candidates first discovered
// by this strategy. Earlier, more precise strategies earn more.
func (n Name) Bonus() int {
	switch n {
	case TitlePriority:
		return 15
	case KeywordSplit:
		return 10
	case PhraseSearch:
		return 5
	default:
		return 0
	}
}
