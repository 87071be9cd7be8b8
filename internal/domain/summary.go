package domain

// Summary carries a generated answer and its token usage.
type Summary struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
