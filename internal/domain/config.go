package domain

// SummaryConfig holds internal answer-generation settings, not exposed to clients.
type SummaryConfig struct {
	Model           string
	Temperature     float32
	MaxAnswerTokens int
	MaxContextDocs  int
	MaxExcerptRunes int
}

// DefaultSummaryConfig returns the generation defaults tuned for short spec answers.
func DefaultSummaryConfig() SummaryConfig {
	return SummaryConfig{
		Model:           "gpt-4o-mini",
		Temperature:     0.3,
		MaxAnswerTokens: 2048,
		MaxContextDocs:  5,
		MaxExcerptRunes: 500,
	}
}
