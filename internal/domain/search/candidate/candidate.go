package candidate

import "specbot/internal/domain/search/strategy"

// Candidate is a deduplicated search hit attributed to the strategy that
// first discovered it. The score is zero until ranking assigns one.
type Candidate struct {
	id           string
	title        string
	url          string
	excerpt      string
	space        string
	lastModified string
	strategy     strategy.Name
	score        int
}

// New creates a candidate.
func New(
	id, title, url, excerpt, space, lastModified string,
	st strategy.Name,
) Candidate {
	return Candidate{
		id: id, title: title, url: url, excerpt: excerpt,
		space: space, lastModified: lastModified, strategy: st,
	}
}

// Scored returns a copy of the candidate with the given relevance score.
func (c Candidate) Scored(score int) Candidate {
	c.score = score
	return c
}

// ID returns the document identifier.
func (c *Candidate) ID() string { return c.id }

// Title returns the document title.
func (c *Candidate) Title() string { return c.title }

// URL returns the absolute page URL.
func (c *Candidate) URL() string { return c.url }

// Excerpt returns the highlight snippet from the remote API.
func (c *Candidate) Excerpt() string { return c.excerpt }

// Space returns the space key.
func (c *Candidate) Space() string { return c.space }

// LastModified returns the last-modification timestamp as reported remotely.
func (c *Candidate) LastModified() string { return c.lastModified }

// Strategy returns the strategy that first discovered the document.
func (c *Candidate) Strategy() strategy.Name { return c.strategy }

// Score returns the relevance score.
func (c *Candidate) Score() int { return c.score }
