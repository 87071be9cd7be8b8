// Package outcome holds the immutable result of one multi-strategy search run.
package outcome

import (
	"time"

	"specbot/internal/domain/search/candidate"
	"specbot/internal/domain/search/strategy"
)

// Step records one executed strategy: the CQL it issued, how many new unique
// documents it contributed, and whether it failed.
type Step struct {
	strategy strategy.Name
	queries  []string
	found    int
	elapsed  time.Duration
	err      string
}

// NewStep creates a step record. err is empty for successful strategies.
func NewStep(st strategy.Name, queries []string, found int, elapsed time.Duration, err string) Step {
	return Step{strategy: st, queries: queries, found: found, elapsed: elapsed, err: err}
}

// Strategy returns the strategy name.
func (s *Step) Strategy() strategy.Name { return s.strategy }

// Queries returns the CQL strings the strategy issued.
func (s *Step) Queries() []string { return s.queries }

// Found returns the number of new unique documents the strategy contributed.
func (s *Step) Found() int { return s.found }

// Elapsed returns the strategy execution time.
func (s *Step) Elapsed() time.Duration { return s.elapsed }

// Err returns the failure message, or "" if the strategy succeeded.
func (s *Step) Err() string { return s.err }

// Failed reports whether the strategy failed.
func (s *Step) Failed() bool { return s.err != "" }

// Outcome is the ranked result of one search invocation.
type Outcome struct {
	query    string
	keywords []string
	results  []candidate.Candidate
	steps    []Step
	unique   int
	elapsed  time.Duration
}

// New creates a search outcome. unique is the total deduplicated count before
// truncation; results may be shorter when a limit applied.
func New(
	query string, keywords []string,
	results []candidate.Candidate, steps []Step,
	unique int, elapsed time.Duration,
) Outcome {
	return Outcome{
		query:    query,
		keywords: keywords,
		results:  results,
		steps:    steps,
		unique:   unique,
		elapsed:  elapsed,
	}
}

// Query returns the original query text.
func (o *Outcome) Query() string { return o.query }

// Keywords returns the normalized keywords the run used.
func (o *Outcome) Keywords() []string { return o.keywords }

// Results returns the scored candidates, best first.
func (o *Outcome) Results() []candidate.Candidate { return o.results }

// Steps returns the per-strategy execution records, in execution order.
func (o *Outcome) Steps() []Step { return o.steps }

// TotalUnique returns the deduplicated candidate count before truncation.
func (o *Outcome) TotalUnique() int { return o.unique }

// Elapsed returns the total run time.
func (o *Outcome) Elapsed() time.Duration { return o.elapsed }

// Empty reports whether the run produced no results at all.
func (o *Outcome) Empty() bool { return len(o.results) == 0 }

// Errored reports whether every executed strategy failed. Callers use this to
// tell "nothing found" apart from "the search itself broke".
func (o *Outcome) Errored() bool {
	if len(o.steps) == 0 {
		return false
	}
	for i := range o.steps {
		if !o.steps[i].Failed() {
			return false
		}
	}
	return true
}
