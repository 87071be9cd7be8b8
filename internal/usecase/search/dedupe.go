package search

import (
	"go.uber.org/zap"

	"specbot/internal/domain/search/candidate"
	"specbot/internal/domain/search/record"
	"specbot/internal/domain/search/strategy"
)

// dedupe folds strategy outputs into one candidate list. A document belongs
// to the strategy that found it first; records without a resolvable id are
// logged and dropped. State is local to one run.
type dedupe struct {
	seen   map[string]struct{}
	kept   []candidate.Candidate
	logger *zap.Logger
}

func newDedupe(logger *zap.Logger) *dedupe {
	return &dedupe{seen: make(map[string]struct{}), logger: logger}
}

// absorb merges one strategy's raw records and returns how many new unique
// documents the batch contributed.
func (d *dedupe) absorb(records []record.Record, st strategy.Name) int {
	added := 0
	for i := range records {
		rec := &records[i]

		id := rec.ResolveID()
		if id == "" {
			d.logger.Warn("Skipping search result without id",
				zap.String("strategy", string(st)),
				zap.String("title", rec.ResolveTitle()),
			)
			continue
		}
		if _, dup := d.seen[id]; dup {
			continue
		}
		d.seen[id] = struct{}{}

		d.kept = append(d.kept, candidate.New(
			id,
			rec.ResolveTitle(),
			rec.ResolveURL(),
			rec.Excerpt,
			rec.ResolveSpaceKey(),
			rec.ResolveLastModified(),
			st,
		))
		added++
	}
	return added
}
