package filtering

import (
	"strings"

	"github.com/spigell/job-recommender/internal/corpus"
	"github.com/spigell/job-recommender/internal/text"
)

const (
	PrimaryName  = "primary"
	FallbackName = "fallback"
)

// matchFunc decides whether a record satisfies the query.
type matchFunc func(q Query, r corpus.JobRecord) bool

type containsFilter struct {
	name  string
	match matchFunc
}

// NewPrimary creates the strict pass: the query title and location must be
// case-insensitive substrings of the record's title and location.
func NewPrimary() Filter {
	return &containsFilter{name: PrimaryName, match: matchPrimary}
}

// NewFallback creates the relaxed pass: the location needle is searched in
// the fully normalized record location, ignoring punctuation and digits.
func NewFallback() Filter {
	return &containsFilter{name: FallbackName, match: matchFallback}
}

func (f *containsFilter) Name() string { return f.name }

func (f *containsFilter) Apply(q Query, c *corpus.Corpus) ([]int, Step) {
	var ids []int
	c.Each(func(r corpus.JobRecord) {
		if f.match(q, r) {
			ids = append(ids, r.ID)
		}
	})

	initial := c.Len()
	return ids, Step{Name: f.name, Initial: initial, Dropped: initial - len(ids), Left: len(ids)}
}

func matchPrimary(q Query, r corpus.JobRecord) bool {
	return titleMatches(q, r) && strings.Contains(text.Lower(r.Location), q.Location)
}

func matchFallback(q Query, r corpus.JobRecord) bool {
	return titleMatches(q, r) && strings.Contains(text.Normalize(r.Location), q.Location)
}

func titleMatches(q Query, r corpus.JobRecord) bool {
	return strings.Contains(text.Lower(r.Title), q.Title)
}
