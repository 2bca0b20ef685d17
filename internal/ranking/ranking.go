package ranking

import (
	"sort"

	"github.com/spigell/job-recommender/internal/corpus"
)

// Scored is a candidate identifier with its centrality score.
type Scored struct {
	ID    int
	Score float64
}

// Rank scores every candidate by its mean similarity to all candidates in
// ids, itself included, and orders them by descending score. Equal scores
// keep the relative order of ids.
func Rank(ids []int, m *corpus.Matrix) []Scored {
	scored := make([]Scored, 0, len(ids))
	if len(ids) == 0 {
		return scored
	}

	for _, i := range ids {
		var sum float64
		for _, j := range ids {
			sum += m.At(i, j)
		}
		scored = append(scored, Scored{ID: i, Score: sum / float64(len(ids))})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})

	return scored
}
