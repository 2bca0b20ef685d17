package filtering

import (
	"go.uber.org/zap"

	"github.com/spigell/job-recommender/internal/corpus"
)

// Filter represents a single candidate selection pass over the corpus.
type Filter interface {
	Name() string
	Apply(q Query, c *corpus.Corpus) ([]int, Step)
}

// Query holds the normalized title and location needles.
type Query struct {
	Title    string
	Location string
}

// Step describes the result of executing a filtering pass.
type Step struct {
	Name    string
	Initial int
	Dropped int
	Left    int
}

// Outcome is the result of running the passes against a corpus.
type Outcome struct {
	// IDs are candidate identifiers in corpus order.
	IDs []int
	// Pass names the filter that produced IDs. Empty when nothing matched.
	Pass  string
	Steps []Step
}

// Empty reports whether no pass produced a candidate.
func (o Outcome) Empty() bool {
	return len(o.IDs) == 0
}

// Run applies primary and, only when it yields nothing, fallback.
func Run(q Query, c *corpus.Corpus, primary, fallback Filter, logger *zap.Logger) Outcome {
	if logger == nil {
		logger = zap.NewNop()
	}

	var out Outcome
	for _, step := range []Filter{primary, fallback} {
		if step == nil {
			continue
		}

		ids, info := step.Apply(q, c)
		out.Steps = append(out.Steps, info)

		logger.Debug("filter step",
			zap.String("name", info.Name),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		if len(ids) > 0 {
			out.IDs = ids
			out.Pass = step.Name()
			return out
		}
	}

	return out
}

// Candidates runs the default primary and fallback passes.
func Candidates(q Query, c *corpus.Corpus, logger *zap.Logger) Outcome {
	return Run(q, c, NewPrimary(), NewFallback(), logger)
}
