package recommend

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/job-recommender/internal/corpus"
	"github.com/spigell/job-recommender/internal/filtering"
	"github.com/spigell/job-recommender/internal/logger"
	"github.com/spigell/job-recommender/internal/ranking"
	"github.com/spigell/job-recommender/internal/text"
)

const (
	DefaultTopN = 5
	MinTopN     = 1
	MaxTopN     = 10
)

// ErrInvalidTopN is returned when the requested result count is out of range.
var ErrInvalidTopN = errors.New("top_n is out of range")

// Query is a single recommendation request.
type Query struct {
	Title    string
	Location string
	// TopN is the maximum number of results. Zero means DefaultTopN.
	TopN int
}

// Job is a display-ready recommendation.
type Job struct {
	Title    string `json:"Title"`
	Company  string `json:"Company"`
	Location string `json:"Location"`
	URL      string `json:"URL"`
}

// Result is the outcome of a recommendation request.
type Result struct {
	Query Query `json:"-"`
	// Pass names the filter pass that produced the candidates.
	Pass       string `json:"pass,omitempty"`
	Candidates int    `json:"candidates"`
	Jobs       []Job  `json:"jobs"`
}

// NoMatch reports whether no record survived either filter pass. A matched
// result always carries at least one job.
func (r *Result) NoMatch() bool {
	return r == nil || r.Candidates == 0
}

// Engine serves recommendations over a fixed corpus and similarity matrix.
// It never mutates its artifacts, so Recommend is safe for concurrent use.
type Engine struct {
	corpus *corpus.Corpus
	matrix *corpus.Matrix
	logger *zap.Logger
}

// New builds an engine from validated artifacts.
func New(a *corpus.Artifacts, log *zap.Logger) (*Engine, error) {
	if a == nil {
		return nil, errors.New("artifacts are required")
	}
	if err := corpus.Validate(a.Corpus, a.Matrix); err != nil {
		return nil, err
	}

	return &Engine{
		corpus: a.Corpus,
		matrix: a.Matrix,
		logger: logger.WithFields(log),
	}, nil
}

// Recommend returns up to q.TopN jobs whose title and location contain the
// query, ordered by centrality within the matched set and unique by URL.
// Empty title or location match every record.
func (e *Engine) Recommend(q Query) (*Result, error) {
	if q.TopN == 0 {
		q.TopN = DefaultTopN
	}
	if q.TopN < MinTopN || q.TopN > MaxTopN {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidTopN, q.TopN, MinTopN, MaxTopN)
	}

	log := logger.WithRequest(e.logger, q.Title, q.Location, q.TopN)

	fq := filtering.Query{
		Title:    text.Normalize(q.Title),
		Location: text.Normalize(q.Location),
	}

	outcome := filtering.Candidates(fq, e.corpus, log)
	if outcome.Empty() {
		log.Info("no matching jobs")
		return &Result{Query: q}, nil
	}

	ranked := ranking.Rank(outcome.IDs, e.matrix)
	jobs := Select(ranked, e.corpus, q.TopN)

	log.Info("recommendations ready",
		zap.String("pass", outcome.Pass),
		zap.Int("candidates", len(outcome.IDs)),
		zap.Int("results", len(jobs)),
	)

	return &Result{
		Query:      q,
		Pass:       outcome.Pass,
		Candidates: len(outcome.IDs),
		Jobs:       jobs,
	}, nil
}

// Size returns the number of records the engine serves.
func (e *Engine) Size() int {
	return e.corpus.Len()
}
