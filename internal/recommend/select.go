package recommend

import (
	"github.com/spigell/job-recommender/internal/corpus"
	"github.com/spigell/job-recommender/internal/ranking"
)

// Select walks ranked in order and keeps the first record for every posting
// URL until n jobs are collected or ranked is exhausted.
func Select(ranked []ranking.Scored, c *corpus.Corpus, n int) []Job {
	if n <= 0 {
		return []Job{}
	}

	jobs := make([]Job, 0, min(n, len(ranked)))
	seen := make(map[string]struct{}, len(ranked))

	for _, s := range ranked {
		if len(jobs) >= n {
			break
		}

		r, ok := c.Get(s.ID)
		if !ok {
			continue
		}
		if _, dup := seen[r.URL]; dup {
			continue
		}
		seen[r.URL] = struct{}{}

		jobs = append(jobs, Job{
			Title:    r.Title,
			Company:  r.Company,
			Location: r.Location,
			URL:      r.URL,
		})
	}

	return jobs
}
