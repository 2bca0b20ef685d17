package corpus

// JobRecord is a single job posting as supplied by the ingestion layer.
type JobRecord struct {
	ID       int    `json:"-"`
	Title    string `json:"title"`
	Company  string `json:"company_name"`
	Location string `json:"location"`
	URL      string `json:"job_posting_url"`
}

// Corpus is an immutable, dense-indexed collection of job records.
// Record i has ID i, matching row and column i of the similarity matrix.
type Corpus struct {
	records []JobRecord
}

// New copies records into a corpus, assigning identifiers 0..len-1 in order.
func New(records []JobRecord) *Corpus {
	items := make([]JobRecord, len(records))
	for i, r := range records {
		r.ID = i
		items[i] = r
	}
	return &Corpus{records: items}
}

func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Get returns the record with the given identifier.
func (c *Corpus) Get(id int) (JobRecord, bool) {
	if id < 0 || id >= c.Len() {
		return JobRecord{}, false
	}
	return c.records[id], true
}

// Each calls fn for every record in identifier order.
func (c *Corpus) Each(fn func(JobRecord)) {
	if c == nil {
		return
	}
	for _, r := range c.records {
		fn(r)
	}
}

// DuplicateURLs counts records whose posting URL already appeared earlier in the corpus.
func (c *Corpus) DuplicateURLs() int {
	seen := make(map[string]struct{}, c.Len())
	dups := 0
	c.Each(func(r JobRecord) {
		if _, ok := seen[r.URL]; ok {
			dups++
			return
		}
		seen[r.URL] = struct{}{}
	})
	return dups
}
