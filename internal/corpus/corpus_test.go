package corpus

import (
	"errors"
	"math"
	"testing"
)

func TestNewAssignsDenseIDs(t *testing.T) {
	c := New([]JobRecord{
		{ID: 42, Title: "Go Developer"},
		{ID: 7, Title: "Data Engineer"},
	})

	if c.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", c.Len())
	}

	for id := 0; id < c.Len(); id++ {
		r, ok := c.Get(id)
		if !ok {
			t.Fatalf("expected record %d", id)
		}
		if r.ID != id {
			t.Fatalf("expected id %d, got %d", id, r.ID)
		}
	}

	if _, ok := c.Get(2); ok {
		t.Fatalf("did not expect record past the end")
	}
	if _, ok := c.Get(-1); ok {
		t.Fatalf("did not expect record with negative id")
	}
}

func TestNilCorpus(t *testing.T) {
	var c *Corpus
	if c.Len() != 0 {
		t.Fatalf("expected empty nil corpus")
	}
	c.Each(func(JobRecord) { t.Fatalf("did not expect callback on nil corpus") })
}

func TestDuplicateURLs(t *testing.T) {
	c := New([]JobRecord{
		{URL: "https://a"},
		{URL: "https://b"},
		{URL: "https://a"},
		{URL: "https://a"},
	})

	if got := c.DuplicateURLs(); got != 2 {
		t.Fatalf("expected 2 duplicates, got %d", got)
	}
}

func TestNewMatrixRejectsRagged(t *testing.T) {
	_, err := NewMatrix([][]float64{{1, 0.5}, {0.5}})
	if !errors.Is(err, ErrNotSquare) {
		t.Fatalf("expected ErrNotSquare, got %v", err)
	}
}

func TestNewMatrixCopiesRows(t *testing.T) {
	rows := [][]float64{{1, 0.2}, {0.2, 1}}
	m, err := NewMatrix(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows[0][1] = 0.9
	if m.At(0, 1) != 0.2 {
		t.Fatalf("matrix must not alias input rows")
	}
}

func TestValidate(t *testing.T) {
	c := New([]JobRecord{{Title: "a"}, {Title: "b"}})
	m, err := NewMatrix([][]float64{{1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = Validate(c, m)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if cfgErr.CorpusLen != 2 || cfgErr.MatrixDim != 1 {
		t.Fatalf("unexpected config error: %+v", cfgErr)
	}

	if _, err := NewArtifacts(c, m); err == nil {
		t.Fatalf("expected NewArtifacts to fail on mismatch")
	}
}

func TestStats(t *testing.T) {
	m, err := NewMatrix([][]float64{
		{1, 0.2, 0.4},
		{0.2, 1, 0.6},
		{0.4, 0.6, 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st := Stats(m, 1e-9)
	if st.Dim != 3 {
		t.Fatalf("expected dim 3, got %d", st.Dim)
	}
	if st.Min != 0.2 || st.Max != 0.6 {
		t.Fatalf("unexpected min/max: %v/%v", st.Min, st.Max)
	}
	if math.Abs(st.Mean-0.4) > 1e-9 {
		t.Fatalf("expected mean 0.4, got %v", st.Mean)
	}
	if !st.Symmetric {
		t.Fatalf("expected symmetric matrix")
	}

	asym, _ := NewMatrix([][]float64{{1, 0.1}, {0.3, 1}})
	if Stats(asym, 1e-9).Symmetric {
		t.Fatalf("expected asymmetric matrix to be reported")
	}
}
