package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
)

// Source describes where the paired artifacts live.
type Source struct {
	// Kind is either SourceJSON or SourceSQLite. Empty means SourceJSON.
	Kind       string
	CorpusPath string
	MatrixPath string
	Database   string
}

// Artifacts is a validated corpus and similarity matrix pair.
type Artifacts struct {
	Corpus *Corpus
	Matrix *Matrix
}

// NewArtifacts pairs c and m, failing when they disagree on size.
func NewArtifacts(c *Corpus, m *Matrix) (*Artifacts, error) {
	if err := Validate(c, m); err != nil {
		return nil, err
	}
	return &Artifacts{Corpus: c, Matrix: m}, nil
}

// Load reads the artifacts described by src.
func Load(ctx context.Context, src Source) (*Artifacts, error) {
	switch strings.ToLower(strings.TrimSpace(src.Kind)) {
	case "", SourceJSON:
		return LoadJSON(ctx, src.CorpusPath, src.MatrixPath)
	case SourceSQLite:
		return LoadSQLite(ctx, src.Database)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, src.Kind)
	}
}

// LoadJSON reads a corpus (array of job objects) and a similarity matrix
// (array of float arrays) from two JSON files. Both files are read concurrently.
func LoadJSON(ctx context.Context, corpusPath, matrixPath string) (*Artifacts, error) {
	if strings.TrimSpace(corpusPath) == "" || strings.TrimSpace(matrixPath) == "" {
		return nil, fmt.Errorf("both corpus and similarity paths are required")
	}

	var (
		records []JobRecord
		rows    [][]float64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := readJSON(ctx, corpusPath, &records); err != nil {
			return fmt.Errorf("reading corpus: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := readJSON(ctx, matrixPath, &rows); err != nil {
			return fmt.Errorf("reading similarity matrix: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m, err := NewMatrix(rows)
	if err != nil {
		return nil, err
	}

	return NewArtifacts(New(records), m)
}

func readJSON(ctx context.Context, path string, dst any) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := json.NewDecoder(file).Decode(dst); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
