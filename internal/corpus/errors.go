package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when the corpus length differs from the matrix dimension.
	ErrDimensionMismatch = errors.New("corpus length does not match similarity matrix dimension")
	// ErrNotSquare is returned for ragged similarity matrices.
	ErrNotSquare = errors.New("similarity matrix is not square")
	// ErrUnknownSource is returned for unsupported artifact sources.
	ErrUnknownSource = errors.New("unknown artifact source")
)

// ConfigError reports a corpus and matrix pair that cannot serve recommendations.
type ConfigError struct {
	CorpusLen int
	MatrixDim int
	Err       error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid artifacts (corpus=%d, matrix=%d): %v", e.CorpusLen, e.MatrixDim, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Validate checks that c and m are paired artifacts.
func Validate(c *Corpus, m *Matrix) error {
	if c.Len() != m.Dim() {
		return &ConfigError{CorpusLen: c.Len(), MatrixDim: m.Dim(), Err: ErrDimensionMismatch}
	}
	return nil
}
