package corpus

import (
	"fmt"
	"math"
)

// Matrix is a read-only square matrix of pairwise similarity scores.
type Matrix struct {
	rows [][]float64
}

// NewMatrix validates that rows form a square matrix and copies them.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	copied := make([][]float64, n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNotSquare, i, len(row), n)
		}
		copied[i] = append([]float64(nil), row...)
	}
	return &Matrix{rows: copied}, nil
}

func (m *Matrix) Dim() int {
	if m == nil {
		return 0
	}
	return len(m.rows)
}

// At returns the similarity between records i and j.
func (m *Matrix) At(i, j int) float64 {
	return m.rows[i][j]
}

// MatrixStats summarises the off-diagonal entries of a matrix.
type MatrixStats struct {
	Dim       int
	Min       float64
	Max       float64
	Mean      float64
	Symmetric bool
}

// Stats computes min, max and mean over off-diagonal entries and reports
// whether the matrix is symmetric within tolerance.
func Stats(m *Matrix, tolerance float64) MatrixStats {
	st := MatrixStats{Dim: m.Dim(), Symmetric: true}
	if st.Dim < 2 {
		return st
	}

	st.Min = math.Inf(1)
	st.Max = math.Inf(-1)
	var sum float64
	count := 0
	for i := 0; i < st.Dim; i++ {
		for j := 0; j < st.Dim; j++ {
			if i == j {
				continue
			}
			v := m.At(i, j)
			sum += v
			count++
			st.Min = math.Min(st.Min, v)
			st.Max = math.Max(st.Max, v)
			if j > i && math.Abs(v-m.At(j, i)) > tolerance {
				st.Symmetric = false
			}
		}
	}
	st.Mean = sum / float64(count)

	return st
}
