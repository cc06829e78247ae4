package matrix

import (
	"math"

	"github.com/hoopsim/ratingfit/pkg/errors"
)

// ToReducedRowEchelonForm runs Gauss–Jordan elimination on m in place and returns
// the number of pivots found.
//
// Rows are processed top to bottom against a pivot column that starts at 0. For
// row r the search walks down column lead for an entry whose magnitude exceeds the
// pivot threshold (the tolerance times the largest entry magnitude, floored at
// 1); when the column is exhausted lead moves right and the same row is
// retried. Once lead runs off the right edge the reduction stops, so a
// rank-deficient matrix comes back with fewer pivots than rows.
func (m *Matrix) ToReducedRowEchelonForm(opts ...Option) int {
	cfg := newReduceConfig(opts)
	tol := cfg.threshold(m)

	lead := 0
	rank := 0
	for r := 0; r < m.height; r++ {
		if lead >= m.width {
			return rank
		}

		i := r
		for isZero(m.values[i][lead], tol) {
			i++
			if i == m.height {
				i = r
				lead++
				if lead == m.width {
					return rank
				}
			}
		}
		m.values[i], m.values[r] = m.values[r], m.values[i]

		pivotRow := m.values[r]
		pivot := pivotRow[lead]
		for j := range pivotRow {
			pivotRow[j] /= pivot
		}

		for k := 0; k < m.height; k++ {
			if k == r {
				continue
			}
			row := m.values[k]
			factor := row[lead]
			for j := range row {
				row[j] -= factor * pivotRow[j]
			}
		}

		lead++
		rank++
	}
	return rank
}

// Inverse replaces m with its inverse and returns m for chaining.
//
// m is augmented with the identity, reduced, and the right half kept. A
// non-square m yields a ShapeError and is left untouched. When the left block
// does not reduce to the identity the matrix is singular: m is restored to its
// original values and a SingularMatrixError is returned.
func (m *Matrix) Inverse(opts ...Option) (*Matrix, error) {
	if m.height != m.width {
		return nil, errors.NewShapeError("Inverse", "can't invert a non-square matrix", m.shape())
	}

	n := m.height
	tol := newReduceConfig(opts).threshold(m)
	original := m.values
	augmented := make([][]float64, n)
	for i, row := range original {
		augmented[i] = make([]float64, 2*n)
		copy(augmented[i], row)
		augmented[i][n+i] = 1
	}
	m.values = augmented
	m.width = 2 * n

	m.ToReducedRowEchelonForm(opts...)
	if rank := m.leftPivots(n, tol); rank < n || !m.leftIsIdentity(n) {
		m.values = original
		m.width = n
		return nil, errors.NewSingularMatrixError("Inverse", n, rank)
	}

	for i, row := range m.values {
		m.values[i] = append([]float64(nil), row[n:]...)
	}
	m.width = n
	return m, nil
}

// leftPivots counts reduced rows whose leading entry lies in the first n columns.
func (m *Matrix) leftPivots(n int, tol float64) int {
	count := 0
	for _, row := range m.values {
		for j := 0; j < n; j++ {
			if !isZero(row[j], tol) {
				count++
				break
			}
		}
	}
	return count
}

func (m *Matrix) leftIsIdentity(n int) bool {
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(m.values[i][j]-want) > identityTolerance {
				return false
			}
		}
	}
	return true
}

func isZero(v, tol float64) bool {
	if tol == 0 {
		return v == 0
	}
	return math.Abs(v) <= tol
}

// magnitude is the largest absolute entry, at least 1.
func (m *Matrix) magnitude() float64 {
	peak := 1.0
	for _, row := range m.values {
		for _, v := range row {
			peak = math.Max(peak, math.Abs(v))
		}
	}
	return peak
}
