package matrix

import (
	"github.com/hoopsim/ratingfit/pkg/errors"
)

// Transpose returns a new width×height matrix with T[i][j] = m[j][i].
func (m *Matrix) Transpose() *Matrix {
	t := zeros(m.width, m.height)
	for i := 0; i < m.width; i++ {
		for j := 0; j < m.height; j++ {
			t.values[i][j] = m.values[j][i]
		}
	}
	return t
}

// Multiply returns the product m·other. It needs m.Width() == other.Height().
// Entries are plain running sums over the inner dimension.
func (m *Matrix) Multiply(other *Matrix) (*Matrix, error) {
	if m.width != other.height {
		return nil, errors.NewShapeError("Multiply", "incompatible sizes", m.shape(), other.shape())
	}

	result := zeros(m.height, other.width)
	for i := 0; i < m.height; i++ {
		row := m.values[i]
		for j := 0; j < other.width; j++ {
			var sum float64
			for k := 0; k < m.width; k++ {
				sum += row[k] * other.values[k][j]
			}
			result.values[i][j] = sum
		}
	}
	return result, nil
}
