// Package matrix is the dense linear-algebra kernel behind rating-weight fitting:
// transpose, multiply, Gauss–Jordan reduction and inversion over a single
// row-major Matrix type.
//
// Transpose and Multiply never touch their operands. ToReducedRowEchelonForm and
// Inverse work in place; a matrix that has been reduced or inverted holds the
// result and the original values are gone.
//
// *Matrix satisfies gonum's mat.Matrix, so it can be handed to anything in the
// gonum ecosystem (mat.Formatted, mat.EqualApprox, metrics helpers) directly.
package matrix

import (
	"fmt"

	"github.com/hoopsim/ratingfit/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense height×width table of float64 values.
// Every row has exactly width entries.
type Matrix struct {
	height int
	width  int
	values [][]float64
}

var _ mat.Matrix = (*Matrix)(nil)

// New builds a matrix from a rectangular table. The rows are copied.
func New(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.NewShapeError("New", "empty table")
	}

	width := len(rows[0])
	values := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, errors.NewShapeError("New",
				fmt.Sprintf("row %d has %d entries, expected %d", i, len(row), width))
		}
		values[i] = append([]float64(nil), row...)
	}

	return &Matrix{height: len(rows), width: width, values: values}, nil
}

// ColumnVector builds a len(values)×1 matrix.
func ColumnVector(values []float64) (*Matrix, error) {
	if len(values) == 0 {
		return nil, errors.NewShapeError("ColumnVector", "empty vector")
	}

	rows := make([][]float64, len(values))
	for i, v := range values {
		rows[i] = []float64{v}
	}
	return &Matrix{height: len(values), width: 1, values: rows}, nil
}

// Identity builds the n×n identity matrix.
func Identity(n int) (*Matrix, error) {
	if n < 1 {
		return nil, errors.NewShapeError("Identity", fmt.Sprintf("order must be positive, got %d", n))
	}
	return identity(n), nil
}

func identity(n int) *Matrix {
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		values[i][i] = 1
	}
	return &Matrix{height: n, width: n, values: values}
}

// Zeros builds a rows×cols matrix of zeros.
func Zeros(rows, cols int) (*Matrix, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.NewShapeError("Zeros", "dimensions must be positive", [2]int{rows, cols})
	}
	return zeros(rows, cols), nil
}

func zeros(rows, cols int) *Matrix {
	values := make([][]float64, rows)
	for i := range values {
		values[i] = make([]float64, cols)
	}
	return &Matrix{height: rows, width: cols, values: values}
}

// FromGonum copies any gonum matrix into a Matrix.
func FromGonum(a mat.Matrix) (*Matrix, error) {
	r, c := a.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewShapeError("FromGonum", "empty matrix", [2]int{r, c})
	}

	m := zeros(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.values[i][j] = a.At(i, j)
		}
	}
	return m, nil
}

// Height is the number of rows.
func (m *Matrix) Height() int { return m.height }

// Width is the number of columns.
func (m *Matrix) Width() int { return m.width }

// Dims implements mat.Matrix.
func (m *Matrix) Dims() (r, c int) { return m.height, m.width }

// At implements mat.Matrix. It panics with mat.ErrIndexOutOfRange like gonum's
// own types do.
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.height || j < 0 || j >= m.width {
		panic(mat.ErrIndexOutOfRange)
	}
	return m.values[i][j]
}

// Set writes a single entry. It panics with mat.ErrIndexOutOfRange on a bad index.
func (m *Matrix) Set(i, j int, v float64) {
	if i < 0 || i >= m.height || j < 0 || j >= m.width {
		panic(mat.ErrIndexOutOfRange)
	}
	m.values[i][j] = v
}

// T implements mat.Matrix with gonum's lazy transpose. Use Transpose for an
// independent copy.
func (m *Matrix) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	if i < 0 || i >= m.height {
		panic(mat.ErrRowAccess)
	}
	return append([]float64(nil), m.values[i]...)
}

// Col returns a copy of column j.
func (m *Matrix) Col(j int) []float64 {
	if j < 0 || j >= m.width {
		panic(mat.ErrColAccess)
	}
	col := make([]float64, m.height)
	for i := range col {
		col[i] = m.values[i][j]
	}
	return col
}

// Values returns a deep copy of the table.
func (m *Matrix) Values() [][]float64 {
	out := make([][]float64, m.height)
	for i, row := range m.values {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Clone returns an independent copy, typically taken before Inverse.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{height: m.height, width: m.width, values: m.Values()}
}

// Dense copies the matrix into a gonum *mat.Dense.
func (m *Matrix) Dense() *mat.Dense {
	data := make([]float64, 0, m.height*m.width)
	for _, row := range m.values {
		data = append(data, row...)
	}
	return mat.NewDense(m.height, m.width, data)
}

// Equal reports exact element-wise equality.
func (m *Matrix) Equal(other *Matrix) bool {
	return mat.Equal(m, other)
}

// EqualApprox reports element-wise equality within tol, absolute or relative.
func (m *Matrix) EqualApprox(other *Matrix, tol float64) bool {
	return mat.EqualApprox(m, other, tol)
}

func (m *Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m, mat.Squeeze()))
}

func (m *Matrix) shape() [2]int {
	return [2]int{m.height, m.width}
}
