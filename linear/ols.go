package linear

import (
	"github.com/hoopsim/ratingfit/core/matrix"
	"github.com/hoopsim/ratingfit/pkg/errors"
)

// RegressionCoefficients solves the ordinary least-squares normal equations
//
//	β = (XᵗX)⁻¹ Xᵗ y
//
// for an n×k design matrix x and an n×1 response y, returning β as a k×1
// column. Neither argument is modified. The opts are passed to Inverse.
//
// Xᵗy is formed before the inversion, so a response with the wrong number of
// rows is reported as a ShapeError without inverting anything. A rank-deficient
// design (collinear columns, fewer samples than columns) yields a
// SingularMatrixError.
func RegressionCoefficients(x, y *matrix.Matrix, opts ...matrix.Option) (*matrix.Matrix, error) {
	if x == nil || y == nil {
		return nil, errors.NewValueError("RegressionCoefficients", "design matrix and response are required")
	}

	xt := x.Transpose()

	xty, err := xt.Multiply(y)
	if err != nil {
		return nil, errors.Wrap(err, "regression coefficients")
	}

	xtx, err := xt.Multiply(x)
	if err != nil {
		return nil, errors.Wrap(err, "regression coefficients")
	}

	inv, err := xtx.Inverse(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "regression coefficients")
	}

	beta, err := inv.Multiply(xty)
	if err != nil {
		return nil, errors.Wrap(err, "regression coefficients")
	}
	return beta, nil
}
