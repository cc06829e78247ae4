package linear

import (
	"github.com/hoopsim/ratingfit/core/matrix"
	"github.com/hoopsim/ratingfit/pkg/log"
)

// Option is a function that configures LinearRegression
type Option func(*LinearRegression)

// WithFitIntercept sets whether to calculate the intercept.
// With false the model is forced through the origin.
func WithFitIntercept(fit bool) Option {
	return func(lr *LinearRegression) {
		lr.fitIntercept = fit
	}
}

// WithTolerance sets the pivot tolerance used when inverting XᵗX.
// See matrix.WithTolerance.
func WithTolerance(tol float64) Option {
	return func(lr *LinearRegression) {
		lr.tolerance = tol
	}
}

// WithFeatureNames labels the columns of X. The labels are carried into
// exported weights.
func WithFeatureNames(names ...string) Option {
	return func(lr *LinearRegression) {
		lr.featureNames = append([]string(nil), names...)
	}
}

// WithLogger sets the logger used for fit diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(lr *LinearRegression) {
		lr.logger = logger
	}
}

// WithParallelThreshold sets the row count above which the design matrix is
// assembled in parallel.
func WithParallelThreshold(rows int) Option {
	return func(lr *LinearRegression) {
		lr.parallelThreshold = rows
	}
}

func (lr *LinearRegression) matrixOptions() []matrix.Option {
	return []matrix.Option{matrix.WithTolerance(lr.tolerance)}
}
