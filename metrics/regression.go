// Package metrics scores regression fits. Every function takes n×1 column
// matrices of observed and predicted values.
package metrics

import (
	"math"

	"github.com/hoopsim/ratingfit/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// columns validates a pair of column vectors and copies them out.
func columns(op string, yTrue, yPred mat.Matrix) ([]float64, []float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return nil, nil, errors.NewValueError(op, "empty matrix")
	}
	if cTrue != 1 || cPred != 1 {
		return nil, nil, errors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}
	if rTrue != rPred {
		return nil, nil, errors.NewDimensionError(op, rTrue, rPred, 0)
	}

	obs := mat.Col(nil, 0, yTrue)
	pred := mat.Col(nil, 0, yPred)
	return obs, pred, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred mat.Matrix) (float64, error) {
	obs, pred, err := columns("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	resid := make([]float64, len(obs))
	floats.SubTo(resid, obs, pred)
	return floats.Dot(resid, resid) / float64(len(obs)), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred mat.Matrix) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred mat.Matrix) (float64, error) {
	obs, pred, err := columns("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	return floats.Distance(obs, pred, 1) / float64(len(obs)), nil
}

// R2Score は決定係数（R²）を計算する
//
// When every observed value is the same, R² is undefined; R2Score then emits an
// UndefinedMetricWarning and returns 0.
func R2Score(yTrue, yPred mat.Matrix) (float64, error) {
	obs, pred, err := columns("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	if stat.PopVariance(obs, nil) == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("R2Score", "total sum of squares is zero", 0))
		return 0, nil
	}

	return stat.RSquaredFrom(pred, obs, nil), nil
}
