package linear

import (
	"time"

	"github.com/hoopsim/ratingfit/core/matrix"
	"github.com/hoopsim/ratingfit/core/model"
	"github.com/hoopsim/ratingfit/core/parallel"
	"github.com/hoopsim/ratingfit/metrics"
	"github.com/hoopsim/ratingfit/pkg/errors"
	"github.com/hoopsim/ratingfit/pkg/log"
	"gonum.org/v1/gonum/mat"
)

const modelName = "LinearRegression"

// defaultParallelThreshold is the row count at or below which the design matrix
// is built sequentially.
const defaultParallelThreshold = 1000

var _ model.LinearModel = (*LinearRegression)(nil)

// LinearRegression は線形回帰モデル
// Coefficients come from RegressionCoefficients on the (optionally
// intercept-augmented) design matrix.
type LinearRegression struct {
	model.BaseEstimator

	fitIntercept      bool
	tolerance         float64
	featureNames      []string
	parallelThreshold int
	logger            log.Logger

	weights   []float64
	intercept float64
	nFeatures int
}

// NewLinearRegression は新しい線形回帰モデルを作成する
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		fitIntercept:      true,
		tolerance:         matrix.DefaultTolerance,
		parallelThreshold: defaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(lr)
	}
	if lr.logger == nil {
		lr.logger = log.GetLoggerWithName(modelName)
	}
	return lr
}

// Fit はモデルを訓練データで学習させる
// 正規方程式 w = (X^T * X)^(-1) * X^T * y を使用
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")
	start := time.Now()

	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}
	if len(lr.featureNames) > 0 && len(lr.featureNames) != c {
		return errors.NewValidationError("feature_names", "must label every column of X", len(lr.featureNames))
	}

	design, err := lr.designMatrix(X)
	if err != nil {
		return err
	}
	response, err := matrix.FromGonum(y)
	if err != nil {
		return err
	}

	beta, err := RegressionCoefficients(design, response, lr.matrixOptions()...)
	if err != nil {
		lr.logger.Error("fit failed", err,
			log.OperationKey, log.OperationFit,
			log.SamplesKey, r,
			log.FeaturesKey, c,
		)
		return err
	}
	if err := errors.CheckMatrix("LinearRegression.Fit", beta, beta.Height(), 1, 0); err != nil {
		return err
	}

	coef := beta.Col(0)
	lr.intercept = 0
	if lr.fitIntercept {
		lr.intercept = coef[0]
		coef = coef[1:]
	}
	lr.weights = coef
	lr.nFeatures = c
	lr.SetFitted()

	lr.logger.Debug("fit complete",
		log.OperationKey, log.OperationFit,
		log.EstimatorIDKey, lr.RunID(),
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.InterceptKey, lr.fitIntercept,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// designMatrix copies X into a Matrix, prepending a column of ones when the
// intercept is fitted.
func (lr *LinearRegression) designMatrix(X mat.Matrix) (*matrix.Matrix, error) {
	if !lr.fitIntercept {
		return matrix.FromGonum(X)
	}

	r, c := X.Dims()
	rows := make([][]float64, r)
	parallel.ParallelizeWithThreshold(r, lr.parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			row := make([]float64, c+1)
			row[0] = 1
			for j := 0; j < c; j++ {
				row[j+1] = X.At(i, j)
			}
			rows[i] = row
		}
	})
	return matrix.New(rows)
}

// Predict は入力データに対する予測を行う
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, "Predict")
	}

	r, c := X.Dims()
	if c != lr.nFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.nFeatures, c, 1)
	}

	// 予測: y = X * weights + intercept
	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := lr.intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.weights[j]
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// Score はモデルの決定係数（R²）を計算する
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError(modelName, "Score")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(y, yPred)
}

// GetWeights は学習された重み（係数）を返す
func (lr *LinearRegression) GetWeights() []float64 {
	if lr.weights == nil {
		return nil
	}
	return append([]float64(nil), lr.weights...)
}

// GetIntercept は学習された切片を返す
func (lr *LinearRegression) GetIntercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.intercept
}

// ModelWeights exports the fitted coefficients for persistence.
func (lr *LinearRegression) ModelWeights() (*model.ModelWeights, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, "ModelWeights")
	}
	return &model.ModelWeights{
		ModelType:    modelName,
		Version:      model.WeightsFormatVersion,
		RunID:        lr.RunID(),
		Coefficients: lr.GetWeights(),
		Intercept:    lr.intercept,
		Features:     append([]string(nil), lr.featureNames...),
		Hyperparameters: map[string]interface{}{
			"fit_intercept": lr.fitIntercept,
			"tolerance":     lr.tolerance,
		},
		IsFitted: true,
	}, nil
}

// FromModelWeights restores a model exported with ModelWeights.
func (lr *LinearRegression) FromModelWeights(mw *model.ModelWeights) error {
	if err := mw.Validate(); err != nil {
		return err
	}
	if mw.ModelType != modelName {
		return errors.NewValidationError("model_type", "expected "+modelName, mw.ModelType)
	}
	if !mw.IsFitted {
		return errors.NewValidationError("is_fitted", "weights are from an unfitted model", false)
	}

	if v, ok := mw.Hyperparameters["fit_intercept"].(bool); ok {
		lr.fitIntercept = v
	}
	if v, ok := mw.Hyperparameters["tolerance"].(float64); ok {
		lr.tolerance = v
	}

	lr.weights = append([]float64(nil), mw.Coefficients...)
	lr.intercept = mw.Intercept
	lr.nFeatures = len(mw.Coefficients)
	lr.featureNames = append([]string(nil), mw.Features...)
	lr.RestoreFitted(mw.RunID)
	return nil
}
