// Package preprocessing rescales feature matrices before fitting.
package preprocessing

import (
	"fmt"

	"github.com/hoopsim/ratingfit/core/matrix"
	"github.com/hoopsim/ratingfit/core/model"
	"github.com/hoopsim/ratingfit/core/parallel"
	"github.com/hoopsim/ratingfit/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// minScale is the standard deviation below which a column is treated as
// constant and left unscaled.
const minScale = 1e-8

// parallelThreshold is the row count above which transforms are split across
// cores.
const parallelThreshold = 2000

// StandardScaler はデータを平均0、標準偏差1に変換する
// Ratings on different spreads become comparable once standardized, so the
// fitted weights can be ranked against each other.
type StandardScaler struct {
	model.BaseEstimator

	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の標準偏差 (population)
	Scale []float64

	// NFeatures は特徴量の数
	NFeatures int

	// WithMean は平均を引くかどうか (デフォルト: true)
	WithMean bool

	// WithStd は標準偏差で割るかどうか (デフォルト: true)
	WithStd bool
}

// NewStandardScaler は新しいStandardScalerを作成する
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	XScaled, err := scaler.FitTransform(X)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault はデフォルト設定でStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit は訓練データから統計情報（平均、標準偏差）を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean, std := stat.PopMeanStdDev(col, nil)

		if s.WithMean {
			s.Mean[j] = mean
		}
		s.Scale[j] = 1
		if s.WithStd && std >= minScale {
			// without centring the spread is still measured around the mean
			s.Scale[j] = std
		}
	}

	if err := errors.CheckNumericalStability("StandardScaler.Fit", append(append([]float64(nil), s.Mean...), s.Scale...), 0); err != nil {
		return err
	}

	s.SetFitted()
	return nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
func (s *StandardScaler) Transform(X mat.Matrix) (*matrix.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}
	return s.apply("StandardScaler.Transform", X, func(v float64, j int) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	})
}

// FitTransform は学習と変換を同時に行う
func (s *StandardScaler) FitTransform(X mat.Matrix) (*matrix.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (*matrix.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}
	return s.apply("StandardScaler.InverseTransform", X, func(v float64, j int) float64 {
		return v*s.Scale[j] + s.Mean[j]
	})
}

func (s *StandardScaler) apply(op string, X mat.Matrix, f func(v float64, j int) float64) (*matrix.Matrix, error) {
	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError(op, s.NFeatures, c, 1)
	}
	if r == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}

	rows := make([][]float64, r)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			row := make([]float64, c)
			for j := range row {
				row[j] = f(X.At(i, j), j)
			}
			rows[i] = row
		}
	})
	return matrix.New(rows)
}

// UnscaleCoefficients converts coefficients fitted on standardized columns back
// to the original feature units. The returned intercept absorbs the centring.
func (s *StandardScaler) UnscaleCoefficients(weights []float64, intercept float64) ([]float64, float64, error) {
	if !s.IsFitted() {
		return nil, 0, errors.NewNotFittedError("StandardScaler", "UnscaleCoefficients")
	}
	if len(weights) != s.NFeatures {
		return nil, 0, errors.NewDimensionError("StandardScaler.UnscaleCoefficients", s.NFeatures, len(weights), 0)
	}

	out := make([]float64, len(weights))
	for j, w := range weights {
		out[j] = w / s.Scale[j]
		intercept -= out[j] * s.Mean[j]
	}
	return out, intercept, nil
}

// GetParams はパラメータを取得する
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
	}
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, s.NFeatures)
}

