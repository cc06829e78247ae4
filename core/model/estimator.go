package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict returns one prediction per row of X as a column matrix.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer computes the coefficient of determination of a fitted model.
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}

// LinearModel は線形モデルのインターフェース
type LinearModel interface {
	Fitter
	Predictor
	Scorer

	// GetWeights は学習された重み（係数）を返す
	GetWeights() []float64
	// GetIntercept は学習された切片を返す
	GetIntercept() float64
}
