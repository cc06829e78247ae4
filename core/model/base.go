package model

import "github.com/google/uuid"

// EstimatorState はモデルの学習状態を表す
type EstimatorState int

const (
	// NotFitted はモデルが未学習の状態
	NotFitted EstimatorState = iota
	// Fitted はモデルが学習済みの状態
	Fitted
)

// BaseEstimator は全てのモデルの基底となる構造体
// Each successful fit gets a fresh run ID so log lines and exported weights can
// be tied back to the fit that produced them.
type BaseEstimator struct {
	state EstimatorState
	runID string
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the estimator fitted and assigns a new run ID.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
	e.runID = uuid.NewString()
}

// RestoreFitted marks the estimator fitted under an existing run ID, used when
// loading exported weights.
func (e *BaseEstimator) RestoreFitted(runID string) {
	e.state = Fitted
	e.runID = runID
}

// RunID returns the ID of the last fit, or "" before the first one.
func (e *BaseEstimator) RunID() string {
	return e.runID
}

// Reset はモデルを初期状態にリセットする
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
	e.runID = ""
}
