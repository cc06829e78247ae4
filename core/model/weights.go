package model

import (
	"encoding/json"

	"github.com/hoopsim/ratingfit/pkg/errors"
)

// WeightsFormatVersion is written into every exported ModelWeights.
const WeightsFormatVersion = "1.0"

// ModelWeights is the serialized form of a fitted linear model.
type ModelWeights struct {
	// ModelType names the estimator, e.g. "LinearRegression".
	ModelType string `json:"model_type" yaml:"model_type"`

	Version string `json:"version" yaml:"version"`

	// RunID ties the weights to the fit that produced them.
	RunID string `json:"run_id,omitempty" yaml:"run_id,omitempty"`

	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
	Intercept    float64   `json:"intercept" yaml:"intercept"`

	// Features labels Coefficients index for index.
	Features []string `json:"features,omitempty" yaml:"features,omitempty"`

	Hyperparameters map[string]interface{} `json:"hyperparameters" yaml:"hyperparameters"`

	// Metadata carries fit statistics such as sample count and R².
	Metadata map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	IsFitted bool `json:"is_fitted" yaml:"is_fitted"`
}

// ToJSON はModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// FromJSON はJSON形式からModelWeightsをデシリアライズ
func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return errors.Wrap(err, "decode model weights")
	}
	return nil
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return errors.NewValidationError("model_type", "is required", mw.ModelType)
	}
	if mw.Version == "" {
		return errors.NewValidationError("version", "is required", mw.Version)
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return errors.NewValidationError("coefficients", "unfitted model should not have coefficients", len(mw.Coefficients))
	}
	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return errors.NewValidationError("coefficients", "fitted model must have coefficients", 0)
	}
	if len(mw.Features) > 0 && len(mw.Features) != len(mw.Coefficients) {
		return errors.NewValidationError("features", "must label every coefficient", len(mw.Features))
	}
	return nil
}

// Clone はModelWeightsのディープコピーを作成
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := *mw
	clone.Coefficients = append([]float64(nil), mw.Coefficients...)
	clone.Features = append([]string(nil), mw.Features...)
	clone.Hyperparameters = make(map[string]interface{}, len(mw.Hyperparameters))
	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}
	clone.Metadata = make(map[string]interface{}, len(mw.Metadata))
	for k, v := range mw.Metadata {
		clone.Metadata[k] = v
	}
	return &clone
}
