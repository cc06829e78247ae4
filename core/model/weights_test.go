package model

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/hoopsim/ratingfit/pkg/errors"
)

func sampleWeights() *ModelWeights {
	return &ModelWeights{
		ModelType:       "LinearRegression",
		Version:         WeightsFormatVersion,
		RunID:           "run-1",
		Coefficients:    []float64{0.12, -0.03},
		Intercept:       1.5,
		Features:        []string{"hgt", "spd"},
		Hyperparameters: map[string]interface{}{"fit_intercept": true},
		Metadata:        map[string]interface{}{"samples": 120.0},
		IsFitted:        true,
	}
}

func TestModelWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(mw *ModelWeights)
		wantErr bool
	}{
		{"valid", func(mw *ModelWeights) {}, false},
		{"missing type", func(mw *ModelWeights) { mw.ModelType = "" }, true},
		{"missing version", func(mw *ModelWeights) { mw.Version = "" }, true},
		{"fitted without coefficients", func(mw *ModelWeights) { mw.Coefficients = nil; mw.Features = nil }, true},
		{"unfitted with coefficients", func(mw *ModelWeights) { mw.IsFitted = false }, true},
		{"label count mismatch", func(mw *ModelWeights) { mw.Features = []string{"hgt"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := sampleWeights()
			tt.mutate(mw)
			err := mw.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var vErr *errors.ValidationError
				if !errors.As(err, &vErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestModelWeights_Clone(t *testing.T) {
	mw := sampleWeights()
	clone := mw.Clone()

	clone.Coefficients[0] = 99
	clone.Features[0] = "changed"
	clone.Metadata["samples"] = 1.0

	if mw.Coefficients[0] != 0.12 || mw.Features[0] != "hgt" || mw.Metadata["samples"] != 120.0 {
		t.Error("Clone shares state with the original")
	}
}

func TestSaveLoadWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.json")
	if err := SaveWeights(sampleWeights(), path); err != nil {
		t.Fatal(err)
	}

	got, err := LoadWeights(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.RunID != "run-1" || got.Intercept != 1.5 || len(got.Coefficients) != 2 {
		t.Errorf("loaded %+v", got)
	}
}

func TestSaveWeightsToWriter_RejectsInvalid(t *testing.T) {
	mw := sampleWeights()
	mw.ModelType = ""

	var buf bytes.Buffer
	if err := SaveWeightsToWriter(mw, &buf); err == nil {
		t.Error("expected validation error")
	}
	if buf.Len() != 0 {
		t.Error("invalid weights were written")
	}
}

func TestBaseEstimator(t *testing.T) {
	var e BaseEstimator
	if e.IsFitted() || e.RunID() != "" {
		t.Fatal("zero value should be unfitted")
	}

	e.SetFitted()
	first := e.RunID()
	if !e.IsFitted() || first == "" {
		t.Fatal("SetFitted should mark fitted and assign a run ID")
	}

	e.SetFitted()
	if e.RunID() == first {
		t.Error("each fit should get a new run ID")
	}

	e.Reset()
	if e.IsFitted() || e.RunID() != "" {
		t.Error("Reset should clear state")
	}
}
