package metrics

import (
	"math"
	"testing"

	"github.com/hoopsim/ratingfit/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func col(values ...float64) *mat.Dense {
	if len(values) == 0 {
		return &mat.Dense{}
	}
	return mat.NewDense(len(values), 1, values)
}

func TestMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     mat.Matrix
		yPred     mat.Matrix
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     col(1, 2, 3, 4, 5),
			yPred:     col(1, 2, 3, 4, 5),
			want:      0,
			tolerance: 1e-10,
		},
		{
			name:      "simple case",
			yTrue:     col(1, 2, 3, 4),
			yPred:     col(1.5, 2.5, 2.5, 3.5),
			want:      0.25,
			tolerance: 1e-10,
		},
		{
			name:      "larger errors",
			yTrue:     col(10, 20, 30),
			yPred:     col(12, 18, 33),
			want:      17.0 / 3.0,
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   col(1, 2, 3),
			yPred:   col(1, 2),
			wantErr: true,
		},
		{
			name:    "not a column",
			yTrue:   mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
			yPred:   mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MSE() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("MSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMSE_DimensionError(t *testing.T) {
	_, err := MSE(col(1, 2, 3), col(1, 2))
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionError, got %v", err)
	}
}

func TestRMSE(t *testing.T) {
	got, err := RMSE(col(10, 20, 30), col(12, 18, 33))
	if err != nil {
		t.Fatal(err)
	}
	if want := math.Sqrt(17.0 / 3.0); math.Abs(got-want) > 1e-10 {
		t.Errorf("RMSE() = %v, want %v", got, want)
	}
}

func TestMAE(t *testing.T) {
	tests := []struct {
		name  string
		yTrue mat.Matrix
		yPred mat.Matrix
		want  float64
	}{
		{"perfect prediction", col(1, 2, 3), col(1, 2, 3), 0},
		{"mixed signs", col(1, 2, 3, 4), col(1.5, 2.5, 2.5, 3.5), 0.5},
		{"larger errors", col(10, 20, 30), col(12, 18, 33), 7.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MAE(tt.yTrue, tt.yPred)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("MAE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name  string
		yTrue mat.Matrix
		yPred mat.Matrix
		want  float64
	}{
		{"perfect prediction", col(1, 2, 3, 4, 5), col(1, 2, 3, 4, 5), 1},
		// mean prediction explains nothing
		{"mean prediction", col(1, 2, 3, 4, 5), col(3, 3, 3, 3, 3), 0},
		// RSS = 1, TSS = 10
		{"good fit", col(1, 2, 3, 4, 5), col(1.5, 2.5, 3, 3.5, 4.5), 0.9},
		// RSS = 40, TSS = 10
		{"worse than mean", col(1, 2, 3, 4, 5), col(5, 4, 3, 2, 1), -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(tt.yTrue, tt.yPred)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("R2Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestR2Score_ConstantTarget(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(func(w error) {})

	got, err := R2Score(col(2, 2, 2), col(1, 2, 3))
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("R2Score() = %v, want 0", got)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(warnings))
	}
	var undefined *errors.UndefinedMetricWarning
	if !errors.As(warnings[0], &undefined) {
		t.Errorf("expected UndefinedMetricWarning, got %T", warnings[0])
	}
}

func TestR2Score_Empty(t *testing.T) {
	if _, err := R2Score(col(), col()); err == nil {
		t.Error("expected error for empty input")
	}
}
