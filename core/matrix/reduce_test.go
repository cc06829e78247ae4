package matrix

import (
	"math/rand/v2"
	"testing"

	"github.com/hoopsim/ratingfit/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func TestToReducedRowEchelonForm(t *testing.T) {
	tests := []struct {
		name     string
		in       [][]float64
		want     [][]float64
		wantRank int
	}{
		{
			name:     "full rank",
			in:       [][]float64{{2, 4}, {1, 3}},
			want:     [][]float64{{1, 0}, {0, 1}},
			wantRank: 2,
		},
		{
			name:     "needs row swap",
			in:       [][]float64{{0, 1}, {1, 0}},
			want:     [][]float64{{1, 0}, {0, 1}},
			wantRank: 2,
		},
		{
			name:     "rank deficient stops early",
			in:       [][]float64{{1, 2, 3}, {2, 4, 6}, {1, 1, 1}},
			want:     [][]float64{{1, 0, -1}, {0, 1, 2}, {0, 0, 0}},
			wantRank: 2,
		},
		{
			name:     "zero column skipped",
			in:       [][]float64{{0, 2, 4}, {0, 1, 3}},
			want:     [][]float64{{0, 1, 0}, {0, 0, 1}},
			wantRank: 2,
		},
		{
			name:     "all zero",
			in:       [][]float64{{0, 0}, {0, 0}},
			want:     [][]float64{{0, 0}, {0, 0}},
			wantRank: 0,
		},
		{
			name:     "augmented system",
			in:       [][]float64{{1, 1, 3}, {1, -1, 1}},
			want:     [][]float64{{1, 0, 2}, {0, 1, 1}},
			wantRank: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustNew(t, tt.in)
			rank := m.ToReducedRowEchelonForm()

			if rank != tt.wantRank {
				t.Errorf("rank = %d, want %d", rank, tt.wantRank)
			}
			if !m.EqualApprox(mustNew(t, tt.want), 1e-12) {
				t.Errorf("RREF = %v, want %v", m, tt.want)
			}
			if h, w := m.Dims(); h != len(tt.in) || w != len(tt.in[0]) {
				t.Errorf("shape changed to %dx%d", h, w)
			}
		})
	}
}

// A pivot candidate of 1e-15 is noise under the default tolerance but a real
// pivot under exact-zero comparison.
func TestToReducedRowEchelonForm_Tolerance(t *testing.T) {
	m := mustNew(t, [][]float64{{1e-15}})
	if rank := m.ToReducedRowEchelonForm(); rank != 0 {
		t.Errorf("default tolerance: rank = %d, want 0", rank)
	}

	m = mustNew(t, [][]float64{{1e-15}})
	if rank := m.ToReducedRowEchelonForm(WithTolerance(0)); rank != 1 {
		t.Errorf("exact zero: rank = %d, want 1", rank)
	}
	if m.At(0, 0) != 1 {
		t.Errorf("exact zero: pivot = %v, want 1", m.At(0, 0))
	}

	m = mustNew(t, [][]float64{{0.5}})
	if rank := m.ToReducedRowEchelonForm(WithTolerance(-3)); rank != 1 {
		t.Errorf("negative tolerance should behave like 0, rank = %d", rank)
	}
}

// The pivot threshold grows with the largest entry, so rounding residue in a
// large-valued matrix is not mistaken for a pivot.
func TestToReducedRowEchelonForm_ToleranceScalesWithMagnitude(t *testing.T) {
	rows := [][]float64{{1e6, 1e6}, {1e6, 1e6 + 1e-7}}

	if rank := mustNew(t, rows).ToReducedRowEchelonForm(); rank != 1 {
		t.Errorf("default tolerance: rank = %d, want 1", rank)
	}
	if rank := mustNew(t, rows).ToReducedRowEchelonForm(WithTolerance(0)); rank != 2 {
		t.Errorf("exact zero: rank = %d, want 2", rank)
	}
}

func TestInverse(t *testing.T) {
	src := [][]float64{{4, 7, 2}, {3, 6, 1}, {2, 5, 3}}
	m := mustNew(t, src)

	inv, err := m.Clone().Inverse()
	if err != nil {
		t.Fatal(err)
	}
	if h, w := inv.Dims(); h != 3 || w != 3 {
		t.Fatalf("inverse shape = %dx%d", h, w)
	}

	prod, err := m.Multiply(inv)
	if err != nil {
		t.Fatal(err)
	}
	if !prod.EqualApprox(identity(3), 1e-9) {
		t.Errorf("M·inv(M) = %v", prod)
	}

	var ref mat.Dense
	if err := ref.Inverse(m.Dense()); err != nil {
		t.Fatal(err)
	}
	if !mat.EqualApprox(inv, &ref, 1e-9) {
		t.Errorf("Inverse disagrees with gonum: %v", inv)
	}
}

func TestInverse_InPlace(t *testing.T) {
	m := mustNew(t, [][]float64{{2, 0}, {0, 4}})
	inv, err := m.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	if inv != m {
		t.Error("Inverse should return its receiver")
	}
	if !m.Equal(mustNew(t, [][]float64{{0.5, 0}, {0, 0.25}})) {
		t.Errorf("receiver = %v", m)
	}
	if m.Width() != 2 {
		t.Errorf("width = %d, want 2", m.Width())
	}
}

func TestInverse_Identity(t *testing.T) {
	for n := 1; n <= 8; n++ {
		id := identity(n)
		inv, err := id.Inverse()
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if !inv.Equal(identity(n)) {
			t.Errorf("Inverse(Identity(%d)) = %v", n, inv)
		}
	}
}

func TestInverse_Random(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 14))
	for n := 2; n <= 12; n += 2 {
		m := randomMatrix(rng, n, n)
		// diagonal dominance keeps the draw well conditioned
		for i := 0; i < n; i++ {
			m.values[i][i] += float64(n)
		}

		inv, err := m.Clone().Inverse()
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		prod, _ := m.Multiply(inv)
		if !prod.EqualApprox(identity(n), 1e-9) {
			t.Errorf("n=%d: M·inv(M) is not the identity", n)
		}
	}
}

func TestInverse_NonSquare(t *testing.T) {
	m := mustNew(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	before := m.Clone()

	_, err := m.Inverse()
	var shapeErr *errors.ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected ShapeError, got %v", err)
	}
	if shapeErr.Message != "can't invert a non-square matrix" {
		t.Errorf("Message = %q", shapeErr.Message)
	}
	if !m.Equal(before) {
		t.Error("failed Inverse mutated its receiver")
	}
}

func TestInverse_Singular(t *testing.T) {
	tests := []struct {
		name     string
		in       [][]float64
		wantRank int
	}{
		{"proportional rows", [][]float64{{1, 2}, {2, 4}}, 1},
		{"zero matrix", [][]float64{{0, 0}, {0, 0}}, 0},
		{"dependent column", [][]float64{{1, 2, 3}, {4, 5, 9}, {7, 8, 15}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustNew(t, tt.in)
			before := m.Clone()

			_, err := m.Inverse()
			if !errors.Is(err, errors.ErrSingularMatrix) {
				t.Fatalf("expected ErrSingularMatrix, got %v", err)
			}

			var singular *errors.SingularMatrixError
			if !errors.As(err, &singular) {
				t.Fatalf("expected *SingularMatrixError, got %T", err)
			}
			if singular.Rank != tt.wantRank {
				t.Errorf("rank = %d, want %d", singular.Rank, tt.wantRank)
			}
			if !m.Equal(before) {
				t.Errorf("singular Inverse left receiver as %v", m)
			}
		})
	}
}

func BenchmarkInverse(b *testing.B) {
	rng := rand.New(rand.NewPCG(42, 42))
	src := randomMatrix(rng, 16, 16)
	for i := 0; i < 16; i++ {
		src.values[i][i] += 16
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := src.Clone().Inverse(); err != nil {
			b.Fatal(err)
		}
	}
}
