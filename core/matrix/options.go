package matrix

// DefaultTolerance is the relative magnitude at or below which a pivot candidate
// counts as zero during row reduction. It is scaled by the largest entry
// magnitude of the matrix being reduced, floored at 1.
const DefaultTolerance = 1e-12

// identityTolerance bounds how far the left block of a reduced augmented matrix
// may stray from the identity before Inverse reports it singular.
const identityTolerance = 1e-9

// Option configures row reduction and inversion.
type Option func(*reduceConfig)

type reduceConfig struct {
	tolerance float64
}

// WithTolerance sets the relative pivot tolerance. WithTolerance(0) compares
// pivot candidates against exactly zero. Negative values are treated as 0.
func WithTolerance(tol float64) Option {
	return func(c *reduceConfig) {
		if tol < 0 {
			tol = 0
		}
		c.tolerance = tol
	}
}

func newReduceConfig(opts []Option) reduceConfig {
	cfg := reduceConfig{tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// threshold is the absolute pivot cutoff for m.
func (c reduceConfig) threshold(m *Matrix) float64 {
	if c.tolerance == 0 {
		return 0
	}
	return c.tolerance * m.magnitude()
}
