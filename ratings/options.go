package ratings

import (
	"github.com/hoopsim/ratingfit/core/matrix"
	"github.com/hoopsim/ratingfit/pkg/errors"
	"github.com/hoopsim/ratingfit/pkg/log"
)

// Options controls sample collection and the fit.
type Options struct {
	// Keys are the ratings used as regressors, in column order.
	Keys []string

	// Response is the stats field regressed on.
	Response string

	// MinMinutes excludes stats rows with Minutes <= MinMinutes.
	MinMinutes float64

	// IncludePlayoffs also matches playoff rows. Off by default.
	IncludePlayoffs bool

	// Intercept adds a constant term. Off by default so the coefficients
	// reproduce the plain no-intercept regression.
	Intercept bool

	// Standardize fits on z-scored ratings.
	Standardize bool

	// Tolerance is the pivot tolerance for the normal-equation inverse.
	Tolerance float64

	// Scale multiplies each coefficient into Weight.Scaled.
	Scale float64

	Logger log.Logger
}

// DefaultOptions returns the settings of the classic PER regression.
func DefaultOptions() Options {
	return Options{
		Keys:       append([]string(nil), DefaultRatingKeys...),
		Response:   DefaultResponse,
		MinMinutes: DefaultMinMinutes,
		Tolerance:  matrix.DefaultTolerance,
		Scale:      DefaultScale,
	}
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	if len(o.Keys) == 0 {
		return errors.NewValidationError("keys", "at least one rating is required", o.Keys)
	}
	seen := make(map[string]bool, len(o.Keys))
	for _, k := range o.Keys {
		if k == "" {
			return errors.NewValidationError("keys", "rating names must not be empty", o.Keys)
		}
		if seen[k] {
			return errors.NewValidationError("keys", "duplicate rating "+k, o.Keys)
		}
		seen[k] = true
	}
	if o.Response == "" {
		return errors.NewValidationError("response", "is required", o.Response)
	}
	if seen[o.Response] {
		return errors.NewValidationError("response", "must not also be a regressor", o.Response)
	}
	if o.MinMinutes < 0 {
		return errors.NewValidationError("min_minutes", "must not be negative", o.MinMinutes)
	}
	if o.Tolerance < 0 {
		return errors.NewValidationError("tolerance", "must not be negative", o.Tolerance)
	}
	if o.Scale == 0 {
		return errors.NewValidationError("scale", "must not be zero", o.Scale)
	}
	return nil
}

func (o Options) logger() log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.GetLoggerWithName("ratings")
}
