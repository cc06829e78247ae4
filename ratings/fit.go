package ratings

import (
	"context"
	"time"

	"github.com/hoopsim/ratingfit/core/model"
	"github.com/hoopsim/ratingfit/linear"
	"github.com/hoopsim/ratingfit/metrics"
	"github.com/hoopsim/ratingfit/pkg/errors"
	"github.com/hoopsim/ratingfit/pkg/log"
	"github.com/hoopsim/ratingfit/preprocessing"
	"gonum.org/v1/gonum/mat"
)

// Weight is the fitted coefficient of one rating.
type Weight struct {
	Rating string `json:"rating" yaml:"rating"`

	// Coefficient is the fitted value, on z-scored ratings when the fit was
	// standardized.
	Coefficient float64 `json:"coefficient" yaml:"coefficient"`

	// Scaled is Coefficient multiplied by Options.Scale.
	Scaled float64 `json:"scaled" yaml:"scaled"`

	// Raw is the coefficient in rating points. It equals Coefficient unless
	// the fit was standardized.
	Raw float64 `json:"raw" yaml:"raw"`
}

// Result is the outcome of Fit.
type Result struct {
	RunID        string   `json:"run_id" yaml:"run_id"`
	Response     string   `json:"response" yaml:"response"`
	Samples      int      `json:"samples" yaml:"samples"`
	Skipped      int      `json:"skipped" yaml:"skipped"`
	Intercept    float64  `json:"intercept" yaml:"intercept"`
	Standardized bool     `json:"standardized" yaml:"standardized"`
	Scale        float64  `json:"scale" yaml:"scale"`
	Weights      []Weight `json:"weights" yaml:"weights"`
	R2           float64  `json:"r2" yaml:"r2"`
	RMSE         float64  `json:"rmse" yaml:"rmse"`

	// Observed and Fitted are the response and in-sample predictions, in
	// sample order.
	Observed []float64 `json:"-" yaml:"-"`
	Fitted   []float64 `json:"-" yaml:"-"`

	model  *linear.LinearRegression
	scaler *preprocessing.StandardScaler
}

// ModelWeights exports the fitted model with fit statistics in its metadata.
func (r *Result) ModelWeights() (*model.ModelWeights, error) {
	if r.model == nil {
		return nil, errors.NewNotFittedError("ratings.Result", "ModelWeights")
	}
	mw, err := r.model.ModelWeights()
	if err != nil {
		return nil, err
	}
	mw.Metadata = map[string]interface{}{
		"response":     r.Response,
		"samples":      r.Samples,
		"r2":           r.R2,
		"rmse":         r.RMSE,
		"standardized": r.Standardized,
	}
	if r.scaler != nil {
		mw.Metadata["scaler"] = r.scaler.GetParams()
	}
	return mw, nil
}

// Fit regresses the dataset response on its ratings. ctx is checked between
// the preparation, fit and scoring phases.
func Fit(ctx context.Context, ds *Dataset, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if ds == nil || ds.Len() == 0 {
		return nil, errors.NewModelError("ratings.Fit", "empty dataset", errors.ErrEmptyData)
	}
	logger := opts.logger()
	start := time.Now()

	X := mat.Matrix(ds.Design())
	y := ds.Target()

	var scaler *preprocessing.StandardScaler
	if opts.Standardize {
		scaler = preprocessing.NewStandardScalerDefault()
		scaled, err := scaler.FitTransform(X)
		if err != nil {
			return nil, errors.Wrap(err, "standardize ratings")
		}
		X = scaled
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lr := linear.NewLinearRegression(
		linear.WithFitIntercept(opts.Intercept),
		linear.WithTolerance(opts.Tolerance),
		linear.WithFeatureNames(ds.Keys...),
		linear.WithLogger(logger),
	)
	if err := lr.Fit(X, y); err != nil {
		logger.Error("ratings fit failed", err,
			log.OperationKey, log.OperationFit,
			log.SamplesKey, ds.Len(),
			log.FeaturesKey, len(ds.Keys),
		)
		return nil, errors.Wrapf(err, "fit %s on %d ratings", ds.Response, len(ds.Keys))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pred, err := lr.Predict(X)
	if err != nil {
		return nil, err
	}
	r2, err := metrics.R2Score(y, pred)
	if err != nil {
		return nil, err
	}
	rmse, err := metrics.RMSE(y, pred)
	if err != nil {
		return nil, err
	}
	if err := errors.CheckScalar("ratings.Fit", rmse, 0); err != nil {
		return nil, err
	}

	coef := lr.GetWeights()
	raw := coef
	intercept := lr.GetIntercept()
	if scaler != nil {
		raw, _, err = scaler.UnscaleCoefficients(coef, intercept)
		if err != nil {
			return nil, err
		}
	}

	weights := make([]Weight, len(coef))
	for j, c := range coef {
		weights[j] = Weight{
			Rating:      ds.Keys[j],
			Coefficient: c,
			Scaled:      c * opts.Scale,
			Raw:         raw[j],
		}
	}

	res := &Result{
		RunID:        lr.RunID(),
		Response:     ds.Response,
		Samples:      ds.Len(),
		Skipped:      ds.Skipped,
		Intercept:    intercept,
		Standardized: opts.Standardize,
		Scale:        opts.Scale,
		Weights:      weights,
		R2:           r2,
		RMSE:         rmse,
		Observed:     mat.Col(nil, 0, y),
		Fitted:       mat.Col(nil, 0, pred),
		model:        lr,
		scaler:       scaler,
	}

	logger.Info("ratings fit complete",
		log.OperationKey, log.OperationFit,
		log.EstimatorIDKey, res.RunID,
		log.ResponseKey, res.Response,
		log.SamplesKey, res.Samples,
		log.FeaturesKey, len(weights),
		log.InterceptKey, opts.Intercept,
		log.StandardKey, opts.Standardize,
		log.R2ScoreKey, r2,
		log.RMSEKey, rmse,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return res, nil
}

// Run collects samples from players and fits them.
func Run(ctx context.Context, players []Player, opts Options) (*Result, error) {
	ds, err := Collect(players, opts)
	if err != nil {
		return nil, err
	}
	return Fit(ctx, ds, opts)
}
