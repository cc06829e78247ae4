package ratings

import (
	"fmt"

	"github.com/hoopsim/ratingfit/pkg/errors"
	"github.com/hoopsim/ratingfit/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// Sample is one ratings season paired with the matching stats row.
type Sample struct {
	PID      int
	Season   int
	Playoffs bool
	Minutes  float64

	// Ratings follows Dataset.Keys.
	Ratings  []float64
	Response float64
}

// Dataset is the regression input collected from a set of players.
type Dataset struct {
	Keys     []string
	Response string
	Samples  []Sample

	// Skipped counts season-matched stats rows dropped by the minutes floor
	// or the playoffs filter.
	Skipped int
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.Samples) }

// Design returns the n×k ratings matrix.
func (d *Dataset) Design() *mat.Dense {
	X := mat.NewDense(len(d.Samples), len(d.Keys), nil)
	for i, s := range d.Samples {
		X.SetRow(i, s.Ratings)
	}
	return X
}

// Target returns the n×1 response column.
func (d *Dataset) Target() *mat.Dense {
	y := mat.NewDense(len(d.Samples), 1, nil)
	for i, s := range d.Samples {
		y.Set(i, 0, s.Response)
	}
	return y
}

// Collect builds a Dataset. For every ratings season of every player, each
// stats row of the same season contributes a sample when its minutes are
// strictly above opts.MinMinutes and it is a regular-season row (or
// opts.IncludePlayoffs is set).
//
// A qualifying row missing the response stat, or a ratings season missing one
// of opts.Keys, is a ValidationError naming the player. No qualifying rows at
// all is ErrEmptyData.
func Collect(players []Player, opts Options) (*Dataset, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.logger()

	ds := &Dataset{
		Keys:     append([]string(nil), opts.Keys...),
		Response: opts.Response,
	}

	for _, p := range players {
		for _, pr := range p.Ratings {
			for _, ps := range p.Stats {
				if ps.Season != pr.Season {
					continue
				}
				if (ps.Playoffs && !opts.IncludePlayoffs) || ps.Minutes <= opts.MinMinutes {
					ds.Skipped++
					continue
				}

				sample, err := newSample(p, pr, ps, opts)
				if err != nil {
					return nil, err
				}
				ds.Samples = append(ds.Samples, sample)
			}
		}
	}

	if len(ds.Samples) == 0 {
		return nil, errors.NewModelError("ratings.Collect",
			"no stats rows above the minutes floor", errors.ErrEmptyData)
	}

	logger.Info("samples collected",
		log.OperationKey, log.OperationCollect,
		log.PlayersKey, len(players),
		log.SamplesKey, len(ds.Samples),
		log.SkippedKey, ds.Skipped,
		log.MinMinutesKey, opts.MinMinutes,
		log.ResponseKey, opts.Response,
	)
	return ds, nil
}

func newSample(p Player, pr SeasonRatings, ps SeasonStats, opts Options) (Sample, error) {
	response, ok := ps.Values[opts.Response]
	if !ok {
		return Sample{}, errors.NewValidationError(opts.Response,
			fmt.Sprintf("missing from %s stats for season %d", p.label(), ps.Season), nil)
	}

	values := make([]float64, len(opts.Keys))
	for j, k := range opts.Keys {
		v, ok := pr.Values[k]
		if !ok {
			return Sample{}, errors.NewValidationError(k,
				fmt.Sprintf("missing from %s ratings for season %d", p.label(), pr.Season), nil)
		}
		values[j] = v
	}

	return Sample{
		PID:      p.PID,
		Season:   pr.Season,
		Playoffs: ps.Playoffs,
		Minutes:  ps.Minutes,
		Ratings:  values,
		Response: response,
	}, nil
}
