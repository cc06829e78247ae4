package report

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/hoopsim/ratingfit/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// plotSize is the edge length of the square observed-vs-fitted plot.
const plotSize = 5 * vg.Inch

// WritePlot saves an observed-vs-fitted scatter with the y = x reference line.
// The image format follows the extension of path (png, svg, pdf, ...).
func WritePlot(path, response string, observed, fitted []float64) error {
	if len(observed) == 0 {
		return errors.NewModelError("report.WritePlot", "no points", errors.ErrEmptyData)
	}
	if len(observed) != len(fitted) {
		return errors.NewDimensionError("report.WritePlot", len(observed), len(fitted), 0)
	}
	if filepath.Ext(path) == "" {
		return errors.NewValidationError("plot", "path needs an image extension", path)
	}

	pts := make(plotter.XYs, len(observed))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range observed {
		pts[i].X = fitted[i]
		pts[i].Y = observed[i]
		lo = math.Min(lo, math.Min(observed[i], fitted[i]))
		hi = math.Max(hi, math.Max(observed[i], fitted[i]))
	}

	p := plot.New()
	label := strings.ToUpper(response)
	p.Title.Text = "Observed vs fitted " + label
	p.X.Label.Text = "fitted " + label
	p.Y.Label.Text = "observed " + label
	p.X.Min, p.X.Max = lo, hi
	p.Y.Min, p.Y.Max = lo, hi

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "build scatter")
	}
	scatter.GlyphStyle.Radius = vg.Points(1.5)

	identity := plotter.NewFunction(func(x float64) float64 { return x })
	identity.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(plotter.NewGrid(), scatter, identity)
	p.Legend.Add("samples", scatter)
	p.Legend.Add("y = x", identity)
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(plotSize, plotSize, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}
