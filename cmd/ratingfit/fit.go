package main

import (
	"io"
	"os"

	"github.com/hoopsim/ratingfit/core/model"
	"github.com/hoopsim/ratingfit/pkg/config"
	"github.com/hoopsim/ratingfit/pkg/errors"
	"github.com/hoopsim/ratingfit/pkg/log"
	"github.com/hoopsim/ratingfit/pkg/report"
	"github.com/hoopsim/ratingfit/ratings"
	"github.com/spf13/cobra"
)

type fitFlags struct {
	configPath  string
	format      string
	output      string
	ratings     []string
	response    string
	minMinutes  float64
	playoffs    bool
	intercept   bool
	standardize bool
	tolerance   float64
	scale       float64
	plot        string
	saveWeights string
	logLevel    string
	noColor     bool
}

func newFitCmd() *cobra.Command {
	var f fitFlags

	cmd := &cobra.Command{
		Use:   "fit <players.json|players.yaml|samples.csv>",
		Short: "Fit rating weights from player data",
		Long: `Fit loads players from a JSON or YAML export, or flat sample rows from a
CSV file, collects one sample per qualifying season and prints the fitted
weight of every rating.

Settings come from --config, else ratingfit.{toml,yaml,yml,json} in the
current directory, else the defaults. Flags override both.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(cmd, args[0], &f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "config file (default: ./ratingfit.toml if present)")
	fl.StringVarP(&f.format, "format", "f", "", "output format: text, markdown, json, yaml")
	fl.StringVarP(&f.output, "output", "o", "", "write the report to a file instead of stdout")
	fl.StringSliceVar(&f.ratings, "ratings", nil, "ratings to regress on (default: all 15)")
	fl.StringVar(&f.response, "response", "", "stats field to regress (default: per)")
	fl.Float64Var(&f.minMinutes, "min-minutes", 0, "only use stats rows with more minutes than this (default: 500)")
	fl.BoolVar(&f.playoffs, "playoffs", false, "include playoff rows")
	fl.BoolVar(&f.intercept, "intercept", false, "fit an intercept term")
	fl.BoolVar(&f.standardize, "standardize", false, "fit on z-scored ratings")
	fl.Float64Var(&f.tolerance, "tolerance", 0, "relative pivot tolerance for the matrix inverse")
	fl.Float64Var(&f.scale, "scale", 0, "multiplier for the scaled coefficient column (default: 100)")
	fl.StringVar(&f.plot, "plot", "", "write an observed-vs-fitted plot (png, svg, pdf)")
	fl.StringVar(&f.saveWeights, "save-weights", "", "write the fitted model weights as JSON")
	fl.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fl.BoolVar(&f.noColor, "no-color", false, "disable coloured text output")

	return cmd
}

func runFit(cmd *cobra.Command, input string, f *fitFlags) error {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg, f)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := log.Setup(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr()); err != nil {
		return err
	}
	logger := log.GetLoggerWithName("cli")

	if err := fit(cmd, input, cfg, logger); err != nil {
		logger.Error("fit command failed", err, log.SourceKey, input)
		return err
	}
	return nil
}

func fit(cmd *cobra.Command, input string, cfg *config.Config, logger log.Logger) error {
	opts := cfg.RatingsOptions(logger)

	players, err := ratings.LoadPlayersFile(input, opts.Keys, opts.Response, logger)
	if err != nil {
		return err
	}
	res, err := ratings.Run(cmd.Context(), players, opts)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	if err := writeReport(cmd.OutOrStdout(), cfg.Output, report.Options{Format: format, Color: cfg.Output.Color}, res); err != nil {
		return err
	}

	if cfg.Output.Plot != "" {
		if err := report.WritePlot(cfg.Output.Plot, res.Response, res.Observed, res.Fitted); err != nil {
			return err
		}
		logger.Info("plot written", log.OperationKey, log.OperationReport, log.SourceKey, cfg.Output.Plot)
	}

	if cfg.Output.Weights != "" {
		mw, err := res.ModelWeights()
		if err != nil {
			return err
		}
		if err := model.SaveWeights(mw, cfg.Output.Weights); err != nil {
			return err
		}
		logger.Info("weights saved", log.OperationKey, log.OperationReport, log.SourceKey, cfg.Output.Weights)
	}
	return nil
}

func writeReport(stdout io.Writer, out config.OutputConfig, opts report.Options, res *ratings.Result) error {
	if out.File == "" {
		return report.Write(stdout, res, opts)
	}

	file, err := os.Create(out.File)
	if err != nil {
		return errors.Wrapf(err, "create %s", out.File)
	}
	defer file.Close()

	opts.Color = false
	return report.Write(file, res, opts)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault()
}

// applyFlags overrides config values with flags the user actually set.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f *fitFlags) {
	fl := cmd.Flags()
	if fl.Changed("format") {
		cfg.Output.Format = f.format
	}
	if fl.Changed("output") {
		cfg.Output.File = f.output
	}
	if fl.Changed("no-color") {
		cfg.Output.Color = !f.noColor
	}
	if fl.Changed("plot") {
		cfg.Output.Plot = f.plot
	}
	if fl.Changed("save-weights") {
		cfg.Output.Weights = f.saveWeights
	}
	if fl.Changed("ratings") {
		cfg.Fit.Ratings = f.ratings
	}
	if fl.Changed("response") {
		cfg.Fit.Response = f.response
	}
	if fl.Changed("min-minutes") {
		cfg.Fit.MinMinutes = f.minMinutes
	}
	if fl.Changed("playoffs") {
		cfg.Fit.IncludePlayoffs = f.playoffs
	}
	if fl.Changed("intercept") {
		cfg.Fit.Intercept = f.intercept
	}
	if fl.Changed("standardize") {
		cfg.Fit.Standardize = f.standardize
	}
	if fl.Changed("tolerance") {
		cfg.Fit.Tolerance = f.tolerance
	}
	if fl.Changed("scale") {
		cfg.Fit.Scale = f.scale
	}
	if fl.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
}
