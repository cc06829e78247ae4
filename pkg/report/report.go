// Package report renders a ratings fit as text, markdown, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/hoopsim/ratingfit/pkg/errors"
	"github.com/hoopsim/ratingfit/ratings"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat converts a format name. Unknown names are a ValidationError.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.NewValidationError("format", "must be one of text, markdown, json, yaml", s)
	}
}

// Options controls rendering.
type Options struct {
	Format Format

	// Color highlights positive and negative weights in text output.
	Color bool
}

// Write renders res to w.
func Write(w io.Writer, res *ratings.Result, opts Options) error {
	if res == nil {
		return errors.NewValueError("report.Write", "no result to render")
	}

	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return errors.Wrap(err, "encode json report")
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return errors.Wrap(err, "encode yaml report")
		}
		return errors.Wrap(enc.Close(), "encode yaml report")
	case FormatMarkdown:
		return writeMarkdown(w, res)
	case FormatText, "":
		return writeText(w, res, opts.Color)
	default:
		return errors.NewValidationError("format", "unsupported", string(opts.Format))
	}
}

func headers(res *ratings.Result) []string {
	h := []string{"Rating", "Coefficient", "x" + formatNumber(res.Scale)}
	if res.Standardized {
		h = append(h, "Raw")
	}
	return h
}

func rows(res *ratings.Result) [][]string {
	out := make([][]string, len(res.Weights))
	for i, wt := range res.Weights {
		row := []string{wt.Rating, formatNumber(wt.Coefficient), fmt.Sprintf("%.2f", wt.Scaled)}
		if res.Standardized {
			row = append(row, formatNumber(wt.Raw))
		}
		out[i] = row
	}
	return out
}

func summary(res *ratings.Result) []string {
	lines := []string{
		fmt.Sprintf("Response:  %s", res.Response),
		fmt.Sprintf("Samples:   %d (%d rows skipped)", res.Samples, res.Skipped),
		fmt.Sprintf("R²:        %.4f", res.R2),
		fmt.Sprintf("RMSE:      %.4f", res.RMSE),
	}
	if res.Intercept != 0 {
		lines = append(lines, fmt.Sprintf("Intercept: %s", formatNumber(res.Intercept)))
	}
	return lines
}

func writeText(w io.Writer, res *ratings.Result, colored bool) error {
	title := fmt.Sprintf("Rating weights for %s", strings.ToUpper(res.Response))
	bold := color.New(color.Bold)
	pos := color.New(color.FgGreen)
	neg := color.New(color.FgRed)
	for _, c := range []*color.Color{bold, pos, neg} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	bold.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
	for _, line := range summary(res) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{Left: tw.Off, Right: tw.Off, Top: tw.Off, Bottom: tw.Off},
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenColumns: tw.Off},
			},
		}),
	)

	table.Header(headers(res))
	for i, row := range rows(res) {
		if res.Weights[i].Scaled < 0 {
			row[2] = neg.Sprint(row[2])
		} else {
			row[2] = pos.Sprint(row[2])
		}
		table.Append(row)
	}
	table.Render()
	return nil
}

func writeMarkdown(w io.Writer, res *ratings.Result) error {
	fmt.Fprintf(w, "## Rating weights for %s\n\n", strings.ToUpper(res.Response))
	for _, line := range summary(res) {
		fmt.Fprintf(w, "- %s\n", line)
	}
	fmt.Fprintln(w)

	h := headers(res)
	fmt.Fprintf(w, "| %s |\n", strings.Join(h, " | "))
	seps := make([]string, len(h))
	for i := range seps {
		seps[i] = "---"
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))
	for _, row := range rows(res) {
		fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | "))
	}
	fmt.Fprintln(w)
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
