package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hoopsim/ratingfit/pkg/errors"
	"github.com/hoopsim/ratingfit/ratings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult() *ratings.Result {
	return &ratings.Result{
		RunID:    "7f1c2a4e-0000-4000-8000-000000000001",
		Response: "per",
		Samples:  412,
		Skipped:  37,
		Scale:    100,
		Weights: []ratings.Weight{
			{Rating: "hgt", Coefficient: 0.1532, Scaled: 15.32, Raw: 0.1532},
			{Rating: "endu", Coefficient: -0.0211, Scaled: -2.11, Raw: -0.0211},
		},
		R2:       0.6123,
		RMSE:     3.4567,
		Observed: []float64{10, 12, 18, 21},
		Fitted:   []float64{11, 12.5, 17, 20},
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":         FormatText,
		"text":     FormatText,
		"MD":       FormatMarkdown,
		"markdown": FormatMarkdown,
		"json":     FormatJSON,
		"yml":      FormatYAML,
		" yaml ":   FormatYAML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("html")
	var vErr *errors.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), Options{Format: FormatText}))

	out := buf.String()
	assert.Contains(t, out, "Rating weights for PER")
	assert.Contains(t, out, "Samples:   412 (37 rows skipped)")
	assert.Contains(t, out, "R²:        0.6123")
	assert.Contains(t, out, "hgt")
	assert.Contains(t, out, "15.32")
	assert.Contains(t, out, "-2.11")
	assert.NotContains(t, out, "\x1b[", "colour disabled")
	assert.NotContains(t, out, "Intercept")
}

func TestWrite_TextColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), Options{Format: FormatText, Color: true}))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestWrite_Markdown(t *testing.T) {
	res := sampleResult()
	res.Standardized = true
	res.Intercept = 1.25

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, res, Options{Format: FormatMarkdown}))

	out := buf.String()
	assert.Contains(t, out, "## Rating weights for PER")
	assert.Contains(t, out, "| Rating | Coefficient | x100 | Raw |")
	assert.Contains(t, out, "| --- | --- | --- | --- |")
	assert.Contains(t, out, "| hgt | 0.1532 | 15.32 | 0.1532 |")
	assert.Contains(t, out, "- Intercept: 1.25")
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), Options{Format: FormatJSON}))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "per", decoded["response"])
	assert.Equal(t, 412.0, decoded["samples"])
	assert.NotContains(t, decoded, "Observed")

	weights, ok := decoded["weights"].([]interface{})
	require.True(t, ok)
	require.Len(t, weights, 2)
	assert.Equal(t, "hgt", weights[0].(map[string]interface{})["rating"])
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), Options{Format: FormatYAML}))

	var decoded ratings.Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "per", decoded.Response)
	require.Len(t, decoded.Weights, 2)
	assert.Equal(t, -2.11, decoded.Weights[1].Scaled)
	assert.Empty(t, decoded.Observed)
}

func TestWrite_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, nil, Options{}))
	assert.Error(t, Write(&buf, sampleResult(), Options{Format: "html"}))
}

func TestWritePlot(t *testing.T) {
	res := sampleResult()
	dir := t.TempDir()

	for _, name := range []string{"fit.png", "fit.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WritePlot(path, res.Response, res.Observed, res.Fitted), name)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	svg, err := os.ReadFile(filepath.Join(dir, "fit.svg"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(svg), "<svg"))
}

func TestWritePlot_Errors(t *testing.T) {
	dir := t.TempDir()

	err := WritePlot(filepath.Join(dir, "a.png"), "per", nil, nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	err = WritePlot(filepath.Join(dir, "a.png"), "per", []float64{1, 2}, []float64{1})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	assert.Error(t, WritePlot(filepath.Join(dir, "noext"), "per", []float64{1}, []float64{1}))
}
