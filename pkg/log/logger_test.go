package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hoopsim/ratingfit/pkg/errors"
)

func TestLoggerLevels(t *testing.T) {
	logger, buffer := NewTestLogger(LevelDebug)

	logger.Debug("debug message", "key1", "value1", "number", 42)
	logger.Info("info message", OperationKey, OperationFit)
	logger.Warn("warning message", ErrorCodeKey, ErrorEmptyData)
	logger.Error("error message", errors.New("boom"), ErrorCodeKey, ErrorSingularMatrix)

	if buffer.Len() == 0 {
		t.Fatal("expected log output")
	}
	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !logger.ContainsMessage(msg) {
			t.Errorf("%q not captured", msg)
		}
	}
	if !logger.ContainsField("key1", "value1") {
		t.Error("field key1=value1 not found")
	}
	if !logger.ContainsField("number", 42.0) {
		t.Error("field number=42 not found")
	}
	if !logger.ContainsField("error", "boom") {
		t.Error("leading error not attached under \"error\"")
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	logger, _ := NewTestLogger(LevelWarn)

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("shown warn")

	if logger.ContainsMessage("hidden") {
		t.Error("records below the level were captured")
	}
	if !logger.ContainsMessage("shown warn") {
		t.Error("warn record missing")
	}

	ctx := context.Background()
	if logger.Enabled(ctx, LevelInfo) {
		t.Error("Enabled(Info) should be false at Warn")
	}
	if !logger.Enabled(ctx, LevelError) {
		t.Error("Enabled(Error) should be true at Warn")
	}
}

func TestLoggerWith(t *testing.T) {
	logger, _ := NewTestLogger(LevelDebug)

	child := logger.With(ModelNameKey, "LinearRegression", EstimatorIDKey, "lr-001")
	child.Info("fit complete", SamplesKey, 100)

	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry[ModelNameKey] != "LinearRegression" || entry[EstimatorIDKey] != "lr-001" {
		t.Errorf("context fields missing: %v", entry)
	}
	if entry[SamplesKey] != 100.0 {
		t.Errorf("samples = %v", entry[SamplesKey])
	}
}

func TestStructuredErrorEmbedding(t *testing.T) {
	logger, _ := NewTestLogger(LevelDebug)

	err := errors.NewShapeError("Multiply", "incompatible sizes", [2]int{2, 3}, [2]int{4, 5})
	logger.Error("multiply failed", err)

	entries, _ := logger.GetLogEntries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	detail, ok := entries[0]["error_detail"].(map[string]interface{})
	if !ok {
		t.Fatalf("error_detail missing: %v", entries[0])
	}
	if detail["type"] != "ShapeError" {
		t.Errorf("type = %v", detail["type"])
	}
	if _, ok := entries[0]["stack"]; !ok {
		t.Error("expected cockroachdb stack under \"stack\"")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetup(t *testing.T) {
	prev := GetLogger()
	defer SetLogger(prev)
	defer errors.SetZerologWarnFunc(nil)

	var buf bytes.Buffer
	if err := Setup("info", "json", &buf); err != nil {
		t.Fatal(err)
	}

	GetLoggerWithName("ratings").Info("loaded", PlayersKey, 3)
	errors.Warn(errors.NewUndefinedMetricWarning("r2", "constant response", 0))

	out := buf.String()
	if !strings.Contains(out, `"ml.component":"ratings"`) {
		t.Errorf("component tag missing: %s", out)
	}
	if !strings.Contains(out, "UndefinedMetricWarning") && !strings.Contains(out, "ill-defined") {
		t.Errorf("warning not routed through zerolog: %s", out)
	}

	if err := Setup("info", "xml", &buf); err == nil {
		t.Error("expected error for unknown format")
	}
	if err := Setup("loud", "json", &buf); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLevelString(t *testing.T) {
	if LevelWarn.String() != "WARN" || Level(99).String() != "UNKNOWN" {
		t.Error("unexpected level names")
	}
}
