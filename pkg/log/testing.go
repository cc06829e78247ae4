package log

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
)

// TestLogger captures JSON records in memory for assertions in tests.
type TestLogger struct {
	*ZerologLogger
	buffer *bytes.Buffer
}

// NewTestLogger returns a logger capturing records at or above level, plus the
// buffer it writes to. Records carry no timestamp.
//
//	logger, buf := log.NewTestLogger(log.LevelDebug)
//	est := linear.NewLinearRegression(linear.WithLogger(logger))
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	zl := zerolog.New(buffer).Level(toZerologLevel(level))
	return &TestLogger{ZerologLogger: NewZerologLoggerFrom(zl), buffer: buffer}, buffer
}

// GetLogEntries parses every captured record.
func (t *TestLogger) GetLogEntries() ([]map[string]interface{}, error) {
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(t.buffer.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage reports whether any record contains message.
func (t *TestLogger) ContainsMessage(message string) bool {
	return strings.Contains(t.buffer.String(), message)
}

// ContainsField reports whether any record has key set to value. Numbers come
// back from JSON as float64.
func (t *TestLogger) ContainsField(key string, value interface{}) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if v, ok := entry[key]; ok && v == value {
			return true
		}
	}
	return false
}

// Clear drops all captured records.
func (t *TestLogger) Clear() {
	t.buffer.Reset()
}
