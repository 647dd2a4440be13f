package entry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"TRACE", LevelDebug},
		{"Info", LevelInfo},
		{"warning", LevelWarn},
		{" err ", LevelError},
		{"panic", LevelFatal},
		{"verbose", LevelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLogEntry_Format(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	e := LogEntry{Timestamp: ts, Stream: "stdout", Message: "ready"}
	assert.Equal(t, "[2024-03-01T10:00:00Z][stdout]: ready", e.Format())

	e.Level = LevelWarn
	assert.Equal(t, "[2024-03-01T10:00:00Z][stdout][WARN]: ready", e.Format())
}
