package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		format      string
		wantJSON    bool
	}{
		{name: "production uses json", environment: "production", wantJSON: true},
		{name: "development uses pretty", environment: "development"},
		{name: "staging uses pretty", environment: "staging"},
		{name: "explicit format wins", environment: "development", format: "json", wantJSON: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Writer: &buf, Environment: tt.environment, Format: tt.format})
			log.Info("book created", "book_id", "book-1")

			out := buf.String()
			if tt.wantJSON {
				assert.Contains(t, out, `"msg":"book created"`)
				assert.Contains(t, out, `"book_id":"book-1"`)
			} else {
				assert.Contains(t, out, "INF")
				assert.Contains(t, out, "book_id=book-1")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: formatPretty, Level: slog.LevelWarn})

	log.Debug("hidden debug")
	log.Info("hidden info")
	log.Warn("shown warn")
	log.Error("shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "ERR")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestLogger_Component(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: formatJSON})

	log.Component("recommend").Info("ranked", "results", 3)

	assert.Contains(t, buf.String(), `"component":"recommend"`)
	assert.Contains(t, buf.String(), `"results":3`)
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: formatJSON})

	log.WithError(errors.New("disk full")).Error("index failed")

	assert.Contains(t, buf.String(), `"error":"disk full"`)
}

func TestDiscard(t *testing.T) {
	log := Discard()
	require.NotNil(t, log)
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestForEnvironment(t *testing.T) {
	log := ForEnvironment("production", "error")
	assert.False(t, log.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_Attributes(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, nil)).
		With("service", "books").
		WithGroup("req").
		With("method", "GET")

	log.Info("handled", "status", 200, "title", "The Hobbit")

	out := buf.String()
	assert.Contains(t, out, "service=books")
	assert.Contains(t, out, "req.method=GET")
	assert.Contains(t, out, "req.status=200")
	assert.Contains(t, out, `req.title="The Hobbit"`)
	assert.Less(t, strings.Index(out, "service="), strings.Index(out, "req.method="))
}

func TestPrettyHandler_EmptyGroupIsIgnored(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, nil)
	assert.Same(t, h, h.WithGroup(""))
}

func TestPrettyHandler_WithSource(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{AddSource: true}))

	log.Info("with source")

	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestPrettyHandler_NoAttributes(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewPrettyHandler(&buf, nil)).Info("plain")

	line := strings.TrimSuffix(buf.String(), "\n")
	assert.True(t, strings.HasSuffix(line, "plain"+colorReset))
}

func TestFormatLevel(t *testing.T) {
	tests := []struct {
		level     slog.Level
		wantStr   string
		wantColor string
	}{
		{slog.LevelDebug, "DBG", colorMagenta},
		{slog.LevelInfo, "INF", colorGreen},
		{slog.LevelWarn, "WRN", colorYellow},
		{slog.LevelError, "ERR", colorRed},
		{slog.Level(12), "ERROR+4", colorGray},
	}

	for _, tt := range tests {
		t.Run(tt.wantStr, func(t *testing.T) {
			str, color := formatLevel(tt.level)
			assert.Equal(t, tt.wantStr, str)
			assert.Equal(t, tt.wantColor, color)
		})
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value slog.Value
		want  string
	}{
		{name: "bare string", value: slog.StringValue("cozy"), want: "cozy"},
		{name: "string with space", value: slog.StringValue("Fourth Wing"), want: `"Fourth Wing"`},
		{name: "empty string", value: slog.StringValue(""), want: `""`},
		{name: "int", value: slog.IntValue(42), want: "42"},
		{name: "bool", value: slog.BoolValue(true), want: "true"},
		{name: "duration", value: slog.DurationValue(1500 * time.Millisecond), want: "1.5s"},
		{name: "time", value: slog.TimeValue(ts), want: "2024-03-01T12:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.value))
		})
	}
}
