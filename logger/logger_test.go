package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func newJSONLogger(buf *bytes.Buffer, level string) *Logger {
	return New(&Config{Level: level, Format: "json", Writer: buf}, "test-svc")
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "invalid-level")
	l.Debug("hidden")
	l.Info("shown")
	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("invalid level should fall back to info, got %d lines", len(lines))
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "warn")
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	if got := len(decodeLines(t, &buf)); got != 2 {
		t.Errorf("expected 2 lines at warn level, got %d", got)
	}
}

func TestFieldsAreWritten(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "debug")
	l.WithComponent("localai").Info("done", Fields(FieldModel, "whisper-1", "bytes", 42))

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	line := lines[0]
	if line["message"] != "done" {
		t.Errorf("message = %v", line["message"])
	}
	if line[FieldComponent] != "localai" {
		t.Errorf("component = %v", line[FieldComponent])
	}
	if line[FieldModel] != "whisper-1" {
		t.Errorf("model = %v", line[FieldModel])
	}
	if line["service"] != "test-svc" {
		t.Errorf("service = %v", line["service"])
	}
}

func TestWithContextRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "info")

	ctx := ContextWithRequestID(context.Background(), "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Fatalf("RequestIDFromContext = %q", got)
	}
	l.WithContext(ctx).Info("with id")

	lines := decodeLines(t, &buf)
	if lines[0][FieldRequestID] != "req-123" {
		t.Errorf("request_id = %v", lines[0][FieldRequestID])
	}
}

func TestWithContextNoRequestID(t *testing.T) {
	l := NewDefault("test")
	if l.WithContext(context.Background()) != l {
		t.Error("expected the same logger when context has no request id")
	}
}

func TestWithErrorAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "info")
	l.WithError(errors.New("boom")).WithFields(map[string]interface{}{"k": "v"}).Error("failed")

	line := decodeLines(t, &buf)[0]
	if line["error"] != "boom" {
		t.Errorf("error = %v", line["error"])
	}
	if line["k"] != "v" {
		t.Errorf("k = %v", line["k"])
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp to be enabled")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "debug", Format: "json", Output: "stdout"}, false},
		{"pretty", Config{Level: "info", Format: "pretty", Output: "stderr"}, false},
		{"bad level", Config{Level: "verbose", Format: "json", Output: "stdout"}, true},
		{"bad format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"bad output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: "info", Format: "console", NoColor: true, Writer: &buf}, "")
	l.Info("hello", Fields("k", "v"))
	out := buf.String()
	if !strings.Contains(out, "[INF]") {
		t.Errorf("console output missing level tag: %q", out)
	}
	if !strings.Contains(out, "k:") {
		t.Errorf("console output missing field name: %q", out)
	}
}

func TestInitSetsGlobal(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Writer: &buf, ServiceName: "cli"})
	Info("global")
	line := decodeLines(t, &buf)[0]
	if line["service"] != "cli" {
		t.Errorf("service = %v", line["service"])
	}
}

func TestRegisterAndGet(t *testing.T) {
	defer Reset()

	l := NewDefault("registered")
	Register("custom", l)
	if Get("custom") != l {
		t.Error("expected registered logger")
	}
	if Get("unregistered") == nil {
		t.Error("expected fallback logger")
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if len(m) != 2 {
		t.Errorf("expected 2 fields, got %v", m)
	}
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("invoke", errors.New("bad"))
	if ef[FieldOperation] != "invoke" || ef[FieldError] != "bad" {
		t.Errorf("ErrorFields = %v", ef)
	}
	df := DurationFields("invoke", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("DurationFields = %v", df)
	}
}
