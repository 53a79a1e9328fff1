package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

// captureLogger returns a Logger writing JSON to an in-memory buffer.
func captureLogger(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})
	return NewWithHandler(h), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var obj map[string]any
	if err := json.Unmarshal(buf.Bytes(), &obj); err != nil {
		t.Fatalf("decoding log line %q: %v", buf.String(), err)
	}
	return obj
}

func TestLoggerWritesAttrs(t *testing.T) {
	l, buf := captureLogger(slog.LevelInfo)
	l.Info("merged", "node", 3)

	obj := decodeLine(t, buf)
	if obj["msg"] != "merged" {
		t.Errorf("msg: got %v, want merged", obj["msg"])
	}
	if obj["node"] != float64(3) {
		t.Errorf("node attr: got %v, want 3", obj["node"])
	}
}

func TestLoggerLevelFilters(t *testing.T) {
	l, buf := captureLogger(slog.LevelInfo)
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line should be filtered at info level, got %q", buf.String())
	}

	l.Error("shown")
	if buf.Len() == 0 {
		t.Error("error line should pass at info level")
	}
}

func TestModuleAttachesContext(t *testing.T) {
	l, buf := captureLogger(slog.LevelInfo)
	l.Module("rollup").Info("block root merged")

	obj := decodeLine(t, buf)
	if obj["module"] != "rollup" {
		t.Errorf("module attr: got %v, want rollup", obj["module"])
	}
}

func TestWithAttachesContext(t *testing.T) {
	l, buf := captureLogger(slog.LevelInfo)
	l.With("block", 5).Warn("gap")

	obj := decodeLine(t, buf)
	if obj["block"] != float64(5) {
		t.Errorf("block attr: got %v, want 5", obj["block"])
	}
	if obj["level"] != "WARN" {
		t.Errorf("level: got %v, want WARN", obj["level"])
	}
}

func TestSetDefaultIgnoresNil(t *testing.T) {
	before := Default()
	SetDefault(nil)
	if Default() != before {
		t.Error("SetDefault(nil) should keep the current default")
	}

	l, _ := captureLogger(slog.LevelInfo)
	SetDefault(l)
	defer SetDefault(before)
	if Default() != l {
		t.Error("SetDefault should replace the default logger")
	}
}
