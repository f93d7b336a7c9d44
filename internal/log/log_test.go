package log

import (
	"bytes"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevLevel := out, minLevel
	out = &buf
	t.Cleanup(func() {
		out = prevOut
		minLevel = prevLevel
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelInfo)

	Debug("hidden")
	Info("shown")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Error("debug line emitted at info level")
	}
	if !strings.Contains(got, "[INFO] shown") {
		t.Errorf("info line missing: %q", got)
	}

	buf.Reset()
	SetLevel(LevelError)
	Info("also hidden")
	if buf.Len() != 0 {
		t.Errorf("info emitted at error level: %q", buf.String())
	}
}

func TestKeyValueRendering(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelDebug)

	Info("loaded", "path", "/tmp/config.yaml", "count", 3)

	got := buf.String()
	if !strings.Contains(got, "path=/tmp/config.yaml") || !strings.Contains(got, "count=3") {
		t.Errorf("pairs missing: %q", got)
	}

	// Values with spaces are quoted so the line stays parseable.
	buf.Reset()
	Info("msg", "subject", "Coffee with Ali")
	if !strings.Contains(buf.String(), `subject="Coffee with Ali"`) {
		t.Errorf("quoting missing: %q", buf.String())
	}

	// Odd trailing elements and non-string keys are dropped, not rendered.
	buf.Reset()
	Info("msg", "key", "value", "dangling")
	if strings.Contains(buf.String(), "dangling") {
		t.Errorf("dangling element rendered: %q", buf.String())
	}
}

func TestErrorAttachesErr(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelDebug)

	Error("save failed", errTest, "file", "token.json")

	got := buf.String()
	if !strings.Contains(got, "[ERROR] save failed") || !strings.Contains(got, "err=boom") {
		t.Errorf("error line = %q", got)
	}
}

type testErr struct{}

func (testErr) Error() string { return "boom" }

var errTest = testErr{}
