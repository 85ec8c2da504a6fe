package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func fixedLogger(buf *bytes.Buffer) writerLogger {
	return writerLogger{
		mu:  &sync.Mutex{},
		w:   buf,
		now: func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestWriterLoggerFormatsObject(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)

	l.Info("credential saved", map[string]any{"path": "/tmp/x"})

	want := "2024-03-01T12:00:00Z INFO  credential saved obj={\"path\":\"/tmp/x\"}\n"
	if buf.String() != want {
		t.Fatalf("unexpected line:\n got %q\nwant %q", buf.String(), want)
	}
}

func TestNamedAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := Named(fixedLogger(&buf), "chat")

	l.Warn("slow reply", nil)

	if !strings.Contains(buf.String(), "WARN  [chat] slow reply") {
		t.Fatalf("component tag missing: %q", buf.String())
	}
}

func TestNamedLeavesForeignLoggers(t *testing.T) {
	if _, ok := Named(NopLogger{}, "chat").(NopLogger); !ok {
		t.Fatal("expected NopLogger to be returned unchanged")
	}
}

func TestDebugRespectsEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)

	Debug(false, l, "hidden", nil)
	Debugf(false, l, "hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	Debugf(true, l, "turn %d", 2)
	if !strings.Contains(buf.String(), "DEBUG turn 2") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}

func TestHelpersAcceptNilLogger(t *testing.T) {
	Info(nil, "x", nil)
	Warn(nil, "x", nil)
	Error(nil, "x", nil)
	Debug(true, nil, "x", nil)
}
