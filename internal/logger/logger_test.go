package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestVerboseGating(t *testing.T) {
	verbose := false
	log := NewWithCallback("session", func() bool { return verbose })
	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.Debug("hidden %d", 1)
	log.Info("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("expected no output when not verbose, got %q", buf.String())
	}

	log.Warn("shown")
	if !strings.Contains(buf.String(), "WARN [session] shown") {
		t.Errorf("unexpected warn line: %q", buf.String())
	}

	verbose = true
	buf.Reset()
	log.Debug("visible %s", "now")
	if !strings.Contains(buf.String(), "DEBUG [session] visible now") {
		t.Errorf("unexpected debug line: %q", buf.String())
	}
}

func TestFieldsAndComponent(t *testing.T) {
	log := NewWithCallback("root", func() bool { return true })
	var buf bytes.Buffer
	log.SetOutput(&buf)

	child := log.WithComponent("backend")
	child.ErrorWithFields("analysis failed", []Field{Attempt(2), Error(errors.New("boom"))})

	line := buf.String()
	if !strings.Contains(line, "[backend]") {
		t.Errorf("child logger should share output and carry its component: %q", line)
	}
	if !strings.Contains(line, "[attempt=2 error=boom]") {
		t.Errorf("fields not rendered: %q", line)
	}
}

func TestMessageWithoutArgsKeepsPercent(t *testing.T) {
	log := NewWithCallback("x", func() bool { return true })
	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.Info("progress 100%")
	if !strings.Contains(buf.String(), "progress 100%") {
		t.Errorf("literal percent mangled: %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	Nop().Error("nothing %s", "happens")
}
