package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	t.Cleanup(func() { SetLogger(nil) })

	Printf("debug %d", 1)
	Infof("info %d", 2)
	Errorf("error %d", 3)

	out := buf.String()
	if strings.Contains(out, "debug 1") {
		t.Errorf("debug line written at info level: %q", out)
	}
	for _, want := range []string{`level=INFO msg="info 2"`, `level=ERROR msg="error 3"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestSetLoggerNilDiscards(t *testing.T) {
	SetLogger(nil)
	Errorf("dropped")
	if logger == nil {
		t.Fatal("logger should never be nil")
	}
}
