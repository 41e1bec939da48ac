package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
)

func TestConsoleWriter_Threshold(t *testing.T) {
	tests := []struct {
		name    string
		min     Level
		entry   Level
		printed bool
	}{
		{"debug below info", LevelInfo, LevelDebug, false},
		{"info at info", LevelInfo, LevelInfo, true},
		{"warn above info", LevelInfo, LevelWarn, true},
		{"info below warn", LevelWarn, LevelInfo, false},
		{"error at debug min", LevelDebug, LevelError, true},
		{"debug at debug min", LevelDebug, LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewConsoleWriter(&buf, tt.min)
			err := w.Write(&Entry{Timestamp: time.Now(), Level: tt.entry, Message: "msg"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := buf.Len() > 0; got != tt.printed {
				t.Errorf("printed = %v, want %v (output %q)", got, tt.printed, buf.String())
			}
		})
	}
}

func TestConsoleWriter_Format(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	var buf bytes.Buffer
	w := NewConsoleWriter(&buf, LevelDebug)

	entries := []struct {
		level Level
		msg   string
		want  string
	}{
		{LevelDebug, "tracing", "debug: tracing\n"},
		{LevelInfo, "done", "info: done\n"},
		{LevelWarn, "careful", "warning: careful\n"},
		{LevelError, "broken", "error: broken\n"},
	}

	for _, e := range entries {
		buf.Reset()
		if err := w.Write(&Entry{Level: e.level, Message: e.msg}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != e.want {
			t.Errorf("output = %q, want %q", buf.String(), e.want)
		}
	}
}

func TestConsoleWriter_Close(t *testing.T) {
	var buf bytes.Buffer
	w := NewConsoleWriter(&buf, LevelInfo)
	if err := w.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	// The underlying stream stays usable after Close.
	if err := w.Write(&Entry{Level: LevelError, Message: "still here"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "still here") {
		t.Errorf("expected output after Close, got %q", buf.String())
	}
}
