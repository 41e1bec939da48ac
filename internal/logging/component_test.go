package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestComponentLogger_Nil(t *testing.T) {
	// Nil logger should not panic
	var l *ComponentLogger
	l.Debugf("test %s", "debug")
	l.Warnf("test %s", "warn")
	l.Infof("test %s", "info")
	l.Errorf("test %s", "error")
	l.Event("test", nil)
}

func TestComponentLogger_LocalOnly(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "test.log")

	el, err := NewErrorLogger(logPath)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = el.Close() }()

	l := NewComponentLogger("lookup", el, nil)
	l.Warnf("profile shadowed: %s", "firefox.profile")
	l.Infof("resolution complete")
	l.Errorf("fatal: %v", "directory vanished")

	_ = el.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}

	content := string(data)
	if !strings.Contains(content, "[lookup]") {
		t.Error("expected component name in log output")
	}
	if !strings.Contains(content, "profile shadowed: firefox.profile") {
		t.Error("expected warn message in log output")
	}
	if !strings.Contains(content, "resolution complete") {
		t.Error("expected info message in log output")
	}
	if !strings.Contains(content, "fatal: directory vanished") {
		t.Error("expected error message in log output")
	}
}

func TestComponentLogger_WithDispatcher(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "test.log")

	el, err := NewErrorLogger(logPath)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = el.Close() }()

	d := NewDispatcher()
	// Capture dispatched entries
	var captured []*Entry
	d.AddWriter(&captureWriter{entries: &captured})

	l := d.ComponentLogger("expand", el)
	l.Warnf("include missing: %s", "disable-common.inc")
	l.Infof("inlined %d lines", 42)

	if len(captured) != 2 {
		t.Fatalf("expected 2 dispatched entries, got %d", len(captured))
	}

	if captured[0].Level != LevelWarn {
		t.Errorf("expected warn level, got %s", captured[0].Level)
	}
	if captured[0].Fields["component"] != "expand" {
		t.Errorf("expected component=expand, got %v", captured[0].Fields["component"])
	}
	if id, ok := captured[0].Fields["event_id"].(string); !ok || id == "" {
		t.Errorf("expected non-empty event_id, got %v", captured[0].Fields["event_id"])
	}
	if !strings.Contains(captured[0].Message, "include missing: disable-common.inc") {
		t.Errorf("unexpected message: %s", captured[0].Message)
	}

	if captured[1].Level != LevelInfo {
		t.Errorf("expected info level, got %s", captured[1].Level)
	}
}

func TestComponentLogger_DebugfSkipsLocal(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "test.log")

	el, err := NewErrorLogger(logPath)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = el.Close() }()

	d := NewDispatcher()
	var captured []*Entry
	d.AddWriter(&captureWriter{entries: &captured})

	l := d.ComponentLogger("parser", el)
	l.Debugf("trace: %s", "line 7")

	_ = el.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "trace: line 7") {
		t.Error("debug message should not reach the local log file")
	}

	if len(captured) != 1 {
		t.Fatalf("expected 1 dispatched entry, got %d", len(captured))
	}
	if captured[0].Level != LevelDebug {
		t.Errorf("expected debug level, got %s", captured[0].Level)
	}
}

func TestComponentLogger_Event(t *testing.T) {
	d := NewDispatcher()
	var captured []*Entry
	d.AddWriter(&captureWriter{entries: &captured})

	l := d.ComponentLogger("edit", nil)
	l.Event("profile-created", map[string]any{"profile": "mpv.profile"})

	if len(captured) != 1 {
		t.Fatalf("expected 1 dispatched entry, got %d", len(captured))
	}

	e := captured[0]
	if e.Message != "profile-created" {
		t.Errorf("expected action as message, got %q", e.Message)
	}
	if e.Fields["action"] != "profile-created" {
		t.Errorf("expected action field, got %v", e.Fields["action"])
	}
	if e.Fields["profile"] != "mpv.profile" {
		t.Errorf("expected detail field, got %v", e.Fields["profile"])
	}
	if e.Fields["component"] != "edit" {
		t.Errorf("expected component field, got %v", e.Fields["component"])
	}
	if id, ok := e.Fields["event_id"].(string); !ok || id == "" {
		t.Errorf("expected non-empty event_id, got %v", e.Fields["event_id"])
	}
}

func TestComponentLogger_NilBoth(t *testing.T) {
	// Both nil: should not panic, just no-op
	l := NewComponentLogger("test", nil, nil)
	l.Warnf("test")
	l.Infof("test")
	l.Errorf("test")
	l.Event("test", nil)
}

// captureWriter captures dispatched entries for testing.
type captureWriter struct {
	entries *[]*Entry
}

func (w *captureWriter) Write(entry *Entry) error {
	*w.entries = append(*w.entries, entry)
	return nil
}

func (w *captureWriter) Close() error {
	return nil
}
