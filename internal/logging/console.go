package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// ConsoleWriter prints entries the way a CLI talks to its user on
// stderr. Entries below the minimum level are dropped.
type ConsoleWriter struct {
	out io.Writer
	min Level
	mu  sync.Mutex
}

// NewConsoleWriter returns a writer printing entries of at least min
// severity to out.
func NewConsoleWriter(out io.Writer, min Level) *ConsoleWriter {
	return &ConsoleWriter{out: out, min: min}
}

// Write prints the entry as "level: message".
func (c *ConsoleWriter) Write(entry *Entry) error {
	if !entry.Level.AtLeast(c.min) {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.out, "%s %s\n", levelTag(entry.Level), entry.Message)
	return err
}

// Close is a no-op; the underlying stream is not owned by the writer.
func (c *ConsoleWriter) Close() error { return nil }

func levelTag(l Level) string {
	switch l {
	case LevelDebug:
		return color.CyanString("debug:")
	case LevelWarn:
		return color.YellowString("warning:")
	case LevelError:
		return color.RedString("error:")
	default:
		return "info:"
	}
}
