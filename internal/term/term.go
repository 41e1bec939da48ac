// Package term provides the terminal plumbing for jailprof: pager and
// editor processes, confirmation prompts and color mode handling.
package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// SetupColor applies the configured color mode to all colored output.
// "auto" keeps the library's terminal detection.
func SetupColor(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// IsInteractive returns true if stdin is a terminal.
func IsInteractive() bool {
	return IsTerminal(os.Stdin)
}

// Confirm prints prompt followed by "[y/N]" and reads one line from
// input. Only "y" or "yes" accepts.
func Confirm(input io.Reader, output io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(output, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}

	reader := bufio.NewReader(input)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// ConfirmStdio is a convenience wrapper that prompts on stderr and
// reads from stdin. Non-interactive runs decline without prompting.
func ConfirmStdio(prompt string) (bool, error) {
	if !IsInteractive() {
		return false, nil
	}
	return Confirm(os.Stdin, os.Stderr, prompt)
}

// Pager is a running pager process accepting output through Write.
// When the pager could not be started it degrades to plain stdout.
type Pager struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// StartPager launches cmdline (split on whitespace) with its stdin
// piped. On failure it returns a Pager writing directly to stdout
// together with the start error, so the caller can report it and keep
// writing.
func StartPager(cmdline string) (*Pager, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return &Pager{}, fmt.Errorf("empty pager command")
	}

	cmd := exec.Command(fields[0], fields[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return &Pager{}, fmt.Errorf("failed to start %s: %w", fields[0], err)
	}
	if err := cmd.Start(); err != nil {
		return &Pager{}, fmt.Errorf("failed to start %s: %w", fields[0], err)
	}
	return &Pager{cmd: cmd, stdin: stdin}, nil
}

// Write sends b to the pager, or to stdout in degraded mode.
func (p *Pager) Write(b []byte) (int, error) {
	if p.stdin == nil {
		return os.Stdout.Write(b)
	}
	return p.stdin.Write(b)
}

// Close finishes the pager: the pipe is closed and the process waited
// for, blocking until the user quits it.
func (p *Pager) Close() error {
	if p.stdin == nil {
		return nil
	}
	if err := p.stdin.Close(); err != nil {
		return err
	}
	return p.cmd.Wait()
}

// OpenEditor runs the editor commandline on path, attached to the
// terminal. The returned error carries the editor's exit status.
func OpenEditor(cmdline, path string) error {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return fmt.Errorf("empty editor command")
	}

	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
