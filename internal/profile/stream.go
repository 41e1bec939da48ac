// Package profile implements the textual format of firejail sandbox
// profiles: a bidirectional mapping between raw profile text and a
// typed line model. Valid lines round-trip byte-for-byte; lines that
// fail to classify are preserved verbatim as invalid content instead of
// aborting the parse. The package does no I/O and is safe for
// concurrent use across independent streams.
package profile

import (
	"fmt"
	"strings"
)

// Line is one entry of a Stream: its content plus the 0-based source
// line number. Lineno is -1 when the line no longer corresponds to a
// position in a source file (after StripLineno, or for lines built by
// hand).
type Line struct {
	Lineno  int
	Content Content
}

// Stream is an ordered sequence of profile lines. Order is significant:
// directive order affects sandbox semantics and diff output.
type Stream []Line

// Parse splits text into lines and classifies each one. The returned
// stream is always fully populated; the error is non-nil exactly when
// at least one line is invalid, and wraps ErrInvalidProfile. Callers
// that can work with a partially invalid profile may keep the stream
// and ignore the error.
func Parse(text string) (Stream, error) {
	if text == "" {
		return Stream{}, nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	stream := make(Stream, 0, len(lines))
	invalid := 0
	for i, raw := range lines {
		content := ParseContent(raw)
		if content.IsInvalid() {
			invalid++
		}
		stream = append(stream, Line{Lineno: i, Content: content})
	}

	if invalid > 0 {
		return stream, fmt.Errorf("%w: %d invalid line(s)", ErrInvalidProfile, invalid)
	}
	return stream, nil
}

// String reassembles the profile text: every line's formatted content
// followed by a newline, in order.
func (s Stream) String() string {
	var b strings.Builder
	for _, line := range s {
		b.WriteString(line.Content.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Contains reports whether any line's content is value-equal to c.
func (s Stream) Contains(c Content) bool {
	for _, line := range s {
		if line.Content.Equal(c) {
			return true
		}
	}
	return false
}

// HasErrors reports whether the stream holds at least one invalid line.
func (s Stream) HasErrors() bool {
	for _, line := range s {
		if line.Content.IsInvalid() {
			return true
		}
	}
	return false
}

// Errors returns a new stream holding only the invalid lines, with
// their original line numbers.
func (s Stream) Errors() Stream {
	var errored Stream
	for _, line := range s {
		if line.Content.IsInvalid() {
			errored = append(errored, line)
		}
	}
	return errored
}

// StripLineno clears every line number. Used before merging lines from
// different files, where the original numbering is meaningless.
func (s Stream) StripLineno() {
	for i := range s {
		s[i].Lineno = -1
	}
}

// RewriteLineno renumbers every line by its current position. Used
// after filtering, to keep numbering contiguous.
func (s Stream) RewriteLineno() {
	for i := range s {
		s[i].Lineno = i
	}
}
