package profile

import (
	"errors"
	"strings"
)

// ContentKind classifies one line of a profile.
type ContentKind uint8

const (
	ContentBlank ContentKind = iota
	ContentComment
	ContentCommand
	ContentConditional
	ContentInvalid
)

// Content is the classification of a single line. For ContentInvalid
// the verbatim source text is retained in Raw together with the
// classification error in Err; formatting an invalid content reproduces
// the original text exactly.
type Content struct {
	Kind    ContentKind
	Comment string      // ContentComment: text after '#'
	Cmd     Command     // ContentCommand
	Cond    Conditional // ContentConditional
	Raw     string      // ContentInvalid: verbatim source line
	Err     error       // ContentInvalid: why classification failed
}

// ParseContent classifies one line of text. It never fails: lines that
// match no valid form come back as ContentInvalid carrying the original
// text, so the caller can keep it and continue.
func ParseContent(line string) Content {
	if line == "" {
		return Content{Kind: ContentBlank}
	}
	if comment, ok := strings.CutPrefix(line, "#"); ok {
		return Content{Kind: ContentComment, Comment: comment}
	}
	if strings.HasPrefix(line, "?") {
		cond, err := ParseConditional(line)
		if err != nil {
			return Content{Kind: ContentInvalid, Raw: line, Err: err}
		}
		return Content{Kind: ContentConditional, Cond: cond}
	}
	cmd, err := ParseCommand(line)
	if err != nil {
		return Content{Kind: ContentInvalid, Raw: line, Err: err}
	}
	return Content{Kind: ContentCommand, Cmd: cmd}
}

// String formats the line without a trailing newline.
func (c Content) String() string {
	switch c.Kind {
	case ContentBlank:
		return ""
	case ContentComment:
		return "#" + c.Comment
	case ContentCommand:
		return c.Cmd.String()
	case ContentConditional:
		return c.Cond.String()
	case ContentInvalid:
		return c.Raw
	}
	return ""
}

// Equal reports value equality of the classification and its payload.
func (c Content) Equal(o Content) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case ContentBlank:
		return true
	case ContentComment:
		return c.Comment == o.Comment
	case ContentCommand:
		return c.Cmd.Equal(o.Cmd)
	case ContentConditional:
		return c.Cond.Equal(o.Cond)
	case ContentInvalid:
		return c.Raw == o.Raw && errors.Is(c.Err, o.Err)
	}
	return false
}

// IsBlank reports whether the content is an empty line.
func (c Content) IsBlank() bool { return c.Kind == ContentBlank }

// IsComment reports whether the content is a comment line.
func (c Content) IsComment() bool { return c.Kind == ContentComment }

// IsInvalid reports whether classification of the line failed.
func (c Content) IsInvalid() bool { return c.Kind == ContentInvalid }
