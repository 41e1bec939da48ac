package profile

import (
	"errors"
	"testing"
)

func TestParseContent_Classification(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind ContentKind
	}{
		{"blank", "", ContentBlank},
		{"comment", "# Firejail profile for mpv", ContentComment},
		{"hash only", "#", ContentComment},
		{"command", "caps.drop all", ContentCommand},
		{"conditional", "?HAS_NET: netfilter", ContentConditional},
		{"unknown word", "frobnicate", ContentInvalid},
		{"empty condition", "?HAS_NET:", ContentInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ParseContent(tt.line)
			if c.Kind != tt.kind {
				t.Errorf("ParseContent(%q) kind = %v, want %v", tt.line, c.Kind, tt.kind)
			}
			if got := c.String(); got != tt.line {
				t.Errorf("round trip = %q, want %q", got, tt.line)
			}
		})
	}
}

func TestParseContent_CommentKeepsText(t *testing.T) {
	c := ParseContent("#  indented, trailing spaces  ")
	if c.Kind != ContentComment {
		t.Fatalf("kind = %v, want comment", c.Kind)
	}
	if c.Comment != "  indented, trailing spaces  " {
		t.Errorf("comment text = %q", c.Comment)
	}
}

func TestParseContent_InvalidKeepsRaw(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"not a directive at all", ErrBadCommand},
		{"caps.drop bogus_cap", ErrBadCapability},
		{"?HAS_NET:", ErrEmptyCondition},
		{"?UNDECIDED: noroot", ErrBadCondition},
	}
	for _, tt := range tests {
		c := ParseContent(tt.line)
		if !c.IsInvalid() {
			t.Fatalf("ParseContent(%q) kind = %v, want invalid", tt.line, c.Kind)
		}
		if c.Raw != tt.line {
			t.Errorf("raw = %q, want %q", c.Raw, tt.line)
		}
		if !errors.Is(c.Err, tt.want) {
			t.Errorf("err = %v, want %v", c.Err, tt.want)
		}
		if got := c.String(); got != tt.line {
			t.Errorf("invalid content must format verbatim, got %q", got)
		}
	}
}

func TestContent_Equal(t *testing.T) {
	if !ParseContent("include globals.local").Equal(ParseContent("include globals.local")) {
		t.Error("identical commands compare unequal")
	}
	if ParseContent("# a").Equal(ParseContent("# b")) {
		t.Error("different comments compare equal")
	}
	if ParseContent("").Equal(ParseContent("# a")) {
		t.Error("blank equals comment")
	}
	if !ParseContent("frobnicate").Equal(ParseContent("frobnicate")) {
		t.Error("identical invalid lines compare unequal")
	}
	if ParseContent("frobnicate").Equal(ParseContent("brobnicate")) {
		t.Error("different invalid lines compare equal")
	}
}
