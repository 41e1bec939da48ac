package profile

import (
	"errors"
	"testing"
)

func TestParseConditional_AllGuards(t *testing.T) {
	for i, name := range guardNames {
		line := name + " noroot"
		cond, err := ParseConditional(line)
		if err != nil {
			t.Fatalf("ParseConditional(%q): unexpected error: %v", line, err)
		}
		if cond.Guard != Guard(i) {
			t.Errorf("guard = %v, want %v", cond.Guard, Guard(i))
		}
		if cond.Cmd.Kind != CmdNoroot {
			t.Errorf("wrapped command kind = %v, want %v", cond.Cmd.Kind, CmdNoroot)
		}
		if got := cond.String(); got != line {
			t.Errorf("round trip = %q, want %q", got, line)
		}
	}
}

func TestParseConditional_Errors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"?HAS_NET:", ErrEmptyCondition},
		{"?BROWSER_ALLOW_DRM:", ErrEmptyCondition},
		{"?HAS_WAYLAND: noroot", ErrBadCondition},
		{"?has_net: noroot", ErrBadCondition},
		{"? noroot", ErrBadCondition},
		{"?HAS_NET: frobnicate", ErrBadCommand},
		{"?HAS_X11: protocol tcp", ErrBadProtocol},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if _, err := ParseConditional(tt.line); !errors.Is(err, tt.want) {
				t.Errorf("ParseConditional(%q) error = %v, want %v", tt.line, err, tt.want)
			}
		})
	}
}

func TestConditional_Equal(t *testing.T) {
	a, err := ParseConditional("?HAS_X11: blacklist /tmp/.X11-unix")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := ParseConditional("?HAS_X11: blacklist /tmp/.X11-unix")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Equal(b) {
		t.Error("identical conditionals compare unequal")
	}

	c, err := ParseConditional("?HAS_NET: blacklist /tmp/.X11-unix")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Equal(c) {
		t.Error("guard must be significant")
	}
}
