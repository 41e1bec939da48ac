package profile

import (
	"fmt"
	"strings"
)

// Guard identifies one conditional prefix (`?HAS_X11:` and friends).
type Guard uint8

const (
	GuardBrowserAllowDRM Guard = iota
	GuardBrowserDisableU2F
	GuardHasAppimage
	GuardHasNet
	GuardHasNodbus
	GuardHasNosound
	GuardHasX11
)

var guardNames = [...]string{
	GuardBrowserAllowDRM:   "?BROWSER_ALLOW_DRM:",
	GuardBrowserDisableU2F: "?BROWSER_DISABLE_U2F:",
	GuardHasAppimage:       "?HAS_APPIMAGE:",
	GuardHasNet:            "?HAS_NET:",
	GuardHasNodbus:         "?HAS_NODBUS:",
	GuardHasNosound:        "?HAS_NOSOUND:",
	GuardHasX11:            "?HAS_X11:",
}

var guardIndex = make(map[string]Guard, len(guardNames))

func init() {
	for i, name := range guardNames {
		guardIndex[name] = Guard(i)
	}
}

func (g Guard) String() string {
	if int(g) < len(guardNames) {
		return guardNames[g]
	}
	return fmt.Sprintf("Guard(%d)", uint8(g))
}

// Conditional is a guard wrapping exactly one command.
type Conditional struct {
	Guard Guard
	Cmd   Command
}

// ParseConditional recognizes a guarded directive line. A guard with
// nothing after it is ErrEmptyCondition; an unknown guard is
// ErrBadCondition; errors from the nested command pass through.
func ParseConditional(line string) (Conditional, error) {
	guard, rest, ok := strings.Cut(line, " ")
	if !ok {
		return Conditional{}, ErrEmptyCondition
	}
	g, ok := guardIndex[guard]
	if !ok {
		return Conditional{}, ErrBadCondition
	}
	cmd, err := ParseCommand(rest)
	if err != nil {
		return Conditional{}, err
	}
	return Conditional{Guard: g, Cmd: cmd}, nil
}

func (c Conditional) String() string {
	return c.Guard.String() + " " + c.Cmd.String()
}

// Equal reports value equality of guard and wrapped command.
func (c Conditional) Equal(o Conditional) bool {
	return c.Guard == o.Guard && c.Cmd.Equal(o.Cmd)
}
