// Package expand flattens include directives, turning a profile and
// everything it pulls in into one standalone stream.
package expand

import (
	"errors"
	"fmt"
	"strings"

	"jailprof/internal/lookup"
	"jailprof/internal/profile"
)

// maxDepth bounds include nesting. Firejail itself refuses profiles
// nested deeper.
const maxDepth = 16

// ErrTooDeep is returned when include nesting exceeds maxDepth.
var ErrTooDeep = errors.New("too many include levels")

// Options control which include lines are kept verbatim instead of
// being inlined.
type Options struct {
	// KeepInc keeps `include *.inc` lines.
	KeepInc bool
	// KeepLocals keeps `include *.local` lines.
	KeepLocals bool
}

// Expander inlines include targets resolved through a Resolver.
type Expander struct {
	resolver *lookup.Resolver
	opts     Options
}

// New returns an Expander resolving include targets through r.
func New(r *lookup.Resolver, opts Options) *Expander {
	return &Expander{resolver: r, opts: opts}
}

// Expand returns a copy of s with include directives replaced by the
// contents of their targets, recursively. Missing targets are dropped,
// matching firejail, which treats includes of absent files as no-ops.
// Invalid lines pass through verbatim. Conditional includes are kept
// as-is since their guard is resolved only at sandbox start.
func (e *Expander) Expand(s profile.Stream) (profile.Stream, error) {
	b := profile.NewBuilder()
	if err := e.expand(s, b, 0); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func (e *Expander) expand(s profile.Stream, b *profile.Builder, depth int) error {
	for _, line := range s {
		c := line.Content
		if c.Kind != profile.ContentCommand || c.Cmd.Kind != profile.CmdInclude {
			b.Line(line)
			continue
		}

		target := c.Cmd.Arg
		if e.keep(target) {
			b.Line(line)
			continue
		}
		if depth >= maxDepth {
			return fmt.Errorf("%w: %s", ErrTooDeep, target)
		}

		p, err := e.resolver.Find(target, lookup.Default|lookup.Read)
		if err != nil {
			if errors.Is(err, lookup.ErrNotFound) {
				continue
			}
			return err
		}

		// Invalid lines inside the target survive the inlining.
		sub, _ := profile.Parse(p.Data())
		if err := e.expand(sub, b, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *Expander) keep(target string) bool {
	if e.opts.KeepInc && strings.HasSuffix(target, ".inc") {
		return true
	}
	if e.opts.KeepLocals && strings.HasSuffix(target, ".local") {
		return true
	}
	return false
}
