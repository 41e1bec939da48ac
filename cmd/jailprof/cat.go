package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jailprof/internal/lookup"
	"jailprof/internal/profile"
	"jailprof/internal/term"
)

// maxCatDepth bounds .profile redirect chains, like firejail bounds
// include nesting.
const maxCatDepth = 16

type catOptions struct {
	showLocals    bool
	showRedirects bool
}

func newCatCmd() *cobra.Command {
	var noPager, noLocals, noRedirects bool

	cmd := &cobra.Command{
		Use:   "cat PROFILE_NAME",
		Short: "Show a profile with its locals and redirects",
		Long: `Show a profile: first its .local customization includes (globals
excluded), then the profile itself, then every .profile it redirects
to, recursively. Each file is preceded by a colored "# path:" header.

Output goes through the configured pager when stdout is a terminal.`,
		Example: `  jailprof cat firefox
  jailprof cat --no-pager mpv
  jailprof cat --no-locals libreoffice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := catOptions{
				showLocals:    !noLocals,
				showRedirects: !noRedirects,
			}

			p, err := resolver.Find(args[0], lookup.Default|lookup.Read)
			if err != nil {
				return err
			}

			var out io.Writer = os.Stdout
			if !noPager && term.IsTerminal(os.Stdout) {
				pager, perr := term.StartPager(cfg.Pager())
				if perr != nil {
					logger("cat").Warnf("%v, continuing without it", perr)
				}
				defer func() { _ = pager.Close() }()
				out = pager
			}

			return catProfile(p, opts, out, 0)
		},
	}

	cmd.Flags().BoolVar(&noPager, "no-pager", false, "Write to stdout instead of the pager")
	cmd.Flags().BoolVar(&noLocals, "no-locals", false, "Skip .local includes")
	cmd.Flags().BoolVar(&noRedirects, "no-redirects", false, "Skip .profile redirects")

	return cmd
}

func catProfile(p *lookup.Profile, opts catOptions, out io.Writer, depth int) error {
	if depth >= maxCatDepth {
		return fmt.Errorf("too many include levels: %s", p.FullName)
	}

	locals, redirects := includeTargets(p.Data())

	if opts.showLocals {
		for _, name := range locals {
			if isGlobalLocal(name) {
				continue
			}
			local, err := resolver.Find(name, lookup.Default|lookup.Read)
			if err != nil {
				logger("cat").Warnf("skipping %s: %v", name, err)
				continue
			}
			if err := printFile(local, out); err != nil {
				return err
			}
		}
	}

	if err := printFile(p, out); err != nil {
		return err
	}

	if opts.showRedirects {
		for _, name := range redirects {
			target, err := resolver.Find(name, lookup.Default|lookup.Read)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}
			if err := catProfile(target, opts, out, depth+1); err != nil {
				return err
			}
		}
	}

	return nil
}

// includeTargets splits the include directives of content into .local
// customizations and .profile redirects, in file order.
func includeTargets(content string) (locals, redirects []string) {
	s, _ := profile.Parse(content)
	for _, line := range s {
		c := line.Content
		if c.Kind != profile.ContentCommand || c.Cmd.Kind != profile.CmdInclude {
			continue
		}
		switch {
		case strings.HasSuffix(c.Cmd.Arg, ".local"):
			locals = append(locals, c.Cmd.Arg)
		case strings.HasSuffix(c.Cmd.Arg, ".profile"):
			redirects = append(redirects, c.Cmd.Arg)
		}
	}
	return locals, redirects
}

// isGlobalLocal reports whether name is one of the globals included by
// every profile; showing those next to each profile is pure noise.
func isGlobalLocal(name string) bool {
	return name == "globals.local" || name == "pre-globals.local" || name == "post-globals.local"
}

func printFile(p *lookup.Profile, out io.Writer) error {
	if _, err := fmt.Fprint(out, color.BlueString("# %s:\n", p.Path)); err != nil {
		return err
	}
	_, err := io.WriteString(out, p.Data())
	return err
}
