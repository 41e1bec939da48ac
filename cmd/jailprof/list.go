package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"jailprof/internal/profile"
)

func newListCmd() *cobra.Command {
	var incs, locals, profiles, long bool

	cmd := &cobra.Command{
		Use:   "list [PATTERN]",
		Short: "List all user profiles",
		Long: `List the files of the user profile directory, sorted by name. A glob
PATTERN (with ** support) restricts the listing, as do the kind
filters. With --long a table with size, modification time and parse
state is shown instead of bare names.`,
		Example: `  jailprof list
  jailprof list --incs
  jailprof list 'disable-*'
  jailprof list --long`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) == 1 {
				pattern = args[0]
			}

			suffix := ""
			switch {
			case incs:
				suffix = ".inc"
			case locals:
				suffix = ".local"
			case profiles:
				suffix = ".profile"
			}

			entries, err := os.ReadDir(resolver.UserDir)
			if err != nil {
				return fmt.Errorf("failed to open the user profile directory: %w", err)
			}

			var names []string
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				name := e.Name()
				if suffix != "" && !strings.HasSuffix(name, suffix) {
					continue
				}
				if pattern != "" {
					matched, merr := doublestar.Match(pattern, name)
					if merr != nil {
						return fmt.Errorf("invalid glob pattern %q: %w", pattern, merr)
					}
					if !matched {
						continue
					}
				}
				names = append(names, name)
			}
			slices.Sort(names)

			if long {
				return printProfileTable(names)
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&incs, "incs", false, "List only .inc files")
	cmd.Flags().BoolVar(&locals, "locals", false, "List only .local files")
	cmd.Flags().BoolVar(&profiles, "profiles", false, "List only .profile files")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show a detail table instead of bare names")
	cmd.MarkFlagsMutuallyExclusive("incs", "locals", "profiles")

	return cmd
}

func printProfileTable(names []string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("NAME", "KIND", "SIZE", "MODIFIED", "LINES", "INVALID")

	for _, name := range names {
		path := filepath.Join(resolver.UserDir, name)
		info, err := os.Stat(path)
		if err != nil {
			logger("list").Warnf("skipping %s: %v", name, err)
			continue
		}

		lines, invalid := "-", "-"
		if data, err := os.ReadFile(path); err == nil {
			s, _ := profile.Parse(string(data))
			lines = fmt.Sprintf("%d", len(s))
			invalid = fmt.Sprintf("%d", len(s.Errors()))
		}

		_ = table.Append(
			name,
			profileKind(name),
			fmt.Sprintf("%d B", info.Size()),
			info.ModTime().Format("2006-01-02 15:04"),
			lines,
			invalid,
		)
	}

	return table.Render()
}

func profileKind(name string) string {
	switch {
	case strings.HasSuffix(name, ".profile"):
		return "profile"
	case strings.HasSuffix(name, ".inc"):
		return "inc"
	case strings.HasSuffix(name, ".local"):
		return "local"
	default:
		return "other"
	}
}
