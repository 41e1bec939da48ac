package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"jailprof/internal/lookup"
	"jailprof/internal/profile"
)

func newDiffCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "diff PROFILE_NAME1 PROFILE_NAME2",
		Short: "Show the differences between two profiles",
		Long: `Show the lines unique to each of two profiles. Comments and blank
lines are ignored; everything else is compared by value, so formatting
differences do not count.`,
		Example: `  jailprof diff firefox chromium
  jailprof diff -f simple mpv vlc`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "color" && format != "simple" {
				return fmt.Errorf("invalid format %q (use color or simple)", format)
			}

			var (
				streams [2]profile.Stream
				names   [2]string
			)

			var g errgroup.Group
			for i, name := range args {
				g.Go(func() error {
					p, err := resolver.Find(name, lookup.Default|lookup.Read)
					if err != nil {
						return fmt.Errorf("failed to read %s: %w", name, err)
					}
					s, _ := profile.Parse(p.Data())
					streams[i] = s
					names[i] = p.FullName
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			printUnique(names[0], uniqueLines(streams[0], streams[1]), format, color.FgRed)
			printUnique(names[1], uniqueLines(streams[1], streams[0]), format, color.FgGreen)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "color", "Diff format: color or simple")

	return cmd
}

// uniqueLines returns the directives of s that other does not contain.
// Comments and blank lines never count as unique.
func uniqueLines(s, other profile.Stream) profile.Stream {
	var unique profile.Stream
	for _, line := range s {
		switch line.Content.Kind {
		case profile.ContentBlank, profile.ContentComment:
			continue
		}
		if !other.Contains(line.Content) {
			unique = append(unique, line)
		}
	}
	return unique
}

func printUnique(name string, lines profile.Stream, format string, highlight color.Attribute) {
	fmt.Println(color.CyanString("The following options are unique to %s:", name))
	for _, line := range lines {
		text := line.Content.String()
		if format == "color" {
			text = color.New(highlight).Sprint(text)
		}
		fmt.Println(text)
	}
	fmt.Println()
}
