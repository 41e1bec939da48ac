package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jailprof/internal/lookup"
)

func newHasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "has PROFILE_NAME",
		Short: "Look whether a profile exists",
		Long: `Search the profile locations for the given name and print where it
was found. Exits with code 100 when no profile exists, so scripts can
branch on it.`,
		Example: `  jailprof has firefox
  jailprof has gap  # exits 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolver.Find(args[0], lookup.Default)
			if err != nil {
				return err
			}
			if p.Exists() {
				fmt.Printf("Profile found for %s at %s\n", p.RawName, color.GreenString("%s", p.Path))
				return nil
			}
			fmt.Printf("Could not find a profile for %s.\n", p.RawName)
			return exitError{code: 100}
		},
	}
}
