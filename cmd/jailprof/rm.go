package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jailprof/internal/lookup"
)

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm PROFILE_NAME...",
		Short: "Remove user profiles",
		Long: `Delete profiles from the user profile directory. Only the user
directory is touched; system profiles stay as they are.`,
		Example: `  jailprof rm supertuxkart
  jailprof rm firefox firefox.local`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, name := range args {
				p, err := resolver.Find(name, lookup.User|lookup.DenyByPath|lookup.AssumeExistence)
				if err != nil {
					logger("rm").Errorf("%v", err)
					failed++
					continue
				}
				if err := os.Remove(p.Path); err != nil {
					logger("rm").Errorf("failed to delete %s: %v", p.FullName, err)
					failed++
					continue
				}
				logger("rm").Event("profile-removed", map[string]any{"profile": p.FullName})
			}
			if failed > 0 {
				return fmt.Errorf("failed to remove %d profile(s)", failed)
			}
			return nil
		},
	}
}
