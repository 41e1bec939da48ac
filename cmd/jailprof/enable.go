package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jailprof/internal/term"
)

func newEnableCmd() *cobra.Command {
	var user bool

	cmd := &cobra.Command{
		Use:   "enable [PROFILE_NAME]",
		Short: "Enable disabled profiles",
		Long: `Move a profile out of the disabled directory back into the user
profile directory.

With --user the whole user profile directory is brought back by
renaming firejail.disabled to its original name.`,
		Example: `  jailprof enable supertuxkart
  jailprof enable --user`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if user {
				return enableUser()
			}
			if len(args) != 1 {
				return fmt.Errorf("requires a profile name (or --user)")
			}
			return enableProfile(args[0])
		},
	}

	cmd.Flags().BoolVarP(&user, "user", "u", false, "Enable the whole user profile directory")

	return cmd
}

func enableUser() error {
	disabledDir := resolver.UserDir + ".disabled"
	if err := os.Rename(disabledDir, resolver.UserDir); err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}
	logger("enable").Event("user-profiles-enabled", map[string]any{"dir": resolver.UserDir})
	return nil
}

func enableProfile(name string) error {
	enabledPath, err := resolver.UserPath(name)
	if err != nil {
		return err
	}
	full := filepath.Base(enabledPath)
	disabledPath := filepath.Join(resolver.DisabledDir(), full)

	if fileExists(enabledPath) {
		logger("enable").Warnf("profile %s is already enabled", full)
		ok, err := term.ConfirmStdio("Override?")
		if err != nil {
			return err
		}
		if !ok {
			logger("enable").Infof("skipping %s", full)
			return nil
		}
	}

	if err := os.Rename(disabledPath, enabledPath); err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}
	logger("enable").Event("profile-enabled", map[string]any{"profile": full})
	return nil
}
