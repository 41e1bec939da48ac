package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"jailprof/internal/lookup"
	"jailprof/internal/term"
)

func newDisableCmd() *cobra.Command {
	var user, list bool

	cmd := &cobra.Command{
		Use:   "disable [PROFILE_NAME]",
		Short: "Disable profiles",
		Long: `Move a user profile into the disabled directory
(<user-dir>/disabled), where firejail does not pick it up.

With --user the whole user profile directory is disabled by renaming
it to firejail.disabled. With --list the currently disabled profiles
are printed.`,
		Example: `  jailprof disable supertuxkart
  jailprof disable --list
  jailprof disable --user`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case user:
				return disableUser()
			case list:
				return listDisabled()
			}
			if len(args) != 1 {
				return fmt.Errorf("requires a profile name (or --user/--list)")
			}
			return disableProfile(args[0])
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List all disabled profiles")
	cmd.Flags().BoolVarP(&user, "user", "u", false, "Disable the whole user profile directory")
	cmd.MarkFlagsMutuallyExclusive("list", "user")

	return cmd
}

func disableUser() error {
	disabledDir := resolver.UserDir + ".disabled"
	if err := os.Rename(resolver.UserDir, disabledDir); err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}
	logger("disable").Event("user-profiles-disabled", map[string]any{"dir": disabledDir})
	return nil
}

func listDisabled() error {
	entries, err := os.ReadDir(resolver.DisabledDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func disableProfile(name string) error {
	p, err := resolver.Find(name, lookup.User|lookup.DenyByPath)
	if err != nil {
		return err
	}
	if !p.Exists() {
		return fmt.Errorf("could not find %s in %s", p.FullName, resolver.UserDir)
	}

	if err := os.MkdirAll(resolver.DisabledDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create the disabled dir: %w", err)
	}

	disabledPath := filepath.Join(resolver.DisabledDir(), p.FullName)
	if fileExists(disabledPath) {
		logger("disable").Warnf("profile %s is already disabled", p.FullName)
		ok, err := term.ConfirmStdio("Override?")
		if err != nil {
			return err
		}
		if !ok {
			logger("disable").Infof("skipping %s", p.FullName)
			return nil
		}
	}

	if err := os.Rename(p.Path, disabledPath); err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}
	logger("disable").Event("profile-disabled", map[string]any{"profile": p.FullName})
	return nil
}
