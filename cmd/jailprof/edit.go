package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"jailprof/internal/embed"
	"jailprof/internal/term"
)

type editFlags uint8

const (
	editCopy editFlags = 1 << iota
	editCreate
	editTmp
)

func newEditCmd() *cobra.Command {
	var noCopy, noCreate, tmp bool

	cmd := &cobra.Command{
		Use:   "edit PROFILE_NAME",
		Short: "Edit a profile",
		Long: `Open the user profile in the configured editor. A profile that only
exists system-wide is first copied into the user directory; one that
exists nowhere is created from the new-profile template.

With --tmp nothing persists: an existing profile is restored when the
editor closes, a freshly created one is removed again.`,
		Example: `  jailprof edit firefox
  jailprof edit --tmp mpv
  jailprof edit --no-create keepassxc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var flags editFlags
			if !noCopy {
				flags |= editCopy
			}
			if !noCreate {
				flags |= editCreate
			}
			if tmp {
				flags |= editTmp
			}

			userPath, err := resolver.UserPath(args[0])
			if err != nil {
				return err
			}
			systemPath := filepath.Join(resolver.SystemDir, filepath.Base(userPath))

			if flags&editTmp != 0 {
				return tmpEdit(userPath, systemPath, flags)
			}
			return runEdit(userPath, systemPath, flags)
		},
	}

	cmd.Flags().BoolVar(&tmp, "tmp", false, "Discard all changes when the editor closes")
	cmd.Flags().BoolVar(&noCopy, "no-copy", false, "Do not copy the system profile")
	cmd.Flags().BoolVar(&noCreate, "no-create", false, "Do not create a new profile")

	return cmd
}

// tmpEdit edits without persisting: the current profile is parked under
// a unique backup name and moved back afterwards, a freshly created one
// is removed again.
func tmpEdit(userPath, systemPath string, flags editFlags) error {
	if fileExists(userPath) {
		backupPath := fmt.Sprintf("%s.%s.bak", userPath, uuid.NewString())
		if err := os.Rename(userPath, backupPath); err != nil {
			return fmt.Errorf("backup creation failed: %w", err)
		}
		editErr := runEdit(userPath, systemPath, flags)
		if err := os.Rename(backupPath, userPath); err != nil {
			return fmt.Errorf("failed to restore the profile: %w", err)
		}
		return editErr
	}

	if err := runEdit(userPath, systemPath, flags); err != nil {
		return err
	}
	if err := os.Remove(userPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove the temporary profile: %w", err)
	}
	return nil
}

func runEdit(userPath, systemPath string, flags editFlags) error {
	userExists := fileExists(userPath)

	if flags&editCopy != 0 && !userExists && fileExists(systemPath) {
		logger("edit").Infof("copying %s", systemPath)
		if err := copyFile(systemPath, userPath); err != nil {
			return fmt.Errorf("failed to copy %s to %s: %w", systemPath, userPath, err)
		}
		userExists = true
	}

	if flags&editCreate != 0 && !userExists {
		name := filepath.Base(userPath)
		if err := os.MkdirAll(filepath.Dir(userPath), 0o755); err != nil {
			return fmt.Errorf("failed to create the profile directory: %w", err)
		}
		if err := os.WriteFile(userPath, []byte(embed.NewProfileTemplate(name)), 0o644); err != nil {
			return fmt.Errorf("failed to create %s: %w", userPath, err)
		}
		logger("edit").Event("profile-created", map[string]any{"profile": name})
		userExists = true
	}

	if !userExists && flags&(editCopy|editCreate) == 0 {
		logger("edit").Warnf("nothing to edit: %s does not exist", userPath)
		return nil
	}

	if err := term.OpenEditor(cfg.Editor(), userPath); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	logger("edit").Event("profile-edited", map[string]any{"profile": filepath.Base(userPath)})
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
