package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jailprof/internal/expand"
	"jailprof/internal/lookup"
	"jailprof/internal/profile"
)

func newGenerateStandaloneCmd() *cobra.Command {
	var keepInc, keepLocals bool
	var outputFile string

	cmd := &cobra.Command{
		Use:   "generate-standalone PROFILE_NAME",
		Short: "Copy a profile and all its includes into one file",
		Long: `Flatten a profile by recursively inlining every include it pulls in.
Includes whose target does not exist are skipped, like firejail skips
them at sandbox start. The result is a profile without include
directives that behaves like the original.`,
		Example: `  jailprof generate-standalone firefox
  jailprof generate-standalone --keep-locals -o mpv-flat.profile mpv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolver.Find(args[0], lookup.Default|lookup.Read)
			if err != nil {
				return err
			}

			s, _ := profile.Parse(p.Data())
			e := expand.New(resolver, expand.Options{KeepInc: keepInc, KeepLocals: keepLocals})
			expanded, err := e.Expand(s)
			if err != nil {
				return err
			}

			if outputFile != "" {
				if err := os.WriteFile(outputFile, []byte(expanded.String()), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", outputFile, err)
				}
				return nil
			}
			fmt.Print(expanded.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepInc, "keep-inc", false, "Keep all includes of .inc files")
	cmd.Flags().BoolVar(&keepLocals, "keep-locals", false, "Keep all includes of .local files")
	cmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "Write the result to this file instead of stdout")

	return cmd
}
