package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"jailprof/internal/lookup"
	"jailprof/internal/profile"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check PROFILE_NAME...",
		Short: "Check profiles for invalid lines",
		Long: `Parse profiles and report every line that is no valid directive,
with its position and what went wrong. Exits non-zero when problems
were found.`,
		Example: `  jailprof check firefox
  jailprof check mpv vlc totem`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(os.Stdout)
			table.Header("PROFILE", "LINE", "TEXT", "ERROR")

			total := 0
			for _, name := range args {
				p, err := resolver.Find(name, lookup.Default|lookup.Read)
				if err != nil {
					return err
				}
				s, _ := profile.Parse(p.Data())
				for _, line := range s.Errors() {
					total++
					_ = table.Append(
						p.FullName,
						fmt.Sprintf("%d", line.Lineno+1),
						line.Content.String(),
						line.Content.Err.Error(),
					)
				}
			}

			if total == 0 {
				fmt.Println("No problems found.")
				return nil
			}
			if err := table.Render(); err != nil {
				return err
			}
			return fmt.Errorf("%d invalid line(s)", total)
		},
	}
}
