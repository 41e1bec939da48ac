package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jailprof/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `View and manage the jailprof configuration.

Configuration file location: ~/.config/jailprof/config.toml
(or $XDG_CONFIG_HOME/jailprof/config.toml). System-wide defaults are
read from /etc/jailprof/config.toml first.`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigGenerateCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Config file: %s\n\n", config.ConfigPath())

			fmt.Println("[profiles]")
			fmt.Printf("  user_dir = %s\n", resolver.UserDir)
			fmt.Printf("  system_dir = %s\n", resolver.SystemDir)
			fmt.Println()

			fmt.Println("[ui]")
			fmt.Printf("  editor = %s\n", cfg.Editor())
			fmt.Printf("  pager = %s\n", cfg.Pager())
			fmt.Printf("  color = %s\n", cfg.UI.Color)
			fmt.Println()

			fmt.Println("[logging]")
			fmt.Printf("  level = %s\n", cfg.Logging.Level)
			if len(cfg.Logging.Attributes) > 0 {
				fmt.Println("  [logging.attributes]")
				for k, v := range cfg.Logging.Attributes {
					fmt.Printf("    %s = %q\n", k, v)
				}
			}
			if len(cfg.Logging.Receivers) == 0 {
				fmt.Println("  receivers = (none)")
			} else {
				for i, r := range cfg.Logging.Receivers {
					fmt.Printf("  [[receivers]] #%d\n", i+1)
					fmt.Printf("    type = %s\n", r.Type)
					if r.Address != "" {
						fmt.Printf("    address = %s\n", r.Address)
					}
					if r.Endpoint != "" {
						fmt.Printf("    endpoint = %s\n", r.Endpoint)
					}
					if r.Protocol != "" {
						fmt.Printf("    protocol = %s\n", r.Protocol)
					}
					if r.Facility != "" {
						fmt.Printf("    facility = %s\n", r.Facility)
					}
					if r.Tag != "" {
						fmt.Printf("    tag = %s\n", r.Tag)
					}
				}
			}

			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.ConfigPath())
		},
	}
}

func newConfigGenerateCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a commented default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := config.ConfigPath()

			if !force {
				if _, err := os.Stat(configPath); err == nil {
					return fmt.Errorf("config file already exists at %s\nUse --force to overwrite", configPath)
				}
			}

			if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			if err := os.WriteFile(configPath, []byte(config.GenerateDefault()), 0o644); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			fmt.Printf("Created config file at %s\n", configPath)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}
