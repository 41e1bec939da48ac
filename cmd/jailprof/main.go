package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jailprof/internal/config"
	"jailprof/internal/logging"
	"jailprof/internal/lookup"
	"jailprof/internal/term"
	"jailprof/internal/version"
)

var (
	flagConfig  string
	flagVerbose bool
	flagQuiet   bool

	cfg        *config.Config
	resolver   *lookup.Resolver
	dispatcher *logging.Dispatcher
)

// exitError makes a subcommand's exit code survive cobra's error path.
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit code %d", e.code) }

func main() {
	rootCmd := &cobra.Command{
		Use:   "jailprof",
		Short: "Manage firejail profiles",
		Long: `jailprof - handle your firejail profiles

Profiles are resolved by name: "firefox" completes to
"firefox.profile" and is searched in the current working directory,
the per-user profile directory (~/.config/firejail) and the
system-wide one (/etc/firejail). Shortnames like "dc" for
disable-common.inc work everywhere a name does.`,
		Example: `  jailprof cat firefox
  jailprof edit supertuxkart
  jailprof diff firefox chromium
  jailprof has mpv
  jailprof disable --user`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if dispatcher != nil {
				_ = dispatcher.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Print debug output")
	rootCmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "Only print errors")

	rootCmd.AddCommand(newCatCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newDisableCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newEnableCmd())
	rootCmd.AddCommand(newGenerateStandaloneCmd())
	rootCmd.AddCommand(newHasCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newRmCmd())
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.SetVersionTemplate(fmt.Sprintf("jailprof v%s\n", version.Version))

	if err := rootCmd.Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and prepares the shared state every
// subcommand uses: color mode, the profile resolver and the log
// dispatcher.
func setup() error {
	var err error
	if flagConfig != "" {
		cfg, err = config.LoadFrom(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	term.SetupColor(cfg.UI.Color)

	resolver = lookup.NewResolver(cfg.Profiles.UserDir, cfg.Profiles.SystemDir)

	level := logging.ParseLevel(cfg.Logging.Level)
	if flagVerbose {
		level = logging.LevelDebug
	}
	if flagQuiet {
		level = logging.LevelError
	}

	// Failures of the remote receivers land in a local file instead of
	// disappearing.
	errorLogDir := ""
	if len(cfg.Logging.Receivers) > 0 {
		if cacheDir, cerr := os.UserCacheDir(); cerr == nil {
			errorLogDir = filepath.Join(cacheDir, "jailprof")
		}
	}

	dispatcher, err = logging.NewDispatcherFromConfig(cfg.Logging.Receivers, cfg.Logging.Attributes, errorLogDir)
	if err != nil {
		return fmt.Errorf("logging setup: %w", err)
	}
	dispatcher.AddWriter(logging.NewConsoleWriter(os.Stderr, level))

	if os.Geteuid() == 0 {
		logger("main").Warnf("jailprof is made for unprivileged users, running it as root is discouraged")
	}

	return nil
}

// logger returns a component logger backed by the shared dispatcher.
func logger(component string) *logging.ComponentLogger {
	return dispatcher.ComponentLogger(component, nil)
}
