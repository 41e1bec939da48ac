package main

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"jailprof/internal/config"
	"jailprof/internal/lookup"
)

type checkResult struct {
	name    string
	status  string // "ok", "warn", "error"
	message string
}

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check installation and environment",
		Long: `Verify that jailprof can do its work on this system.

Checks:
  - firejail itself
  - the profile directories
  - editor and pager commands
  - the configuration file
  - remote log receivers
  - shortname targets`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}

	return cmd
}

func runDoctor() error {
	var results []checkResult

	results = append(results, checkBinary("firejail", false, "the sandbox the profiles are written for"))
	results = append(results, checkUserDir())
	results = append(results, checkSystemDir())
	results = append(results, checkCommand("editor", cfg.Editor()))
	results = append(results, checkCommand("pager", cfg.Pager()))
	results = append(results, checkConfigFile())
	results = append(results, checkReceivers())
	results = append(results, checkShortnames())

	printDoctorResults(results)

	hasError := false
	for _, r := range results {
		if r.status == "error" {
			hasError = true
			break
		}
	}

	if hasError {
		fmt.Println("\nSome checks failed.")
		return fmt.Errorf("doctor found issues")
	}

	fmt.Println("\nAll checks passed!")
	return nil
}

func checkBinary(name string, required bool, description string) checkResult {
	path, err := exec.LookPath(name)
	if err != nil {
		status := "warn"
		if required {
			status = "error"
		}
		return checkResult{
			name:    name,
			status:  status,
			message: fmt.Sprintf("not found - %s", description),
		}
	}

	version := getBinaryVersion(name)
	msg := fmt.Sprintf("found at %s", path)
	if version != "" {
		msg = fmt.Sprintf("%s (%s)", version, path)
	}

	return checkResult{
		name:    name,
		status:  "ok",
		message: msg,
	}
}

func getBinaryVersion(name string) string {
	output, err := exec.Command(name, "--version").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.Split(string(output), "\n")[0])
}

// checkCommand verifies that the first word of a configured commandline
// resolves to an executable.
func checkCommand(role, cmdline string) checkResult {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return checkResult{
			name:    role,
			status:  "error",
			message: "not configured",
		}
	}

	path, err := exec.LookPath(fields[0])
	if err != nil {
		return checkResult{
			name:    role,
			status:  "error",
			message: fmt.Sprintf("%s not found", fields[0]),
		}
	}

	return checkResult{
		name:    role,
		status:  "ok",
		message: fmt.Sprintf("%s (%s)", cmdline, path),
	}
}

func checkUserDir() checkResult {
	dir := resolver.UserDir

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return checkResult{
			name:    "user profiles",
			status:  "warn",
			message: fmt.Sprintf("%s does not exist yet", dir),
		}
	}
	if err != nil {
		return checkResult{
			name:    "user profiles",
			status:  "error",
			message: fmt.Sprintf("cannot access %s: %v", dir, err),
		}
	}
	if !info.IsDir() {
		return checkResult{
			name:    "user profiles",
			status:  "error",
			message: fmt.Sprintf("%s exists but is not a directory", dir),
		}
	}

	testFile := dir + "/.doctor-test"
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return checkResult{
			name:    "user profiles",
			status:  "error",
			message: fmt.Sprintf("%s is not writable: %v", dir, err),
		}
	}
	_ = os.Remove(testFile)

	entries, _ := os.ReadDir(dir)
	count := 0
	for _, e := range entries {
		if !e.IsDir() {
			count++
		}
	}

	return checkResult{
		name:    "user profiles",
		status:  "ok",
		message: fmt.Sprintf("%s (%d files)", dir, count),
	}
}

func checkSystemDir() checkResult {
	dir := resolver.SystemDir

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return checkResult{
			name:    "system profiles",
			status:  "warn",
			message: fmt.Sprintf("%s does not exist (is firejail installed?)", dir),
		}
	}
	if err != nil {
		return checkResult{
			name:    "system profiles",
			status:  "error",
			message: fmt.Sprintf("cannot read %s: %v", dir, err),
		}
	}

	return checkResult{
		name:    "system profiles",
		status:  "ok",
		message: fmt.Sprintf("%s (%d entries)", dir, len(entries)),
	}
}

func checkConfigFile() checkResult {
	path := flagConfig
	if path == "" {
		path = config.ConfigPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return checkResult{
			name:    "config",
			status:  "ok",
			message: fmt.Sprintf("no file at %s, using defaults", path),
		}
	}

	if err := cfg.Validate(); err != nil {
		return checkResult{
			name:    "config",
			status:  "error",
			message: err.Error(),
		}
	}

	return checkResult{
		name:    "config",
		status:  "ok",
		message: path,
	}
}

func checkReceivers() checkResult {
	if len(cfg.Logging.Receivers) == 0 {
		return checkResult{
			name:    "logging",
			status:  "ok",
			message: "console only",
		}
	}

	var unreachable []string
	for _, r := range cfg.Logging.Receivers {
		addr := receiverDialAddr(r)
		if addr == "" {
			continue
		}
		conn, err := net.DialTimeout("tcp", addr, 3*time.Second)
		if err != nil {
			unreachable = append(unreachable, fmt.Sprintf("%s (%s)", r.Type, addr))
			continue
		}
		_ = conn.Close()
	}

	if len(unreachable) > 0 {
		return checkResult{
			name:    "logging",
			status:  "warn",
			message: "unreachable: " + strings.Join(unreachable, ", "),
		}
	}
	return checkResult{
		name:    "logging",
		status:  "ok",
		message: fmt.Sprintf("%d receiver(s) configured", len(cfg.Logging.Receivers)),
	}
}

// receiverDialAddr extracts a host:port to probe, or "" when the
// receiver has no remote endpoint worth probing.
func receiverDialAddr(r config.ReceiverConfig) string {
	switch r.Type {
	case "syslog-remote":
		if strings.Contains(r.Address, ":") {
			return r.Address
		}
	case "otlp":
		endpoint := r.Endpoint
		if endpoint == "" {
			endpoint = r.Address
		}
		if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
			if u.Port() != "" {
				return u.Host
			}
		} else if strings.Contains(endpoint, ":") {
			return endpoint
		}
	}
	return ""
}

// checkShortnames verifies that the abbreviation targets actually
// resolve on this system.
func checkShortnames() checkResult {
	names := lookup.Shortnames()

	missing := 0
	for _, target := range names {
		p, err := resolver.Find(target, lookup.User|lookup.System)
		if err != nil || !p.Exists() {
			missing++
		}
	}

	if missing == len(names) {
		return checkResult{
			name:    "shortnames",
			status:  "warn",
			message: "no shortname target found (is firejail installed?)",
		}
	}
	if missing > 0 {
		return checkResult{
			name:    "shortnames",
			status:  "ok",
			message: fmt.Sprintf("%d of %d targets missing", missing, len(names)),
		}
	}
	return checkResult{
		name:    "shortnames",
		status:  "ok",
		message: fmt.Sprintf("all %d targets resolve", len(names)),
	}
}

func printDoctorResults(results []checkResult) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("CHECK", "STATUS", "DETAILS")

	for _, r := range results {
		status := r.status
		switch r.status {
		case "ok":
			status = "✓ ok"
		case "warn":
			status = "⚠ warn"
		case "error":
			status = "✗ error"
		}

		_ = table.Append(r.name, status, r.message)
	}

	_ = table.Render()
}
