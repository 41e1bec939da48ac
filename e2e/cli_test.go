package e2e

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary before running tests
	tmpDir, err := os.MkdirTemp("", "jailprof-e2e-*")
	if err != nil {
		panic("failed to create temp dir: " + err.Error())
	}

	binaryPath = filepath.Join(tmpDir, "jailprof")

	// Get project root (parent of e2e directory)
	wd, err := os.Getwd()
	if err != nil {
		panic("failed to get working directory: " + err.Error())
	}
	projectRoot := filepath.Dir(wd)

	// Build the binary
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/jailprof")
	cmd.Dir = projectRoot
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	exitCode := m.Run()
	_ = os.RemoveAll(tmpDir)
	os.Exit(exitCode)
}

// testEnv is a throwaway profile environment: its own user and system
// profile directories, wired up through a config file.
type testEnv struct {
	t         *testing.T
	userDir   string
	systemDir string
	workDir   string
	configDir string
}

type runResult struct {
	stdout string
	stderr string
	code   int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()

	env := &testEnv{
		t:         t,
		userDir:   filepath.Join(root, "user"),
		systemDir: filepath.Join(root, "system"),
		workDir:   filepath.Join(root, "work"),
		configDir: filepath.Join(root, "config"),
	}
	for _, dir := range []string{env.userDir, env.systemDir, env.workDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	configPath := filepath.Join(env.configDir, "jailprof", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatal(err)
	}
	config := fmt.Sprintf("[profiles]\nuser_dir = %q\nsystem_dir = %q\n\n[ui]\neditor = \"true\"\n",
		env.userDir, env.systemDir)
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	return env
}

func (e *testEnv) writeUser(name, content string) {
	e.t.Helper()
	if err := os.WriteFile(filepath.Join(e.userDir, name), []byte(content), 0o644); err != nil {
		e.t.Fatal(err)
	}
}

func (e *testEnv) writeSystem(name, content string) {
	e.t.Helper()
	if err := os.WriteFile(filepath.Join(e.systemDir, name), []byte(content), 0o644); err != nil {
		e.t.Fatal(err)
	}
}

// run executes the binary against the environment.
func (e *testEnv) run(args ...string) runResult {
	e.t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = e.workDir
	cmd.Env = append(os.Environ(), "XDG_CONFIG_HOME="+e.configDir)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	if err != nil {
		var ee *exec.ExitError
		if !errors.As(err, &ee) {
			e.t.Fatalf("failed to run %v: %v", args, err)
		}
		code = ee.ExitCode()
	}
	return runResult{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func TestCLI_Help(t *testing.T) {
	env := newTestEnv(t)

	res := env.run("--help")
	if res.code != 0 {
		t.Fatalf("--help exited %d:\n%s", res.code, res.stderr)
	}

	for _, expected := range []string{"jailprof", "firejail", "cat", "edit", "diff", "generate-standalone"} {
		if !strings.Contains(res.stdout, expected) {
			t.Errorf("--help output missing %q", expected)
		}
	}
}

func TestCLI_Version(t *testing.T) {
	env := newTestEnv(t)

	res := env.run("version")
	if res.code != 0 {
		t.Fatalf("version exited %d:\n%s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "jailprof v") || !strings.Contains(res.stdout, "commit:") {
		t.Errorf("unexpected version output:\n%s", res.stdout)
	}
}

func TestHas_FoundAndMissing(t *testing.T) {
	env := newTestEnv(t)
	env.writeSystem("firefox.profile", "caps.drop all\n")

	res := env.run("has", "firefox")
	if res.code != 0 {
		t.Fatalf("has exited %d:\n%s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "Profile found for firefox at") {
		t.Errorf("unexpected has output:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, env.systemDir) {
		t.Errorf("expected system path in output:\n%s", res.stdout)
	}

	res = env.run("has", "gap")
	if res.code != 100 {
		t.Fatalf("expected exit code 100 for a missing profile, got %d:\n%s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "Could not find a profile for gap.") {
		t.Errorf("unexpected has output:\n%s", res.stdout)
	}
}

func TestHas_Shortname(t *testing.T) {
	env := newTestEnv(t)
	env.writeUser("disable-common.inc", "blacklist /usr/bin/gcc\n")

	res := env.run("has", "dc")
	if res.code != 0 {
		t.Fatalf("has dc exited %d:\n%s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "disable-common.inc") {
		t.Errorf("expected shortname expansion in output:\n%s", res.stdout)
	}
}

func TestList_FiltersAndPattern(t *testing.T) {
	env := newTestEnv(t)
	env.writeUser("firefox.profile", "caps.drop all\n")
	env.writeUser("mpv.profile", "net none\n")
	env.writeUser("firefox.local", "# tweaks\n")
	env.writeUser("disable-work.inc", "blacklist ${HOME}/work\n")

	res := env.run("list")
	if res.code != 0 {
		t.Fatalf("list exited %d:\n%s", res.code, res.stderr)
	}
	want := "disable-work.inc\nfirefox.local\nfirefox.profile\nmpv.profile\n"
	if res.stdout != want {
		t.Errorf("list output = %q, want %q", res.stdout, want)
	}

	res = env.run("list", "--profiles")
	if res.stdout != "firefox.profile\nmpv.profile\n" {
		t.Errorf("list --profiles output = %q", res.stdout)
	}

	res = env.run("list", "firefox.*")
	if res.stdout != "firefox.local\nfirefox.profile\n" {
		t.Errorf("list with pattern output = %q", res.stdout)
	}

	res = env.run("list", "--long")
	if !strings.Contains(res.stdout, "NAME") || !strings.Contains(res.stdout, "INVALID") {
		t.Errorf("list --long missing table header:\n%s", res.stdout)
	}
}

func TestCat_LocalsAndRedirects(t *testing.T) {
	env := newTestEnv(t)
	env.writeSystem("firefox.profile", "include firefox.local\ninclude globals.local\ncaps.drop all\ninclude chromium.profile\n")
	env.writeUser("firefox.local", "net none\n")
	env.writeSystem("chromium.profile", "seccomp\n")

	res := env.run("cat", "firefox")
	if res.code != 0 {
		t.Fatalf("cat exited %d:\n%s", res.code, res.stderr)
	}

	localAt := strings.Index(res.stdout, "net none")
	profileAt := strings.Index(res.stdout, "caps.drop all")
	redirectAt := strings.Index(res.stdout, "seccomp")
	if localAt == -1 || profileAt == -1 || redirectAt == -1 {
		t.Fatalf("cat output incomplete:\n%s", res.stdout)
	}
	if !(localAt < profileAt && profileAt < redirectAt) {
		t.Errorf("expected local, then profile, then redirect:\n%s", res.stdout)
	}

	// globals.local is never shown next to a profile
	if strings.Contains(res.stdout, "globals.local:") {
		t.Errorf("globals header should not appear:\n%s", res.stdout)
	}

	if got := strings.Count(res.stdout, "# "+env.systemDir); got != 2 {
		t.Errorf("expected 2 system path headers, got %d:\n%s", got, res.stdout)
	}

	res = env.run("cat", "--no-locals", "firefox")
	if strings.Contains(res.stdout, "net none") {
		t.Errorf("--no-locals still shows the local:\n%s", res.stdout)
	}

	res = env.run("cat", "--no-redirects", "firefox")
	if strings.Contains(res.stdout, "seccomp") {
		t.Errorf("--no-redirects still follows the redirect:\n%s", res.stdout)
	}
}

func TestCheck_ReportsInvalidLines(t *testing.T) {
	env := newTestEnv(t)
	env.writeUser("good.profile", "caps.drop all\nseccomp\n")
	env.writeUser("bad.profile", "caps.drop all\nfrobnicate xyz\nprotocol tcp\n")

	res := env.run("check", "good")
	if res.code != 0 {
		t.Fatalf("check good exited %d:\n%s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "No problems found.") {
		t.Errorf("unexpected check output:\n%s", res.stdout)
	}

	res = env.run("check", "bad")
	if res.code == 0 {
		t.Fatalf("expected non-zero exit for an invalid profile:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, "frobnicate xyz") {
		t.Errorf("expected the invalid line verbatim:\n%s", res.stdout)
	}
	if !strings.Contains(res.stderr, "2 invalid line(s)") {
		t.Errorf("expected an invalid line count:\n%s", res.stderr)
	}
}

func TestGenerateStandalone_InlinesIncludes(t *testing.T) {
	env := newTestEnv(t)
	env.writeUser("mpv.profile", "include disable-work.inc\nnet none\n")
	env.writeUser("disable-work.inc", "blacklist ${HOME}/work\n")

	res := env.run("generate-standalone", "mpv")
	if res.code != 0 {
		t.Fatalf("generate-standalone exited %d:\n%s", res.code, res.stderr)
	}
	want := "blacklist ${HOME}/work\nnet none\n"
	if res.stdout != want {
		t.Errorf("flattened output = %q, want %q", res.stdout, want)
	}

	res = env.run("generate-standalone", "--keep-inc", "mpv")
	if !strings.Contains(res.stdout, "include disable-work.inc") {
		t.Errorf("--keep-inc dropped the include:\n%s", res.stdout)
	}

	outFile := filepath.Join(env.workDir, "flat.profile")
	res = env.run("generate-standalone", "-o", outFile, "mpv")
	if res.code != 0 {
		t.Fatalf("generate-standalone -o exited %d:\n%s", res.code, res.stderr)
	}
	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if string(data) != want {
		t.Errorf("output file = %q, want %q", string(data), want)
	}
}

func TestGenerateStandalone_MissingIncludeSkipped(t *testing.T) {
	env := newTestEnv(t)
	env.writeUser("mpv.profile", "include nonexistent.inc\nnet none\n")

	res := env.run("generate-standalone", "mpv")
	if res.code != 0 {
		t.Fatalf("generate-standalone exited %d:\n%s", res.code, res.stderr)
	}
	if res.stdout != "net none\n" {
		t.Errorf("flattened output = %q, want %q", res.stdout, "net none\n")
	}
}

func TestRm_RemovesUserProfile(t *testing.T) {
	env := newTestEnv(t)
	env.writeUser("game.profile", "net none\n")

	res := env.run("rm", "game")
	if res.code != 0 {
		t.Fatalf("rm exited %d:\n%s", res.code, res.stderr)
	}
	if _, err := os.Stat(filepath.Join(env.userDir, "game.profile")); !os.IsNotExist(err) {
		t.Error("profile still exists after rm")
	}

	// Missing profiles surface the OS error
	res = env.run("rm", "game")
	if res.code == 0 {
		t.Fatal("expected rm of a missing profile to fail")
	}
}

func TestDisableEnable_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	env.writeUser("game.profile", "net none\n")

	res := env.run("disable", "game")
	if res.code != 0 {
		t.Fatalf("disable exited %d:\n%s", res.code, res.stderr)
	}
	disabledPath := filepath.Join(env.userDir, "disabled", "game.profile")
	if _, err := os.Stat(disabledPath); err != nil {
		t.Fatalf("profile not moved to disabled dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.userDir, "game.profile")); !os.IsNotExist(err) {
		t.Error("profile still enabled after disable")
	}

	res = env.run("disable", "--list")
	if res.code != 0 {
		t.Fatalf("disable --list exited %d:\n%s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "game.profile") {
		t.Errorf("disable --list missing the profile:\n%s", res.stdout)
	}

	res = env.run("enable", "game")
	if res.code != 0 {
		t.Fatalf("enable exited %d:\n%s", res.code, res.stderr)
	}
	if _, err := os.Stat(filepath.Join(env.userDir, "game.profile")); err != nil {
		t.Fatalf("profile not restored: %v", err)
	}
}

func TestDisableEnable_UserDir(t *testing.T) {
	env := newTestEnv(t)
	env.writeUser("game.profile", "net none\n")

	res := env.run("disable", "--user")
	if res.code != 0 {
		t.Fatalf("disable --user exited %d:\n%s", res.code, res.stderr)
	}
	if _, err := os.Stat(env.userDir + ".disabled"); err != nil {
		t.Fatalf("user dir not renamed: %v", err)
	}

	res = env.run("enable", "--user")
	if res.code != 0 {
		t.Fatalf("enable --user exited %d:\n%s", res.code, res.stderr)
	}
	if _, err := os.Stat(filepath.Join(env.userDir, "game.profile")); err != nil {
		t.Fatalf("user dir not restored: %v", err)
	}
}

func TestDiff_UniqueLines(t *testing.T) {
	env := newTestEnv(t)
	env.writeUser("a.profile", "caps.drop all\nnet none\n")
	env.writeUser("b.profile", "caps.drop all\nnonewprivs\n")

	res := env.run("diff", "a", "b")
	if res.code != 0 {
		t.Fatalf("diff exited %d:\n%s", res.code, res.stderr)
	}

	if !strings.Contains(res.stdout, "unique to a.profile") || !strings.Contains(res.stdout, "net none") {
		t.Errorf("missing left side of diff:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, "unique to b.profile") || !strings.Contains(res.stdout, "nonewprivs") {
		t.Errorf("missing right side of diff:\n%s", res.stdout)
	}
	if strings.Contains(res.stdout, "caps.drop all") {
		t.Errorf("shared line reported as unique:\n%s", res.stdout)
	}
}

func TestEdit_CreatesFromTemplate(t *testing.T) {
	env := newTestEnv(t)

	// The configured editor is "true", so edit runs non-interactively.
	res := env.run("edit", "newprog")
	if res.code != 0 {
		t.Fatalf("edit exited %d:\n%s", res.code, res.stderr)
	}

	data, err := os.ReadFile(filepath.Join(env.userDir, "newprog.profile"))
	if err != nil {
		t.Fatalf("profile not created: %v", err)
	}
	if !strings.Contains(string(data), "include newprog.local") {
		t.Errorf("template not applied:\n%s", data)
	}
}

func TestEdit_TmpDiscardsCreation(t *testing.T) {
	env := newTestEnv(t)

	res := env.run("edit", "--tmp", "scratch")
	if res.code != 0 {
		t.Fatalf("edit --tmp exited %d:\n%s", res.code, res.stderr)
	}
	if _, err := os.Stat(filepath.Join(env.userDir, "scratch.profile")); !os.IsNotExist(err) {
		t.Error("temporary profile survived")
	}
}

func TestEdit_TmpRestoresExisting(t *testing.T) {
	env := newTestEnv(t)
	env.writeUser("game.profile", "net none\n")

	res := env.run("edit", "--tmp", "game")
	if res.code != 0 {
		t.Fatalf("edit --tmp exited %d:\n%s", res.code, res.stderr)
	}

	data, err := os.ReadFile(filepath.Join(env.userDir, "game.profile"))
	if err != nil {
		t.Fatalf("profile not restored: %v", err)
	}
	if string(data) != "net none\n" {
		t.Errorf("restored content = %q", string(data))
	}

	entries, _ := os.ReadDir(env.userDir)
	for _, e := range entries {
		if strings.Contains(e.Name(), ".bak") {
			t.Errorf("backup file left behind: %s", e.Name())
		}
	}
}

func TestEdit_CopiesSystemProfile(t *testing.T) {
	env := newTestEnv(t)
	env.writeSystem("vlc.profile", "caps.drop all\nnet none\n")

	res := env.run("edit", "vlc")
	if res.code != 0 {
		t.Fatalf("edit exited %d:\n%s", res.code, res.stderr)
	}

	data, err := os.ReadFile(filepath.Join(env.userDir, "vlc.profile"))
	if err != nil {
		t.Fatalf("profile not copied: %v", err)
	}
	if string(data) != "caps.drop all\nnet none\n" {
		t.Errorf("copied content = %q", string(data))
	}
}

func TestConfig_PathAndGenerate(t *testing.T) {
	env := newTestEnv(t)

	res := env.run("config", "path")
	if res.code != 0 {
		t.Fatalf("config path exited %d:\n%s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, filepath.Join("jailprof", "config.toml")) {
		t.Errorf("unexpected config path:\n%s", res.stdout)
	}

	res = env.run("config", "generate")
	if res.code == 0 {
		t.Fatal("expected generate to refuse overwriting")
	}

	res = env.run("config", "generate", "--force")
	if res.code != 0 {
		t.Fatalf("config generate --force exited %d:\n%s", res.code, res.stderr)
	}

	res = env.run("config", "show")
	if res.code != 0 {
		t.Fatalf("config show exited %d:\n%s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "[profiles]") || !strings.Contains(res.stdout, "[logging]") {
		t.Errorf("config show incomplete:\n%s", res.stdout)
	}
}
