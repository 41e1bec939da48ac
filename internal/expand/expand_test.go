package expand

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"jailprof/internal/lookup"
	"jailprof/internal/profile"
)

func testResolver(t *testing.T) *lookup.Resolver {
	t.Helper()
	return &lookup.Resolver{
		CWDDir:    t.TempDir(),
		UserDir:   t.TempDir(),
		SystemDir: t.TempDir(),
	}
}

func write(t *testing.T, dir, name, data string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func mustParse(t *testing.T, text string) profile.Stream {
	t.Helper()
	s, err := profile.Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestExpander_Expand(t *testing.T) {
	r := testResolver(t)
	write(t, r.SystemDir, "disable-common.inc", "blacklist /usr/local/sbin\nblacklist ${HOME}/.ssh\n")
	write(t, r.UserDir, "mpv.local", "ignore nosound\n")

	in := mustParse(t, "# header\ninclude mpv.local\ncaps.drop all\ninclude disable-common.inc\nnoroot\n")

	got, err := New(r, Options{}).Expand(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "# header\nignore nosound\ncaps.drop all\nblacklist /usr/local/sbin\nblacklist ${HOME}/.ssh\nnoroot\n"
	if got.String() != want {
		t.Errorf("expanded:\n%s\nwant:\n%s", got.String(), want)
	}
}

func TestExpander_Expand_Nested(t *testing.T) {
	r := testResolver(t)
	write(t, r.SystemDir, "outer.inc", "include inner.inc\nnou2f\n")
	write(t, r.SystemDir, "inner.inc", "novideo\n")

	got, err := New(r, Options{}).Expand(mustParse(t, "include outer.inc\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "novideo\nnou2f\n"; got.String() != want {
		t.Errorf("expanded = %q, want %q", got.String(), want)
	}
	for i, line := range got {
		if line.Lineno != i {
			t.Errorf("line %d has lineno %d", i, line.Lineno)
		}
	}
}

func TestExpander_Expand_MissingTargetDropped(t *testing.T) {
	r := testResolver(t)
	got, err := New(r, Options{}).Expand(mustParse(t, "include globals.local\nnoroot\nnosound\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "noroot\nnosound\n"; got.String() != want {
		t.Errorf("expanded = %q, want %q", got.String(), want)
	}
}

func TestExpander_Expand_Keep(t *testing.T) {
	r := testResolver(t)
	write(t, r.SystemDir, "disable-common.inc", "blacklist /boot\n")
	write(t, r.UserDir, "mpv.local", "ignore nosound\n")

	in := "include mpv.local\ninclude disable-common.inc\n"

	got, err := New(r, Options{KeepInc: true}).Expand(mustParse(t, in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "ignore nosound\ninclude disable-common.inc\n"; got.String() != want {
		t.Errorf("keep-inc = %q, want %q", got.String(), want)
	}

	got, err = New(r, Options{KeepLocals: true}).Expand(mustParse(t, in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "include mpv.local\nblacklist /boot\n"; got.String() != want {
		t.Errorf("keep-locals = %q, want %q", got.String(), want)
	}
}

func TestExpander_Expand_ConditionalKept(t *testing.T) {
	r := testResolver(t)
	write(t, r.SystemDir, "net.inc", "netfilter\n")

	got, err := New(r, Options{}).Expand(mustParse(t, "?HAS_NET: include net.inc\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "?HAS_NET: include net.inc\n"; got.String() != want {
		t.Errorf("expanded = %q, want %q", got.String(), want)
	}
}

func TestExpander_Expand_TooDeep(t *testing.T) {
	r := testResolver(t)
	for i := 0; i < 20; i++ {
		write(t, r.SystemDir, fmt.Sprintf("level%d.inc", i), fmt.Sprintf("include level%d.inc\n", i+1))
	}

	_, err := New(r, Options{}).Expand(mustParse(t, "include level0.inc\n"))
	if !errors.Is(err, ErrTooDeep) {
		t.Errorf("error = %v, want ErrTooDeep", err)
	}
}

func TestExpander_Expand_InvalidLinesSurvive(t *testing.T) {
	r := testResolver(t)
	write(t, r.SystemDir, "broken.inc", "frobnicate\nnoroot\n")

	got, err := New(r, Options{}).Expand(mustParse(t, "include broken.inc\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "frobnicate\nnoroot\n"; got.String() != want {
		t.Errorf("expanded = %q, want %q", got.String(), want)
	}
	if !got.HasErrors() {
		t.Error("invalid line lost its classification")
	}
}
