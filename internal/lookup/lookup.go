// Package lookup resolves profile names to files. A name like "firefox"
// is completed to "firefox.profile" and searched for in the usual
// firejail locations: the current working directory, the per-user
// profile directory and the system-wide one. Names may also be
// shortnames ("dc" for disable-common.inc) or explicit paths.
package lookup

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrBadName is returned for names that are empty, "." or ".." or
	// that try to escape the profile directories.
	ErrBadName = errors.New("invalid profile name")
	// ErrNotFound is returned when reading a profile that was not found
	// in any searched location.
	ErrNotFound = errors.New("profile not found")
)

// Flags select the locations to search and how the result is handled.
type Flags uint8

const (
	// CWD searches the current working directory.
	CWD Flags = 1 << iota
	// User searches the per-user profile directory.
	User
	// System searches the system-wide profile directory.
	System
	// Read loads the profile's contents after resolving it.
	Read
	// DenyByPath rejects names containing a path separator.
	DenyByPath
	// AssumeExistence resolves to the first enabled location without
	// checking the filesystem.
	AssumeExistence
)

// Default is the standard search order: cwd, then user, then system.
const Default = CWD | User | System

// Has reports whether any flag of other is set.
func (f Flags) Has(other Flags) bool { return f&other != 0 }

// With returns f with the flags of other added.
func (f Flags) With(other Flags) Flags { return f | other }

// Without returns f with the flags of other removed.
func (f Flags) Without(other Flags) Flags { return f &^ other }

// shortnames maps common abbreviations to the include files they stand
// for.
var shortnames = map[string]string{
	"acd":  "allow-common-devel.inc",
	"ag":   "allow-gjs.inc",
	"aj":   "allow-java.inc",
	"al":   "allow-lua.inc",
	"ap":   "allow-perl.inc",
	"ap2":  "allow-python2.inc",
	"ap3":  "allow-python3.inc",
	"ar":   "allow-ruby.inc",
	"dc":   "disable-common.inc",
	"dd":   "disable-devel.inc",
	"de":   "disable-exec.inc",
	"di":   "disable-interpreters.inc",
	"dp":   "disable-programs.inc",
	"dpm":  "disable-passwdmgr.inc",
	"ds":   "disable-shell.inc",
	"dx":   "disable-xdg.inc",
	"wc":   "whitelist-common.inc",
	"wruc": "whitelist-runuser-common.inc",
	"wusc": "whitelist-usr-share-common.inc",
	"wvc":  "whitelist-var-common.inc",
}

// Shortnames returns a copy of the abbreviation table.
func Shortnames() map[string]string {
	return maps.Clone(shortnames)
}

// CompleteName expands shortnames and appends ".profile" to names that
// carry none of the known suffixes. Paths are not accepted.
func CompleteName(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.Contains(name, "..") || strings.ContainsRune(name, '/') {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	if long, ok := shortnames[name]; ok {
		return long, nil
	}
	if strings.HasSuffix(name, ".inc") ||
		strings.HasSuffix(name, ".local") ||
		strings.HasSuffix(name, ".profile") {
		return name, nil
	}
	return name + ".profile", nil
}

// UserProfileDir returns the per-user profile directory.
// Uses XDG_CONFIG_HOME/firejail or ~/.config/firejail.
func UserProfileDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "firejail")
}

// SystemProfileDir returns the system-wide profile directory.
func SystemProfileDir() string {
	return "/etc/firejail"
}

// Profile is one resolved profile name.
type Profile struct {
	// RawName is the name as given by the user.
	RawName string
	// FullName is the completed name, possibly equal to RawName.
	FullName string
	// Path is where the profile was found; empty when it was not.
	Path string

	data   string
	loaded bool
}

// Exists reports whether the profile resolved to a path.
func (p *Profile) Exists() bool { return p.Path != "" }

// Loaded reports whether the profile's contents have been read.
func (p *Profile) Loaded() bool { return p.loaded }

// Data returns the profile's contents. Empty until Read succeeds.
func (p *Profile) Data() string { return p.data }

// Read loads the profile's contents from Path, re-reading if called
// again.
func (p *Profile) Read() error {
	if p.Path == "" {
		return fmt.Errorf("%w: %s", ErrNotFound, p.FullName)
	}
	raw, err := os.ReadFile(p.Path)
	if err != nil {
		return fmt.Errorf("read profile %s: %w", p.FullName, err)
	}
	p.data = string(raw)
	p.loaded = true
	return nil
}

// Resolver searches the profile locations. The zero value searches
// only the current working directory; use NewResolver for the full
// search path.
type Resolver struct {
	// CWDDir is the directory searched for the CWD flag.
	CWDDir string
	// UserDir is the per-user profile directory.
	UserDir string
	// SystemDir is the system-wide profile directory.
	SystemDir string
}

// NewResolver returns a Resolver over the standard locations. Non-empty
// userDir and systemDir override the defaults.
func NewResolver(userDir, systemDir string) *Resolver {
	if userDir == "" {
		userDir = UserProfileDir()
	}
	if systemDir == "" {
		systemDir = SystemProfileDir()
	}
	return &Resolver{CWDDir: ".", UserDir: userDir, SystemDir: systemDir}
}

// DisabledDir returns the directory disabled profiles are moved to.
func (r *Resolver) DisabledDir() string {
	return filepath.Join(r.UserDir, "disabled")
}

// UserPath returns the path name would have in the user directory,
// after completion.
func (r *Resolver) UserPath(name string) (string, error) {
	full, err := CompleteName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.UserDir, full), nil
}

// Find resolves name according to flags. Names containing a path
// separator are treated as explicit paths and bypass the location
// search. The profile is returned even when nothing was found; check
// Exists. An error is returned for invalid names and, with the Read
// flag, for unreadable profiles.
func (r *Resolver) Find(name string, flags Flags) (*Profile, error) {
	if name == "" || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: %q", ErrBadName, name)
	}

	p := &Profile{RawName: name}
	if strings.ContainsRune(name, '/') {
		p.FullName = filepath.Base(name)
		if !flags.Has(DenyByPath) {
			if flags.Has(AssumeExistence) {
				p.Path = name
			} else if _, err := os.Stat(name); err == nil {
				p.Path = name
			}
		}
	} else {
		full, err := CompleteName(name)
		if err != nil {
			return nil, err
		}
		p.FullName = full
		p.Path = r.lookup(full, flags)
	}

	if flags.Has(Read) {
		if err := p.Read(); err != nil {
			return p, err
		}
	}
	return p, nil
}

// lookup returns the path of name in the first enabled location holding
// it. With AssumeExistence the first enabled location wins outright.
func (r *Resolver) lookup(name string, flags Flags) string {
	locations := []struct {
		enabled bool
		dir     string
	}{
		{flags.Has(CWD), r.CWDDir},
		{flags.Has(User), r.UserDir},
		{flags.Has(System), r.SystemDir},
	}
	for _, loc := range locations {
		if !loc.enabled || loc.dir == "" {
			continue
		}
		path := filepath.Join(loc.dir, name)
		if flags.Has(AssumeExistence) {
			return path
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
