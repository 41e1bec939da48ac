// Package embed ships the assets compiled into the jailprof binary.
package embed

import (
	_ "embed"
	"path/filepath"
	"strings"
)

//go:embed profile.template
var profileTemplate string

// NewProfileTemplate returns the starter content written into a profile
// created by `jailprof edit`. Name is the completed file name, e.g.
// "firefox.profile"; its extension is stripped for the include lines so
// the skeleton references "firefox.local".
func NewProfileTemplate(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ReplaceAll(profileTemplate, "{{NAME}}", stem)
}
