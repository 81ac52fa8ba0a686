package discovery

import (
	"regexp"

	billy "github.com/go-git/go-billy/v5"
)

// DotenvFile is the project-level dotenv file most handlers read.
const DotenvFile = ".env"

var badgeRe = regexp.MustCompile(`badge/Vortex-`)

// IsProject reports whether fs holds a project previously generated from the
// template: its README carries the template badge or its dotenv file names
// the project.
func IsProject(fs billy.Filesystem) bool {
	if _, ok := FindPath(fs, []string{"README.md", "*.md"}, ContentMatches(badgeRe)); ok {
		return true
	}
	_, ok := DotenvValue(fs, DotenvFile, "VORTEX_PROJECT")
	return ok
}
