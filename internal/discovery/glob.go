package discovery

import (
	"regexp"
	"slices"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Predicate filters candidate paths by their content.
type Predicate func(content []byte) bool

// ContentMatches builds a Predicate from a regular expression.
func ContentMatches(re *regexp.Regexp) Predicate {
	return func(content []byte) bool { return re.Match(content) }
}

// FindPath returns the first path matching patterns, tried in the order
// given so callers list the most specific pattern first. Matches of a single
// pattern are tried in lexical order. When pred is non-nil only regular files
// whose content satisfies it qualify.
func FindPath(fs billy.Filesystem, patterns []string, pred Predicate) (string, bool) {
	for _, pattern := range patterns {
		matches, err := util.Glob(fs, pattern)
		if err != nil {
			continue
		}
		slices.Sort(matches)
		for _, m := range matches {
			if pred == nil {
				return m, true
			}
			content, err := util.ReadFile(fs, m)
			if err != nil {
				continue
			}
			if pred(content) {
				return m, true
			}
		}
	}
	return "", false
}

// Exists reports whether path exists as a file or directory.
func Exists(fs billy.Filesystem, path string) bool {
	_, err := fs.Lstat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(fs billy.Filesystem, path string) bool {
	fi, err := fs.Lstat(path)
	return err == nil && fi.IsDir()
}

// FileContains reports whether the file at path matches re.
func FileContains(fs billy.Filesystem, path string, re *regexp.Regexp) bool {
	content, err := util.ReadFile(fs, path)
	return err == nil && re.Match(content)
}
