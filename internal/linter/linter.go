// Package linter checks template files for block token problems: sentinels
// that do not pair up, and tokens no setting ever resolves, whose sentinels
// would be left in a generated project.
package linter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/drevops/vortex-sub001/internal/materialize"
	"github.com/drevops/vortex-sub001/internal/token"
)

type Diagnostic struct {
	Path    string
	Line    int // 1-based
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s", d.Path, d.Line, d.Message)
}

// Known reports whether a token name is resolved by some setting.
type Known func(name string) bool

// KnownNames builds a Known from a list of token names.
func KnownNames(names []string) Known {
	return func(name string) bool { return slices.Contains(names, name) }
}

// Lint checks one file. A nil known accepts every token name.
func Lint(path string, content []byte, known Known) []Diagnostic {
	if !token.Contains(content) {
		return nil
	}

	doc, err := token.Parse(path, content)
	if err != nil {
		var mismatch *token.MismatchError
		if errors.As(err, &mismatch) {
			return []Diagnostic{{
				Path: path,
				Line: mismatch.Line,
				Message: fmt.Sprintf("token %s has %d opening and %d closing sentinels",
					mismatch.Key, mismatch.Opening, mismatch.Closing),
			}}
		}
		return []Diagnostic{{Path: path, Message: err.Error()}}
	}

	if known == nil {
		return nil
	}
	var diags []Diagnostic
	for _, k := range doc.Keys() {
		if known(k.Name) {
			continue
		}
		diags = append(diags, Diagnostic{
			Path:    path,
			Line:    doc.Blocks(k)[0].Start + 1,
			Message: fmt.Sprintf("token %s is never resolved", k),
		})
	}
	return diags
}

// LintTree lints every text file below the root of fsys, skipping the named
// directories. Diagnostics are ordered by path.
func LintTree(fsys billy.Filesystem, known Known, skipDirs ...string) ([]Diagnostic, error) {
	var diags []Diagnostic
	err := util.Walk(fsys, ".", func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			if p != "." && slices.Contains(skipDirs, info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		content, err := util.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		if materialize.IsBinary(content) {
			return nil
		}
		diags = append(diags, Lint(filepath.ToSlash(p), content, known)...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return a.Line - b.Line
	})
	return diags, nil
}
