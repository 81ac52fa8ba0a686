// Package materialize applies resolved settings to a working copy of the
// template: block token removal, placeholder substitution and path renaming,
// collected as directives and flushed once.
package materialize

import (
	"errors"
	"os"
	"path"
	"regexp"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

// Formatter post-processes rewritten file content. It returns content
// unchanged when the file is not its concern, and an error when the file is
// its concern but cannot be formatted.
type Formatter func(content []byte, filePath string) ([]byte, error)

// Option configures a Tree.
type Option func(*Tree)

// WithLogger sets the logger used for flush statistics and best-effort
// file operation failures.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tree) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithFormatter appends a formatter run on every file the flush rewrites.
func WithFormatter(f Formatter) Option {
	return func(t *Tree) {
		if f != nil {
			t.formatters = append(t.formatters, f)
		}
	}
}

// WithSkipDirs replaces the directory names the flush never descends into.
func WithSkipDirs(names ...string) Option {
	return func(t *Tree) { t.skipDirs = names }
}

// Tree is the working copy of the template. Handlers enqueue directives on it
// during processing and may also mutate it directly for operations outside
// the directive model, such as deleting whole files.
type Tree struct {
	fs         billy.Filesystem
	log        *Log
	logger     *zap.Logger
	formatters []Formatter
	skipDirs   []string
}

// NewTree wraps fs.
func NewTree(fs billy.Filesystem, opts ...Option) *Tree {
	t := &Tree{
		fs:       fs,
		log:      NewLog(),
		logger:   zap.NewNop(),
		skipDirs: []string{".git"},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// FS exposes the underlying filesystem.
func (t *Tree) FS() billy.Filesystem { return t.fs }

// Log exposes the pending directives.
func (t *Tree) Log() *Log { return t.log }

// Token enqueues resolution of a binary block token.
func (t *Tree) Token(name string, selected bool) {
	t.log.Enqueue(TokenDirective{Name: name, Selected: selected})
}

// Replace enqueues a literal substitution.
func (t *Tree) Replace(search, replace string) {
	t.log.Enqueue(ReplaceDirective{Search: search, Replace: replace})
}

// ReplaceRegexp enqueues a pattern substitution; replace may use $1 expansions.
func (t *Tree) ReplaceRegexp(re *regexp.Regexp, replace string) {
	t.log.Enqueue(ReplaceDirective{Pattern: re, Replace: replace})
}

// ReplaceFunc enqueues a pattern substitution computed per match.
func (t *Tree) ReplaceFunc(re *regexp.Regexp, fn func(match string) string) {
	t.log.Enqueue(ReplaceDirective{Pattern: re, Func: fn})
}

// Rename enqueues a substring rename of file and directory names.
func (t *Tree) Rename(from, to string) {
	if from == "" || from == to {
		return
	}
	t.log.Enqueue(RenameDirective{From: from, To: to})
}

// Exists reports whether p exists in the tree.
func (t *Tree) Exists(p string) bool {
	_, err := t.fs.Lstat(p)
	return err == nil
}

// Remove deletes files or directories. Missing paths are ignored: the tree
// may already be partially transformed.
func (t *Tree) Remove(paths ...string) {
	for _, p := range paths {
		if !t.Exists(p) {
			continue
		}
		if err := util.RemoveAll(t.fs, p); err != nil {
			t.logger.Warn("remove failed", zap.String("path", p), zap.Error(err))
			continue
		}
		t.logger.Debug("removed", zap.String("path", p))
	}
}

// RemoveGlob deletes every path matching pattern.
func (t *Tree) RemoveGlob(pattern string) {
	matches, err := util.Glob(t.fs, pattern)
	if err != nil {
		t.logger.Warn("glob failed", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	t.Remove(matches...)
}

// Move renames from to to. A missing source is ignored.
func (t *Tree) Move(from, to string) error {
	if from == to || !t.Exists(from) {
		return nil
	}
	if dir := path.Dir(to); dir != "." {
		if err := t.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := t.fs.Rename(from, to); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	t.logger.Debug("moved", zap.String("from", from), zap.String("to", to))
	return nil
}

// ReadFile reads p from the tree.
func (t *Tree) ReadFile(p string) ([]byte, error) {
	return util.ReadFile(t.fs, p)
}

// WriteFile replaces p atomically, keeping its mode when it already exists.
func (t *Tree) WriteFile(p string, content []byte) error {
	return writeAtomic(t.fs, p, content)
}
