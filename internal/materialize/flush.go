package materialize

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"

	"github.com/drevops/vortex-sub001/internal/token"
)

const binarySniffLen = 8000

// Stats summarises one flush.
type Stats struct {
	Directives   int
	FilesScanned int
	FilesChanged int
	Renamed      int
}

type pendingFile struct {
	path string
	data []byte
	doc  *token.Document
}

// Flush applies the log to the tree. Every text file holding sentinels is
// parsed first, and every file's new content is computed before any write,
// so a sentinel mismatch anywhere aborts with the tree untouched. Content
// directives run per file in log order, followed by renames deepest path
// first. Directives that match nothing are no-ops, so
// flushing again leaves the tree unchanged.
func (t *Tree) Flush() (Stats, error) {
	directives := t.log.Directives()
	stats := Stats{Directives: len(directives)}

	var content []Directive
	var renames []RenameDirective
	hasTokens := false
	for _, d := range directives {
		switch d := d.(type) {
		case TokenDirective:
			hasTokens = true
			content = append(content, d)
		case ReplaceDirective:
			content = append(content, d)
		case RenameDirective:
			renames = append(renames, d)
		}
	}

	if len(content) > 0 {
		files, err := t.loadTextFiles(hasTokens)
		if err != nil {
			return stats, err
		}
		stats.FilesScanned = len(files)

		// Substitutions can introduce sentinels that only fail on re-parse, so
		// every file is rendered before the first write.
		var changed []*pendingFile
		for _, f := range files {
			out, err := applyContent(f, content)
			if err != nil {
				return stats, err
			}
			if bytes.Equal(out, f.data) {
				continue
			}
			f.data = t.format(f.path, out)
			changed = append(changed, f)
		}
		for _, f := range changed {
			if err := writeAtomic(t.fs, f.path, f.data); err != nil {
				return stats, err
			}
			stats.FilesChanged++
		}
	}

	if len(renames) > 0 {
		stats.Renamed = t.applyRenames(renames)
	}

	t.logger.Info("flushed directives",
		zap.Int("directives", stats.Directives),
		zap.Int("files_scanned", stats.FilesScanned),
		zap.Int("files_changed", stats.FilesChanged),
		zap.Int("renamed", stats.Renamed))
	return stats, nil
}

// format runs the formatters over rewritten content. A formatter that fails
// leaves the content as it was.
func (t *Tree) format(p string, content []byte) []byte {
	for _, f := range t.formatters {
		out, err := f(content, p)
		if err != nil {
			t.logger.Warn("format failed, keeping unformatted content", zap.String("path", p), zap.Error(err))
			continue
		}
		content = out
	}
	return content
}

func (t *Tree) loadTextFiles(parse bool) ([]*pendingFile, error) {
	var files []*pendingFile
	err := t.walk(func(p string, info fs.FileInfo) error {
		if !info.Mode().IsRegular() {
			return nil
		}
		data, err := util.ReadFile(t.fs, p)
		if err != nil {
			t.logger.Warn("skip unreadable file", zap.String("path", p), zap.Error(err))
			return nil
		}
		if IsBinary(data) {
			return nil
		}
		f := &pendingFile{path: p, data: data}
		if parse && token.Contains(data) {
			doc, err := token.Parse(p, data)
			if err != nil {
				return err
			}
			f.doc = doc
		}
		files = append(files, f)
		return nil
	})
	return files, err
}

// applyContent runs token and replace directives over one file in order.
// Token directives act on the parsed document; a substitution that changes
// the text marks the document stale so the next token directive re-parses.
func applyContent(f *pendingFile, directives []Directive) ([]byte, error) {
	text := string(f.data)
	doc := f.doc
	dirty := false
	stale := false

	for _, d := range directives {
		switch d := d.(type) {
		case TokenDirective:
			if doc == nil && !stale {
				continue
			}
			if stale {
				reparsed, err := token.Parse(f.path, []byte(text))
				if err != nil {
					return nil, err
				}
				doc, stale = reparsed, false
			}
			if doc.Apply(d.Name, d.Selected) {
				dirty = true
			}
		case ReplaceDirective:
			if dirty {
				text = string(doc.Bytes())
				dirty = false
			}
			if next := d.apply(text); next != text {
				text = next
				stale = doc != nil || token.Contains([]byte(text))
			}
		}
	}
	if dirty {
		text = string(doc.Bytes())
	}
	return []byte(text), nil
}

// applyRenames renames base names deepest path first. Within one name the
// longest source applies first, so renaming your_site_theme is not pre-empted
// by a rename of your_site.
func (t *Tree) applyRenames(renames []RenameDirective) int {
	renames = slices.Clone(renames)
	slices.SortStableFunc(renames, func(a, b RenameDirective) int {
		return len(b.From) - len(a.From)
	})

	var paths []string
	_ = t.walk(func(p string, _ fs.FileInfo) error {
		paths = append(paths, p)
		return nil
	})

	slices.SortFunc(paths, func(a, b string) int {
		if da, db := strings.Count(a, "/"), strings.Count(b, "/"); da != db {
			return db - da
		}
		return strings.Compare(b, a)
	})

	renamed := 0
	for _, p := range paths {
		base := path.Base(p)
		next := base
		for _, r := range renames {
			next = strings.ReplaceAll(next, r.From, r.To)
		}
		if next == base {
			continue
		}
		target := path.Join(path.Dir(p), next)
		if err := t.fs.Rename(p, target); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				t.logger.Warn("rename failed", zap.String("from", p), zap.String("to", target), zap.Error(err))
			}
			continue
		}
		renamed++
	}
	return renamed
}

// walk visits every path below the tree root except skipped directories.
// Paths are slash-separated and relative to the root.
func (t *Tree) walk(fn func(p string, info fs.FileInfo) error) error {
	return util.Walk(t.fs, ".", func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		p = filepath.ToSlash(p)
		if p == "." {
			return nil
		}
		if info.IsDir() && slices.Contains(t.skipDirs, info.Name()) {
			return filepath.SkipDir
		}
		return fn(p, info)
	})
}

// IsBinary reports whether data looks binary: a NUL byte in its leading
// window.
func IsBinary(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
