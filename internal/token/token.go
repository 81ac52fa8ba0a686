// Package token parses and removes conditional block tokens in template files.
//
// A block opens with a line containing "#;< NAME" and closes with a line
// containing "#;> NAME". The negated form uses "#;< !NAME" / "#;> !NAME".
// Anything may precede the sentinel on its line, so templates can hide it
// behind the host language's comment leader ("# ", "// ", "<!-- ").
package token

import (
	"bytes"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/drevops/vortex-sub001/api"
)

const (
	OpenMarker     = "#;<"
	CloseMarker    = "#;>"
	NegationMarker = "!"
)

var sentinelRe = regexp.MustCompile(`#;([<>])[ \t]+(!?)([A-Za-z0-9_]+)\b`)

// Key identifies one polarity of a named token.
type Key struct {
	Name    string
	Negated bool
}

func (k Key) String() string {
	if k.Negated {
		return NegationMarker + k.Name
	}
	return k.Name
}

// Block is a pair of sentinel line indices (0-based, inclusive).
type Block struct {
	Start int
	End   int
}

// MismatchError reports unbalanced sentinels for one token in one file.
type MismatchError struct {
	Path    string
	Key     Key
	Opening int
	Closing int
	Line    int // 1-based line of the first unpaired sentinel
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s:%d: token %s has %d opening and %d closing sentinels",
		e.Path, e.Line, e.Key, e.Opening, e.Closing)
}

// Unwrap makes mismatches fatal configuration errors.
func (e *MismatchError) Unwrap() error { return api.ErrConfiguration }

// Contains reports whether content has any sentinel at all. Files without
// one never need parsing.
func Contains(content []byte) bool {
	return bytes.Contains(content, []byte(OpenMarker)) || bytes.Contains(content, []byte(CloseMarker))
}

// Document is a file split into lines with its token blocks resolved.
// Removals only mark lines; indices stay stable until Bytes is called.
type Document struct {
	path    string
	lines   []string
	removed []bool
	blocks  map[Key][]Block
}

// Parse splits content into lines and pairs every sentinel. Any token whose
// opening and closing sentinels do not pair up is reported as a
// *MismatchError before anything is modified.
func Parse(path string, content []byte) (*Document, error) {
	lines := strings.SplitAfter(string(content), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	d := &Document{
		path:    path,
		lines:   lines,
		removed: make([]bool, len(lines)),
		blocks:  make(map[Key][]Block),
	}

	open := make(map[Key][]int)
	opening := make(map[Key]int)
	closing := make(map[Key]int)
	var order []Key
	firstStray := make(map[Key]int)

	for i, line := range lines {
		m := sentinelRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		k := Key{Name: m[3], Negated: m[2] == NegationMarker}
		if _, seen := opening[k]; !seen {
			if _, seen := closing[k]; !seen {
				order = append(order, k)
			}
		}
		if m[1] == "<" {
			opening[k]++
			open[k] = append(open[k], i)
			continue
		}
		closing[k]++
		stack := open[k]
		if len(stack) == 0 {
			if _, ok := firstStray[k]; !ok {
				firstStray[k] = i
			}
			continue
		}
		start := stack[len(stack)-1]
		open[k] = stack[:len(stack)-1]
		d.blocks[k] = append(d.blocks[k], Block{Start: start, End: i})
	}

	for _, k := range order {
		stray, hasStray := firstStray[k]
		if !hasStray && len(open[k]) == 0 {
			continue
		}
		line := stray
		if !hasStray {
			line = open[k][0]
		}
		return nil, &MismatchError{
			Path:    path,
			Key:     k,
			Opening: opening[k],
			Closing: closing[k],
			Line:    line + 1,
		}
	}

	for k := range d.blocks {
		slices.SortFunc(d.blocks[k], func(a, b Block) int { return a.Start - b.Start })
	}
	return d, nil
}

// Path returns the path the document was parsed from.
func (d *Document) Path() string { return d.path }

// Keys returns every token in the document ordered by its first block.
func (d *Document) Keys() []Key {
	keys := make([]Key, 0, len(d.blocks))
	for k := range d.blocks {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		return d.blocks[a][0].Start - d.blocks[b][0].Start
	})
	return keys
}

// Blocks returns the blocks for k in source order.
func (d *Document) Blocks(k Key) []Block {
	return slices.Clone(d.blocks[k])
}

// Has reports whether either polarity of name occurs in the document.
func (d *Document) Has(name string) bool {
	return len(d.blocks[Key{Name: name}]) > 0 || len(d.blocks[Key{Name: name, Negated: true}]) > 0
}

// Remove deletes every block of k. With content, the sentinel lines and
// everything between go; without, only the sentinel lines go. It reports
// whether any line was newly removed, so repeating a removal is a no-op.
func (d *Document) Remove(k Key, withContent bool) bool {
	changed := false
	for _, b := range d.blocks[k] {
		if withContent {
			for i := b.Start; i <= b.End; i++ {
				changed = d.drop(i) || changed
			}
			continue
		}
		changed = d.drop(b.Start) || changed
		changed = d.drop(b.End) || changed
	}
	return changed
}

// Apply resolves a binary setting. When selected the negated blocks are
// stripped with content and plain blocks are unwrapped; otherwise the plain
// blocks are stripped and negated blocks unwrapped.
func (d *Document) Apply(name string, selected bool) bool {
	strip := Key{Name: name, Negated: selected}
	keep := Key{Name: name, Negated: !selected}
	changed := d.Remove(strip, true)
	changed = d.Remove(keep, false) || changed
	return changed
}

// Bytes renders the document without removed lines.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	for i, line := range d.lines {
		if !d.removed[i] {
			buf.WriteString(line)
		}
	}
	return buf.Bytes()
}

func (d *Document) drop(i int) bool {
	if d.removed[i] {
		return false
	}
	d.removed[i] = true
	return true
}
