package materialize

import (
	"fmt"
	"regexp"
	"strings"
)

// Directive is one deferred materialization instruction. Directives with the
// same Key replace each other in the log.
type Directive interface {
	Key() string
}

// TokenDirective resolves a binary block token. Selected keeps the plain
// blocks' content and strips the negated ones; unselected does the reverse.
type TokenDirective struct {
	Name     string
	Selected bool
}

func (d TokenDirective) Key() string { return "token:" + d.Name }

func (d TokenDirective) String() string {
	return fmt.Sprintf("token %s selected=%v", d.Name, d.Selected)
}

// ReplaceDirective substitutes a literal string or a pattern. Func, when
// set, computes the replacement for each match and takes precedence over
// Replace.
type ReplaceDirective struct {
	Search  string
	Pattern *regexp.Regexp
	Replace string
	Func    func(match string) string
}

func (d ReplaceDirective) Key() string {
	if d.Pattern != nil {
		return "replace~:" + d.Pattern.String()
	}
	return "replace:" + d.Search
}

func (d ReplaceDirective) apply(content string) string {
	if d.Pattern != nil {
		if d.Func != nil {
			return d.Pattern.ReplaceAllStringFunc(content, d.Func)
		}
		return d.Pattern.ReplaceAllString(content, d.Replace)
	}
	if d.Search == "" {
		return content
	}
	if d.Func != nil {
		return strings.ReplaceAll(content, d.Search, d.Func(d.Search))
	}
	return strings.ReplaceAll(content, d.Search, d.Replace)
}

// RenameDirective replaces From with To inside file and directory names.
type RenameDirective struct {
	From string
	To   string
}

func (d RenameDirective) Key() string { return "rename:" + d.From }

// Log is an ordered command log. Enqueueing a directive whose key is already
// present replaces the earlier entry in place, so the last enqueued effect
// wins while the first enqueue fixes its position. Replacements are keyed by
// search term (or pattern) alone: a later replacement for the same search
// term supersedes the earlier one whatever its replacement text.
type Log struct {
	order   []string
	entries map[string]Directive
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{entries: make(map[string]Directive)}
}

// Enqueue records d.
func (l *Log) Enqueue(d Directive) {
	k := d.Key()
	if _, exists := l.entries[k]; !exists {
		l.order = append(l.order, k)
	}
	l.entries[k] = d
}

// Directives returns the effective directives in order.
func (l *Log) Directives() []Directive {
	out := make([]Directive, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, l.entries[k])
	}
	return out
}

// Len returns the number of effective directives.
func (l *Log) Len() int { return len(l.order) }
