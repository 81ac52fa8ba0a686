// Package discovery inspects an existing project to suggest setting values.
//
// Every reader here is read-only and fails closed: unreadable or malformed
// input yields "not found" rather than an error, so a damaged destination can
// never abort a run.
package discovery

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

var (
	dotenvKeyRe     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	// An unquoted value ends at a "#" that follows whitespace.
	inlineCommentRe = regexp.MustCompile(`\s#`)
	dotenvEscaper   = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
)

// ParseDotenv parses KEY=value lines. Values may be single- or double-quoted
// to keep embedded whitespace; double quotes also decode \", \\ and \n.
// "#" after whitespace starts a comment outside quotes. Any malformed line
// fails the whole parse.
func ParseDotenv(content []byte) (map[string]string, error) {
	values := make(map[string]string)
	for n, raw := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		eq := strings.IndexByte(line, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("line %d: missing '='", n+1)
		}
		key := strings.TrimSpace(line[:eq])
		if !dotenvKeyRe.MatchString(key) {
			return nil, fmt.Errorf("line %d: invalid key %q", n+1, key)
		}
		value, err := parseDotenvValue(strings.TrimSpace(line[eq+1:]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		values[key] = value
	}
	return values, nil
}

func parseDotenvValue(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	var (
		value string
		rest  string
	)
	switch s[0] {
	case '\'':
		end := strings.IndexByte(s[1:], '\'')
		if end < 0 {
			return "", fmt.Errorf("unterminated quote")
		}
		value, rest = s[1:end+1], s[end+2:]
	case '"':
		var (
			b      strings.Builder
			closed bool
			i      = 1
		)
		for ; i < len(s) && !closed; i++ {
			switch c := s[i]; {
			case c == '"':
				closed = true
			case c == '\\' && i+1 < len(s):
				i++
				switch s[i] {
				case 'n':
					b.WriteByte('\n')
				case '"', '\\':
					b.WriteByte(s[i])
				default:
					b.WriteByte('\\')
					b.WriteByte(s[i])
				}
			default:
				b.WriteByte(c)
			}
		}
		if !closed {
			return "", fmt.Errorf("unterminated quote")
		}
		value, rest = b.String(), s[i:]
	default:
		if loc := inlineCommentRe.FindStringIndex(s); loc != nil {
			s = s[:loc[0]]
		}
		s = strings.TrimSpace(s)
		if strings.ContainsAny(s, " \t\"'") {
			return "", fmt.Errorf("unquoted value contains whitespace or quotes")
		}
		return s, nil
	}
	if rest = strings.TrimSpace(rest); rest != "" && !strings.HasPrefix(rest, "#") {
		return "", fmt.Errorf("unexpected text after quoted value")
	}
	return value, nil
}

// ReadDotenv parses the dotenv file at path. It returns nil when the file is
// missing or malformed.
func ReadDotenv(fs billy.Filesystem, path string) map[string]string {
	content, err := util.ReadFile(fs, path)
	if err != nil {
		return nil
	}
	values, err := ParseDotenv(content)
	if err != nil {
		return nil
	}
	return values
}

// DotenvValue returns the value of key in the dotenv file at path.
func DotenvValue(fs billy.Filesystem, path, key string) (string, bool) {
	values := ReadDotenv(fs, path)
	if values == nil {
		return "", false
	}
	v, ok := values[key]
	return v, ok
}

// FormatDotenvValue quotes values that would not survive an unquoted read.
// Quoted values are always double-quoted with escapes, so any string reads
// back unchanged.
func FormatDotenvValue(value string) string {
	if value == "" || !strings.ContainsAny(value, " \t\r\n#\"'\\") {
		return value
	}
	return `"` + dotenvEscaper.Replace(value) + `"`
}

// SetDotenvValue rewrites the first assignment of key in place, keeping every
// other line byte-for-byte, or appends one when the key is absent. A missing
// file is created.
func SetDotenvValue(fs billy.Filesystem, path, key, value string) error {
	content, err := util.ReadFile(fs, path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", path, err)
	}

	assignment := key + "=" + FormatDotenvValue(value)
	lines := bytes.Split(content, []byte("\n"))
	replaced := false
	for i, line := range lines {
		trimmed := strings.TrimPrefix(strings.TrimSpace(string(line)), "export ")
		if strings.HasPrefix(trimmed, key+"=") {
			lines[i] = []byte(assignment)
			replaced = true
			break
		}
	}

	out := bytes.Join(lines, []byte("\n"))
	if !replaced {
		if len(out) > 0 && !bytes.HasSuffix(out, []byte("\n")) {
			out = append(out, '\n')
		}
		out = append(out, assignment...)
		out = append(out, '\n')
	}
	return util.WriteFile(fs, path, out, 0o644)
}
