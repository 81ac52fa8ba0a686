package discovery

import (
	"strconv"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/tidwall/jsonc"
)

// ReadJSON parses a JSON manifest, tolerating comments and trailing commas.
func ReadJSON(fs billy.Filesystem, path string) (any, bool) {
	content, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, false
	}
	data, err := oj.Parse(jsonc.ToJSON(content))
	if err != nil {
		return nil, false
	}
	return data, true
}

// DottedPath compiles "a.b.0.c" into a JSONPath expression. Numeric segments
// address array elements.
func DottedPath(path string) jp.Expr {
	x := jp.R()
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			continue
		}
		if n, err := strconv.Atoi(seg); err == nil {
			x = x.N(n)
			continue
		}
		x = x.C(seg)
	}
	return x
}

// Lookup evaluates a dotted path against decoded data.
func Lookup(data any, path string) (any, bool) {
	results := DottedPath(path).Get(data)
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}

// JSONValue returns the value at a dotted path in the manifest at file.
func JSONValue(fs billy.Filesystem, file, path string) (any, bool) {
	data, ok := ReadJSON(fs, file)
	if !ok {
		return nil, false
	}
	return Lookup(data, path)
}

// JSONString is JSONValue narrowed to string values.
func JSONString(fs billy.Filesystem, file, path string) (string, bool) {
	v, ok := JSONValue(fs, file, path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
