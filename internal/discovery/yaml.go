package discovery

import (
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"
)

// ReadYAML decodes a YAML document into generic maps. Any read or parse
// failure (tabs in indentation, broken mappings) reports false.
func ReadYAML(fs billy.Filesystem, path string) (map[string]any, bool) {
	content, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, false
	}
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, false
	}
	if doc == nil {
		return nil, false
	}
	return doc, true
}

// YAMLValue returns the value at a dotted path in the YAML document at file.
func YAMLValue(fs billy.Filesystem, file, path string) (any, bool) {
	doc, ok := ReadYAML(fs, file)
	if !ok {
		return nil, false
	}
	return Lookup(doc, path)
}

// YAMLKeys returns the mapping keys at a dotted path. Generic decoding loses
// document order, so callers sort when they need stability.
func YAMLKeys(fs billy.Filesystem, file, path string) ([]string, bool) {
	v, ok := YAMLValue(fs, file, path)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys, true
}
