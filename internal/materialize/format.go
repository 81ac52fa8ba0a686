package materialize

import (
	"fmt"
	"path"

	"mvdan.cc/gofumpt/format"
)

// FormatGo formats Go source with gofumpt so that stripped token blocks do
// not leave stray blank lines behind. Non-Go files come back unchanged.
func FormatGo(content []byte, filePath string) ([]byte, error) {
	if path.Ext(filePath) != ".go" {
		return content, nil
	}
	formatted, err := format.Source(content, format.Options{})
	if err != nil {
		return content, fmt.Errorf("gofumpt %s: %w", filePath, err)
	}
	return formatted, nil
}
