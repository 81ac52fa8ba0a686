package materialize

import (
	"fmt"
	"path"

	billy "github.com/go-git/go-billy/v5"
)

// writeAtomic writes content to a temp file beside p, then renames it over p.
// The original file mode is carried over when the filesystem supports it.
func writeAtomic(fs billy.Filesystem, p string, content []byte) error {
	dir := path.Dir(p)
	tmp, err := fs.TempFile(dir, ".installer-write-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("close temp: %w", err)
	}

	if info, err := fs.Stat(p); err == nil {
		if ch, ok := fs.(billy.Change); ok {
			_ = ch.Chmod(tmpName, info.Mode().Perm()) // best-effort permission sync
		}
	}

	if err := fs.Rename(tmpName, p); err != nil {
		_ = fs.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("rename temp to %s: %w", p, err)
	}
	return nil
}
