package materialize

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Copy copies the whole of src into dst, overwriting files that already
// exist there. Directories named in skip are not descended into. File modes
// are preserved and symlinks are recreated when both filesystems support them.
func Copy(dst, src billy.Filesystem, skip ...string) error {
	return util.Walk(src, ".", func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", p, err)
		}
		if p == "." {
			return nil
		}
		if info.IsDir() {
			if slices.Contains(skip, info.Name()) {
				return filepath.SkipDir
			}
			return dst.MkdirAll(p, info.Mode().Perm()|0o700)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return copySymlink(dst, src, p)
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		return copyFile(dst, src, p, info.Mode().Perm())
	})
}

func copyFile(dst, src billy.Filesystem, p string, mode fs.FileMode) error {
	in, err := src.Open(p)
	if err != nil {
		return fmt.Errorf("open %s: %w", p, err)
	}
	defer func() { _ = in.Close() }()

	if dir := filepath.Dir(p); dir != "." {
		if err := dst.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	out, err := dst.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", p, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", p, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", p, err)
	}
	if ch, ok := dst.(billy.Change); ok {
		_ = ch.Chmod(p, mode) // best-effort: OpenFile mode is masked by umask
	}
	return nil
}

func copySymlink(dst, src billy.Filesystem, p string) error {
	sl, ok := src.(billy.Symlink)
	if !ok {
		return nil
	}
	dl, ok := dst.(billy.Symlink)
	if !ok {
		return nil
	}
	target, err := sl.Readlink(p)
	if err != nil {
		return fmt.Errorf("readlink %s: %w", p, err)
	}
	if err := dst.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("replace %s: %w", p, err)
	}
	return dl.Symlink(target, p)
}
