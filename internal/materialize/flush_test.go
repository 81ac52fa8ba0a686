package materialize

import (
	"regexp"
	"strings"
	"testing"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/token"
)

const polarDoc = `keep
#;< X
x-only
#;> X
#;< !X
not-x
#;> !X
end
`

func newTree(t *testing.T, files map[string]string, opts ...Option) *Tree {
	t.Helper()
	fs := memfs.New()
	for p, content := range files {
		require.NoError(t, util.WriteFile(fs, p, []byte(content), 0o644))
	}
	return NewTree(fs, opts...)
}

func readFile(t *testing.T, fs billy.Filesystem, p string) string {
	t.Helper()
	data, err := util.ReadFile(fs, p)
	require.NoError(t, err)
	return string(data)
}

func TestFlush_TokenPolarity(t *testing.T) {
	t.Run("selected", func(t *testing.T) {
		tree := newTree(t, map[string]string{"a.txt": polarDoc})
		tree.Token("X", true)
		stats, err := tree.Flush()
		require.NoError(t, err)
		assert.Equal(t, "keep\nx-only\nend\n", readFile(t, tree.FS(), "a.txt"))
		assert.Equal(t, 1, stats.FilesChanged)
	})

	t.Run("unselected", func(t *testing.T) {
		tree := newTree(t, map[string]string{"a.txt": polarDoc})
		tree.Token("X", false)
		_, err := tree.Flush()
		require.NoError(t, err)
		assert.Equal(t, "keep\nnot-x\nend\n", readFile(t, tree.FS(), "a.txt"))
	})
}

func TestFlush_ConflictingTokensLastWins(t *testing.T) {
	tree := newTree(t, map[string]string{"a.txt": polarDoc})
	tree.Token("X", true)
	tree.Token("X", false)

	stats, err := tree.Flush()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Directives)
	assert.Equal(t, "keep\nnot-x\nend\n", readFile(t, tree.FS(), "a.txt"))
}

func TestFlush_MismatchAbortsBeforeWriting(t *testing.T) {
	good := "#;< X\nYOURSITE\n#;> X\n"
	tree := newTree(t, map[string]string{
		"good.txt": good,
		"bad.txt":  "#;< Y\n#;< Y\n#;> Y\n",
	})
	tree.Replace("YOURSITE", "Star Wars")
	tree.Token("X", true)

	_, err := tree.Flush()
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrConfiguration)

	var mismatch *token.MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "bad.txt", mismatch.Path)
	assert.Equal(t, 2, mismatch.Opening)
	assert.Equal(t, 1, mismatch.Closing)

	assert.Equal(t, good, readFile(t, tree.FS(), "good.txt"))
}

func TestFlush_ReplacementsOnlyDoNotParseTokens(t *testing.T) {
	tree := newTree(t, map[string]string{"bad.txt": "#;< Y\nYOURSITE\n"})
	tree.Replace("YOURSITE", "Star Wars")

	_, err := tree.Flush()
	require.NoError(t, err)
	assert.Equal(t, "#;< Y\nStar Wars\n", readFile(t, tree.FS(), "bad.txt"))
}

func TestFlush_Idempotent(t *testing.T) {
	tree := newTree(t, map[string]string{
		"a.txt":                   polarDoc + "YOURSITE\n",
		"your_site/your_site.txt": "your_site\n",
	})
	tree.Token("X", true)
	tree.Replace("YOURSITE", "Star Wars")
	tree.Replace("your_site", "star_wars")
	tree.Rename("your_site", "star_wars")

	first, err := tree.Flush()
	require.NoError(t, err)
	assert.Equal(t, 2, first.FilesChanged)
	assert.Equal(t, 2, first.Renamed)

	second, err := tree.Flush()
	require.NoError(t, err)
	assert.Zero(t, second.FilesChanged)
	assert.Zero(t, second.Renamed)
	assert.Equal(t, "keep\nx-only\nend\nStar Wars\n", readFile(t, tree.FS(), "a.txt"))
	assert.Equal(t, "star_wars\n", readFile(t, tree.FS(), "star_wars/star_wars.txt"))
}

func TestFlush_ReplaceThenTokenReparses(t *testing.T) {
	tree := newTree(t, map[string]string{"a.txt": "#;< X\nYOURSITE\n#;> X\ntail YOURSITE\n"})
	tree.Replace("YOURSITE", "Star Wars")
	tree.Token("X", false)

	_, err := tree.Flush()
	require.NoError(t, err)
	assert.Equal(t, "tail Star Wars\n", readFile(t, tree.FS(), "a.txt"))
}

func TestFlush_TokenThenReplaceSeesStrippedText(t *testing.T) {
	tree := newTree(t, map[string]string{"a.txt": "#;< X\nyour_site\n#;> X\nyour_site_theme\n"})
	tree.Token("X", false)
	tree.ReplaceRegexp(regexp.MustCompile(`your_site(_\w+)?`), "star_wars$1")

	_, err := tree.Flush()
	require.NoError(t, err)
	assert.Equal(t, "star_wars_theme\n", readFile(t, tree.FS(), "a.txt"))
}

func TestFlush_ReplaceFunc(t *testing.T) {
	tree := newTree(t, map[string]string{"a.php": "class YsBaseTest extends YsCoreBase {}\n"})
	tree.ReplaceFunc(regexp.MustCompile(`Ys([A-Z]\w*)`), func(m string) string {
		return "Sw" + strings.TrimPrefix(m, "Ys")
	})

	_, err := tree.Flush()
	require.NoError(t, err)
	assert.Equal(t, "class SwBaseTest extends SwCoreBase {}\n", readFile(t, tree.FS(), "a.php"))
}

func TestFlush_SkipsBinaryAndGitDir(t *testing.T) {
	binary := "\x00\x01YOURSITE"
	tree := newTree(t, map[string]string{
		"logo.png":    binary,
		".git/config": "YOURSITE\n",
		"README.md":   "YOURSITE\n",
	})
	tree.Replace("YOURSITE", "Star Wars")

	stats, err := tree.Flush()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesChanged)
	assert.Equal(t, binary, readFile(t, tree.FS(), "logo.png"))
	assert.Equal(t, "YOURSITE\n", readFile(t, tree.FS(), ".git/config"))
	assert.Equal(t, "Star Wars\n", readFile(t, tree.FS(), "README.md"))
}

func TestFlush_FormatsOnlyChangedFiles(t *testing.T) {
	var formatted []string
	counting := func(content []byte, p string) ([]byte, error) {
		formatted = append(formatted, p)
		return content, nil
	}
	tree := newTree(t, map[string]string{
		"changed.txt":   "YOURSITE\n",
		"untouched.txt": "nothing\n",
	}, WithFormatter(counting))
	tree.Replace("YOURSITE", "Star Wars")

	_, err := tree.Flush()
	require.NoError(t, err)
	assert.Equal(t, []string{"changed.txt"}, formatted)
}

func TestFlush_GoFormatterCleansStrippedBlocks(t *testing.T) {
	src := "package main\n\nfunc main() {\n\n\t//#;< X\n\tprintln(\"x\")\n\t//#;> X\n}\n"
	tree := newTree(t, map[string]string{"main.go": src}, WithFormatter(FormatGo))
	tree.Token("X", false)

	_, err := tree.Flush()
	require.NoError(t, err)
	assert.Equal(t, "package main\n\nfunc main() {\n}\n", readFile(t, tree.FS(), "main.go"))
}

func TestFlush_BrokenGoKeepsContentAndWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	tree := newTree(t, map[string]string{"broken.go": "package main\n\nfunc YOURSITE( {\n"},
		WithFormatter(FormatGo), WithLogger(zap.New(core)))
	tree.Replace("YOURSITE", "main")

	_, err := tree.Flush()
	require.NoError(t, err)
	assert.Equal(t, "package main\n\nfunc main( {\n", readFile(t, tree.FS(), "broken.go"))

	warnings := logs.FilterMessage("format failed, keeping unformatted content").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "broken.go", warnings[0].ContextMap()["path"])
}

func TestFormatGo_IgnoresOtherFiles(t *testing.T) {
	src := []byte("not   go {\n")
	out, err := FormatGo(src, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, src, out)

	_, err = FormatGo(src, "x.go")
	assert.ErrorContains(t, err, "x.go")
}

func TestFlush_SentinelIntroducedBySubstitutionLeavesTreeUntouched(t *testing.T) {
	tree := newTree(t, map[string]string{
		"a.txt": "YOURSITE\n",
		"b.txt": "#;< X\nOPEN\n#;> X\n",
	})
	tree.Replace("YOURSITE", "ok")
	tree.Replace("OPEN", "#;< X")
	tree.Token("X", true)

	_, err := tree.Flush()
	var mismatch *token.MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "b.txt", mismatch.Path)

	assert.Equal(t, "YOURSITE\n", readFile(t, tree.FS(), "a.txt"))
	assert.Equal(t, "#;< X\nOPEN\n#;> X\n", readFile(t, tree.FS(), "b.txt"))
}

func TestFlush_RenameDeepestFirst(t *testing.T) {
	tree := newTree(t, map[string]string{
		"web/themes/custom/your_site_theme/your_site_theme.info.yml": "name: your_site_theme\n",
		"web/modules/custom/ys_base/ys_base.module":                  "<?php\n",
	})
	tree.Rename("your_site_theme", "star_wars")
	tree.Rename("ys_base", "sw_base")

	stats, err := tree.Flush()
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Renamed)

	fs := tree.FS()
	assert.True(t, tree.Exists("web/themes/custom/star_wars/star_wars.info.yml"))
	assert.True(t, tree.Exists("web/modules/custom/sw_base/sw_base.module"))
	assert.False(t, tree.Exists("web/themes/custom/your_site_theme"))
	assert.Equal(t, "name: your_site_theme\n", readFile(t, fs, "web/themes/custom/star_wars/star_wars.info.yml"))
}

func TestFlush_Empty(t *testing.T) {
	tree := newTree(t, map[string]string{"a.txt": "a\n"})
	stats, err := tree.Flush()
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
}

func TestTree_RemoveAndMove(t *testing.T) {
	tree := newTree(t, map[string]string{
		"web/index.php":   "<?php\n",
		"docs/a.md":       "a\n",
		"CHANGELOG.md":    "x\n",
		"hooks/library/x": "x\n",
		".lagoon.yml":     "x\n",
	})

	tree.Remove("docs", "missing/path", ".lagoon.yml")
	assert.False(t, tree.Exists("docs"))
	assert.False(t, tree.Exists(".lagoon.yml"))

	tree.RemoveGlob("*.md")
	assert.False(t, tree.Exists("CHANGELOG.md"))

	require.NoError(t, tree.Move("web", "docroot"))
	assert.True(t, tree.Exists("docroot/index.php"))
	assert.False(t, tree.Exists("web"))

	require.NoError(t, tree.Move("web", "public"), "missing source is a no-op")
	require.NoError(t, tree.Move("hooks", "hooks"))
	assert.True(t, tree.Exists("hooks/library/x"))
}

func TestTree_WriteFile(t *testing.T) {
	tree := newTree(t, map[string]string{"sub/a.txt": "old\n"})
	require.NoError(t, tree.WriteFile("sub/a.txt", []byte("new\n")))

	data, err := tree.ReadFile("sub/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))

	entries, err := tree.FS().ReadDir("sub")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestIsBinary(t *testing.T) {
	assert.False(t, IsBinary([]byte("plain text\n")))
	assert.True(t, IsBinary([]byte("a\x00b")))
	late := make([]byte, binarySniffLen+10)
	for i := range late {
		late[i] = 'a'
	}
	late[binarySniffLen+5] = 0
	assert.False(t, IsBinary(late), "only the leading window is sniffed")
}

func TestFlush_RenameLongestSourceFirst(t *testing.T) {
	tree := newTree(t, map[string]string{
		"themes/your_site_theme/your_site.info.yml": "x\n",
	})
	tree.Rename("your_site", "star_wars")
	tree.Rename("your_site_theme", "jedi")

	_, err := tree.Flush()
	require.NoError(t, err)
	assert.True(t, tree.Exists("themes/jedi/star_wars.info.yml"))
}
