package discovery

import (
	"regexp"
	"strings"
	"testing"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for path, content := range files {
		require.NoError(t, util.WriteFile(fs, path, []byte(content), 0o644))
	}
	return fs
}

func TestParseDotenv(t *testing.T) {
	t.Run("plain quoted and commented values", func(t *testing.T) {
		values, err := ParseDotenv([]byte(`
# comment
VORTEX_PROJECT=star_wars
export TZ=UTC
NAME="Star Wars"
SINGLE='with  two spaces'
HASH="value # not a comment"
TRAILING=value # comment
TABBED=star	# tab before comment
ANCHOR=page#section
ESCAPED="say \"hi\"\\n\nnext"
EMPTY=
`))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"VORTEX_PROJECT": "star_wars",
			"TZ":             "UTC",
			"NAME":           "Star Wars",
			"SINGLE":         "with  two spaces",
			"HASH":           "value # not a comment",
			"TRAILING":       "value",
			"TABBED":         "star",
			"ANCHOR":         "page#section",
			"ESCAPED":        "say \"hi\"\\n\nnext",
			"EMPTY":          "",
		}, values)
	})

	for name, input := range map[string]string{
		"missing equals":     "JUSTAKEY\n",
		"bad key":            "1KEY=value\n",
		"unterminated quote": "KEY=\"open\n",
		"unquoted spaces":    "KEY=two words\n",
		"escaped close":      "KEY=\"open\\\"\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDotenv([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestDotenvValue(t *testing.T) {
	t.Run("finds key", func(t *testing.T) {
		fs := writeFiles(t, map[string]string{".env": "VORTEX_DB_DOWNLOAD_SOURCE=ftp\n"})
		v, ok := DotenvValue(fs, ".env", "VORTEX_DB_DOWNLOAD_SOURCE")
		require.True(t, ok)
		assert.Equal(t, "ftp", v)
	})

	t.Run("malformed file fails closed", func(t *testing.T) {
		fs := writeFiles(t, map[string]string{".env": "VORTEX_DB_DOWNLOAD_SOURCE=ftp\nbroken line\n"})
		_, ok := DotenvValue(fs, ".env", "VORTEX_DB_DOWNLOAD_SOURCE")
		assert.False(t, ok)
	})

	t.Run("missing file", func(t *testing.T) {
		_, ok := DotenvValue(memfs.New(), ".env", "KEY")
		assert.False(t, ok)
	})
}

func TestSetDotenvValue_RoundTrip(t *testing.T) {
	fs := writeFiles(t, map[string]string{".env": "# header\nTZ=UTC\nOTHER=keep # note\n"})

	require.NoError(t, SetDotenvValue(fs, ".env", "NAME", "My Project"))
	require.NoError(t, SetDotenvValue(fs, ".env", "TZ", "Australia/Melbourne"))

	content, err := util.ReadFile(fs, ".env")
	require.NoError(t, err)
	assert.Equal(t, "# header\nTZ=Australia/Melbourne\nOTHER=keep # note\nNAME=\"My Project\"\n", string(content))

	v, ok := DotenvValue(fs, ".env", "NAME")
	require.True(t, ok)
	assert.Equal(t, "My Project", v, "quoted on write, unquoted on read")

	v, ok = DotenvValue(fs, ".env", "TZ")
	require.True(t, ok)
	assert.Equal(t, "Australia/Melbourne", v)
	assert.Equal(t, "ftp", FormatDotenvValue("ftp"), "plain values stay unquoted")
}

func TestSetDotenvValue_RoundTripAwkwardValues(t *testing.T) {
	for _, value := range []string{
		"a b",
		`it's "quoted"`,
		"line1\nline2",
		`C:\path\"x"`,
		`\n literal`,
		"tab\there # hash",
		"'single'",
	} {
		t.Run(value, func(t *testing.T) {
			fs := memfs.New()
			require.NoError(t, SetDotenvValue(fs, ".env", "OTHER", "keep"))
			require.NoError(t, SetDotenvValue(fs, ".env", "KEY", value))
			require.NoError(t, SetDotenvValue(fs, ".env", "LAST", "too"))

			got, ok := DotenvValue(fs, ".env", "KEY")
			require.True(t, ok)
			assert.Equal(t, value, got)

			other, ok := DotenvValue(fs, ".env", "OTHER")
			require.True(t, ok)
			assert.Equal(t, "keep", other)

			content, err := util.ReadFile(fs, ".env")
			require.NoError(t, err)
			assert.Len(t, strings.Split(strings.TrimSuffix(string(content), "\n"), "\n"), 3, "one line per key")
		})
	}
}

func TestSetDotenvValue_CreatesFile(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, SetDotenvValue(fs, ".env", "KEY", "value"))
	content, err := util.ReadFile(fs, ".env")
	require.NoError(t, err)
	assert.Equal(t, "KEY=value\n", string(content))
}

func TestJSONValue(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"composer.json": `{
  // comments are tolerated
  "name": "acme/star_wars",
  "authors": [{"name": "Jane"}, {"name": "John"}],
  "extra": {"drupal-scaffold": {"locations": {"web-root": "web/"}}},
}`,
		"broken.json": `{"name": `,
	})

	t.Run("nested key", func(t *testing.T) {
		v, ok := JSONValue(fs, "composer.json", "extra.drupal-scaffold.locations.web-root")
		require.True(t, ok)
		assert.Equal(t, "web/", v)
	})

	t.Run("array index", func(t *testing.T) {
		v, ok := JSONString(fs, "composer.json", "authors.1.name")
		require.True(t, ok)
		assert.Equal(t, "John", v)
	})

	t.Run("missing path", func(t *testing.T) {
		_, ok := JSONValue(fs, "composer.json", "extra.nope")
		assert.False(t, ok)
	})

	t.Run("malformed manifest", func(t *testing.T) {
		_, ok := JSONValue(fs, "broken.json", "name")
		assert.False(t, ok)
	})
}

func TestReadYAML(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"docker-compose.yml": "services:\n  cli:\n    image: cli\n  solr:\n    image: solr\n",
		"tabs.yml":           "services:\n\tcli: {}\n",
	})

	keys, ok := YAMLKeys(fs, "docker-compose.yml", "services")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"cli", "solr"}, keys)

	v, ok := YAMLValue(fs, "docker-compose.yml", "services.solr.image")
	require.True(t, ok)
	assert.Equal(t, "solr", v)

	_, ok = ReadYAML(fs, "tabs.yml")
	assert.False(t, ok, "tab indentation degrades to absent")
	_, ok = ReadYAML(fs, "missing.yml")
	assert.False(t, ok)
}

func TestFindPath(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"web/modules/custom/sw_base/sw_base.info.yml":   "name: base\n",
		"other/modules/custom/zz_base/zz_base.info.yml": "name: base\n",
		"README.md": "[![Vortex](https://img.shields.io/badge/Vortex-1.0-blue)]\n",
		"NOTES.md":  "nothing\n",
	})

	t.Run("specific pattern wins", func(t *testing.T) {
		p, ok := FindPath(fs, []string{"web/modules/custom/*_base", "*/modules/custom/*_base"}, nil)
		require.True(t, ok)
		assert.Equal(t, "web/modules/custom/sw_base", p)
	})

	t.Run("falls through to wider pattern", func(t *testing.T) {
		p, ok := FindPath(fs, []string{"docroot/modules/custom/*_base", "other/modules/custom/*_base"}, nil)
		require.True(t, ok)
		assert.Equal(t, "other/modules/custom/zz_base", p)
	})

	t.Run("content predicate", func(t *testing.T) {
		p, ok := FindPath(fs, []string{"*.md"}, ContentMatches(regexp.MustCompile(`badge/Vortex-`)))
		require.True(t, ok)
		assert.Equal(t, "README.md", p)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := FindPath(fs, []string{"nope/*"}, nil)
		assert.False(t, ok)
	})
}

func TestReadGitRemote(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		".git/config": "[core]\n\tbare = false\n[remote \"origin\"]\n\turl = git@github.com:acme/star-wars.git\n\tfetch = +refs/heads/*:refs/remotes/origin/*\n",
	})
	remote, ok := ReadGitRemote(fs)
	require.True(t, ok)
	assert.Equal(t, "acme", remote.Owner)
	assert.Equal(t, "star-wars", remote.Repo)

	owner, repo := ParseRemoteURL("https://github.com/acme/star-wars.git")
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "star-wars", repo)

	owner, _ = ParseRemoteURL("/local/path")
	assert.Empty(t, owner)
}

func TestIsProject(t *testing.T) {
	assert.False(t, IsProject(memfs.New()))
	assert.True(t, IsProject(writeFiles(t, map[string]string{"README.md": "badge/Vortex-1.0\n"})))
	assert.True(t, IsProject(writeFiles(t, map[string]string{".env": "VORTEX_PROJECT=sw\n"})))
}
