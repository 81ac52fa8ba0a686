package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drevops/vortex-sub001/api"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Destination)
	assert.Equal(t, DefaultVersion, cfg.Version)
	assert.False(t, cfg.NoInteraction)
	assert.Empty(t, cfg.Answers)
}

func TestLoad_YAMLFile(t *testing.T) {
	p := writeConfig(t, "installer.yml", `
template: /tmp/template
version: 1.2.3
no_interaction: true
answers:
  name: Star Wars
  services: [solr, valkey]
  preserve_docs_project: false
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/template", cfg.TemplateDir)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.True(t, cfg.NoInteraction)
	assert.Equal(t, "Star Wars", cfg.Answers["name"])
	assert.Equal(t, []any{"solr", "valkey"}, cfg.Answers["services"])
	assert.Equal(t, false, cfg.Answers["preserve_docs_project"])
}

func TestLoad_JSONFileWithComments(t *testing.T) {
	p := writeConfig(t, "installer.json", `{
  // template checkout
  "template": "/tmp/t",
  "answers": {"machine_name": "star_wars",},
}`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/t", cfg.TemplateDir)
	assert.Equal(t, "star_wars", cfg.Answers["machine_name"])
}

func TestLoad_InlineJSON(t *testing.T) {
	cfg, err := Load(`{"name": "Star Wars", "timezone": "Europe/London"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Star Wars", "timezone": "Europe/London"}, cfg.Answers)
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name string
		spec func(t *testing.T) string
	}{
		{"inline", func(*testing.T) string { return `{"name": ` }},
		{"yaml", func(t *testing.T) string { return writeConfig(t, "c.yml", "answers: [unclosed\n") }},
		{"json", func(t *testing.T) string { return writeConfig(t, "c.json", `{"answers": 1}`) }},
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yml") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.spec(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, api.ErrConfiguration)
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	p := writeConfig(t, "installer.yml", "template: /from/file\nanswers:\n  name: File Name\n")
	t.Setenv(EnvTemplateDir, "/from/env")
	t.Setenv(EnvVersion, "2.0.0")
	t.Setenv(EnvNoInteraction, "1")
	t.Setenv(EnvPromptPrefix+"NAME", "Env Name")
	t.Setenv(EnvPromptPrefix+"MACHINE_NAME", "env_name")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.TemplateDir)
	assert.Equal(t, "2.0.0", cfg.Version)
	assert.True(t, cfg.NoInteraction)
	assert.Equal(t, "Env Name", cfg.Answers["name"])
	assert.Equal(t, "env_name", cfg.Answers["machine_name"])
}

func TestLoad_EmptyEnvAnswersIgnored(t *testing.T) {
	p := writeConfig(t, "installer.yml", "answers:\n  name: File Name\n")
	t.Setenv(EnvPromptPrefix+"NAME", "")
	t.Setenv(EnvPromptPrefix+"DOMAIN", "")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "File Name", cfg.Answers["name"])
	assert.NotContains(t, cfg.Answers, "domain")
}

func TestLoad_BadNoInteractionEnv(t *testing.T) {
	t.Setenv(EnvNoInteraction, "maybe")
	_, err := Load("")
	assert.ErrorIs(t, err, api.ErrConfiguration)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	cfg := Default()
	assert.ErrorIs(t, cfg.Validate(), api.ErrConfiguration, "template is required")

	cfg.TemplateDir = file
	assert.ErrorIs(t, cfg.Validate(), api.ErrConfiguration, "template must be a directory")

	cfg.TemplateDir = dir
	assert.NoError(t, cfg.Validate())
}
