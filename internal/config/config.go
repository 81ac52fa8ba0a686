// Package config loads installer settings from defaults, an optional YAML or
// JSON file, the environment and command-line flags, in increasing order of
// precedence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/drevops/vortex-sub001/api"
)

// Environment variables consulted by Load.
const (
	EnvTemplateDir   = "VORTEX_INSTALLER_TEMPLATE_DIR"
	EnvVersion       = "VORTEX_INSTALLER_VERSION"
	EnvNoInteraction = "VORTEX_INSTALLER_NO_INTERACTION"
	// EnvPromptPrefix followed by an upper-cased setting identifier supplies
	// an answer for that setting, e.g. VORTEX_INSTALLER_PROMPT_MACHINE_NAME.
	EnvPromptPrefix = "VORTEX_INSTALLER_PROMPT_"
)

// DefaultVersion is used when no template version is configured.
const DefaultVersion = "develop"

// Config holds the installer run settings.
type Config struct {
	Destination   string         `yaml:"destination" json:"destination"`
	TemplateDir   string         `yaml:"template" json:"template"`
	Version       string         `yaml:"version" json:"version"`
	NoInteraction bool           `yaml:"no_interaction" json:"no_interaction"`
	Verbose       bool           `yaml:"verbose" json:"verbose"`
	Answers       map[string]any `yaml:"answers" json:"answers"`
}

// Default returns the configuration used before any source is applied.
func Default() *Config {
	return &Config{
		Destination: ".",
		Version:     DefaultVersion,
		Answers:     make(map[string]any),
	}
}

// Load builds a Config from defaults, then spec, then the environment.
// spec is either a path to a YAML/JSON file or an inline JSON object of
// answers keyed by setting identifier. An empty spec skips that layer.
func Load(spec string) (*Config, error) {
	cfg := Default()

	if spec = strings.TrimSpace(spec); spec != "" {
		if err := cfg.load(spec); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnvOverrides(os.Environ()); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) load(spec string) error {
	if strings.HasPrefix(spec, "{") {
		answers := make(map[string]any)
		if err := json.Unmarshal(jsonc.ToJSON([]byte(spec)), &answers); err != nil {
			return api.Configf("parse inline config: %v", err)
		}
		c.mergeAnswers(answers)
		return nil
	}

	data, err := os.ReadFile(spec)
	if err != nil {
		return api.Configf("read config %s: %v", spec, err)
	}

	var file Config
	switch strings.ToLower(filepath.Ext(spec)) {
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), &file)
	default:
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return api.Configf("parse config %s: %v", spec, err)
	}

	c.merge(&file)
	return nil
}

// merge overlays non-zero fields of o.
func (c *Config) merge(o *Config) {
	if o.Destination != "" {
		c.Destination = o.Destination
	}
	if o.TemplateDir != "" {
		c.TemplateDir = o.TemplateDir
	}
	if o.Version != "" {
		c.Version = o.Version
	}
	if o.NoInteraction {
		c.NoInteraction = true
	}
	if o.Verbose {
		c.Verbose = true
	}
	c.mergeAnswers(o.Answers)
}

func (c *Config) mergeAnswers(answers map[string]any) {
	for id, v := range answers {
		c.Answers[id] = v
	}
}

func (c *Config) applyEnvOverrides(environ []string) error {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		switch {
		case key == EnvTemplateDir:
			if value != "" {
				c.TemplateDir = value
			}
		case key == EnvVersion:
			if value != "" {
				c.Version = value
			}
		case key == EnvNoInteraction:
			if value == "" {
				continue
			}
			b, err := strconv.ParseBool(value)
			if err != nil {
				return api.Configf("%s: %v", EnvNoInteraction, err)
			}
			c.NoInteraction = b
		case strings.HasPrefix(key, EnvPromptPrefix):
			id := strings.ToLower(strings.TrimPrefix(key, EnvPromptPrefix))
			if id != "" && value != "" {
				c.Answers[id] = value
			}
		}
	}
	return nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.TemplateDir == "" {
		return api.Configf("template directory is required (--template or %s)", EnvTemplateDir)
	}
	info, err := os.Stat(c.TemplateDir)
	if err != nil {
		return api.Configf("template directory: %v", err)
	}
	if !info.IsDir() {
		return api.Configf("template %s is not a directory", c.TemplateDir)
	}
	if c.Destination == "" {
		return api.Configf("destination is required")
	}
	return nil
}

// String renders the config for debug logging.
func (c *Config) String() string {
	return fmt.Sprintf("destination=%s template=%s version=%s no_interaction=%v answers=%d",
		c.Destination, c.TemplateDir, c.Version, c.NoInteraction, len(c.Answers))
}
