package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "OPSDASH_"

// Load reads configuration from the given YAML file, then a .env file next
// to it, then overlays environment variable overrides (OPSDASH_*). Nested
// keys use a double underscore: OPSDASH_DOCS__RENDERER -> docs.renderer.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Variables already present in the environment win over .env.
	dotenv := filepath.Join(filepath.Dir(path), ".env")
	if _, err := os.Stat(dotenv); err == nil {
		if err := godotenv.Load(dotenv); err != nil {
			return nil, fmt.Errorf("reading %s: %w", dotenv, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validRenderers is the set of recognized docs.renderer values.
var validRenderers = map[RendererType]bool{
	RendererLite:     true,
	RendererGoldmark: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid api_base_url %q: %w", c.APIBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_base_url %q: must be an absolute http(s) URL", c.APIBaseURL)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must be non-negative")
	}

	if !validRenderers[c.Docs.Renderer] {
		return fmt.Errorf("invalid docs.renderer %q: must be one of lite, goldmark", c.Docs.Renderer)
	}

	for _, p := range append(append([]string{}, c.Docs.Include...), c.Docs.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid docs folder pattern %q", p)
		}
	}

	paths := map[string]string{
		"endpoints.routes":       c.Endpoints.Routes,
		"endpoints.source":       c.Endpoints.Source,
		"endpoints.bist_results": c.Endpoints.BISTResults,
		"endpoints.bist_run":     c.Endpoints.BISTRun,
		"endpoints.doc_folders":  c.Endpoints.DocFolders,
		"endpoints.document":     c.Endpoints.Document,
		"endpoints.events":       c.Endpoints.Events,
	}
	for key, p := range paths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%s must be an absolute path, got %q", key, p)
		}
	}

	return nil
}

// FolderAllowed reports whether a documentation folder passes the
// docs.include / docs.exclude filters. An empty include list allows all.
func (c *Config) FolderAllowed(name string) bool {
	included := len(c.Docs.Include) == 0
	for _, p := range c.Docs.Include {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, p := range c.Docs.Exclude {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return false
		}
	}
	return true
}
