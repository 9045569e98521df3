
// Package config loads the run configuration: an optional YAML file, an
// optional .env file, VERBNOTES_* environment overrides and defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"rae-verb-notes/internal/rewrite"
)

// Config represents the application configuration
type Config struct {
	Sources Sources `yaml:"sources"`
	HTTP    HTTP    `yaml:"http"`
	Paths   Paths   `yaml:"paths"`

	// Pause is the wait between two verbs.
	Pause  time.Duration       `yaml:"pause"`
	Images rewrite.ImagePolicy `yaml:"images"`
}

// Sources are the two dictionaries and the site the usage links point into.
type Sources struct {
	UsageBaseURL      string `yaml:"usage_base_url"`
	DefinitionBaseURL string `yaml:"definition_base_url"`
	SiteRoot          string `yaml:"site_root"`
	LinkPrefix        string `yaml:"link_prefix"`
}

type HTTP struct {
	Timeout     time.Duration `yaml:"timeout"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
	UserAgent   string        `yaml:"user_agent"`
	SizeCap     int64         `yaml:"size_cap"`
}

// Paths are relative to the working directory unless absolute.
type Paths struct {
	OutputDir  string `yaml:"output_dir"`
	ListDir    string `yaml:"list_dir"`
	IndexFile  string `yaml:"index_file"`
	DoneFile   string `yaml:"done_file"`
	FailedFile string `yaml:"failed_file"`
}

// Default returns the configuration for the RAE dictionaries.
func Default() Config {
	return Config{
		Sources: Sources{
			UsageBaseURL:      "https://www.rae.es/dpd/",
			DefinitionBaseURL: "https://dle.rae.es/",
			SiteRoot:          rewrite.DefaultSiteRoot,
			LinkPrefix:        rewrite.DefaultLinkPrefix,
		},
		HTTP: HTTP{
			Timeout:     5 * time.Second,
			DialTimeout: 5 * time.Second,
			UserAgent:   "Mozilla/5.0",
			SizeCap:     5 * 1024 * 1024,
		},
		Paths: Paths{
			OutputDir:  "verbos",
			ListDir:    "lista_verbos",
			IndexFile:  "listalistas.txt",
			DoneFile:   "verbos_scrapeados.txt",
			FailedFile: "verbos_failed.txt",
		},
		Pause:  2 * time.Second,
		Images: rewrite.ImageGlyph,
	}
}

// Load reads path (skipped when empty or missing and optional), loads .env
// if present, then applies environment overrides and validates.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"VERBNOTES_USAGE_BASE_URL":      &c.Sources.UsageBaseURL,
		"VERBNOTES_DEFINITION_BASE_URL": &c.Sources.DefinitionBaseURL,
		"VERBNOTES_SITE_ROOT":           &c.Sources.SiteRoot,
		"VERBNOTES_USER_AGENT":          &c.HTTP.UserAgent,
		"VERBNOTES_OUTPUT_DIR":          &c.Paths.OutputDir,
		"VERBNOTES_LIST_DIR":            &c.Paths.ListDir,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := map[string]*time.Duration{
		"VERBNOTES_TIMEOUT": &c.HTTP.Timeout,
		"VERBNOTES_PAUSE":   &c.Pause,
	}
	for key, dst := range dur {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}
	if v, ok := lookup("VERBNOTES_SIZE_CAP"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("VERBNOTES_SIZE_CAP: %w", err)
		}
		c.HTTP.SizeCap = n
	}
	if v, ok := lookup("VERBNOTES_IMAGES"); ok && v != "" {
		c.Images = rewrite.ImagePolicy(v)
	}
	return nil
}

// Validate checks URLs, policy and durations.
func (c Config) Validate() error {
	for name, raw := range map[string]string{
		"usage_base_url":      c.Sources.UsageBaseURL,
		"definition_base_url": c.Sources.DefinitionBaseURL,
		"site_root":           c.Sources.SiteRoot,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("sources.%s must be an absolute url, got %q", name, raw)
		}
	}
	if c.Sources.LinkPrefix == "" {
		return errors.New("sources.link_prefix is required")
	}
	switch c.Images {
	case rewrite.ImageGlyph, rewrite.ImageAbsolute:
	default:
		return fmt.Errorf("images must be %q or %q, got %q", rewrite.ImageGlyph, rewrite.ImageAbsolute, c.Images)
	}
	if c.HTTP.Timeout <= 0 {
		return errors.New("http.timeout must be positive")
	}
	if c.HTTP.SizeCap <= 0 {
		return errors.New("http.size_cap must be positive")
	}
	if c.Pause < 0 {
		return errors.New("pause must not be negative")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir is required")
	}
	return nil
}

// ListPath resolves name inside the list directory.
func (c Config) ListPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Paths.ListDir, name)
}
