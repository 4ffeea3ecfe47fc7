package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no config path is given.
const DefaultFile = "docmark.yaml"

type Config struct {
	Output struct {
		File  string `yaml:"file"`  // markdown page written by --write
		HTML  bool   `yaml:"html"`  // also write an HTML rendering next to it
		Model bool   `yaml:"model"` // also write doc_model.json
	} `yaml:"output"`
	Source struct {
		GOOS   string   `yaml:"goos"`
		GOARCH string   `yaml:"goarch"`
		Tags   []string `yaml:"tags"`
	} `yaml:"source"`
	Cache struct {
		Path string `yaml:"path"` // SQLite extraction cache, disabled when empty
	} `yaml:"cache"`
	Render struct {
		CodeLang    string `yaml:"code_lang"`
		IndexIndent int    `yaml:"index_indent"`
	} `yaml:"render"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Output.File = "DOCUMENTATION.md"
	cfg.Render.CodeLang = "go"
	cfg.Render.IndexIndent = 4
	return &cfg
}

// LoadConfig reads configuration in order: defaults, .env, the YAML file and
// DOCMARK_* environment variables. An empty path loads DefaultFile when it
// exists; an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DOCMARK_OUTPUT_FILE"); v != "" {
		c.Output.File = v
	}
	if v := os.Getenv("DOCMARK_GOOS"); v != "" {
		c.Source.GOOS = v
	}
	if v := os.Getenv("DOCMARK_GOARCH"); v != "" {
		c.Source.GOARCH = v
	}
	if v := os.Getenv("DOCMARK_BUILD_TAGS"); v != "" {
		c.Source.Tags = splitList(v)
	}
	if v := os.Getenv("DOCMARK_CACHE"); v != "" {
		c.Cache.Path = v
	}
	if v := os.Getenv("DOCMARK_CODE_LANG"); v != "" {
		c.Render.CodeLang = v
	}
	if v := os.Getenv("DOCMARK_INDEX_INDENT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DOCMARK_INDEX_INDENT %q: %w", v, err)
		}
		c.Render.IndexIndent = n
	}
	for name, dst := range map[string]*bool{
		"DOCMARK_HTML":  &c.Output.HTML,
		"DOCMARK_MODEL": &c.Output.Model,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, v, err)
		}
		*dst = b
	}
	return nil
}

// Validate reports settings that cannot produce a page.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.File) == "" {
		return errors.New("output.file must not be empty")
	}
	if strings.ContainsAny(c.Output.File, `/\`) {
		return fmt.Errorf("output.file %q must be a plain file name", c.Output.File)
	}
	if c.Render.IndexIndent < 0 {
		return fmt.Errorf("render.index_indent must not be negative, got %d", c.Render.IndexIndent)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
