// Package config loads .qualname.yaml, the per-repository settings file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up at the repository root.
const FileName = ".qualname.yaml"

// Config holds the settings a host applies before its own flags.
type Config struct {
	IncludeNamespace bool              `yaml:"include_namespace"`
	Format           string            `yaml:"format"`
	Clipboard        bool              `yaml:"clipboard"`
	LogLevel         string            `yaml:"log_level"`
	Extensions       map[string]string `yaml:"extensions"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		IncludeNamespace: true,
		Format:           "text",
		LogLevel:         "warn",
	}
}

// Load reads the settings file at path. Fields the file leaves out keep
// their defaults.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return cfg, errors.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.normalize(); err != nil {
		return cfg, errors.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads FileName from the repository root above startDir, or
// returns the defaults when there is none.
func Discover(fs afero.Fs, startDir string) (Config, string, error) {
	path := filepath.Join(FindRepoRoot(fs, startDir), FileName)
	if _, err := fs.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), "", nil
		}
		return Default(), "", errors.Errorf("checking config %s: %w", path, err)
	}
	cfg, err := Load(fs, path)
	return cfg, path, err
}

// FindRepoRoot walks up from startDir looking for a .git directory.
// Returns the directory containing .git, or startDir if not found.
func FindRepoRoot(fs afero.Fs, startDir string) string {
	dir := startDir
	for {
		if info, err := fs.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return startDir
		}
		dir = parent
	}
}

// Level parses LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.WarnLevel, errors.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func (c *Config) normalize() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	switch c.Format {
	case "":
		c.Format = "text"
	case "text", "json":
	default:
		return errors.Errorf("invalid format %q (expected text or json)", c.Format)
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	if len(c.Extensions) > 0 {
		exts := make(map[string]string, len(c.Extensions))
		for ext, lang := range c.Extensions {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			exts[ext] = lang
		}
		c.Extensions = exts
	}
	return nil
}
