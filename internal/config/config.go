// Package config handles configuration loading and defaults for vtd.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Files   FilesConfig   `toml:"files"`
	Context ContextConfig `toml:"context"`
	Editor  EditorConfig  `toml:"editor"`
	Patch   PatchConfig   `toml:"patch"`
}

// FilesConfig lists the outline files the registry tracks.
type FilesConfig struct {
	Paths []string `toml:"paths"`
	Globs []string `toml:"globs"`
}

// ContextConfig is the default include/exclude context filter applied to
// queries that don't override it on the command line.
type ContextConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// EditorConfig defines editor settings.
type EditorConfig struct {
	Command string `toml:"command"`
}

// PatchConfig controls how generated patches are handled after a
// checkoff; AutoApply wires internal/applier's patch(1) convenience layer
// instead of just printing the diff.
type PatchConfig struct {
	AutoApply bool `toml:"auto_apply"`
}

// Default returns a Config with default values.
func Default() *Config {
	editorCmd := os.Getenv("EDITOR")
	if editorCmd == "" {
		editorCmd = "vi"
	}
	editorCmd += " {file}"

	return &Config{
		Files: FilesConfig{
			Paths: []string{"~/.vtd/tasks.vtd"},
		},
		Context: ContextConfig{},
		Editor: EditorConfig{
			Command: editorCmd,
		},
		Patch: PatchConfig{
			AutoApply: false,
		},
	}
}

// ConfigDir returns the config directory.
// Checks XDG_CONFIG_HOME first, falls back to os.UserConfigDir().
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg, nil
	}
	return os.UserConfigDir()
}

// ConfigPath returns the path to the configuration file.
// Uses XDG_CONFIG_HOME if set, otherwise os.UserConfigDir()/vtd/config.toml.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vtd", "config.toml"), nil
}

// Load reads the configuration from the config file.
// If the file doesn't exist, it creates one with default values.
func Load() (*Config, error) {
	cfg := Default()

	configPath, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			if err := Save(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// TrackedFiles resolves Files.Paths and Files.Globs (expanding ~ and
// matching glob patterns) into a deduplicated list of pathnames to
// register with the file registry.
func (c *Config) TrackedFiles() ([]string, error) {
	seen := map[string]bool{}
	var out []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, p := range c.Files.Paths {
		expanded, err := ExpandPath(p)
		if err != nil {
			return nil, err
		}
		add(expanded)
	}

	for _, g := range c.Files.Globs {
		expanded, err := ExpandPath(g)
		if err != nil {
			return nil, err
		}
		matches, err := filepath.Glob(expanded)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			add(m)
		}
	}

	return out, nil
}

// EditorCommand returns the editor command with the file path substituted.
func (c *Config) EditorCommand(filePath string) string {
	return strings.ReplaceAll(c.Editor.Command, "{file}", filePath)
}

// Save writes the configuration to the config file.
// Creates the directory if it doesn't exist.
func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
