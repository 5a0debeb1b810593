package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if len(cfg.Files.Paths) != 1 || cfg.Files.Paths[0] != "~/.vtd/tasks.vtd" {
		t.Errorf("Files.Paths = %v, want [~/.vtd/tasks.vtd]", cfg.Files.Paths)
	}
	if len(cfg.Files.Globs) != 0 {
		t.Errorf("Files.Globs = %v, want none", cfg.Files.Globs)
	}
	if cfg.Patch.AutoApply != false {
		t.Errorf("Patch.AutoApply = %v, want false", cfg.Patch.AutoApply)
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("XDG_CONFIG_HOME set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		result, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() error: %v", err)
		}
		if result != "/custom/config" {
			t.Errorf("ConfigDir() = %q, want %q", result, "/custom/config")
		}
	})

	t.Run("XDG_CONFIG_HOME not set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		result, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() error: %v", err)
		}
		expected, _ := os.UserConfigDir()
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q (os.UserConfigDir())", result, expected)
		}
	})
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath() error: %v", err)
	}
	expected := "/custom/config/vtd/config.toml"
	if path != expected {
		t.Errorf("ConfigPath() = %q, want %q", path, expected)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir() error: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde path expands to home", "~/.vtd", filepath.Join(home, ".vtd")},
		{"absolute path unchanged", "/absolute/path", "/absolute/path"},
		{"relative path unchanged", "relative/path", "relative/path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExpandPath(tt.input)
			if err != nil {
				t.Errorf("ExpandPath(%q) error: %v", tt.input, err)
				return
			}
			if result != tt.expected {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTrackedFilesCombinesPathsAndGlobs(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"work.vtd", "home.vtd", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(""), 0644); err != nil {
			t.Fatalf("WriteFile() error: %v", err)
		}
	}

	cfg := &Config{Files: FilesConfig{
		Paths: []string{filepath.Join(tmpDir, "notes.txt")},
		Globs: []string{filepath.Join(tmpDir, "*.vtd")},
	}}

	got, err := cfg.TrackedFiles()
	if err != nil {
		t.Fatalf("TrackedFiles() error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("TrackedFiles() = %v, want 3 entries", got)
	}
}

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		name     string
		template string
		filePath string
		expected string
	}{
		{"vim with placeholder", "vim {file}", "/path/to/file.vtd", "vim /path/to/file.vtd"},
		{"vscode with wait flag", "code --wait {file}", "/tmp/tasks.vtd", "code --wait /tmp/tasks.vtd"},
		{"emacs in terminal", "emacs -nw {file}", "~/notes.vtd", "emacs -nw ~/notes.vtd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Editor: EditorConfig{Command: tt.template}}
			result := cfg.EditorCommand(tt.filePath)
			if result != tt.expected {
				t.Errorf("EditorCommand(%q) = %q, want %q", tt.filePath, result, tt.expected)
			}
		})
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configPath := filepath.Join(tmpDir, "vtd", "config.toml")
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Fatal("Config file should not exist before Load()")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.Files.Paths) != 1 {
		t.Errorf("Files.Paths = %v, want default", cfg.Files.Paths)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Load() should create config file when it doesn't exist")
	}
}

func TestLoadCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "vtd")
	if _, err := os.Stat(configDir); !os.IsNotExist(err) {
		t.Fatal("Config directory should not exist before Load()")
	}

	if _, err := Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	info, err := os.Stat(configDir)
	if os.IsNotExist(err) {
		t.Error("Load() should create config directory when it doesn't exist")
	}
	if err == nil && !info.IsDir() {
		t.Error("Config path should be a directory")
	}
}

func TestLoadExistingConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "vtd")
	configPath := filepath.Join(configDir, "config.toml")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error: %v", err)
	}
	customConfig := `[files]
paths = ["~/custom-tasks.vtd"]
`
	if err := os.WriteFile(configPath, []byte(customConfig), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.Files.Paths) != 1 || cfg.Files.Paths[0] != "~/custom-tasks.vtd" {
		t.Errorf("Files.Paths = %v, want [~/custom-tasks.vtd]", cfg.Files.Paths)
	}
}
