package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.WorkspacesRoot != ".worktrees" {
		t.Errorf("WorkspacesRoot = %q, want .worktrees", cfg.WorkspacesRoot)
	}
	if cfg.PythonInstalls != PythonAll {
		t.Errorf("PythonInstalls = %q, want %q", cfg.PythonInstalls, PythonAll)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFrom_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`workspaces_root: .workspaces
python_installs: first
log_level: debug
log_file: /tmp/ts.log
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.WorkspacesRoot != ".workspaces" {
		t.Errorf("WorkspacesRoot = %q", cfg.WorkspacesRoot)
	}
	if cfg.PythonInstalls != PythonFirst {
		t.Errorf("PythonInstalls = %q", cfg.PythonInstalls)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.LogFile != "/tmp/ts.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
}

func TestLoadFrom_InvalidYAMLReturnsDefaultsAndError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("workspaces_root: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg.WorkspacesRoot != ".worktrees" {
		t.Errorf("expected defaults on parse error, got %q", cfg.WorkspacesRoot)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"python first", func(c *Config) { c.PythonInstalls = PythonFirst }, false},
		{"bad python strategy", func(c *Config) { c.PythonInstalls = "both" }, true},
		{"absolute root", func(c *Config) { c.WorkspacesRoot = "/var/worktrees" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveLogFile(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ResolveLogFile("/data"); got != filepath.Join("/data", "taskspace.log") {
		t.Errorf("ResolveLogFile = %q", got)
	}

	cfg.LogFile = "/custom/path.log"
	if got := cfg.ResolveLogFile("/data"); got != "/custom/path.log" {
		t.Errorf("ResolveLogFile = %q", got)
	}
}
