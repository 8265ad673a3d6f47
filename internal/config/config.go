package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Python install strategies for directories carrying both pyproject.toml
// and requirements.txt.
const (
	PythonAll   = "all"   // run every matched Python install (source behavior)
	PythonFirst = "first" // run only the first matched Python install
)

type Config struct {
	WorkspacesRoot string `yaml:"workspaces_root"`
	PythonInstalls string `yaml:"python_installs"`
	LogLevel       string `yaml:"log_level"`
	LogFile        string `yaml:"log_file"`
}

func DefaultConfig() Config {
	return Config{
		WorkspacesRoot: ".worktrees",
		PythonInstalls: PythonAll,
		LogLevel:       "info",
	}
}

func Load() (Config, error) {
	return LoadFrom(getConfigPath())
}

func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}

	if cfg.WorkspacesRoot == "" {
		cfg.WorkspacesRoot = ".worktrees"
	}
	if cfg.PythonInstalls == "" {
		cfg.PythonInstalls = PythonAll
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// LoadFromDir loads config.yaml from the given directory.
func LoadFromDir(dir string) (Config, error) {
	return LoadFrom(filepath.Join(dir, "config.yaml"))
}

// Validate rejects values that would misconfigure provisioning.
func (c *Config) Validate() error {
	if c.PythonInstalls != PythonAll && c.PythonInstalls != PythonFirst {
		return fmt.Errorf("invalid python_installs %q: must be %q or %q", c.PythonInstalls, PythonAll, PythonFirst)
	}
	if filepath.IsAbs(c.WorkspacesRoot) {
		return fmt.Errorf("workspaces_root must be relative to the repository, got %q", c.WorkspacesRoot)
	}
	return nil
}

// ResolveLogFile returns the configured log file or the default under dataDir.
func (c *Config) ResolveLogFile(dataDir string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(dataDir, "taskspace.log")
}

func getConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "taskspace", "config.yaml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "taskspace", "config.yaml")
	}

	return filepath.Join(home, ".config", "taskspace", "config.yaml")
}
