// pattern: Imperative Shell
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"taskspace/internal/config"
	"taskspace/internal/logging"
)

// ResolveDataDir returns the data directory for log files.
// If configDir is specified, uses that; otherwise uses ~/.config/taskspace.
func ResolveDataDir(configDir string) string {
	if configDir != "" {
		return configDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "taskspace")
	}
	return filepath.Join(home, ".config", "taskspace")
}

// BuildApp creates and configures the CLI application with all commands and groups.
func BuildApp(version string, cfg config.Config, logs logging.Provider) *App {
	app := NewApp(version)

	app.AddCommand(&Command{
		Name:    "version",
		Summary: "Print version and exit",
		Usage:   "Usage: taskspace version",
		Run: func(args []string) error {
			fmt.Println(version)
			return nil
		},
	})

	workspaceGroup := app.AddGroup("workspace", "Provision and manage task workspaces")
	RegisterWorkspaceCommands(workspaceGroup, cfg, logs)

	depsGroup := app.AddGroup("deps", "Detect ecosystems and install dependencies")
	RegisterDepsCommands(depsGroup, cfg, logs)

	return app
}
