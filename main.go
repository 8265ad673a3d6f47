// pattern: Imperative Shell
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"taskspace/internal/cli"
	"taskspace/internal/config"
	"taskspace/internal/logging"
)

var version = "dev"

func main() {
	// Stop parsing flags after the first non-flag arg (the subcommand),
	// so that --help after a subcommand is handled by the subcommand.
	flag.CommandLine.SetInterspersed(false)

	configDir := flag.StringP("config-dir", "c", "", "config directory (default: ~/.config/taskspace)")

	flag.Usage = func() {
		app := cli.BuildApp(version, config.DefaultConfig(), nopProvider{})
		app.PrintHelp(os.Stderr)
		flag.PrintDefaults()
	}

	flag.Parse()

	cfg, err := loadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dataDir := cli.ResolveDataDir(*configDir)

	logManager, err := logging.NewManager(logging.Config{
		FilePath:   cfg.ResolveLogFile(dataDir),
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Level:      cfg.LogLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logManager.Close() }()

	app := cli.BuildApp(version, cfg, logManager)
	app.Execute(flag.Args())
}

// loadConfig loads the configuration from the specified directory or default location.
func loadConfig(configDir string) (config.Config, error) {
	if configDir != "" {
		return config.LoadFromDir(configDir)
	}
	return config.Load()
}

// nopProvider satisfies logging.Provider for help rendering, where no
// log file should be touched.
type nopProvider struct{}

func (nopProvider) For(string) *logging.ScopedLogger {
	return logging.NopLogger()
}
