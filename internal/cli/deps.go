// pattern: Imperative Shell
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"taskspace/internal/config"
	"taskspace/internal/ecosystem"
	"taskspace/internal/logging"
	"taskspace/internal/process"
)

// RegisterDepsCommands registers the deps command group commands.
// Both commands operate on a single directory; monorepo callers iterate
// subdirectories themselves.
func RegisterDepsCommands(group *Group, cfg config.Config, logs logging.Provider) {
	group.AddCommand(&Command{
		Name:    "detect",
		Summary: "Detect language ecosystems in a directory as JSON",
		Usage:   "Usage: taskspace deps detect [<dir>]",
		Run: func(args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			detector := ecosystem.NewDetector(cfg.PythonInstalls)
			descriptors := detector.DetectAll(dir)

			data, err := json.Marshal(descriptors)
			if err != nil {
				fail(err)
			}
			return PrintJSON(data)
		},
	})

	group.AddCommand(&Command{
		Name:    "install",
		Summary: "Run dependency installs for every detected ecosystem",
		Usage:   "Usage: taskspace deps install [<dir>] [--json]",
		Run: func(args []string) error {
			fs := flag.NewFlagSet("deps install", flag.ContinueOnError)
			asJSON := fs.Bool("json", false, "output the full report as JSON")
			if err := fs.Parse(args); err != nil {
				fail(err)
			}

			dir := "."
			if rest := fs.Args(); len(rest) > 0 {
				dir = rest[0]
			}

			detector := ecosystem.NewDetector(cfg.PythonInstalls)
			descriptors := detector.DetectAll(dir)

			exec := process.NewSystemExecutor(logs.For("exec"))
			installer := ecosystem.NewInstaller(exec, logs.For("ecosystem.install"))
			report := installer.InstallAll(context.Background(), dir, descriptors)

			if *asJSON {
				data, err := json.Marshal(report)
				if err != nil {
					fail(err)
				}
				if err := PrintJSON(data); err != nil {
					fail(err)
				}
			} else {
				fmt.Print(RenderReport(report))
			}

			if !report.OverallSuccess {
				os.Exit(1)
			}
			return nil
		},
	})
}
