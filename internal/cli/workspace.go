// pattern: Imperative Shell
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"taskspace/internal/config"
	"taskspace/internal/logging"
	"taskspace/internal/process"
	"taskspace/internal/provision"
	"taskspace/internal/task"
	"taskspace/internal/worktree"
)

// RegisterWorkspaceCommands registers the workspace command group commands.
func RegisterWorkspaceCommands(group *Group, cfg config.Config, logs logging.Provider) {
	group.AddCommand(&Command{
		Name:    "provision",
		Summary: "Provision a workspace for a task and install dependencies",
		Usage:   "Usage: taskspace workspace provision --task-file <yaml> [--repo <dir>] [--base <branch>] [--json]",
		Run: func(args []string) error {
			fs := flag.NewFlagSet("workspace provision", flag.ContinueOnError)
			taskFile := fs.String("task-file", "", "YAML file with task metadata (id, title, story_id)")
			repo := fs.String("repo", ".", "repository directory")
			base := fs.String("base", "", "base branch (default: resolved from the repository)")
			asJSON := fs.Bool("json", false, "output JSON instead of key=value lines")
			if err := fs.Parse(args); err != nil {
				fail(err)
			}
			if *taskFile == "" {
				fmt.Fprintln(os.Stderr, "Usage: taskspace workspace provision --task-file <yaml> [--repo <dir>] [--base <branch>] [--json]")
				os.Exit(1)
			}

			t, err := task.LoadFile(*taskFile)
			if err != nil {
				fail(err)
			}

			exec := process.NewSystemExecutor(logs.For("exec"))
			p := provision.New(exec, *repo, cfg.WorkspacesRoot, cfg.PythonInstalls, logs)

			outcome, err := p.Provision(context.Background(), t, provision.Options{BaseBranch: *base})
			if err != nil {
				fail(err)
			}

			if *asJSON {
				data, err := json.Marshal(outcome)
				if err != nil {
					fail(err)
				}
				if err := PrintJSON(data); err != nil {
					fail(err)
				}
			} else {
				fmt.Print(provisionLines(outcome))
				fmt.Print(RenderReport(outcome.Report))
			}

			if !outcome.Report.OverallSuccess {
				os.Exit(1)
			}
			return nil
		},
	})

	group.AddCommand(&Command{
		Name:    "create",
		Summary: "Create a named workspace worktree",
		Usage:   "Usage: taskspace workspace create <name> [--repo <dir>] [--base <branch>]",
		Run: func(args []string) error {
			if len(args) < 1 {
				fmt.Fprintln(os.Stderr, "Usage: taskspace workspace create <name> [--repo <dir>] [--base <branch>]")
				os.Exit(1)
			}
			name := args[0]

			fs := flag.NewFlagSet("workspace create", flag.ContinueOnError)
			repo := fs.String("repo", ".", "repository directory")
			base := fs.String("base", "", "base branch (default: resolved from the repository)")
			if err := fs.Parse(args[1:]); err != nil {
				fail(err)
			}

			exec := process.NewSystemExecutor(logs.For("exec"))
			ctx := context.Background()

			baseBranch := *base
			if baseBranch == "" {
				baseBranch = worktree.NewBranchResolver(exec, *repo, logs.For("worktree.branch")).Resolve(ctx)
			}

			lifecycle := worktree.NewLifecycle(exec, *repo, cfg.WorkspacesRoot, logs.For("worktree.lifecycle"))
			result, err := lifecycle.Create(ctx, name, baseBranch)
			if err != nil {
				fail(err)
			}

			fmt.Printf("path=%s\n", result.Path)
			fmt.Printf("branch=%s\n", result.Branch)
			fmt.Printf("base=%s\n", baseBranch)
			return nil
		},
	})

	group.AddCommand(&Command{
		Name:    "list",
		Summary: "List managed workspaces as JSON",
		Usage:   "Usage: taskspace workspace list [--repo <dir>]",
		Run: func(args []string) error {
			fs := flag.NewFlagSet("workspace list", flag.ContinueOnError)
			repo := fs.String("repo", ".", "repository directory")
			if err := fs.Parse(args); err != nil {
				fail(err)
			}

			exec := process.NewSystemExecutor(logs.For("exec"))
			registry := worktree.NewRegistry(exec, *repo, cfg.WorkspacesRoot)

			workspaces, err := registry.ListWorkspaces(context.Background())
			if err != nil {
				fail(err)
			}

			data, err := json.Marshal(workspaces)
			if err != nil {
				fail(err)
			}
			return PrintJSON(data)
		},
	})

	group.AddCommand(&Command{
		Name:    "remove",
		Summary: "Remove a workspace worktree and its branch",
		Usage:   "Usage: taskspace workspace remove <path> [--force] [--repo <dir>]",
		Run: func(args []string) error {
			if len(args) < 1 {
				fmt.Fprintln(os.Stderr, "Usage: taskspace workspace remove <path> [--force] [--repo <dir>]")
				os.Exit(1)
			}
			path := args[0]

			fs := flag.NewFlagSet("workspace remove", flag.ContinueOnError)
			force := fs.Bool("force", false, "remove even with uncommitted changes")
			repo := fs.String("repo", ".", "repository directory")
			if err := fs.Parse(args[1:]); err != nil {
				fail(err)
			}

			exec := process.NewSystemExecutor(logs.For("exec"))
			lifecycle := worktree.NewLifecycle(exec, *repo, cfg.WorkspacesRoot, logs.For("worktree.lifecycle"))

			if err := lifecycle.Remove(context.Background(), path, *force); err != nil {
				fail(err)
			}

			fmt.Printf("removed=%s\n", path)
			return nil
		},
	})

	group.AddCommand(&Command{
		Name:    "current",
		Summary: "Show the workspace the current directory is inside, if any",
		Usage:   "Usage: taskspace workspace current",
		Run: func(args []string) error {
			exec := process.NewSystemExecutor(logs.For("exec"))
			registry := worktree.NewRegistry(exec, ".", cfg.WorkspacesRoot)
			ctx := context.Background()

			inside, err := registry.IsInsideWorkspace(ctx)
			if err != nil {
				fail(err)
			}
			if !inside {
				fmt.Println("not inside a workspace")
				return nil
			}

			ws, err := registry.CurrentWorkspace(ctx)
			if err != nil {
				fail(err)
			}
			fmt.Printf("path=%s\n", ws.Path)
			fmt.Printf("branch=%s\n", ws.Branch)
			return nil
		},
	})
}

// provisionLines formats the outcome as key=value lines. Hook bridges
// consume this output by splitting each line on the first "=".
func provisionLines(outcome provision.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "workspace=%s\n", outcome.Name)
	fmt.Fprintf(&b, "path=%s\n", outcome.Path)
	fmt.Fprintf(&b, "branch=%s\n", outcome.Branch)
	fmt.Fprintf(&b, "base=%s\n", outcome.Base)
	fmt.Fprintf(&b, "reused=%t\n", outcome.Reused)
	return b.String()
}

// fail prints the error and exits non-zero.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
