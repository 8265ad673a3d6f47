// pattern: Imperative Shell

package worktree

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"taskspace/internal/process"
)

// Registry reads worktree state from git. Every query hits git fresh;
// nothing is cached across calls.
type Registry struct {
	exec    process.Executor
	repoDir string
	root    string // workspaces root, relative to repoDir
}

// NewRegistry creates a registry for the repository at repoDir with the
// given workspaces root (e.g. ".worktrees"). repoDir is resolved to an
// absolute path: porcelain output reports worktree paths absolute, so
// the workspaces-root prefix must be absolute too.
func NewRegistry(exec process.Executor, repoDir, root string) *Registry {
	return &Registry{exec: exec, repoDir: absDir(repoDir), root: root}
}

// List returns all worktrees of the repository, the primary included.
func (r *Registry) List(ctx context.Context) ([]Record, error) {
	result, err := r.run(ctx, r.repoDir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("git worktree list: %w", err)
	}
	if !result.Success() {
		return nil, fmt.Errorf("git worktree list: %s", result.Stderr)
	}
	return ParsePorcelain(result.Stdout), nil
}

// ListWorkspaces returns the worktrees living under the managed
// workspaces root. The primary working tree is never included: it sits
// at the repository root, outside the workspaces root.
func (r *Registry) ListWorkspaces(ctx context.Context) ([]Record, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	rootDir := filepath.Join(r.repoDir, r.root) + string(filepath.Separator)
	var workspaces []Record
	for _, rec := range records {
		if strings.HasPrefix(rec.Path, rootDir) {
			workspaces = append(workspaces, rec)
		}
	}
	return workspaces, nil
}

// FindByStory looks for an existing workspace belonging to the story.
// It matches on branch name containing the story prefix, falling back to
// the final path segment starting with it, which covers worktrees
// created outside this tool. Returns ok=false when no workspace exists.
func (r *Registry) FindByStory(ctx context.Context, storyID string) (Record, bool, error) {
	records, err := r.List(ctx)
	if err != nil {
		return Record{}, false, err
	}

	prefix := StoryPrefix(storyID)
	for _, rec := range records {
		if rec.Branch != "" && strings.Contains(rec.Branch, prefix) {
			return rec, true, nil
		}
		if strings.HasPrefix(filepath.Base(rec.Path), prefix) {
			return rec, true, nil
		}
	}
	return Record{}, false, nil
}

// IsInsideWorkspace reports whether the current process is running
// inside a linked worktree. The git common directory and the git
// directory differ exactly then.
func (r *Registry) IsInsideWorkspace(ctx context.Context) (bool, error) {
	commonDir, err := r.revParse(ctx, "--git-common-dir")
	if err != nil {
		return false, err
	}
	gitDir, err := r.revParse(ctx, "--git-dir")
	if err != nil {
		return false, err
	}
	return filepath.Clean(commonDir) != filepath.Clean(gitDir), nil
}

// CurrentWorkspace returns the worktree the process is inside of.
// Valid only when IsInsideWorkspace reports true.
func (r *Registry) CurrentWorkspace(ctx context.Context) (Workspace, error) {
	top, err := r.revParse(ctx, "--show-toplevel")
	if err != nil {
		return Workspace{}, err
	}

	result, err := r.run(ctx, "", "branch", "--show-current")
	if err != nil {
		return Workspace{}, fmt.Errorf("git branch: %w", err)
	}
	if !result.Success() {
		return Workspace{}, fmt.Errorf("git branch: %s", result.Stderr)
	}

	return Workspace{
		Path:   top,
		Branch: strings.TrimSpace(result.Stdout),
	}, nil
}

// revParse runs `git rev-parse <arg>` in the process working directory.
func (r *Registry) revParse(ctx context.Context, arg string) (string, error) {
	result, err := r.run(ctx, "", "rev-parse", arg)
	if err != nil {
		return "", fmt.Errorf("git rev-parse %s: %w", arg, err)
	}
	if !result.Success() {
		return "", fmt.Errorf("git rev-parse %s: %s", arg, result.Stderr)
	}
	return strings.TrimSpace(result.Stdout), nil
}

func (r *Registry) run(ctx context.Context, dir string, args ...string) (process.Result, error) {
	return r.exec.Run(ctx, process.Spec{Command: "git", Args: args, Dir: dir})
}

// absDir resolves dir against the process working directory. Relative
// repo dirs would otherwise be joined into paths that git resolves
// against the repo dir a second time.
func absDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}
