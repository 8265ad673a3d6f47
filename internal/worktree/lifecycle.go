// pattern: Imperative Shell

package worktree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"taskspace/internal/logging"
	"taskspace/internal/process"
)

// ignoreComment heads the block appended to .gitignore for the
// workspaces root.
const ignoreComment = "# Worktrees"

// Lifecycle creates and removes workspace worktrees and maintains the
// ignore state of the workspaces root.
type Lifecycle struct {
	exec    process.Executor
	repoDir string
	root    string // workspaces root, relative to repoDir
	logger  *logging.ScopedLogger

	// Serializes .gitignore mutation within this process; the flock in
	// EnsureIgnored covers concurrent processes.
	ignoreMu sync.Mutex
}

// CreateResult reports a successfully created workspace.
type CreateResult struct {
	Path   string
	Branch string
}

// NewLifecycle creates a lifecycle manager for the repository at repoDir.
// repoDir is resolved to an absolute path so that the worktree path given
// to git (joined from repoDir) is not resolved against the repo dir again.
func NewLifecycle(exec process.Executor, repoDir, root string, logger *logging.ScopedLogger) *Lifecycle {
	return &Lifecycle{exec: exec, repoDir: absDir(repoDir), root: root, logger: logger}
}

// EnsureIgnored makes sure the workspaces root is git-ignored, appending
// a guarded block to .gitignore when it is not. Returns whether the root
// was already ignored. Idempotent: ignore status is re-checked on every
// call, never remembered, so repeated calls across process restarts
// stay safe.
func (l *Lifecycle) EnsureIgnored(ctx context.Context) (bool, error) {
	l.ignoreMu.Lock()
	defer l.ignoreMu.Unlock()

	gitignorePath := filepath.Join(l.repoDir, ".gitignore")

	fl := flock.New(gitignorePath)
	if err := fl.Lock(); err != nil {
		return false, fmt.Errorf("locking .gitignore: %w", err)
	}
	defer func() { _ = fl.Unlock() }()

	// Exit status only: 0 means ignored, anything else means not.
	result, err := l.run(ctx, "check-ignore", "-q", l.root)
	if err != nil {
		return false, fmt.Errorf("git check-ignore: %w", err)
	}
	if result.Success() {
		return true, nil
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("opening .gitignore: %w", err)
	}
	defer f.Close()

	block := fmt.Sprintf("\n%s\n%s/\n", ignoreComment, l.root)
	if _, err := f.WriteString(block); err != nil {
		return false, fmt.Errorf("appending to .gitignore: %w", err)
	}

	l.logger.Info("ignored workspaces root", "root", l.root)
	return false, nil
}

// Create makes a new workspace: a worktree at <root>/<name> on a fresh
// branch of the same name, branched from baseBranch. The workspaces root
// is ignored first so the new worktree never shows up as untracked state
// in the parent repository. On git failure the underlying stderr is
// surfaced verbatim.
func (l *Lifecycle) Create(ctx context.Context, name, baseBranch string) (CreateResult, error) {
	if err := ValidateName(name); err != nil {
		return CreateResult{}, err
	}

	if _, err := l.EnsureIgnored(ctx); err != nil {
		return CreateResult{}, err
	}

	path := filepath.Join(l.repoDir, l.root, name)

	result, err := l.run(ctx, "worktree", "add", path, "-b", name, baseBranch)
	if err != nil {
		return CreateResult{}, fmt.Errorf("git worktree add: %w", err)
	}
	if !result.Success() {
		return CreateResult{}, fmt.Errorf("git worktree add: %s", result.Stderr)
	}

	l.logger.Info("created workspace", "path", path, "branch", name, "base", baseBranch)
	return CreateResult{Path: path, Branch: name}, nil
}

// Remove deletes the worktree at path. force is passed through when the
// caller has decided removal must proceed despite uncommitted changes.
// The workspace branch (named after the directory) is deleted afterwards;
// failure to delete it is logged, not fatal, since worktrees created
// outside this tool may not follow the naming scheme.
func (l *Lifecycle) Remove(ctx context.Context, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)

	result, err := l.run(ctx, args...)
	if err != nil {
		return fmt.Errorf("git worktree remove: %w", err)
	}
	if !result.Success() {
		return fmt.Errorf("git worktree remove: %s", result.Stderr)
	}

	branch := filepath.Base(path)
	deleteFlag := "-d"
	if force {
		deleteFlag = "-D"
	}
	branchResult, err := l.run(ctx, "branch", deleteFlag, branch)
	if err != nil || !branchResult.Success() {
		l.logger.Warn("workspace branch not deleted", "branch", branch, "stderr", branchResult.Stderr)
	}

	l.logger.Info("removed workspace", "path", path, "force", force)
	return nil
}

func (l *Lifecycle) run(ctx context.Context, args ...string) (process.Result, error) {
	return l.exec.Run(ctx, process.Spec{Command: "git", Args: args, Dir: l.repoDir})
}
