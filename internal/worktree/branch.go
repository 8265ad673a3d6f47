// pattern: Imperative Shell

package worktree

import (
	"context"
	"strings"

	"taskspace/internal/logging"
	"taskspace/internal/process"
)

// BranchResolver determines the repository's default branch through an
// ordered fallback chain. Resolve never fails: absence of signal at any
// step is normal, and the chain terminates in "main".
type BranchResolver struct {
	exec    process.Executor
	repoDir string
	logger  *logging.ScopedLogger
}

// NewBranchResolver creates a resolver for the repository at repoDir.
func NewBranchResolver(exec process.Executor, repoDir string, logger *logging.ScopedLogger) *BranchResolver {
	return &BranchResolver{exec: exec, repoDir: repoDir, logger: logger}
}

// Resolve returns the default branch name.
// Chain: remote symbolic HEAD, configured init.defaultBranch, a literal
// main branch, a literal master branch, then "main" unconditionally.
func (r *BranchResolver) Resolve(ctx context.Context) string {
	if result, err := r.run(ctx, "symbolic-ref", "refs/remotes/origin/HEAD"); err == nil && result.Success() {
		ref := strings.TrimSpace(result.Stdout)
		if ref != "" {
			branch := strings.TrimPrefix(ref, "refs/remotes/origin/")
			r.logger.Debug("default branch from remote HEAD", "branch", branch)
			return branch
		}
	}

	if result, err := r.run(ctx, "config", "--get", "init.defaultBranch"); err == nil && result.Success() {
		branch := strings.TrimSpace(result.Stdout)
		if branch != "" {
			r.logger.Debug("default branch from init.defaultBranch", "branch", branch)
			return branch
		}
	}

	for _, branch := range []string{"main", "master"} {
		if result, err := r.run(ctx, "show-ref", "--verify", "--quiet", "refs/heads/"+branch); err == nil && result.Success() {
			r.logger.Debug("default branch by probe", "branch", branch)
			return branch
		}
	}

	r.logger.Debug("default branch fell through to main")
	return "main"
}

func (r *BranchResolver) run(ctx context.Context, args ...string) (process.Result, error) {
	return r.exec.Run(ctx, process.Spec{Command: "git", Args: args, Dir: r.repoDir})
}
