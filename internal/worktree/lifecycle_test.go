package worktree

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskspace/internal/logging"
	"taskspace/internal/process"
)

// gitFake emulates the git subcommands Lifecycle depends on, backed by
// the real filesystem so ignore-state idempotence is exercised the way
// git would report it.
type gitFake struct {
	repoDir string
	root    string

	addResult    process.Result
	removeResult process.Result
	calls        []string
}

func (g *gitFake) Run(_ context.Context, spec process.Spec) (process.Result, error) {
	line := spec.String()
	g.calls = append(g.calls, line)

	switch {
	case strings.HasPrefix(line, "git check-ignore"):
		data, err := os.ReadFile(filepath.Join(g.repoDir, ".gitignore"))
		if err == nil && strings.Contains(string(data), g.root+"/") {
			return process.Result{ExitCode: 0}, nil
		}
		return process.Result{ExitCode: 1}, nil
	case strings.HasPrefix(line, "git worktree add"):
		return g.addResult, nil
	case strings.HasPrefix(line, "git worktree remove"):
		return g.removeResult, nil
	case strings.HasPrefix(line, "git branch"):
		return process.Result{ExitCode: 0}, nil
	}
	return process.Result{ExitCode: 1}, nil
}

func newLifecycleFixture(t *testing.T) (*Lifecycle, *gitFake, string) {
	t.Helper()
	repoDir := t.TempDir()
	fake := &gitFake{repoDir: repoDir, root: ".worktrees"}
	lc := NewLifecycle(fake, repoDir, ".worktrees", logging.NopLogger())
	return lc, fake, repoDir
}

func TestEnsureIgnored_AppendsBlockOnce(t *testing.T) {
	lc, _, repoDir := newLifecycleFixture(t)
	ctx := context.Background()

	already, err := lc.EnsureIgnored(ctx)
	if err != nil {
		t.Fatalf("EnsureIgnored: %v", err)
	}
	if already {
		t.Error("first call should report not-already-ignored")
	}

	already, err = lc.EnsureIgnored(ctx)
	if err != nil {
		t.Fatalf("EnsureIgnored (second): %v", err)
	}
	if !already {
		t.Error("second call should report already-ignored")
	}

	data, err := os.ReadFile(filepath.Join(repoDir, ".gitignore"))
	if err != nil {
		t.Fatalf("reading .gitignore: %v", err)
	}
	if got := strings.Count(string(data), "# Worktrees"); got != 1 {
		t.Errorf("ignore block appended %d times, want exactly once:\n%s", got, data)
	}
	if !strings.Contains(string(data), "\n# Worktrees\n.worktrees/\n") {
		t.Errorf("unexpected block format:\n%q", data)
	}
}

func TestEnsureIgnored_PreservesExistingContent(t *testing.T) {
	lc, _, repoDir := newLifecycleFixture(t)
	gitignorePath := filepath.Join(repoDir, ".gitignore")
	if err := os.WriteFile(gitignorePath, []byte("node_modules/\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := lc.EnsureIgnored(context.Background()); err != nil {
		t.Fatalf("EnsureIgnored: %v", err)
	}

	data, _ := os.ReadFile(gitignorePath)
	if !strings.HasPrefix(string(data), "node_modules/\n") {
		t.Errorf("existing content was disturbed:\n%q", data)
	}
	if !strings.Contains(string(data), ".worktrees/") {
		t.Errorf("new pattern missing:\n%q", data)
	}
}

func TestCreate_IgnoresRootBeforeAdding(t *testing.T) {
	lc, fake, repoDir := newLifecycleFixture(t)
	fake.addResult = process.Result{ExitCode: 0}

	result, err := lc.Create(context.Background(), "task-42-fix-login-bug", "main")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	wantPath := filepath.Join(repoDir, ".worktrees", "task-42-fix-login-bug")
	if result.Path != wantPath {
		t.Errorf("Path = %q, want %q", result.Path, wantPath)
	}
	if result.Branch != "task-42-fix-login-bug" {
		t.Errorf("Branch = %q", result.Branch)
	}

	// check-ignore must run before worktree add
	var checkIdx, addIdx = -1, -1
	for i, call := range fake.calls {
		if strings.HasPrefix(call, "git check-ignore") && checkIdx == -1 {
			checkIdx = i
		}
		if strings.HasPrefix(call, "git worktree add") {
			addIdx = i
		}
	}
	if checkIdx == -1 || addIdx == -1 || checkIdx > addIdx {
		t.Errorf("ignore check must precede worktree add, calls: %v", fake.calls)
	}

	wantAdd := "git worktree add " + wantPath + " -b task-42-fix-login-bug main"
	found := false
	for _, call := range fake.calls {
		if call == wantAdd {
			found = true
		}
	}
	if !found {
		t.Errorf("expected call %q, got %v", wantAdd, fake.calls)
	}
}

func TestCreate_RelativeRepoDir(t *testing.T) {
	// With a relative repo dir, git (running with the repo dir as its
	// working directory) would resolve a relative worktree path against
	// the repo dir a second time. The path handed to git must be
	// absolute.
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Fatal(err)
		}
	})
	base, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(base, "repo"), 0755); err != nil {
		t.Fatal(err)
	}

	fake := &gitFake{repoDir: filepath.Join(base, "repo"), root: ".worktrees"}
	fake.addResult = process.Result{ExitCode: 0}
	lc := NewLifecycle(fake, "repo", ".worktrees", logging.NopLogger())

	result, err := lc.Create(context.Background(), "task-1-x", "main")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	wantPath := filepath.Join(base, "repo", ".worktrees", "task-1-x")
	if result.Path != wantPath {
		t.Errorf("Path = %q, want %q", result.Path, wantPath)
	}
	for _, call := range fake.calls {
		if strings.HasPrefix(call, "git worktree add") && !strings.Contains(call, wantPath) {
			t.Errorf("git must receive the absolute worktree path: %v", call)
		}
	}
}

func TestCreate_SurfacesGitStderrVerbatim(t *testing.T) {
	lc, fake, _ := newLifecycleFixture(t)
	fake.addResult = process.Result{
		ExitCode: 128,
		Stderr:   "fatal: 'task-42-x' is already checked out",
	}

	_, err := lc.Create(context.Background(), "task-42-x", "main")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "fatal: 'task-42-x' is already checked out") {
		t.Errorf("git stderr not surfaced: %v", err)
	}
}

func TestCreate_RejectsInvalidName(t *testing.T) {
	lc, fake, _ := newLifecycleFixture(t)

	if _, err := lc.Create(context.Background(), "../escape", "main"); err == nil {
		t.Fatal("expected validation error")
	}
	if len(fake.calls) != 0 {
		t.Errorf("no git command should run for an invalid name, got %v", fake.calls)
	}
}

func TestRemove(t *testing.T) {
	lc, fake, _ := newLifecycleFixture(t)
	fake.removeResult = process.Result{ExitCode: 0}

	if err := lc.Remove(context.Background(), "/repo/.worktrees/task-42-fix", false); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	for _, call := range fake.calls {
		if strings.Contains(call, "--force") {
			t.Errorf("force must not be passed unless requested: %v", call)
		}
	}
}

func TestRemove_Force(t *testing.T) {
	lc, fake, _ := newLifecycleFixture(t)
	fake.removeResult = process.Result{ExitCode: 0}

	if err := lc.Remove(context.Background(), "/repo/.worktrees/task-42-fix", true); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	var sawForceRemove, sawForceBranch bool
	for _, call := range fake.calls {
		if call == "git worktree remove --force /repo/.worktrees/task-42-fix" {
			sawForceRemove = true
		}
		if call == "git branch -D task-42-fix" {
			sawForceBranch = true
		}
	}
	if !sawForceRemove {
		t.Errorf("expected forced worktree remove, calls: %v", fake.calls)
	}
	if !sawForceBranch {
		t.Errorf("expected forced branch delete, calls: %v", fake.calls)
	}
}

func TestRemove_ToolFailure(t *testing.T) {
	lc, fake, _ := newLifecycleFixture(t)
	fake.removeResult = process.Result{ExitCode: 128, Stderr: "fatal: working trees containing submodules"}

	err := lc.Remove(context.Background(), "/repo/.worktrees/task-1-x", false)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "submodules") {
		t.Errorf("git stderr not surfaced: %v", err)
	}
}
