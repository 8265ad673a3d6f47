// pattern: Imperative Shell

package provision

import (
	"context"
	"fmt"

	"taskspace/internal/ecosystem"
	"taskspace/internal/logging"
	"taskspace/internal/process"
	"taskspace/internal/task"
	"taskspace/internal/worktree"
)

// Options tune a single provisioning request.
type Options struct {
	// BaseBranch overrides default-branch resolution when non-empty.
	BaseBranch string
}

// Outcome reports a completed provisioning run.
type Outcome struct {
	Name   string           `json:"name"`
	Path   string           `json:"path"`
	Branch string           `json:"branch"`
	Base   string           `json:"base"`
	Reused bool             `json:"reused"`
	Report ecosystem.Report `json:"report"`
}

// Provisioner wires the provisioning pipeline: resolve base branch,
// derive the workspace name, reuse or create the worktree, detect
// ecosystems, install dependencies.
//
// Distinct workspaces may be provisioned concurrently through the same
// Provisioner: the only shared mutable state, the parent repository's
// ignore file, is serialized inside the lifecycle.
type Provisioner struct {
	resolver  *worktree.BranchResolver
	registry  *worktree.Registry
	lifecycle *worktree.Lifecycle
	detector  *ecosystem.Detector
	installer *ecosystem.Installer
	logger    *logging.ScopedLogger
}

// New builds a Provisioner for the repository at repoDir with the given
// workspaces root and Python install strategy.
func New(exec process.Executor, repoDir, root, pythonInstalls string, logs logging.Provider) *Provisioner {
	return &Provisioner{
		resolver:  worktree.NewBranchResolver(exec, repoDir, logs.For("worktree.branch")),
		registry:  worktree.NewRegistry(exec, repoDir, root),
		lifecycle: worktree.NewLifecycle(exec, repoDir, root, logs.For("worktree.lifecycle")),
		detector:  ecosystem.NewDetector(pythonInstalls),
		installer: ecosystem.NewInstaller(exec, logs.For("ecosystem.install")),
		logger:    logs.For("provision"),
	}
}

// Provision sets up a workspace for the task. For story tasks an
// existing story workspace is reused rather than duplicated; otherwise a
// fresh worktree is created on a branch named after the workspace.
// Dependency installs are fail-soft: a failed install surfaces in the
// outcome's report, not as an error.
func (p *Provisioner) Provision(ctx context.Context, t task.Task, opts Options) (Outcome, error) {
	if err := t.Validate(); err != nil {
		return Outcome{}, err
	}

	name := worktree.GenerateName(t)

	base := opts.BaseBranch
	if base == "" {
		base = p.resolver.Resolve(ctx)
	}

	outcome := Outcome{Name: name, Base: base}

	if t.StoryID != "" {
		rec, ok, err := p.registry.FindByStory(ctx, t.StoryID)
		if err != nil {
			return Outcome{}, fmt.Errorf("looking up story workspace: %w", err)
		}
		if ok {
			p.logger.Info("reusing story workspace", "story", t.StoryID, "path", rec.Path)
			outcome.Path = rec.Path
			outcome.Branch = rec.Branch
			outcome.Reused = true
		}
	}

	if !outcome.Reused {
		created, err := p.lifecycle.Create(ctx, name, base)
		if err != nil {
			return Outcome{}, err
		}
		outcome.Path = created.Path
		outcome.Branch = created.Branch
	}

	descriptors := p.detector.DetectAll(outcome.Path)
	p.logger.Info("detected ecosystems", "dir", outcome.Path, "count", len(descriptors))

	outcome.Report = p.installer.InstallAll(ctx, outcome.Path, descriptors)

	p.logger.Info("provisioning finished",
		"workspace", outcome.Name,
		"reused", outcome.Reused,
		"install_success", outcome.Report.OverallSuccess,
	)
	return outcome, nil
}
