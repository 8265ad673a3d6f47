// pattern: Imperative Shell

package ecosystem

import (
	"context"
	"time"

	"taskspace/internal/logging"
	"taskspace/internal/process"
)

// Installer runs install commands for detected ecosystems. It is the
// only component that mutates external package state.
type Installer struct {
	exec   process.Executor
	logger *logging.ScopedLogger
}

// NewInstaller creates an installer using the given executor.
func NewInstaller(exec process.Executor, logger *logging.ScopedLogger) *Installer {
	return &Installer{exec: exec, logger: logger}
}

// InstallAll runs each descriptor's install command with dir as the
// working directory and aggregates a report. Descriptors are processed
// strictly sequentially: concurrent installers writing the same
// lockfile or cache can corrupt state. One failure never stops the
// rest; the report always carries every result.
func (i *Installer) InstallAll(ctx context.Context, dir string, descriptors []Descriptor) Report {
	report := Report{
		Directory:      dir,
		OverallSuccess: true,
	}

	for _, desc := range descriptors {
		result := i.install(ctx, dir, desc)
		report.Results = append(report.Results, result)
		if !result.Success {
			report.OverallSuccess = false
		}
	}

	return report
}

func (i *Installer) install(ctx context.Context, dir string, desc Descriptor) InstallResult {
	spec := process.Spec{
		Command: desc.InstallCommand[0],
		Args:    desc.InstallCommand[1:],
		Dir:     dir,
	}

	i.logger.Info("installing dependencies",
		"language", desc.Language,
		"package_manager", desc.PackageManager,
		"dir", dir,
	)

	start := time.Now()
	procResult, err := i.exec.Run(ctx, spec)
	elapsed := time.Since(start)

	result := InstallResult{
		Descriptor: desc,
		Stdout:     procResult.Stdout,
		Stderr:     procResult.Stderr,
		DurationMs: elapsed.Milliseconds(),
	}

	switch {
	case err != nil:
		// Could not start at all (missing package manager binary)
		result.Stderr = err.Error()
		i.logger.Error("install command failed to start",
			"package_manager", desc.PackageManager, "error", err)
	case procResult.Success():
		result.Success = true
		i.logger.Info("install succeeded",
			"package_manager", desc.PackageManager, "duration_ms", result.DurationMs)
	default:
		i.logger.Warn("install failed",
			"package_manager", desc.PackageManager,
			"exit_code", procResult.ExitCode,
			"duration_ms", result.DurationMs,
		)
	}

	return result
}
