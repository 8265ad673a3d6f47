// pattern: Functional Core

package ecosystem

// Provenance records the basis for a package-manager decision, retained
// for diagnostics.
type Provenance string

const (
	ProvenanceLockfile Provenance = "lockfile"       // decided by a lockfile on disk
	ProvenanceManifest Provenance = "manifest-field" // decided by the manifest's packageManager field
	ProvenanceFallback Provenance = "fallback"       // no signal, ecosystem default
)

// Descriptor identifies one detected ecosystem in a directory and the
// command that installs its dependencies. InstallCommand is an argument
// vector, never a shell string.
type Descriptor struct {
	Language       string     `json:"language"`
	PackageManager string     `json:"package_manager"`
	InstallCommand []string   `json:"install_command"`
	IndicatorFile  string     `json:"indicator_file"`
	HasLockfile    bool       `json:"has_lockfile"`
	Provenance     Provenance `json:"provenance"`
}

// InstallResult is the captured outcome of one install command.
type InstallResult struct {
	Descriptor Descriptor `json:"descriptor"`
	Success    bool       `json:"success"`
	Stdout     string     `json:"stdout"`
	Stderr     string     `json:"stderr"`
	DurationMs int64      `json:"duration_ms"`
}

// Report aggregates the install results for one directory.
// OverallSuccess is the AND across all results, vacuously true when no
// ecosystems were detected.
type Report struct {
	Directory      string          `json:"directory"`
	Results        []InstallResult `json:"results"`
	OverallSuccess bool            `json:"overall_success"`
}
