// pattern: Imperative Shell

package ecosystem

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"taskspace/internal/config"
)

// nodeLockfiles maps lockfile names to package managers, in priority
// order: first match wins.
var nodeLockfiles = []struct {
	file    string
	manager string
}{
	{"bun.lockb", "bun"},
	{"pnpm-lock.yaml", "pnpm"},
	{"yarn.lock", "yarn"},
	{"package-lock.json", "npm"},
}

// probes is the ordered detection table. Adding an ecosystem is a data
// addition here, not a new type.
var probes = []struct {
	indicator string
	resolve   func(dir string) Descriptor
}{
	{"package.json", resolveNode},
	{"Cargo.toml", fixed("rust", "cargo", []string{"cargo", "build"}, "Cargo.toml")},
	{"go.mod", fixed("go", "go", []string{"go", "mod", "download"}, "go.mod")},
	{"pyproject.toml", fixed("python", "pip", []string{"pip", "install", "-e", "."}, "pyproject.toml")},
	{"requirements.txt", fixed("python", "pip", []string{"pip", "install", "-r", "requirements.txt"}, "requirements.txt")},
	{"Gemfile", fixed("ruby", "bundler", []string{"bundle", "install"}, "Gemfile")},
}

// Detector inspects a single directory for known ecosystems. It never
// mutates the filesystem.
type Detector struct {
	pythonInstalls string
}

// NewDetector creates a detector. pythonInstalls is config.PythonAll or
// config.PythonFirst and controls what happens when both Python manifest
// kinds are present in one directory.
func NewDetector(pythonInstalls string) *Detector {
	if pythonInstalls == "" {
		pythonInstalls = config.PythonAll
	}
	return &Detector{pythonInstalls: pythonInstalls}
}

// DetectAll returns a descriptor for every ecosystem indicated in dir.
// Non-recursive: monorepo callers iterate subdirectories themselves.
// Multiple matches are valid and all returned; no match is an empty
// list, not an error.
func (d *Detector) DetectAll(dir string) []Descriptor {
	var descriptors []Descriptor
	pythonSeen := false

	for _, p := range probes {
		if _, err := os.Stat(filepath.Join(dir, p.indicator)); err != nil {
			continue
		}

		desc := p.resolve(dir)
		if desc.Language == "python" {
			if pythonSeen && d.pythonInstalls == config.PythonFirst {
				continue
			}
			pythonSeen = true
		}
		descriptors = append(descriptors, desc)
	}

	return descriptors
}

// fixed builds a resolver for ecosystems with a single fixed install
// command.
func fixed(language, manager string, command []string, indicator string) func(string) Descriptor {
	return func(string) Descriptor {
		return Descriptor{
			Language:       language,
			PackageManager: manager,
			InstallCommand: command,
			IndicatorFile:  indicator,
			Provenance:     ProvenanceFallback,
		}
	}
}

// resolveNode picks the Node package manager through its own fallback
// chain: known lockfiles in priority order, then the manifest's declared
// packageManager field, then npm.
func resolveNode(dir string) Descriptor {
	desc := Descriptor{
		Language:      "node",
		IndicatorFile: "package.json",
	}

	for _, lf := range nodeLockfiles {
		if _, err := os.Stat(filepath.Join(dir, lf.file)); err == nil {
			desc.PackageManager = lf.manager
			desc.HasLockfile = true
			desc.Provenance = ProvenanceLockfile
			desc.InstallCommand = []string{lf.manager, "install"}
			return desc
		}
	}

	if manager := manifestPackageManager(filepath.Join(dir, "package.json")); manager != "" {
		desc.PackageManager = manager
		desc.Provenance = ProvenanceManifest
		desc.InstallCommand = []string{manager, "install"}
		return desc
	}

	desc.PackageManager = "npm"
	desc.Provenance = ProvenanceFallback
	desc.InstallCommand = []string{"npm", "install"}
	return desc
}

// manifestPackageManager reads package.json's packageManager field
// ("name@semver" shorthand) and returns the name segment, or empty when
// absent or unreadable.
func manifestPackageManager(manifestPath string) string {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return ""
	}

	var manifest struct {
		PackageManager string `json:"packageManager"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return ""
	}

	name, _, _ := strings.Cut(manifest.PackageManager, "@")
	return strings.TrimSpace(name)
}
