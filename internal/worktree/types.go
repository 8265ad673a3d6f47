// pattern: Functional Core

package worktree

// Record is one entry from `git worktree list --porcelain`.
// Records are produced only by parsing, never hand-constructed.
type Record struct {
	Path     string `json:"path"`             // Absolute path to the working tree
	Head     string `json:"head"`             // Commit SHA at HEAD
	Branch   string `json:"branch,omitempty"` // Branch name with refs/heads/ stripped, empty when detached
	Detached bool   `json:"detached"`         // True when HEAD is not on a branch
}

// Workspace describes the linked worktree the process is running inside.
type Workspace struct {
	Path   string `json:"path"`   // Top-level path of the worktree
	Branch string `json:"branch"` // Currently checked-out branch
}
