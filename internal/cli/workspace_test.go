package cli

import (
	"strings"
	"testing"

	"taskspace/internal/provision"
)

func TestProvisionLines_BridgeParseable(t *testing.T) {
	outcome := provision.Outcome{
		Name:   "task-12-user-auth",
		Path:   "/repo/.worktrees/task-12-user-auth",
		Branch: "task-12-user-auth",
		Base:   "main",
		Reused: false,
	}

	out := provisionLines(outcome)

	// Hook bridges split each line on the first "=".
	parsed := map[string]string{}
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			t.Fatalf("line %q has no key=value separator", line)
		}
		parsed[key] = value
	}

	want := map[string]string{
		"workspace": "task-12-user-auth",
		"path":      "/repo/.worktrees/task-12-user-auth",
		"branch":    "task-12-user-auth",
		"base":      "main",
		"reused":    "false",
	}
	for key, value := range want {
		if parsed[key] != value {
			t.Errorf("%s = %q, want %q", key, parsed[key], value)
		}
	}
}
