// pattern: Functional Core

package worktree

import (
	"bufio"
	"strings"
)

// ParsePorcelain parses the output of `git worktree list --porcelain`.
// Format:
//
//	worktree /path/to/worktree
//	HEAD abc123
//	branch refs/heads/branch-name
//	<blank line>
//
// A `worktree` line opens a new record; HEAD, branch, and the bare
// `detached` token attach to it. The last record is flushed even without
// a trailing blank line. Unrecognized lines are skipped, not errors, so
// a malformed entry degrades to partial output instead of aborting.
func ParsePorcelain(text string) []Record {
	var records []Record
	var current *Record

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "worktree "):
			if current != nil {
				records = append(records, *current)
			}
			current = &Record{Path: strings.TrimPrefix(line, "worktree ")}
		case current == nil:
			// Attribute lines before any worktree line are garbage
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			current.Branch = strings.TrimPrefix(strings.TrimPrefix(line, "branch "), "refs/heads/")
		case line == "detached":
			current.Detached = true
		}
	}

	// Flush the open record when input has no trailing separator
	if current != nil {
		records = append(records, *current)
	}

	return records
}
