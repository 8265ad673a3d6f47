// pattern: Functional Core

package worktree

import (
	"fmt"
	"regexp"
	"strings"

	"taskspace/internal/task"
)

const maxSlugLen = 30

// nonSlugRe matches runs of characters that cannot appear in a slug.
var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// validNameRe matches valid workspace names: must start alphanumeric,
// then alphanumeric, hyphens, underscores, dots, slashes.
var validNameRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._/-]*$`)

// GenerateName maps task metadata to a filesystem-safe workspace name,
// which doubles as the branch name. Pure and deterministic; uniqueness
// across colliding slugs is the caller's responsibility.
func GenerateName(t task.Task) string {
	slug := Slugify(t.Title)
	if t.StoryID != "" {
		return fmt.Sprintf("story-%s-%s", t.StoryID, slug)
	}
	return fmt.Sprintf("task-%d-%s", t.ID, slug)
}

// StoryPrefix returns the workspace-name prefix shared by all workspaces
// belonging to a story.
func StoryPrefix(storyID string) string {
	return fmt.Sprintf("story-%s-", storyID)
}

// Slugify lowercases the title, collapses every run of non-alphanumeric
// characters into a single hyphen, trims edge hyphens, and truncates to
// 30 characters.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	return slug
}

// ValidateName checks a caller-supplied workspace name.
// Generated names always pass; this guards the CLI path where names
// arrive from the user.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}
	if len(name) > 100 {
		return fmt.Errorf("workspace name too long (max 100 characters)")
	}
	if !validNameRe.MatchString(name) {
		return fmt.Errorf("invalid workspace name %q: must start with alphanumeric, may contain a-z A-Z 0-9 . _ / -", name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("workspace name cannot contain '..'")
	}
	return nil
}
