package worktree

import (
	"strings"
	"testing"

	"taskspace/internal/task"
)

func TestGenerateName_Task(t *testing.T) {
	name := GenerateName(task.Task{ID: 42, Title: "Fix Login Bug!!"})
	if name != "task-42-fix-login-bug" {
		t.Errorf("GenerateName = %q, want task-42-fix-login-bug", name)
	}
}

func TestGenerateName_Story(t *testing.T) {
	title := strings.Repeat("User Auth ", 5) // 50 chars before slugging
	name := GenerateName(task.Task{ID: 3, Title: title, StoryID: "7"})

	if !strings.HasPrefix(name, "story-7-") {
		t.Errorf("GenerateName = %q, want story-7- prefix", name)
	}
	slug := strings.TrimPrefix(name, "story-7-")
	if len(slug) > 30 {
		t.Errorf("slug %q is %d chars, want <= 30", slug, len(slug))
	}
}

func TestGenerateName_Deterministic(t *testing.T) {
	tk := task.Task{ID: 12, Title: "User Auth"}
	if GenerateName(tk) != GenerateName(tk) {
		t.Error("same task should always map to the same name")
	}
	if GenerateName(tk) != "task-12-user-auth" {
		t.Errorf("GenerateName = %q", GenerateName(tk))
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Fix Login Bug!!", "fix-login-bug"},
		{"  spaces   everywhere  ", "spaces-everywhere"},
		{"already-slugged", "already-slugged"},
		{"CAPS_and_Underscores", "caps-and-underscores"},
		{"---", ""},
		{"émoji ⚡ unicode", "moji-unicode"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSlugify_TruncatesWithoutTrailingHyphen(t *testing.T) {
	got := Slugify("this is a rather long title that keeps going")
	if len(got) > 30 {
		t.Errorf("slug %q is %d chars, want <= 30", got, len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("slug %q ends with hyphen", got)
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"task-42-fix-login-bug", false},
		{"story-7-user-auth", false},
		{"feature/new-model", false},
		{"v2.0", false},
		{"", true},
		{strings.Repeat("a", 101), true},
		{"-leading-hyphen", true},
		{"has spaces", true},
		{"../escape", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}
