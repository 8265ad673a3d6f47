// pattern: Functional Core

package task

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Task is the unit of work a workspace is provisioned for.
// StoryID is empty for standalone tasks.
type Task struct {
	ID      int    `yaml:"id"`
	Title   string `yaml:"title"`
	StoryID string `yaml:"story_id"`
}

// LoadFile reads a task definition from a YAML file.
func LoadFile(path string) (Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Task{}, fmt.Errorf("reading task file: %w", err)
	}

	var t Task
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Task{}, fmt.Errorf("parsing task file: %w", err)
	}

	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Validate checks the task carries enough metadata to name a workspace.
func (t Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if t.ID == 0 && t.StoryID == "" {
		return fmt.Errorf("task needs an id or a story_id")
	}
	return nil
}
