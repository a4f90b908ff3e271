package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/duecli/due/task"
)

// TaskData represents the data used to render the TOML template.
type TaskData struct {
	// IsUpdate is true when editing an existing task.
	IsUpdate bool
	// ID is the task id (only for updates).
	ID int
	// Title is the task title.
	Title string
	// Deadline is the due date (DD-MM-YYYY).
	Deadline string
	// Category is the category label.
	Category string
	// Completed marks the task done (only for updates).
	Completed bool
	// Description is the task description.
	Description string
	// Categories lists the allowed labels, shown in the template comment.
	Categories []string
}

// DefaultCreateData returns TaskData with default values for a new task.
func DefaultCreateData(categories []string) TaskData {
	data := TaskData{Categories: categories}
	if len(categories) > 0 {
		data.Category = categories[0]
	}
	return data
}

// DataFromTask creates TaskData from an existing task for editing.
func DataFromTask(t *task.Task, categories []string) TaskData {
	return TaskData{
		IsUpdate:    true,
		ID:          t.ID,
		Title:       t.Title,
		Deadline:    t.Deadline,
		Category:    t.Category,
		Completed:   t.Completed,
		Description: t.Description,
		Categories:  categories,
	}
}

var taskTemplate = template.Must(template.New("task").Funcs(template.FuncMap{
	"labels": func(values []string) string {
		return strings.Join(values, ", ")
	},
}).Parse(`title = {{ printf "%q" .Title }}
 deadline = {{ printf "%q" .Deadline }} # DD-MM-YYYY
 category = {{ printf "%q" .Category }} # {{ labels .Categories }}
{{- if .IsUpdate }}
 completed = {{ .Completed }}
{{- end }}
---
{{ .Description }}
`))

// RenderTaskTOML renders the task data as a TOML string for editing.
func RenderTaskTOML(data TaskData) (string, error) {
	var buf bytes.Buffer
	if err := taskTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask represents the parsed result from the TOML editor output.
type ParsedTask struct {
	Title       string `toml:"title"`
	Deadline    string `toml:"deadline"`
	Category    string `toml:"category"`
	Completed   *bool  `toml:"completed"`
	Description string
}

// ParseTaskTOML parses the TOML content from the editor and validates it
// against the allowed categories.
func ParseTaskTOML(content string, categories []string) (*ParsedTask, error) {
	frontmatter, body := splitFrontmatter(content)

	var parsed ParsedTask
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Description = strings.TrimRight(strings.TrimLeft(body, "\n"), "\n")
	parsed.Title = strings.TrimSpace(parsed.Title)
	parsed.Deadline = strings.TrimSpace(parsed.Deadline)
	parsed.Category = strings.TrimSpace(parsed.Category)

	if err := task.ValidateTitle(parsed.Title); err != nil {
		return nil, err
	}
	if err := task.ValidateDeadline(parsed.Deadline); err != nil {
		return nil, err
	}
	if parsed.Category != "" {
		matched := false
		for _, label := range categories {
			if strings.EqualFold(label, parsed.Category) {
				parsed.Category = label
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("invalid category %q: must be %s", parsed.Category, strings.Join(categories, ", "))
		}
	}

	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

func createTaskTempFile() (*os.File, error) {
	return os.CreateTemp("", "due-task-*.md")
}

// EditTask opens the editor for a task and returns the parsed result.
// For create: pass nil for existing.
// For update: pass the existing task.
func EditTask(existing *task.Task, categories []string) (*ParsedTask, error) {
	var data TaskData
	if existing == nil {
		data = DefaultCreateData(categories)
	} else {
		data = DataFromTask(existing, categories)
	}
	return EditTaskWithData(data)
}

// EditTaskWithData opens the editor with pre-populated data and returns
// the parsed result.
func EditTaskWithData(data TaskData) (*ParsedTask, error) {
	content, err := RenderTaskTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := createTaskTempFile()
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTaskTOML(string(edited), data.Categories)
}

// ToCreateOptions converts a ParsedTask to task.CreateOptions.
func (p *ParsedTask) ToCreateOptions() task.CreateOptions {
	return task.CreateOptions{
		Description: p.Description,
		Deadline:    p.Deadline,
		Category:    p.Category,
	}
}

// ToUpdateOptions converts a ParsedTask to task.UpdateOptions. The
// completed flag is not part of UpdateOptions; callers compare
// p.Completed against the stored task and toggle separately.
func (p *ParsedTask) ToUpdateOptions() task.UpdateOptions {
	opts := task.UpdateOptions{
		Title:       &p.Title,
		Description: &p.Description,
		Deadline:    &p.Deadline,
	}
	if p.Category != "" {
		opts.Category = &p.Category
	}
	return opts
}
