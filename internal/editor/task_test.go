package editor

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/duecli/due/task"
)

func TestRenderTaskTOML_Create(t *testing.T) {
	data := DefaultCreateData(task.DefaultCategories())
	content, err := RenderTaskTOML(data)
	if err != nil {
		t.Fatalf("RenderTaskTOML failed: %v", err)
	}

	if !strings.Contains(content, `title = ""`) {
		t.Error("expected empty title")
	}
	if !strings.Contains(content, `deadline = ""`) {
		t.Error("expected empty deadline")
	}
	if !strings.Contains(content, "DD-MM-YYYY") {
		t.Error("expected deadline format comment")
	}
	if !strings.Contains(content, `category = "General"`) {
		t.Error("expected default category 'General'")
	}
	if !strings.Contains(content, "General, School, Work, Personal") {
		t.Error("expected category comment to list allowed labels")
	}
	if !strings.Contains(content, "---") {
		t.Error("expected frontmatter separator")
	}

	// Should not have completed field for create
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "completed = ") {
			t.Error("completed should not be present for create")
		}
	}
}

func TestRenderTaskTOML_Update(t *testing.T) {
	existing := &task.Task{
		ID:          7,
		Title:       "Finish essay",
		Deadline:    "31-12-2099",
		Category:    "School",
		Completed:   true,
		Description: "History class, two pages",
	}

	data := DataFromTask(existing, task.DefaultCategories())
	content, err := RenderTaskTOML(data)
	if err != nil {
		t.Fatalf("RenderTaskTOML failed: %v", err)
	}

	if !strings.Contains(content, `title = "Finish essay"`) {
		t.Error("expected title to be set")
	}
	if !strings.Contains(content, `deadline = "31-12-2099"`) {
		t.Error("expected deadline to be set")
	}
	if !strings.Contains(content, `category = "School"`) {
		t.Error("expected category to be School")
	}
	if !strings.Contains(content, "completed = true") {
		t.Error("expected completed flag for update")
	}
	if strings.Contains(content, "description =") {
		t.Error("expected description to be in body")
	}
	if !strings.Contains(content, "History class, two pages") {
		t.Error("expected description content")
	}
}

func TestParseTaskTOML(t *testing.T) {
	content := `
 title = "Buy milk"
 deadline = "31-12-2099"
 category = "Personal"
 completed = false
 ---
 Two liters
 and some eggs
`

	parsed, err := ParseTaskTOML(content, task.DefaultCategories())
	if err != nil {
		t.Fatalf("ParseTaskTOML failed: %v", err)
	}

	if parsed.Title != "Buy milk" {
		t.Errorf("expected title 'Buy milk', got %q", parsed.Title)
	}
	if parsed.Deadline != "31-12-2099" {
		t.Errorf("expected deadline '31-12-2099', got %q", parsed.Deadline)
	}
	if parsed.Category != "Personal" {
		t.Errorf("expected category 'Personal', got %q", parsed.Category)
	}
	if parsed.Completed == nil || *parsed.Completed {
		t.Errorf("expected completed false, got %v", parsed.Completed)
	}
	if !strings.Contains(parsed.Description, "and some eggs") {
		t.Errorf("expected description with both lines, got %q", parsed.Description)
	}
}

func TestParseTaskTOML_NormalizesCategoryCase(t *testing.T) {
	content := `title = "Buy milk"
deadline = "31-12-2099"
category = "WORK"`

	parsed, err := ParseTaskTOML(content, task.DefaultCategories())
	if err != nil {
		t.Fatalf("ParseTaskTOML failed: %v", err)
	}

	if parsed.Category != "Work" {
		t.Errorf("expected canonical category 'Work', got %q", parsed.Category)
	}
}

func TestParseTaskTOML_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "missing title",
			content: `deadline = "31-12-2099"`,
			wantErr: task.ErrEmptyTitle,
		},
		{
			name:    "missing deadline",
			content: `title = "Buy milk"`,
			wantErr: task.ErrEmptyDeadline,
		},
		{
			name: "malformed deadline",
			content: `title = "Buy milk"
deadline = "2099-12-31"`,
			wantErr: task.ErrInvalidDeadline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTaskTOML(tt.content, task.DefaultCategories())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseTaskTOML() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseTaskTOML_InvalidCategoryListsLabels(t *testing.T) {
	content := `title = "Buy milk"
deadline = "31-12-2099"
category = "Chores"`

	_, err := ParseTaskTOML(content, task.DefaultCategories())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "General, School, Work, Personal") {
		t.Errorf("expected error to list allowed labels, got %q", err.Error())
	}
}

func TestToCreateOptions(t *testing.T) {
	parsed := &ParsedTask{
		Title:       "Buy milk",
		Deadline:    "31-12-2099",
		Category:    "Personal",
		Description: "Two liters",
	}

	opts := parsed.ToCreateOptions()

	if opts.Deadline != "31-12-2099" {
		t.Errorf("expected deadline '31-12-2099', got %q", opts.Deadline)
	}
	if opts.Category != "Personal" {
		t.Errorf("expected category 'Personal', got %q", opts.Category)
	}
	if opts.Description != "Two liters" {
		t.Errorf("expected description 'Two liters', got %q", opts.Description)
	}
}

func TestToUpdateOptions(t *testing.T) {
	parsed := &ParsedTask{
		Title:       "Buy milk",
		Deadline:    "31-12-2099",
		Category:    "Personal",
		Description: "Two liters",
	}

	opts := parsed.ToUpdateOptions()

	if opts.Title == nil || *opts.Title != "Buy milk" {
		t.Errorf("expected title 'Buy milk', got %v", opts.Title)
	}
	if opts.Deadline == nil || *opts.Deadline != "31-12-2099" {
		t.Errorf("expected deadline pointer, got %v", opts.Deadline)
	}
	if opts.Category == nil || *opts.Category != "Personal" {
		t.Errorf("expected category pointer, got %v", opts.Category)
	}

	// An empty category in the form means "leave it alone".
	parsed.Category = ""
	opts = parsed.ToUpdateOptions()
	if opts.Category != nil {
		t.Errorf("expected nil category pointer, got %v", opts.Category)
	}
}

func TestCreateTaskTempFileExtension(t *testing.T) {
	file, err := createTaskTempFile()
	if err != nil {
		t.Fatalf("createTaskTempFile failed: %v", err)
	}
	t.Cleanup(func() {
		os.Remove(file.Name())
	})

	if !strings.HasSuffix(file.Name(), ".md") {
		t.Errorf("expected temp file to end with .md, got %q", file.Name())
	}
}
