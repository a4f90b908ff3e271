package task

import (
	"errors"
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	categories := DefaultCategories()

	before := time.Now().Format(CreatedDateLayout)
	task, err := NewTask("Buy milk", CreateOptions{
		Description: "Two liters",
		Deadline:    "31-12-2099",
		Category:    "Work",
	}, categories)
	after := time.Now().Format(CreatedDateLayout)
	if err != nil {
		t.Fatalf("NewTask() unexpected error: %v", err)
	}

	if task.ID != 0 {
		t.Errorf("expected unassigned id, got %d", task.ID)
	}
	if task.Kind != KindDeadline {
		t.Errorf("expected kind %q, got %q", KindDeadline, task.Kind)
	}
	if task.Title != "Buy milk" {
		t.Errorf("expected title %q, got %q", "Buy milk", task.Title)
	}
	if task.Description != "Two liters" {
		t.Errorf("expected description %q, got %q", "Two liters", task.Description)
	}
	if task.Category != "Work" {
		t.Errorf("expected category %q, got %q", "Work", task.Category)
	}
	if task.Completed {
		t.Error("expected new task to be incomplete")
	}
	if task.CreatedDate != before && task.CreatedDate != after {
		t.Errorf("created date %q not stamped from the current date", task.CreatedDate)
	}
	if task.Deadline != "31-12-2099" {
		t.Errorf("expected deadline %q, got %q", "31-12-2099", task.Deadline)
	}
}

func TestNewTaskNormalizesInput(t *testing.T) {
	task, err := NewTask("  Buy milk  ", CreateOptions{Deadline: " 31-12-2099 ", Category: "work"}, DefaultCategories())
	if err != nil {
		t.Fatalf("NewTask() unexpected error: %v", err)
	}
	if task.Title != "Buy milk" {
		t.Errorf("expected trimmed title, got %q", task.Title)
	}
	if task.Deadline != "31-12-2099" {
		t.Errorf("expected trimmed deadline, got %q", task.Deadline)
	}
	if task.Category != "Work" {
		t.Errorf("expected canonical category spelling, got %q", task.Category)
	}
}

func TestNewTaskDefaultsCategory(t *testing.T) {
	task, err := NewTask("Buy milk", CreateOptions{Deadline: "31-12-2099"}, DefaultCategories())
	if err != nil {
		t.Fatalf("NewTask() unexpected error: %v", err)
	}
	if task.Category != "General" {
		t.Errorf("expected default category General, got %q", task.Category)
	}
}

func TestNewTaskValidation(t *testing.T) {
	categories := DefaultCategories()

	tests := []struct {
		name    string
		title   string
		opts    CreateOptions
		wantErr error
	}{
		{"empty title", "", CreateOptions{Deadline: "31-12-2099"}, ErrEmptyTitle},
		{"whitespace title", "   ", CreateOptions{Deadline: "31-12-2099"}, ErrEmptyTitle},
		{"missing deadline", "Buy milk", CreateOptions{}, ErrEmptyDeadline},
		{"bad deadline", "Buy milk", CreateOptions{Deadline: "tomorrow"}, ErrInvalidDeadline},
		{"iso deadline", "Buy milk", CreateOptions{Deadline: "2099-12-31"}, ErrInvalidDeadline},
		{"unknown category", "Buy milk", CreateOptions{Deadline: "31-12-2099", Category: "Chores"}, ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTask(tt.title, tt.opts, categories)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewTask() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUrgency(t *testing.T) {
	// Fixed reference point, mid-morning local time.
	now := time.Date(2026, 8, 25, 10, 30, 0, 0, time.Local)

	deadline := func(daysAhead int) string {
		return now.AddDate(0, 0, daysAhead).Format(DeadlineLayout)
	}

	tests := []struct {
		name string
		task Task
		want Urgency
	}{
		{"due in two days", Task{Deadline: deadline(2)}, UrgencyUrgent},
		{"due tomorrow", Task{Deadline: deadline(1)}, UrgencyUrgent},
		{"due today", Task{Deadline: deadline(0)}, UrgencyUrgent},
		{"overdue", Task{Deadline: deadline(-5)}, UrgencyUrgent},
		{"due in ten days", Task{Deadline: deadline(10)}, UrgencyPending},
		{"due in four days", Task{Deadline: deadline(4)}, UrgencyPending},
		{"completed near deadline", Task{Deadline: deadline(1), Completed: true}, UrgencyDone},
		{"completed far out", Task{Deadline: deadline(30), Completed: true}, UrgencyDone},
		{"unparseable deadline", Task{Deadline: "soon"}, UrgencyPending},
		{"empty deadline", Task{}, UrgencyPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Urgency(now); got != tt.want {
				t.Errorf("Urgency() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUrgencyThreeDayBoundary(t *testing.T) {
	// A deadline exactly 72 hours away is not yet urgent; one second
	// closer is.
	deadline := time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local)
	task := Task{Deadline: deadline.Format(DeadlineLayout)}

	atBoundary := deadline.Add(-urgentWindow)
	if got := task.Urgency(atBoundary); got != UrgencyPending {
		t.Errorf("Urgency() at exactly 72h = %q, want %q", got, UrgencyPending)
	}

	justInside := atBoundary.Add(time.Second)
	if got := task.Urgency(justInside); got != UrgencyUrgent {
		t.Errorf("Urgency() just inside 72h = %q, want %q", got, UrgencyUrgent)
	}
}

func TestDeadlineTime(t *testing.T) {
	task := Task{Deadline: "25-12-2026"}
	parsed, ok := task.DeadlineTime()
	if !ok {
		t.Fatal("expected deadline to parse")
	}
	want := time.Date(2026, 12, 25, 0, 0, 0, 0, time.Local)
	if !parsed.Equal(want) {
		t.Errorf("DeadlineTime() = %v, want %v", parsed, want)
	}

	if _, ok := (Task{Deadline: "never"}).DeadlineTime(); ok {
		t.Error("expected unparseable deadline to report !ok")
	}
}
