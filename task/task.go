package task

import "time"

// urgentWindow is how close a deadline must be before an incomplete task
// counts as urgent. 72 hours from a midnight deadline is "fewer than 3
// days away", overdue included.
const urgentWindow = 72 * time.Hour

// Task represents a single tracked task.
type Task struct {
	// ID is a positive integer unique within one store, assigned as
	// max(existing)+1 and never reused after deletion.
	ID int `json:"id"`

	// Kind discriminates the record shape in the data file.
	Kind Kind `json:"type"`

	// Title is the short summary of the task (max 500 chars).
	Title string `json:"title"`

	// Description provides additional context about the task.
	Description string `json:"description"`

	// Category is one of the store's allowed category labels.
	Category string `json:"category"`

	// Completed reports whether the task is finished.
	Completed bool `json:"completed"`

	// CreatedDate is the date the task was created (YYYY-MM-DD),
	// immutable after construction.
	CreatedDate string `json:"created_date"`

	// Deadline is the date the task is due (DD-MM-YYYY).
	Deadline string `json:"deadline"`
}

// NewTask builds an unstored task with the given title. The id stays zero
// until a store adds the task. Title and deadline are trimmed before
// validation; failures wrap the sentinel errors in this package.
func NewTask(title string, opts CreateOptions, categories []string) (Task, error) {
	title, err := normalizeTitleInput(title)
	if err != nil {
		return Task{}, err
	}
	deadline, err := normalizeDeadlineInput(opts.Deadline)
	if err != nil {
		return Task{}, err
	}
	category, err := normalizeCategoryInput(opts.Category, categories)
	if err != nil {
		return Task{}, err
	}

	return Task{
		Kind:        KindDeadline,
		Title:       title,
		Description: opts.Description,
		Category:    category,
		Completed:   false,
		CreatedDate: time.Now().Format(CreatedDateLayout),
		Deadline:    deadline,
	}, nil
}

// Urgency classifies the task relative to now: done when completed,
// urgent when the deadline is under three days away, otherwise pending.
// An unparseable deadline degrades to pending rather than failing.
func (t Task) Urgency(now time.Time) Urgency {
	if t.Completed {
		return UrgencyDone
	}
	deadline, err := ParseDeadline(t.Deadline)
	if err != nil {
		return UrgencyPending
	}
	if deadline.Sub(now) < urgentWindow {
		return UrgencyUrgent
	}
	return UrgencyPending
}

// DeadlineTime returns the parsed deadline, or false when it does not parse.
func (t Task) DeadlineTime() (time.Time, bool) {
	deadline, err := ParseDeadline(t.Deadline)
	if err != nil {
		return time.Time{}, false
	}
	return deadline, true
}

// ParseDeadline parses a DD-MM-YYYY deadline at local midnight.
func ParseDeadline(value string) (time.Time, error) {
	return time.ParseInLocation(DeadlineLayout, value, time.Local)
}
