// Package task implements a deadline-oriented personal task tracker.
//
// Tasks live in a single pretty-printed JSON file that is rewritten in
// full after every mutation. A Store loads the file once at construction
// and owns the in-memory sequence; insertion order is display order.
//
// The public API mirrors the CLI commands:
//   - Create, Add for building tasks
//   - Toggle, Edit, Delete for lifecycle, addressed by id or position
//   - Query, Progress for rendering
package task

// Kind discriminates task record shapes in the data file.
type Kind string

const (
	// KindDeadline is a task with a due date. Every task currently
	// written has this kind.
	KindDeadline Kind = "deadline"

	// KindBasic is a plain task without a due date, reserved for future
	// record shapes.
	KindBasic Kind = "task"
)

// ValidKinds returns all valid kind values.
func ValidKinds() []Kind {
	return []Kind{KindDeadline, KindBasic}
}

// IsValid returns true if the kind is a known valid value.
func (k Kind) IsValid() bool {
	for _, valid := range ValidKinds() {
		if k == valid {
			return true
		}
	}
	return false
}

// Urgency classifies how a task should be surfaced.
type Urgency string

const (
	// UrgencyUrgent means the task is incomplete and due within three days.
	UrgencyUrgent Urgency = "urgent"

	// UrgencyPending means the task is incomplete and not yet close to due.
	UrgencyPending Urgency = "pending"

	// UrgencyDone means the task is completed.
	UrgencyDone Urgency = "done"
)

// DefaultCategories returns the built-in category labels.
// The first entry is the default for new tasks.
func DefaultCategories() []string {
	return []string{"General", "School", "Work", "Personal"}
}

const (
	// DeadlineLayout is the day-first date format deadlines are stored in.
	DeadlineLayout = "02-01-2006"

	// CreatedDateLayout is the date format creation dates are stored in.
	CreatedDateLayout = "2006-01-02"
)

// MaxTitleLength is the maximum allowed length for a task title.
const MaxTitleLength = 500
