package task

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/duecli/due/internal/validation"
)

var (
	// ErrEmptyTitle is returned when a task title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a task title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrEmptyDeadline is returned when a deadline is missing.
	ErrEmptyDeadline = errors.New("deadline cannot be empty")

	// ErrInvalidDeadline is returned when a deadline does not parse as a
	// DD-MM-YYYY date.
	ErrInvalidDeadline = errors.New("invalid deadline")

	// ErrInvalidCategory is returned when a category is outside the
	// store's allowed set.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidKind is returned when a record kind is outside the known set.
	ErrInvalidKind = errors.New("invalid task kind")

	// ErrTaskNotFound is returned when no task has the given id or position.
	ErrTaskNotFound = errors.New("task not found")

	// ErrCorruptFile is returned when the data file exists but cannot be
	// decoded. The store recovers by starting empty.
	ErrCorruptFile = errors.New("tasks file is corrupt")

	// ErrWriteFailed is returned when the data file cannot be rewritten.
	// The in-memory change is kept but is not durable.
	ErrWriteFailed = errors.New("tasks file write failed")
)

// ValidateTitle checks if the title is valid. Whitespace-only titles
// count as empty; length is measured in runes.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if count := utf8.RuneCountInString(title); count > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, count, MaxTitleLength)
	}
	return nil
}

// ValidateDeadline checks that the deadline is present and parses as a
// DD-MM-YYYY date.
func ValidateDeadline(deadline string) error {
	if deadline == "" {
		return ErrEmptyDeadline
	}
	if _, err := ParseDeadline(deadline); err != nil {
		return fmt.Errorf("%w: %q (want DD-MM-YYYY)", ErrInvalidDeadline, deadline)
	}
	return nil
}

// ValidateCategory checks that the category is one of the allowed labels.
func ValidateCategory(category string, allowed []string) error {
	for _, candidate := range allowed {
		if candidate == category {
			return nil
		}
	}
	return validation.FormatInvalidValueError(ErrInvalidCategory, category, allowed)
}

// ValidateTask checks if a task struct is valid against the allowed
// category set. Create and Edit both route through this, so every
// mutation of user-supplied fields shares one validation path.
func ValidateTask(t *Task, categories []string) error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}

	if !t.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, t.Kind)
	}

	if err := ValidateDeadline(t.Deadline); err != nil {
		return err
	}

	return ValidateCategory(t.Category, categories)
}
