package task

import (
	"fmt"
	"math"
	"strings"

	internalstrings "github.com/duecli/due/internal/strings"
)

// CreateOptions configures a new task.
type CreateOptions struct {
	// Description provides additional context.
	Description string

	// Deadline is the due date (DD-MM-YYYY). Required.
	Deadline string

	// Category is the category label. Defaults to the store's first
	// allowed category when empty.
	Category string
}

// Create builds a task from the title and options, assigns the next id,
// appends it in display order, and persists. The returned task carries
// the assigned id.
func (s *Store) Create(title string, opts CreateOptions) (Task, error) {
	t, err := NewTask(title, opts, s.categories)
	if err != nil {
		return Task{}, err
	}
	return s.Add(t)
}

// Add assigns the next free id to t, appends it, and persists. Any id
// already set on t is overwritten; id assignment is the store's job.
// If the write fails the task stays in memory and the error wraps
// ErrWriteFailed.
func (s *Store) Add(t Task) (Task, error) {
	kind, err := normalizeKindInput(t.Kind)
	if err != nil {
		return Task{}, err
	}
	t.Kind = kind
	t.ID = s.NextID()
	s.tasks = append(s.tasks, t)
	if err := s.Save(); err != nil {
		return t, err
	}
	return t, nil
}

// UpdateOptions configures fields to update on a task.
// Nil pointers mean "don't update this field".
type UpdateOptions struct {
	Title       *string
	Description *string
	Deadline    *string
	Category    *string
}

// DeleteAt removes the task at the zero-based position and persists.
// An out-of-range position returns ErrTaskNotFound and leaves the store
// unchanged.
func (s *Store) DeleteAt(position int) (Task, error) {
	if position < 0 || position >= len(s.tasks) {
		return Task{}, fmt.Errorf("%w: position %d", ErrTaskNotFound, position)
	}
	removed := s.tasks[position]
	s.tasks = append(s.tasks[:position], s.tasks[position+1:]...)
	if err := s.Save(); err != nil {
		return removed, err
	}
	return removed, nil
}

// ToggleAt flips the completion flag of the task at the zero-based
// position and persists. Toggling twice restores the original flag.
func (s *Store) ToggleAt(position int) (Task, error) {
	if position < 0 || position >= len(s.tasks) {
		return Task{}, fmt.Errorf("%w: position %d", ErrTaskNotFound, position)
	}
	s.tasks[position].Completed = !s.tasks[position].Completed
	if err := s.Save(); err != nil {
		return s.tasks[position], err
	}
	return s.tasks[position], nil
}

// EditAt overwrites fields of the task at the zero-based position and
// persists. The candidate record passes the same validation as Create;
// on failure the stored task is left untouched, in memory and on disk.
func (s *Store) EditAt(position int, opts UpdateOptions) (Task, error) {
	if position < 0 || position >= len(s.tasks) {
		return Task{}, fmt.Errorf("%w: position %d", ErrTaskNotFound, position)
	}

	candidate := s.tasks[position]
	if opts.Title != nil {
		title, err := normalizeTitleInput(*opts.Title)
		if err != nil {
			return Task{}, err
		}
		candidate.Title = title
	}
	if opts.Description != nil {
		candidate.Description = *opts.Description
	}
	if opts.Deadline != nil {
		deadline, err := normalizeDeadlineInput(*opts.Deadline)
		if err != nil {
			return Task{}, err
		}
		candidate.Deadline = deadline
	}
	if opts.Category != nil {
		category, err := normalizeCategoryInput(*opts.Category, s.categories)
		if err != nil {
			return Task{}, err
		}
		candidate.Category = category
	}

	if err := ValidateTask(&candidate, s.categories); err != nil {
		return Task{}, err
	}

	s.tasks[position] = candidate
	if err := s.Save(); err != nil {
		return candidate, err
	}
	return candidate, nil
}

// Get returns the task with the given id.
func (s *Store) Get(id int) (Task, error) {
	position, err := s.indexOf(id)
	if err != nil {
		return Task{}, err
	}
	return s.tasks[position], nil
}

// Delete removes the task with the given id and persists. Unlike
// positions, ids stay valid across intervening mutations.
func (s *Store) Delete(id int) (Task, error) {
	position, err := s.indexOf(id)
	if err != nil {
		return Task{}, err
	}
	return s.DeleteAt(position)
}

// Toggle flips the completion flag of the task with the given id and
// persists.
func (s *Store) Toggle(id int) (Task, error) {
	position, err := s.indexOf(id)
	if err != nil {
		return Task{}, err
	}
	return s.ToggleAt(position)
}

// Edit overwrites fields of the task with the given id and persists.
func (s *Store) Edit(id int, opts UpdateOptions) (Task, error) {
	position, err := s.indexOf(id)
	if err != nil {
		return Task{}, err
	}
	return s.EditAt(position, opts)
}

func (s *Store) indexOf(id int) (int, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: id %d", ErrTaskNotFound, id)
}

// Match pairs a task with its position in the current sequence. The
// position stays valid only until the next mutation.
type Match struct {
	Position int
	Task     Task
}

// Query returns the tasks whose title, description, or category contains
// filter case-insensitively, in display order with their original
// positions. An empty filter matches everything.
func (s *Store) Query(filter string) []Match {
	query := internalstrings.NormalizeLower(filter)

	matches := make([]Match, 0, len(s.tasks))
	for i, t := range s.tasks {
		if query != "" && !taskMatches(t, query) {
			continue
		}
		matches = append(matches, Match{Position: i, Task: t})
	}
	return matches
}

func taskMatches(t Task, query string) bool {
	for _, field := range []string{t.Title, t.Description, t.Category} {
		if strings.Contains(internalstrings.NormalizeLower(field), query) {
			return true
		}
	}
	return false
}

// Progress summarizes completion across the store.
type Progress struct {
	// Total is the number of tasks.
	Total int

	// Done is the number of completed tasks.
	Done int

	// Pending is the number of incomplete tasks.
	Pending int

	// Percent is Done/Total rounded to the nearest whole percent, or 0
	// for an empty store.
	Percent int
}

// Progress reports completion counts and the rounded done percentage.
func (s *Store) Progress() Progress {
	p := Progress{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			p.Done++
		}
	}
	p.Pending = p.Total - p.Done
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Done) / float64(p.Total) * 100))
	}
	return p
}
