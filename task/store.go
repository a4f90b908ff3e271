package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store owns the ordered task sequence for one data file and its durable
// mirror. It loads the file once at construction and rewrites it in full
// after every mutation. It is not safe for concurrent use; exactly one
// process is assumed to access the file at a time.
type Store struct {
	path       string
	categories []string
	tasks      []Task
}

// Open loads the store at path with the default category set.
//
// A missing file yields an empty store and a nil error. A file that
// exists but cannot be decoded yields a usable empty store together with
// an error wrapping ErrCorruptFile, so callers can warn and continue
// instead of crashing.
func Open(path string) (*Store, error) {
	return OpenWithCategories(path, nil)
}

// OpenWithCategories opens the store at path with a custom allowed
// category set. Nil or empty categories fall back to DefaultCategories.
func OpenWithCategories(path string, categories []string) (*Store, error) {
	if len(categories) == 0 {
		categories = DefaultCategories()
	}
	s := &Store{
		path:       path,
		categories: append([]string(nil), categories...),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read tasks file: %w", err)
	}

	tasks, err := decodeTasks(data, s.categories)
	if err != nil {
		return s, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	s.tasks = tasks
	return s, nil
}

// record mirrors one task object in the data file. Pointer fields
// distinguish a missing key from a zero value so partial legacy records
// load cleanly.
type record struct {
	ID          int     `json:"id"`
	Kind        Kind    `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    *string `json:"category"`
	Completed   *bool   `json:"completed"`
	CreatedDate string  `json:"created_date"`
	Deadline    *string `json:"deadline"`
}

func decodeTasks(data []byte, categories []string) ([]Task, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse tasks file: %w", err)
	}

	tasks := make([]Task, 0, len(records))
	for i, rec := range records {
		t, err := decodeRecord(rec, categories)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// decodeRecord reconstructs a task from a file record. A missing deadline
// becomes the empty string, a missing category the default category, a
// missing completed flag false, and a missing kind KindDeadline. An
// unknown kind is malformed content.
func decodeRecord(rec record, categories []string) (Task, error) {
	kind, err := normalizeKindInput(rec.Kind)
	if err != nil {
		return Task{}, err
	}

	category := ""
	if rec.Category != nil {
		category = *rec.Category
	} else if len(categories) > 0 {
		category = categories[0]
	}

	completed := false
	if rec.Completed != nil {
		completed = *rec.Completed
	}

	deadline := ""
	if rec.Deadline != nil {
		deadline = *rec.Deadline
	}

	return Task{
		ID:          rec.ID,
		Kind:        kind,
		Title:       rec.Title,
		Description: rec.Description,
		Category:    category,
		Completed:   completed,
		CreatedDate: rec.CreatedDate,
		Deadline:    deadline,
	}, nil
}

// Save rewrites the entire data file as a pretty-printed JSON array.
// Failures wrap ErrWriteFailed; the in-memory sequence is kept either way.
func (s *Store) Save() error {
	if err := writeTasks(s.path, s.tasks); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func writeTasks(path string, tasks []Task) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create parent dir: %w", err)
		}
	}

	// An empty store encodes as [], not null.
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	data = append(data, '\n')

	// Write to temp file first
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Path returns the data file location backing the store.
func (s *Store) Path() string {
	return s.path
}

// Categories returns the allowed category labels. The first entry is the
// default for new tasks.
func (s *Store) Categories() []string {
	return append([]string(nil), s.categories...)
}

// Tasks returns a copy of the task sequence in display order.
func (s *Store) Tasks() []Task {
	return append([]Task(nil), s.tasks...)
}

// Len returns the number of tasks in the store.
func (s *Store) Len() int {
	return len(s.tasks)
}

// NextID returns the id the next added task will receive:
// max(existing)+1, or 1 when the store is empty. Deleting a task never
// frees its id for reuse while any higher id remains.
func (s *Store) NextID() int {
	next := 1
	for _, t := range s.tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}
