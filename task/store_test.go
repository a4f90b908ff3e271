package task

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newTestStore opens an empty store backed by a file in a temp directory.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.json")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func writeDataFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write data file: %v", err)
	}
	return path
}

func TestOpenMissingFile(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "tasks.json"))
	if err != nil {
		t.Fatalf("Open() on missing file: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d tasks", store.Len())
	}
}

func TestOpenCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{broken"},
		{"not an array", `{"id": 1}`},
		{"wrong field type", `[{"id": "one", "title": "Buy milk"}]`},
		{"unknown kind", `[{"id": 1, "type": "reminder", "title": "Buy milk"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDataFile(t, tt.content)

			store, err := Open(path)
			if !errors.Is(err, ErrCorruptFile) {
				t.Fatalf("Open() = %v, want ErrCorruptFile", err)
			}
			if store == nil {
				t.Fatal("expected a usable store alongside the error")
			}
			if store.Len() != 0 {
				t.Errorf("expected empty store after corrupt load, got %d tasks", store.Len())
			}

			// The store stays usable: new tasks can be created.
			if _, err := store.Create("Buy milk", CreateOptions{Deadline: "31-12-2099"}); err != nil {
				t.Fatalf("Create() after corrupt load: %v", err)
			}
		})
	}
}

func TestOpenTolerantRecords(t *testing.T) {
	// Partial legacy records: missing deadline, category, completed, and
	// kind fields all load with substitutes.
	path := writeDataFile(t, `[
  {
    "id": 1,
    "title": "No deadline",
    "description": "",
    "created_date": "2025-01-15"
  },
  {
    "id": 2,
    "type": "DeadlineTask",
    "title": "Legacy kind",
    "description": "exported by the old app",
    "category": "Umum",
    "completed": true,
    "created_date": "2025-02-01",
    "deadline": "01-03-2025"
  }
]`)

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 tasks, got %d", store.Len())
	}

	tasks := store.Tasks()

	first := tasks[0]
	if first.Deadline != "" {
		t.Errorf("expected missing deadline to load empty, got %q", first.Deadline)
	}
	if first.Category != "General" {
		t.Errorf("expected missing category to default to General, got %q", first.Category)
	}
	if first.Completed {
		t.Error("expected missing completed flag to default to false")
	}
	if first.Kind != KindDeadline {
		t.Errorf("expected missing kind to default to %q, got %q", KindDeadline, first.Kind)
	}

	second := tasks[1]
	if second.Kind != KindDeadline {
		t.Errorf("expected legacy kind spelling to normalize to %q, got %q", KindDeadline, second.Kind)
	}
	// Out-of-set categories are preserved at load; enforcement applies to
	// new writes only.
	if second.Category != "Umum" {
		t.Errorf("expected legacy category to be preserved, got %q", second.Category)
	}
	if !second.Completed {
		t.Error("expected completed flag to load as true")
	}
}

func TestOpenEmptyCategoryStaysEmpty(t *testing.T) {
	// A present-but-empty category is a value, not a missing key.
	path := writeDataFile(t, `[{"id": 1, "title": "Buy milk", "category": "", "created_date": "2025-01-15"}]`)

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	if got := store.Tasks()[0].Category; got != "" {
		t.Errorf("expected empty category to stay empty, got %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Create("Buy milk", CreateOptions{
		Description: "Two liters",
		Deadline:    "31-12-2099",
		Category:    "Personal",
	})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := store.Create("Finish essay", CreateOptions{
		Deadline: "15-01-2100",
		Category: "School",
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if _, err := store.Toggle(second.ID); err != nil {
		t.Fatalf("toggle second: %v", err)
	}

	reopened, err := Open(store.Path())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	want := store.Tasks()
	got := reopened.Tasks()
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks after reload, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("task %d changed across reload:\n  before %+v\n  after  %+v", i, want[i], got[i])
		}
	}
	if got[0].ID != first.ID || got[1].ID != second.ID {
		t.Errorf("ids changed across reload: got %d, %d", got[0].ID, got[1].ID)
	}
	if !got[1].Completed {
		t.Error("expected completion flag to survive reload")
	}
}

func TestSaveFormat(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Add(Task{
		Kind:        KindDeadline,
		Title:       "Buy milk",
		Category:    "General",
		CreatedDate: "2026-08-25",
		Deadline:    "30-08-2026",
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}

	want := `[
  {
    "id": 1,
    "type": "deadline",
    "title": "Buy milk",
    "description": "",
    "category": "General",
    "completed": false,
    "created_date": "2026-08-25",
    "deadline": "30-08-2026"
  }
]
`
	if string(data) != want {
		t.Errorf("data file format mismatch:\n--- want\n%s--- got\n%s", want, data)
	}
}

func TestSaveEmptyStore(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("expected empty array, got %q", data)
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Create("Buy milk", CreateOptions{Deadline: "31-12-2099"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := os.Stat(store.Path() + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected temp file to be renamed away, stat returned %v", err)
	}
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "tasks.json")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := store.Create("Buy milk", CreateOptions{Deadline: "31-12-2099"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected data file to exist: %v", err)
	}
}

func TestSaveFailureKeepsMemory(t *testing.T) {
	// Point the store inside a path whose parent is a regular file, so
	// every write fails regardless of permissions.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	// Reading through a file-as-directory fails too; the empty store
	// that comes back is still usable.
	store, _ := Open(filepath.Join(blocker, "tasks.json"))

	created, err := store.Create("Buy milk", CreateOptions{Deadline: "31-12-2099"})
	if !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("Create() = %v, want ErrWriteFailed", err)
	}
	if created.ID != 1 {
		t.Errorf("expected assigned id 1 despite failed save, got %d", created.ID)
	}
	if store.Len() != 1 {
		t.Errorf("expected in-memory task to survive failed save, got %d tasks", store.Len())
	}
}

func TestNextID(t *testing.T) {
	store := newTestStore(t)
	if got := store.NextID(); got != 1 {
		t.Errorf("empty store NextID() = %d, want 1", got)
	}

	// Holes below the maximum never get refilled.
	for _, id := range []int{1, 5, 9} {
		store.tasks = append(store.tasks, Task{ID: id, Kind: KindDeadline, Title: "t"})
	}
	if got := store.NextID(); got != 10 {
		t.Errorf("NextID() = %d, want 10", got)
	}
}

func TestCategoriesCopy(t *testing.T) {
	store := newTestStore(t)
	categories := store.Categories()
	if len(categories) == 0 {
		t.Fatal("expected default categories")
	}
	categories[0] = "Changed"
	if store.Categories()[0] != "General" {
		t.Error("Categories returned shared backing storage")
	}
}

func TestOpenWithCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	store, err := OpenWithCategories(path, []string{"Inbox", "Errands"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	task, err := store.Create("Buy milk", CreateOptions{Deadline: "31-12-2099"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Category != "Inbox" {
		t.Errorf("expected first custom category as default, got %q", task.Category)
	}

	if _, err := store.Create("Buy milk", CreateOptions{Deadline: "31-12-2099", Category: "Work"}); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory for label outside the custom set, got %v", err)
	}
}

func TestCorruptFileErrorMentionsCause(t *testing.T) {
	path := writeDataFile(t, "{broken")
	_, err := Open(path)
	if err == nil || !strings.Contains(err.Error(), "parse tasks file") {
		t.Errorf("expected parse detail in error, got %v", err)
	}
}
