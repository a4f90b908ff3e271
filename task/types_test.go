package task

import "testing"

func TestKindIsValid(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindDeadline, true},
		{KindBasic, true},
		{Kind(""), false},
		{Kind("DeadlineTask"), false},
		{Kind("reminder"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.want {
				t.Errorf("Kind(%q).IsValid() = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestValidKinds(t *testing.T) {
	kinds := ValidKinds()
	if len(kinds) != 2 {
		t.Fatalf("expected 2 kinds, got %d", len(kinds))
	}
	if kinds[0] != KindDeadline {
		t.Errorf("expected KindDeadline first, got %q", kinds[0])
	}
}

func TestDefaultCategories(t *testing.T) {
	categories := DefaultCategories()
	want := []string{"General", "School", "Work", "Personal"}
	if len(categories) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(categories))
	}
	for i, category := range categories {
		if category != want[i] {
			t.Errorf("category %d = %q, want %q", i, category, want[i])
		}
	}

	// Callers may mutate the returned slice without corrupting the defaults.
	categories[0] = "Changed"
	if DefaultCategories()[0] != "General" {
		t.Error("DefaultCategories returned shared backing storage")
	}
}
