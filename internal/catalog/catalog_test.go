package catalog

import "testing"

func TestAllNonEmptyAndWellFormed(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("catalog is empty")
	}

	seen := make(map[string]bool)
	for _, theme := range all {
		if theme.ID == "" || theme.Title == "" || theme.Prompt == "" {
			t.Errorf("theme %+v has empty required fields", theme)
		}
		if seen[theme.ID] {
			t.Errorf("duplicate theme id %q", theme.ID)
		}
		seen[theme.ID] = true
	}
}

func TestDefaultIsFirst(t *testing.T) {
	if Default().ID != All()[0].ID {
		t.Errorf("Default() = %q, want first theme %q", Default().ID, All()[0].ID)
	}
}

func TestFind(t *testing.T) {
	for _, theme := range All() {
		got, ok := Find(theme.ID)
		if !ok {
			t.Errorf("Find(%q) not found", theme.ID)
			continue
		}
		if got.Title != theme.Title {
			t.Errorf("Find(%q).Title = %q, want %q", theme.ID, got.Title, theme.Title)
		}
	}

	if _, ok := Find("time-traveller"); ok {
		t.Error("Find should report false for unknown ids")
	}
}
