package fold

import "testing"

func TestStoreSaveTake(t *testing.T) {
	s := NewStore(WithEnabled(true))

	spans := []Span{{5, 10}, {20, 25}}
	s.Save("a.txt", spans)

	got, ok := s.Take("a.txt")
	if !ok {
		t.Fatal("expected an entry for a.txt")
	}
	if len(got) != 2 || got[0] != spans[0] || got[1] != spans[1] {
		t.Errorf("expected %v, got %v", spans, got)
	}

	// One-shot: taking removes the entry.
	if _, ok := s.Take("a.txt"); ok {
		t.Error("entry should be gone after Take")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d entries", s.Len())
	}
}

func TestStoreTakeMiss(t *testing.T) {
	s := NewStore(WithEnabled(true))

	if _, ok := s.Take("missing.txt"); ok {
		t.Error("missing entry should be a silent miss")
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	s := NewStore(WithEnabled(true))

	s.Save("a.txt", []Span{{0, 1}})
	s.Save("a.txt", []Span{{2, 3}})

	got, ok := s.Take("a.txt")
	if !ok {
		t.Fatal("expected an entry")
	}
	if len(got) != 1 || got[0] != (Span{2, 3}) {
		t.Errorf("last save should win, got %v", got)
	}
}

func TestStoreSaveEmptyRemoves(t *testing.T) {
	s := NewStore(WithEnabled(true))

	s.Save("a.txt", []Span{{0, 1}})
	s.Save("a.txt", nil)

	if _, ok := s.Take("a.txt"); ok {
		t.Error("saving no spans should remove the entry")
	}
}

func TestStoreDisabled(t *testing.T) {
	s := NewStore()

	if s.Enabled() {
		t.Error("store should start disabled")
	}

	s.Save("a.txt", []Span{{0, 1}})
	if s.Len() != 0 {
		t.Error("disabled store should ignore Save")
	}

	s.SetEnabled(true)
	s.Save("a.txt", []Span{{0, 1}})
	s.SetEnabled(false)

	if _, ok := s.Take("a.txt"); ok {
		t.Error("disabled store should always miss")
	}

	// The entry survives the disabled window.
	s.SetEnabled(true)
	if _, ok := s.Take("a.txt"); !ok {
		t.Error("re-enabling should expose the stored entry")
	}
}

func TestStoreSaveCopiesSpans(t *testing.T) {
	s := NewStore(WithEnabled(true))

	spans := []Span{{5, 10}}
	s.Save("a.txt", spans)
	spans[0] = Span{99, 100}

	got, _ := s.Take("a.txt")
	if got[0] != (Span{5, 10}) {
		t.Errorf("store must copy the span list, got %v", got[0])
	}
}

func TestStoreEmptyIdentity(t *testing.T) {
	s := NewStore(WithEnabled(true))

	s.Save("", []Span{{0, 1}})
	if s.Len() != 0 {
		t.Error("empty identity should never be stored")
	}
}
