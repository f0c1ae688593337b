package app

import (
	"testing"

	"github.com/dshills/textfold/internal/config"
	"github.com/dshills/textfold/internal/engine/buffer"
	"github.com/dshills/textfold/internal/fold"
	"github.com/dshills/textfold/internal/input/key"
)

func newTestSession(t *testing.T, opts ...config.Option) *Session {
	t.Helper()
	s, err := New(config.Default(opts...))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	return s
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(config.Default(config.WithGlyph(""))); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestFoldRegion(t *testing.T) {
	s := newTestSession(t)
	doc := s.Open("", "hello world")

	// No selection: silent no-op.
	r, err := s.FoldRegion(doc)
	if err != nil || r != nil {
		t.Errorf("expected silent no-op, got %v, %v", r, err)
	}

	if err := doc.SetSelection(buffer.NewRange(0, 5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err = s.FoldRegion(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r == nil || r.Span() != (fold.Span{Start: 0, End: 5}) {
		t.Errorf("expected fold [0:5), got %v", r)
	}
	if _, ok := doc.Selection(); ok {
		t.Error("folding should clear the selection")
	}
}

func TestFoldRegionEmptySelection(t *testing.T) {
	s := newTestSession(t)
	doc := s.Open("", "hello")

	if err := doc.SetSelection(buffer.NewRange(2, 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := s.FoldRegion(doc)
	if err != nil || r != nil {
		t.Errorf("empty selection should be a silent no-op, got %v, %v", r, err)
	}
}

func TestFoldSelectionOccurrences(t *testing.T) {
	s := newTestSession(t)
	doc := s.Open("", "foo bar foo baz foo")

	// Select the first "foo".
	if err := doc.SetSelection(buffer.NewRange(0, 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	created, err := s.FoldSelectionOccurrences(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("expected 3 folds, got %d", len(created))
	}
	if s.Registry(doc).Count() != 3 {
		t.Errorf("expected 3 live folds, got %d", s.Registry(doc).Count())
	}

	s.UnfoldAll(doc)
	if s.Registry(doc).Count() != 0 {
		t.Errorf("expected 0 folds after unfold-all, got %d", s.Registry(doc).Count())
	}
}

func TestFoldSelectionOccurrencesNoSelection(t *testing.T) {
	s := newTestSession(t)
	doc := s.Open("", "foo foo")

	created, err := s.FoldSelectionOccurrences(doc)
	if err != nil || created != nil {
		t.Errorf("expected silent no-op, got %v, %v", created, err)
	}
}

func TestUnfoldAtPoint(t *testing.T) {
	s := newTestSession(t)
	doc := s.Open("", "0123456789")

	reg := s.Registry(doc)
	if _, err := reg.Create(0, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := reg.Create(3, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if removed := s.UnfoldAtPoint(doc, 5); removed != 2 {
		t.Errorf("expected both overlapping folds removed, got %d", removed)
	}
}

func TestHandleKeyCapture(t *testing.T) {
	s := newTestSession(t)
	doc := s.Open("", "0123456789")

	if _, err := s.Registry(doc).Create(2, 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	enter := key.NewSpecialEvent(key.KeyEnter, key.ModNone)
	other := key.NewRuneEvent('x', key.ModNone)

	if s.HandleKey(doc, 4, other) {
		t.Error("unrelated keys must not be captured")
	}
	if s.HandleKey(doc, 8, enter) {
		t.Error("keys away from a fold must not be captured")
	}
	if !s.HandleKey(doc, 4, enter) {
		t.Fatal("confirm at a fold should be captured")
	}
	if s.Registry(doc).Count() != 0 {
		t.Error("capture should unfold at point")
	}
	if s.HandleKey(doc, 4, enter) {
		t.Error("capture must stop once the fold is gone")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	s := newTestSession(t, config.WithPersistFolds(true))

	doc := s.Open("a.txt", "0123456789012345678901234567890")
	reg := s.Registry(doc)
	if _, err := reg.Create(5, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := reg.Create(20, 25); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Close(doc)
	if s.Registry(doc) != nil {
		t.Error("closed document should be forgotten")
	}

	reopened := s.Open("a.txt", "0123456789012345678901234567890")
	spans := s.Registry(reopened).Ranges()
	want := []fold.Span{{Start: 5, End: 10}, {Start: 20, End: 25}}
	if len(spans) != len(want) {
		t.Fatalf("expected %d restored folds, got %d", len(want), len(spans))
	}
	for i, span := range spans {
		if span != want[i] {
			t.Errorf("restored span %d: expected %v, got %v", i, want[i], span)
		}
	}

	// One-shot: the store entry is consumed.
	if s.Store().Len() != 0 {
		t.Errorf("store should be empty after restore, got %d entries", s.Store().Len())
	}
}

func TestPersistenceDisabled(t *testing.T) {
	s := newTestSession(t)

	doc := s.Open("a.txt", "0123456789")
	if _, err := s.Registry(doc).Create(2, 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Close(doc)

	reopened := s.Open("a.txt", "0123456789")
	if got := s.Registry(reopened).Count(); got != 0 {
		t.Errorf("disabled persistence should restore nothing, got %d", got)
	}
}

func TestPersistenceDisabledBeforeUnload(t *testing.T) {
	s := newTestSession(t, config.WithPersistFolds(true))

	doc := s.Open("a.txt", "0123456789")
	if _, err := s.Registry(doc).Create(2, 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.SetPersistFolds(false)
	s.Close(doc)

	s.SetPersistFolds(true)
	reopened := s.Open("a.txt", "0123456789")
	if got := s.Registry(reopened).Count(); got != 0 {
		t.Errorf("folds dropped while disabled should not reappear, got %d", got)
	}
}

func TestPersistenceNoIdentity(t *testing.T) {
	s := newTestSession(t, config.WithPersistFolds(true))

	doc := s.Open("", "0123456789")
	if _, err := s.Registry(doc).Create(2, 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Close(doc)

	if s.Store().Len() != 0 {
		t.Error("documents without identity must not be persisted")
	}
}

func TestRestoreSkipsOutOfBoundsSpans(t *testing.T) {
	s := newTestSession(t, config.WithPersistFolds(true))

	doc := s.Open("a.txt", "a long enough document body")
	if _, err := s.Registry(doc).Create(2, 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Close(doc)

	// Reopened with different, shorter text: the stale span is dropped.
	reopened := s.Open("a.txt", "abc")
	if got := s.Registry(reopened).Count(); got != 0 {
		t.Errorf("stale span should be dropped on restore, got %d", got)
	}
}

func TestOperationsOnClosedDocument(t *testing.T) {
	s := newTestSession(t)
	doc := s.Open("", "hello")
	s.Close(doc)
	s.Close(doc) // idempotent

	if r, err := s.FoldRegion(doc); r != nil || err != nil {
		t.Error("fold on a closed document should be a no-op")
	}
	if got := s.UnfoldAtPoint(doc, 0); got != 0 {
		t.Error("unfold on a closed document should be a no-op")
	}
	s.UnfoldAll(doc)
	if s.HandleKey(doc, 0, key.NewSpecialEvent(key.KeyEnter, key.ModNone)) {
		t.Error("keys on a closed document must not be captured")
	}
}
