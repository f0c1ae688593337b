// Package app wires the fold subsystem together: documents, their fold
// registries and placeholder managers, the process-wide persistence
// store, and the user-facing fold operations.
package app

import (
	"fmt"
	"sync"

	"github.com/dshills/textfold/internal/config"
	"github.com/dshills/textfold/internal/engine/buffer"
	"github.com/dshills/textfold/internal/fold"
	"github.com/dshills/textfold/internal/input/key"
	"github.com/dshills/textfold/internal/renderer/overlay"
)

// docState is the per-document fold machinery.
type docState struct {
	registry *fold.Registry
	overlays *overlay.Manager
}

// Session owns the open documents and the shared fold persistence
// store. All methods are thread-safe.
type Session struct {
	mu         sync.RWMutex
	cfg        config.Config
	overlayCfg overlay.Config
	store      *fold.Store
	docs       map[*buffer.Document]*docState
}

// New creates a session from the configuration.
func New(cfg config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	confirm, err := key.ParseBinding(cfg.ConfirmKey)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	cancel, err := key.ParseBinding(cfg.CancelKey)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	overlayCfg := overlay.DefaultConfig()
	overlayCfg.Glyph = cfg.Glyph
	overlayCfg.Confirm = confirm
	overlayCfg.Cancel = cancel

	return &Session{
		cfg:        cfg,
		overlayCfg: overlayCfg,
		store:      fold.NewStore(fold.WithEnabled(cfg.PersistFolds)),
		docs:       make(map[*buffer.Document]*docState),
	}, nil
}

// Open creates a document, sets up its fold registry and placeholder
// manager, and replays any persisted folds for its identity. An empty
// path opens a document without a stable identity.
func (s *Session) Open(path, text string) *buffer.Document {
	var opts []buffer.Option
	if path != "" {
		opts = append(opts, buffer.WithPath(path))
	}
	doc := buffer.NewDocumentFromString(text, opts...)

	overlays := overlay.NewManager(s.overlayCfg)
	registry := fold.NewRegistry(doc, overlays)

	s.mu.Lock()
	s.docs[doc] = &docState{registry: registry, overlays: overlays}
	s.mu.Unlock()

	// One-shot restore. The reopened text is assumed identical to what
	// was unloaded; spans that no longer fit are dropped.
	if path != "" {
		if spans, ok := s.store.Take(path); ok {
			for _, span := range spans {
				_, _ = registry.Create(span.Start, span.End)
			}
		}
	}

	return doc
}

// Close unloads a document. Live folds are drained into the store
// under the document's identity; the registry is discarded with the
// document, so no reveal side effects fire. Closing an unknown
// document is a no-op.
func (s *Session) Close(doc *buffer.Document) {
	s.mu.Lock()
	state, ok := s.docs[doc]
	if ok {
		delete(s.docs, doc)
	}
	s.mu.Unlock()

	if !ok {
		return
	}

	spans := state.registry.Drain()
	state.overlays.Clear()
	if path, hasPath := doc.Path(); hasPath {
		s.store.Save(path, spans)
	}
}

// state returns the fold machinery for a document, or nil for unknown
// (already closed) documents.
func (s *Session) state(doc *buffer.Document) *docState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[doc]
}

// FoldRegion folds the document's active selection. Without a
// non-empty selection this is a silent no-op returning nil.
func (s *Session) FoldRegion(doc *buffer.Document) (*fold.Range, error) {
	state := s.state(doc)
	if state == nil {
		return nil, nil
	}

	sel, ok := doc.Selection()
	if !ok || sel.IsEmpty() {
		return nil, nil
	}
	return state.registry.Create(sel.Start, sel.End)
}

// FoldSelectionOccurrences folds every exact occurrence of the
// selected text across the document, earliest first. Without a
// non-empty selection this is a silent no-op returning nil.
func (s *Session) FoldSelectionOccurrences(doc *buffer.Document) ([]*fold.Range, error) {
	state := s.state(doc)
	if state == nil {
		return nil, nil
	}

	sel, ok := doc.Selection()
	if !ok || sel.IsEmpty() {
		return nil, nil
	}

	literal, err := doc.TextRange(sel.Start, sel.End)
	if err != nil {
		return nil, fmt.Errorf("fold occurrences: %w", err)
	}
	return state.registry.FoldAllOccurrences(literal)
}

// UnfoldAll removes every fold in the document.
func (s *Session) UnfoldAll(doc *buffer.Document) {
	if state := s.state(doc); state != nil {
		state.registry.UnfoldAll()
	}
}

// UnfoldAtPoint removes every fold covering the position. Returns the
// number of folds removed.
func (s *Session) UnfoldAtPoint(doc *buffer.Document, pos buffer.ByteOffset) int {
	state := s.state(doc)
	if state == nil {
		return 0
	}
	return state.registry.UnfoldAt(pos)
}

// HandleKey dispatches a key press at the given position. If a fold
// placeholder covers the position and the chord is its confirm or
// cancel binding, the event is consumed and the fold under it is
// removed.
func (s *Session) HandleKey(doc *buffer.Document, pos buffer.ByteOffset, ev key.Event) bool {
	state := s.state(doc)
	if state == nil {
		return false
	}

	if !state.overlays.CapturesKey(pos, ev) {
		return false
	}
	state.registry.UnfoldAt(pos)
	return true
}

// Registry returns the document's fold registry, or nil for unknown
// documents.
func (s *Session) Registry(doc *buffer.Document) *fold.Registry {
	if state := s.state(doc); state != nil {
		return state.registry
	}
	return nil
}

// Overlays returns the document's placeholder manager, or nil for
// unknown documents.
func (s *Session) Overlays(doc *buffer.Document) *overlay.Manager {
	if state := s.state(doc); state != nil {
		return state.overlays
	}
	return nil
}

// Store returns the session's fold persistence store.
func (s *Session) Store() *fold.Store {
	return s.store
}

// PersistFolds reports whether cross-lifecycle fold persistence is
// active.
func (s *Session) PersistFolds() bool {
	return s.store.Enabled()
}

// SetPersistFolds toggles cross-lifecycle fold persistence.
func (s *Session) SetPersistFolds(enabled bool) {
	s.store.SetEnabled(enabled)
}
