package fold

import "sync"

// Store is the process-wide persistence map for fold spans across a
// document's unload/reload cycle. Entries are keyed by document
// identity, hold an ordered list of boundary pairs, and are one-shot:
// Take returns and removes. The store is an explicit object with an
// explicit lifetime, constructed once and handed to whatever wires the
// document lifecycle hooks. All methods are thread-safe.
//
// Persistence is opt-in. A disabled store ignores Save and always
// misses on Take.
type Store struct {
	mu      sync.Mutex
	enabled bool
	entries map[string][]Span
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithEnabled sets the store's initial enabled state.
func WithEnabled(enabled bool) StoreOption {
	return func(s *Store) {
		s.enabled = enabled
	}
}

// NewStore creates a persistence store. It starts disabled unless
// configured otherwise.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		entries: make(map[string][]Span),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enabled reports whether persistence is active.
func (s *Store) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// SetEnabled toggles persistence. Disabling does not drop existing
// entries; they simply become unreachable until re-enabled.
func (s *Store) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// Save records the spans for a document identity, replacing any
// existing entry. Saving an empty span list removes the entry instead,
// so a reload never replays an empty restore. No-op when disabled or
// when the identity is empty.
func (s *Store) Save(identity string, spans []Span) {
	if identity == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return
	}
	if len(spans) == 0 {
		delete(s.entries, identity)
		return
	}

	entry := make([]Span, len(spans))
	copy(entry, spans)
	s.entries[identity] = entry
}

// Take returns and removes the entry for a document identity.
// A miss is a normal outcome, not an error. Always misses when
// disabled.
func (s *Store) Take(identity string) ([]Span, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return nil, false
	}
	spans, ok := s.entries[identity]
	if !ok {
		return nil, false
	}
	delete(s.entries, identity)
	return spans, true
}

// Len returns the number of stored entries, regardless of the enabled
// state.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
