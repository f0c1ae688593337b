package overlay

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/textfold/internal/engine/buffer"
	"github.com/dshills/textfold/internal/input/key"
)

// Manager owns all fold placeholders of one document and composites
// them for rendering. It implements the fold registry's Renderer
// collaborator: Hide creates an artifact, Reveal removes it, Move
// re-anchors it. All methods are thread-safe.
type Manager struct {
	mu        sync.RWMutex
	config    Config
	artifacts map[string]*FoldPlaceholder
}

// NewManager creates a new placeholder manager.
func NewManager(config Config) *Manager {
	return &Manager{
		config:    config,
		artifacts: make(map[string]*FoldPlaceholder),
	}
}

// Config returns the current configuration.
func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Hide creates a placeholder artifact for [start, end) and returns its
// handle.
func (m *Manager) Hide(start, end buffer.ByteOffset) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := &FoldPlaceholder{
		id:      uuid.New().String(),
		span:    buffer.NewRange(start, end),
		glyph:   m.config.Glyph,
		style:   m.config.Style,
		confirm: m.config.Confirm,
		cancel:  m.config.Cancel,
	}
	m.artifacts[p.id] = p
	return p.id, nil
}

// Reveal removes the artifact with the given handle. Unknown handles
// are a no-op.
func (m *Manager) Reveal(artifact string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.artifacts, artifact)
}

// Move re-anchors an artifact to a new span. Unknown handles are a
// no-op.
func (m *Manager) Move(artifact string, start, end buffer.ByteOffset) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.artifacts[artifact]; ok {
		p.span = buffer.NewRange(start, end)
	}
}

// Count returns the number of placeholders.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.artifacts)
}

// Clear removes all placeholders.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifacts = make(map[string]*FoldPlaceholder)
}

// PlaceholderAt returns a placeholder whose span covers the position,
// counting both boundaries. With overlapping folds any covering
// placeholder may be returned.
func (m *Manager) PlaceholderAt(pos buffer.ByteOffset) (*FoldPlaceholder, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.artifacts {
		if p.span.Covers(pos) {
			return p, true
		}
	}
	return nil, false
}

// CapturesKey returns true if a placeholder covers the position and
// the event matches its confirm or cancel chord. The caller maps a
// capture to unfold-at-point.
func (m *Manager) CapturesKey(pos buffer.ByteOffset, ev key.Event) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.artifacts {
		if p.span.Covers(pos) && p.CapturesKey(ev) {
			return true
		}
	}
	return false
}

// HiddenSpans returns all hidden spans sorted by start offset.
func (m *Manager) HiddenSpans() []buffer.Range {
	m.mu.RLock()
	defer m.mu.RUnlock()

	spans := make([]buffer.Range, 0, len(m.artifacts))
	for _, p := range m.artifacts {
		spans = append(spans, p.span)
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
	return spans
}

// Segment is one run of display text: either visible document text or
// a placeholder glyph standing in for a hidden span. Span is the
// source range the segment stands for, so display positions can be
// mapped back to document offsets.
type Segment struct {
	Text        string
	Span        buffer.Range
	Placeholder bool
}

// Segments collapses the document text for display: every hidden span
// becomes a placeholder segment, visible text in between stays as-is.
// Spans overlapping a previous one extend its placeholder instead of
// adding another. The underlying text is not modified.
func (m *Manager) Segments(text string) []Segment {
	spans := m.HiddenSpans()

	m.mu.RLock()
	glyph := m.config.Glyph
	m.mu.RUnlock()

	var segs []Segment
	cursor := buffer.ByteOffset(0)
	for _, span := range spans {
		if span.Start > buffer.ByteOffset(len(text)) {
			break
		}
		if span.Start < cursor {
			// Overlaps the previous placeholder; extend it.
			if span.End > cursor {
				cursor = span.End
				segs[len(segs)-1].Span.End = cursor
			}
			continue
		}
		if span.Start > cursor {
			segs = append(segs, Segment{
				Text: text[cursor:span.Start],
				Span: buffer.NewRange(cursor, span.Start),
			})
		}
		segs = append(segs, Segment{
			Text:        glyph,
			Span:        buffer.NewRange(span.Start, span.End),
			Placeholder: true,
		})
		cursor = span.End
	}
	if cursor < buffer.ByteOffset(len(text)) {
		segs = append(segs, Segment{
			Text: text[cursor:],
			Span: buffer.NewRange(cursor, buffer.ByteOffset(len(text))),
		})
	}
	return segs
}

// VisibleText collapses the document text for display into a plain
// string, placeholders included.
func (m *Manager) VisibleText(text string) string {
	var b strings.Builder
	for _, seg := range m.Segments(text) {
		b.WriteString(seg.Text)
	}
	return b.String()
}
