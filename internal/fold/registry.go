package fold

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/textfold/internal/engine/buffer"
)

// Errors returned by registry operations.
var (
	ErrInvalidRange = errors.New("invalid fold range")
)

// Renderer is the rendering collaborator the registry hides and reveals
// spans through. Hide returns an artifact handle that Reveal takes back;
// Move re-anchors an artifact after surrounding edits shift its span.
// The implementation owns the placeholder glyph and the per-fold
// confirm/cancel input capture; both die with the artifact.
type Renderer interface {
	Hide(start, end buffer.ByteOffset) (string, error)
	Reveal(artifact string)
	Move(artifact string, start, end buffer.ByteOffset)
}

// Registry owns every live fold Range of one document. It subscribes to
// the document's pre-edit notifications so that folds touched by an
// edit are destroyed before the edit lands, and folds after an edit are
// shifted by its delta. All methods are thread-safe.
type Registry struct {
	mu       sync.Mutex
	doc      *buffer.Document
	renderer Renderer
	ranges   []*Range
}

// NewRegistry creates a registry for the document and subscribes it to
// the document's edit notifications.
func NewRegistry(doc *buffer.Document, renderer Renderer) *Registry {
	reg := &Registry{
		doc:      doc,
		renderer: renderer,
	}
	doc.OnEdit(reg.handleEdit)
	return reg
}

// Create folds [start, end), hiding the span behind the renderer's
// placeholder glyph. Zero-length spans are valid and install only the
// input capture point. Overlapping and nested folds are permitted.
// The document's active selection is cleared as a side effect.
func (reg *Registry) Create(start, end buffer.ByteOffset) (*Range, error) {
	if start < 0 || start > end || end > reg.doc.Len() {
		return nil, fmt.Errorf("%w: [%d:%d) in document of length %d",
			ErrInvalidRange, start, end, reg.doc.Len())
	}

	artifact, err := reg.renderer.Hide(start, end)
	if err != nil {
		return nil, fmt.Errorf("hide span: %w", err)
	}

	r := &Range{
		span:     buffer.NewRange(start, end),
		live:     true,
		artifact: artifact,
	}

	reg.mu.Lock()
	reg.ranges = append(reg.ranges, r)
	reg.mu.Unlock()

	reg.doc.ClearSelection()
	return r, nil
}

// UnfoldAll destroys every live fold, revealing each span.
func (reg *Registry) UnfoldAll() {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, r := range reg.ranges {
		reg.destroy(r)
	}
	reg.ranges = reg.ranges[:0]
}

// UnfoldAt destroys every live fold whose span covers the position,
// counting both boundaries. Overlapping folds are all removed.
// Returns the number of folds destroyed.
func (reg *Registry) UnfoldAt(pos buffer.ByteOffset) int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	removed := 0
	kept := reg.ranges[:0]
	for _, r := range reg.ranges {
		if r.Covers(pos) {
			reg.destroy(r)
			removed++
			continue
		}
		kept = append(kept, r)
	}
	reg.ranges = kept
	return removed
}

// FoldAllOccurrences folds every non-overlapping occurrence of the
// literal in the document, earliest first. Returns the created folds.
// An empty literal folds nothing.
func (reg *Registry) FoldAllOccurrences(literal string) ([]*Range, error) {
	var created []*Range
	scanner := NewOccurrenceScanner(reg.doc.Text(), literal)
	for {
		span, ok := scanner.Next()
		if !ok {
			break
		}
		r, err := reg.Create(span.Start, span.End)
		if err != nil {
			return created, err
		}
		created = append(created, r)
	}
	return created, nil
}

// Ranges returns the spans of all live folds, in creation order.
func (reg *Registry) Ranges() []Span {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	spans := make([]Span, 0, len(reg.ranges))
	for _, r := range reg.ranges {
		spans = append(spans, r.Span())
	}
	return spans
}

// Count returns the number of live folds.
func (reg *Registry) Count() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.ranges)
}

// Drain snapshots every live fold as a boundary pair and removes all of
// them without reveal side effects. Used at document unload, when the
// rendering surface is discarded along with the document.
func (reg *Registry) Drain() []Span {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	spans := make([]Span, 0, len(reg.ranges))
	for _, r := range reg.ranges {
		spans = append(spans, r.Span())
		r.live = false
		r.artifact = ""
	}
	reg.ranges = reg.ranges[:0]
	return spans
}

// handleEdit runs synchronously before an edit is applied. Folds whose
// span the edit touches, boundary-inclusive, are destroyed; folds
// strictly after the edit shift by its delta.
func (reg *Registry) handleEdit(pending buffer.Edit) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	delta := pending.Delta()
	kept := reg.ranges[:0]
	for _, r := range reg.ranges {
		if pending.Range.Touches(r.span) {
			reg.destroy(r)
			continue
		}
		if pending.Range.End < r.span.Start && delta != 0 {
			r.span = r.span.Shift(delta)
			reg.renderer.Move(r.artifact, r.span.Start, r.span.End)
		}
		kept = append(kept, r)
	}
	reg.ranges = kept
}

// destroy reveals and deadens a fold. Idempotent; caller holds the lock.
func (reg *Registry) destroy(r *Range) {
	if !r.live {
		return
	}
	r.live = false
	if r.artifact != "" {
		reg.renderer.Reveal(r.artifact)
		r.artifact = ""
	}
}
